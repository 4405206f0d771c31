// Package history records every notification dispatch in a pluggable store.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/config"
)

// Backend names accepted by Open.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Entry represents a single dispatch record.
type Entry struct {
	// ID is a ULID, sortable by creation time.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when the dispatch started.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Tool is the operation that produced the dispatch: notify or task_completed.
	Tool      string `yaml:"tool" json:"tool"`
	Title     string `yaml:"title" json:"title"`
	Message   string `yaml:"message" json:"message"`
	SoundType string `yaml:"sound_type" json:"sound_type"`
	// Status is sent, attempted or skipped.
	Status string `yaml:"status" json:"status"`
	// Method is the playback method that produced sound, or none.
	Method            string `yaml:"method,omitempty" json:"method,omitempty"`
	SoundError        string `yaml:"sound_error,omitempty" json:"sound_error,omitempty"`
	PresentationError string `yaml:"presentation_error,omitempty" json:"presentation_error,omitempty"`
	TimedOut          bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
	// Duration is how long the caller waited, in Go duration format (e.g., "312ms").
	Duration string `yaml:"duration" json:"duration"`
}

// Store persists entries.
type Store interface {
	// Append adds entry and prunes the oldest entries beyond maxEntries.
	// A non-positive maxEntries keeps everything.
	Append(ctx context.Context, entry Entry, maxEntries int) error
	// List returns up to limit entries, newest first. A non-positive limit returns all.
	List(ctx context.Context, limit int) ([]Entry, error)
	// Clear removes all entries.
	Clear(ctx context.Context) error
	Close() error
}

// DefaultDir returns the default history directory.
// Location: ~/.mcp-notify/state
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mcp-notify", "state"), nil
}

// Open returns the store selected by cfg.Backend, rooted at cfg.Dir.
func Open(cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case BackendYAML, "":
		return NewYAMLStore(cfg.Dir), nil
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
		return OpenSQLite(filepath.Join(cfg.Dir, SQLiteFileName))
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// newestFirst returns a reversed copy of entries limited to limit items.
func newestFirst(entries []Entry, limit int) []Entry {
	n := len(entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, entries[i])
	}
	return out
}
