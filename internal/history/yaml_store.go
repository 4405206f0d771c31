package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// HistoryFileName is the name of the YAML history file.
	HistoryFileName = "history.yaml"
	// BackupSuffix is the suffix for backup files when corruption is detected.
	BackupSuffix = ".backup"
)

// HistoryFile represents the YAML file containing all history entries.
type HistoryFile struct {
	// Entries is ordered oldest first; new entries are appended at the end.
	Entries []Entry `yaml:"entries"`
}

// YAMLStore keeps the history in a single YAML file, rewritten atomically on
// every change.
type YAMLStore struct {
	mu       sync.Mutex
	stateDir string
}

// NewYAMLStore creates a store for stateDir/history.yaml.
func NewYAMLStore(stateDir string) *YAMLStore {
	return &YAMLStore{stateDir: stateDir}
}

// Path returns the location of the history file.
func (s *YAMLStore) Path() string {
	return filepath.Join(s.stateDir, HistoryFileName)
}

// Append implements Store.
func (s *YAMLStore) Append(_ context.Context, entry Entry, maxEntries int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load()
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if maxEntries > 0 && len(history.Entries) > maxEntries {
		excess := len(history.Entries) - maxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := s.save(history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

// List implements Store.
func (s *YAMLStore) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return newestFirst(history.Entries, limit), nil
}

// Clear implements Store.
func (s *YAMLStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&HistoryFile{Entries: []Entry{}})
}

// Close implements Store. The YAML store holds no open resources.
func (s *YAMLStore) Close() error { return nil }

// load reads the history file. Returns empty history if the file doesn't exist.
// A corrupted file is backed up and replaced by a fresh history.
func (s *YAMLStore) load() (*HistoryFile, error) {
	historyPath := s.Path()

	data, err := os.ReadFile(historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &HistoryFile{Entries: []Entry{}}, nil
		}
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var history HistoryFile
	if err := yaml.Unmarshal(data, &history); err != nil {
		if backupErr := backupCorruptedFile(historyPath); backupErr != nil {
			return nil, fmt.Errorf("backing up corrupted history file: %w", backupErr)
		}
		return &HistoryFile{Entries: []Entry{}}, nil
	}

	if history.Entries == nil {
		history.Entries = []Entry{}
	}
	return &history, nil
}

// backupCorruptedFile renames a corrupted file with a .backup suffix.
func backupCorruptedFile(path string) error {
	backupPath := path + BackupSuffix
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("renaming corrupted file to backup: %w", err)
	}
	return nil
}

// save writes the history file atomically, creating parent directories if needed.
func (s *YAMLStore) save(history *HistoryFile) error {
	if err := os.MkdirAll(s.stateDir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshaling history: %w", err)
	}

	historyPath := s.Path()
	tmpPath := historyPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing temp history file: %w", err)
	}

	if err := os.Rename(tmpPath, historyPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp history file: %w", err)
	}
	return nil
}
