package history

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Writer provides thread-safe history logging with automatic pruning.
// A nil *Writer discards everything, which is how disabled history is represented.
type Writer struct {
	mu         sync.Mutex
	pending    sync.WaitGroup
	store      Store
	maxEntries int
	logger     *slog.Logger
}

// NewWriter creates a new history writer. A nil logger uses slog.Default().
func NewWriter(store Store, maxEntries int, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		store:      store,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Record adds entry to the store, assigning an ID and timestamp when unset.
// Errors are non-fatal: they are logged as warnings and never reach the caller.
func (w *Writer) Record(ctx context.Context, entry Entry) {
	if w == nil {
		return
	}
	if err := w.record(ctx, entry); err != nil {
		w.logger.Warn("failed to record history", "error", err)
	}
}

// RecordAsync records entry on its own goroutine so a slow store never holds
// up the caller. Wait and Close block until pending records finish.
func (w *Writer) RecordAsync(ctx context.Context, entry Entry) {
	if w == nil {
		return
	}
	w.pending.Add(1)
	go func() {
		defer w.pending.Done()
		w.Record(ctx, entry)
	}()
}

// Wait blocks until every RecordAsync call has finished.
func (w *Writer) Wait() {
	if w == nil {
		return
	}
	w.pending.Wait()
}

func (w *Writer) record(ctx context.Context, entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID == "" {
		id, err := NewID(entry.Timestamp)
		if err != nil {
			return err
		}
		entry.ID = id
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.store.Append(ctx, entry, w.maxEntries); err != nil {
		return fmt.Errorf("appending entry: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first.
func (w *Writer) List(ctx context.Context, limit int) ([]Entry, error) {
	if w == nil {
		return []Entry{}, nil
	}
	return w.store.List(ctx, limit)
}

// Close waits for pending records, then closes the underlying store.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.pending.Wait()
	return w.store.Close()
}
