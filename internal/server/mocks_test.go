package server

import (
	"context"
	"sync"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/audio"
	"github.com/mcp-notify/mcp-notify/internal/config"
	"github.com/mcp-notify/mcp-notify/internal/history"
	"github.com/mcp-notify/mcp-notify/internal/notify"
)

// MockDispatcher is a call-recording Dispatcher.
type MockDispatcher struct {
	mu sync.Mutex

	response *notify.Response

	Requests  []notify.Request
	Configs   []config.DispatchConfig
	Deadlines []time.Duration
}

// NewMockDispatcher creates a MockDispatcher that reports a sent notification.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// WithResponse configures the response returned by Dispatch
func (m *MockDispatcher) WithResponse(resp notify.Response) *MockDispatcher {
	m.response = &resp
	return m
}

// Dispatch records the call and returns the configured response
func (m *MockDispatcher) Dispatch(_ context.Context, req notify.Request, cfg config.DispatchConfig, deadline time.Duration) notify.Response {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	m.Configs = append(m.Configs, cfg)
	m.Deadlines = append(m.Deadlines, deadline)

	if m.response != nil {
		return *m.response
	}
	return notify.Response{
		Text:     "sent " + req.Message,
		Status:   notify.StatusSent,
		Outcome:  notify.Outcome{Attempted: true, Sound: audio.Outcome{Succeeded: true, Method: audio.MethodBundled}},
		Duration: 15 * time.Millisecond,
	}
}

// CallCount returns the number of Dispatch calls
func (m *MockDispatcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// blockingStore is a history.Store whose Append blocks until release is closed.
type blockingStore struct {
	mu      sync.Mutex
	entries []history.Entry

	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingStore() *blockingStore {
	return &blockingStore{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingStore) Append(_ context.Context, e history.Entry, _ int) error {
	s.once.Do(func() { close(s.started) })
	<-s.release

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

func (s *blockingStore) List(context.Context, int) ([]history.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]history.Entry(nil), s.entries...), nil
}

func (s *blockingStore) Clear(context.Context) error { return nil }
func (s *blockingStore) Close() error                { return nil }

func (s *blockingStore) appended() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
