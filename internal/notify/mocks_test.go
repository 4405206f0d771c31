package notify

import (
	"context"
	"sync"

	"github.com/mcp-notify/mcp-notify/internal/audio"
	"github.com/mcp-notify/mcp-notify/internal/config"
)

// MockPlayer is a call-recording Player.
type MockPlayer struct {
	mu sync.Mutex

	outcome  audio.Outcome
	PlayFunc func(context.Context, config.DispatchConfig) audio.Outcome
	order    *[]string

	Calls []config.DispatchConfig
}

// NewMockPlayer creates a MockPlayer that reports a bundled-file success.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{
		outcome: audio.Outcome{Succeeded: true, Method: audio.MethodBundled},
		Calls:   make([]config.DispatchConfig, 0),
	}
}

// WithOutcome configures the outcome returned by Play
func (m *MockPlayer) WithOutcome(o audio.Outcome) *MockPlayer {
	m.outcome = o
	return m
}

// WithPlayFunc configures a custom play function
func (m *MockPlayer) WithPlayFunc(fn func(context.Context, config.DispatchConfig) audio.Outcome) *MockPlayer {
	m.PlayFunc = fn
	return m
}

// WithOrder appends "sound" to order on every call
func (m *MockPlayer) WithOrder(order *[]string) *MockPlayer {
	m.order = order
	return m
}

// Play records the call and returns the configured outcome
func (m *MockPlayer) Play(ctx context.Context, cfg config.DispatchConfig) audio.Outcome {
	m.mu.Lock()
	m.Calls = append(m.Calls, cfg)
	if m.order != nil {
		*m.order = append(*m.order, "sound")
	}
	fn := m.PlayFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, cfg)
	}
	return m.outcome
}

// CallCount returns the number of Play calls
func (m *MockPlayer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockVisual is a call-recording Visual.
type MockVisual struct {
	mu sync.Mutex

	err       error
	panicWith any
	order     *[]string
	hang      <-chan struct{}

	Calls []Request
}

// NewMockVisual creates a MockVisual that always succeeds.
func NewMockVisual() *MockVisual {
	return &MockVisual{Calls: make([]Request, 0)}
}

// WithError configures the error returned by Show
func (m *MockVisual) WithError(err error) *MockVisual {
	m.err = err
	return m
}

// WithPanic makes Show panic with v
func (m *MockVisual) WithPanic(v any) *MockVisual {
	m.panicWith = v
	return m
}

// WithOrder appends "visual" to order on every call
func (m *MockVisual) WithOrder(order *[]string) *MockVisual {
	m.order = order
	return m
}

// WithHang makes Show block until release is closed, ignoring its context
func (m *MockVisual) WithHang(release <-chan struct{}) *MockVisual {
	m.hang = release
	return m
}

// Show records the call, then hangs, panics or returns the configured error
func (m *MockVisual) Show(_ context.Context, req Request) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if m.order != nil {
		*m.order = append(*m.order, "visual")
	}
	m.mu.Unlock()

	if m.hang != nil {
		<-m.hang
	}
	if m.panicWith != nil {
		panic(m.panicWith)
	}
	return m.err
}

// CallCount returns the number of Show calls
func (m *MockVisual) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// presenterFunc adapts a function to the presenter interface.
type presenterFunc func(context.Context, Request, config.DispatchConfig) Outcome

func (f presenterFunc) Present(ctx context.Context, req Request, cfg config.DispatchConfig) Outcome {
	return f(ctx, req, cfg)
}
