package audio

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/mcp-notify/mcp-notify/internal/errors"
	"github.com/mcp-notify/mcp-notify/internal/runner"
)

// RunCall records one invocation of MockRunner.Run.
type RunCall struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// MockRunner is a call-recording runner.Runner.
// By default every run succeeds; failPaths makes runs for specific audio paths fail.
type MockRunner struct {
	mu        sync.Mutex
	Calls     []RunCall
	failPaths map[string]runner.Result
}

// NewMockRunner creates a MockRunner where every run succeeds.
func NewMockRunner() *MockRunner {
	return &MockRunner{failPaths: make(map[string]runner.Result)}
}

// WithFailure makes runs whose last argument is path return result.
func (m *MockRunner) WithFailure(path string, result runner.Result) *MockRunner {
	m.failPaths[path] = result
	return m
}

// Run records the call and returns the configured result.
func (m *MockRunner) Run(_ context.Context, command string, args []string, timeout time.Duration) runner.Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, RunCall{Command: command, Args: args, Timeout: timeout})

	if len(args) > 0 {
		if result, ok := m.failPaths[args[len(args)-1]]; ok {
			return result
		}
	}
	code := 0
	return runner.Result{Succeeded: true, ExitCode: &code}
}

// CallCount returns the number of recorded runs.
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// PlayedPaths returns the audio path of every recorded run, in order.
func (m *MockRunner) PlayedPaths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		if len(c.Args) > 0 {
			paths = append(paths, c.Args[len(c.Args)-1])
		}
	}
	return paths
}

// Common runner failures
var (
	timeoutResult = runner.Result{Err: apperrors.New(apperrors.ProcessTimeout, runner.TimeoutDetail)}
	exitResult    = runner.Result{Err: apperrors.New(apperrors.ProcessNonZeroExit, "exited with code 1")}
)
