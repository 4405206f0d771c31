package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/config"
	"github.com/mcp-notify/mcp-notify/internal/history"
	"github.com/mcp-notify/mcp-notify/internal/notify"
)

// Dispatcher is the guarded dispatch entry point. *notify.Guard implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, req notify.Request, cfg config.DispatchConfig, deadline time.Duration) notify.Response
}

// Service runs requests through the guard with the frozen startup
// configuration and records each dispatch in the history.
type Service struct {
	guard    Dispatcher
	cfg      config.DispatchConfig
	deadline time.Duration
	history  *history.Writer
	logger   *slog.Logger
}

// NewService creates a Service. A nil history writer disables recording.
func NewService(guard Dispatcher, cfg config.DispatchConfig, deadline time.Duration, hist *history.Writer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		guard:    guard,
		cfg:      cfg,
		deadline: deadline,
		history:  hist,
		logger:   logger,
	}
}

// Dispatch presents req and records the result in the background. It never
// fails, and history writes never extend the request deadline.
func (s *Service) Dispatch(ctx context.Context, req notify.Request) notify.Response {
	started := time.Now()
	resp := s.guard.Dispatch(ctx, req, s.cfg, s.deadline)

	s.logger.Debug("dispatch finished",
		"tool", req.Kind,
		"status", resp.Status,
		"method", resp.Outcome.Sound.Method,
		"duration", resp.Duration,
	)

	s.history.RecordAsync(context.WithoutCancel(ctx), entryFor(req, resp, started))
	return resp
}

// entryFor builds the history record of one dispatch.
func entryFor(req notify.Request, resp notify.Response, started time.Time) history.Entry {
	e := history.Entry{
		Timestamp:         started,
		Tool:              string(req.Kind),
		Title:             req.Title,
		Message:           req.Message,
		SoundType:         string(req.SoundType),
		Status:            string(resp.Status),
		PresentationError: resp.Outcome.PresentationError,
		TimedOut:          resp.TimedOut,
		Duration:          resp.Duration.Round(time.Millisecond).String(),
	}

	switch {
	case resp.TimedOut:
		e.SoundError = resp.Detail
	case resp.Outcome.Sound.Method != "":
		e.Method = string(resp.Outcome.Sound.Method)
		e.SoundError = resp.Outcome.Sound.ErrorDetail
	default:
		// recovered panic
		e.SoundError = resp.Detail
	}
	return e
}
