package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/audio"
	"github.com/mcp-notify/mcp-notify/internal/config"
)

// DefaultDeadline bounds a dispatch when no deadline is given.
const DefaultDeadline = 5 * time.Second

// TimeoutDetail is reported when the deadline fires before presentation ends.
const TimeoutDetail = "Notification timeout"

// Status summarizes how a dispatch ended.
type Status string

const (
	// StatusSent means every step succeeded
	StatusSent Status = "sent"
	// StatusAttempted means a step failed, the deadline fired, or a panic was recovered
	StatusAttempted Status = "attempted"
	// StatusSkipped means presentation was disabled
	StatusSkipped Status = "skipped"
)

// Response is the result of a guarded dispatch. Text is what the caller
// sees; Detail is the failure description folded into Text, if any.
type Response struct {
	Text     string
	Status   Status
	Outcome  Outcome
	TimedOut bool
	Detail   string
	Duration time.Duration
}

// presenter is the part of *Presenter the Guard uses.
type presenter interface {
	Present(ctx context.Context, req Request, cfg config.DispatchConfig) Outcome
}

// Guard bounds a presentation by a deadline and renders its result.
type Guard struct {
	presenter presenter
	logger    *slog.Logger
}

// NewGuard creates a Guard. A nil logger uses slog.Default().
func NewGuard(p presenter, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{presenter: p, logger: logger}
}

type presentResult struct {
	outcome  Outcome
	panicked bool
	panicMsg string
}

// Dispatch presents req and returns within deadline (DefaultDeadline when
// non-positive) or when ctx is done, whichever comes first. It never fails:
// timeouts, panics and step failures all become "attempted" text.
//
// The presentation runs on a context detached from ctx. When the deadline
// fires the presentation is abandoned, not cancelled, and finishes in the
// background bounded by the player timeout.
//
// Concurrency pattern: goroutine + buffered result channel + select with timeout.
func (g *Guard) Dispatch(ctx context.Context, req Request, cfg config.DispatchConfig, deadline time.Duration) Response {
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	start := time.Now()

	// Buffered so an abandoned presentation can still deliver and exit.
	done := make(chan presentResult, 1)
	inner := context.WithoutCancel(ctx)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- presentResult{panicked: true, panicMsg: fmt.Sprint(r)}
			}
		}()
		done <- presentResult{outcome: g.presenter.Present(inner, req, cfg)}
	}()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	var resp Response
	select {
	case res := <-done:
		if res.panicked {
			g.logger.Error("recovered panic during notification", "panic", res.panicMsg, "title", req.Title)
			resp = attemptedResponse(req, "panic: "+res.panicMsg)
		} else {
			resp = render(req, res.outcome)
		}
	case <-timer.C:
		g.logger.Warn("notification deadline exceeded", "deadline", deadline, "title", req.Title)
		resp = timeoutResponse(req)
	case <-ctx.Done():
		g.logger.Debug("notification abandoned by caller", "error", ctx.Err())
		resp = timeoutResponse(req)
	}

	resp.Duration = time.Since(start)
	return resp
}

// wording holds the per-kind phrases of rendered text.
type wording struct {
	sent      string
	attempted string
	skipped   string
}

var wordings = map[Kind]wording{
	KindNotify: {
		sent:      "Notification sent",
		attempted: "Notification attempted",
		skipped:   "Notification skipped",
	},
	KindTaskCompleted: {
		sent:      "Task completion notification sent",
		attempted: "Task completion attempted",
		skipped:   "Task completion notification skipped",
	},
}

func wordingFor(k Kind) wording {
	if w, ok := wordings[k]; ok {
		return w
	}
	return wordings[KindNotify]
}

// subject is the quoted part of rendered text.
func subject(req Request) string {
	if req.Kind == KindTaskCompleted {
		return `"` + req.Message + `"`
	}
	return `"` + req.Title + ": " + req.Message + `"`
}

// soundPhrase describes the requested sound and what actually played.
func soundPhrase(req Request, sound audio.Outcome) string {
	if sound.Succeeded && sound.Method == audio.MethodNone {
		return fmt.Sprintf("with %s sound (no sound)", req.SoundType)
	}
	return fmt.Sprintf("with %s sound (%s)", req.SoundType, sound.Method)
}

// render turns a completed presentation into a Response.
func render(req Request, out Outcome) Response {
	w := wordingFor(req.Kind)

	if !out.Attempted {
		return Response{
			Text:    fmt.Sprintf("%s: %s (no sound, desktop notifications disabled)", w.skipped, subject(req)),
			Status:  StatusSkipped,
			Outcome: out,
		}
	}

	var details []string
	if !out.Sound.Succeeded {
		details = append(details, "sound failed: "+out.Sound.ErrorDetail)
	}
	if out.PresentationError != "" {
		details = append(details, "desktop notification failed: "+out.PresentationError)
	}

	if len(details) == 0 {
		return Response{
			Text:    fmt.Sprintf("%s: %s %s", w.sent, subject(req), soundPhrase(req, out.Sound)),
			Status:  StatusSent,
			Outcome: out,
		}
	}

	detail := strings.Join(details, "; ")
	return Response{
		Text:    fmt.Sprintf("%s: %s %s [%s]", w.attempted, subject(req), soundPhrase(req, out.Sound), detail),
		Status:  StatusAttempted,
		Outcome: out,
		Detail:  detail,
	}
}

func attemptedResponse(req Request, detail string) Response {
	return Response{
		Text:   fmt.Sprintf("%s: %s (%s)", wordingFor(req.Kind).attempted, subject(req), detail),
		Status: StatusAttempted,
		Detail: detail,
	}
}

func timeoutResponse(req Request) Response {
	resp := attemptedResponse(req, TimeoutDetail)
	resp.TimedOut = true
	return resp
}
