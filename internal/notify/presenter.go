package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/audio"
	"github.com/mcp-notify/mcp-notify/internal/config"
	apperrors "github.com/mcp-notify/mcp-notify/internal/errors"
)

// Player plays the notification sound. *audio.Dispatcher implements it.
type Player interface {
	Play(ctx context.Context, cfg config.DispatchConfig) audio.Outcome
}

// DefaultVisualTimeout bounds a single visual notification call.
const DefaultVisualTimeout = 3 * time.Second

// Presenter runs the sound step and then the visual step for a request.
type Presenter struct {
	player        Player
	visual        Visual
	visualTimeout time.Duration
	logger        *slog.Logger
}

// NewPresenter creates a Presenter. A nil logger uses slog.Default().
func NewPresenter(player Player, visual Visual, logger *slog.Logger) *Presenter {
	if logger == nil {
		logger = slog.Default()
	}
	if visual == nil {
		visual = NoopVisual()
	}
	return &Presenter{
		player:        player,
		visual:        visual,
		visualTimeout: DefaultVisualTimeout,
		logger:        logger,
	}
}

// Present plays the sound, then shows the notification. It always returns an
// Outcome; failures of either step are recorded in it.
//
// When desktop notifications are disabled neither step runs, including the
// sound.
func (p *Presenter) Present(ctx context.Context, req Request, cfg config.DispatchConfig) Outcome {
	if !cfg.DesktopNotificationEnabled {
		p.logger.Debug("desktop notifications disabled, skipping", "title", req.Title)
		return Outcome{Attempted: false, Sound: audio.Silent()}
	}

	out := Outcome{
		Attempted: true,
		Sound:     p.player.Play(ctx, cfg),
	}
	if !out.Sound.Succeeded {
		p.logger.Debug("sound step failed", "error", out.Sound.ErrorDetail)
	}

	if err := p.show(ctx, req); err != nil {
		p.logger.Debug("visual notification failed", "error", err)
		out.PresentationError = err.Error()
	}

	return out
}

// show calls the visual backend with its own timeout. A backend that does not
// return in time is abandoned and reported as a PresentationFailure.
func (p *Presenter) show(ctx context.Context, req Request) error {
	ctx, cancel := context.WithTimeout(ctx, p.visualTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- p.callVisual(ctx, req)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return apperrors.Newf(apperrors.PresentationFailure,
			"notification backend did not respond within %s", p.visualTimeout)
	}
}

// callVisual converts backend errors and panics into a PresentationFailure.
func (p *Presenter) callVisual(ctx context.Context, req Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.PresentationFailure, "notification backend panicked: %v", r)
		}
	}()

	if showErr := p.visual.Show(ctx, req); showErr != nil {
		return apperrors.Wrap(showErr, apperrors.PresentationFailure)
	}
	return nil
}
