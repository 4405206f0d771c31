package audio

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/config"
	"github.com/mcp-notify/mcp-notify/internal/runner"
)

// Method identifies which attempt in the fallback chain produced an outcome.
type Method string

const (
	// MethodCustom is the caller-configured audio file.
	MethodCustom Method = "custom-file"
	// MethodBundled is the asset shipped with mcp-notify.
	MethodBundled Method = "bundled-file"
	// MethodNone means nothing was played.
	MethodNone Method = "none"
)

// AllFailedDetail is reported when every playback attempt failed.
const AllFailedDetail = "All audio playback methods failed"

// Outcome is the single result of one Play call.
type Outcome struct {
	Succeeded   bool
	Method      Method
	ErrorDetail string
}

// Silent is the outcome of a dispatch that did not ask for sound.
func Silent() Outcome {
	return Outcome{Succeeded: true, Method: MethodNone}
}

// Options configures a Dispatcher.
type Options struct {
	// Player is the external command, e.g. "paplay".
	Player string
	// PlayerArgs are passed before the audio path.
	PlayerArgs []string
	// Timeout bounds each player run.
	Timeout time.Duration
	// BundledPath is the readable location of the bundled asset.
	BundledPath string
}

// Dispatcher plays sounds through the fallback chain.
type Dispatcher struct {
	runner runner.Runner
	opts   Options
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger uses slog.Default().
func NewDispatcher(r runner.Runner, opts Options, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = runner.DefaultTimeout
	}
	return &Dispatcher{
		runner: r,
		opts:   opts,
		logger: logger,
	}
}

// Play runs the fallback chain for cfg. Attempts are strictly sequential:
// the custom file first when set, then the bundled asset.
func (d *Dispatcher) Play(ctx context.Context, cfg config.DispatchConfig) Outcome {
	if !cfg.AudioEnabled {
		return Silent()
	}

	if cfg.CustomAudioPath != "" {
		err := d.attempt(ctx, cfg.CustomAudioPath)
		if err == nil {
			return Outcome{Succeeded: true, Method: MethodCustom}
		}
		d.logger.Debug("custom audio failed, trying bundled asset",
			"path", cfg.CustomAudioPath, "error", err)
	}

	err := d.attempt(ctx, d.opts.BundledPath)
	if err == nil {
		return Outcome{Succeeded: true, Method: MethodBundled}
	}
	d.logger.Debug("bundled audio failed", "path", d.opts.BundledPath, "error", err)

	return Outcome{Succeeded: false, Method: MethodNone, ErrorDetail: AllFailedDetail}
}

// attempt checks that path is readable and plays it.
func (d *Dispatcher) attempt(ctx context.Context, path string) error {
	if err := CheckReadable(path); err != nil {
		return err
	}

	args := append(slices.Clone(d.opts.PlayerArgs), path)
	result := d.runner.Run(ctx, d.opts.Player, args, d.opts.Timeout)
	if result.Succeeded {
		return nil
	}
	return result.Err
}
