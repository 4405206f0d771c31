package cli

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcp-notify/mcp-notify/internal/audio"
	"github.com/mcp-notify/mcp-notify/internal/config"
	"github.com/mcp-notify/mcp-notify/internal/history"
	"github.com/mcp-notify/mcp-notify/internal/notify"
	"github.com/mcp-notify/mcp-notify/internal/runner"
	"github.com/mcp-notify/mcp-notify/internal/server"
)

// flagOverrides returns config overrides for the global flags the user set.
// Unset flags are left out so they do not mask files or the environment.
func flagOverrides(cmd *cobra.Command) map[string]any {
	flags := cmd.Flags()
	overrides := make(map[string]any)

	if flags.Changed("audio") {
		v, _ := flags.GetString("audio")
		overrides["audio_path"] = v
	}
	if flags.Changed("no-audio") {
		if v, _ := flags.GetBool("no-audio"); v {
			overrides["audio_enabled"] = false
		}
	}
	if flags.Changed("no-notification") {
		if v, _ := flags.GetBool("no-notification"); v {
			overrides["notification_enabled"] = false
		}
	}
	return overrides
}

// loadConfig loads the configuration for cmd, applying its flags.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath, flagOverrides(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger creates the process logger. Logs always go to w (stderr),
// never stdout, which belongs to the MCP transport.
func newLogger(cfg *config.Configuration, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// engine holds the wired dispatch stack for one process.
type engine struct {
	cfg     *config.Configuration
	logger  *slog.Logger
	service *server.Service
	history *history.Writer
}

// buildEngine loads the configuration and wires runner, audio dispatcher,
// presenter, guard and history into a Service.
func buildEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cfg, verbose, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	for _, src := range cfg.Sources {
		logger.Debug("loaded config file", "path", src)
	}

	bundled := resolveBundledAsset(cfg, logger)
	checkAssets(cfg, bundled, logger)

	dispatcher := audio.NewDispatcher(runner.NewExecRunner(logger), audio.Options{
		Player:      cfg.Player,
		PlayerArgs:  cfg.PlayerArgs,
		Timeout:     cfg.PlayerTimeout,
		BundledPath: bundled,
	}, logger)

	presenter := notify.NewPresenter(dispatcher, notify.NewVisual(cfg.AppName, logger), logger)
	guard := notify.NewGuard(presenter, logger)
	hist := openHistory(cfg, logger)

	return &engine{
		cfg:     cfg,
		logger:  logger,
		service: server.NewService(guard, cfg.Dispatch(), cfg.RequestDeadline, hist, logger),
		history: hist,
	}, nil
}

// Close releases the history store.
func (e *engine) Close() {
	if err := e.history.Close(); err != nil {
		e.logger.Warn("closing history", "error", err)
	}
}

// resolveBundledAsset returns the configured bundled asset path, or writes the
// embedded asset into the cache directory. Failure leaves the path empty so
// the bundled attempt fails as unreadable.
func resolveBundledAsset(cfg *config.Configuration, logger *slog.Logger) string {
	if cfg.BundledAudioPath != "" {
		return cfg.BundledAudioPath
	}

	dir, err := audio.DefaultAssetDir()
	if err != nil {
		logger.Warn("bundled sound unavailable", "error", err)
		return ""
	}
	path, err := audio.BundledAsset(dir)
	if err != nil {
		logger.Warn("bundled sound unavailable", "error", err)
		return ""
	}
	return path
}

// checkAssets warns about sound files that are likely to fail: unreadable,
// unusual extension, or longer than the player timeout.
func checkAssets(cfg *config.Configuration, bundled string, logger *slog.Logger) {
	if !cfg.AudioEnabled {
		return
	}

	if custom := cfg.AudioPath; custom != "" {
		if err := audio.CheckReadable(custom); err != nil {
			logger.Warn("custom audio file is not readable, the bundled sound will be used", "path", custom, "error", err)
		} else {
			if !audio.SupportedExtension(custom) {
				logger.Warn("custom audio file has an unsupported extension, trying it anyway", "path", custom)
			}
			warnIfTooLong(custom, cfg.PlayerTimeout, logger)
		}
	}

	if bundled != "" {
		warnIfTooLong(bundled, cfg.PlayerTimeout, logger)
	}
}

func warnIfTooLong(path string, timeout time.Duration, logger *slog.Logger) {
	d, err := audio.Probe(path)
	if err != nil {
		logger.Debug("could not probe audio duration", "path", path, "error", err)
		return
	}
	if d > timeout {
		logger.Warn("audio file is longer than player_timeout and will be cut off",
			"path", path, "duration", d.Round(time.Millisecond), "player_timeout", timeout)
	}
}

// openHistory opens the configured history store. Errors disable history
// for this process instead of failing startup.
func openHistory(cfg *config.Configuration, logger *slog.Logger) *history.Writer {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg.History)
	if err != nil {
		logger.Warn("history disabled", "error", err)
		return nil
	}
	return history.NewWriter(store, cfg.History.MaxEntries, logger)
}
