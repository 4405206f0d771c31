// Package config loads the mcp-notify configuration.
//
// Sources are layered with koanf, lowest priority first: built-in defaults,
// the global config file (~/.mcp-notify/config.{json,yaml,yml,toml}), an
// explicit config file, MCP_NOTIFY_* environment variables and finally
// command-line overrides. The result is validated once and then treated as
// read-only for the lifetime of the process.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "MCP_NOTIFY_"

// Configuration represents the mcp-notify configuration.
type Configuration struct {
	AudioPath           string        `koanf:"audio_path"`
	AudioEnabled        bool          `koanf:"audio_enabled"`
	NotificationEnabled bool          `koanf:"notification_enabled"`
	Player              string        `koanf:"player" validate:"required"`
	PlayerArgs          []string      `koanf:"player_args"`
	PlayerTimeout       time.Duration `koanf:"player_timeout" validate:"min=100ms,max=1m"`
	RequestDeadline     time.Duration `koanf:"request_deadline" validate:"min=100ms,max=1m"`
	BundledAudioPath    string        `koanf:"bundled_audio_path"`
	AppName             string        `koanf:"app_name" validate:"required"`
	LogLevel            string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	History             HistoryConfig `koanf:"history"`

	// Sources lists the config files that were loaded, in load order.
	Sources []string `koanf:"-"`
}

// HistoryConfig controls the dispatch history.
type HistoryConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Backend    string `koanf:"backend" validate:"oneof=yaml sqlite"`
	Dir        string `koanf:"dir" validate:"required_if=Enabled true"`
	MaxEntries int    `koanf:"max_entries" validate:"min=1,max=100000"`
}

// Load loads configuration from defaults, config files, the environment and overrides.
// Priority: overrides > environment > explicit config file > global config file > defaults.
// Overrides are keyed by koanf path (e.g. "audio_enabled") and usually come from CLI flags.
func Load(configPath string, overrides map[string]any) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	var sources []string

	if globalPath := findGlobalConfig(); globalPath != "" {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
		sources = append(sources, globalPath)
	}

	if configPath != "" {
		configPath = expandHomePath(configPath)
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		if err := loadFile(k, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		sources = append(sources, configPath)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg, strings.Join(sources, ", ")); err != nil {
		return nil, err
	}

	cfg.AudioPath = expandHomePath(cfg.AudioPath)
	cfg.BundledAudioPath = expandHomePath(cfg.BundledAudioPath)
	cfg.History.Dir = expandHomePath(cfg.History.Dir)
	cfg.Sources = sources

	return &cfg, nil
}

// loadFile loads a config file with the parser matching its extension.
func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return err
	}
	return k.Load(file.Provider(path), parser)
}

// findGlobalConfig returns the first global config file that exists, or "".
func findGlobalConfig() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		path := filepath.Join(homeDir, ".mcp-notify", "config"+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nested keys.
// Example: MCP_NOTIFY_HISTORY__MAX_ENTRIES -> history.max_entries
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// SlogLevel maps LogLevel to a slog level.
func (c *Configuration) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
