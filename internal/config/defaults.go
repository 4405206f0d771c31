package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"audio_path":           "",
		"audio_enabled":        true,
		"notification_enabled": true,
		"player":               "paplay",
		"player_args":          []string{},
		"player_timeout":       "5s",
		"request_deadline":     "5s",
		"bundled_audio_path":   "",
		"app_name":             "mcp-notify",
		"log_level":            "warn",
		"history.enabled":      true,
		"history.backend":      "yaml",
		"history.dir":          "~/.mcp-notify/state",
		"history.max_entries":  500,
	}
}
