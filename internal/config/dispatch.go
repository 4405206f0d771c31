package config

// DispatchConfig is the part of the configuration the dispatch engine reads
// on every call. It is built once and passed by value, never mutated.
type DispatchConfig struct {
	// CustomAudioPath is tried before the bundled asset. Empty means unset.
	CustomAudioPath string
	// AudioEnabled turns the sound step on or off.
	AudioEnabled bool
	// DesktopNotificationEnabled turns the whole presentation on or off.
	DesktopNotificationEnabled bool
}

// Dispatch returns the immutable dispatch settings of c.
func (c *Configuration) Dispatch() DispatchConfig {
	return DispatchConfig{
		CustomAudioPath:            c.AudioPath,
		AudioEnabled:               c.AudioEnabled,
		DesktopNotificationEnabled: c.NotificationEnabled,
	}
}
