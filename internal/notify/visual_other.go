//go:build !linux

package notify

import "log/slog"

// NewVisual returns the notification backend for the current platform.
func NewVisual(_ string, _ *slog.Logger) Visual {
	return beeepVisual{}
}
