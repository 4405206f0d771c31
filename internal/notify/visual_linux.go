//go:build linux

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notificationsMethod = "org.freedesktop.Notifications.Notify"
)

// errNoSessionBus reports that the session bus could not be reached.
var errNoSessionBus = errors.New("session bus unavailable")

// dbusVisual sends freedesktop notifications over the session bus. It falls
// back to beeep only when the bus itself is unreachable: beeep cannot set the
// suppress-sound hint, so a reachable daemon is never asked twice.
type dbusVisual struct {
	appName  string
	send     func(context.Context, Request) error
	fallback Visual
	logger   *slog.Logger
}

// NewVisual returns the notification backend for the current platform.
// A nil logger uses slog.Default().
func NewVisual(appName string, logger *slog.Logger) Visual {
	if logger == nil {
		logger = slog.Default()
	}
	v := &dbusVisual{
		appName:  appName,
		fallback: beeepVisual{},
		logger:   logger,
	}
	v.send = v.notify
	return v
}

// Show sends the notification over D-Bus, using beeep when there is no bus.
func (v *dbusVisual) Show(ctx context.Context, req Request) error {
	err := v.send(ctx, req)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errNoSessionBus) {
		return err
	}
	v.logger.Debug("no session bus, falling back to beeep", "error", err)

	if fbErr := v.fallback.Show(ctx, req); fbErr != nil {
		return fmt.Errorf("dbus: %v; fallback: %w", err, fbErr)
	}
	return nil
}

func (v *dbusVisual) notify(ctx context.Context, req Request) error {
	// SessionBus is shared and must not be closed.
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("%w: %v", errNoSessionBus, err)
	}

	hints := map[string]dbus.Variant{
		"suppress-sound": dbus.MakeVariant(true),
		"urgency":        dbus.MakeVariant(urgencyFor(req.SoundType)),
	}

	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.CallWithContext(ctx, notificationsMethod, 0,
		v.appName,     // app_name
		uint32(0),     // replaces_id
		"",            // app_icon
		req.Title,     // summary
		req.Message,   // body
		[]string{},    // actions
		hints,         // hints
		int32(-1),     // expire_timeout, server default
	)
	if call.Err != nil {
		return fmt.Errorf("calling %s: %w", notificationsMethod, call.Err)
	}
	return nil
}
