package notify

import (
	"context"

	"github.com/gen2brain/beeep"
)

// Visual shows a notification in the OS notification area. Implementations
// must not play a sound of their own.
type Visual interface {
	Show(ctx context.Context, req Request) error
}

// Urgency levels of the freedesktop notification protocol
const (
	UrgencyLow      byte = 0
	UrgencyNormal   byte = 1
	UrgencyCritical byte = 2
)

// urgencyFor maps a sound type to a notification urgency.
// Errors are critical, everything else is normal.
func urgencyFor(s SoundType) byte {
	if s == SoundError {
		return UrgencyCritical
	}
	return UrgencyNormal
}

// beeepVisual shows notifications through beeep. beeep cannot pass the
// freedesktop suppress-sound hint, so on Linux it is only used without a
// session bus.
type beeepVisual struct{}

func (beeepVisual) Show(_ context.Context, req Request) error {
	return beeep.Notify(req.Title, req.Message, "")
}

// noopVisual shows nothing. It is used when visual output is unavailable.
type noopVisual struct{}

func (noopVisual) Show(context.Context, Request) error { return nil }

// NoopVisual returns a Visual that does nothing.
func NoopVisual() Visual {
	return noopVisual{}
}
