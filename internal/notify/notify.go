package notify

import (
	"errors"
	"fmt"

	"github.com/mcp-notify/mcp-notify/internal/audio"
)

// TaskCompletedTitle is the title shown for task completion requests.
const TaskCompletedTitle = "Task Completed"

// Kind identifies which operation produced a request.
type Kind string

const (
	// KindNotify is a notification with a caller-supplied title
	KindNotify Kind = "notify"
	// KindTaskCompleted is a task completion report
	KindTaskCompleted Kind = "task_completed"
)

// SoundType is the caller's description of the event. It selects
// urgency and wording only; every sound type plays the same asset chain.
type SoundType string

const (
	// SoundSuccess indicates a successful operation
	SoundSuccess SoundType = "success"
	// SoundError indicates a failed operation
	SoundError SoundType = "error"
	// SoundInfo indicates an informational notification
	SoundInfo SoundType = "info"
)

// ErrInvalidSoundType is returned by ParseSoundType for unknown values.
var ErrInvalidSoundType = errors.New("invalid sound type")

// Valid reports whether s is a known sound type.
func (s SoundType) Valid() bool {
	switch s {
	case SoundSuccess, SoundError, SoundInfo:
		return true
	default:
		return false
	}
}

// ParseSoundType converts s to a SoundType. An empty string yields def.
func ParseSoundType(s string, def SoundType) (SoundType, error) {
	if s == "" {
		return def, nil
	}
	st := SoundType(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w %q: must be one of success, error, info", ErrInvalidSoundType, s)
	}
	return st, nil
}

// SoundTypes returns the accepted sound type names.
func SoundTypes() []string {
	return []string{string(SoundSuccess), string(SoundError), string(SoundInfo)}
}

// Request is one notification to present.
type Request struct {
	Title     string
	Message   string
	Kind      Kind
	SoundType SoundType
}

// NewRequest creates a notify request.
func NewRequest(title, message string, sound SoundType) Request {
	return Request{
		Title:     title,
		Message:   message,
		Kind:      KindNotify,
		SoundType: sound,
	}
}

// NewTaskCompletedRequest creates a task completion request.
func NewTaskCompletedRequest(message string, sound SoundType) Request {
	return Request{
		Title:     TaskCompletedTitle,
		Message:   message,
		Kind:      KindTaskCompleted,
		SoundType: sound,
	}
}

// Outcome is what a Presenter did for one request.
type Outcome struct {
	// Attempted is false when presentation was disabled and nothing ran.
	Attempted bool
	// Sound is the result of the sound step.
	Sound audio.Outcome
	// PresentationError describes a visual notification failure, or "".
	PresentationError string
}

// Failed reports whether any step of an attempted presentation failed.
func (o Outcome) Failed() bool {
	return o.Attempted && (!o.Sound.Succeeded || o.PresentationError != "")
}
