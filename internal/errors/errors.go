// Package errors defines the failure taxonomy of the notification dispatch
// engine. Failures are values: the component that detects one records it in
// an outcome record instead of returning it to the caller.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind categorizes a dispatch failure.
type Kind int

const (
	// Unknown is the zero Kind.
	Unknown Kind = iota
	// AssetUnreadable means an audio file is missing or cannot be read.
	AssetUnreadable
	// ProcessSpawnFailure means the external player could not be launched.
	ProcessSpawnFailure
	// ProcessTimeout means the external player exceeded its time budget.
	ProcessTimeout
	// ProcessNonZeroExit means the external player ran but reported failure.
	ProcessNonZeroExit
	// PresentationFailure means the visual notification backend failed.
	PresentationFailure
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case AssetUnreadable:
		return "asset unreadable"
	case ProcessSpawnFailure:
		return "process spawn failure"
	case ProcessTimeout:
		return "process timeout"
	case ProcessNonZeroExit:
		return "process non-zero exit"
	case PresentationFailure:
		return "presentation failure"
	default:
		return "unknown failure"
	}
}

// Failure is a categorized failure carried inside outcome records.
type Failure struct {
	Kind   Kind
	Detail string
	Err    error
}

// Error returns the detail, falling back to the wrapped error and the kind.
func (f *Failure) Error() string {
	switch {
	case f.Detail != "":
		return f.Detail
	case f.Err != nil:
		return f.Err.Error()
	default:
		return f.Kind.String()
	}
}

// Unwrap returns the underlying error, if any.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Is reports whether target is a Failure of the same kind, so that
// errors.Is(err, &Failure{Kind: ProcessTimeout}) matches any timeout.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return t.Kind == f.Kind && (t.Detail == "" || t.Detail == f.Detail)
}

// New creates a Failure with a fixed detail message.
func New(kind Kind, detail string) *Failure {
	return &Failure{Kind: kind, Detail: detail}
}

// Newf creates a Failure with a formatted detail message.
func Newf(kind Kind, format string, args ...any) *Failure {
	return &Failure{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap categorizes err. It returns nil for a nil error.
func Wrap(err error, kind Kind) *Failure {
	if err == nil {
		return nil
	}
	return &Failure{Kind: kind, Err: err}
}

// KindOf returns the kind of the first Failure in err's chain, or Unknown.
func KindOf(err error) Kind {
	var f *Failure
	if stderrors.As(err, &f) {
		return f.Kind
	}
	return Unknown
}

// Detail returns err's message, or "" for a nil error.
func Detail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
