// Package progress renders terminal feedback for interactive commands: a
// spinner while a dispatch is in flight and a marked result line after it.
package progress

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the output is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Warning is the partial-success indicator ("!" or "[WARN]")
	Warning string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}

// Result classifies a finished operation for display
type Result int

const (
	// ResultSuccess means everything worked
	ResultSuccess Result = iota
	// ResultWarning means the operation finished but part of it failed
	ResultWarning
	// ResultFailure means the operation failed
	ResultFailure
)

// String returns the string representation of Result
func (r Result) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultWarning:
		return "warning"
	case ResultFailure:
		return "failure"
	default:
		return "unknown"
	}
}
