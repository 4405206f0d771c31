package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
)

// Display shows a spinner while work is running and a marked line when it ends
type Display struct {
	mu           sync.Mutex
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
}

// NewDisplay creates a display writing to out with the given terminal capabilities
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start begins displaying progress for msg
func (d *Display) Start(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()

	if d.capabilities.IsTTY {
		// TTY mode: Start spinner animation
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
			spinner.WithWriter(d.out),
		)
		d.spinner.Suffix = " " + d.fit(msg)
		d.spinner.Start()
		return
	}

	// Non-interactive mode: Just print the message
	fmt.Fprintln(d.out, msg)
}

// Finish stops the spinner and prints msg marked according to r
func (d *Display) Finish(r Result, msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	fmt.Fprintf(d.out, "%s %s\n", markFor(r, d.symbols, d.capabilities.SupportsColor), msg)
}

// Stop stops the spinner without showing a result
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

func (d *Display) stopLocked() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// fit keeps the spinner line on one row of a known-width terminal
func (d *Display) fit(msg string) string {
	if d.capabilities.Width <= 0 {
		return msg
	}
	return truncate(msg, d.capabilities.Width-2)
}
