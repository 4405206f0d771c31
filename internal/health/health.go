// Package health checks that the local environment can play sounds and show
// desktop notifications with the current configuration.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mcp-notify/mcp-notify/internal/audio"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks do not fail the report; a fallback covers them.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options describes what to check. Zero-valued hooks use the real environment.
type Options struct {
	Player              string
	AudioEnabled        bool
	NotificationEnabled bool
	CustomAudioPath     string
	BundledAudioPath    string

	LookPath func(string) (string, error)
	Getenv   func(string) string
	GOOS     string
}

func (o *Options) setDefaults() {
	if o.LookPath == nil {
		o.LookPath = exec.LookPath
	}
	if o.Getenv == nil {
		o.Getenv = os.Getenv
	}
	if o.GOOS == "" {
		o.GOOS = runtime.GOOS
	}
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(opts Options) *HealthReport {
	opts.setDefaults()

	report := &HealthReport{
		Checks: make([]CheckResult, 0),
		Passed: true,
	}
	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed && !c.Optional {
			report.Passed = false
		}
	}

	if opts.AudioEnabled {
		add(CheckPlayer(opts.Player, opts.LookPath))
		if opts.CustomAudioPath != "" {
			custom := CheckAudioFile("Custom audio", opts.CustomAudioPath)
			custom.Optional = true
			add(custom)
		}
		add(CheckAudioFile("Bundled audio", opts.BundledAudioPath))
	}

	if opts.NotificationEnabled && opts.GOOS == "linux" {
		add(CheckDisplay(opts.Getenv))
		add(CheckSessionBus(opts.Getenv))
	}

	return report
}

// CheckPlayer checks if the audio player command is available
func CheckPlayer(player string, lookPath func(string) (string, error)) CheckResult {
	name := "Audio player"
	path, err := lookPath(player)
	if err != nil {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("%s not found in PATH", player),
		}
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s found at %s", player, path),
	}
}

// CheckAudioFile checks that path is a readable audio file
func CheckAudioFile(name, path string) CheckResult {
	if err := audio.CheckReadable(path); err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}

	msg := path
	if d, err := audio.Probe(path); err == nil {
		msg = fmt.Sprintf("%s (%s)", path, d.Round(time.Millisecond))
	}
	return CheckResult{Name: name, Passed: true, Message: msg}
}

// CheckDisplay checks if a graphical session is available
func CheckDisplay(getenv func(string) string) CheckResult {
	name := "Display"
	for _, v := range []string{"WAYLAND_DISPLAY", "DISPLAY"} {
		if val := getenv(v); val != "" {
			return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s=%s", v, val)}
		}
	}
	return CheckResult{
		Name:    name,
		Passed:  false,
		Message: "neither DISPLAY nor WAYLAND_DISPLAY is set",
	}
}

// CheckSessionBus checks if the D-Bus session bus address is known
func CheckSessionBus(getenv func(string) string) CheckResult {
	name := "D-Bus session bus"
	if addr := getenv("DBUS_SESSION_BUS_ADDRESS"); addr != "" {
		return CheckResult{Name: name, Passed: true, Message: addr, Optional: true}
	}
	if runtimeDir := getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		bus := filepath.Join(runtimeDir, "bus")
		if _, err := os.Stat(bus); err == nil {
			return CheckResult{Name: name, Passed: true, Message: "unix:path=" + bus, Optional: true}
		}
	}
	return CheckResult{
		Name:     name,
		Passed:   false,
		Message:  "session bus not found, falling back to beeep",
		Optional: true,
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder

	for _, check := range report.Checks {
		mark := "✓"
		switch {
		case check.Passed:
		case check.Optional:
			mark = "!"
		default:
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}

	return b.String()
}
