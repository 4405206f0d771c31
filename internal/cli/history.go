package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mcp-notify/mcp-notify/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent notifications",
	Long:  `View a log of recent notification dispatches with time, tool, message, status and the sound that played.`,
	Example: `  # Last 20 notifications
  mcp-notify history

  # Only failed or timed-out ones
  mcp-notify history --status attempted

  # Machine-readable
  mcp-notify history --json`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Show the N most recent entries (0 for all)")
	historyCmd.Flags().String("status", "", "Filter by status (sent, attempted, skipped)")
	historyCmd.Flags().Bool("json", false, "Print entries as JSON")
	historyCmd.Flags().Bool("clear", false, "Clear all history")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	statusFilter, _ := cmd.Flags().GetString("status")
	asJSON, _ := cmd.Flags().GetBool("json")
	clearFlag, _ := cmd.Flags().GetBool("clear")

	// Validate limit
	if limit < 0 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if !cfg.History.Enabled {
		fmt.Fprintln(out, "History is disabled (history.enabled = false).")
		return nil
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	// Handle clear flag
	if clearFlag {
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("clearing history: %w", err)
		}
		fmt.Fprintln(out, "History cleared.")
		return nil
	}

	// Filtering happens after loading, so read everything when a filter is set.
	readLimit := limit
	if statusFilter != "" {
		readLimit = 0
	}
	entries, err := store.List(ctx, readLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	entries = filterEntries(entries, statusFilter, limit)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		if statusFilter != "" {
			fmt.Fprintf(out, "No matching entries for status '%s'.\n", statusFilter)
		} else {
			fmt.Fprintln(out, "No history available.")
		}
		return nil
	}

	displayEntries(out, entries, time.Now())
	return nil
}

// filterEntries keeps entries matching status, limited to limit items.
// Entries are newest first.
func filterEntries(entries []history.Entry, status string, limit int) []history.Entry {
	result := make([]history.Entry, 0, len(entries))
	for _, e := range entries {
		if status != "" && e.Status != status {
			continue
		}
		result = append(result, e)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// displayEntries formats and displays history entries.
func displayEntries(out io.Writer, entries []history.Entry, now time.Time) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	for _, e := range entries {
		when := humanize.RelTime(e.Timestamp, now, "ago", "from now")

		var status string
		switch e.Status {
		case "sent":
			status = green(fmt.Sprintf("%-9s", e.Status))
		case "attempted":
			status = yellow(fmt.Sprintf("%-9s", e.Status))
		default:
			status = dim(fmt.Sprintf("%-9s", e.Status))
		}

		fmt.Fprintf(out, "%-16s %s %-14s %s\n", when, status, cyan(e.Tool), describeEntry(e))
		if detail := entryDetail(e); detail != "" {
			fmt.Fprintf(out, "%16s %s\n", "", dim(detail))
		}
	}
}

// describeEntry returns the one-line summary of an entry.
func describeEntry(e history.Entry) string {
	subject := e.Message
	if e.Tool == "notify" {
		subject = e.Title + ": " + e.Message
	}
	parts := []string{fmt.Sprintf("%q", subject), e.SoundType}
	if e.Method != "" {
		parts = append(parts, e.Method)
	}
	parts = append(parts, e.Duration)
	return strings.Join(parts, " | ")
}

// entryDetail returns the failure details of an entry, if any.
func entryDetail(e history.Entry) string {
	var details []string
	if e.SoundError != "" {
		details = append(details, "sound: "+e.SoundError)
	}
	if e.PresentationError != "" {
		details = append(details, "notification: "+e.PresentationError)
	}
	return strings.Join(details, "; ")
}
