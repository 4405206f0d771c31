package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-notify/mcp-notify/internal/history"
)

func seedHistory(t *testing.T, home string, entries ...history.Entry) {
	t.Helper()
	store := history.NewYAMLStore(filepath.Join(home, ".mcp-notify", "state"))
	for _, e := range entries {
		require.NoError(t, store.Append(context.Background(), e, 0))
	}
}

func sampleEntries() []history.Entry {
	now := time.Now()
	return []history.Entry{
		{ID: "01", Timestamp: now.Add(-2 * time.Hour), Tool: "notify", Title: "Build", Message: "Done", SoundType: "info", Status: "sent", Method: "bundled-file", Duration: "80ms"},
		{ID: "02", Timestamp: now.Add(-time.Hour), Tool: "task_completed", Title: "Task Completed", Message: "Tests passed", SoundType: "success", Status: "attempted", Method: "none", SoundError: "All audio playback methods failed", Duration: "40ms"},
		{ID: "03", Timestamp: now.Add(-time.Minute), Tool: "notify", Title: "Deploy", Message: "Started", SoundType: "info", Status: "skipped", Method: "none", Duration: "1ms"},
	}
}

func TestHistoryCmd(t *testing.T) {
	tests := map[string]struct {
		args        []string
		wantContain []string
		wantAbsent  []string
	}{
		"lists newest first": {
			args:        []string{"history"},
			wantContain: []string{`"Build: Done"`, `"Tests passed"`, "sound: All audio playback methods failed", "ago"},
		},
		"limit": {
			args:        []string{"history", "-n", "1"},
			wantContain: []string{`"Deploy: Started"`},
			wantAbsent:  []string{"Build", "Tests passed"},
		},
		"status filter": {
			args:        []string{"history", "--status", "attempted"},
			wantContain: []string{"Tests passed"},
			wantAbsent:  []string{"Build", "Deploy"},
		},
		"status with limit": {
			args:        []string{"history", "--status", "sent", "-n", "5"},
			wantContain: []string{"Build: Done"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			home := isolateHome(t)
			seedHistory(t, home, sampleEntries()...)

			stdout, _, err := executeCommand(t, nil, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.wantContain {
				assert.Contains(t, stdout, want)
			}
			for _, absent := range tt.wantAbsent {
				assert.NotContains(t, stdout, absent)
			}
		})
	}
}

func TestHistoryCmd_Empty(t *testing.T) {
	isolateHome(t)

	stdout, _, err := executeCommand(t, nil, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history available.\n", stdout)

	stdout, _, err = executeCommand(t, nil, "history", "--status", "sent")
	require.NoError(t, err)
	assert.Equal(t, "No matching entries for status 'sent'.\n", stdout)
}

func TestHistoryCmd_JSON(t *testing.T) {
	home := isolateHome(t)
	seedHistory(t, home, sampleEntries()...)

	stdout, _, err := executeCommand(t, nil, "history", "--json")
	require.NoError(t, err)

	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "03", entries[0].ID)
	assert.Equal(t, "01", entries[2].ID)
}

func TestHistoryCmd_Clear(t *testing.T) {
	home := isolateHome(t)
	seedHistory(t, home, sampleEntries()...)

	stdout, _, err := executeCommand(t, nil, "history", "--clear")
	require.NoError(t, err)
	assert.Equal(t, "History cleared.\n", stdout)

	stdout, _, err = executeCommand(t, nil, "history")
	require.NoError(t, err)
	assert.Equal(t, "No history available.\n", stdout)
}

func TestHistoryCmd_Disabled(t *testing.T) {
	isolateHome(t)
	t.Setenv("MCP_NOTIFY_HISTORY__ENABLED", "false")

	stdout, _, err := executeCommand(t, nil, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "History is disabled")
}

func TestHistoryCmd_NegativeLimit(t *testing.T) {
	isolateHome(t)

	_, _, err := executeCommand(t, nil, "history", "-n", "-1")
	assert.Error(t, err)
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()
	entries := []history.Entry{
		{ID: "3", Status: "sent"},
		{ID: "2", Status: "attempted"},
		{ID: "1", Status: "sent"},
	}

	assert.Len(t, filterEntries(entries, "", 0), 3)
	assert.Len(t, filterEntries(entries, "", 2), 2)

	sent := filterEntries(entries, "sent", 0)
	require.Len(t, sent, 2)
	assert.Equal(t, "3", sent[0].ID)

	limited := filterEntries(entries, "sent", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "3", limited[0].ID)
}

func TestDisplayEntries(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []history.Entry{{
		Timestamp:         now.Add(-3 * time.Minute),
		Tool:              "task_completed",
		Message:           "All tests passed",
		SoundType:         "success",
		Status:            "attempted",
		Method:            "bundled-file",
		PresentationError: "no daemon",
		Duration:          "12ms",
	}}

	var buf bytes.Buffer
	displayEntries(&buf, entries, now)

	out := buf.String()
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, `"All tests passed" | success | bundled-file | 12ms`)
	assert.Contains(t, out, "notification: no daemon")
}
