package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcp-notify/mcp-notify/internal/notify"
	"github.com/mcp-notify/mcp-notify/internal/progress"
)

var testCmd = &cobra.Command{
	Use:   "test [message]",
	Short: "Send one notification using the current configuration",
	Long: `Send one notification through the same path the MCP tools use, and show
what happened. Useful to check the player, the sound files and the desktop
notification daemon.`,
	Example: `  # Default test notification
  mcp-notify test

  # Report a failed task
  mcp-notify test --task --sound-type error "Deploy failed"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTest,
}

func init() {
	testCmd.Flags().String("title", "mcp-notify", "Notification title")
	testCmd.Flags().String("sound-type", "", "Sound type: success, error or info")
	testCmd.Flags().Bool("task", false, "Send a task completion instead of a plain notification")
}

func runTest(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	soundType, _ := cmd.Flags().GetString("sound-type")
	task, _ := cmd.Flags().GetBool("task")

	message := "This is a test notification"
	if len(args) == 1 {
		message = args[0]
	}

	var req notify.Request
	if task {
		st, err := notify.ParseSoundType(soundType, notify.SoundSuccess)
		if err != nil {
			return err
		}
		req = notify.NewTaskCompletedRequest(message, st)
	} else {
		st, err := notify.ParseSoundType(soundType, notify.SoundInfo)
		if err != nil {
			return err
		}
		req = notify.NewRequest(title, message, st)
	}

	e, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	caps := progress.TerminalCapabilities{}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	display := progress.NewDisplay(caps, cmd.OutOrStdout())

	display.Start("Sending " + strings.ReplaceAll(string(req.Kind), "_", " ") + " notification")
	resp := e.service.Dispatch(cmd.Context(), req)
	display.Finish(resultFor(resp), resp.Text)

	return nil
}

// resultFor maps a dispatch status to a display result.
func resultFor(resp notify.Response) progress.Result {
	switch {
	case resp.Status == notify.StatusSent:
		return progress.ResultSuccess
	case resp.TimedOut:
		return progress.ResultFailure
	default:
		return progress.ResultWarning
	}
}
