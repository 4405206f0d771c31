package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcp-notify/mcp-notify/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that sounds and desktop notifications can work",
	Long: `Run health checks for the current configuration:
- the audio player is on PATH
- the custom and bundled sound files are readable
- a display and D-Bus session bus are available (Linux)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger := newLogger(cfg, verbose, cmd.ErrOrStderr())

		report := health.RunHealthChecks(health.Options{
			Player:              cfg.Player,
			AudioEnabled:        cfg.AudioEnabled,
			NotificationEnabled: cfg.NotificationEnabled,
			CustomAudioPath:     cfg.AudioPath,
			BundledAudioPath:    resolveBundledAsset(cfg, logger),
		})

		out := cmd.OutOrStdout()
		fmt.Fprint(out, health.FormatReport(report))
		if len(report.Checks) == 0 {
			fmt.Fprintln(out, "Nothing to check: sound and desktop notifications are disabled")
		}

		if !report.Passed {
			return errors.New("health checks failed")
		}
		return nil
	},
}
