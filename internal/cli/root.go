// Package cli provides the Cobra commands of mcp-notify: the MCP stdio server
// (the default), a terminal test command, the dispatch history and version
// information.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "mcp-notify",
	Short: "MCP server that plays a sound and shows a desktop notification",
	Long: `mcp-notify - sound and desktop notifications for MCP clients

Runs a Model Context Protocol server on stdio with two tools:
  notify          show a notification with a title and message
  task_completed  report that a task has finished

Every call plays a sound (a custom file first, then the bundled sound) and
shows a desktop notification. Calls never hang and never fail: problems are
reported in the returned text.`,
	Example: `  # Run the MCP server (what MCP clients launch)
  mcp-notify

  # Use a custom sound
  mcp-notify --audio ~/sounds/ding.wav

  # Try the configured sound and notification from a terminal
  mcp-notify test "Hello from mcp-notify"

  # Show recent notifications
  mcp-notify history -n 10`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

// addGlobalFlags defines the flags shared by every command.
func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringP("audio", "a", "", "Custom audio file, tried before the bundled sound")
	fs.Bool("no-audio", false, "Disable sound")
	fs.Bool("no-notification", false, "Disable desktop notifications (and their sound)")
	fs.StringP("config", "c", "", "Path to config file (json, yaml or toml)")
	fs.BoolP("verbose", "v", false, "Enable debug logging")
}
