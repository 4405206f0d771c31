package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mcp-notify/mcp-notify/internal/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  "Display version, commit, build date, and Go version information for mcp-notify",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "mcp-notify version %s\n", build.Version)
		fmt.Fprintf(out, "Built from commit: %s\n", build.Commit)
		fmt.Fprintf(out, "Build date: %s\n", build.BuildDate)
		fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		fmt.Fprintf(out, "Platform: %s\n", build.Platform())
	},
}
