// mcp-notify - sound and desktop notifications for MCP clients

package main

import (
	"os"

	"github.com/mcp-notify/mcp-notify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
