package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mcp-notify/mcp-notify/internal/build"
	"github.com/mcp-notify/mcp-notify/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio (default)",
	Long: `Run the MCP server on stdin/stdout. This is what happens when mcp-notify
is started without a subcommand; MCP clients launch it this way.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		e.logger.Warn("stdin is a terminal; mcp-notify expects to be launched by an MCP client. Try 'mcp-notify test' to check your setup")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e.logger.Info("starting MCP server", "version", build.Version, "player", e.cfg.Player)

	s := server.New(e.service, build.Version)
	err = server.Serve(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout(), e.logger)
	switch {
	case err == nil, errors.Is(err, io.EOF), ctx.Err() != nil:
		e.logger.Info("MCP server stopped")
		return nil
	default:
		return fmt.Errorf("serving MCP: %w", err)
	}
}
