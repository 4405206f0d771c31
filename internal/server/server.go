// Package server exposes the notification tools over the Model Context
// Protocol on stdio.
package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// Name is the MCP server name.
const Name = "mcp-notify"

// New creates the MCP server with both tools registered.
func New(svc *Service, version string) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	notifyTool := NewNotifyTool(svc)
	s.AddTool(notifyTool.Definition(), notifyTool.Handle)

	taskTool := NewTaskCompletedTool(svc)
	s.AddTool(taskTool.Definition(), taskTool.Handle)

	return s
}

// Serve runs s on the given streams until ctx is done or in is closed.
// Protocol errors are logged through logger.
func Serve(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

func serverInstructions() string {
	return `mcp-notify plays a sound and shows a desktop notification.

Use "notify" when the user should look at something now.
Use "task_completed" when a long-running task has finished.

Both tools always return text describing what happened; a failed sound or
notification is reported in the text, not as an error.`
}
