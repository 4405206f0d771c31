package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mcp-notify/mcp-notify/internal/notify"
)

// NotifyTool handles the notify tool.
type NotifyTool struct {
	svc *Service
}

// NewNotifyTool creates a NotifyTool.
func NewNotifyTool(svc *Service) *NotifyTool {
	return &NotifyTool{svc: svc}
}

// Definition returns the MCP tool definition.
func (t *NotifyTool) Definition() mcp.Tool {
	return mcp.NewTool("notify",
		mcp.WithDescription("Send a desktop notification with an optional sound. "+
			"Use it to tell the user something that needs their attention."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Notification title"),
		),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Notification message"),
		),
		mcp.WithString("sound_type",
			mcp.Description("Kind of event, used for urgency and wording"),
			mcp.Enum(notify.SoundTypes()...),
			mcp.DefaultString(string(notify.SoundInfo)),
		),
	)
}

// Handle processes a notify call.
func (t *NotifyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := requiredString(req, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	message, err := requiredString(req, "message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sound, err := notify.ParseSoundType(req.GetString("sound_type", ""), notify.SoundInfo)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := t.svc.Dispatch(ctx, notify.NewRequest(title, message, sound))
	return mcp.NewToolResultText(resp.Text), nil
}

// TaskCompletedTool handles the task_completed tool.
type TaskCompletedTool struct {
	svc *Service
}

// NewTaskCompletedTool creates a TaskCompletedTool.
func NewTaskCompletedTool(svc *Service) *TaskCompletedTool {
	return &TaskCompletedTool{svc: svc}
}

// Definition returns the MCP tool definition.
func (t *TaskCompletedTool) Definition() mcp.Tool {
	return mcp.NewTool("task_completed",
		mcp.WithDescription("Notify the user that a task has finished. "+
			"Shows a \""+notify.TaskCompletedTitle+"\" notification with an optional sound."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("What was completed"),
		),
		mcp.WithString("sound_type",
			mcp.Description("Kind of event, used for urgency and wording"),
			mcp.Enum(notify.SoundTypes()...),
			mcp.DefaultString(string(notify.SoundSuccess)),
		),
	)
}

// Handle processes a task_completed call.
func (t *TaskCompletedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := requiredString(req, "message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sound, err := notify.ParseSoundType(req.GetString("sound_type", ""), notify.SoundSuccess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := t.svc.Dispatch(ctx, notify.NewTaskCompletedRequest(message, sound))
	return mcp.NewToolResultText(resp.Text), nil
}

// requiredString returns a non-blank string argument.
func requiredString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := req.RequireString(key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("argument %q must not be empty", key)
	}
	return v, nil
}
