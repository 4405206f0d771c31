package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(t *testing.T, svc *Service, message string) string {
	t.Helper()
	s := New(svc, "test")
	resp := s.HandleMessage(context.Background(), json.RawMessage(message))
	require.NotNil(t, resp)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestNew_ListsTools(t *testing.T) {
	t.Parallel()
	svc := NewService(NewMockDispatcher(), testCfg, time.Second, nil, nil)

	out := handle(t, svc, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

	assert.Contains(t, out, `"name":"notify"`)
	assert.Contains(t, out, `"name":"task_completed"`)
}

func TestNew_CallsTool(t *testing.T) {
	t.Parallel()
	mock := NewMockDispatcher()
	svc := NewService(mock, testCfg, time.Second, nil, nil)

	out := handle(t, svc, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"task_completed","arguments":{"message":"All tests passed"}}}`)

	assert.Contains(t, out, "sent All tests passed")
	assert.Equal(t, 1, mock.CallCount())
}
