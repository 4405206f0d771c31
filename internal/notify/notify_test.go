package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-notify/mcp-notify/internal/audio"
)

func TestParseSoundType(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		def      SoundType
		expected SoundType
		wantErr  bool
	}{
		"success":                   {input: "success", def: SoundInfo, expected: SoundSuccess},
		"error":                     {input: "error", def: SoundInfo, expected: SoundError},
		"info":                      {input: "info", def: SoundSuccess, expected: SoundInfo},
		"empty uses notify default": {input: "", def: SoundInfo, expected: SoundInfo},
		"empty uses task default":   {input: "", def: SoundSuccess, expected: SoundSuccess},
		"unknown":                   {input: "warning", def: SoundInfo, wantErr: true},
		"wrong case":                {input: "SUCCESS", def: SoundInfo, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSoundType(tt.input, tt.def)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSoundType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	req := NewRequest("Build", "done", SoundInfo)
	assert.Equal(t, Request{Title: "Build", Message: "done", Kind: KindNotify, SoundType: SoundInfo}, req)

	task := NewTaskCompletedRequest("deployed", SoundSuccess)
	assert.Equal(t, TaskCompletedTitle, task.Title)
	assert.Equal(t, KindTaskCompleted, task.Kind)
	assert.Equal(t, "deployed", task.Message)
}

func TestOutcome_Failed(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		outcome  Outcome
		expected bool
	}{
		"not attempted": {
			outcome:  Outcome{Sound: audio.Outcome{Succeeded: false}},
			expected: false,
		},
		"all good": {
			outcome:  Outcome{Attempted: true, Sound: audio.Outcome{Succeeded: true, Method: audio.MethodCustom}},
			expected: false,
		},
		"sound failed": {
			outcome:  Outcome{Attempted: true, Sound: audio.Outcome{ErrorDetail: audio.AllFailedDetail}},
			expected: true,
		},
		"presentation failed": {
			outcome:  Outcome{Attempted: true, Sound: audio.Silent(), PresentationError: "no daemon"},
			expected: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.outcome.Failed())
		})
	}
}

func TestUrgencyFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, UrgencyCritical, urgencyFor(SoundError))
	assert.Equal(t, UrgencyNormal, urgencyFor(SoundSuccess))
	assert.Equal(t, UrgencyNormal, urgencyFor(SoundInfo))
}
