package audio

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/mcp-notify/mcp-notify/internal/errors"
)

func TestBundledAsset(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	path, err := BundledAsset(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, BundledFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bundledWAV, data)

	t.Run("rewrites a modified copy", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("tampered"), 0644))

		again, err := BundledAsset(dir)
		require.NoError(t, err)
		assert.Equal(t, path, again)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bundledWAV, data)
	})
}

func TestCheckReadable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "ok.wav")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := map[string]struct {
		path    string
		wantErr bool
	}{
		"regular file": {path: file},
		"empty path":   {path: "", wantErr: true},
		"missing file": {path: filepath.Join(dir, "missing.wav"), wantErr: true},
		"directory":    {path: dir, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := CheckReadable(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, apperrors.AssetUnreadable, apperrors.KindOf(err))
		})
	}
}

func TestCheckReadable_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file modes are not enforced here")
	}
	t.Parallel()

	path := filepath.Join(t.TempDir(), "locked.wav")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0000))

	err := CheckReadable(path)
	require.Error(t, err)
	assert.Equal(t, apperrors.AssetUnreadable, apperrors.KindOf(err))
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestSupportedExtension(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		path     string
		expected bool
	}{
		"wav":       {path: "/a/b.wav", expected: true},
		"uppercase": {path: "/a/B.WAV", expected: true},
		"oga":       {path: "complete.oga", expected: true},
		"text file": {path: "notes.txt", expected: false},
		"no ext":    {path: "sound", expected: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SupportedExtension(tt.path))
		})
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	bundled, err := BundledAsset(dir)
	require.NoError(t, err)

	t.Run("bundled wav", func(t *testing.T) {
		d, err := Probe(bundled)
		require.NoError(t, err)
		assert.InDelta(t, 400*time.Millisecond, d, float64(10*time.Millisecond))
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(dir, "chime.flac")
		require.NoError(t, os.WriteFile(path, []byte("fLaC"), 0644))

		_, err := Probe(path)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("corrupt wav", func(t *testing.T) {
		path := filepath.Join(dir, "broken.wav")
		require.NoError(t, os.WriteFile(path, []byte("not a wav"), 0644))

		_, err := Probe(path)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Probe(filepath.Join(dir, "missing.wav"))
		assert.Error(t, err)
	})
}
