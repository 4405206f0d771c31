package audio

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/mcp-notify/mcp-notify/internal/errors"
)

// BundledFileName is the file name of the bundled asset on disk.
const BundledFileName = "notification.wav"

//go:embed assets/notification.wav
var bundledWAV []byte

// supportedAudioExtensions contains file extensions the usual players accept
var supportedAudioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".aiff": true,
	".aif":  true,
	".ogg":  true,
	".oga":  true,
	".flac": true,
	".m4a":  true,
}

// SupportedExtension reports whether path has a common audio file extension.
func SupportedExtension(path string) bool {
	return supportedAudioExtensions[strings.ToLower(filepath.Ext(path))]
}

// DefaultAssetDir returns the directory the bundled asset is written to.
func DefaultAssetDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "mcp-notify"), nil
}

// BundledAsset writes the embedded asset into dir unless an identical copy
// is already there, and returns its path.
func BundledAsset(dir string) (string, error) {
	path := filepath.Join(dir, BundledFileName)

	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, bundledWAV) {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating asset directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, bundledWAV, 0644); err != nil {
		return "", fmt.Errorf("writing temp asset file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp asset file: %w", err)
	}

	return path, nil
}

// CheckReadable verifies that path names a regular file the process can open.
func CheckReadable(path string) error {
	if path == "" {
		return apperrors.New(apperrors.AssetUnreadable, "no audio file configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.AssetUnreadable)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return apperrors.Wrap(err, apperrors.AssetUnreadable)
	}
	if info.IsDir() {
		return apperrors.Newf(apperrors.AssetUnreadable, "%s is a directory", path)
	}

	return nil
}
