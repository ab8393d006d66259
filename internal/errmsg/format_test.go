//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSearch,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSearch,
			err:      errors.New("yt-dlp exited with status 1"),
			expected: "Failed to search: yt-dlp exited with status 1",
		},
		{
			name:     "resolve operation",
			op:       OpResolve,
			err:      errors.New("video unavailable"),
			expected: "Failed to resolve audio: video unavailable",
		},
		{
			name:     "capture operation",
			op:       OpCapture,
			err:      errors.New("no capture device"),
			expected: "Failed to record audio: no capture device",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("mpv is not running"),
			expected: "Failed to start playback: mpv is not running",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpShelfLoad,
			context:  "Weekly Top Songs",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpShelfLoad,
			context:  "Weekly Top Songs",
			err:      errors.New("timeout"),
			expected: "Failed to load playlist 'Weekly Top Songs': timeout",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpArtistLoad,
			context:  "",
			err:      errors.New("invalid API key"),
			expected: "Failed to load artist: invalid API key",
		},
		{
			name:     "config with path context",
			op:       OpLoadConfig,
			context:  "/home/user/.config/hifi/config.toml",
			err:      errors.New("bad toml"),
			expected: "Failed to load configuration '/home/user/.config/hifi/config.toml': bad toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpSearch, OpShelfLoad, OpArtistLoad, OpImageFetch,
		OpResolve, OpPlaybackStart,
		OpCapture, OpRecognize,
		OpNotify, OpMPRIS,
		OpLoadConfig, OpOpenLogFile, OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}
			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	labels := map[string]string{
		"search":      SearchFailed,
		"empty":       NoResults,
		"shelf":       NoPlaylist,
		"not found":   NotRecognized,
		"recognition": RecognitionFailed,
		"play":        PlayFailed,
		"track":       TrackLoadFailed,
	}
	seen := make(map[string]bool)
	for name, label := range labels {
		if label == "" {
			t.Errorf("%s label is empty", name)
		}
		if seen[label] {
			t.Errorf("%s label %q is duplicated", name, label)
		}
		seen[label] = true
	}
}
