package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndPrefix(t *testing.T) {
	var buf bytes.Buffer

	l := New(&buf, false)
	assert.Equal(t, log.InfoLevel, l.GetLevel())
	l.Debug("hidden")
	l.Info("task started", "task", "search")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "hifi")
	assert.Contains(t, out, "task started")
	assert.Contains(t, out, "task=search")

	assert.Equal(t, log.DebugLevel, New(&buf, true).GetLevel())
}

func TestNew_NilWriter(t *testing.T) {
	l := New(nil, true)
	l.Info("discarded")
}

func TestOpen_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hifi.log")

	l, closer, err := Open(path, true)
	require.NoError(t, err)
	With(l, "component", "player").Debug("mpv started")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mpv started")
	assert.Contains(t, string(data), "component=player")
}
