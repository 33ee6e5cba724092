package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jwebster45206/fun-house/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_ProductionUsesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithError(WithSessionID(l, "abc"), errors.New("boom")).Info("Session ended")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Session ended", record["msg"])
	assert.Equal(t, "abc", record["session_id"])
	assert.Equal(t, "boom", record["error"])
}

func TestSetup_DevelopmentUsesTextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	l.Info("hidden")
	l.Warn("shown", "room", "Riddle Room")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, `room="Riddle Room"`)
}

func TestOutput(t *testing.T) {
	w, closeFn, err := Output(&config.Config{ConsoleMode: config.ModeTUI})
	require.NoError(t, err)
	assert.Equal(t, io.Discard, w)
	assert.NoError(t, closeFn())

	w, closeFn, err = Output(&config.Config{ConsoleMode: config.ModePlain})
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeFn())

	path := filepath.Join(t.TempDir(), "funhouse.log")
	w, closeFn, err = Output(&config.Config{ConsoleMode: config.ModeTUI, LogFile: path})
	require.NoError(t, err)
	_, err = io.WriteString(w, "line\n")
	require.NoError(t, err)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "line"))
}
