package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponent_TagsOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", "text", &buf)

	Component("engine").Info("hello")

	out := buf.String()
	require.Contains(t, out, "component=engine")
	require.Contains(t, out, "hello")
}

func TestSetup_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", "json", &buf)

	slog.Info("ping")
	require.Contains(t, buf.String(), `"msg":"ping"`)
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Setup("warn", "text", &buf)

	slog.Info("dropped")
	slog.Warn("kept")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, "kept")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	require.Equal(t, slog.LevelWarn, ParseLevel("WARNING"))
	require.Equal(t, slog.LevelError, ParseLevel("error"))
	require.Equal(t, slog.LevelInfo, ParseLevel(""))
	require.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}
