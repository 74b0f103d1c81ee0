package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertion)
var (
	_ Logger = (*SlogAdapter)(nil)
	_ Logger = NoOpLogger{}
)

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   LogLevelDebug,
		"INFO":    LogLevelInfo,
		"":        LogLevelInfo,
		"warning": LogLevelWarn,
		" error ": LogLevelError,
	}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
}

func TestLogLevel_Text(t *testing.T) {
	var l LogLevel
	require.NoError(t, l.UnmarshalText([]byte("warn")))
	assert.Equal(t, LogLevelWarn, l)
	out, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "warn", string(out))
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: FormatJSON, Output: &buf, Component: "dispatch"})
	logger.Debug("dispatch.specialize", "site", "s-1", "constants", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "dispatch.specialize", entry["msg"])
	assert.Equal(t, "dispatch", entry["component"])
	assert.Equal(t, "s-1", entry["site"])
	assert.Equal(t, float64(2), entry["constants"])
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: FormatText, Output: &buf})
	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, FormatJSON, resolveFormat(FormatAuto, &buf), "non-file outputs are never terminals")
	assert.Equal(t, FormatText, resolveFormat("TEXT", &buf))
	assert.Equal(t, FormatJSON, resolveFormat("", &buf))

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, FormatJSON, resolveFormat(FormatAuto, f), "regular files are not terminals")
}

func TestNoOpLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		var l Logger = NoOpLogger{}
		l.Debug("x", "k", "v")
		l.Error("y")
	})
}
