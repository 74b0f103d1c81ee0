package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/macro/dispatch"
	"github.com/hupe1980/macro/logging"
	"github.com/hupe1980/macro/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logging.LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, logging.FormatAuto, cfg.Logging.Format)
	assert.Equal(t, 8, cfg.Dispatch.MaxChainLength)
	assert.Equal(t, param.PolicyPolymorphic, cfg.Dispatch.FormatPolicy)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
logging:
  level: debug
  format: json
  add_source: true
dispatch:
  max_chain_length: 3
  format_policy: relink
`))
	require.NoError(t, err)
	assert.Equal(t, logging.LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging.Format)
	assert.True(t, cfg.Logging.AddSource)
	assert.Equal(t, 3, cfg.Dispatch.MaxChainLength)
	assert.Equal(t, param.PolicyRelink, cfg.Dispatch.FormatPolicy)
}

func TestParse_KeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("logging:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, logging.LogLevelWarn, cfg.Logging.Level)
	assert.Equal(t, logging.FormatAuto, cfg.Logging.Format)
	assert.Equal(t, 8, cfg.Dispatch.MaxChainLength)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "unknown level", yaml: "logging:\n  level: loud\n"},
		{name: "unknown format", yaml: "logging:\n  format: xml\n"},
		{name: "unknown policy", yaml: "dispatch:\n  format_policy: sometimes\n"},
		{name: "negative chain", yaml: "dispatch:\n  max_chain_length: -2\n"},
		{name: "unknown key", yaml: "dispatch:\n  max_chain: 2\n"},
		{name: "malformed", yaml: "logging: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macro.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dispatch:\n  max_chain_length: 0\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Dispatch.MaxChainLength)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = logging.LogLevelError
	cfg.Dispatch.FormatPolicy = param.PolicyMonomorphic

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: error")
	assert.Contains(t, string(data), "format_policy: monomorphic")

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestDispatchOptions(t *testing.T) {
	cfg := Default()
	cfg.Dispatch.MaxChainLength = 5

	var buf bytes.Buffer
	logger := cfg.Logger(&buf, "test")

	opts := dispatch.DefaultOptions
	cfg.DispatchOptions("formatter", logger)(&opts)
	assert.Equal(t, "formatter", opts.Name)
	assert.Equal(t, 5, opts.MaxChainLength)
	assert.Same(t, logger, opts.Logger)

	opts = dispatch.DefaultOptions
	cfg.DispatchOptions("quiet", nil)(&opts)
	assert.IsType(t, logging.NoOpLogger{}, opts.Logger)
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = logging.FormatJSON

	var buf bytes.Buffer
	logger := cfg.Logger(&buf, "demo")
	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"component":"demo"`)
	assert.Contains(t, out, `"msg":"shown"`)
}
