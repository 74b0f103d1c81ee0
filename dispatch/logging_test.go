package dispatch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hupe1980/macro/core"
	"github.com/hupe1980/macro/internal/testutil"
	"github.com/hupe1980/macro/logging"
	"github.com/hupe1980/macro/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(buf *bytes.Buffer) logging.Logger {
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  logging.LogLevelDebug,
		Format: logging.FormatJSON,
		Output: buf,
	})
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func messages(entries []map[string]any) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e["msg"].(string))
	}
	return out
}

func TestDispatch_TraceEvents(t *testing.T) {
	var buf bytes.Buffer
	ctrl := mustControl(t, testutil.AnySignature(1), []param.Parameter{param.ConstantType.Polymorphic()}, typeNameLinker(),
		func(o *Options) {
			o.Name = "shapes"
			o.Logger = captureLogger(&buf)
		})
	h := ctrl.Handle()

	for _, v := range []any{classA{}, classB{}} {
		_, err := h.Invoke(v)
		require.NoError(t, err)
	}
	ctrl.Deoptimize()

	entries := decodeEntries(t, &buf)
	assert.Equal(t, []string{
		"dispatch.specialize",
		"dispatch.guard.miss",
		"dispatch.chain.grow",
		"dispatch.specialize",
		"dispatch.deoptimize",
	}, messages(entries))

	for _, e := range entries {
		assert.Equal(t, "shapes", e["dispatcher"])
		assert.Equal(t, "DEBUG", e["level"])
	}
	assert.Equal(t, ctrl.ID(), entries[0]["site"])
	assert.EqualValues(t, 1, entries[3]["depth"])
	assert.Equal(t, "polymorphic", entries[1]["policy"])
}

func TestDispatch_LinkFailureIsLogged(t *testing.T) {
	var buf bytes.Buffer
	linker := testutil.NewRecordingLinker(func([]any, core.Signature) (core.Handle, error) {
		return nil, errors.New("no such shape")
	})
	h, err := New(testutil.AnySignature(1), []param.Parameter{param.ConstantValue}, linker,
		func(o *Options) { o.Logger = captureLogger(&buf) })
	require.NoError(t, err)

	_, err = h.Invoke("circle")
	require.Error(t, err)

	entries := decodeEntries(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "dispatch.link.failed", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Contains(t, entries[0]["error"], "no such shape")
}

func TestDispatch_SilentByDefault(t *testing.T) {
	ctrl := mustControl(t, testutil.AnySignature(1), []param.Parameter{param.ConstantValue}, constantLinker())
	assert.False(t, ctrl.root.shared.trace)
	assert.IsType(t, logging.NoOpLogger{}, ctrl.root.shared.logger)
}
