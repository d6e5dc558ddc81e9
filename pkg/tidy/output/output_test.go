package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/tidy/pkg/tidy/types"
)

func runReport() *Report {
	return &Report{
		Source: "/home/u/downloads",
		Dest:   "/home/u/downloads/Organized",
		Mode:   "type",
		Action: "move",
		Run: &types.RunStatistics{
			Total:      5,
			Processed:  5,
			Succeeded:  3,
			Failed:     1,
			Skipped:    1,
			BytesMoved: 2 * types.MiB,
		},
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown formatter")
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register("plain", func() Formatter { return &PlainFormatter{} })

	f, err := r.Get("plain")
	require.NoError(t, err)
	assert.IsType(t, &PlainFormatter{}, f)
}

func TestDefaultRegistryAvailable(t *testing.T) {
	assert.Equal(t, []string{"json", "plain", "pretty"}, DefaultRegistry.Available())
}

func TestPlainFormatterRun(t *testing.T) {
	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, runReport()))

	out := buf.String()
	assert.Regexp(t, `total\s+5`, out)
	assert.Regexp(t, `succeeded\s+3`, out)
	assert.Regexp(t, `failed\s+1`, out)
	assert.NotContains(t, out, "\x1b[", "plain output must carry no ANSI escapes")
}

func TestPlainFormatterError(t *testing.T) {
	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &Report{Run: &types.RunStatistics{Err: "source directory does not exist"}}))

	assert.Contains(t, buf.String(), "error")
	assert.Contains(t, buf.String(), "source directory does not exist")
	assert.NotContains(t, buf.String(), "total")
}

func TestPlainFormatterUndo(t *testing.T) {
	f, err := Get("plain")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &Report{Undo: &types.UndoStatistics{Total: 4, Succeeded: 4}}))

	assert.Regexp(t, `total\s+4`, buf.String())
	assert.Regexp(t, `succeeded\s+4`, buf.String())
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	f, err := Get("json")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, runReport()))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.NotNil(t, decoded.Run)
	assert.Equal(t, 5, decoded.Run.Total)
	assert.Equal(t, 3, decoded.Run.Succeeded)
	assert.Equal(t, "type", decoded.Mode)
	assert.Nil(t, decoded.Undo)
}

func TestPrettyFormatterRun(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, runReport()))

	out := buf.String()
	assert.Contains(t, out, "Organize complete")
	assert.Contains(t, out, "3 succeeded")
	assert.Contains(t, out, "2.0 MiB")
}

func TestPrettyFormatterDryRun(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	r := runReport()
	r.DryRun = true
	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, r))

	assert.Contains(t, buf.String(), "dry run")
	assert.Contains(t, buf.String(), "No files were modified.")
}

func TestPrettyFormatterError(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &Report{Run: &types.RunStatistics{Err: "boom"}}))

	assert.Contains(t, buf.String(), "Error: boom")
	assert.NotContains(t, buf.String(), "Organize complete")
}

func TestPrettyFormatterCancelled(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	r := runReport()
	r.Run.Processed = 2
	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, r))

	assert.Contains(t, buf.String(), "cancelled")
}

func TestPrettyFormatterUndo(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &Report{Undo: &types.UndoStatistics{Total: 2, Succeeded: 1, Failed: 1}}))

	out := buf.String()
	assert.Contains(t, out, "Undo complete")
	assert.Contains(t, out, "1 restored")
	assert.Contains(t, out, "1 failed")
}

func TestPrettyFormatterUndoEmpty(t *testing.T) {
	f, err := Get("pretty")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Format(&buf, &Report{Undo: &types.UndoStatistics{}}))

	assert.Contains(t, buf.String(), "Nothing to revert.")
}
