package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// execute runs deckgen with args and stdin, returning stdout and the error.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"GODECK_PALETTE", "GODECK_CHART_DIR", "GODECK_WORKERS", "GODECK_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("GODECK_LOG_LEVEL", "error")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	spec := `{"output_path":"` + filepath.Join(dir, "deck.pptx") + `","chart_dir":"` + filepath.Join(dir, "charts") + `",
		"slides":[{"type":"cover","content":{"title":"Hi"}},{"type":"text","content":{"title":"Body"}}]}`

	out, err := execute(t, spec, "generate")
	require.NoError(t, err)

	var res deckspec.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Slides)
	assert.FileExists(t, filepath.Join(dir, "deck.pptx"))
}

func TestGenerateCommandFailure(t *testing.T) {
	out, err := execute(t, "", "generate")
	var code exitCode
	require.ErrorAs(t, err, &code)
	assert.Equal(t, exitCode(1), code)
	assert.JSONEq(t, `{"success":false,"slides":0,"charts":0,"error":"Empty input"}`, out)
}

func TestGenerateCommandInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_path":"`+filepath.Join(dir, "d.pptx")+`","chart_dir":"`+dir+`","slides":[]}`), 0o644))

	out, err := execute(t, "", "generate", "--input", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"success":true`)

	_, err = execute(t, "", "generate", "--input", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestAssembleCommand(t *testing.T) {
	out, err := execute(t, `{"screenshots":["/nope.png"],"output_path":"`+filepath.Join(t.TempDir(), "a.pptx")+`"}`, "assemble")
	require.NoError(t, err)
	assert.Contains(t, out, `"slides":0`)
	assert.Contains(t, out, `"success":true`)
}

func TestPerfCommand(t *testing.T) {
	input := `{"as_of":"2026-02-06","assets":[{"name":"Gold","closes":[2000,2010,2020,2030,2040,2050]},{"name":"Oil WTI","closes":[80,79,78,77,76,75]}]}`

	out, err := execute(t, input, "perf")
	require.NoError(t, err)
	var res map[string]map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "2,050.00", res["Gold"]["level"])
	assert.Equal(t, "bearish", res["Oil WTI"]["signal"])

	out, err = execute(t, input, "perf", "--table", "Markets")
	require.NoError(t, err)
	var spec charts.Spec
	require.NoError(t, json.Unmarshal([]byte(out), &spec))
	assert.Equal(t, "sparkline_table", spec.Type)
	tbl, ok := spec.Table()
	require.True(t, ok)
	assert.Equal(t, "Gold", tbl.Rows[0][0])

	out, err = execute(t, "{", "perf")
	require.Error(t, err)
	assert.Contains(t, out, "Invalid JSON")
}

func TestPalettesCommand(t *testing.T) {
	out, err := execute(t, "", "palettes")
	require.NoError(t, err)
	for _, name := range palette.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, palette.DefaultName+" *")
}

func TestChartsCommand(t *testing.T) {
	out, err := execute(t, "", "charts")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 16)
	assert.Contains(t, out, "waterfall")

	out, err = execute(t, "", "charts", "--slides")
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 12)
	assert.Contains(t, out, "kpi_dashboard")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "deckgen dev"))
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -3\n"), 0o644))
	_, err := execute(t, "", "--config", path, "charts")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var builds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 20*time.Millisecond, func() { builds.Add(1) }, zap.NewNop())
	}()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Writes to other files are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())

	// A burst of writes settles into one rebuild.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"slides":[]}`), 0o644))
	}
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}
