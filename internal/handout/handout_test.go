package handout

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartPNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.Set(x, 10, color.RGBA{B: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, "chart.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "handout.pdf")
	err := Write(out, Input{
		Title:   "Weekly Strategy",
		Company: "Acme",
		Date:    "7 Feb 2026",
		Charts: []Chart{
			{Num: 1, Title: "Capex", Source: "Source: filings", Path: chartPNG(t, dir)},
		},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestWriteMissingChart(t *testing.T) {
	err := Write(filepath.Join(t.TempDir(), "h.pdf"), Input{Charts: []Chart{{Num: 2, Path: "/missing.png"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read chart 2")
}
