package assemble

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
)

func screenshot(t *testing.T, dir string, n int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 9))
	img.Set(n%16, 0, color.RGBA{G: 180, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, fmt.Sprintf("slide_%03d.png", n))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func zipNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestAssemble(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)
	req := deckspec.AssembleRequest{
		Screenshots: []string{
			screenshot(t, dir, 0),
			filepath.Join(dir, "missing.png"),
			screenshot(t, dir, 2),
		},
		OutputPath: filepath.Join(dir, "nested", "out.pptx"),
	}

	res, err := Assemble(context.Background(), req, zap.New(core))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Slides)
	assert.Equal(t, req.OutputPath, res.Path)
	assert.NotEmpty(t, res.RunID)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "screenshot not found", logs.All()[0].Message)

	names := zipNames(t, req.OutputPath)
	assert.Contains(t, names, "ppt/slides/slide2.xml")
	assert.NotContains(t, names, "ppt/slides/slide3.xml")
}

func TestAssembleNothing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.pptx")
	res, err := Assemble(context.Background(), deckspec.AssembleRequest{OutputPath: out}, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Slides)
	assert.FileExists(t, out)
}

func TestAssembleUnreadable(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "shots.png")
	require.NoError(t, os.Mkdir(bad, 0o755))

	_, err := Assemble(context.Background(), deckspec.AssembleRequest{
		Screenshots: []string{bad},
		OutputPath:  filepath.Join(dir, "out.pptx"),
	}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load screenshot")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	shot := screenshot(t, dir, 1)

	tests := []struct {
		name       string
		input      string
		wantCode   int
		wantSlides int
		wantErr    string
	}{
		{name: "empty", input: "", wantCode: 1, wantErr: "Empty input"},
		{name: "invalid", input: "[", wantCode: 1, wantErr: "Invalid JSON: "},
		{
			name:       "ok",
			input:      fmt.Sprintf(`{"screenshots":[%q],"output_path":%q,"width":10,"height":7.5}`, shot, filepath.Join(dir, "a.pptx")),
			wantSlides: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := Run(context.Background(), strings.NewReader(tt.input), &buf, nil)
			assert.Equal(t, tt.wantCode, code)

			var res deckspec.AssembleResult
			require.NoError(t, json.Unmarshal(buf.Bytes(), &res))
			assert.Equal(t, tt.wantCode == 0, res.Success)
			assert.Equal(t, tt.wantSlides, res.Slides)
			if tt.wantErr != "" {
				assert.True(t, strings.HasPrefix(res.Error, tt.wantErr), res.Error)
			}
			assert.Contains(t, buf.String(), `"slides":`)
		})
	}
}
