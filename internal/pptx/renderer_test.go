package pptx

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideToImageDimensions(t *testing.T) {
	p := New()
	p.CreateSlide()

	img, err := p.SlideToImage(0, &RenderOptions{Width: 1280})
	require.NoError(t, err)
	assert.Equal(t, 1280, img.Bounds().Dx())
	assert.Equal(t, 720, img.Bounds().Dy())
}

func TestSlideToImageOutOfRange(t *testing.T) {
	_, err := New().SlideToImage(0, nil)
	assert.Error(t, err)
}

func TestSlideToImageBackgroundAndShapes(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	slide.SetBackground(NewFill().SetSolid(NewColor("0A1628")))

	bar := slide.CreateAutoShape().SetSolidFill(NewColor("FF6600"))
	bar.SetBounds(0, 0, Inch(13.333), Inch(0.08))

	tb := slide.CreateRichTextShape()
	tb.SetBounds(Inch(1), Inch(1), Inch(6), Inch(1))
	tb.CreateTextRun("Market Overview").GetFont().SetSize(28).SetColor(ColorWhite)

	pic := slide.CreateDrawingShape().SetImageData(testPNG(t, 8, 8, color.RGBA{G: 255, A: 255}), "image/png")
	pic.SetBounds(Inch(8), Inch(3), Inch(2), Inch(2))

	img, err := p.SlideToImage(0, &RenderOptions{Width: 1333})
	require.NoError(t, err)

	r, g, b, _ := img.At(600, 600).RGBA()
	assert.Equal(t, [3]uint32{0x0A, 0x16, 0x28}, [3]uint32{r >> 8, g >> 8, b >> 8}, "background")

	r, g, b, _ = img.At(10, 2).RGBA()
	assert.Equal(t, [3]uint32{0xFF, 0x66, 0x00}, [3]uint32{r >> 8, g >> 8, b >> 8}, "accent bar")

	r, g, b, _ = img.At(900, 400).RGBA()
	assert.Equal(t, [3]uint32{0, 0xFF, 0}, [3]uint32{r >> 8, g >> 8, b >> 8}, "picture")
}

func TestSaveSlidesAsImages(t *testing.T) {
	p := New()
	p.CreateSlide()
	p.CreateSlide()

	dir := filepath.Join(t.TempDir(), "previews")
	paths, err := p.SaveSlidesAsImages(context.Background(), dir, &RenderOptions{Width: 320})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "slide_02.png"), paths[1])
	for _, path := range paths {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestSaveSlidesAsImagesCanceled(t *testing.T) {
	p := New()
	p.CreateSlide()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := p.SaveSlidesAsImages(ctx, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
}

func TestFallbackFaceAlwaysAvailable(t *testing.T) {
	fc := NewFontCache()
	face := fc.FallbackFace(12, true, false)
	require.NotNil(t, face)
	assert.Same(t, face, fc.FallbackFace(12, true, false))
}
