package pptx

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPNG encodes a solid w x h image.
func testPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// zipParts writes p and returns every part of the package keyed by name.
func zipParts(t *testing.T, p *Presentation) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, NewWriter(p).WriteTo(&buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(data)
	}
	return parts
}

func TestWriteEmptyPresentation(t *testing.T) {
	parts := zipParts(t, New())

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/app.xml",
		"docProps/core.xml",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideMasters/_rels/slideMaster1.xml.rels",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
	} {
		assert.Contains(t, parts, name)
	}
	assert.NotContains(t, parts["ppt/presentation.xml"], "sldIdLst")
	assert.Contains(t, parts["docProps/app.xml"], "<Slides>0</Slides>")
}

func TestWriteSlideSize(t *testing.T) {
	p := New()
	p.GetLayout().SetCustomLayout(Inch(13.333), Inch(7.5))
	p.CreateSlide()

	parts := zipParts(t, p)
	assert.Contains(t, parts["ppt/presentation.xml"], `<p:sldSz cx="12191695" cy="6858000"/>`)
	assert.Contains(t, parts["ppt/presentation.xml"], `<p:sldId id="256" r:id="rId2"/>`)
	assert.Contains(t, parts["ppt/_rels/presentation.xml.rels"], "slides/slide1.xml")
}

func TestWriteTextFormatting(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	tb := slide.CreateRichTextShape()
	tb.SetBounds(Inch(0.5), Inch(0.3), Inch(12), Inch(0.8))
	tb.SetTextAnchor(TextAnchorMiddle)
	para := tb.GetActiveParagraph().SetAlignment(HorizontalCenter).SetLineSpacing(20)
	run := para.CreateTextRun("Q3 <Results> & Outlook")
	run.GetFont().SetSize(28).SetBold(true).SetColor(NewColor("#003366"))

	xml := zipParts(t, p)["ppt/slides/slide1.xml"]
	assert.Contains(t, xml, `sz="2800"`)
	assert.Contains(t, xml, `b="1"`)
	assert.Contains(t, xml, `<a:srgbClr val="003366"/>`)
	assert.Contains(t, xml, `algn="ctr"`)
	assert.Contains(t, xml, `anchor="ctr"`)
	assert.Contains(t, xml, `<a:spcPts val="2000"/>`)
	assert.Contains(t, xml, "Q3 &lt;Results&gt; &amp; Outlook")
}

func TestWriteFractionalFontSize(t *testing.T) {
	p := New()
	tb := p.CreateSlide().CreateRichTextShape()
	tb.CreateTextRun("signal").GetFont().SetSize(8.5)

	assert.Contains(t, zipParts(t, p)["ppt/slides/slide1.xml"], `sz="850"`)
}

func TestWriteImagesShareGlobalNumbering(t *testing.T) {
	p := New()
	red := testPNG(t, 4, 4, color.RGBA{R: 255, A: 255})

	s1 := p.CreateSlide()
	s1.CreateAutoShape().SetSolidFill(NewColor("FF6600"))
	s1.CreateDrawingShape().SetImageData(red, "image/png").SetBounds(0, 0, Inch(1), Inch(1))
	s2 := p.CreateSlide()
	s2.CreateDrawingShape().SetImageData(red, "image/png").SetBounds(0, 0, Inch(1), Inch(1))
	s2.CreateDrawingShape().SetImageData(red, "image/png").SetBounds(Inch(2), 0, Inch(1), Inch(1))

	parts := zipParts(t, p)
	assert.Contains(t, parts, "ppt/media/image1.png")
	assert.Contains(t, parts, "ppt/media/image2.png")
	assert.Contains(t, parts, "ppt/media/image3.png")
	assert.Contains(t, parts["[Content_Types].xml"], `Extension="png"`)

	assert.Contains(t, parts["ppt/slides/_rels/slide1.xml.rels"], `Id="rId2"`)
	assert.Contains(t, parts["ppt/slides/_rels/slide1.xml.rels"], "../media/image1.png")
	assert.Contains(t, parts["ppt/slides/_rels/slide2.xml.rels"], `Id="rId3" Type="`+relTypeImage+`" Target="../media/image3.png"`)
	assert.Contains(t, parts["ppt/slides/slide2.xml"], `r:embed="rId3"`)
}

func TestWriteBackgroundAndNotes(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	slide.SetBackground(NewFill().SetGradientLinear(NewColor("003366"), NewColor("001A33"), -90))
	slide.SetNotes("first line\nsecond line")

	parts := zipParts(t, p)
	xml := parts["ppt/slides/slide1.xml"]
	assert.Contains(t, xml, "<p:bg>")
	assert.Contains(t, xml, `<a:lin ang="16200000" scaled="1"/>`)

	require.Contains(t, parts, "ppt/notesSlides/notesSlide1.xml")
	notes := parts["ppt/notesSlides/notesSlide1.xml"]
	assert.Equal(t, 2, strings.Count(notes, "<a:p>"))
	assert.Contains(t, parts["ppt/slides/_rels/slide1.xml.rels"], "notesSlide1.xml")
	assert.Contains(t, parts["[Content_Types].xml"], "/ppt/notesSlides/notesSlide1.xml")
}

func TestWriteAutoShapeAndLine(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	badge := slide.CreateAutoShape().SetAutoShapeType(AutoShapeRoundedRect).SetSolidFill(NewColor("FF6600"))
	badge.SetBounds(Inch(11), Inch(0.2), Inch(1.8), Inch(0.4))
	badge.SetTextAnchor(TextAnchorMiddle)
	badge.GetActiveParagraph().SetAlignment(HorizontalCenter)
	badge.CreateTextRun("Chart #3").GetFont().SetBold(true).SetColor(ColorWhite)

	slide.CreateLineShape(Inch(1), Inch(2), Inch(5), Inch(2)).SetLineColor(NewColor("CCCCCC")).SetLineStyle(BorderDash)

	xml := zipParts(t, p)["ppt/slides/slide1.xml"]
	assert.Contains(t, xml, `prst="roundRect"`)
	assert.Contains(t, xml, "Chart #3")
	assert.Contains(t, xml, `<a:prstDash val="dash"/>`)
	assert.Contains(t, xml, "<p:cxnSp>")
}

func TestWriteRejectsInvalidShapes(t *testing.T) {
	p := New()
	p.CreateSlide().CreateDrawingShape()

	err := NewWriter(p).WriteTo(io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image data")
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deck.pptx")
	p := New()
	p.CreateSlide().CreateRichTextShape().CreateTextRun("hello")
	p.GetDocumentProperties().Title = "Weekly Review"

	require.NoError(t, NewWriter(p).Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSetImageFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	require.NoError(t, os.WriteFile(path, testPNG(t, 2, 2, color.Black), 0o644))

	ds := NewDrawingShape()
	require.NoError(t, ds.SetImageFromFile(path))
	assert.Equal(t, "image/png", ds.GetMimeType())
	assert.NotEmpty(t, ds.GetImageData())

	assert.Error(t, NewDrawingShape().SetImageFromFile(filepath.Join(dir, "missing.png")))
}
