package slides

import (
	"encoding/json"
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

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/palette"
	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

func writePNG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for x := 0; x < 8; x++ {
		img.Set(x, 1, color.RGBA{R: 200, A: 255})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newTestBuilder(meta deckspec.Meta) (*Builder, *pptx.Presentation) {
	deck := pptx.New()
	return NewBuilder(deck, palette.Get(palette.DefaultName), meta, nil), deck
}

func build(t *testing.T, b *Builder, typ, content string, page int, charts ...ChartImage) *pptx.Slide {
	t.Helper()
	s, err := b.Build(Request{Type: typ, Content: json.RawMessage(content), Page: page, Charts: charts})
	require.NoError(t, err)
	return s
}

// texts returns the text of every shape on the slide, in z-order.
func texts(s *pptx.Slide) []string {
	var out []string
	for _, sh := range s.GetShapes() {
		switch v := sh.(type) {
		case *pptx.RichTextShape:
			out = append(out, v.PlainText())
		case *pptx.AutoShape:
			if txt := v.PlainText(); txt != "" {
				out = append(out, txt)
			}
		}
	}
	return out
}

func pictures(s *pptx.Slide) []*pptx.DrawingShape {
	var out []*pptx.DrawingShape
	for _, sh := range s.GetShapes() {
		if d, ok := sh.(*pptx.DrawingShape); ok {
			out = append(out, d)
		}
	}
	return out
}

func assertWritable(t *testing.T, deck *pptx.Presentation) {
	t.Helper()
	require.NoError(t, pptx.NewWriter(deck).WriteTo(io.Discard))
}

func TestTypesAndNumbering(t *testing.T) {
	assert.Len(t, Types(), 12)
	for _, typ := range []string{"cover", "back_cover", "section_divider"} {
		assert.True(t, Supported(typ))
		assert.False(t, Numbered(typ), typ)
	}
	for _, typ := range []string{"chart", "text", "kpi_dashboard", "dual_chart", "callout"} {
		assert.True(t, Numbered(typ), typ)
	}
	assert.False(t, Numbered("mystery"))
}

func TestBuildUnknownType(t *testing.T) {
	b, deck := newTestBuilder(deckspec.Meta{})
	_, err := b.Build(Request{Type: "mystery"})
	assert.EqualError(t, err, "unknown slide type: mystery")
	assert.Equal(t, 0, deck.GetSlideCount())
}

func TestBuildBadContent(t *testing.T) {
	b, _ := newTestBuilder(deckspec.Meta{})
	_, err := b.Build(Request{Type: "text", Content: json.RawMessage(`{"left_items": "not a list"}`)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build text slide")
}

func TestContentSlideChrome(t *testing.T) {
	b, deck := newTestBuilder(deckspec.Meta{Company: "Acme AG", Date: "7 Feb 2026"})
	s := build(t, b, "text", `{"title": "Outlook", "left_items": ["a", "b"], "right_title": "RISKS", "right_items": ["c"]}`, 3)

	got := texts(s)
	assert.Contains(t, got, "   #WEEKLY STRATEGY")
	assert.Contains(t, got, "Acme AG")
	assert.Contains(t, got, "7 Feb 2026   ")
	assert.Contains(t, got, "CROSSINVEST SA | Lugano")
	assert.Contains(t, got, "Strictly Confidential")
	assert.Contains(t, got, "Page 3")
	assert.Contains(t, got, "Outlook")
	assert.Contains(t, got, "→  a")
	assert.Contains(t, got, "⚠  c")
	assert.Contains(t, got, "RISKS")

	bg := s.GetBackground()
	require.NotNil(t, bg)
	assert.Equal(t, pptx.FillSolid, bg.Type)
	assert.Equal(t, "FFFFFF", bg.Color.RGB())
	assertWritable(t, deck)
}

func TestCoverSkipsEmptyElements(t *testing.T) {
	b, deck := newTestBuilder(deckspec.Meta{})
	s := build(t, b, "cover", `{"company": "ACME", "headline": "Weekly Strategy"}`, 0)

	assert.Equal(t, []string{"ACME", "Weekly Strategy"}, texts(s))
	first, ok := s.GetShapes()[0].(*pptx.AutoShape)
	require.True(t, ok)
	assert.Equal(t, "Background", first.GetName())
	assert.Equal(t, pptx.Inch(13.333), first.GetWidth())
	assertWritable(t, deck)
}

func TestChartSlide(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "c.png")
	b, deck := newTestBuilder(deckspec.Meta{})

	s := build(t, b, "chart", `{"title": "Capex", "tag": "#ai"}`, 2, ChartImage{Path: img, Num: 4})
	assert.Contains(t, texts(s), "Chart #4")
	assert.Contains(t, texts(s), "#ai")
	pics := pictures(s)
	require.Len(t, pics, 1)
	assert.Equal(t, pptx.Inch(0.4), pics[0].GetOffsetX())
	assert.Equal(t, pptx.Inch(2.5), pics[0].GetOffsetY())
	assert.Equal(t, pptx.Inch(12.5), pics[0].GetWidth())
	assert.Equal(t, pptx.Inch(4.5), pics[0].GetHeight())

	s = build(t, b, "chart", `{"chart_dims": {"left": 0, "width": 6}}`, 3, ChartImage{Path: img, Num: 5})
	pics = pictures(s)
	require.Len(t, pics, 1)
	assert.Equal(t, int64(0), pics[0].GetOffsetX())
	assert.Equal(t, pptx.Inch(6), pics[0].GetWidth())
	assert.Equal(t, pptx.Inch(4.5), pics[0].GetHeight())
	assertWritable(t, deck)

	_, err := b.Build(Request{Type: "chart"})
	assert.ErrorIs(t, err, errNoChart)
}

func TestSourcesListBecomesBullets(t *testing.T) {
	b, _ := newTestBuilder(deckspec.Meta{})
	s := build(t, b, "sources", `{"left_sources": ["FRED", "ECB"], "right_sources": "Bloomberg", "disclaimer": "Not advice"}`, 9)

	got := texts(s)
	assert.Contains(t, got, "Data Sources & Methodology")
	assert.Contains(t, got, "• FRED\n• ECB")
	assert.Contains(t, got, "Bloomberg")
	assert.Contains(t, got, "Not advice")
}

func TestExecutiveSummaryStacksSections(t *testing.T) {
	b, _ := newTestBuilder(deckspec.Meta{})
	s := build(t, b, "executive_summary", `{"title": "Summary", "sections": [{"text": "S"}, {"text": "C", "height": 0.5}, {"text": "R"}]}`, 1)

	var ys []int64
	for _, sh := range s.GetShapes() {
		if tb, ok := sh.(*pptx.RichTextShape); ok && len(tb.PlainText()) == 1 {
			ys = append(ys, tb.GetOffsetY())
		}
	}
	assert.Equal(t, []int64{pptx.Inch(2.3), pptx.Inch(3.45), pptx.Inch(3.95)}, ys)
}

func TestBackCoverDefaults(t *testing.T) {
	b, deck := newTestBuilder(deckspec.Meta{})
	s := build(t, b, "back_cover", `{"contact_lines": ["Via Pretorio 1", "info@example.com"], "closing": "Thank you"}`, 0)

	got := texts(s)
	assert.Contains(t, got, "CROSSINVEST SA")
	assert.Contains(t, got, "Via Pretorio 1")
	assert.Contains(t, got, "Thank you")
	for _, txt := range got {
		assert.False(t, strings.HasPrefix(txt, "Page "))
	}
	assertWritable(t, deck)
}

func TestBackCoverCompany(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"absent", `{"tagline": "Since 1990"}`, []string{"CROSSINVEST SA", "Since 1990"}},
		{"explicit", `{"company": "Acme AG", "tagline": "Since 1990"}`, []string{"Acme AG", "Since 1990"}},
		{"blank", `{"company": "", "tagline": "Since 1990"}`, []string{"Since 1990"}},
		{"null", `{"company": null, "tagline": "Since 1990"}`, []string{"CROSSINVEST SA", "Since 1990"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, deck := newTestBuilder(deckspec.Meta{})
			s := build(t, b, "back_cover", tt.content, 0)
			assert.Equal(t, tt.want, texts(s))
			assertWritable(t, deck)
		})
	}
}

func TestSectionDividerBackground(t *testing.T) {
	dir := t.TempDir()
	cover := writePNG(t, dir, "cover.png")
	own := writePNG(t, dir, "own.png")
	b, _ := newTestBuilder(deckspec.Meta{BgImages: deckspec.BgImages{Cover: cover}})

	s, err := b.Build(Request{Type: "section_divider", Content: json.RawMessage(`{"number": 2, "title": "Rates"}`)})
	require.NoError(t, err)
	pics := pictures(s)
	require.Len(t, pics, 1)
	assert.Equal(t, cover, pics[0].GetPath())
	assert.Contains(t, texts(s), "2")

	s, err = b.Build(Request{Type: "section_divider", BgImage: own, Content: json.RawMessage(`{"title": "FX"}`)})
	require.NoError(t, err)
	assert.Equal(t, own, pictures(s)[0].GetPath())
}

func TestMissingBackgroundFallsBack(t *testing.T) {
	b, _ := newTestBuilder(deckspec.Meta{BgImages: deckspec.BgImages{Content: "/nonexistent/bg.png"}})
	s := build(t, b, "callout", `{"title": "Quote", "text": "Buy low", "stat": 42, "stat_label": "bps"}`, 4)

	assert.Empty(t, pictures(s))
	require.NotNil(t, s.GetBackground())
	require.Len(t, b.Warnings(), 1)
	assert.Contains(t, b.Warnings()[0], "/nonexistent/bg.png")

	got := texts(s)
	assert.Contains(t, got, "42")
	assert.Contains(t, got, "“Buy low”")
}

func TestChartBackgroundFallsBackToContent(t *testing.T) {
	dir := t.TempDir()
	content := writePNG(t, dir, "content.png")
	chart := writePNG(t, dir, "chart.png")
	b, _ := newTestBuilder(deckspec.Meta{BgImages: deckspec.BgImages{Content: content}})

	s := build(t, b, "chart", `{}`, 1, ChartImage{Path: chart, Num: 1})
	pics := pictures(s)
	require.Len(t, pics, 2)
	assert.Equal(t, content, pics[0].GetPath())
	assert.Equal(t, "Background", pics[0].GetName())
	assert.Equal(t, chart, pics[1].GetPath())
}

func TestKPIGrid(t *testing.T) {
	tests := []struct {
		n, cols, rows int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{4, 4, 1},
		{5, 4, 2},
		{8, 4, 2},
		{11, 4, 2},
	}
	for _, tt := range tests {
		cols, rows := kpiGrid(tt.n)
		assert.Equal(t, tt.cols, cols, "n=%d", tt.n)
		assert.Equal(t, tt.rows, rows, "n=%d", tt.n)
	}
}

func TestKPIDashboard(t *testing.T) {
	b, deck := newTestBuilder(deckspec.Meta{})
	pal := b.pal
	assert.Equal(t, pal.Green, b.changeColor(kpi{Change: "+1.2%"}))
	assert.Equal(t, pal.Red, b.changeColor(kpi{Change: "−0.4%"}))
	assert.Equal(t, pal.Red, b.changeColor(kpi{Change: "+3", Trend: "down"}))
	assert.Equal(t, pal.Gray, b.changeColor(kpi{Change: "flat"}))

	var kpis []string
	for i := 0; i < 9; i++ {
		kpis = append(kpis, `{"label": "k", "value": 5.25, "change": "+1%"}`)
	}
	s := build(t, b, "kpi_dashboard", `{"title": "Dashboard", "kpis": [`+strings.Join(kpis, ",")+`]}`, 2)

	var cards int
	for _, sh := range s.GetShapes() {
		if a, ok := sh.(*pptx.AutoShape); ok && a.GetAutoShapeType() == pptx.AutoShapeRoundedRect {
			cards++
		}
	}
	assert.Equal(t, 8, cards)
	assert.Contains(t, texts(s), "5.25")
	require.Len(t, b.Warnings(), 1)
	assertWritable(t, deck)
}

func TestNewsImpactBadges(t *testing.T) {
	b, _ := newTestBuilder(deckspec.Meta{})
	s := build(t, b, "news", `{"title": "News", "items": [
		{"headline": "Fed cuts", "impact": "positive", "source": "Reuters"},
		{"headline": "Tariffs", "impact": "negative"},
		{"headline": "Data"}]}`, 5)

	got := texts(s)
	for _, want := range []string{"POSITIVE", "NEGATIVE", "NEUTRAL", "Fed cuts", "Reuters"} {
		assert.Contains(t, got, want)
	}
	assert.Equal(t, b.pal.Red, b.impactColor("Negative"))
	assert.Equal(t, b.pal.Gray, b.impactColor(""))
}

func TestImageSlide(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "photo.png")
	b, deck := newTestBuilder(deckspec.Meta{})

	s := build(t, b, "image", `{"title": "Photo", "image_path": "`+img+`", "caption": "Figure 1"}`, 6)
	require.Len(t, pictures(s), 1)
	assert.Contains(t, texts(s), "Figure 1")
	assert.Empty(t, b.Warnings())

	s = build(t, b, "image", `{"title": "Missing", "image_path": "/nope.png"}`, 7)
	assert.Empty(t, pictures(s))
	assert.Contains(t, texts(s), "Image not available")
	require.Len(t, b.Warnings(), 1)
	assertWritable(t, deck)
}

func TestDualChart(t *testing.T) {
	dir := t.TempDir()
	left := writePNG(t, dir, "l.png")
	right := writePNG(t, dir, "r.png")
	b, deck := newTestBuilder(deckspec.Meta{})

	s := build(t, b, "dual_chart", `{"title": "Two views", "captions": ["Left view"]}`, 8,
		ChartImage{Path: left, Num: 3}, ChartImage{Path: right, Num: 4})

	pics := pictures(s)
	require.Len(t, pics, 2)
	assert.Equal(t, pptx.Inch(0.4), pics[0].GetOffsetX())
	assert.Equal(t, pptx.Inch(6.8), pics[1].GetOffsetX())
	assert.Equal(t, pptx.Inch(6.1), pics[1].GetWidth())
	assert.Equal(t, pptx.Inch(4.3), pics[1].GetHeight())

	got := texts(s)
	assert.Contains(t, got, "Chart #3")
	assert.Contains(t, got, "Chart #4")
	assert.Contains(t, got, "Left view")
	assertWritable(t, deck)
}

func TestFlexText(t *testing.T) {
	var v struct {
		A flexText `json:"a"`
		B flexText `json:"b"`
		C flexText `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1.50, "b": "x", "c": null}`), &v))
	assert.Equal(t, flexText("1.50"), v.A)
	assert.Equal(t, flexText("x"), v.B)
	assert.Equal(t, flexText(""), v.C)
	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
}
