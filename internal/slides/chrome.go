package slides

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

// Default header and footer text.
const (
	defaultHeaderTag    = "#WEEKLY STRATEGY"
	defaultCompany      = "Crossinvest SA"
	defaultFooterLeft   = "CROSSINVEST SA | Lugano"
	defaultFooterCenter = "Strictly Confidential"
)

func in(v float64) int64 { return pptx.Inch(v) }

func hexColor(hex string) pptx.Color { return pptx.NewColor(hex) }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// textStyle is the formatting of one run.
type textStyle struct {
	Size   float64
	Color  string
	Bold   bool
	Italic bool
	Align  pptx.HorizontalAlignment
}

func (st textStyle) apply(tr *pptx.TextRun) {
	tr.GetFont().SetSize(st.Size).SetBold(st.Bold).SetItalic(st.Italic).SetColor(hexColor(st.Color))
}

// textBox adds a text box holding one paragraph. Newlines in text become
// line breaks.
func textBox(s *pptx.Slide, x, y, w, h float64, text string, st textStyle) (*pptx.RichTextShape, *pptx.Paragraph) {
	tb := s.CreateRichTextShape()
	tb.SetBounds(in(x), in(y), in(w), in(h))
	p := tb.GetActiveParagraph()
	writeText(p, text, st)
	return tb, p
}

func writeText(p *pptx.Paragraph, text string, st textStyle) {
	if st.Align != "" {
		p.SetAlignment(st.Align)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			p.CreateBreak()
		}
		st.apply(p.CreateTextRun(line))
	}
}

// rect adds a borderless filled rectangle. Sizes are in EMU so callers can
// mix inches and points.
func rect(s *pptx.Slide, x, y, w, h int64, hex string) *pptx.AutoShape {
	r := s.CreateAutoShape()
	r.SetBounds(x, y, w, h)
	r.SetSolidFill(hexColor(hex))
	return r
}

// newSlide appends a slide with either the background image or a solid
// slide_bg fill.
func (b *Builder) newSlide(bg string) *pptx.Slide {
	s := b.deck.CreateSlide()
	if bg != "" && b.fullBleed(s, bg) {
		return s
	}
	s.SetBackground(pptx.NewFill().SetSolid(hexColor(b.pal.SlideBG)))
	return s
}

// fullBleed places path over the whole slide. It reports false when the
// image cannot be used.
func (b *Builder) fullBleed(s *pptx.Slide, path string) bool {
	if !fileExists(path) {
		b.warn("background image not found: "+path, zap.String("path", path))
		return false
	}
	pic := pptx.NewDrawingShape()
	if err := pic.SetImageFromFile(path); err != nil {
		b.warn("background image unreadable: "+path, zap.String("path", path), zap.Error(err))
		return false
	}
	pic.SetName("Background")
	pic.SetBounds(0, 0, in(b.layout.Width), in(b.layout.Height))
	s.AddShape(pic)
	return true
}

// navySlide starts a cover-style slide: the background image when usable,
// otherwise a full navy field.
func (b *Builder) navySlide(bg string) *pptx.Slide {
	s := b.deck.CreateSlide()
	if bg != "" && b.fullBleed(s, bg) {
		return s
	}
	field := rect(s, 0, 0, in(b.layout.Width), in(b.layout.Height), b.pal.Navy)
	field.SetName("Background")
	return s
}

// contentSlide is a slide with the header bar, section line and footer.
func (b *Builder) contentSlide(bg string, page int) *pptx.Slide {
	s := b.newSlide(bg)
	b.header(s)
	b.sectionLine(s)
	b.footer(s, page)
	return s
}

func (b *Builder) header(s *pptx.Slide) {
	l, pal := b.layout, b.pal

	bar := rect(s, 0, 0, in(l.Width), in(l.HeaderHeight), pal.Navy)
	bar.SetName("Header")
	bar.SetWordWrap(false)
	writeText(bar.GetActiveParagraph(), "   "+orDefault(b.meta.HeaderTag, defaultHeaderTag),
		textStyle{Size: l.HeaderSize, Bold: true, Color: pal.Gold, Align: pptx.HorizontalLeft})

	center, p := textBox(s, 4.5, 0, 4.333, l.HeaderHeight, orDefault(b.meta.Company, defaultCompany),
		textStyle{Size: 11, Bold: true, Color: pal.White, Align: pptx.HorizontalCenter})
	center.SetWordWrap(false)
	p.SetSpaceBefore(6)

	right, p := textBox(s, 10, 0, 3.0, l.HeaderHeight, b.meta.Date+"   ",
		textStyle{Size: l.HeaderSize, Color: pal.White, Align: pptx.HorizontalRight})
	right.SetWordWrap(false)
	p.SetSpaceBefore(6)
}

func (b *Builder) sectionLine(s *pptx.Slide) {
	rect(s, in(b.layout.MarginLeft), in(0.58), in(1.2), pptx.Point(3), b.pal.Navy)
}

func (b *Builder) footer(s *pptx.Slide, page int) {
	l, pal := b.layout, b.pal
	rect(s, in(l.MarginLeft), in(l.FooterY), in(l.Width-l.MarginLeft-l.MarginRight), pptx.Point(1), pal.LightGray)

	y := l.FooterY + 0.05
	textBox(s, l.MarginLeft, y, 4, l.FooterHeight, orDefault(b.meta.FooterLeft, defaultFooterLeft),
		textStyle{Size: l.FooterSize, Bold: true, Color: pal.Gold})
	textBox(s, 4.5, y, 4.333, l.FooterHeight, orDefault(b.meta.FooterCenter, defaultFooterCenter),
		textStyle{Size: l.FooterSize, Italic: true, Color: pal.SourceColor, Align: pptx.HorizontalCenter})
	textBox(s, 10, y, 2.733, l.FooterHeight, fmt.Sprintf("Page %d", page),
		textStyle{Size: l.FooterSize, Color: pal.SourceColor, Align: pptx.HorizontalRight})
}

// title writes the assertion title with its optional subtitle and tag.
func (b *Builder) title(s *pptx.Slide, title, subtitle, tag string) {
	l, pal := b.layout, b.pal
	textBox(s, l.MarginLeft, l.TitleTop, 11.5, l.TitleHeight, title,
		textStyle{Size: l.TitleSize, Bold: true, Color: pal.TitleColor})
	if subtitle != "" {
		textBox(s, l.MarginLeft, l.SubtitleTop, 11.5, 0.5, subtitle,
			textStyle{Size: l.SubtitleSize, Color: pal.BodyText})
	}
	if tag != "" {
		textBox(s, l.MarginLeft, l.TagTop, 4, 0.3, tag,
			textStyle{Size: l.TagSize, Bold: true, Color: pal.Orange})
	}
}

// chartTag adds the orange "Chart #N" badge.
func (b *Builder) chartTag(s *pptx.Slide, num int, left, top float64) {
	badge := s.CreateAutoShape()
	badge.SetAutoShapeType(pptx.AutoShapeRoundedRect)
	badge.SetBounds(in(left), in(top), in(0.9), in(0.28))
	badge.SetSolidFill(hexColor(b.pal.Orange))
	badge.SetWordWrap(false)
	badge.SetTextAnchor(pptx.TextAnchorMiddle)
	writeText(badge.GetActiveParagraph(), fmt.Sprintf("Chart #%d", num),
		textStyle{Size: b.layout.ChartTagSize, Bold: true, Color: b.pal.White, Align: pptx.HorizontalCenter})
}

// picture places an image file in the given box.
func picture(s *pptx.Slide, path string, x, y, w, h float64) error {
	pic := pptx.NewDrawingShape()
	if err := pic.SetImageFromFile(path); err != nil {
		return err
	}
	pic.SetBounds(in(x), in(y), in(w), in(h))
	s.AddShape(pic)
	return nil
}
