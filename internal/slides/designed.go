package slides

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

// KPI card grid.
const (
	kpiPerRow  = 4
	kpiMaxRows = 2
	kpiGap     = 0.25
	kpiTop     = 2.4
	kpiHeight  = 1.9
)

// Dual chart geometry.
var dualChartX = [2]float64{0.4, 6.8}

const (
	dualChartWidth  = 6.1
	dualChartHeight = 4.3
)

func (b *Builder) sectionDivider(r Request) (*pptx.Slide, error) {
	var c dividerContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.navySlide(b.background(r))

	if c.Number != "" {
		textBox(s, 0.8, 1.6, 6, 1.6, string(c.Number), textStyle{Size: 80, Bold: true, Color: pal.Gold})
	}
	rect(s, in(0.8), in(3.4), in(2.5), pptx.Point(3), pal.Gold)
	textBox(s, 0.8, 3.6, 11.7, 1.0, c.Title, textStyle{Size: 36, Bold: true, Color: pal.White})
	if c.Subtitle != "" {
		textBox(s, 0.8, 4.6, 11.7, 0.6, c.Subtitle, textStyle{Size: 16, Color: "#AABBCC"})
	}
	return s, nil
}

// changeColor colors a KPI change by its trend, or by its sign when no
// trend is given.
func (b *Builder) changeColor(k kpi) string {
	switch strings.ToLower(k.Trend) {
	case "up":
		return b.pal.Green
	case "down":
		return b.pal.Red
	}
	ch := strings.TrimSpace(string(k.Change))
	switch {
	case strings.HasPrefix(ch, "+"), strings.HasPrefix(ch, "▲"), strings.HasPrefix(ch, "↑"):
		return b.pal.Green
	case strings.HasPrefix(ch, "-"), strings.HasPrefix(ch, "−"), strings.HasPrefix(ch, "▼"), strings.HasPrefix(ch, "↓"):
		return b.pal.Red
	}
	return b.pal.Gray
}

// kpiGrid returns the card columns and rows used for n cards.
func kpiGrid(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	n = min(n, kpiPerRow*kpiMaxRows)
	cols = min(n, kpiPerRow)
	rows = (n + cols - 1) / cols
	return cols, rows
}

func (b *Builder) kpiDashboard(r Request) (*pptx.Slide, error) {
	var c kpiContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	l, pal := b.layout, b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, c.Subtitle, c.Tag)

	kpis := c.KPIs
	if limit := kpiPerRow * kpiMaxRows; len(kpis) > limit {
		b.warn(fmt.Sprintf("kpi_dashboard: %d KPIs given, showing the first %d", len(kpis), limit),
			zap.Int("kpis", len(kpis)))
		kpis = kpis[:limit]
	}
	cols, _ := kpiGrid(len(kpis))
	if cols == 0 {
		return s, nil
	}
	width := l.ContentWidth()
	cardW := (width - kpiGap*float64(cols-1)) / float64(cols)

	for i, k := range kpis {
		row, col := i/cols, i%cols
		x := l.MarginLeft + float64(col)*(cardW+kpiGap)
		y := kpiTop + float64(row)*(kpiHeight+kpiGap)

		card := s.CreateAutoShape()
		card.SetAutoShapeType(pptx.AutoShapeRoundedRect)
		card.SetBounds(in(x), in(y), in(cardW), in(kpiHeight))
		card.SetSolidFill(hexColor(pal.CardBG))
		card.GetBorder().SetSolid(hexColor(pal.CardBorder), 1)

		textBox(s, x+0.15, y+0.15, cardW-0.3, 0.35, strings.ToUpper(k.Label),
			textStyle{Size: 10, Bold: true, Color: pal.Gray})
		textBox(s, x+0.15, y+0.55, cardW-0.3, 0.7, string(k.Value),
			textStyle{Size: 24, Bold: true, Color: pal.TitleColor})
		if k.Change != "" {
			textBox(s, x+0.15, y+1.3, cardW-0.3, 0.4, string(k.Change),
				textStyle{Size: 12, Bold: true, Color: b.changeColor(k)})
		}
	}
	return s, nil
}

func (b *Builder) impactColor(impact string) string {
	switch strings.ToLower(impact) {
	case "positive", "bullish":
		return b.pal.Green
	case "negative", "bearish":
		return b.pal.Red
	}
	return b.pal.Gray
}

func (b *Builder) news(r Request) (*pptx.Slide, error) {
	var c newsContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	l, pal := b.layout, b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, "", c.Tag)
	if len(c.Items) == 0 {
		return s, nil
	}

	top, bottom := 2.3, l.FooterY-0.15
	rowH := math.Min(1.1, (bottom-top)/float64(len(c.Items)))
	textX := l.MarginLeft + 1.3
	textW := l.Width - l.MarginRight - textX

	for i, item := range c.Items {
		y := top + float64(i)*rowH

		badge := s.CreateAutoShape()
		badge.SetAutoShapeType(pptx.AutoShapeRoundedRect)
		badge.SetBounds(in(l.MarginLeft), in(y+0.08), in(1.1), in(0.28))
		badge.SetSolidFill(hexColor(b.impactColor(item.Impact)))
		badge.SetWordWrap(false)
		badge.SetTextAnchor(pptx.TextAnchorMiddle)
		writeText(badge.GetActiveParagraph(), strings.ToUpper(orDefault(item.Impact, "neutral")),
			textStyle{Size: 8, Bold: true, Color: pal.White, Align: pptx.HorizontalCenter})

		textBox(s, textX, y, textW, 0.35, item.Headline,
			textStyle{Size: 13, Bold: true, Color: pal.TitleColor})
		if item.Summary != "" {
			textBox(s, textX, y+0.35, textW, rowH-0.6, item.Summary,
				textStyle{Size: 10, Color: pal.BodyText})
		}
		if item.Source != "" {
			textBox(s, textX, y+rowH-0.3, textW, 0.25, item.Source,
				textStyle{Size: 8, Italic: true, Color: pal.SourceColor})
		}
		if i < len(c.Items)-1 {
			rect(s, in(l.MarginLeft), in(y+rowH-0.03), in(l.ContentWidth()), pptx.Point(0.75), pal.LightGray)
		}
	}
	return s, nil
}

func (b *Builder) image(r Request) (*pptx.Slide, error) {
	var c imageContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, c.Subtitle, c.Tag)

	box := c.Dims.or(chartBox)
	placed := false
	if c.ImagePath != "" && fileExists(c.ImagePath) {
		if err := picture(s, c.ImagePath, box.Left, box.Top, box.Width, box.Height); err == nil {
			placed = true
		} else {
			b.warn("image unreadable: "+c.ImagePath, zap.String("path", c.ImagePath), zap.Error(err))
		}
	} else {
		b.warn("image not found: "+c.ImagePath, zap.String("path", c.ImagePath))
	}
	if !placed {
		card := s.CreateAutoShape()
		card.SetBounds(in(box.Left), in(box.Top), in(box.Width), in(box.Height))
		card.SetSolidFill(hexColor(pal.CardBG))
		card.GetBorder().SetSolid(hexColor(pal.CardBorder), 1)
		card.SetTextAnchor(pptx.TextAnchorMiddle)
		writeText(card.GetActiveParagraph(), "Image not available",
			textStyle{Size: 12, Italic: true, Color: pal.Gray, Align: pptx.HorizontalCenter})
	}

	if c.Caption != "" {
		textBox(s, box.Left, box.Top+box.Height+0.02, box.Width, 0.3, c.Caption,
			textStyle{Size: 9, Italic: true, Color: pal.SourceColor})
	}
	return s, nil
}

func (b *Builder) dualChart(r Request) (*pptx.Slide, error) {
	var c dualChartContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	l, pal := b.layout, b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, c.Subtitle, c.Tag)

	if len(r.Charts) > len(dualChartX) {
		b.warn(fmt.Sprintf("dual_chart: %d charts given, showing the first 2", len(r.Charts)),
			zap.Int("charts", len(r.Charts)))
	}
	for i, img := range r.Charts {
		if i >= len(dualChartX) {
			break
		}
		x := dualChartX[i]
		b.chartTag(s, img.Num, x, l.ChartTagTop)
		if err := picture(s, img.Path, x, l.ChartTop, dualChartWidth, dualChartHeight); err != nil {
			return nil, err
		}
		if i < len(c.Captions) && c.Captions[i] != "" {
			textBox(s, x, l.ChartTop+dualChartHeight, dualChartWidth, 0.2, c.Captions[i],
				textStyle{Size: 9, Italic: true, Color: pal.SourceColor, Align: pptx.HorizontalCenter})
		}
	}
	return s, nil
}

func (b *Builder) callout(r Request) (*pptx.Slide, error) {
	var c calloutContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	l, pal := b.layout, b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, "", c.Tag)

	const top, height = 2.4, 3.8
	width := l.ContentWidth()
	rect(s, in(l.MarginLeft), in(top), in(width), in(height), pal.CardBG)
	rect(s, in(l.MarginLeft), in(top), in(0.12), in(height), pal.Orange)

	textX := l.MarginLeft + 0.5
	if c.Stat != "" {
		textBox(s, textX, top+0.4, 3.5, 1.2, string(c.Stat),
			textStyle{Size: 54, Bold: true, Color: pal.Orange})
		if c.StatLabel != "" {
			textBox(s, textX, top+1.6, 3.5, 0.6, c.StatLabel,
				textStyle{Size: 12, Color: pal.Gray})
		}
		textX += 4.0
	}
	textW := l.MarginLeft + width - 0.4 - textX

	if c.Text != "" {
		_, p := textBox(s, textX, top+0.4, textW, 2.4, "“"+c.Text+"”",
			textStyle{Size: 20, Italic: true, Color: pal.TitleColor})
		p.SetLineSpacing(28)
	}
	if c.Attribution != "" {
		textBox(s, textX, top+height-0.8, textW, 0.4, "— "+c.Attribution,
			textStyle{Size: 12, Bold: true, Color: pal.BodyText})
	}
	return s, nil
}
