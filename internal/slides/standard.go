package slides

import (
	"errors"

	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

const (
	defaultSectionHeight = 1.15
	defaultSourcesTitle  = "Data Sources & Methodology"
	defaultBackCompany   = "CROSSINVEST SA"
	defaultLeftIcon      = "→"
	defaultRightIcon     = "⚠"
)

var errNoChart = errors.New("no rendered chart")

func (b *Builder) cover(r Request) (*pptx.Slide, error) {
	var c coverContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.navySlide(b.background(r))
	w := in(b.layout.Width)
	rect(s, 0, 0, w, in(0.12), pal.Gold)
	rect(s, 0, in(b.layout.Height-0.12), w, in(0.12), pal.Gold)

	elements := []struct {
		y     float64
		text  string
		size  float64
		color string
		bold  bool
	}{
		{1.0, c.Company, 38, pal.Gold, true},
		{1.7, c.Tagline, 14, pal.Gold, true},
		{2.7, c.Headline, 44, pal.White, false},
		{3.6, c.Subheadline, 24, pal.Gold, false},
		{4.2, c.DateRange, 16, "#AABBCC", false},
		{4.85, c.Theme, 18, pal.White, true},
		{6.4, c.FooterText, 11, "#8899AA", false},
	}
	for _, e := range elements {
		if e.text == "" {
			continue
		}
		textBox(s, 0.8, e.y, 11.7, 0.7, e.text, textStyle{Size: e.size, Bold: e.bold, Color: e.color})
	}

	rect(s, in(0.8), in(2.35), in(2.5), pptx.Point(2), pal.Gold)
	return s, nil
}

func (b *Builder) executiveSummary(r Request) (*pptx.Slide, error) {
	var c summaryContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, "", c.Tag)

	y := 2.3
	for _, sec := range c.Sections {
		_, p := textBox(s, b.layout.MarginLeft, y, 12.0, 1.1, sec.Text,
			textStyle{Size: b.layout.BodySize, Color: b.pal.BodyText})
		p.SetSpaceAfter(4).SetLineSpacing(16)
		h := defaultSectionHeight
		if sec.Height != nil {
			h = *sec.Height
		}
		y += h
	}
	return s, nil
}

func (b *Builder) chart(r Request) (*pptx.Slide, error) {
	var c chartContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	if len(r.Charts) == 0 {
		return nil, errNoChart
	}
	img := r.Charts[0]
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, c.Subtitle, c.Tag)
	b.chartTag(s, img.Num, 0.4, b.layout.ChartTagTop)

	box := c.ChartDims.or(chartBox)
	if err := picture(s, img.Path, box.Left, box.Top, box.Width, box.Height); err != nil {
		return nil, err
	}
	return s, nil
}

func (b *Builder) text(r Request) (*pptx.Slide, error) {
	var c textContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, c.Title, "", c.Tag)

	columns := []struct {
		x     float64
		title string
		color string
		items []string
		icon  *string
		def   string
	}{
		{0.6, c.LeftTitle, c.LeftColor, c.LeftItems, c.LeftIcon, defaultLeftIcon},
		{7.0, c.RightTitle, c.RightColor, c.RightItems, c.RightIcon, defaultRightIcon},
	}
	for _, col := range columns {
		if col.title != "" {
			textBox(s, col.x, 2.2, 5.5, 0.4, col.title,
				textStyle{Size: 14, Bold: true, Color: orDefault(col.color, pal.BodyText)})
		}
		icon := col.def
		if col.icon != nil {
			icon = *col.icon
		}
		y := 2.7
		for _, item := range col.items {
			_, p := textBox(s, col.x, y, 5.5, 0.35, icon+"  "+item,
				textStyle{Size: 10.5, Color: pal.BodyText})
			p.SetLineSpacing(14)
			y += 0.55
		}
	}

	rect(s, in(6.5), in(2.3), pptx.Point(1.5), in(4.2), pal.LightGray)
	return s, nil
}

func (b *Builder) sources(r Request) (*pptx.Slide, error) {
	var c sourcesContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.contentSlide(b.background(r), r.Page)
	b.title(s, orDefault(c.Title, defaultSourcesTitle), "", "")

	for _, col := range []struct {
		x    float64
		body bulletText
	}{{0.6, c.LeftSources}, {6.8, c.RightSources}} {
		_, p := textBox(s, col.x, 2.0, 5.8, 4.2, string(col.body),
			textStyle{Size: 8, Color: pal.BodyText})
		p.SetLineSpacing(13)
	}

	rect(s, in(6.5), in(2.1), pptx.Point(1), in(3.8), pal.LightGray)

	if c.Disclaimer != "" {
		_, p := textBox(s, 0.6, 6.2, 12.0, 0.7, c.Disclaimer,
			textStyle{Size: b.layout.SourceSize, Italic: true, Color: pal.SourceColor})
		p.SetLineSpacing(11)
	}
	return s, nil
}

func (b *Builder) backCover(r Request) (*pptx.Slide, error) {
	var c backCoverContent
	if err := decodeContent(r.Content, &c); err != nil {
		return nil, err
	}
	pal := b.pal
	s := b.navySlide(b.background(r))
	w := b.layout.Width

	for _, y := range []float64{2.0, 5.5} {
		rect(s, in(4.5), in(y), in(4.333), pptx.Point(2), pal.Gold)
	}

	centered := func(y, h float64, txt string, st textStyle) {
		st.Align = pptx.HorizontalCenter
		textBox(s, 0, y, w, h, txt, st)
	}
	company := defaultBackCompany
	if c.Company != nil {
		company = *c.Company
	}
	if company != "" {
		centered(2.3, 0.8, company, textStyle{Size: 36, Bold: true, Color: pal.Gold})
	}
	centered(3.1, 0.5, c.Tagline, textStyle{Size: 16, Color: pal.White})

	y := 3.8
	for _, line := range c.ContactLines {
		centered(y, 0.35, line, textStyle{Size: 12, Color: "#AABBCC"})
		y += 0.35
	}
	if c.Closing != "" {
		centered(5.8, 0.5, c.Closing, textStyle{Size: 14, Italic: true, Color: pal.Gold})
	}
	if c.Regulatory != "" {
		centered(6.4, 0.35, c.Regulatory, textStyle{Size: 9, Color: "#8899AA"})
	}
	if c.Copyright != "" {
		centered(6.8, 0.35, c.Copyright, textStyle{Size: 8, Color: "#8899AA"})
	}
	return s, nil
}
