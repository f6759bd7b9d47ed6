package palette

// Layout holds slide dimensions and spacing in inches, and font sizes in points.
type Layout struct {
	Width  float64
	Height float64

	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64

	HeaderHeight float64
	FooterY      float64
	FooterHeight float64

	TitleTop     float64
	TitleHeight  float64
	SubtitleTop  float64
	TagTop       float64
	ChartTop     float64
	ChartHeight  float64
	ChartTagTop  float64

	TitleSize    float64
	SubtitleSize float64
	BodySize     float64
	SourceSize   float64
	HeaderSize   float64
	FooterSize   float64
	TagSize      float64
	ChartTagSize float64

	ChartDPI       float64
	WideFigureSize [2]float64
}

// DefaultLayout returns the 13.333x7.5in widescreen layout.
func DefaultLayout() Layout {
	return Layout{
		Width:  13.333,
		Height: 7.5,

		MarginLeft:   0.6,
		MarginRight:  0.6,
		MarginTop:    0.5,
		MarginBottom: 0.5,

		HeaderHeight: 0.5,
		FooterY:      7.0,
		FooterHeight: 0.35,

		TitleTop:    0.7,
		TitleHeight: 0.8,
		SubtitleTop: 1.45,
		TagTop:      1.95,
		ChartTop:    2.5,
		ChartHeight: 4.5,
		ChartTagTop: 2.15,

		TitleSize:    22,
		SubtitleSize: 12,
		BodySize:     11,
		SourceSize:   7,
		HeaderSize:   10,
		FooterSize:   8,
		TagSize:      11,
		ChartTagSize: 9,

		ChartDPI:       250,
		WideFigureSize: [2]float64{14, 5.5},
	}
}

// ContentWidth is the width between the side margins.
func (l Layout) ContentWidth() float64 {
	return l.Width - l.MarginLeft - l.MarginRight
}
