package charts

import (
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// annotationDefaults are the per-chart fallbacks for config annotations.
type annotationDefaults struct {
	Color string
	BoxBG string
	Size  float64
	// ForceArrow draws the arrow even when the annotation turns it off.
	ForceArrow bool
}

// annotations converts config annotations into drawable notes. When xytext
// is given the text is centered there and the arrow points at xy; otherwise
// the text sits at xy.
func (f *figure) annotations(as []Annotation, d annotationDefaults) notes {
	out := make(notes, 0, len(as))
	for _, a := range as {
		if a.Text == "" || len(a.XY) < 2 {
			continue
		}
		target := plotter.XY{X: a.XY[0].Value(), Y: a.XY[1].Value()}

		hex := a.Color
		if hex == "" {
			hex = d.Color
		}
		size := a.FontSize
		if size <= 0 {
			size = d.Size
		}
		bg := a.BoxBG
		if bg == "" {
			bg = d.BoxBG
			if f.dark {
				bg = "#152238"
			}
		}

		n := note{
			X: target.X, Y: target.Y, Text: a.Text,
			Style: f.textStyle(size, a.FontWeight != "normal", hex),
		}
		if a.Box {
			n.Box = palette.WithAlpha(bg, 0.9)
			n.Edge = palette.Color(hex)
		}
		if len(a.XYText) == 2 {
			n.X, n.Y = a.XYText[0], a.XYText[1]
			n.Style = aligned(n.Style, draw.XCenter, draw.YCenter)
			if d.ForceArrow || boolOr(a.Arrow, true) {
				n.Arrow = &target
				n.ArrowColor = palette.Color(hex)
				n.ArrowWidth = vg.Points(1.5)
			}
		}
		out = append(out, n)
	}
	return out
}

// lineDefaults are the per-chart fallbacks for hlines.
type lineDefaults struct {
	Color   string
	Width   float64
	Alpha   float64
	LabelAt float64
	Align   draw.XAlignment
}

func (f *figure) hline(h HLine, d lineDefaults) refLine {
	hex := h.Color
	if hex == "" {
		hex = d.Color
	}
	style := h.Style
	if style == "" {
		style = "--"
	}
	return refLine{
		Horizontal: true,
		At:         h.Y,
		Style:      draw.LineStyle{Color: palette.WithAlpha(hex, d.Alpha), Width: vg.Points(d.Width), Dashes: dashes(style)},
		Label:      h.Label,
		LabelAt:    d.LabelAt,
		LabelStyle: aligned(f.textStyle(8, true, hex), d.Align, draw.YBottom),
		Ranged:     true,
	}
}

func (f *figure) vline(v VLine, def string) refLine {
	hex := v.Color
	if hex == "" {
		hex = def
	}
	style := v.Style
	if style == "" {
		style = "--"
	}
	return refLine{
		At:         v.X,
		Style:      draw.LineStyle{Color: palette.WithAlpha(hex, 0.6), Width: vg.Points(1.5), Dashes: dashes(style)},
		Label:      v.Label,
		LabelStyle: aligned(f.textStyle(8, false, hex), draw.XLeft, draw.YTop),
	}
}
