package charts

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// defaultMarkerArea is the marker area in square points.
const defaultMarkerArea = 80

func renderScatter(s *Spec, pal *palette.Palette) (*figure, error) {
	var d scatterData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	if cfg.XLabel == "" {
		cfg.XLabel = d.XLabel
	}
	if cfg.YLabel == "" {
		cfg.YLabel = d.YLabel
	}
	f := newFigure(cfg, pal, 10, 7)
	p := f.newPlot(cfg)

	pts := make(plotter.XYs, len(d.Points))
	var labels notes
	for i, pt := range d.Points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		if pt.Label != "" {
			labels = append(labels, note{
				X: pt.X, Y: pt.Y, Text: pt.Label, DX: vg.Points(6), DY: vg.Points(6),
				Style: f.textStyle(7, false, pal.BodyText),
			})
		}
	}
	dots, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		pt := d.Points[i]
		area := float64(defaultMarkerArea)
		if pt.Size != nil && *pt.Size > 0 {
			area = *pt.Size
		}
		hex := pt.Color
		if hex == "" {
			hex = pal.ChartPrimary
		}
		return draw.GlyphStyle{Color: palette.WithAlpha(hex, 0.8), Radius: vg.Points(math.Sqrt(area) / 2), Shape: draw.CircleGlyph{}}
	}
	p.Add(dots)
	padAxis(&p.X, 0.05)
	padAxis(&p.Y, 0.05)

	if q := d.QuadrantLabels; q != nil && len(pts) > 0 {
		x0, x1, y0, y1 := p.X.Min, p.X.Max, p.Y.Min, p.Y.Max
		midX, midY := (x0+x1)/2, (y0+y1)/2
		ink := palette.WithAlpha(pick(f.dark, "#1E2D42", pal.LightGray), 0.6)
		grid := draw.LineStyle{Color: ink, Width: vg.Points(0.8), Dashes: dashes("--")}
		p.Add(refLine{Horizontal: true, At: midY, Style: grid}, refLine{At: midX, Style: grid})

		sty := newTextStyle(8, false, palette.WithAlpha(pal.Gray, 0.5))
		left, right := x0+(midX-x0)*0.05, x1-(x1-midX)*0.05
		top, bottom := y1-(y1-midY)*0.05, y0+(midY-y0)*0.05
		p.Add(notes{
			{X: left, Y: top, Text: q.TL, Style: aligned(sty, draw.XLeft, draw.YTop)},
			{X: right, Y: top, Text: q.TR, Style: aligned(sty, draw.XRight, draw.YTop)},
			{X: left, Y: bottom, Text: q.BL, Style: aligned(sty, draw.XLeft, draw.YBottom)},
			{X: right, Y: bottom, Text: q.BR, Style: aligned(sty, draw.XRight, draw.YBottom)},
		})
	}

	if d.TrendLine && len(pts) >= 2 {
		if a, b, ok := trend(pts); ok {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, pt := range pts {
				lo, hi = math.Min(lo, pt.X), math.Max(hi, pt.X)
			}
			p.Add(segments{{
				A:     plotter.XY{X: lo, Y: a + b*lo},
				B:     plotter.XY{X: hi, Y: a + b*hi},
				Style: draw.LineStyle{Color: palette.WithAlpha(pal.Red, 0.6), Width: vg.Points(1.5), Dashes: dashes("--")},
			}})
		}
	}
	p.Add(labels)

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// trend fits y = a + b*x by least squares. It reports false when every
// point shares the same x.
func trend(pts plotter.XYs) (a, b float64, ok bool) {
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, pt := range pts {
		xs[i], ys[i] = pt.X, pt.Y
	}
	if stat.Variance(xs, nil) == 0 {
		return 0, 0, false
	}
	a, b = stat.LinearRegression(xs, ys, nil, false)
	return a, b, true
}
