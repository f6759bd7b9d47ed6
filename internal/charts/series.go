package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

var markerShapes = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
	draw.PlusGlyph{},
	draw.CrossGlyph{},
}

func renderLine(s *Spec, pal *palette.Palette) (*figure, error) {
	var d lineData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	xs := indexes(len(d.Labels))

	shadeDefault := "#CCCCCC"
	if f.dark {
		shadeDefault = "#1E2D42"
	}
	for _, r := range d.ShadedRegions {
		c := r.Color
		if c == "" {
			c = shadeDefault
		}
		sty := aligned(f.textStyle(7, false, pal.Gray), draw.XCenter, draw.YCenter)
		sty.Rotation = math.Pi / 2
		p.Add(span{X0: r.Start, X1: r.End, Fill: palette.WithAlpha(c, 0.15), Label: r.Label, LabelStyle: sty})
	}

	baseline := 0.0
	switch {
	case cfg.Baseline != nil:
		baseline = *cfg.Baseline
	case f.dark:
		var all [][]float64
		for _, sr := range d.Series {
			all = append(all, sr.Values)
		}
		if lo, _ := minMax(all...); !math.IsInf(lo, 0) {
			baseline = lo
		}
	}
	fillAlpha := 0.08
	if f.dark {
		fillAlpha = 0.15
	}

	for i, sr := range d.Series {
		hex := seriesColor(sr.Color, i, pal)
		lw := sr.LineWidth
		if lw <= 0 {
			lw = 2.5
		}
		if f.dark {
			glow, err := xyLine(sr.Values, draw.LineStyle{Color: palette.WithAlpha(hex, 0.12), Width: vg.Points(lw * 3.5), Dashes: dashes(sr.LineStyle)})
			if err != nil {
				return nil, err
			}
			p.Add(glow)
		}
		if (cfg.Fill || f.dark) && len(sr.Values) > 1 {
			poly, err := band(xs, sr.Values, baseline, palette.WithAlpha(hex, fillAlpha))
			if err != nil {
				return nil, err
			}
			p.Add(poly)
		}
		line, err := xyLine(sr.Values, draw.LineStyle{Color: palette.Color(hex), Width: vg.Points(lw), Dashes: dashes(sr.LineStyle)})
		if err != nil {
			return nil, err
		}
		dots, err := markers(sr.Values, draw.GlyphStyle{Color: palette.Color(hex), Radius: vg.Points(3), Shape: markerShapes[i%len(markerShapes)]})
		if err != nil {
			return nil, err
		}
		p.Add(line, dots)
		if len(d.Series) > 1 {
			name := sr.Name
			if name == "" {
				name = fmt.Sprintf("Series %d", i+1)
			}
			p.Legend.Add(name, line, dots)
		}
	}

	var labels notes
	if cfg.SlopeLabels && len(d.Labels) >= 2 {
		for i, sr := range d.Series {
			if len(sr.Values) < 2 || sr.Values[0] == 0 {
				continue
			}
			first, last := sr.Values[0], sr.Values[len(sr.Values)-1]
			labels = append(labels, note{
				X: float64(len(d.Labels) - 1), Y: last,
				Text:  fmt.Sprintf("%s %s", sr.Name, signedPct(pctChange(first, last))),
				Style: aligned(f.textStyle(8, true, seriesColor(sr.Color, i, pal)), draw.XLeft, draw.YCenter),
				DX:    vg.Points(8),
			})
		}
	}

	boxBG := "#E3F2FD"
	if f.dark {
		boxBG = "#152238"
	}
	for _, a := range d.Annotations {
		n := note{
			X: a.X, Y: a.Y, Text: a.Text,
			Style: f.textStyle(7, false, pal.BodyText),
			DX:    vg.Points(15), DY: vg.Points(15),
			Box:   palette.WithAlpha(boxBG, 0.85), Edge: palette.Color(pal.Gray),
		}
		if a.Arrow {
			n.Arrow = &plotter.XY{X: a.X, Y: a.Y}
			n.ArrowColor = palette.Color(pal.Navy)
		}
		labels = append(labels, n)
	}

	if cfg.Baseline != nil {
		ink := "#CCCCCC"
		if f.dark {
			ink = "#2A3A4A"
		}
		p.Add(refLine{Horizontal: true, At: *cfg.Baseline, Style: draw.LineStyle{Color: palette.Color(ink), Width: vg.Points(0.8), Dashes: dashes("--")}})
	}
	for _, v := range cfg.VLines {
		p.Add(f.vline(v, pal.Navy))
	}
	for _, h := range cfg.HLines {
		p.Add(f.hline(h, lineDefaults{Color: pal.Red, Width: 1.2, Alpha: 0.5, LabelAt: 0.5, Align: draw.XLeft}))
	}
	p.Add(labels)
	p.Add(f.annotations(cfg.Annotations, annotationDefaults{Color: pal.Navy, BoxBG: "#E3F2FD", Size: 9}))

	f.nominalX(p, cfg, d.Labels)
	if cfg.SlopeLabels {
		p.X.Max += float64(len(d.Labels)) * 0.12
	}
	applyYLim(p, cfg, 0.05)

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderArea(s *Spec, pal *palette.Palette) (*figure, error) {
	var d areaData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	xs := indexes(len(d.Labels))
	p.Legend.Top, p.Legend.Left = true, true

	if cfg.Stacked && len(d.Series) > 1 {
		lower := make([]float64, len(xs))
		for i, sr := range d.Series {
			hex := sr.Color
			if hex == "" {
				hex = pal.Cycle(i)
			}
			upper := make([]float64, len(xs))
			for j := range upper {
				upper[j] = lower[j]
				if j < len(sr.Values) {
					upper[j] += sr.Values[j]
				}
			}
			poly, err := between(xs, lower, upper, palette.WithAlpha(hex, 0.7))
			if err != nil {
				return nil, err
			}
			p.Add(poly)
			p.Legend.Add(sr.Name, swatch{Color: palette.WithAlpha(hex, 0.7)})
			lower = upper
		}
	} else {
		for i, sr := range d.Series {
			hex := sr.Color
			if hex == "" {
				hex = pal.Cycle(i)
			}
			if len(sr.Values) > 1 {
				poly, err := band(xs, sr.Values, 0, palette.WithAlpha(hex, 0.3))
				if err != nil {
					return nil, err
				}
				p.Add(poly)
			}
			line, err := xyLine(sr.Values, draw.LineStyle{Color: palette.Color(hex), Width: vg.Points(2)})
			if err != nil {
				return nil, err
			}
			p.Add(line)
			if len(d.Series) > 1 {
				p.Legend.Add(sr.Name, line)
			}
		}
	}

	f.nominalX(p, cfg, d.Labels)
	applyYLim(p, cfg, 0.05)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderBump(s *Spec, pal *palette.Palette) (*figure, error) {
	var d bumpData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 6)
	p := f.newPlot(cfg)
	p.Y.Label.Text = "Rank"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}

	var ends notes
	last := float64(len(d.Periods) - 1)
	for i, sr := range d.Series {
		if len(sr.Ranks) == 0 {
			continue
		}
		hex := sr.Color
		if hex == "" {
			hex = pal.Cycle(i)
		}
		lw := math.Max(1.5, 3.5-float64(i)*0.3)
		line, err := xyLine(sr.Ranks, draw.LineStyle{Color: palette.Color(hex), Width: vg.Points(lw)})
		if err != nil {
			return nil, err
		}
		dots, err := markers(sr.Ranks, draw.GlyphStyle{Color: palette.Color(hex), Radius: vg.Points(4), Shape: draw.CircleGlyph{}})
		if err != nil {
			return nil, err
		}
		p.Add(line, dots)

		sty := f.textStyle(8, true, hex)
		ends = append(ends,
			note{X: -0.3, Y: sr.Ranks[0], Text: sr.Name, Style: aligned(sty, draw.XRight, draw.YCenter)},
			note{X: last + 0.3, Y: sr.Ranks[len(sr.Ranks)-1], Text: sr.Name, Style: aligned(sty, draw.XLeft, draw.YCenter)},
		)
	}
	p.Add(ends)

	f.nominalX(p, cfg, d.Periods)
	p.X.Min, p.X.Max = -1.2, last+1.2

	maxRank := 1.0
	for _, sr := range d.Series {
		for _, r := range sr.Ranks {
			maxRank = math.Max(maxRank, r)
		}
	}
	ticks := make(plot.ConstantTicks, 0, int(maxRank))
	for r := 1; r <= int(maxRank); r++ {
		ticks = append(ticks, plot.Tick{Value: float64(r), Label: fmt.Sprint(r)})
	}
	p.Y.Tick.Marker = ticks
	p.Y.Min, p.Y.Max = 0.5, maxRank+0.5

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderSmallMultiples(s *Spec, pal *palette.Palette) (*figure, error) {
	var d multiplesData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	n := len(d.Panels)
	ncols := cfg.NCols
	if ncols <= 0 {
		ncols = min(4, max(n, 1))
	}
	nrows := max((n+ncols-1)/ncols, 1)
	f := newFigure(cfg, pal, 3.5*float64(ncols), 2.5*float64(nrows))

	ylims := sharedLimits(d.Panels, cfg.SharedY)

	area := f.body(s.Source)
	if cfg.Title != "" {
		title := aligned(f.textStyle(14, true, pal.TitleColor), draw.XCenter, draw.YTop)
		area.FillText(title, vg.Point{X: (area.Min.X + area.Max.X) / 2, Y: area.Max.Y}, cfg.Title)
		area = draw.Crop(area, 0, 0, 0, -vg.Points(24))
	}
	tiles := draw.Tiles{Rows: nrows, Cols: ncols, PadX: vg.Points(10), PadY: vg.Points(10)}

	for idx, pn := range d.Panels {
		p := f.newPlot(Config{Title: pn.Title})
		p.Title.TextStyle = aligned(f.textStyle(9, true, pal.TitleColor), draw.XCenter, draw.YTop)
		p.Title.Padding = vg.Points(4)
		p.X.Tick.Label.Font.Size = vg.Points(6)
		p.Y.Tick.Label.Font.Size = vg.Points(6)

		if cfg.ChartType == "bar" {
			bs := make(boxes, len(pn.Values))
			for i, v := range pn.Values {
				bs[i] = box{X0: float64(i) - 0.3, X1: float64(i) + 0.3, Y0: 0, Y1: v, Fill: palette.Color(signColor(v, pal))}
			}
			p.Add(bs)
		} else if len(pn.Values) > 0 {
			if len(pn.Values) > 1 {
				poly, err := band(indexes(len(pn.Values)), pn.Values, 0, palette.WithAlpha(pal.ChartPrimary, 0.15))
				if err != nil {
					return nil, err
				}
				p.Add(poly)
			}
			line, err := xyLine(pn.Values, draw.LineStyle{Color: palette.Color(pal.ChartPrimary), Width: vg.Points(1.5)})
			if err != nil {
				return nil, err
			}
			p.Add(line)
		}

		if len(pn.Labels) > 0 {
			step := max(1, len(pn.Labels)/4)
			var ticks plot.ConstantTicks
			for i := 0; i < len(pn.Labels); i += step {
				ticks = append(ticks, plot.Tick{Value: float64(i), Label: pn.Labels[i]})
			}
			p.X.Tick.Marker = ticks
			p.X.Min, p.X.Max = -0.5, float64(len(pn.Labels))-0.5
		}
		if lim := ylims[idx]; lim != nil {
			p.Y.Min, p.Y.Max = lim[0], lim[1]
		}
		p.Draw(tiles.At(area, idx%ncols, idx/ncols))
	}

	f.source(s.Source)
	return f, nil
}

// sharedLimits decides the y range of each small-multiples panel. A nil
// entry leaves the panel auto-scaled. With shared unset the panels share a
// range only when their spans are within a factor of ten of each other.
func sharedLimits(panels []multiplesPanel, shared *bool) [][]float64 {
	out := make([][]float64, len(panels))
	if shared != nil && !*shared {
		return out
	}
	var all [][]float64
	ranges := make([]float64, 0, len(panels))
	for _, p := range panels {
		all = append(all, p.Values)
		r := 1.0
		if len(p.Values) > 0 {
			lo, hi := minMax(p.Values)
			if hi-lo > 0 {
				r = hi - lo
			}
		}
		ranges = append(ranges, r)
	}
	lo, hi := minMax(all...)
	if math.IsInf(lo, 0) {
		return out
	}
	rlo, rhi := minMax(ranges)
	ratio := math.Inf(1)
	if rlo > 0 {
		ratio = rhi / rlo
	}
	if (shared != nil && *shared) || ratio < 10 {
		margin := (hi - lo) * 0.1
		if margin == 0 {
			margin = 1
		}
		lim := []float64{lo - margin, hi + margin}
		for i := range out {
			out[i] = lim
		}
	}
	return out
}

func pctChange(first, last float64) float64 {
	return (last - first) / math.Abs(first) * 100
}

func signedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}
