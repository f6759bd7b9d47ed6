package charts

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

func renderBar(s *Spec, pal *palette.Palette) (*figure, error) {
	var d barData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	edge := draw.LineStyle{Color: palette.Color(pal.White), Width: vg.Points(0.5)}
	showValues := boolOr(cfg.ShowValues, true)

	var (
		bars   boxes
		labels notes
	)
	if len(d.Groups) == 0 {
		lo, hi := minMax(d.Values)
		lift := (hi - lo) * 0.02
		for i, v := range d.Values {
			x := float64(i)
			bars = append(bars, box{X0: x - 0.3, X1: x + 0.3, Y1: v, Fill: palette.Color(signColor(v, pal)), Edge: edge})
			if !showValues {
				continue
			}
			txt := valueLabel(v)
			if stringOr(cfg.ValuePrefix, "") == "$" {
				txt = "$" + txt + "B"
			}
			labels = append(labels, note{
				X: x, Y: v + lift, Text: txt,
				Style: aligned(f.textStyle(10, true, f.axisInk()), draw.XCenter, draw.YBottom),
			})
		}
	} else {
		n := float64(len(d.Groups))
		width := 0.8 / n
		for i, g := range d.Groups {
			hex := seriesColor(g.Color, i, pal)
			fill := palette.WithAlpha(hex, 0.85)
			offset := (float64(i) - n/2 + 0.5) * width
			for j, v := range g.Values {
				x := float64(j) + offset
				bars = append(bars, box{X0: x - width/2, X1: x + width/2, Y1: v, Fill: fill, Edge: edge})
				if !showValues {
					continue
				}
				lbl := note{
					X: x, Y: v, Text: "$" + valueLabel(v) + "B",
					Style: aligned(f.textStyle(10, true, signColor(v, pal)), draw.XCenter, draw.YBottom),
					DY:    vg.Points(3),
				}
				if v < 0 {
					lbl.Style.YAlign = draw.YTop
					lbl.DY = -vg.Points(3)
				}
				labels = append(labels, lbl)
			}
			if len(d.Groups) > 1 {
				p.Legend.Add(g.Name, swatch{Color: fill})
			}
		}
	}
	p.Add(bars)
	p.Add(refLine{Horizontal: true, Style: draw.LineStyle{Color: palette.Color(f.zeroInk()), Width: vg.Points(1.2)}, Ranged: true})
	p.Add(labels)
	for _, h := range cfg.HLines {
		p.Add(f.hline(h, lineDefaults{Color: pal.Gold, Width: 1.5, Alpha: 0.7, LabelAt: float64(len(d.Labels)) - 0.5, Align: draw.XRight}))
	}
	p.Add(f.annotations(cfg.Annotations, annotationDefaults{Color: pal.Red, BoxBG: "#FFEBEE", Size: 10, ForceArrow: true}))

	f.nominalX(p, cfg, d.Labels)
	boldTicks(&p.X, 12)
	applyYLim(p, cfg, 0.08)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// hbarColor grades a flow value: deep outflows red, small outflows light
// red, small inflows green, large inflows primary.
func hbarColor(v float64, pal *palette.Palette) string {
	switch {
	case v < -5:
		return pal.Red
	case v < 0:
		return "#E57373"
	case v < 5:
		return pal.Green
	}
	return pal.ChartPrimary
}

func renderHBar(s *Spec, pal *palette.Palette) (*figure, error) {
	var d hbarData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	if cfg.Sort {
		sortPaired(d.Labels, d.Values)
	}
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	edge := draw.LineStyle{Color: palette.Color(pal.White), Width: vg.Points(0.5)}

	prefix := stringOr(cfg.ValuePrefix, "$")
	suffix := stringOr(cfg.ValueSuffix, "Bn")
	var (
		bars   boxes
		labels notes
	)
	for i, v := range d.Values {
		y := float64(i)
		hex := hbarColor(v, pal)
		bars = append(bars, box{X0: 0, X1: v, Y0: y - 0.3, Y1: y + 0.3, Fill: palette.Color(hex), Edge: edge})
		if !boolOr(cfg.ShowValues, true) {
			continue
		}
		n := note{
			X: v + 0.5, Y: y, Text: fmt.Sprintf("%s%+.1f%s", prefix, v, suffix),
			Style: aligned(f.textStyle(10, true, hex), draw.XLeft, draw.YCenter),
		}
		if v < 0 {
			n.X = v - 0.5
			n.Style.XAlign = draw.XRight
		}
		labels = append(labels, n)
	}
	p.Add(bars)
	p.Add(refLine{Style: draw.LineStyle{Color: palette.Color(f.zeroInk()), Width: vg.Points(1.2)}, Ranged: true})
	p.Add(labels)
	p.Add(f.annotations(cfg.Annotations, annotationDefaults{Color: pal.Red, BoxBG: "#FFEBEE", Size: 9, ForceArrow: true}))

	f.nominalY(p, d.Labels)
	boldTicks(&p.Y, 11)
	padAxis(&p.X, 0.15)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderStackedBar(s *Spec, pal *palette.Palette) (*figure, error) {
	var d stackedData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	edge := draw.LineStyle{Color: palette.Color(pal.White), Width: vg.Points(0.3)}
	width := cfg.BarWidth
	if width <= 0 {
		width = 0.62
	}
	defaults := []string{pal.ChartPrimary, pal.ChartSecondary, pal.Green, pal.Orange, pal.Gray}

	totals := make([]float64, len(d.Labels))
	var bars boxes
	for i, st := range d.Stacks {
		hex := st.Color
		if hex == "" {
			hex = defaults[i%len(defaults)]
			if i >= len(defaults) {
				hex = pal.Cycle(i)
			}
		}
		for j, v := range st.Values {
			if j >= len(totals) {
				break
			}
			x := float64(j)
			bars = append(bars, box{X0: x - width/2, X1: x + width/2, Y0: totals[j], Y1: totals[j] + v, Fill: palette.Color(hex), Edge: edge})
			totals[j] += v
		}
		p.Legend.Add(st.Name, swatch{Color: palette.Color(hex)})
	}
	p.Add(bars)

	if boolOr(cfg.ShowTotals, true) {
		prefix := stringOr(cfg.TotalPrefix, "€")
		suffix := stringOr(cfg.TotalSuffix, "B")
		ink := f.zeroInk()
		var labels notes
		for j, t := range totals {
			labels = append(labels, note{
				X: float64(j), Y: t, Text: prefix + valueLabel(math.Trunc(t)) + suffix,
				Style: aligned(f.textStyle(9, true, ink), draw.XCenter, draw.YBottom),
				DY:    vg.Points(3),
			})
		}
		p.Add(labels)
	}
	p.Add(f.annotations(cfg.Annotations, annotationDefaults{Color: pal.Navy, BoxBG: "#E3F2FD", Size: 9, ForceArrow: true}))

	f.nominalX(p, cfg, d.Labels)
	boldTicks(&p.X, 10)
	applyYLim(p, cfg, 0.1)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// waterfallBottoms returns where each waterfall bar starts. Totals start at
// zero and reset the running level; a rise starts at the running level and a
// fall ends there.
func waterfallBottoms(values []float64, isTotal []bool) []float64 {
	bottoms := make([]float64, len(values))
	var running float64
	for i, v := range values {
		switch {
		case isTotal[i]:
			bottoms[i] = 0
			running = v
		case v >= 0:
			bottoms[i] = running
			running += v
		default:
			running += v
			bottoms[i] = running
		}
	}
	return bottoms
}

// waterfallTotals fills in is_total when it is missing or short: the first
// and last bars are totals.
func waterfallTotals(n int, given []bool) []bool {
	out := make([]bool, n)
	for i := range out {
		if i < len(given) {
			out[i] = given[i]
		} else if len(given) == 0 {
			out[i] = i == 0 || i == n-1
		}
	}
	return out
}

func renderWaterfall(s *Spec, pal *palette.Palette) (*figure, error) {
	var d waterfallData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(cfg)
	edge := draw.LineStyle{Color: palette.Color(pal.White), Width: vg.Points(0.5)}

	isTotal := waterfallTotals(len(d.Values), d.IsTotal)
	bottoms := waterfallBottoms(d.Values, isTotal)
	lo, hi := minMax(d.Values)
	lift := (hi - lo) * 0.02

	var (
		bars   boxes
		links  segments
		labels notes
	)
	linkInk := "#AAAAAA"
	labelInk := "#333333"
	if f.dark {
		linkInk, labelInk = pal.BodyText, pal.BodyText
	}
	suffix := stringOr(cfg.ValueSuffix, "")
	for i, v := range d.Values {
		x := float64(i)
		height := math.Abs(v)
		hex := signColor(v, pal)
		if isTotal[i] {
			height = v
			hex = pal.ChartPrimary
		}
		b := bottoms[i]
		bars = append(bars, box{X0: x - 0.3, X1: x + 0.3, Y0: b, Y1: b + height, Fill: palette.Color(hex), Edge: edge})

		if boolOr(cfg.ShowConnectors, true) && i < len(d.Values)-1 {
			top := b + height
			if isTotal[i] {
				top = v
			}
			links = append(links, segment{
				A:     plotter.XY{X: x + 0.3, Y: top},
				B:     plotter.XY{X: x + 1 - 0.3, Y: top},
				Style: draw.LineStyle{Color: palette.WithAlpha(linkInk, 0.5), Width: vg.Points(0.8), Dashes: dashes("--")},
			})
		}

		sign := ""
		if v > 0 && !isTotal[i] {
			sign = "+"
		}
		labels = append(labels, note{
			X: x, Y: b + math.Abs(v) + lift, Text: sign + valueLabel(v) + suffix,
			Style: aligned(f.textStyle(10, true, labelInk), draw.XCenter, draw.YBottom),
		})
	}
	p.Add(bars, links, labels)

	f.nominalX(p, cfg, d.Labels)
	boldTicks(&p.X, 10)
	applyYLim(p, cfg, 0.08)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderLollipop(s *Spec, pal *palette.Palette) (*figure, error) {
	var d lollipopData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	if cfg.Sort {
		sortPaired(d.Categories, d.Values)
	}
	f := newFigure(cfg, pal, 12, 6)
	p := f.newPlot(cfg)

	var stems segments
	pts := make(plotter.XYs, len(d.Values))
	for i, v := range d.Values {
		y := float64(i)
		stems = append(stems, segment{
			A:     plotter.XY{X: 0, Y: y},
			B:     plotter.XY{X: v, Y: y},
			Style: draw.LineStyle{Color: palette.Color(signColor(v, pal)), Width: vg.Points(1.5)},
		})
		pts[i] = plotter.XY{X: v, Y: y}
	}
	dots, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	dots.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: palette.Color(signColor(d.Values[i], pal)), Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
	}
	p.Add(refLine{Style: draw.LineStyle{Color: palette.Color(pal.Gray), Width: vg.Points(0.8)}, Ranged: true})
	p.Add(stems, dots)

	f.nominalY(p, d.Categories)
	boldTicks(&p.Y, 10)
	padAxis(&p.X, 0.08)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderDumbbell(s *Spec, pal *palette.Palette) (*figure, error) {
	var d dumbbellData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 12, 6)
	p := f.newPlot(cfg)
	p.Legend.Top, p.Legend.Left = false, false

	n := min(len(d.Categories), len(d.Start), len(d.End))
	var links segments
	starts := make(plotter.XYs, n)
	ends := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		y := float64(i)
		links = append(links, segment{
			A:     plotter.XY{X: math.Min(d.Start[i], d.End[i]), Y: y},
			B:     plotter.XY{X: math.Max(d.Start[i], d.End[i]), Y: y},
			Style: draw.LineStyle{Color: palette.Color(pal.LightGray), Width: vg.Points(2.5)},
		})
		starts[i] = plotter.XY{X: d.Start[i], Y: y}
		ends[i] = plotter.XY{X: d.End[i], Y: y}
	}
	startDots, err := plotter.NewScatter(starts)
	if err != nil {
		return nil, err
	}
	startDots.GlyphStyle = draw.GlyphStyle{Color: palette.Color(pal.Gray), Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	endDots, err := plotter.NewScatter(ends)
	if err != nil {
		return nil, err
	}
	endDots.GlyphStyle = draw.GlyphStyle{Color: palette.Color(pal.ChartPrimary), Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	p.Add(links, startDots, endDots)

	startLabel, endLabel := d.StartLabel, d.EndLabel
	if startLabel == "" {
		startLabel = "Start"
	}
	if endLabel == "" {
		endLabel = "End"
	}
	p.Legend.Add(startLabel, startDots)
	p.Legend.Add(endLabel, endDots)

	f.nominalY(p, d.Categories[:n])
	boldTicks(&p.Y, 10)
	padAxis(&p.X, 0.08)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// sortPaired orders values ascending and keeps labels aligned with them.
func sortPaired(labels []string, values []float64) {
	n := min(len(labels), len(values))
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })
	ls := make([]string, n)
	vs := make([]float64, n)
	for i, j := range idx {
		ls[i], vs[i] = labels[j], values[j]
	}
	copy(labels, ls)
	copy(values, vs)
}

func boldTicks(ax *plot.Axis, size float64) {
	ax.Tick.Label.Font.Size = vg.Points(size)
	ax.Tick.Label.Font.Weight = boldWeight
}
