package charts

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// gridPlot is a plot with hidden axes spanning [0,w]x[0,h], used for
// table-like charts drawn cell by cell.
func (f *figure) gridPlot(cfg Config, w, h float64) *plot.Plot {
	p := f.newPlot(Config{Title: cfg.Title})
	p.HideAxes()
	p.X.Min, p.X.Max = 0, w
	p.Y.Min, p.Y.Max = 0, h
	return p
}

const emptyCell = "—"

func heatFill(cell string, signal, dark bool, pal *palette.Palette) string {
	base := pal.White
	if dark {
		base = pal.ChartBG
	}
	switch {
	case signal && cell == "Overbought":
		return pick(dark, "#2D2010", "#FFF3E0")
	case signal && cell == "Oversold":
		return pick(dark, "#102030", "#E3F2FD")
	case signal, cell == "", cell == emptyCell:
		return base
	case strings.HasPrefix(cell, "+"):
		return pick(dark, "#0D2D10", "#E8F5E9")
	case strings.HasPrefix(cell, "-"):
		return pick(dark, "#2D0D10", "#FFEBEE")
	}
	return base
}

func heatInk(cell string, signal bool, pal *palette.Palette) string {
	switch {
	case signal && cell == "Overbought":
		return pal.Orange
	case signal && cell == "Oversold":
		return pal.ChartSecondary
	case signal:
		return pal.Gray
	case cell == "", cell == emptyCell:
		return pal.BodyText
	}
	return signInk(cell, pal)
}

// signInk colors a formatted number by its leading sign.
func signInk(cell string, pal *palette.Palette) string {
	switch {
	case strings.HasPrefix(cell, "+"):
		return pal.Green
	case strings.HasPrefix(cell, "-"):
		return pal.Red
	}
	return pal.BodyText
}

func pick(dark bool, darkHex, lightHex string) string {
	if dark {
		return darkHex
	}
	return lightHex
}

func renderTableHeatmap(s *Spec, pal *palette.Palette) (*figure, error) {
	var d heatmapData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	nCols := len(d.Headers)
	widths := cfg.ColWidths
	if len(widths) < nCols {
		widths = make([]float64, nCols)
		for i := range widths {
			widths[i] = 1
		}
	}
	colorCols := map[int]bool{}
	if cfg.ColorCols != nil {
		for _, c := range cfg.ColorCols {
			colorCols[c] = true
		}
	} else {
		for c := 3; c < nCols; c++ {
			colorCols[c] = true
		}
	}
	signalCol := nCols - 1
	if cfg.SignalCol != nil {
		signalCol = *cfg.SignalCol
	}

	colX := make([]float64, nCols+1)
	for j := 0; j < nCols; j++ {
		colX[j+1] = colX[j] + widths[j]
	}
	total := math.Max(colX[nCols], float64(nCols))
	nRows := float64(len(d.Rows) + 1)

	f := newFigure(cfg, pal, 14, 7.5)
	p := f.gridPlot(cfg, total, nRows)
	cellBG := pick(f.dark, pal.ChartBG, pal.White)
	border := draw.LineStyle{Color: palette.Color(pick(f.dark, "#1E2D42", "#EEEEEE")), Width: vg.Points(0.3)}
	const half = 0.375

	var (
		cells  boxes
		text   notes
		rules  segments
		header = nRows - 0.5
	)
	// Column 0 is left-aligned with a small inset, the rest are centered.
	cellText := func(j int, y float64, s string, sty func() note) note {
		n := sty()
		n.Text, n.Y = s, y
		if j == 0 {
			n.X = colX[j] + 0.12
			n.Style.XAlign = draw.XLeft
		} else {
			n.X = colX[j] + widths[j]/2
			n.Style.XAlign = draw.XCenter
		}
		return n
	}
	for j, h := range d.Headers {
		cells = append(cells, box{X0: colX[j] + 0.02, X1: colX[j+1] - 0.02, Y0: header - half, Y1: header + half, Fill: palette.Color(pal.Navy)})
		text = append(text, cellText(j, header, h, func() note {
			return note{Style: aligned(f.textStyle(9, true, pal.White), draw.XCenter, draw.YCenter)}
		}))
	}

	replaced, above := d.rowRules()
	rule := draw.LineStyle{Color: palette.Color(pal.LightGray), Width: vg.Points(0.5)}
	for i, row := range d.Rows {
		y := nRows - 1.5 - float64(i)
		if above[i] {
			rules = append(rules, segment{A: plotter.XY{X: 0, Y: y + 0.5}, B: plotter.XY{X: total, Y: y + 0.5}, Style: rule})
		}
		if replaced[i] {
			rules = append(rules, segment{A: plotter.XY{X: 0, Y: y}, B: plotter.XY{X: total, Y: y}, Style: rule})
			continue
		}
		for j, cell := range row {
			if j >= nCols {
				break
			}
			signal := j == signalCol
			fill, ink := cellBG, pal.BodyText
			if colorCols[j] {
				fill, ink = heatFill(cell, signal, f.dark, pal), heatInk(cell, signal, pal)
			}
			cells = append(cells, box{X0: colX[j] + 0.02, X1: colX[j+1] - 0.02, Y0: y - half, Y1: y + half, Fill: palette.Color(fill), Edge: border})
			size := 9.0
			if signal {
				size = 8.5
			}
			bold := j == 0 || signal
			text = append(text, cellText(j, y, cell, func() note {
				return note{Style: aligned(f.textStyle(size, bold, ink), draw.XCenter, draw.YCenter)}
			}))
		}
	}
	p.Add(cells, rules, text)
	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

func renderSparklineTable(s *Spec, pal *palette.Palette) (*figure, error) {
	var d sparkData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	nCols := len(d.Headers)
	nRows := float64(len(d.Rows) + 1)
	f := newFigure(cfg, pal, 14, math.Max(3, float64(len(d.Rows))*0.6+1))
	p := f.gridPlot(cfg, float64(nCols+1), nRows)
	border := draw.LineStyle{Color: palette.Color(pick(f.dark, "#1E2D42", "#EEEEEE")), Width: vg.Points(0.3)}

	var (
		cells boxes
		text  notes
	)
	heads := append(append([]string(nil), d.Headers...), "Trend")
	for j, h := range heads {
		x := float64(j)
		cells = append(cells, box{X0: x, X1: x + 1, Y0: nRows - 1, Y1: nRows, Fill: palette.Color(pal.Navy)})
		text = append(text, note{X: x + 0.5, Y: nRows - 0.5, Text: h, Style: aligned(f.textStyle(9, true, pal.White), draw.XCenter, draw.YCenter)})
	}

	altBG := pick(f.dark, "#0F1B2D", pal.FigBG)
	for i, row := range d.Rows {
		top := nRows - 1 - float64(i)
		bg := pal.ChartBG
		if i%2 == 1 {
			bg = altBG
		}
		for j := 0; j < nCols; j++ {
			var cell string
			if j < len(row.Cells) {
				cell = row.Cells[j]
			}
			x := float64(j)
			cells = append(cells, box{X0: x, X1: x + 1, Y0: top - 1, Y1: top, Fill: palette.Color(bg), Edge: border})
			text = append(text, note{X: x + 0.5, Y: top - 0.5, Text: cell, Style: aligned(f.textStyle(8, j == 0, signInk(cell, pal)), draw.XCenter, draw.YCenter)})
		}
		cells = append(cells, box{X0: float64(nCols), X1: float64(nCols + 1), Y0: top - 1, Y1: top, Fill: palette.Color(bg)})
	}
	p.Add(cells, text)

	for i, row := range d.Rows {
		if len(row.Sparkline) < 2 {
			continue
		}
		top := nRows - 1 - float64(i)
		xs, ys := sparkCoords(row.Sparkline, float64(nCols)+0.08, top-0.85, 0.84, 0.7)
		hex := pal.Red
		if row.Sparkline[len(row.Sparkline)-1] >= row.Sparkline[0] {
			hex = pal.Green
		}
		fill, err := band(xs, ys, top-0.85, palette.WithAlpha(hex, 0.15))
		if err != nil {
			return nil, err
		}
		pts := make(plotter.XYs, len(xs))
		for k := range xs {
			pts[k] = plotter.XY{X: xs[k], Y: ys[k]}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.LineStyle = draw.LineStyle{Color: palette.Color(hex), Width: vg.Points(1.2)}
		p.Add(fill, line)
	}

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// sparkCoords maps a series into the box with lower-left corner (x0, y0),
// width w and height h. A flat series sits in the vertical middle.
func sparkCoords(values []float64, x0, y0, w, h float64) (xs, ys []float64) {
	lo, hi := minMax(values)
	xs = make([]float64, len(values))
	ys = make([]float64, len(values))
	step := 0.0
	if len(values) > 1 {
		step = w / float64(len(values)-1)
	}
	for i, v := range values {
		xs[i] = x0 + float64(i)*step
		if hi > lo {
			ys[i] = y0 + (v-lo)/(hi-lo)*h
		} else {
			ys[i] = y0 + h/2
		}
	}
	return xs, ys
}

// quiltInk is the text color of a return quilt cell.
func quiltInk(v float64, dark bool) string {
	switch {
	case v < -5:
		return pick(dark, "#FF6B6B", "#B71C1C")
	case v > 5:
		return pick(dark, "#66BB6A", "#1B5E20")
	}
	return pick(dark, "#E8EDF3", "#1A1A2E")
}

// quiltRanking returns asset indexes ordered from best to worst return.
func quiltRanking(returns []float64) []int {
	idx := make([]int, len(returns))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return returns[idx[a]] > returns[idx[b]] })
	return idx
}

func renderReturnQuilt(s *Spec, pal *palette.Palette) (*figure, error) {
	var d quiltData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	f := newFigure(cfg, pal, 14, 8)
	p := f.newPlot(Config{Title: cfg.Title, XRotation: cfg.XRotation})
	p.Add(panel{Color: palette.Color(pal.FigBG)})
	p.HideY()

	nAssets := len(d.Assets)
	lo, hi := minMax(d.Returns...)
	neg, mid, pos := pick(f.dark, "#1A3A5C", "#D4E6F1"), pick(f.dark, "#1E2D42", "#FFFFFF"), pick(f.dark, "#1B4332", "#C8E6C9")
	categorical := cfg.ColorMode == "categorical"
	edge := draw.LineStyle{Color: palette.Color(pal.White), Width: vg.Points(0.5)}

	var (
		cells boxes
		text  notes
	)
	for yi, row := range d.Returns {
		if yi >= len(d.Years) {
			break
		}
		x := float64(yi)
		for rank, ai := range quiltRanking(row) {
			if ai >= nAssets {
				continue
			}
			v := row[ai]
			y := float64(nAssets - 1 - rank)
			var fill, ink string
			if categorical {
				fill, ink = pal.Cycle(ai), "#FFFFFF"
			} else {
				fill = palette.Gradient3(neg, mid, pos, (v-lo)/(hi-lo+1e-9))
				ink = quiltInk(v, f.dark)
			}
			cells = append(cells, box{X0: x - 0.45, X1: x + 0.45, Y0: y - 0.45, Y1: y + 0.45, Fill: palette.Color(fill), Edge: edge})
			bold := rank == 0 || rank == nAssets-1
			text = append(text, note{
				X: x, Y: y, Text: fmt.Sprintf("%s\n%+.1f%%", d.Assets[ai], v),
				Style: aligned(f.textStyle(7, bold, ink), draw.XCenter, draw.YCenter),
			})
		}
	}
	p.Add(cells, text)
	f.nominalX(p, cfg, d.Years)
	boldTicks(&p.X, 9)
	p.Y.Min, p.Y.Max = -0.5, float64(nAssets)-0.5

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}

// rowRules returns the rows drawn as a rule instead of their cells (explicit
// separators and rows with an empty first cell) and the rows with a rule
// above them.
func (d heatmapData) rowRules() (replaced, above map[int]bool) {
	replaced, above = map[int]bool{}, map[int]bool{}
	for _, i := range d.Separators {
		replaced[i] = true
	}
	for i, row := range d.Rows {
		if len(row) > 0 && row[0] == "" {
			replaced[i] = true
		}
	}
	for _, i := range d.RulesBefore {
		above[i] = true
	}
	return replaced, above
}
