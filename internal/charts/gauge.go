package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

const (
	gaugeBarY = 2.0
	gaugeBarH = 1.2
)

// pointer is a filled triangle centered on a data point.
type pointer struct {
	X, Y  float64
	Down  bool
	Size  vg.Length
	Color color.Color
}

func (m pointer) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	x, y := trX(m.X), trY(m.Y)
	h := m.Size / 2
	tip, base := y+h, y-h
	if m.Down {
		tip, base = y-h, y+h
	}
	c.FillPolygon(m.Color, []vg.Point{
		{X: x, Y: tip},
		{X: x - h, Y: base},
		{X: x + h, Y: base},
	})
}

// gaugeTickStep keeps the scale at roughly a dozen labels or fewer.
func gaugeTickStep(maxVal float64) float64 {
	switch {
	case maxVal <= 12:
		return 1
	case maxVal <= 25:
		return 5
	case maxVal <= 50:
		return 10
	}
	for _, nice := range []float64{5, 10, 20, 25, 50} {
		if maxVal/nice <= 12 {
			return nice
		}
	}
	return math.Max(math.Floor(maxVal/10), 5)
}

func renderGauge(s *Spec, pal *palette.Palette) (*figure, error) {
	var d gaugeData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	maxVal := 10.0
	switch {
	case d.MaxValue != nil:
		maxVal = *d.MaxValue
	case d.Max != nil:
		maxVal = *d.Max
	}

	f := newFigure(cfg, pal, 14, 5.5)
	p := f.newPlot(Config{})
	p.Add(panel{Color: palette.Color(pal.FigBG)})
	p.HideAxes()

	var (
		zones boxes
		text  notes
	)
	for _, z := range d.Zones {
		start, end := z.bounds()
		if len(z.Range) >= 2 && z.Start == nil {
			start, end = z.Range[0], z.Range[1]
		}
		fill := z.Color
		if fill == "" {
			fill = "#F5F5F5"
		}
		border := z.Border
		if border == "" {
			border = pal.Gray
		}
		lw := 1.0
		if end == maxVal {
			lw = 2
		}
		zones = append(zones, box{
			X0: start, X1: end, Y0: gaugeBarY, Y1: gaugeBarY + gaugeBarH,
			Fill: palette.Color(fill),
			Edge: draw.LineStyle{Color: palette.Color(border), Width: vg.Points(lw)},
		})
		size := 12.0
		if end-start <= 3 {
			size = 10
		}
		text = append(text, note{
			X: start + (end-start)/2, Y: gaugeBarY + gaugeBarH/2, Text: z.Label,
			Style: aligned(f.textStyle(size, true, border), draw.XCenter, draw.YCenter),
		})
	}

	step := gaugeTickStep(maxVal)
	for i := 0.0; i <= maxVal; i += step {
		text = append(text, note{
			X: i, Y: gaugeBarY - 0.05, Text: formatNumber(i),
			Style: aligned(f.textStyle(8, false, pal.Gray), draw.XCenter, draw.YTop),
		})
	}

	red := palette.Color(pal.Red)
	text = append(text, note{
		X: d.Value, Y: gaugeBarY - 0.55,
		Text:  "CURRENT: " + formatNumber(d.Value) + " / " + formatNumber(maxVal),
		Style: aligned(f.textStyle(16, true, pal.Red), draw.XCenter, draw.YTop),
		Box:   palette.Color(pick(f.dark, "#2D0D10", "#FFEBEE")),
		Edge:  red,
	})

	if cfg.Title != "" {
		text = append(text, note{X: maxVal / 2, Y: 4.2, Text: cfg.Title,
			Style: aligned(f.textStyle(18, true, pal.TitleColor), draw.XCenter, draw.YCenter)})
	}
	if cfg.Subtitle != "" {
		text = append(text, note{X: maxVal / 2, Y: 3.75, Text: cfg.Subtitle,
			Style: aligned(f.textStyle(12, true, pal.Red), draw.XCenter, draw.YCenter)})
	}
	for _, cb := range cfg.ContextBoxes {
		x, y := 0.3, 0.3
		if cb.X != nil {
			x = *cb.X
		}
		if cb.Y != nil {
			y = *cb.Y
		}
		bg, border := cb.BgColor, cb.BorderColor
		if bg == "" {
			bg = "#F5F5F5"
		}
		if border == "" {
			border = pal.Gray
		}
		text = append(text, note{X: x, Y: y, Text: cb.Text,
			Style: aligned(f.textStyle(9, false, pal.Navy), draw.XLeft, draw.YTop),
			Box:   palette.WithAlpha(bg, 0.9), Edge: palette.Color(border)})
	}

	p.Add(zones,
		pointer{X: d.Value, Y: gaugeBarY - 0.15, Down: true, Size: vg.Points(18), Color: red},
		pointer{X: d.Value, Y: gaugeBarY + gaugeBarH + 0.15, Size: vg.Points(18), Color: red},
		text,
	)
	p.X.Min, p.X.Max = -0.5, maxVal+0.5
	p.Y.Min, p.Y.Max = -1.5, 4.5

	p.Draw(f.body(s.Source))
	f.source(s.Source)
	return f, nil
}
