package charts

import (
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// Matrix layout on a 10x10 grid.
var (
	matrixColX = []float64{0, 2.3, 3.5, 4.3}
	matrixColW = []float64{2.3, 1.2, 0.8, 5.7}
)

const (
	matrixRowH = 0.95
	// donutHole is the inner radius as a fraction of the slice radius.
	donutHole = 0.6
)

func renderDonutMatrix(s *Spec, pal *palette.Palette) (*figure, error) {
	var d donutData
	if err := s.DecodeData(&d); err != nil {
		return nil, err
	}
	cfg := s.Config
	donut := d.Donut
	if donut == nil {
		donut = &donutPart{}
	}
	matrix := d.Matrix
	if matrix == nil {
		matrix = &matrixPart{}
	}

	f := newFigure(cfg, pal, 14, 5.5)
	body := f.body(s.Source)
	w, h := body.Max.X-body.Min.X, body.Max.Y-body.Min.Y
	left := draw.Crop(body, w*0.02, -w*0.56, h*0.05, -h*0.05)
	right := draw.Crop(body, w*0.50, -w*0.02, h*0.05, -h*0.05)

	if err := f.drawDonut(left, donut, cfg.DonutTitle); err != nil {
		return nil, err
	}
	f.drawMatrix(right, matrix, cfg.MatrixTitle)
	f.source(s.Source)
	return f, nil
}

// donutColors resolves slice colors, cycling the defaults when the list is
// short.
func donutColors(given []string, n int, pal *palette.Palette) []string {
	colors := given
	if len(colors) == 0 {
		colors = []string{pal.ChartPrimary, pal.ChartSecondary, "#5B9BD5", pal.Green, pal.Orange, pal.Gold, pal.Gray}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = colors[i%len(colors)]
	}
	return out
}

// drawDonut renders the ring with go-chart, composites it onto c and draws
// the labels around it.
func (f *figure) drawDonut(c draw.Canvas, d *donutPart, title string) error {
	pal := f.pal
	if title == "" {
		title = "Strategic Allocation"
	}
	titleStyle := aligned(f.textStyle(12, true, pal.TitleColor), draw.XCenter, draw.YTop)
	midX := (c.Min.X + c.Max.X) / 2
	c.FillText(titleStyle, vg.Point{X: midX, Y: c.Max.Y}, title)
	c = draw.Crop(c, 0, 0, 0, -(titleStyle.Height(title) + vg.Points(10)))

	var total float64
	for _, v := range d.Sizes {
		if v > 0 {
			total += v
		}
	}
	if total <= 0 {
		return nil
	}

	// The ring takes the middle 60% so labels fit around it.
	side := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) * 0.6
	center := vg.Point{X: midX, Y: (c.Min.Y + c.Max.Y) / 2}
	px := int(side.Dots(f.dpi()))
	if px < 40 {
		px = 40
	}

	colors := donutColors(d.Colors, len(d.Sizes), pal)
	edge := pick(f.dark, pal.FigBG, pal.White)
	values := make([]chart.Value, 0, len(d.Sizes))
	for i, v := range d.Sizes {
		values = append(values, chart.Value{
			Value: v,
			Style: chart.Style{
				FillColor:   drawingColor(colors[i]),
				StrokeColor: drawingColor(edge),
				StrokeWidth: 2,
			},
		})
	}
	bg := chart.Style{FillColor: drawingColor(pal.FigBG), StrokeColor: drawingColor(pal.FigBG)}
	ring := chart.DonutChart{
		Width:      px,
		Height:     px,
		DPI:        f.dpi(),
		Background: bg,
		Canvas:     bg,
		Values:     values,
	}
	var out chart.ImageWriter
	if err := ring.Render(chart.PNG, &out); err != nil {
		return err
	}
	img, err := out.Image()
	if err != nil {
		return err
	}
	half := side / 2
	c.DrawImage(vg.Rectangle{
		Min: vg.Point{X: center.X - half, Y: center.Y - half},
		Max: vg.Point{X: center.X + half, Y: center.Y + half},
	}, img)

	// Mirror go-chart's geometry: 5px padding, radius shrunk by 1.1, slices
	// drawn at radius/1.25, clockwise from three o'clock.
	scale := side / vg.Length(px)
	radius := vg.Length(float64((px-10)/2)/1.1) * scale
	sliceR := radius / 1.25

	hole := circle(center, sliceR*donutHole, 64)
	c.FillPolygon(palette.Color(pal.FigBG), hole)

	var acc float64
	for i, v := range d.Sizes {
		if v <= 0 {
			continue
		}
		frac := v / total
		angle := 2 * math.Pi * (acc + frac/2)
		acc += frac
		if i >= len(d.Labels) || d.Labels[i] == "" {
			continue
		}
		cos, sin := math.Cos(angle), math.Sin(angle)
		pt := vg.Point{X: center.X + sliceR*1.25*vg.Length(cos), Y: center.Y - sliceR*1.25*vg.Length(sin)}
		sty := aligned(f.textStyle(8.5, true, colors[i]), draw.XLeft, draw.YCenter)
		if cos < 0 {
			sty.XAlign = draw.XRight
		}
		c.FillText(sty, pt, d.Labels[i])
	}

	if d.CenterText != "" {
		c.FillText(aligned(f.textStyle(10, true, pal.TitleColor), draw.XCenter, draw.YCenter), center, d.CenterText)
	}
	return nil
}

func (f *figure) drawMatrix(c draw.Canvas, m *matrixPart, title string) {
	pal := f.pal
	if title == "" {
		title = "Conviction Matrix"
	}
	p := f.gridPlot(Config{}, 10, 10)
	p.Add(panel{Color: palette.Color(pal.FigBG)})

	var (
		cells boxes
		text  notes
	)
	text = append(text, note{X: 5, Y: 9.7, Text: title, Style: aligned(f.textStyle(12, true, pal.TitleColor), draw.XCenter, draw.YBottom)})

	place := func(j int, y float64, s string, sty func() note) note {
		n := sty()
		n.Text, n.Y = s, y
		if j == 0 || j == 3 {
			n.X = matrixColX[j] + 0.15
			n.Style.XAlign = draw.XLeft
		} else {
			n.X = matrixColX[j] + matrixColW[j]/2
			n.Style.XAlign = draw.XCenter
		}
		return n
	}
	cell := func(j int, y float64) (x0, x1, y0, y1 float64) {
		return matrixColX[j], matrixColX[j] + matrixColW[j] - 0.05, y - matrixRowH/2 + 0.05, y + matrixRowH/2 - 0.05
	}

	for j, hd := range m.Headers {
		if j >= len(matrixColX) {
			break
		}
		x0, x1, y0, y1 := cell(j, 9.0)
		cells = append(cells, box{X0: x0, X1: x1, Y0: y0, Y1: y1, Fill: palette.Color(pal.Navy)})
		text = append(text, place(j, 9.0, hd, func() note {
			return note{Style: aligned(f.textStyle(8, true, pal.White), draw.XCenter, draw.YCenter)}
		}))
	}

	border := draw.LineStyle{Color: palette.Color(pick(f.dark, "#1E2D42", "#EEEEEE")), Width: vg.Points(0.3)}
	for i, row := range m.Rows {
		y := 8.0 - float64(i)*matrixRowH
		var view string
		if len(row) > 1 {
			view = row[1]
		}
		bg := matrixRowFill(view, f.dark, pal)
		for j, txt := range row {
			if j >= len(matrixColX) {
				break
			}
			x0, x1, y0, y1 := cell(j, y)
			cells = append(cells, box{X0: x0, X1: x1, Y0: y0, Y1: y1, Fill: palette.Color(bg), Edge: border})
			ink := pal.BodyText
			switch j {
			case 1:
				ink = viewInk(view, pal)
			case 2:
				ink = changeInk(txt, pal)
			}
			text = append(text, place(j, y, txt, func() note {
				return note{Style: aligned(f.textStyle(8, j <= 2, ink), draw.XCenter, draw.YCenter)}
			}))
		}
	}
	p.Add(cells, text)
	p.Draw(c)
}

func matrixRowFill(view string, dark bool, pal *palette.Palette) string {
	switch {
	case strings.HasPrefix(view, "OW"):
		return pick(dark, "#0D2D10", "#E8F5E9")
	case strings.HasPrefix(view, "UW"):
		return pick(dark, "#2D0D10", "#FFEBEE")
	}
	return pick(dark, pal.ChartBG, pal.White)
}

func viewInk(view string, pal *palette.Palette) string {
	switch {
	case strings.HasPrefix(view, "OW"):
		return pal.Green
	case strings.HasPrefix(view, "UW"):
		return pal.Red
	}
	return pal.Gray
}

func changeInk(cell string, pal *palette.Palette) string {
	switch {
	case strings.Contains(cell, "↑"):
		return pal.Green
	case strings.Contains(cell, "↓"):
		return pal.Red
	}
	return pal.Gray
}

func circle(center vg.Point, r vg.Length, n int) []vg.Point {
	pts := make([]vg.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = vg.Point{X: center.X + r*vg.Length(math.Cos(a)), Y: center.Y + r*vg.Length(math.Sin(a))}
	}
	return pts
}

func drawingColor(hex string) drawing.Color {
	c := palette.RGBA(hex)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
