package charts

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// panel fills the data area; it is added first so it sits behind the data.
type panel struct {
	Color color.Color
}

func (p panel) Plot(c draw.Canvas, _ *plot.Plot) {
	if p.Color == nil {
		return
	}
	c.SetColor(p.Color)
	c.Fill(c.Rectangle.Path())
}

// box is an axis-aligned rectangle in data coordinates.
type box struct {
	X0, Y0, X1, Y1 float64
	Fill           color.Color
	Edge           draw.LineStyle
}

// boxes draws rectangles with individual colors: bars, table cells, zones.
type boxes []box

func (bs boxes) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, b := range bs {
		pts := []vg.Point{
			{X: trX(b.X0), Y: trY(b.Y0)},
			{X: trX(b.X1), Y: trY(b.Y0)},
			{X: trX(b.X1), Y: trY(b.Y1)},
			{X: trX(b.X0), Y: trY(b.Y1)},
		}
		if b.Fill != nil {
			c.FillPolygon(b.Fill, pts)
		}
		if b.Edge.Color != nil && b.Edge.Width > 0 {
			c.StrokeLines(b.Edge, append(pts, pts[0]))
		}
	}
}

func (bs boxes) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, b := range bs {
		xmin = math.Min(xmin, math.Min(b.X0, b.X1))
		xmax = math.Max(xmax, math.Max(b.X0, b.X1))
		ymin = math.Min(ymin, math.Min(b.Y0, b.Y1))
		ymax = math.Max(ymax, math.Max(b.Y0, b.Y1))
	}
	return xmin, xmax, ymin, ymax
}

// refLine spans the whole data area at a fixed x or y. Labels of
// horizontal lines are drawn at data x LabelAt; labels of vertical lines
// hang from the top of the area.
type refLine struct {
	Horizontal bool
	At         float64
	Style      draw.LineStyle
	Label      string
	LabelAt    float64
	LabelStyle text.Style
	// Ranged lines extend the axis to include At.
	Ranged bool
}

func (l refLine) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	var label vg.Point
	if l.Horizontal {
		y := trY(l.At)
		if !c.ContainsY(y) {
			return
		}
		c.StrokeLine2(l.Style, c.Min.X, y, c.Max.X, y)
		label = vg.Point{X: trX(l.LabelAt), Y: y + vg.Points(2)}
	} else {
		x := trX(l.At)
		if !c.ContainsX(x) {
			return
		}
		c.StrokeLine2(l.Style, x, c.Min.Y, x, c.Max.Y)
		label = vg.Point{X: x + vg.Points(3), Y: c.Max.Y - vg.Points(4)}
	}
	if l.Label != "" {
		c.FillText(l.LabelStyle, label, l.Label)
	}
}

func (l refLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	if !l.Ranged {
		return
	}
	if l.Horizontal {
		return xmin, xmax, l.At, l.At
	}
	return l.At, l.At, ymin, ymax
}

// span shades the full height of the data area between two x values.
type span struct {
	X0, X1     float64
	Fill       color.Color
	Label      string
	LabelStyle text.Style
}

func (s span) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	x0, x1 := trX(s.X0), trX(s.X1)
	c.FillPolygon(s.Fill, c.ClipPolygonX([]vg.Point{
		{X: x0, Y: c.Min.Y}, {X: x1, Y: c.Min.Y}, {X: x1, Y: c.Max.Y}, {X: x0, Y: c.Max.Y},
	}))
	if s.Label != "" {
		c.FillText(s.LabelStyle, vg.Point{X: (x0 + x1) / 2, Y: (c.Min.Y + c.Max.Y) / 2}, s.Label)
	}
}

// segment is a straight line between two data points.
type segment struct {
	A, B  plotter.XY
	Style draw.LineStyle
}

type segments []segment

func (ss segments) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, s := range ss {
		line := []vg.Point{{X: trX(s.A.X), Y: trY(s.A.Y)}, {X: trX(s.B.X), Y: trY(s.B.Y)}}
		c.StrokeLines(s.Style, c.ClipLinesXY(line)...)
	}
}

func (ss segments) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, s := range ss {
		for _, p := range []plotter.XY{s.A, s.B} {
			xmin, xmax = math.Min(xmin, p.X), math.Max(xmax, p.X)
			ymin, ymax = math.Min(ymin, p.Y), math.Max(ymax, p.Y)
		}
	}
	return xmin, xmax, ymin, ymax
}

// note is a text label anchored at a data point and shifted by DX, DY.
// Box fills a padded rectangle behind the text; Arrow draws a pointer from
// the text to the data point Arrow.
type note struct {
	X, Y   float64
	Text   string
	Style  text.Style
	DX, DY vg.Length

	Box  color.Color
	Edge color.Color

	Arrow      *plotter.XY
	ArrowColor color.Color
	ArrowWidth vg.Length
}

type notes []note

func (ns notes) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, n := range ns {
		if n.Text == "" {
			continue
		}
		pt := vg.Point{X: trX(n.X) + n.DX, Y: trY(n.Y) + n.DY}
		if n.Arrow != nil {
			head := vg.Point{X: trX(n.Arrow.X), Y: trY(n.Arrow.Y)}
			drawArrow(&c, pt, head, n.ArrowColor, n.ArrowWidth)
		}
		if n.Box != nil {
			r := n.Style.Rectangle(n.Text).Add(pt)
			pad := vg.Points(3)
			pts := []vg.Point{
				{X: r.Min.X - pad, Y: r.Min.Y - pad},
				{X: r.Max.X + pad, Y: r.Min.Y - pad},
				{X: r.Max.X + pad, Y: r.Max.Y + pad},
				{X: r.Min.X - pad, Y: r.Max.Y + pad},
			}
			c.FillPolygon(n.Box, pts)
			if n.Edge != nil {
				c.StrokeLines(draw.LineStyle{Color: n.Edge, Width: vg.Points(1)}, append(pts, pts[0]))
			}
		}
		c.FillText(n.Style, pt, n.Text)
	}
}

func drawArrow(c *draw.Canvas, from, to vg.Point, col color.Color, width vg.Length) {
	if col == nil {
		col = color.Black
	}
	if width <= 0 {
		width = vg.Points(1.2)
	}
	dx, dy := float64(to.X-from.X), float64(to.Y-from.Y)
	dist := math.Hypot(dx, dy)
	if dist < 1 {
		return
	}
	ux, uy := dx/dist, dy/dist
	size := 6.0
	base := vg.Point{X: to.X - vg.Length(ux*size), Y: to.Y - vg.Length(uy*size)}
	c.StrokeLine2(draw.LineStyle{Color: col, Width: width}, from.X, from.Y, base.X, base.Y)
	half := size / 2.5
	c.FillPolygon(col, []vg.Point{
		to,
		{X: base.X - vg.Length(uy*half), Y: base.Y + vg.Length(ux*half)},
		{X: base.X + vg.Length(uy*half), Y: base.Y - vg.Length(ux*half)},
	})
}

// band returns a polygon filling between ys and a constant baseline.
func band(xs, ys []float64, baseline float64, fill color.Color) (*plotter.Polygon, error) {
	n := min(len(xs), len(ys))
	ring := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		ring = append(ring, plotter.XY{X: xs[i], Y: ys[i]})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: xs[i], Y: baseline})
	}
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	return poly, nil
}

// between returns a polygon filling between two curves sharing xs.
func between(xs, lower, upper []float64, fill color.Color) (*plotter.Polygon, error) {
	n := min(len(xs), len(lower), len(upper))
	ring := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		ring = append(ring, plotter.XY{X: xs[i], Y: upper[i]})
	}
	for i := n - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: xs[i], Y: lower[i]})
	}
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = fill
	poly.LineStyle.Width = 0
	return poly, nil
}

// swatch is a solid legend thumbnail.
type swatch struct {
	Color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	c.FillPolygon(s.Color, []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Min.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Min.X, Y: c.Max.Y},
	})
}

// xyLine builds a line at integer x positions.
func xyLine(values []float64, sty draw.LineStyle) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle = sty
	return l, nil
}

// markers returns a scatter of glyphs at integer x positions.
func markers(values []float64, sty draw.GlyphStyle) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i] = plotter.XY{X: float64(i), Y: v}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = sty
	return s, nil
}

func indexes(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}

func dashes(style string) []vg.Length {
	switch style {
	case "--", "dashed":
		return []vg.Length{vg.Points(5), vg.Points(3)}
	case ":", "dotted":
		return []vg.Length{vg.Points(1.5), vg.Points(2)}
	case "-.", "dashdot":
		return []vg.Length{vg.Points(5), vg.Points(2), vg.Points(1.5), vg.Points(2)}
	}
	return nil
}

func minMax(values ...[]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	return lo, hi
}
