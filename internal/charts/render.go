package charts

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	xfont "golang.org/x/image/font"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

const boldWeight = xfont.WeightBold

type renderFunc func(s *Spec, pal *palette.Palette) (*figure, error)

var renderers = map[string]renderFunc{
	"line":            renderLine,
	"bar":             renderBar,
	"hbar":            renderHBar,
	"stacked_bar":     renderStackedBar,
	"table_heatmap":   renderTableHeatmap,
	"gauge":           renderGauge,
	"donut_matrix":    renderDonutMatrix,
	"waterfall":       renderWaterfall,
	"return_quilt":    renderReturnQuilt,
	"scatter":         renderScatter,
	"sparkline_table": renderSparklineTable,
	"lollipop":        renderLollipop,
	"dumbbell":        renderDumbbell,
	"area":            renderArea,
	"bump":            renderBump,
	"small_multiples": renderSmallMultiples,
}

// Types returns the registered chart type names, sorted.
func Types() []string {
	names := make([]string, 0, len(renderers))
	for n := range renderers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// UnknownTypeError reports a chart type with no renderer. It matches
// ErrUnknownChartType with errors.Is.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string { return "Unknown chart type: " + e.Type }

// Is reports whether target is ErrUnknownChartType.
func (e *UnknownTypeError) Is(target error) bool { return target == ErrUnknownChartType }

// Supported reports whether typ has a renderer.
func Supported(typ string) bool {
	_, ok := renderers[typ]
	return ok
}

// Render draws s with pal and writes the PNG into outDir, returning its path.
func Render(ctx context.Context, s *Spec, pal *palette.Palette, outDir string) (string, error) {
	fn, ok := renderers[s.Type]
	if !ok {
		return "", &UnknownTypeError{Type: s.Type}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if pal == nil {
		pal = palette.Get(palette.DefaultName)
	}

	fig, err := fn(s, pal)
	if err != nil {
		return "", fmt.Errorf("failed to render %s chart: %w", s.Type, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}
	path := filepath.Join(outDir, s.DefaultFilename())
	if err := fig.save(path); err != nil {
		return "", err
	}
	return path, nil
}

// figure is a raster canvas sized in inches, filled with the palette's
// figure background.
type figure struct {
	img    *vgimg.Canvas
	canvas draw.Canvas
	pal    *palette.Palette
	dark   bool
	res    float64
}

// dpi is the raster resolution in dots per inch.
func (f *figure) dpi() float64 { return f.res }

func newFigure(cfg Config, pal *palette.Palette, defW, defH float64) *figure {
	w, h := defW, defH
	if len(cfg.FigSize) == 2 && cfg.FigSize[0] > 0 && cfg.FigSize[1] > 0 {
		w, h = cfg.FigSize[0], cfg.FigSize[1]
	}
	dpi := cfg.DPI
	if dpi <= 0 {
		dpi = palette.DefaultLayout().ChartDPI
	}
	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch),
		vgimg.UseDPI(int(dpi)),
		vgimg.UseBackgroundColor(palette.Color(pal.FigBG)),
	)
	return &figure{
		img:    img,
		canvas: draw.New(img),
		pal:    pal,
		dark:   pal.IsDark(),
		res:    dpi,
	}
}

// body is the area left for the chart once the source line is reserved.
func (f *figure) body(source string) draw.Canvas {
	pad := vg.Points(8)
	bottom := pad
	if source != "" {
		bottom += vg.Points(12)
	}
	return draw.Crop(f.canvas, pad, -pad, bottom, -pad)
}

// source writes the attribution line at the bottom-left corner.
func (f *figure) source(s string) {
	if s == "" {
		return
	}
	c := f.canvas
	sty := f.textStyle(7, false, f.pal.SourceColor)
	sty.Font.Style = xfont.StyleItalic
	w := c.Max.X - c.Min.X
	h := c.Max.Y - c.Min.Y
	c.FillText(sty, vg.Point{X: c.Min.X + w*0.02, Y: c.Min.Y + h*0.01}, s)
}

func (f *figure) save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: f.img}).WriteTo(out); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("failed to encode chart png: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	return nil
}

// textStyle is a Liberation Sans style with left/bottom alignment.
func (f *figure) textStyle(size float64, bold bool, hex string) text.Style {
	return newTextStyle(size, bold, palette.Color(hex))
}

func newTextStyle(size float64, bold bool, c color.Color) text.Style {
	fnt := font.Font{Typeface: "Liberation", Variant: "Sans", Size: vg.Points(size)}
	if bold {
		fnt.Weight = boldWeight
	}
	return text.Style{
		Color:   c,
		Font:    fnt,
		XAlign:  draw.XLeft,
		YAlign:  draw.YBottom,
		Handler: plot.DefaultTextHandler,
	}
}

func aligned(sty text.Style, x draw.XAlignment, y draw.YAlignment) text.Style {
	sty.XAlign = x
	sty.YAlign = y
	return sty
}

// axisInk is the color for axis lines, ticks and labels.
func (f *figure) axisInk() string {
	if f.dark {
		return f.pal.BodyText
	}
	return "#333333"
}

// zeroInk is the color of the zero line on bar-like charts.
func (f *figure) zeroInk() string {
	if f.dark {
		return f.pal.BodyText
	}
	return f.pal.Navy
}

// newPlot returns a plot styled for the figure: fig_bg around the axes,
// chart_bg inside them, palette-colored text.
func (f *figure) newPlot(cfg Config) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = palette.Color(f.pal.FigBG)

	ink := palette.Color(f.axisInk())
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = ink
		ax.Tick.Color = ink
		ax.Tick.Label = aligned(newTextStyle(9, false, ink), ax.Tick.Label.XAlign, ax.Tick.Label.YAlign)
		ax.Label.TextStyle = aligned(newTextStyle(11, true, ink), ax.Label.TextStyle.XAlign, ax.Label.TextStyle.YAlign)
	}
	if f.dark {
		legend := palette.Color(f.pal.BodyText)
		p.Legend.TextStyle.Color = legend
	}
	p.Legend.TextStyle.Font = newTextStyle(9, false, color.Black).Font
	p.Legend.Top, p.Legend.Left = legendPosition(cfg.LegendLoc)

	if cfg.Title != "" {
		p.Title.Text = cfg.Title
		p.Title.TextStyle = aligned(f.textStyle(14, true, f.pal.TitleColor), draw.XCenter, draw.YTop)
		p.Title.Padding = vg.Points(10)
	}
	p.Y.Label.Text = cfg.YLabel
	p.X.Label.Text = cfg.XLabel

	p.Add(panel{Color: palette.Color(f.pal.ChartBG)})
	return p
}

// nominalX labels integer x positions with names and pads the range so
// categories sit in the middle of their slots.
func (f *figure) nominalX(p *plot.Plot, cfg Config, names []string) {
	if len(names) == 0 {
		return
	}
	if cfg.XRotation != 0 {
		p.X.Tick.Label.Rotation = cfg.XRotation * math.Pi / 180
		p.X.Tick.Label.XAlign = draw.XRight
	}
	p.NominalX(names...)
	p.X.Min, p.X.Max = -0.5, float64(len(names))-0.5
}

// nominalY is nominalX for horizontal charts.
func (f *figure) nominalY(p *plot.Plot, names []string) {
	if len(names) == 0 {
		return
	}
	p.NominalY(names...)
	p.Y.Min, p.Y.Max = -0.6, float64(len(names))-0.4
}

// applyYLim fixes the y range when ylim is configured, otherwise pads it by
// frac of the span on both sides.
func applyYLim(p *plot.Plot, cfg Config, frac float64) {
	if len(cfg.YLim) == 2 && cfg.YLim[0] < cfg.YLim[1] {
		p.Y.Min, p.Y.Max = cfg.YLim[0], cfg.YLim[1]
		return
	}
	padAxis(&p.Y, frac)
}

func padAxis(ax *plot.Axis, frac float64) {
	span := ax.Max - ax.Min
	if span <= 0 || math.IsInf(span, 0) {
		return
	}
	ax.Min -= span * frac
	ax.Max += span * frac
}

func legendPosition(loc string) (top, left bool) {
	switch loc {
	case "upper right":
		return true, false
	case "lower left":
		return false, true
	case "lower right":
		return false, false
	}
	return true, true
}

// seriesColor is the default color for the i-th series of line and bar
// charts: primary first, secondary for every later one.
func seriesColor(explicit string, i int, pal *palette.Palette) string {
	switch {
	case explicit != "":
		return explicit
	case i == 0:
		return pal.ChartPrimary
	}
	return pal.ChartSecondary
}

func signColor(v float64, pal *palette.Palette) string {
	if v >= 0 {
		return pal.Green
	}
	return pal.Red
}
