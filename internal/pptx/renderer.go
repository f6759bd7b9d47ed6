package pptx

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderOptions configures slide rasterization.
type RenderOptions struct {
	// Width is the output width in pixels; height follows the slide aspect ratio.
	Width int
	// FontDirs are searched in addition to the system font directories.
	FontDirs []string
	// FontCache may be shared across renders. Created from FontDirs when nil.
	FontCache *FontCache
}

// DefaultRenderOptions returns 1280px wide previews.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{Width: 1280}
}

func (o *RenderOptions) normalized() *RenderOptions {
	out := DefaultRenderOptions()
	if o != nil {
		*out = *o
	}
	if out.Width <= 0 {
		out.Width = 1280
	}
	if out.FontCache == nil {
		out.FontCache = NewFontCache(out.FontDirs...)
	}
	return out
}

// SlideToImage rasterizes one slide.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", slideIndex, len(p.slides)-1)
	}
	opts = opts.normalized()

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgW := opts.Width
	imgH := int(math.Round(float64(imgW) * slideH / slideW))

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	r := &renderer{
		img:       img,
		scaleX:    float64(imgW) / slideW,
		scaleY:    float64(imgH) / slideH,
		fontCache: opts.FontCache,
	}
	r.fillBackground(slide.background)

	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img, nil
}

// SaveSlidesAsImages writes slide_01.png, slide_02.png, ... into dir and
// returns the written paths. Cancellation is checked between slides.
func (p *Presentation) SaveSlidesAsImages(ctx context.Context, dir string, opts *RenderOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}
	opts = opts.normalized()
	paths := make([]string, 0, len(p.slides))
	for i := range p.slides {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return paths, fmt.Errorf("slide %d: %w", i+1, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("slide_%02d.png", i+1))
		if err := savePNG(img, path); err != nil {
			return paths, fmt.Errorf("slide %d: %w", i+1, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func savePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type renderer struct {
	img       *image.RGBA
	scaleX    float64
	scaleY    float64
	fontCache *FontCache
}

func (r *renderer) fillBackground(bg *Fill) {
	bounds := r.img.Bounds()
	if bg == nil || bg.Type == FillNone {
		draw.Draw(r.img, bounds, image.White, image.Point{}, draw.Src)
		return
	}
	if bg.Type == FillSolid {
		draw.Draw(r.img, bounds, &image.Uniform{toRGBA(bg.Color)}, image.Point{}, draw.Src)
		return
	}
	r.fillGradient(bounds, bg)
}

// fillGradient approximates a linear gradient along the fill rotation.
func (r *renderer) fillGradient(rect image.Rectangle, f *Fill) {
	start, end := toRGBA(f.Color), toRGBA(f.EndColor)
	rad := float64(f.Rotation) * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	span := math.Abs(dx)*w + math.Abs(dy)*h
	if span == 0 {
		span = 1
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			px, py := float64(x-rect.Min.X), float64(y-rect.Min.Y)
			if dx < 0 {
				px -= w
			}
			if dy < 0 {
				py -= h
			}
			t := (px*dx + py*dy) / span
			r.setPixel(x, y, lerpRGBA(start, end, math.Max(0, math.Min(1, t))))
		}
	}
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		rect := r.rect(&s.BaseShape)
		r.paintBox(rect, s.fill, s.border, AutoShapeRectangle)
		r.drawParagraphs(&s.textBody, rect)
	case *DrawingShape:
		r.renderDrawing(s)
	case *AutoShape:
		rect := r.rect(&s.BaseShape)
		r.paintBox(rect, s.fill, s.border, s.shapeType)
		r.drawParagraphs(&s.textBody, rect)
	case *LineShape:
		r.drawLine(
			r.px(s.offsetX), r.py(s.offsetY),
			r.px(s.offsetX+s.width), r.py(s.offsetY+s.height),
			toRGBA(s.lineColor), max(1, r.py(Point(s.lineWidth))))
	}
}

func (r *renderer) px(emu int64) int { return int(math.Round(float64(emu) * r.scaleX)) }
func (r *renderer) py(emu int64) int { return int(math.Round(float64(emu) * r.scaleY)) }

func (r *renderer) rect(b *BaseShape) image.Rectangle {
	x, y := r.px(b.offsetX), r.py(b.offsetY)
	return image.Rect(x, y, x+r.px(b.width), y+r.py(b.height))
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

func (r *renderer) paintBox(rect image.Rectangle, fill *Fill, border *Border, kind AutoShapeType) {
	if fill != nil {
		switch fill.Type {
		case FillSolid:
			c := toRGBA(fill.Color)
			if kind == AutoShapeEllipse {
				r.fillEllipse(rect, c)
			} else {
				draw.Draw(r.img, rect, &image.Uniform{c}, image.Point{}, draw.Over)
			}
		case FillGradientLinear:
			r.fillGradient(rect, fill)
		}
	}
	if border != nil && border.Style != BorderNone {
		pw := max(1, int(float64(border.Width)*r.scaleX))
		r.drawRect(rect, toRGBA(border.Color), pw)
	}
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	dst := r.rect(&s.BaseShape)
	if len(s.data) == 0 {
		return
	}
	src, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.drawRect(dst, color.RGBA{R: 200, G: 200, B: 200, A: 255}, 1)
		return
	}
	xdraw.ApproxBiLinear.Scale(r.img, dst, src, src.Bounds(), draw.Over, nil)
}

// --- primitives ---

func (r *renderer) drawRect(rect image.Rectangle, c color.RGBA, width int) {
	for i := 0; i < width; i++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.setPixel(x, rect.Min.Y+i, c)
			r.setPixel(x, rect.Max.Y-1-i, c)
		}
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			r.setPixel(rect.Min.X+i, y, c)
			r.setPixel(rect.Max.X-1-i, y, c)
		}
	}
}

// drawLine is Bresenham with a square pen of the given width.
func (r *renderer) drawLine(x1, y1, x2, y2 int, c color.RGBA, width int) {
	dx, dy := absInt(x2-x1), absInt(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	half := width / 2
	for {
		for oy := -half; oy <= width-1-half; oy++ {
			for ox := -half; ox <= width-1-half; ox++ {
				r.setPixel(x1+ox, y1+oy, c)
			}
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *renderer) fillEllipse(rect image.Rectangle, c color.RGBA) {
	rx, ry := float64(rect.Dx())/2, float64(rect.Dy())/2
	if rx <= 0 || ry <= 0 {
		return
	}
	cx, cy := float64(rect.Min.X)+rx, float64(rect.Min.Y)+ry
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			nx := (float64(x) + 0.5 - cx) / rx
			ny := (float64(y) + 0.5 - cy) / ry
			if nx*nx+ny*ny <= 1 {
				r.setPixel(x, y, c)
			}
		}
	}
}

func (r *renderer) setPixel(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.SetRGBA(x, y, c)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// --- text ---

// getFace resolves a face for f at the preview scale, falling back through
// common sans families, the embedded Go fonts and finally basicfont.
func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := f.Size
	if sizePt <= 0 {
		sizePt = 10
	}
	// Points to EMU, then EMU to output pixels; faces are built at 72 DPI.
	scaled := sizePt * emuPerPoint * r.scaleY

	name := f.Name
	if name == "" {
		name = "Arial"
	}
	if face := r.fontCache.GetFace(name, scaled, f.Bold, f.Italic); face != nil {
		return face
	}
	for _, fallback := range []string{"arial", "helvetica", "liberation sans", "dejavu sans", "noto sans"} {
		if face := r.fontCache.GetFace(fallback, scaled, f.Bold, f.Italic); face != nil {
			return face
		}
	}
	if face := r.fontCache.FallbackFace(scaled, f.Bold, f.Italic); face != nil {
		return face
	}
	return basicfont.Face7x13
}

type styledRun struct {
	text  string
	face  font.Face
	color color.RGBA
}

type textLine struct {
	runs      []styledRun
	width     int
	height    int
	alignment HorizontalAlignment
}

func buildTextLine(runs []styledRun, align HorizontalAlignment, minHeight int) textLine {
	w, h := 0, minHeight
	for _, run := range runs {
		w += font.MeasureString(run.face, run.text).Ceil()
		h = max(h, run.face.Metrics().Height.Ceil())
	}
	return textLine{runs: runs, width: w, height: h, alignment: align}
}

// insets returns the default 0.1in/0.05in body insets in pixels.
func (r *renderer) insets() (int, int) {
	return r.px(91440), r.py(45720)
}

func (r *renderer) drawParagraphs(tb *textBody, rect image.Rectangle) {
	if len(tb.paragraphs) == 0 {
		return
	}
	ix, iy := r.insets()
	x, y := rect.Min.X+ix, rect.Min.Y+iy
	w, h := rect.Dx()-2*ix, rect.Dy()-2*iy

	var lines []textLine
	for _, para := range tb.paragraphs {
		emptyHeight := r.py(Point(10 * 1.2))
		minHeight := 0
		if para.lineSpacing > 0 {
			minHeight = r.py(Point(float64(para.lineSpacing) / 100))
		}
		var runs []styledRun
		flush := func() {
			if len(runs) == 0 {
				lines = append(lines, textLine{height: max(emptyHeight, minHeight), alignment: para.alignment})
				return
			}
			line := buildTextLine(runs, para.alignment, minHeight)
			if tb.wordWrap && w > 0 && line.width > w {
				lines = append(lines, wrapLine(line, w, minHeight)...)
			} else {
				lines = append(lines, line)
			}
			runs = nil
		}
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				runs = append(runs, styledRun{text: e.text, face: r.getFace(e.font), color: toRGBA(e.font.Color)})
			case *BreakElement:
				flush()
			}
		}
		flush()
		if para.spaceAfter > 0 && len(lines) > 0 {
			lines[len(lines)-1].height += r.py(Point(float64(para.spaceAfter) / 100))
		}
	}

	total := 0
	for _, l := range lines {
		total += l.height
	}
	curY := y
	switch tb.textAnchor {
	case TextAnchorMiddle:
		curY = y + (h-total)/2
	case TextAnchorBottom:
		curY = y + h - total
	}

	for _, line := range lines {
		if len(line.runs) == 0 {
			curY += line.height
			continue
		}
		ascent := line.runs[0].face.Metrics().Ascent.Ceil()
		baseline := curY + ascent + (line.height-line.runs[0].face.Metrics().Height.Ceil())/2
		curY += line.height
		if curY > rect.Max.Y+line.height {
			break
		}

		drawX := x
		switch line.alignment {
		case HorizontalCenter:
			drawX = x + (w-line.width)/2
		case HorizontalRight:
			drawX = x + w - line.width
		}
		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  &image.Uniform{run.color},
				Face: run.face,
				Dot:  fixed.P(drawX, baseline),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

// wrapLine splits a line at word boundaries so each piece fits maxWidth.
func wrapLine(line textLine, maxWidth, minHeight int) []textLine {
	var words []styledRun
	for _, run := range line.runs {
		for i, word := range strings.Fields(run.text) {
			if i > 0 || (len(words) > 0 && strings.HasPrefix(run.text, " ")) {
				word = " " + word
			}
			words = append(words, styledRun{text: word, face: run.face, color: run.color})
		}
	}
	if len(words) == 0 {
		return []textLine{line}
	}

	var out []textLine
	var cur []styledRun
	curW := 0
	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.text).Ceil()
		if curW+ww > maxWidth && curW > 0 {
			out = append(out, buildTextLine(cur, line.alignment, minHeight))
			cur, curW = nil, 0
			sw.text = strings.TrimLeft(sw.text, " ")
			ww = font.MeasureString(sw.face, sw.text).Ceil()
		}
		cur = append(cur, sw)
		curW += ww
	}
	if len(cur) > 0 {
		out = append(out, buildTextLine(cur, line.alignment, minHeight))
	}
	return out
}
