package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shape is implemented by everything that can be placed on a slide.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	base() *BaseShape
}

// ShapeType identifies the concrete shape kind.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeAutoShape
	ShapeTypeLine
)

// BaseShape carries geometry and styling shared by all shapes.
type BaseShape struct {
	name        string
	description string
	offsetX     int64 // EMU
	offsetY     int64
	width       int64
	height      int64
	fill        *Fill
	border      *Border
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) base() *BaseShape  { return b }

// SetName sets the shape name shown in the selection pane.
func (b *BaseShape) SetName(n string) *BaseShape { b.name = n; return b }

// SetDescription sets the alt text.
func (b *BaseShape) SetDescription(d string) *BaseShape { b.description = d; return b }

// SetPosition sets the top-left corner in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX, b.offsetY = x, y
	return b
}

// SetSize sets width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width, b.height = w, h
	return b
}

// SetBounds sets position and size in one call.
func (b *BaseShape) SetBounds(x, y, w, h int64) *BaseShape {
	return b.SetPosition(x, y).SetSize(w, h)
}

// GetFill returns the fill, creating an empty one on first use.
func (b *BaseShape) GetFill() *Fill {
	if b.fill == nil {
		b.fill = NewFill()
	}
	return b.fill
}

// GetBorder returns the outline, creating an invisible one on first use.
func (b *BaseShape) GetBorder() *Border {
	if b.border == nil {
		b.border = NewBorder()
	}
	return b.border
}

// TextAnchorType is the vertical anchoring of a text body.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// textBody is the paragraph list shared by text boxes and auto shapes.
type textBody struct {
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
	textAnchor      TextAnchorType
}

// GetActiveParagraph returns the paragraph new runs are appended to.
func (t *textBody) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph appends a paragraph and makes it active.
func (t *textBody) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *textBody) GetParagraphs() []*Paragraph { return t.paragraphs }

// CreateTextRun appends a run to the active paragraph.
func (t *textBody) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// SetWordWrap toggles square wrapping.
func (t *textBody) SetWordWrap(wrap bool) { t.wordWrap = wrap }

// GetWordWrap reports whether text wraps.
func (t *textBody) GetWordWrap() bool { return t.wordWrap }

// SetTextAnchor sets the vertical anchor.
func (t *textBody) SetTextAnchor(a TextAnchorType) { t.textAnchor = a }

// PlainText joins every run, with paragraphs separated by newlines.
func (t *textBody) PlainText() string {
	lines := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		lines = append(lines, p.PlainText())
	}
	return strings.Join(lines, "\n")
}

// RichTextShape is a text box.
type RichTextShape struct {
	BaseShape
	textBody
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape returns a wrapping text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{textBody: textBody{
		paragraphs: []*Paragraph{NewParagraph()},
		wordWrap:   true,
	}}
}

// Paragraph is a block of runs sharing alignment and spacing.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   HorizontalAlignment
	lineSpacing int // spcPts value, 1/100 pt
	spaceBefore int // 1/100 pt
	spaceAfter  int // 1/100 pt
}

// ParagraphElement is a run or a break.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph returns a left-aligned empty paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{alignment: HorizontalLeft}
}

// SetAlignment sets the horizontal alignment.
func (p *Paragraph) SetAlignment(a HorizontalAlignment) *Paragraph {
	p.alignment = a
	return p
}

// GetAlignment returns the horizontal alignment.
func (p *Paragraph) GetAlignment() HorizontalAlignment { return p.alignment }

// SetLineSpacing sets exact line spacing in points.
func (p *Paragraph) SetLineSpacing(pt float64) *Paragraph {
	p.lineSpacing = int(pt*100 + 0.5)
	return p
}

// SetSpaceBefore sets the space before the paragraph in points.
func (p *Paragraph) SetSpaceBefore(pt float64) *Paragraph {
	p.spaceBefore = int(pt*100 + 0.5)
	return p
}

// SetSpaceAfter sets the space after the paragraph in points.
func (p *Paragraph) SetSpaceAfter(pt float64) *Paragraph {
	p.spaceAfter = int(pt*100 + 0.5)
	return p
}

// GetLineSpacing returns the exact line spacing in 1/100 pt, 0 when unset.
func (p *Paragraph) GetLineSpacing() int { return p.lineSpacing }

// GetElements returns the runs and breaks in order.
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// CreateTextRun appends a run with the default font.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{text: text, font: NewFont()}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak appends a soft line break.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// PlainText returns the paragraph text with breaks rendered as newlines.
func (p *Paragraph) PlainText() string {
	var sb strings.Builder
	for _, e := range p.elements {
		switch el := e.(type) {
		case *TextRun:
			sb.WriteString(el.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextRun is formatted text.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the run text.
func (tr *TextRun) GetText() string { return tr.text }

// GetFont returns the run font.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont replaces the run font.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement is a line break inside a paragraph.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// DrawingShape is a picture.
type DrawingShape struct {
	BaseShape
	path     string
	data     []byte
	mimeType string
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape returns an empty picture.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{}
}

// GetPath returns the source file path, if any.
func (d *DrawingShape) GetPath() string { return d.path }

// GetImageData returns the embedded bytes, if any.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// SetImageData embeds raw image bytes.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	d.data = data
	d.mimeType = mimeType
	return d
}

// maxImageFileSize bounds images read from disk.
const maxImageFileSize = 50 << 20

// SetImageFromFile reads an image into memory and records its path.
func (d *DrawingShape) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read image file: %w", err)
	}
	d.path = path
	d.data = data
	d.mimeType = guessMimeFromPath(path)
	return nil
}

func (d *DrawingShape) hasImage() bool {
	return len(d.data) > 0 || d.path != ""
}

func guessMimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	default:
		return "image/png"
	}
}

// AutoShapeType is a preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
	AutoShapeTriangle    AutoShapeType = "triangle"
)

// AutoShape is a preset geometry that may hold text.
type AutoShape struct {
	BaseShape
	textBody
	shapeType AutoShapeType
}

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape returns a rectangle without text.
func NewAutoShape() *AutoShape {
	return &AutoShape{shapeType: AutoShapeRectangle, textBody: textBody{wordWrap: true}}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.shapeType = t
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType { return a.shapeType }

// SetSolidFill fills the shape with a solid color.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

// LineShape is a straight connector.
type LineShape struct {
	BaseShape
	lineStyle BorderStyle
	lineWidth float64 // points
	lineColor Color
}

func (l *LineShape) GetType() ShapeType { return ShapeTypeLine }

// NewLineShape returns a 1pt black solid line.
func NewLineShape() *LineShape {
	return &LineShape{lineStyle: BorderSolid, lineWidth: 1, lineColor: ColorBlack}
}

// SetLineStyle sets the dash style.
func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape {
	l.lineStyle = s
	return l
}

// SetLineWidth sets the stroke width in points.
func (l *LineShape) SetLineWidth(pt float64) *LineShape {
	if pt < 0 {
		pt = 0
	}
	l.lineWidth = pt
	return l
}

// SetLineColor sets the stroke color.
func (l *LineShape) SetLineColor(c Color) *LineShape {
	l.lineColor = c
	return l
}

// GetLineColor returns the stroke color.
func (l *LineShape) GetLineColor() Color { return l.lineColor }
