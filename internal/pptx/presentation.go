// Package pptx writes PowerPoint presentation files (.pptx) following the
// Office Open XML standard and rasterizes slides to PNG previews.
//
// Slides are built from absolutely positioned shapes: text boxes, pictures,
// preset auto shapes and lines. Positions and sizes are in EMU; use Inch and
// Point to convert.
package pptx

import (
	"errors"
	"time"
)

// Presentation is an in-memory deck.
type Presentation struct {
	properties *DocumentProperties
	slides     []*Slide
	layout     *DocumentLayout
}

// New returns an empty 13.333x7.5 inch presentation.
func New() *Presentation {
	return &Presentation{
		properties: NewDocumentProperties(),
		slides:     make([]*Slide, 0),
		layout:     NewDocumentLayout(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// GetLayout returns the slide dimensions.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// CreateSlide appends a blank slide.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, errors.New("slide index out of range")
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides in order.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// DocumentProperties holds the core and extended document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Subject        string
	Description    string
	Keywords       string
	Company        string
}

// NewDocumentProperties returns properties stamped with the current time.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        Application,
		LastModifiedBy: Application,
		Created:        now,
		Modified:       now,
	}
}

// DocumentLayout is the slide size.
type DocumentLayout struct {
	CX int64 // width in EMU
	CY int64 // height in EMU
}

// Default widescreen size.
const (
	DefaultSlideWidth  = 12192000 // 13.333 in
	DefaultSlideHeight = 6858000  // 7.5 in
)

// NewDocumentLayout returns the default 16:9 layout.
func NewDocumentLayout() *DocumentLayout {
	return &DocumentLayout{CX: DefaultSlideWidth, CY: DefaultSlideHeight}
}

// SetCustomLayout sets the slide size. Non-positive values fall back to the defaults.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	if cx <= 0 {
		cx = DefaultSlideWidth
	}
	if cy <= 0 {
		cy = DefaultSlideHeight
	}
	dl.CX = cx
	dl.CY = cy
}

// Slide is a single slide.
type Slide struct {
	shapes     []Shape
	background *Fill
	notes      string
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetShapes returns the shapes in z-order.
func (s *Slide) GetShapes() []Shape {
	return s.shapes
}

// AddShape appends an existing shape.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// CreateRichTextShape appends a text box.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	shape := NewRichTextShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateDrawingShape appends a picture.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	shape := NewDrawingShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateAutoShape appends a rectangle.
func (s *Slide) CreateAutoShape() *AutoShape {
	shape := NewAutoShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateLineShape appends a line from (x1,y1) to (x2,y2).
func (s *Slide) CreateLineShape(x1, y1, x2, y2 int64) *LineShape {
	shape := NewLineShape()
	x, y := min(x1, x2), min(y1, y2)
	w, h := x2-x1, y2-y1
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	shape.SetBounds(x, y, w, h)
	s.shapes = append(s.shapes, shape)
	return shape
}

// SetBackground sets the slide background fill.
func (s *Slide) SetBackground(f *Fill) {
	s.background = f
}

// GetBackground returns the slide background, nil when inherited.
func (s *Slide) GetBackground() *Fill {
	return s.background
}

// SetNotes sets the speaker notes.
func (s *Slide) SetNotes(notes string) {
	s.notes = notes
}

// GetNotes returns the speaker notes.
func (s *Slide) GetNotes() string {
	return s.notes
}
