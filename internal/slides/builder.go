// Package slides lays out the deck's slide types on a pptx.Presentation.
//
// Every builder decodes its own content document and appends exactly one
// slide. Positions are in inches on the layout's grid and converted with
// pptx.Inch at the call site.
package slides

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
	"github.com/VantageDataChat/GoDeck/internal/palette"
	"github.com/VantageDataChat/GoDeck/internal/pptx"
)

// Builder appends slides to one deck.
type Builder struct {
	deck   *pptx.Presentation
	pal    *palette.Palette
	meta   deckspec.Meta
	layout palette.Layout
	logger *zap.Logger

	warnings []string
}

// NewBuilder returns a builder for deck. The layout follows the slide size in
// meta; a nil logger discards output.
func NewBuilder(deck *pptx.Presentation, pal *palette.Palette, meta deckspec.Meta, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pal == nil {
		pal = palette.Get(palette.DefaultName)
	}
	layout := palette.DefaultLayout()
	if meta.SlideWidth > 0 {
		layout.Width = meta.SlideWidth
	}
	if meta.SlideHeight > 0 {
		layout.Height = meta.SlideHeight
	}
	return &Builder{deck: deck, pal: pal, meta: meta, layout: layout, logger: logger}
}

// Warnings returns the non-fatal problems met while building.
func (b *Builder) Warnings() []string {
	return b.warnings
}

func (b *Builder) warn(msg string, fields ...zap.Field) {
	b.logger.Warn(msg, fields...)
	b.warnings = append(b.warnings, msg)
}

// ChartImage is a rendered chart placed on a slide.
type ChartImage struct {
	Path string
	Num  int
}

// Request describes one slide to build.
type Request struct {
	Type    string
	Content json.RawMessage
	Page    int
	// BgImage overrides the background of section dividers.
	BgImage string
	Charts  []ChartImage
}

type buildFunc func(b *Builder, r Request) (*pptx.Slide, error)

var builders = map[string]buildFunc{
	"cover":             (*Builder).cover,
	"executive_summary": (*Builder).executiveSummary,
	"chart":             (*Builder).chart,
	"text":              (*Builder).text,
	"sources":           (*Builder).sources,
	"back_cover":        (*Builder).backCover,
	"section_divider":   (*Builder).sectionDivider,
	"kpi_dashboard":     (*Builder).kpiDashboard,
	"news":              (*Builder).news,
	"image":             (*Builder).image,
	"dual_chart":        (*Builder).dualChart,
	"callout":           (*Builder).callout,
}

// Slide types that carry no page number.
var unnumbered = map[string]bool{
	"cover":           true,
	"back_cover":      true,
	"section_divider": true,
}

// Types returns the supported slide types, sorted.
func Types() []string {
	out := make([]string, 0, len(builders))
	for t := range builders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether typ has a builder.
func Supported(typ string) bool {
	_, ok := builders[typ]
	return ok
}

// Numbered reports whether slides of type typ take a page number.
func Numbered(typ string) bool {
	return Supported(typ) && !unnumbered[typ]
}

// Build appends the slide described by r.
func (b *Builder) Build(r Request) (*pptx.Slide, error) {
	fn, ok := builders[r.Type]
	if !ok {
		return nil, fmt.Errorf("unknown slide type: %s", r.Type)
	}
	s, err := fn(b, r)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s slide: %w", r.Type, err)
	}
	return s, nil
}

// background picks the image for a slide type, honoring the per-slide
// override for section dividers.
func (b *Builder) background(r Request) string {
	bg := b.meta.BgImages
	switch r.Type {
	case "cover", "back_cover":
		return bg.Cover
	case "section_divider":
		if r.BgImage != "" {
			return r.BgImage
		}
		return bg.Cover
	case "chart", "dual_chart":
		return bg.ChartBackground()
	}
	return bg.Content
}

func decodeContent(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode content: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
