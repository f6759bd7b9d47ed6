package pptx

import (
	"strings"
)

// Color is an ARGB color stored as 8 upper-case hex characters.
type Color struct {
	ARGB string
}

// Predefined colors.
var (
	ColorBlack = Color{ARGB: "FF000000"}
	ColorWhite = Color{ARGB: "FFFFFFFF"}
)

// NewColor parses "RRGGBB", "#RRGGBB" or "AARRGGBB". Invalid input yields black.
func NewColor(hex string) Color {
	hex = strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if !isValidARGB(hex) {
		return ColorBlack
	}
	return Color{ARGB: hex}
}

func isValidARGB(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// RGB returns the 6-character RGB part, or "000000" for malformed colors.
func (c Color) RGB() string {
	switch len(c.ARGB) {
	case 8:
		return c.ARGB[2:]
	case 6:
		return c.ARGB
	}
	return "000000"
}

func (c Color) Red() uint8   { return parseHexByte(c.ARGB, 2) }
func (c Color) Green() uint8 { return parseHexByte(c.ARGB, 4) }
func (c Color) Blue() uint8  { return parseHexByte(c.ARGB, 6) }
func (c Color) Alpha() uint8 { return parseHexByte(c.ARGB, 0) }

func parseHexByte(s string, offset int) uint8 {
	if offset+2 > len(s) {
		return 0
	}
	h, l := hexVal(s[offset]), hexVal(s[offset+1])
	if h < 0 || l < 0 {
		return 0
	}
	return uint8(h<<4 | l)
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	}
	return -1
}

// Font describes run formatting. Size is in points and may be fractional.
type Font struct {
	Name      string
	Size      float64
	Bold      bool
	Italic    bool
	Underline bool
	Color     Color
}

// NewFont returns the default run font (Arial 10pt black).
func NewFont() *Font {
	return &Font{
		Name:  "Arial",
		Size:  10,
		Color: ColorBlack,
	}
}

// SetBold sets the bold flag and returns the font for chaining.
func (f *Font) SetBold(bold bool) *Font {
	f.Bold = bold
	return f
}

// SetItalic sets the italic flag.
func (f *Font) SetItalic(italic bool) *Font {
	f.Italic = italic
	return f
}

// SetSize sets the size in points, clamped to 1–4000.
func (f *Font) SetSize(size float64) *Font {
	switch {
	case size < 1:
		size = 1
	case size > 4000:
		size = 4000
	}
	f.Size = size
	return f
}

// SetColor sets the font color.
func (f *Font) SetColor(c Color) *Font {
	f.Color = c
	return f
}

// SetName sets the latin typeface.
func (f *Font) SetName(name string) *Font {
	f.Name = name
	return f
}

// hundredths returns the size in the sz attribute unit (1/100 pt).
func (f *Font) hundredths() int {
	return int(f.Size*100 + 0.5)
}

// HorizontalAlignment is the paragraph alignment attribute value.
type HorizontalAlignment string

const (
	HorizontalLeft    HorizontalAlignment = "l"
	HorizontalCenter  HorizontalAlignment = "ctr"
	HorizontalRight   HorizontalAlignment = "r"
	HorizontalJustify HorizontalAlignment = "just"
)

// Fill is a shape or background fill.
type Fill struct {
	Type     FillType
	Color    Color
	EndColor Color
	Rotation int // degrees, linear gradients only
}

// FillType enumerates the supported fills.
type FillType int

const (
	FillNone FillType = iota
	FillSolid
	FillGradientLinear
)

// NewFill returns an empty fill.
func NewFill() *Fill {
	return &Fill{Type: FillNone}
}

// SetSolid switches the fill to a solid color.
func (f *Fill) SetSolid(c Color) *Fill {
	f.Type = FillSolid
	f.Color = c
	return f
}

// SetGradientLinear switches to a two-stop linear gradient. Rotation is normalized to 0–359.
func (f *Fill) SetGradientLinear(start, end Color, rotation int) *Fill {
	f.Type = FillGradientLinear
	f.Color = start
	f.EndColor = end
	f.Rotation = ((rotation % 360) + 360) % 360
	return f
}

// Border is a shape outline.
type Border struct {
	Style BorderStyle
	Width int64 // EMU
	Color Color
}

// BorderStyle is the outline dash style.
type BorderStyle string

const (
	BorderNone  BorderStyle = "none"
	BorderSolid BorderStyle = "solid"
	BorderDash  BorderStyle = "dash"
	BorderDot   BorderStyle = "dot"
)

// NewBorder returns a border that is not drawn.
func NewBorder() *Border {
	return &Border{Style: BorderNone}
}

// SetSolid draws a solid outline of the given width in points.
func (b *Border) SetSolid(c Color, widthPt float64) *Border {
	b.Style = BorderSolid
	b.Color = c
	b.Width = Point(widthPt)
	return b
}
