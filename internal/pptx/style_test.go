package pptx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"003366", "FF003366"},
		{"#ff6600", "FFFF6600"},
		{" 80112233 ", "80112233"},
		{"nope", "FF000000"},
		{"#12345", "FF000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewColor(tt.in).ARGB)
		})
	}
}

func TestColorChannels(t *testing.T) {
	c := NewColor("80FF6633")
	assert.Equal(t, uint8(0x80), c.Alpha())
	assert.Equal(t, uint8(0xFF), c.Red())
	assert.Equal(t, uint8(0x66), c.Green())
	assert.Equal(t, uint8(0x33), c.Blue())
	assert.Equal(t, "FF6633", c.RGB())
	assert.Equal(t, "000000", Color{}.RGB())
}

func TestFontSizeClamp(t *testing.T) {
	f := NewFont()
	assert.Equal(t, 1.0, f.SetSize(0).Size)
	assert.Equal(t, 4000.0, f.SetSize(9999).Size)
	assert.Equal(t, 950, f.SetSize(9.5).hundredths())
}

func TestGradientRotationNormalized(t *testing.T) {
	assert.Equal(t, 270, NewFill().SetGradientLinear(ColorBlack, ColorWhite, -90).Rotation)
	assert.Equal(t, 45, NewFill().SetGradientLinear(ColorBlack, ColorWhite, 405).Rotation)
}

func TestMeasurement(t *testing.T) {
	assert.Equal(t, int64(914400), Inch(1))
	assert.Equal(t, int64(12700), Point(1))
	assert.InDelta(t, 7.5, EMUToInch(DefaultSlideHeight), 1e-9)
	assert.InDelta(t, 1.0, EMUToPoint(12700), 1e-9)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	slide.CreateDrawingShape()
	slide.CreateLineShape(0, 0, Inch(1), 0).SetLineColor(Color{ARGB: "bad"})
	p.GetLayout().CX = 0

	err := p.Validate()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "layout width")
		assert.Contains(t, err.Error(), "slide 1: shape 1: drawing shape has no image data or path")
		assert.Contains(t, err.Error(), "slide 1: shape 2: line color is invalid ARGB")
	}
	assert.NoError(t, New().Validate())
}

func TestParagraphPlainText(t *testing.T) {
	tb := NewRichTextShape()
	tb.CreateTextRun("Revenue ")
	tb.CreateTextRun("+12%")
	tb.GetActiveParagraph().CreateBreak()
	tb.CreateTextRun("YoY")
	tb.CreateParagraph().CreateTextRun("second")
	assert.Equal(t, "Revenue +12%\nYoY\nsecond", tb.PlainText())
}
