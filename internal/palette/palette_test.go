package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGetFallsBackToDefault(t *testing.T) {
	p := Get("no_such_palette")
	assert.Equal(t, DefaultName, p.Name)
	assert.Equal(t, "#24618E", p.ChartPrimary)
}

func TestGetReturnsCopy(t *testing.T) {
	p := Get("jpm_gttm")
	p.ChartPrimary = "#123456"
	p.SeriesCycle[0] = "#654321"

	fresh := Get("jpm_gttm")
	assert.Equal(t, "#002D59", fresh.ChartPrimary)
	assert.Equal(t, "#002D59", fresh.SeriesCycle[0])
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	require.Len(t, names, 12)
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, "swiss_institutional")
	for _, n := range names {
		assert.True(t, Exists(n))
	}
}

func TestIsDark(t *testing.T) {
	assert.True(t, Get("crossinvest_dark").IsDark())
	assert.False(t, Get("corporate_blue").IsDark())

	p := Get("corporate_blue")
	p.FigBG = "#fafbfc"
	assert.False(t, p.IsDark())
}

func TestApplyOverrides(t *testing.T) {
	p := Get("minimal_bw")
	ignored := p.ApplyOverrides(map[string]any{
		"chart_primary": "#112233",
		"series_cycle":  []any{"#AAAAAA", "#BBBBBB"},
		"logo":          "acme.png",
		"green":         42,
	})

	assert.Equal(t, "#112233", p.ChartPrimary)
	assert.Equal(t, []string{"#AAAAAA", "#BBBBBB"}, p.SeriesCycle)
	assert.Equal(t, []string{"green", "logo"}, ignored)
	assert.Equal(t, "#2D6A2D", p.Green)
}

func TestCycleFallsBackWithoutSeries(t *testing.T) {
	p := Get("corporate_blue")
	p.SeriesCycle = nil
	assert.Equal(t, p.ChartPrimary, p.Cycle(0))
	assert.Equal(t, p.Orange, p.Cycle(4))
	assert.Equal(t, p.ExtraColors[0], p.Cycle(5))
}

func TestCycleWraps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := Get(rapid.SampledFrom(Names()).Draw(t, "palette"))
		i := rapid.IntRange(0, 1000).Draw(t, "i")
		n := len(p.SeriesCycle)
		if p.Cycle(i) != p.Cycle(i+n) {
			t.Fatalf("cycle(%d) != cycle(%d)", i, i+n)
		}
	})
}

func TestColorParsing(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xFF}, RGBA("#003366"))
	assert.Equal(t, color.RGBA{R: 0xFF, G: 0x66, B: 0x00, A: 0xFF}, RGBA("FF6600"))

	r, g, b, a := Color("not-a-color").RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0, 0xFFFF}, [4]uint32{r, g, b, a})
}

func TestBlendEndpoints(t *testing.T) {
	assert.Equal(t, "#000000", Blend("#000000", "#FFFFFF", 0))
	assert.Equal(t, "#FFFFFF", Blend("#000000", "#FFFFFF", 1))
	assert.Equal(t, "#808080", Blend("#000000", "#FFFFFF", 0.5))
}

func TestGradient3Midpoint(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		mid := "#F7F7F7"
		got := Gradient3("#C62828", mid, "#2E7D32", 0.5)
		if got != mid {
			t.Fatalf("Gradient3 at 0.5 = %s, want %s", got, mid)
		}
		v := rapid.Float64Range(-1, 2).Draw(t, "t")
		if out := Gradient3("#C62828", mid, "#2E7D32", v); len(out) != 7 || out[0] != '#' {
			t.Fatalf("Gradient3(%v) = %q, want #RRGGBB", v, out)
		}
	})
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	assert.InDelta(t, 12.133, l.ContentWidth(), 1e-9)
	assert.Equal(t, 250.0, l.ChartDPI)
}
