// Package palette holds the named color systems shared by chart rendering and
// slide building, plus the slide layout constants.
package palette

import (
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is used when a spec names no palette or an unknown one.
const DefaultName = "crossinvest_navy_gold"

// Palette is a complete color system. Colors are "#RRGGBB" strings.
type Palette struct {
	Name string `json:"name"`

	Navy  string `json:"navy"`
	Gold  string `json:"gold"`
	White string `json:"white"`

	ChartPrimary   string `json:"chart_primary"`
	ChartSecondary string `json:"chart_secondary"`
	Green          string `json:"green"`
	Red            string `json:"red"`
	Orange         string `json:"orange"`

	BodyText    string `json:"body_text"`
	Gray        string `json:"gray"`
	SourceColor string `json:"source_color"`
	LightGray   string `json:"light_gray"`

	ChartBG string `json:"chart_bg"`
	FigBG   string `json:"fig_bg"`
	SlideBG string `json:"slide_bg"`

	TitleColor string `json:"title_color"`
	CardBG     string `json:"card_bg"`
	CardBorder string `json:"card_border"`

	ExtraColors []string `json:"extra_colors"`
	SeriesCycle []string `json:"series_cycle"`
}

// base returns a palette carrying every default value.
func base(name string) Palette {
	return Palette{
		Name:           name,
		Navy:           "#0C2340",
		Gold:           "#B8860B",
		White:          "#FFFFFF",
		ChartPrimary:   "#003366",
		ChartSecondary: "#117ACA",
		Green:          "#2E865F",
		Red:            "#CC0000",
		Orange:         "#E8792B",
		BodyText:       "#2C3E50",
		Gray:           "#666666",
		SourceColor:    "#999999",
		LightGray:      "#E0E0E0",
		ChartBG:        "#FAFBFC",
		FigBG:          "#FFFFFF",
		SlideBG:        "#FFFFFF",
		TitleColor:     "#0C2340",
		CardBG:         "#F5F5F5",
		CardBorder:     "#E0E0E0",
		ExtraColors:    []string{"#5B9BD5", "#ED7D31", "#A5A5A5", "#FFC000", "#4472C4", "#70AD47"},
		SeriesCycle:    []string{"#003366", "#117ACA", "#2E865F", "#CC0000", "#5B9BD5", "#E8792B", "#666666", "#003B6F"},
	}
}

// Get returns a copy of the named palette. Unknown names fall back to
// DefaultName. The result may be mutated freely.
func Get(name string) *Palette {
	p, ok := registry[name]
	if !ok {
		p = registry[DefaultName]
	}
	return p.clone()
}

// Exists reports whether name is a registered palette.
func Exists(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (p Palette) clone() *Palette {
	c := p
	c.ExtraColors = append([]string(nil), p.ExtraColors...)
	c.SeriesCycle = append([]string(nil), p.SeriesCycle...)
	return &c
}

// IsDark reports whether charts render on a dark figure background.
func (p *Palette) IsDark() bool {
	bg := strings.ToUpper(p.FigBG)
	return bg != "#FFFFFF" && bg != "#FAFBFC"
}

// Cycle returns the i-th series color.
func (p *Palette) Cycle(i int) string {
	cycle := p.SeriesCycle
	if len(cycle) == 0 {
		cycle = append([]string{p.ChartPrimary, p.ChartSecondary, p.Green, p.Red, p.Orange}, p.ExtraColors...)
	}
	if i < 0 {
		i = -i
	}
	return cycle[i%len(cycle)]
}

// stringFields maps JSON names to the string fields of p.
func (p *Palette) stringFields() map[string]*string {
	return map[string]*string{
		"navy":            &p.Navy,
		"gold":            &p.Gold,
		"white":           &p.White,
		"chart_primary":   &p.ChartPrimary,
		"chart_secondary": &p.ChartSecondary,
		"green":           &p.Green,
		"red":             &p.Red,
		"orange":          &p.Orange,
		"body_text":       &p.BodyText,
		"gray":            &p.Gray,
		"source_color":    &p.SourceColor,
		"light_gray":      &p.LightGray,
		"chart_bg":        &p.ChartBG,
		"fig_bg":          &p.FigBG,
		"slide_bg":        &p.SlideBG,
		"title_color":     &p.TitleColor,
		"card_bg":         &p.CardBG,
		"card_border":     &p.CardBorder,
	}
}

// ApplyOverrides sets fields by their JSON name. Keys that are unknown or
// carry a value of the wrong type are left untouched and returned, sorted.
func (p *Palette) ApplyOverrides(overrides map[string]any) []string {
	fields := p.stringFields()
	var ignored []string
	for key, val := range overrides {
		if ptr, ok := fields[key]; ok {
			if s, ok := val.(string); ok {
				*ptr = s
				continue
			}
			ignored = append(ignored, key)
			continue
		}
		switch key {
		case "extra_colors", "series_cycle":
			list, ok := stringList(val)
			if !ok {
				ignored = append(ignored, key)
				continue
			}
			if key == "extra_colors" {
				p.ExtraColors = list
			} else {
				p.SeriesCycle = list
			}
		default:
			ignored = append(ignored, key)
		}
	}
	sort.Strings(ignored)
	return ignored
}

func stringList(v any) ([]string, bool) {
	switch vv := v.(type) {
	case []string:
		return append([]string(nil), vv...), true
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Color parses "#RRGGBB" or "RRGGBB". Invalid input yields opaque black.
func Color(hex string) color.Color {
	c, err := parse(hex)
	if err != nil {
		return color.Black
	}
	return c
}

// RGBA is Color converted to color.RGBA.
func RGBA(hex string) color.RGBA {
	r, g, b := toColorful(hex).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// WithAlpha returns hex as a non-premultiplied color with the given opacity.
func WithAlpha(hex string, alpha float64) color.Color {
	r, g, b := toColorful(hex).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Blend linearly mixes a and b in RGB space; t=0 gives a, t=1 gives b.
func Blend(a, b string, t float64) string {
	return strings.ToUpper(toColorful(a).BlendRgb(toColorful(b), clamp01(t)).Clamped().Hex())
}

// Gradient3 maps t in [0,1] onto neg→mid→pos.
func Gradient3(neg, mid, pos string, t float64) string {
	t = clamp01(t)
	if t < 0.5 {
		return Blend(neg, mid, t*2)
	}
	return Blend(mid, pos, (t-0.5)*2)
}

func parse(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	return colorful.Hex(hex)
}

func toColorful(hex string) colorful.Color {
	c, err := parse(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}
