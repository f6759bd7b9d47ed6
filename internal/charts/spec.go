// Package charts turns declarative chart specs into PNG images.
//
// A Spec names one of the registered chart types, carries the type-specific
// data as raw JSON and a Config holding every optional styling key. Render
// dispatches on the type; Normalize rewrites convenience forms (reference
// lines, label-addressed annotations, gauge ranges, allocation lists, inline
// table separators) into the canonical shape the renderers read.
package charts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrUnknownChartType is returned by Render for types with no renderer.
var ErrUnknownChartType = errors.New("unknown chart type")

// Spec describes one chart.
type Spec struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data,omitempty"`
	Config   Config          `json:"config"`
	Source   string          `json:"source,omitempty"`
	Filename string          `json:"filename,omitempty"`
}

// DefaultFilename is the file name used when the chart names none.
func (s *Spec) DefaultFilename() string {
	if s.Filename != "" {
		return s.Filename
	}
	return "chart_" + s.Type + ".png"
}

// Config is the union of the configuration keys understood by the renderers.
// Pointer fields distinguish "absent" from the zero value.
type Config struct {
	Title     string    `json:"title,omitempty"`
	Subtitle  string    `json:"subtitle,omitempty"`
	YLabel    string    `json:"ylabel,omitempty"`
	XLabel    string    `json:"xlabel,omitempty"`
	YLim      []float64 `json:"ylim,omitempty"`
	FigSize   []float64 `json:"figsize,omitempty"`
	XRotation float64   `json:"x_rotation,omitempty"`
	DPI       float64   `json:"dpi,omitempty"`

	Fill        bool     `json:"fill,omitempty"`
	Baseline    *float64 `json:"baseline,omitempty"`
	SlopeLabels bool     `json:"slope_labels,omitempty"`

	ShowValues  *bool   `json:"show_values,omitempty"`
	ValuePrefix *string `json:"value_prefix,omitempty"`
	ValueSuffix *string `json:"value_suffix,omitempty"`

	ShowTotals  *bool   `json:"show_totals,omitempty"`
	TotalPrefix *string `json:"total_prefix,omitempty"`
	TotalSuffix *string `json:"total_suffix,omitempty"`
	BarWidth    float64 `json:"bar_width,omitempty"`

	HLines        []HLine        `json:"hlines,omitempty"`
	VLines        []VLine        `json:"vlines,omitempty"`
	Annotations   []Annotation   `json:"annotations,omitempty"`
	ReferenceLine *ReferenceLine `json:"reference_line,omitempty"`

	LegendLoc  string `json:"legend_loc,omitempty"`
	LegendNcol int    `json:"legend_ncol,omitempty"`

	ColWidths []float64 `json:"col_widths,omitempty"`
	ColorCols []int     `json:"color_cols,omitempty"`
	SignalCol *int      `json:"signal_col,omitempty"`

	ContextBoxes []ContextBox `json:"context_boxes,omitempty"`
	DonutTitle   string       `json:"donut_title,omitempty"`
	MatrixTitle  string       `json:"matrix_title,omitempty"`

	ShowConnectors *bool  `json:"show_connectors,omitempty"`
	ColorMode      string `json:"color_mode,omitempty"`
	Sort           bool   `json:"sort,omitempty"`
	Stacked        bool   `json:"stacked,omitempty"`

	NCols     int    `json:"ncols,omitempty"`
	ChartType string `json:"chart_type,omitempty"`
	SharedY   *bool  `json:"shared_y,omitempty"`
}

// HLine is a horizontal reference line.
type HLine struct {
	Y     float64 `json:"y"`
	Label string  `json:"label,omitempty"`
	Color string  `json:"color,omitempty"`
	Style string  `json:"style,omitempty"`
}

// VLine is a vertical event line.
type VLine struct {
	X     float64 `json:"x"`
	Label string  `json:"label,omitempty"`
	Color string  `json:"color,omitempty"`
	Style string  `json:"style,omitempty"`
}

// ReferenceLine is shorthand for a single dashed hline.
type ReferenceLine struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Annotation is a text callout, optionally with an arrow to XY.
type Annotation struct {
	Text       string    `json:"text"`
	XY         []Coord   `json:"xy,omitempty"`
	XYText     []float64 `json:"xytext,omitempty"`
	X          *Coord    `json:"x,omitempty"`
	Y          *Coord    `json:"y,omitempty"`
	Color      string    `json:"color,omitempty"`
	Arrow      *bool     `json:"arrow,omitempty"`
	Box        bool      `json:"box,omitempty"`
	BoxBG      string    `json:"box_bg,omitempty"`
	FontSize   float64   `json:"fontsize,omitempty"`
	FontWeight string    `json:"fontweight,omitempty"`
}

// ContextBox is a free-floating note on a gauge.
type ContextBox struct {
	Text        string   `json:"text"`
	X           *float64 `json:"x,omitempty"`
	Y           *float64 `json:"y,omitempty"`
	BorderColor string   `json:"border_color,omitempty"`
	BgColor     string   `json:"bg_color,omitempty"`
}

// Coord is an annotation coordinate: a number, or a category label that
// Normalize could not resolve to an index.
type Coord struct {
	Num   float64
	Label string
	// IsLabel is set when the JSON value was a string.
	IsLabel bool
}

// Num returns a numeric coordinate.
func Num(v float64) Coord { return Coord{Num: v} }

// Value is the position used for drawing; unresolved labels sit at 0.
func (c Coord) Value() float64 {
	if c.IsLabel {
		return 0
	}
	return c.Num
}

// UnmarshalJSON accepts a JSON number or string.
func (c *Coord) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coord{Label: s, IsLabel: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("coordinate must be a number or label: %w", err)
	}
	*c = Coord{Num: f}
	return nil
}

// MarshalJSON writes the label or the number.
func (c Coord) MarshalJSON() ([]byte, error) {
	if c.IsLabel {
		return json.Marshal(c.Label)
	}
	return []byte(strconv.FormatFloat(c.Num, 'f', -1, 64)), nil
}

// DecodeData unmarshals the chart data into v. Absent data leaves v untouched.
func (s *Spec) DecodeData(v any) error {
	if len(bytes.TrimSpace(s.Data)) == 0 || string(bytes.TrimSpace(s.Data)) == "null" {
		return nil
	}
	if err := json.Unmarshal(s.Data, v); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", s.Type, err)
	}
	return nil
}

func (s *Spec) encodeData(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s data: %w", s.Type, err)
	}
	s.Data = b
	return nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}
