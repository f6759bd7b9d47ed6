// Package deckspec defines the JSON documents exchanged with the deck
// generator and the screenshot assembler.
package deckspec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultOutputPath   = "/tmp/presentation.pptx"
	DefaultChartDir     = "/tmp/genesis_charts"
	DefaultAssemblePath = "/tmp/assembled.pptx"
	DefaultSlideType    = "text"
	DefaultSlideWidth   = 13.333
	DefaultSlideHeight  = 7.5
)

// ErrEmptyInput is returned by Decode when the input holds no JSON at all.
var ErrEmptyInput = errors.New("Empty input")

// InvalidJSONError reports input that is not a valid document.
type InvalidJSONError struct {
	Err error
}

func (e *InvalidJSONError) Error() string {
	return "Invalid JSON: " + e.Err.Error()
}

func (e *InvalidJSONError) Unwrap() error { return e.Err }

// Spec is a complete deck request.
type Spec struct {
	Meta       Meta           `json:"meta"`
	Design     map[string]any `json:"design,omitempty"`
	Slides     []SlideSpec    `json:"slides"`
	OutputPath string         `json:"output_path,omitempty"`
	ChartDir   string         `json:"chart_dir,omitempty"`

	PreviewDir   string `json:"preview_dir,omitempty"`
	HandoutPath  string `json:"handout_path,omitempty"`
	WorkbookPath string `json:"workbook_path,omitempty"`
}

// Meta carries deck-wide branding.
type Meta struct {
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Date         string   `json:"date,omitempty"`
	HeaderTag    string   `json:"header_tag,omitempty"`
	FooterLeft   string   `json:"footer_left,omitempty"`
	FooterCenter string   `json:"footer_center,omitempty"`
	Palette      string   `json:"palette,omitempty"`
	SlideWidth   float64  `json:"slide_width,omitempty"`
	SlideHeight  float64  `json:"slide_height,omitempty"`
	BgImages     BgImages `json:"bg_images,omitempty"`
	Author       string   `json:"author,omitempty"`
	Subject      string   `json:"subject,omitempty"`
}

// BgImages are optional full-bleed slide backgrounds.
type BgImages struct {
	Cover   string `json:"cover,omitempty"`
	Content string `json:"content,omitempty"`
	Chart   string `json:"chart,omitempty"`
}

// ChartBackground is the chart slide background, falling back to the
// content background.
func (b BgImages) ChartBackground() string {
	if b.Chart != "" {
		return b.Chart
	}
	return b.Content
}

// SlideSpec is one entry of the slides list. Content is decoded by the
// builder for Type.
type SlideSpec struct {
	Type     string          `json:"type,omitempty"`
	Content  json.RawMessage `json:"content,omitempty"`
	Chart    *charts.Spec    `json:"chart,omitempty"`
	Charts   []*charts.Spec  `json:"charts,omitempty"`
	ChartNum *int            `json:"chart_num,omitempty"`
	BgImage  string          `json:"bg_image,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// ChartSpecs returns the charts this slide renders, in slide order.
func (s *SlideSpec) ChartSpecs() []*charts.Spec {
	switch s.Type {
	case "chart":
		if s.Chart == nil {
			s.Chart = &charts.Spec{}
		}
		return []*charts.Spec{s.Chart}
	case "dual_chart":
		out := make([]*charts.Spec, 0, len(s.Charts))
		for _, c := range s.Charts {
			if c != nil {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// ApplyDefaults fills every unset field with its default.
func (s *Spec) ApplyDefaults() {
	if s.OutputPath == "" {
		s.OutputPath = DefaultOutputPath
	}
	if s.ChartDir == "" {
		s.ChartDir = DefaultChartDir
	}
	if s.Meta.Palette == "" {
		s.Meta.Palette = palette.DefaultName
	}
	if s.Meta.SlideWidth <= 0 {
		s.Meta.SlideWidth = DefaultSlideWidth
	}
	if s.Meta.SlideHeight <= 0 {
		s.Meta.SlideHeight = DefaultSlideHeight
	}
	for i := range s.Slides {
		if s.Slides[i].Type == "" {
			s.Slides[i].Type = DefaultSlideType
		}
	}
}

// Decode reads one Spec from r.
func Decode(r io.Reader) (*Spec, error) {
	var s Spec
	if err := decode(r, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func decode(r io.Reader, v any) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmptyInput
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &InvalidJSONError{Err: err}
	}
	return nil
}

// Result is the single JSON line printed after a generation run.
type Result struct {
	Success  bool     `json:"success"`
	Path     string   `json:"path,omitempty"`
	Slides   int      `json:"slides"`
	Charts   int      `json:"charts"`
	Duration *float64 `json:"duration,omitempty"` // set on success
	Error    string   `json:"error,omitempty"`
	RunID    string   `json:"run_id,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Seconds rounds d to hundredths of a second.
func Seconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}

// Failure is the result reported for a failed run.
func Failure(err error) *Result {
	return &Result{Error: err.Error()}
}

// AssembleRequest turns slide screenshots into a deck of full-bleed pictures.
type AssembleRequest struct {
	Screenshots []string `json:"screenshots"`
	OutputPath  string   `json:"output_path,omitempty"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
}

// ApplyDefaults fills the output path and slide size.
func (r *AssembleRequest) ApplyDefaults() {
	if r.OutputPath == "" {
		r.OutputPath = DefaultAssemblePath
	}
	if r.Width <= 0 {
		r.Width = DefaultSlideWidth
	}
	if r.Height <= 0 {
		r.Height = DefaultSlideHeight
	}
}

// DecodeAssembleRequest reads one AssembleRequest from r.
func DecodeAssembleRequest(r io.Reader) (*AssembleRequest, error) {
	var req AssembleRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// AssembleResult is the JSON line printed by the assembler.
type AssembleResult struct {
	Success bool   `json:"success"`
	Path    string `json:"path,omitempty"`
	Slides  int    `json:"slides"`
	Error   string `json:"error,omitempty"`
	RunID   string `json:"run_id,omitempty"`
}
