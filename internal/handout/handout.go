// Package handout writes a printable PDF companion to a deck: a title block
// followed by every rendered chart with its title and source line.
package handout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// Input is the content of a handout.
type Input struct {
	Title   string
	Company string
	Date    string
	Palette *palette.Palette
	Charts  []Chart
}

// Chart is one rendered chart.
type Chart struct {
	Num    int
	Title  string
	Source string
	Path   string
}

// Write renders in as a PDF at path.
func Write(path string, in Input) error {
	pal := in.Palette
	if pal == nil {
		pal = palette.Get(palette.DefaultName)
	}

	cfg := config.NewBuilder().
		WithPageNumber().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   10,
		}).
		Build()

	m := maroto.New(cfg)
	addTitle(m, in, pal)
	for _, c := range in.Charts {
		if err := addChart(m, c, pal); err != nil {
			return err
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, doc.GetBytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func pdfColor(hex string) *props.Color {
	c := palette.RGBA(hex)
	return &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
}

func addTitle(m core.Maroto, in Input, pal *palette.Palette) {
	title := in.Title
	if title == "" {
		title = "Chart Book"
	}
	m.AddRow(20,
		col.New(12).Add(
			text.New(title, props.Text{
				Family: fontfamily.Arial,
				Size:   20,
				Style:  fontstyle.Bold,
				Align:  align.Center,
				Color:  pdfColor(pal.Navy),
			}),
		),
	)
	if in.Company != "" || in.Date != "" {
		line := in.Company
		if in.Date != "" {
			if line != "" {
				line += "  |  "
			}
			line += in.Date
		}
		m.AddRow(8,
			col.New(12).Add(
				text.New(line, props.Text{
					Family: fontfamily.Arial,
					Size:   10,
					Align:  align.Center,
					Color:  pdfColor(pal.Gold),
				}),
			),
		)
	}
	m.AddRow(8)
}

func addChart(m core.Maroto, c Chart, pal *palette.Palette) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read chart %d: %w", c.Num, err)
	}

	m.AddRow(8,
		col.New(12).Add(
			text.New(fmt.Sprintf("Chart #%d  %s", c.Num, c.Title), props.Text{
				Family: fontfamily.Arial,
				Size:   11,
				Style:  fontstyle.Bold,
				Color:  pdfColor(pal.TitleColor),
			}),
		),
	)
	m.AddRow(80,
		col.New(12).Add(
			image.NewFromBytes(data, extension.Png, props.Rect{Center: true, Percent: 100}),
		),
	)
	if c.Source != "" {
		m.AddRow(6,
			col.New(12).Add(
				text.New(c.Source, props.Text{
					Family: fontfamily.Arial,
					Size:   7,
					Style:  fontstyle.Italic,
					Color:  pdfColor(pal.SourceColor),
				}),
			),
		)
	}
	m.AddRow(6)
	return nil
}
