package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/palette"
	"github.com/VantageDataChat/GoDeck/internal/pptx"
	"github.com/VantageDataChat/GoDeck/internal/slides"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#B8860B"))
	nameStyle   = lipgloss.NewStyle().Width(26)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

func (a *app) palettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "Show every palette as color swatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePalettes(cmd.OutOrStdout(), a.cfg.DefaultPalette)
		},
	}
}

// swatch renders hex as a two-cell color block.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

func writePalettes(w io.Writer, current string) error {
	header := nameStyle.Render("PALETTE") + "  " + "navy gold  series"
	if _, err := fmt.Fprintln(w, headerStyle.Render(header)); err != nil {
		return err
	}
	for _, name := range palette.Names() {
		p := palette.Get(name)
		label := name
		if name == current {
			label += " *"
		}
		var series strings.Builder
		for i := range p.SeriesCycle {
			series.WriteString(swatch(p.Cycle(i)))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(label), "  ",
			swatch(p.Navy), "  ", swatch(p.Gold), "   ",
			series.String(), "  ",
			mutedStyle.Render(p.FigBG),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) chartsCmd() *cobra.Command {
	var showSlides bool
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "List the supported chart types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			types := charts.Types()
			if showSlides {
				types = slides.Types()
			}
			for _, t := range types {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSlides, "slides", false, "List slide types instead")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deckgen %s (pptx writer %s)\n", version, pptx.Version)
		},
	}
}
