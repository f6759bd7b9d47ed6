package charts

import (
	"fmt"
	"strconv"
)

const referenceLineColor = "#F0B90B"

var allocationColors = []string{
	"#003366", "#117ACA", "#5B9BD5", "#2E865F",
	"#E8792B", "#B8860B", "#666666", "#A5A5A5",
}

var convictionViews = map[string]string{
	"Very High": "OW+",
	"High":      "OW",
	"Medium":    "N",
	"Low":       "UW",
}

// scoreboard defaults for six-column heatmaps.
var (
	scoreboardColWidths = []float64{2.2, 1.2, 0.9, 0.9, 0.9, 1.2}
	scoreboardColorCols = []int{2, 3, 4, 5}
	scoreboardSignalCol = 5
)

// Normalize rewrites convenience forms in s into the canonical shape the
// renderers read. It is idempotent.
func Normalize(s *Spec) error {
	if ref := s.Config.ReferenceLine; ref != nil {
		color := ref.Color
		if color == "" {
			color = referenceLineColor
		}
		s.Config.HLines = append(s.Config.HLines, HLine{Y: ref.Value, Label: ref.Label, Color: color, Style: "--"})
		s.Config.ReferenceLine = nil
	}

	if err := s.resolveAnnotations(); err != nil {
		return err
	}

	switch s.Type {
	case "gauge":
		return s.normalizeGauge()
	case "donut_matrix":
		return s.normalizeDonut()
	case "table_heatmap":
		return s.normalizeHeatmap()
	}
	return nil
}

func (s *Spec) resolveAnnotations() error {
	var pending bool
	for _, a := range s.Config.Annotations {
		if a.XY == nil && a.X != nil && a.Y != nil {
			pending = true
			break
		}
	}
	if !pending {
		return nil
	}

	var d struct {
		Labels []string `json:"labels"`
	}
	if err := s.DecodeData(&d); err != nil {
		return err
	}
	index := func(c Coord) Coord {
		if !c.IsLabel {
			return c
		}
		for i, l := range d.Labels {
			if l == c.Label {
				return Coord{Num: float64(i)}
			}
		}
		return c
	}

	for i := range s.Config.Annotations {
		a := &s.Config.Annotations[i]
		if a.XY != nil || a.X == nil || a.Y == nil {
			continue
		}
		x, y := *a.X, *a.Y
		switch s.Type {
		case "bar", "line", "stacked_bar":
			x = index(x)
		case "hbar":
			y = index(y)
		}
		a.XY = []Coord{x, y}
		a.X, a.Y = nil, nil
	}
	return nil
}

func (s *Spec) normalizeGauge() error {
	var d gaugeData
	if err := s.DecodeData(&d); err != nil {
		return err
	}
	if d.Max != nil {
		if d.MaxValue == nil {
			d.MaxValue = d.Max
		}
		d.Max = nil
	}
	for i := range d.Zones {
		z := &d.Zones[i]
		if len(z.Range) >= 2 && z.Start == nil {
			start, end := z.Range[0], z.Range[1]
			z.Start, z.End = &start, &end
			z.Range = nil
		}
		if z.Border == "" {
			z.Border = z.Color
			if z.Border == "" {
				z.Border = "#666666"
			}
		}
	}
	return s.encodeData(d)
}

func (s *Spec) normalizeDonut() error {
	var d donutData
	if err := s.DecodeData(&d); err != nil {
		return err
	}
	if len(d.Allocations) == 0 || d.Donut != nil {
		return nil
	}

	n := len(d.Allocations)
	donut := &donutPart{
		Labels:     make([]string, 0, n),
		Sizes:      make([]float64, 0, n),
		Colors:     append([]string(nil), allocationColors[:min(n, len(allocationColors))]...),
		CenterText: "Model\nPortfolio",
	}
	matrix := &matrixPart{
		Headers: []string{"Asset Class", "View", "Chg", "Rationale"},
		Rows:    make([][]string, 0, n),
	}
	for _, a := range d.Allocations {
		w := a.weight()
		donut.Labels = append(donut.Labels, fmt.Sprintf("%s\n%s%%", a.Name, formatNumber(w)))
		donut.Sizes = append(donut.Sizes, w)

		conviction := a.Conviction
		if conviction == "" {
			conviction = "Medium"
		}
		view, ok := convictionViews[conviction]
		if !ok {
			view = "N"
		}
		matrix.Rows = append(matrix.Rows, []string{a.Name, view, "—", a.Change})
	}

	d.Donut, d.Matrix, d.Allocations = donut, matrix, nil
	return s.encodeData(d)
}

func (s *Spec) normalizeHeatmap() error {
	var d heatmapData
	if err := s.DecodeData(&d); err != nil {
		return err
	}
	if len(d.Rows) == 0 {
		return nil
	}

	var (
		clean [][]string
		seps  []int
	)
	for _, row := range d.Rows {
		if len(row) > 0 && (row[0] == "---" || row[0] == "—") {
			seps = append(seps, len(clean))
			continue
		}
		clean = append(clean, row)
	}
	changed := false
	if len(seps) > 0 {
		d.Rows = clean
		d.RulesBefore = seps
		changed = true
	}

	if len(d.Headers) == 6 && s.Config.ColWidths == nil {
		s.Config.ColWidths = append([]float64(nil), scoreboardColWidths...)
		s.Config.ColorCols = append([]int(nil), scoreboardColorCols...)
		col := scoreboardSignalCol
		s.Config.SignalCol = &col
	}

	if !changed {
		return nil
	}
	return s.encodeData(d)
}

// formatNumber prints v the shortest way that round-trips: 35, 35.5, -1.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
