package charts

// Per-type data payloads, decoded from Spec.Data.

type lineSeries struct {
	Name      string    `json:"name"`
	Values    []float64 `json:"values"`
	Color     string    `json:"color,omitempty"`
	LineStyle string    `json:"linestyle,omitempty"`
	LineWidth float64   `json:"linewidth,omitempty"`
}

type shadedRegion struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Color string  `json:"color,omitempty"`
	Label string  `json:"label,omitempty"`
}

type pointNote struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Arrow bool    `json:"arrow,omitempty"`
}

type lineData struct {
	Labels        []string       `json:"labels"`
	Series        []lineSeries   `json:"series"`
	ShadedRegions []shadedRegion `json:"shaded_regions,omitempty"`
	Annotations   []pointNote    `json:"annotations,omitempty"`
}

type barGroup struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

type barData struct {
	Labels []string   `json:"labels"`
	Groups []barGroup `json:"groups,omitempty"`
	Values []float64  `json:"values,omitempty"`
}

type hbarData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type stackedData struct {
	Labels []string   `json:"labels"`
	Stacks []barGroup `json:"stacks"`
}

type heatmapData struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	// Separators are rows drawn as a rule instead of their cells.
	Separators []int `json:"separators,omitempty"`
	// RulesBefore are rows with a rule above them, left by inline "---" rows.
	RulesBefore []int `json:"rules_before,omitempty"`
}

type gaugeZone struct {
	Start  *float64  `json:"start,omitempty"`
	End    *float64  `json:"end,omitempty"`
	Range  []float64 `json:"range,omitempty"`
	Label  string    `json:"label,omitempty"`
	Color  string    `json:"color,omitempty"`
	Border string    `json:"border,omitempty"`
}

func (z gaugeZone) bounds() (float64, float64) {
	var s, e float64
	if z.Start != nil {
		s = *z.Start
	}
	if z.End != nil {
		e = *z.End
	}
	return s, e
}

type gaugeData struct {
	Value    float64     `json:"value"`
	MaxValue *float64    `json:"max_value,omitempty"`
	Max      *float64    `json:"max,omitempty"`
	Zones    []gaugeZone `json:"zones,omitempty"`
}

type donutPart struct {
	Labels     []string  `json:"labels"`
	Sizes      []float64 `json:"sizes"`
	Colors     []string  `json:"colors,omitempty"`
	CenterText string    `json:"center_text,omitempty"`
}

type matrixPart struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type allocation struct {
	Name       string   `json:"name"`
	Pct        *float64 `json:"pct,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	Conviction string   `json:"conviction,omitempty"`
	Change     string   `json:"change,omitempty"`
}

func (a allocation) weight() float64 {
	switch {
	case a.Pct != nil:
		return *a.Pct
	case a.Value != nil:
		return *a.Value
	}
	return 0
}

type donutData struct {
	Donut       *donutPart   `json:"donut,omitempty"`
	Matrix      *matrixPart  `json:"matrix,omitempty"`
	Allocations []allocation `json:"allocations,omitempty"`
}

type waterfallData struct {
	Labels  []string  `json:"labels"`
	Values  []float64 `json:"values"`
	IsTotal []bool    `json:"is_total,omitempty"`
}

type quiltData struct {
	Years   []string    `json:"years"`
	Assets  []string    `json:"assets"`
	Returns [][]float64 `json:"returns"`
}

type scatterPoint struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Label string   `json:"label,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Color string   `json:"color,omitempty"`
}

type quadrantLabels struct {
	TL string `json:"tl,omitempty"`
	TR string `json:"tr,omitempty"`
	BL string `json:"bl,omitempty"`
	BR string `json:"br,omitempty"`
}

type scatterData struct {
	Points         []scatterPoint  `json:"points"`
	XLabel         string          `json:"x_label,omitempty"`
	YLabel         string          `json:"y_label,omitempty"`
	QuadrantLabels *quadrantLabels `json:"quadrant_labels,omitempty"`
	TrendLine      bool            `json:"trend_line,omitempty"`
}

type sparkRow struct {
	Cells     []string  `json:"cells"`
	Sparkline []float64 `json:"sparkline,omitempty"`
}

type sparkData struct {
	Headers []string   `json:"headers"`
	Rows    []sparkRow `json:"rows"`
}

type lollipopData struct {
	Categories []string  `json:"categories"`
	Values     []float64 `json:"values"`
}

type dumbbellData struct {
	Categories []string  `json:"categories"`
	Start      []float64 `json:"start"`
	End        []float64 `json:"end"`
	StartLabel string    `json:"start_label,omitempty"`
	EndLabel   string    `json:"end_label,omitempty"`
}

type areaData struct {
	Labels []string     `json:"labels"`
	Series []lineSeries `json:"series"`
}

type bumpSeries struct {
	Name  string    `json:"name"`
	Ranks []float64 `json:"ranks"`
	Color string    `json:"color,omitempty"`
}

type bumpData struct {
	Periods []string     `json:"periods"`
	Series  []bumpSeries `json:"series"`
}

type multiplesPanel struct {
	Title  string    `json:"title,omitempty"`
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

type multiplesData struct {
	Panels []multiplesPanel `json:"panels"`
}
