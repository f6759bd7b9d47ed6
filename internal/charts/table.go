package charts

// Table is the data behind a chart in row form, used for spreadsheet
// export. Cells hold strings or float64 values.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// Table flattens the chart's data into a table. It reports false when the
// data cannot be decoded or holds nothing tabular.
func (s *Spec) Table() (Table, bool) {
	t := Table{Title: s.Config.Title}
	if t.Title == "" {
		t.Title = s.Type
	}
	var ok bool
	switch s.Type {
	case "line", "area":
		var d lineData
		if s.DecodeData(&d) == nil {
			t.Headers, t.Rows = seriesTable("Label", d.Labels, d.Series)
			ok = true
		}
	case "bar":
		var d barData
		if s.DecodeData(&d) == nil {
			if len(d.Groups) > 0 {
				t.Headers, t.Rows = groupTable(d.Labels, d.Groups)
			} else {
				t.Headers, t.Rows = pairTable("Label", "Value", d.Labels, d.Values)
			}
			ok = true
		}
	case "hbar":
		var d hbarData
		if s.DecodeData(&d) == nil {
			t.Headers, t.Rows = pairTable("Label", "Value", d.Labels, d.Values)
			ok = true
		}
	case "stacked_bar":
		var d stackedData
		if s.DecodeData(&d) == nil {
			t.Headers, t.Rows = groupTable(d.Labels, d.Stacks)
			ok = true
		}
	case "waterfall":
		var d waterfallData
		if s.DecodeData(&d) == nil {
			t.Headers, t.Rows = pairTable("Label", "Value", d.Labels, d.Values)
			ok = true
		}
	case "lollipop":
		var d lollipopData
		if s.DecodeData(&d) == nil {
			t.Headers, t.Rows = pairTable("Category", "Value", d.Categories, d.Values)
			ok = true
		}
	case "dumbbell":
		var d dumbbellData
		if s.DecodeData(&d) == nil {
			start, end := d.StartLabel, d.EndLabel
			if start == "" {
				start = "Start"
			}
			if end == "" {
				end = "End"
			}
			t.Headers = []string{"Category", start, end}
			for i, c := range d.Categories {
				t.Rows = append(t.Rows, []any{c, at(d.Start, i), at(d.End, i)})
			}
			ok = true
		}
	case "table_heatmap":
		var d heatmapData
		if s.DecodeData(&d) == nil {
			t.Headers = d.Headers
			for _, r := range d.Rows {
				t.Rows = append(t.Rows, stringsRow(r))
			}
			ok = true
		}
	case "sparkline_table":
		var d sparkData
		if s.DecodeData(&d) == nil {
			t.Headers = d.Headers
			for _, r := range d.Rows {
				t.Rows = append(t.Rows, stringsRow(r.Cells))
			}
			ok = true
		}
	case "return_quilt":
		var d quiltData
		if s.DecodeData(&d) == nil {
			t.Headers = append([]string{"Year"}, d.Assets...)
			for i, y := range d.Years {
				row := []any{y}
				for j := range d.Assets {
					var v float64
					if i < len(d.Returns) {
						v = at(d.Returns[i], j)
					}
					row = append(row, v)
				}
				t.Rows = append(t.Rows, row)
			}
			ok = true
		}
	case "scatter":
		var d scatterData
		if s.DecodeData(&d) == nil {
			t.Headers = []string{"Label", "X", "Y"}
			for _, p := range d.Points {
				t.Rows = append(t.Rows, []any{p.Label, p.X, p.Y})
			}
			ok = true
		}
	case "bump":
		var d bumpData
		if s.DecodeData(&d) == nil {
			t.Headers = append([]string{"Series"}, d.Periods...)
			for _, sr := range d.Series {
				row := []any{sr.Name}
				for i := range d.Periods {
					row = append(row, at(sr.Ranks, i))
				}
				t.Rows = append(t.Rows, row)
			}
			ok = true
		}
	case "small_multiples":
		var d multiplesData
		if s.DecodeData(&d) == nil {
			t.Headers = []string{"Panel", "Label", "Value"}
			for _, p := range d.Panels {
				for i, v := range p.Values {
					label := ""
					if i < len(p.Labels) {
						label = p.Labels[i]
					}
					t.Rows = append(t.Rows, []any{p.Title, label, v})
				}
			}
			ok = true
		}
	case "donut_matrix":
		var d donutData
		if s.DecodeData(&d) == nil && d.Donut != nil {
			t.Headers, t.Rows = pairTable("Slice", "Weight", d.Donut.Labels, d.Donut.Sizes)
			ok = true
		}
	case "gauge":
		var d gaugeData
		if s.DecodeData(&d) == nil {
			t.Headers = []string{"Value", "Max"}
			maxVal := 10.0
			if d.MaxValue != nil {
				maxVal = *d.MaxValue
			}
			t.Rows = [][]any{{d.Value, maxVal}}
			ok = true
		}
	}
	return t, ok && len(t.Rows) > 0
}

func seriesTable(first string, labels []string, series []lineSeries) ([]string, [][]any) {
	headers := []string{first}
	for _, s := range series {
		headers = append(headers, s.Name)
	}
	rows := make([][]any, 0, len(labels))
	for i, l := range labels {
		row := []any{l}
		for _, s := range series {
			row = append(row, at(s.Values, i))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func groupTable(labels []string, groups []barGroup) ([]string, [][]any) {
	series := make([]lineSeries, len(groups))
	for i, g := range groups {
		series[i] = lineSeries{Name: g.Name, Values: g.Values}
	}
	return seriesTable("Label", labels, series)
}

func pairTable(k, v string, labels []string, values []float64) ([]string, [][]any) {
	rows := make([][]any, 0, len(labels))
	for i, l := range labels {
		rows = append(rows, []any{l, at(values, i)})
	}
	return []string{k, v}, rows
}

func stringsRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func at(vs []float64, i int) float64 {
	if i < len(vs) {
		return vs[i]
	}
	return 0
}
