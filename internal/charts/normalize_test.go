package charts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func decodeSpec(t *testing.T, raw string) *Spec {
	t.Helper()
	var s Spec
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	return &s
}

func TestNormalizeReferenceLine(t *testing.T) {
	s := decodeSpec(t, `{"type":"bar","config":{"reference_line":{"value":2.5,"label":"Target"}}}`)
	require.NoError(t, Normalize(s))

	assert.Nil(t, s.Config.ReferenceLine)
	require.Len(t, s.Config.HLines, 1)
	assert.Equal(t, HLine{Y: 2.5, Label: "Target", Color: "#F0B90B", Style: "--"}, s.Config.HLines[0])
}

func TestNormalizeReferenceLineKeepsExistingHLines(t *testing.T) {
	s := decodeSpec(t, `{"type":"line","config":{"hlines":[{"y":1}],"reference_line":{"value":3,"color":"#000000"}}}`)
	require.NoError(t, Normalize(s))

	require.Len(t, s.Config.HLines, 2)
	assert.Equal(t, 1.0, s.Config.HLines[0].Y)
	assert.Equal(t, "#000000", s.Config.HLines[1].Color)
}

func TestNormalizeAnnotationLabels(t *testing.T) {
	tests := []struct {
		name   string
		typ    string
		x, y   string
		wantXY []Coord
	}{
		{"bar resolves x", "bar", `"AMZN"`, `200`, []Coord{Num(1), Num(200)}},
		{"line resolves x", "line", `"Q3"`, `7`, []Coord{Num(2), Num(7)}},
		{"hbar resolves y", "hbar", `-20`, `"AMZN"`, []Coord{Num(-20), Num(1)}},
		{"unknown label stays", "bar", `"NFLX"`, `1`, []Coord{{Label: "NFLX", IsLabel: true}, Num(1)}},
		{"numeric passes through", "stacked_bar", `0.5`, `9`, []Coord{Num(0.5), Num(9)}},
		{"other types untouched", "scatter", `"AMZN"`, `1`, []Coord{{Label: "AMZN", IsLabel: true}, Num(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := decodeSpec(t, `{"type":"`+tt.typ+`","data":{"labels":["MSFT","AMZN","Q3"]},
				"config":{"annotations":[{"text":"note","x":`+tt.x+`,"y":`+tt.y+`}]}}`)
			require.NoError(t, Normalize(s))

			a := s.Config.Annotations[0]
			assert.Nil(t, a.X)
			assert.Nil(t, a.Y)
			assert.Equal(t, tt.wantXY, a.XY)
		})
	}
}

func TestNormalizeAnnotationWithXYUntouched(t *testing.T) {
	s := decodeSpec(t, `{"type":"bar","data":{"labels":["A"]},"config":{"annotations":[{"text":"n","xy":[0,1],"x":"A","y":3}]}}`)
	require.NoError(t, Normalize(s))

	a := s.Config.Annotations[0]
	assert.Equal(t, []Coord{Num(0), Num(1)}, a.XY)
	assert.NotNil(t, a.X)
}

func TestNormalizeGauge(t *testing.T) {
	s := decodeSpec(t, `{"type":"gauge","data":{"value":4,"max":20,"zones":[{"range":[0,5],"color":"#C8E6C9"},{"start":5,"end":20}]}}`)
	require.NoError(t, Normalize(s))

	var d gaugeData
	require.NoError(t, s.DecodeData(&d))
	require.NotNil(t, d.MaxValue)
	assert.Equal(t, 20.0, *d.MaxValue)
	assert.Nil(t, d.Max)

	require.Len(t, d.Zones, 2)
	start, end := d.Zones[0].bounds()
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 5.0, end)
	assert.Nil(t, d.Zones[0].Range)
	assert.Equal(t, "#C8E6C9", d.Zones[0].Border)
	assert.Equal(t, "#666666", d.Zones[1].Border)
}

func TestNormalizeGaugeKeepsMaxValue(t *testing.T) {
	s := decodeSpec(t, `{"type":"gauge","data":{"value":4,"max_value":12,"max":20}}`)
	require.NoError(t, Normalize(s))

	var d gaugeData
	require.NoError(t, s.DecodeData(&d))
	assert.Equal(t, 12.0, *d.MaxValue)
}

func TestNormalizeDonutAllocations(t *testing.T) {
	s := decodeSpec(t, `{"type":"donut_matrix","data":{"allocations":[
		{"name":"Equities","pct":45.5,"conviction":"Very High","change":"↑"},
		{"name":"Bonds","value":30,"conviction":"Low"},
		{"name":"Cash","pct":24.5,"conviction":"Sideways"}]}}`)
	require.NoError(t, Normalize(s))

	var d donutData
	require.NoError(t, s.DecodeData(&d))
	assert.Empty(t, d.Allocations)
	require.NotNil(t, d.Donut)
	require.NotNil(t, d.Matrix)

	assert.Equal(t, []string{"Equities\n45.5%", "Bonds\n30%", "Cash\n24.5%"}, d.Donut.Labels)
	assert.Equal(t, []float64{45.5, 30, 24.5}, d.Donut.Sizes)
	assert.Equal(t, []string{"#003366", "#117ACA", "#5B9BD5"}, d.Donut.Colors)
	assert.Equal(t, "Model\nPortfolio", d.Donut.CenterText)

	assert.Equal(t, []string{"Asset Class", "View", "Chg", "Rationale"}, d.Matrix.Headers)
	assert.Equal(t, [][]string{
		{"Equities", "OW+", "—", "↑"},
		{"Bonds", "UW", "—", ""},
		{"Cash", "N", "—", ""},
	}, d.Matrix.Rows)
}

func TestNormalizeDonutExplicitWins(t *testing.T) {
	raw := `{"donut":{"labels":["A"],"sizes":[1]},"allocations":[{"name":"B","pct":1}]}`
	s := decodeSpec(t, `{"type":"donut_matrix","data":`+raw+`}`)
	require.NoError(t, Normalize(s))
	assert.JSONEq(t, raw, string(s.Data))
}

func TestNormalizeHeatmapSeparators(t *testing.T) {
	s := decodeSpec(t, `{"type":"table_heatmap","data":{"headers":["A","B"],
		"rows":[["x","1"],["---"],["y","2"],["—",""],["z","3"]]}}`)
	require.NoError(t, Normalize(s))

	var d heatmapData
	require.NoError(t, s.DecodeData(&d))
	assert.Equal(t, [][]string{{"x", "1"}, {"y", "2"}, {"z", "3"}}, d.Rows)
	assert.Equal(t, []int{1, 2}, d.RulesBefore)
	assert.Empty(t, d.Separators)
	assert.Nil(t, s.Config.ColWidths)
}

func TestNormalizeHeatmapScoreboardDefaults(t *testing.T) {
	s := decodeSpec(t, `{"type":"table_heatmap","data":{"headers":["a","b","c","d","e","f"],"rows":[["1","2","3","4","5","6"]]}}`)
	require.NoError(t, Normalize(s))

	assert.Equal(t, []float64{2.2, 1.2, 0.9, 0.9, 0.9, 1.2}, s.Config.ColWidths)
	assert.Equal(t, []int{2, 3, 4, 5}, s.Config.ColorCols)
	require.NotNil(t, s.Config.SignalCol)
	assert.Equal(t, 5, *s.Config.SignalCol)
}

func TestNormalizeHeatmapKeepsExplicitWidths(t *testing.T) {
	s := decodeSpec(t, `{"type":"table_heatmap","data":{"headers":["a","b","c","d","e","f"],"rows":[["1"]]},"config":{"col_widths":[1,1,1,1,1,1]}}`)
	require.NoError(t, Normalize(s))
	assert.Nil(t, s.Config.ColorCols)
	assert.Nil(t, s.Config.SignalCol)
}

func TestNormalizeBadData(t *testing.T) {
	s := decodeSpec(t, `{"type":"gauge","data":{"value":"high"}}`)
	assert.ErrorContains(t, Normalize(s), "failed to decode gauge data")
}

func TestNormalizeIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		typ := rapid.SampledFrom(Types()).Draw(t, "type")
		s := &Spec{Type: typ, Data: json.RawMessage(sampleData[typ])}
		if rapid.Bool().Draw(t, "reference") {
			s.Config.ReferenceLine = &ReferenceLine{Value: rapid.Float64Range(-10, 10).Draw(t, "value")}
		}
		if err := Normalize(s); err != nil {
			t.Fatalf("first pass: %v", err)
		}
		once, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		if err := Normalize(s); err != nil {
			t.Fatalf("second pass: %v", err)
		}
		twice, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		if string(once) != string(twice) {
			t.Fatalf("normalize changed a normalized spec:\n%s\n%s", once, twice)
		}
	})
}

func TestCoordJSON(t *testing.T) {
	var cs []Coord
	require.NoError(t, json.Unmarshal([]byte(`[1.5,"Q2"]`), &cs))
	assert.Equal(t, []Coord{Num(1.5), {Label: "Q2", IsLabel: true}}, cs)
	assert.Equal(t, 0.0, cs[1].Value())

	out, err := json.Marshal(cs)
	require.NoError(t, err)
	assert.JSONEq(t, `[1.5,"Q2"]`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`[true]`), &cs))
}
