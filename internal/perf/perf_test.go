package perf

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/VantageDataChat/GoDeck/internal/deckspec"
)

// ramp returns n closes starting at start and growing by step.
func ramp(n int, start, step float64) []*float64 {
	out := make([]*float64, n)
	for i := range out {
		v := start + float64(i)*step
		out[i] = &v
	}
	return out
}

// prices returns the closes as quotes.
func prices(vals ...float64) []*float64 {
	out := make([]*float64, len(vals))
	for i := range vals {
		out[i] = &vals[i]
	}
	return out
}

func TestFormatLevel(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"US 10Y", 4.2531, "4.25%"},
		{"US 2Y", 3.9, "3.90%"},
		{"EUR/USD", 1.08456, "1.0846"},
		{"USD/CHF", 0.9, "0.9000"},
		{"S&P 500", 5123.456, "5,123.46"},
		{"Bitcoin", 98765.4, "98,765.40"},
		{"Gold", 999.994, "999.99"},
		{"Oil WTI", 71.5, "71.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLevel(tt.value, tt.name))
		})
	}
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+0.0%", FormatChange(0))
	assert.Equal(t, "+1.2%", FormatChange(1.23))
	assert.Equal(t, "-3.5%", FormatChange(-3.46))
}

func TestSignal(t *testing.T) {
	assert.Equal(t, Bullish, Signal("Gold", 1.5))
	assert.Equal(t, Bearish, Signal("Gold", -1.5))
	assert.Equal(t, Neutral, Signal("Gold", 1))
	assert.Equal(t, Bullish, Signal("VIX", -6))
	assert.Equal(t, Bearish, Signal("VIX", 11))
	assert.Equal(t, Neutral, Signal("VIX", 8))
}

func TestFormattingProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("change sign follows the value", prop.ForAll(
		func(v float64) bool {
			s := FormatChange(v)
			return strings.HasSuffix(s, "%") && strings.HasPrefix(s, "+") == (v >= 0)
		},
		gen.Float64Range(-500, 500),
	))

	properties.Property("yield levels are percentages", prop.ForAll(
		func(v float64) bool {
			return strings.HasSuffix(FormatLevel(v, "German 10Y"), "%")
		},
		gen.Float64Range(-2, 20),
	))

	properties.Property("large levels are grouped", prop.ForAll(
		func(v float64) bool {
			s := FormatLevel(v, "Index")
			return strings.Contains(s, ",") && len(s)-strings.LastIndex(s, ".") == 3
		},
		gen.Float64Range(1000, 1e7),
	))

	properties.Property("VIX and others use their own thresholds", prop.ForAll(
		func(v float64) bool {
			vix, other := Signal("VIX", v), Signal("Gold", v)
			if v > 1 && v <= 10 && other != Bullish {
				return false
			}
			return (vix == Bullish) == (v < -5) && (vix == Bearish) == (v > 10)
		},
		gen.Float64Range(-50, 50),
	))

	properties.TestingRun(t)
}

func TestCompute(t *testing.T) {
	dates := []string{"2025-12-30", "2025-12-31", "2026-01-02", "2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"}
	in := Input{
		AsOf: "2026-01-08",
		Assets: []Asset{
			{Name: "S&P 500", Closes: prices(5000, 5000, 5100, 5050, 5200, 5300, 5500), Dates: dates},
			{Name: "Short", Closes: prices(1, 2, 3)},
		},
	}
	core, logs := observer.New(zap.WarnLevel)
	res, err := Compute(in, zap.New(core))
	require.NoError(t, err)

	require.Contains(t, res, "S&P 500")
	assert.NotContains(t, res, "Short")
	assert.Equal(t, 1, logs.FilterMessage("skipping asset").Len())

	p := res["S&P 500"]
	assert.Equal(t, "5,500.00", p.Level)
	// 1W base is closes[len-6] = 5000, MTD clamps to closes[0] = 5000,
	// YTD base is the first 2026 close, 5100.
	assert.Equal(t, "+10.0%", p.Change1W)
	assert.Equal(t, "+10.0%", p.ChangeMTD)
	assert.Equal(t, "+7.8%", p.ChangeYTD)
	assert.Equal(t, Bullish, p.Signal)
	assert.Empty(t, p.Commentary)
	assert.Len(t, p.Trend, 7)
}

func TestComputeLongHistory(t *testing.T) {
	closes := ramp(30, 100, 1)
	res, err := Compute(Input{AsOf: "2026-03-01", Assets: []Asset{{Name: "VIX", Closes: closes}}}, nil)
	require.NoError(t, err)

	p := res["VIX"]
	// current 129, week base closes[24] = 124, month base closes[8] = 108,
	// no dates so YTD falls back to closes[0] = 100.
	assert.Equal(t, FormatChange((129.0-124)/124*100), p.Change1W)
	assert.Equal(t, FormatChange((129.0-108)/108*100), p.ChangeMTD)
	assert.Equal(t, "+29.0%", p.ChangeYTD)
	assert.Equal(t, Neutral, p.Signal)
	assert.Len(t, p.Trend, 22)
}

func TestComputeSkipsBadAssets(t *testing.T) {
	in := Input{Assets: []Asset{
		{Name: "zero", Closes: prices(0, 0, 0, 0, 0, 1)},
		{Name: "dates", Closes: ramp(5, 1, 1), Dates: []string{"2026-01-01"}},
		{Name: "baddate", Closes: ramp(5, 1, 1), Dates: []string{"x", "x", "x", "x", "x"}},
		{Name: "nan", Closes: prices(1, math.NaN(), 2, 3, 4)},
		{Name: "ok", Closes: ramp(5, 10, 1)},
	}}
	res, err := Compute(in, nil)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Contains(t, res, "ok")
}

func TestComputeMissingCloses(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel string
		wantYTD   string
		wantTrend int
	}{
		{
			name:      "trailing null",
			input:     `{"assets":[{"name":"Gold","closes":[100,101,102,103,104,null]}]}`,
			wantLevel: "104.00",
			wantYTD:   "+4.0%",
			wantTrend: 5,
		},
		{
			name: "null drops its date",
			input: `{"as_of":"2026-01-08","assets":[{"name":"Gold","closes":[90,null,100,101,102,103],
				"dates":["2025-12-31","2026-01-02","2026-01-05","2026-01-06","2026-01-07","2026-01-08"]}]}`,
			wantLevel: "103.00",
			wantYTD:   "+3.0%",
			wantTrend: 5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := Decode(strings.NewReader(tt.input))
			require.NoError(t, err)
			res, err := Compute(*in, nil)
			require.NoError(t, err)

			require.Contains(t, res, "Gold")
			p := res["Gold"]
			assert.Equal(t, tt.wantLevel, p.Level)
			assert.Equal(t, tt.wantYTD, p.ChangeYTD)
			assert.Len(t, p.Trend, tt.wantTrend)
			assert.NotContains(t, p.Trend, 0.0)
		})
	}

	// Four quotes and a null are too short once the null is gone.
	in, err := Decode(strings.NewReader(`{"assets":[{"name":"Gold","closes":[1,2,3,4,null]}]}`))
	require.NoError(t, err)
	res, err := Compute(*in, nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestComputeBadAsOf(t *testing.T) {
	_, err := Compute(Input{AsOf: "08/01/2026"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid as_of date")
}

func TestDecode(t *testing.T) {
	_, err := Decode(strings.NewReader(" "))
	assert.ErrorIs(t, err, deckspec.ErrEmptyInput)

	_, err = Decode(strings.NewReader("{"))
	var ije *deckspec.InvalidJSONError
	assert.ErrorAs(t, err, &ije)

	in, err := Decode(strings.NewReader(`{"as_of":"2026-02-06","assets":[{"name":"Gold","closes":[1,2,3,4,5]}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Gold"}, in.Names())
}

func TestResultJSON(t *testing.T) {
	res, err := Compute(Input{Assets: []Asset{{Name: "Gold", Closes: ramp(6, 2000, 10)}}}, nil)
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Gold":{"name":"Gold","level":"2,050.00","change1w":"+2.5%","changeMtd":"+2.5%",
		"changeYtd":"+2.5%","signal":"bullish","commentary":""}}`, string(data))
}

func TestRowsAndChart(t *testing.T) {
	res := Result{
		"Gold": {Name: "Gold", Level: "2,050.00", Change1W: "+2.5%", ChangeMTD: "+1.0%", ChangeYTD: "+3.0%", Signal: Bullish, Trend: []float64{1, 2}},
		"Oil":  {Name: "Oil", Level: "71.50", Change1W: "-2.0%", ChangeMTD: "-1.0%", ChangeYTD: "-4.0%", Signal: Bearish},
	}

	rows := res.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Gold", "2,050.00", "+2.5%", "+1.0%", "+3.0%", "BULLISH"}, rows[0].Cells)
	assert.Equal(t, []float64{1, 2}, rows[0].Sparkline)

	ordered := res.Rows("Oil", "Missing", "Gold")
	require.Len(t, ordered, 2)
	assert.Equal(t, "Oil", ordered[0].Cells[0])

	spec, err := res.Chart("Markets")
	require.NoError(t, err)
	assert.Equal(t, "sparkline_table", spec.Type)
	assert.Equal(t, "Markets", spec.Config.Title)

	tbl, ok := spec.Table()
	require.True(t, ok)
	assert.Equal(t, Headers, tbl.Headers)
	assert.Len(t, tbl.Rows, 2)
}
