package charts

import (
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// sampleData holds a small valid payload for every chart type.
var sampleData = map[string]string{
	"line": `{"labels":["Q1","Q2","Q3","Q4"],
		"series":[{"name":"Fund","values":[100,104,101,110]},{"name":"Index","values":[100,102,103,105],"linestyle":"--"}],
		"shaded_regions":[{"start":1,"end":2,"label":"Drawdown"}],
		"annotations":[{"x":3,"y":110,"text":"High","arrow":true}]}`,
	"bar":         `{"labels":["MSFT","AMZN","GOOG"],"groups":[{"name":"Capex","values":[80,200,-40]},{"name":"FCF","values":[65,-20,70]}]}`,
	"hbar":        `{"labels":["China","US","Japan","EM"],"values":[-45,-3,2.5,12]}`,
	"stacked_bar": `{"labels":["2023","2024"],"stacks":[{"name":"DE","values":[40,45]},{"name":"FR","values":[38,40]}]}`,
	"table_heatmap": `{"headers":["Asset","Level","1W","1M","YTD","Signal"],
		"rows":[["SPX","5,100","+1.2%","-0.4%","+8.0%","Overbought"],["---"],["Gold","2,300","—","+2.0%","-1.0%","Oversold"]]}`,
	"gauge":        `{"value":7.5,"max":10,"zones":[{"range":[0,2],"label":"FEAR","color":"#C8E6C9"},{"start":2,"end":8,"label":"NEUTRAL"},{"start":8,"end":10,"label":"GREED","border":"#CC0000"}]}`,
	"donut_matrix": `{"allocations":[{"name":"Equities","pct":45,"conviction":"High","change":"↑"},{"name":"Bonds","pct":35,"conviction":"Low"},{"name":"Cash","pct":20}]}`,
	"waterfall":    `{"labels":["Start","Equities","Bonds","End"],"values":[100,5.2,-1.3,103.9]}`,
	"return_quilt": `{"years":["2022","2023"],"assets":["US","EM","Bonds"],"returns":[[-18.1,-20.1,-13],[26.3,9.8,5.5]]}`,
	"scatter": `{"points":[{"x":1,"y":2,"label":"A"},{"x":2,"y":3.5,"size":120},{"x":3,"y":5,"color":"#CC0000"}],
		"x_label":"Vol","y_label":"Return","quadrant_labels":{"tl":"Best","br":"Worst"},"trend_line":true}`,
	"sparkline_table": `{"headers":["Asset","Price","Chg"],"rows":[{"cells":["SPX","5,100","+1.2%"],"sparkline":[1,2,3,2.5]},{"cells":["Gold","2,300","-0.4%"],"sparkline":[3,2,1]}]}`,
	"lollipop":        `{"categories":["A","B","C"],"values":[3,-1.5,2]}`,
	"dumbbell":        `{"categories":["A","B"],"start":[10,20],"end":[15,18],"start_label":"2024","end_label":"2025"}`,
	"area":            `{"labels":["Jan","Feb","Mar"],"series":[{"name":"A","values":[1,2,3]},{"name":"B","values":[2,2,1]}]}`,
	"bump":            `{"periods":["2021","2022","2023"],"series":[{"name":"US","ranks":[1,2,1]},{"name":"EU","ranks":[2,1,3]},{"name":"JP","ranks":[3,3,2]}]}`,
	"small_multiples": `{"panels":[{"title":"US","labels":["a","b","c"],"values":[1,2,3]},{"title":"EU","labels":["a","b","c"],"values":[2,1,2]},{"title":"JP","values":[0.5,0.7]}]}`,
}

func sampleSpec(t *testing.T, typ string) *Spec {
	t.Helper()
	raw, ok := sampleData[typ]
	require.True(t, ok, "no sample for %s", typ)
	s := &Spec{
		Type:   typ,
		Data:   json.RawMessage(raw),
		Config: Config{Title: "Sample " + typ, DPI: 40},
		Source: "Source: test data",
	}
	require.NoError(t, Normalize(s))
	return s
}

func TestSampleCoversEveryType(t *testing.T) {
	for _, typ := range Types() {
		assert.Contains(t, sampleData, typ)
	}
	assert.Len(t, Types(), 16)
}

func TestRenderEveryType(t *testing.T) {
	for _, name := range []string{palette.DefaultName, "crossinvest_dark"} {
		pal := palette.Get(name)
		for _, typ := range Types() {
			t.Run(name+"/"+typ, func(t *testing.T) {
				dir := t.TempDir()
				path, err := Render(context.Background(), sampleSpec(t, typ), pal, dir)
				require.NoError(t, err)
				assert.Equal(t, filepath.Join(dir, "chart_"+typ+".png"), path)

				f, err := os.Open(path)
				require.NoError(t, err)
				defer f.Close()
				img, err := png.Decode(f)
				require.NoError(t, err)
				assert.Greater(t, img.Bounds().Dx(), 100)
				assert.Greater(t, img.Bounds().Dy(), 50)
			})
		}
	}
}

func TestRenderHonoursFigsizeAndFilename(t *testing.T) {
	s := sampleSpec(t, "bar")
	s.Config.FigSize = []float64{4, 2}
	s.Filename = "capex.png"

	path, err := Render(context.Background(), s, nil, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "capex.png", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 160, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestRenderEmptyData(t *testing.T) {
	for _, typ := range Types() {
		t.Run(typ, func(t *testing.T) {
			s := &Spec{Type: typ, Config: Config{DPI: 30}}
			if typ == "donut_matrix" || typ == "gauge" || typ == "table_heatmap" {
				require.NoError(t, Normalize(s))
			}
			_, err := Render(context.Background(), s, nil, t.TempDir())
			assert.NoError(t, err)
		})
	}
}

func TestRenderUnknownType(t *testing.T) {
	_, err := Render(context.Background(), &Spec{Type: "pie3d"}, nil, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownChartType))
	assert.EqualError(t, err, "Unknown chart type: pie3d")

	var ute *UnknownTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "pie3d", ute.Type)
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	_, err := Render(ctx, sampleSpec(t, "line"), nil, dir)
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderBadData(t *testing.T) {
	s := &Spec{Type: "bar", Data: json.RawMessage(`{"labels":"oops"}`), Config: Config{DPI: 30}}
	_, err := Render(context.Background(), s, nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to render bar chart")
	assert.Contains(t, err.Error(), "failed to decode bar data")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("waterfall"))
	assert.False(t, Supported("Waterfall"))
	assert.False(t, Supported(""))
}
