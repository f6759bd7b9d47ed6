package workbook

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/VantageDataChat/GoDeck/internal/charts"
)

func TestSheetName(t *testing.T) {
	assert.Equal(t, "3_bar", SheetName(3, "bar"))
	long := SheetName(12, strings.Repeat("x", 40))
	assert.Len(t, long, 31)
	assert.True(t, strings.HasPrefix(long, "12_x"))
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "data.xlsx")
	data := []ChartData{
		{Num: 1, Spec: &charts.Spec{Type: "bar", Data: json.RawMessage(`{"labels":["MSFT","AMZN"],"values":[80,-20]}`)}},
		{Num: 2, Spec: &charts.Spec{Type: "line", Data: json.RawMessage(`{"labels":[]}`)}},
		{Num: 3},
	}
	require.NoError(t, Write(path, data))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"1_bar", "2_line"}, f.GetSheetList())

	v, err := f.GetCellValue("1_bar", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Label", v)
	v, _ = f.GetCellValue("1_bar", "B1")
	assert.Equal(t, "Value", v)
	v, _ = f.GetCellValue("1_bar", "A3")
	assert.Equal(t, "AMZN", v)
	v, _ = f.GetCellValue("1_bar", "B3")
	assert.Equal(t, "-20", v)

	raw, _ := f.GetCellValue("2_line", "A1")
	assert.JSONEq(t, `{"labels":[]}`, raw)
}

func TestWriteNoCharts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Write(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}
