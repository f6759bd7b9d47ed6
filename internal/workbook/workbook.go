// Package workbook exports the data behind a deck's charts as an .xlsx
// appendix, one sheet per chart.
package workbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/VantageDataChat/GoDeck/internal/charts"
	"github.com/VantageDataChat/GoDeck/internal/palette"
)

// maxSheetName is Excel's sheet name limit.
const maxSheetName = 31

// ChartData is one chart of the deck.
type ChartData struct {
	Num  int
	Spec *charts.Spec
}

// SheetName is the sheet holding chart num of type typ.
func SheetName(num int, typ string) string {
	name := fmt.Sprintf("%d_%s", num, typ)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// Write saves one sheet per chart to path.
func Write(path string, data []ChartData) error {
	f := excelize.NewFile()
	defer f.Close()

	navy := strings.TrimPrefix(palette.Get(palette.DefaultName).Navy, "#")
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Size:  11,
			Color: "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{navy},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	written := 0
	for _, d := range data {
		if d.Spec == nil {
			continue
		}
		sheet := SheetName(d.Num, d.Spec.Type)
		index, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
		if written == 0 {
			f.SetActiveSheet(index)
		}
		written++
		if err := writeSheet(f, sheet, d.Spec, headerStyle); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	if written > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	f.SetDocProps(&excelize.DocProperties{
		Created:     time.Now().Format(time.RFC3339),
		Creator:     "GoDeck",
		Description: "Chart data appendix",
		Title:       "Chart data",
	})

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, spec *charts.Spec, headerStyle int) error {
	tbl, ok := spec.Table()
	if !ok {
		return f.SetCellValue(sheet, "A1", string(spec.Data))
	}

	for i, h := range tbl.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		width := float64(len(h)) * 1.5
		if width < 10 {
			width = 10
		}
		if width > 50 {
			width = 50
		}
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, colName, colName, width)
	}
	if len(tbl.Headers) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(tbl.Headers), 1)
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range tbl.Rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	return nil
}
