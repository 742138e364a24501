package spreadsheet

import (
	"fmt"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/pfrederiksen/ccao-calendar/internal/record"
)

const (
	SheetName = "Sheet1"

	// MaxColumnWidth caps auto-sized columns
	MaxColumnWidth = 60
	columnPadding  = 2
)

// FileName returns the timestamped output file name for a collection time.
func FileName(collectedAt time.Time) string {
	return fmt.Sprintf("CCAO_Calendar_%s.xlsx", collectedAt.Format("2006-01-02_15-04"))
}

// Write saves result to path
func Write(path string, result *record.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rows := result.Rows()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := styleHeader(f, len(result.Columns)); err != nil {
		return err
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	for i, width := range ColumnWidths(result.Columns, rows) {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return fmt.Errorf("sizing column %s: %w", name, err)
		}
	}

	if err := f.SaveAs(filepath.Clean(path)); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func styleHeader(f *excelize.File, columns int) error {
	if columns == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}

// ColumnWidths sizes each column to its longest value plus padding, capped
// at MaxColumnWidth.
func ColumnWidths(columns []string, rows [][]string) []float64 {
	widths := make([]float64, len(columns))
	for i, col := range columns {
		longest := utf8.RuneCountInString(col)
		for _, row := range rows {
			if i < len(row) {
				if n := utf8.RuneCountInString(row[i]); n > longest {
					longest = n
				}
			}
		}
		w := float64(longest + columnPadding)
		if w > MaxColumnWidth {
			w = MaxColumnWidth
		}
		widths[i] = w
	}
	return widths
}
