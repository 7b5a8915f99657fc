// Package export renders a user's records into an .xlsx workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	DateLayout  = "2006-01-02"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var columnWidths = []float64{20, 15, 15}

// Row is one spreadsheet line: source or category, amount and calendar date.
type Row struct {
	Label  string
	Amount float64
	Date   time.Time
}

// Workbook builds a single-sheet workbook with a header row.
// Date cells are written as strings so spreadsheet apps keep them verbatim.
func Workbook(sheet, labelHeader string, rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{labelHeader, "Amount", "Date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		if err := f.SetCellStr(sheet, cell(1, line), r.Label); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", line, err)
		}
		if err := f.SetCellFloat(sheet, cell(2, line), r.Amount, -1, 64); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", line, err)
		}
		if err := f.SetCellStr(sheet, cell(3, line), r.Date.UTC().Format(DateLayout)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write row %d: %w", line, err)
		}
	}

	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	return f, nil
}

// SaveTemp writes the workbook to a uniquely named file in dir (os.TempDir when empty)
// and returns its path. The caller owns the file and must remove it.
func SaveTemp(f *excelize.File, dir, prefix string) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", prefix, uuid.NewString()))
	if err := f.SaveAs(path); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("save workbook: %w", err)
	}

	return path, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
