package xlsx

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/hearing-board/internal/persistence"
)

// DefaultSheet is the sheet name of exported workbooks.
const DefaultSheet = "Resultados"

// dateTimeFormat is the built-in "m/d/yy h:mm" number format.
const dateTimeFormat = 22

// Writer writes a table as a single-sheet workbook.
type Writer struct {
	w     io.Writer
	sheet string
}

// NewWriter returns a writer targeting w. An empty sheet uses DefaultSheet.
func NewWriter(w io.Writer, sheet string) *Writer {
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &Writer{w: w, sheet: sheet}
}

// WriteTable writes the header on the first row and one row per table row.
// time.Time cells keep their wall clock and get a date format.
func (w *Writer) WriteTable(ctx context.Context, table persistence.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), w.sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: dateTimeFormat})
	if err != nil {
		return fmt.Errorf("create date style: %w", err)
	}

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(w.sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for r, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for c, v := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := w.setCell(f, axis, v, dateStyle); err != nil {
				return fmt.Errorf("write %s: %w", axis, err)
			}
		}
	}

	if _, err := f.WriteTo(w.w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func (w *Writer) setCell(f *excelize.File, axis string, v any, dateStyle int) error {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		wall := time.Date(val.Year(), val.Month(), val.Day(), val.Hour(), val.Minute(), val.Second(), 0, time.UTC)
		if err := f.SetCellValue(w.sheet, axis, wall); err != nil {
			return err
		}
		return f.SetCellStyle(w.sheet, axis, axis, dateStyle)
	case string:
		return f.SetCellStr(w.sheet, axis, val)
	default:
		return f.SetCellStr(w.sheet, axis, persistence.CellText(val))
	}
}
