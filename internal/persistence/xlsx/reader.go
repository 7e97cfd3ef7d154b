// Package xlsx reads and writes hearing tables as Excel workbooks.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/hearing-board/internal/persistence"
)

// Source reads one sheet of a workbook file.
type Source struct {
	path     string
	sheet    string
	location *time.Location
}

// NewSource returns a source for path. An empty sheet selects the first sheet;
// date cells are read as wall clock time in loc (UTC when nil).
func NewSource(path, sheet string, loc *time.Location) *Source {
	if loc == nil {
		loc = time.UTC
	}
	return &Source{path: path, sheet: sheet, location: loc}
}

// Fingerprint hashes the workbook file.
func (s *Source) Fingerprint(context.Context) (string, error) {
	return persistence.FingerprintFile(s.path)
}

// ReadTable reads the configured sheet.
func (s *Source) ReadTable(ctx context.Context) (persistence.Table, error) {
	if err := persistence.CheckFile(s.path); err != nil {
		return persistence.Table{}, err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return persistence.Table{}, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()
	return readSheet(ctx, f, s.sheet, s.location)
}

// Read parses a workbook from r.
func Read(ctx context.Context, r io.Reader, sheet string, loc *time.Location) (persistence.Table, error) {
	if loc == nil {
		loc = time.UTC
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return persistence.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readSheet(ctx, f, sheet, loc)
}

func readSheet(ctx context.Context, f *excelize.File, sheet string, loc *time.Location) (persistence.Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return persistence.Table{}, persistence.ErrEmptySource
		}
		sheet = sheets[0]
	}

	formatted, err := f.GetRows(sheet)
	if err != nil {
		return persistence.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return persistence.Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(formatted) == 0 || len(formatted[0]) == 0 {
		return persistence.Table{}, persistence.ErrEmptySource
	}

	table := persistence.Table{Header: formatted[0]}
	for r := 1; r < len(formatted); r++ {
		if err := ctx.Err(); err != nil {
			return persistence.Table{}, err
		}
		if blankRow(formatted[r]) {
			continue
		}
		row := make(persistence.Row, len(table.Header))
		for c := range row {
			text := cellAt(formatted[r], c)
			if text == "" {
				continue
			}
			row[c] = text
			if rawText := cellAt(cellRow(raw, r), c); rawText != text {
				if t, ok := dateCell(f, sheet, c, r, rawText, loc); ok {
					row[c] = t
				}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// dateCell converts a serial number to a time when the cell carries a date
// number format. The serial is rebased onto loc keeping the wall clock.
func dateCell(f *excelize.File, sheet string, col, row int, rawText string, loc *time.Location) (time.Time, bool) {
	serial, err := strconv.ParseFloat(rawText, 64)
	if err != nil {
		return time.Time{}, false
	}
	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return time.Time{}, false
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return time.Time{}, false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || !isDateStyle(style) {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, false
	}
	t = t.Round(time.Second)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc), true
}

func isDateStyle(style *excelize.Style) bool {
	if style == nil {
		return false
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 22, n >= 27 && n <= 36, n >= 45 && n <= 47, n >= 50 && n <= 58:
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}
	return isDateFormatCode(*style.CustomNumFmt)
}

// isDateFormatCode looks for date or time tokens outside quoted literals and
// bracketed sections.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(code) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	return strings.ContainsAny(b.String(), "ydhm")
}

func cellRow(rows [][]string, i int) []string {
	if i < len(rows) {
		return rows[i]
	}
	return nil
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
