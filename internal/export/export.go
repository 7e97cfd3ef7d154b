// Package export re-emits filtered hearings as spreadsheet byte streams using
// the original column values in display order.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/csvfile"
	"github.com/example/hearing-board/internal/persistence/xlsx"
)

// ErrNoRows is returned when there is nothing to export.
var ErrNoRows = errors.New("export: no rows to export")

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format selects the output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts "xlsx" or "csv"; empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatXLSX):
		return FormatXLSX, nil
	case string(FormatCSV):
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FileName is the attachment name for an export in f.
func (f Format) FileName() string {
	return "audiencias_filtradas." + string(f)
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Table builds the export table: configured headers in display order and the
// original cell values of every record.
func Table(cols hearing.Columns, records []hearing.Record) persistence.Table {
	table := persistence.Table{
		Header: cols.WithDefaults().DisplayHeaders(),
		Rows:   make([]persistence.Row, 0, len(records)),
	}
	for _, r := range records {
		table.Rows = append(table.Rows, persistence.Row(r.Values()))
	}
	return table
}

// Write encodes records in format f.
func Write(ctx context.Context, w io.Writer, f Format, cols hearing.Columns, records []hearing.Record) error {
	if len(records) == 0 {
		return ErrNoRows
	}
	var tw persistence.TableWriter
	switch f {
	case FormatCSV:
		tw = csvfile.NewWriter(w, 0)
	case FormatXLSX, "":
		tw = xlsx.NewWriter(w, xlsx.DefaultSheet)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return tw.WriteTable(ctx, Table(cols, records))
}

// WriteXLSX writes records to a single-sheet workbook named "Resultados".
func WriteXLSX(ctx context.Context, w io.Writer, cols hearing.Columns, records []hearing.Record) error {
	return Write(ctx, w, FormatXLSX, cols, records)
}

// WriteCSV writes records as CSV.
func WriteCSV(ctx context.Context, w io.Writer, cols hearing.Columns, records []hearing.Record) error {
	return Write(ctx, w, FormatCSV, cols, records)
}
