// Package csvfile reads and writes hearing tables as UTF-8 CSV.
package csvfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/example/hearing-board/internal/persistence"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Source reads a CSV file whose first record is the header.
type Source struct {
	path  string
	comma rune
}

// NewSource returns a source for path. A zero comma means ','.
func NewSource(path string, comma rune) *Source {
	if comma == 0 {
		comma = ','
	}
	return &Source{path: path, comma: comma}
}

// Fingerprint hashes the CSV file.
func (s *Source) Fingerprint(context.Context) (string, error) {
	return persistence.FingerprintFile(s.path)
}

// ReadTable reads the whole file.
func (s *Source) ReadTable(ctx context.Context) (persistence.Table, error) {
	if err := persistence.CheckFile(s.path); err != nil {
		return persistence.Table{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return persistence.Table{}, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()
	return Read(ctx, f, s.comma)
}

// Read parses CSV from r. Empty cells become nil; a leading byte order mark
// is dropped.
func Read(ctx context.Context, r io.Reader, comma rune) (persistence.Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && bytes.Equal(head, bom) {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	if comma != 0 {
		cr.Comma = comma
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return persistence.Table{}, persistence.ErrEmptySource
	}
	if err != nil {
		return persistence.Table{}, fmt.Errorf("read header: %w", err)
	}

	table := persistence.Table{Header: header}
	for {
		if err := ctx.Err(); err != nil {
			return persistence.Table{}, err
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return persistence.Table{}, fmt.Errorf("read record: %w", err)
		}
		row := make(persistence.Row, len(record))
		blank := true
		for i, cell := range record {
			if cell == "" {
				continue
			}
			row[i] = cell
			if strings.TrimSpace(cell) != "" {
				blank = false
			}
		}
		if !blank {
			table.Rows = append(table.Rows, row)
		}
	}
	return table, nil
}

// Writer emits a table as CSV prefixed with a byte order mark so spreadsheet
// applications detect UTF-8.
type Writer struct {
	w     io.Writer
	comma rune
}

// NewWriter returns a CSV writer. A zero comma means ','.
func NewWriter(w io.Writer, comma rune) *Writer {
	if comma == 0 {
		comma = ','
	}
	return &Writer{w: w, comma: comma}
}

// WriteTable writes the header and every row. time.Time cells are written as
// persistence.TimestampLayout in their own location.
func (w *Writer) WriteTable(ctx context.Context, table persistence.Table) error {
	if _, err := w.w.Write(bom); err != nil {
		return err
	}
	cw := csv.NewWriter(w.w)
	cw.Comma = w.comma

	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(table.Header))
	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range record {
			record[i] = cellString(row.At(i))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func cellString(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(persistence.TimestampLayout)
	}
	return persistence.CellText(v)
}
