package export

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/csvfile"
	"github.com/example/hearing-board/internal/persistence/xlsx"
)

func sampleDataset(t *testing.T) *hearing.Dataset {
	t.Helper()

	table := persistence.Table{
		Header: hearing.DefaultColumns().DisplayHeaders(),
		Rows: []persistence.Row{
			{"2025-001", "Ana Pérez", "Banco Andino", "21 de enero de 2026 2:00 pm", "3", "Juez Gómez"},
			{"2025-002", "Luis Mora", "Constructora Sur", time.Date(2026, time.January, 21, 9, 0, 0, 0, time.UTC), "1", "Juez Ruiz"},
			{"2025-003", "Carla Díaz", "", "22 de enero de 2026 10:30 am", "Virtual", "Juez Gómez"},
		},
	}
	ds, err := hearing.Load(table, hearing.DefaultColumns(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ds
}

func displayValues(records []hearing.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, 6)
		for _, v := range r.Values() {
			if tv, ok := v.(time.Time); ok {
				row = append(row, tv.Format(persistence.TimestampLayout))
				continue
			}
			row = append(row, persistence.CellText(v))
		}
		out = append(out, row)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	ds := sampleDataset(t)
	filtered := ds.Filter(hearing.Criteria{}).Records

	for _, format := range []Format{FormatXLSX, FormatCSV} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := Write(context.Background(), &buf, format, ds.Columns(), filtered); err != nil {
				t.Fatalf("Write: %v", err)
			}

			var table persistence.Table
			var err error
			if format == FormatCSV {
				table, err = csvfile.Read(context.Background(), &buf, 0)
			} else {
				table, err = xlsx.Read(context.Background(), &buf, xlsx.DefaultSheet, time.UTC)
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(table.Header, ds.Columns().DisplayHeaders()) {
				t.Fatalf("unexpected header %v", table.Header)
			}

			reloaded, err := hearing.Load(table, ds.Columns(), nil)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			got := displayValues(reloaded.Records())
			want := displayValues(filtered)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch\nwant %v\ngot  %v", want, got)
			}
		})
	}
}

func TestWrite_EmptyIsRejected(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteXLSX(context.Background(), &buf, hearing.DefaultColumns(), nil); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if err := WriteCSV(context.Background(), &buf, hearing.DefaultColumns(), []hearing.Record{}); !errors.Is(err, ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestTable_UsesDisplayOrder(t *testing.T) {
	t.Parallel()

	cols := hearing.Columns{Case: "Proceso"}
	rec := hearing.Record{CaseNumber: "1", Plaintiff: "p", Defendant: "d", RawDateTime: "raw", Room: "2", Judge: "j"}
	table := Table(cols, []hearing.Record{rec})

	if table.Header[0] != "Proceso" || table.Header[3] != "Fecha y hora Audiencia" {
		t.Fatalf("unexpected header %v", table.Header)
	}
	want := persistence.Row{"1", "p", "d", "raw", "2", "j"}
	if !reflect.DeepEqual(table.Rows[0], want) {
		t.Fatalf("expected %v, got %v", want, table.Rows[0])
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Format{"": FormatXLSX, "XLSX": FormatXLSX, " csv ": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if FormatCSV.FileName() != "audiencias_filtradas.csv" {
		t.Fatalf("unexpected file name %q", FormatCSV.FileName())
	}
}
