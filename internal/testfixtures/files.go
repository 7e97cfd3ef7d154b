package testfixtures

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/csvfile"
	"github.com/example/hearing-board/internal/persistence/xlsx"
)

// WriteXLSXFile writes table to a workbook in a temporary directory and
// returns its path.
func WriteXLSXFile(tb testing.TB, table persistence.Table) string {
	tb.Helper()
	return writeFile(tb, "audiencias.xlsx", func(f *os.File) error {
		return xlsx.NewWriter(f, "Audiencias").WriteTable(context.Background(), table)
	})
}

// WriteCSVFile writes table as CSV in a temporary directory and returns its
// path.
func WriteCSVFile(tb testing.TB, table persistence.Table) string {
	tb.Helper()
	return writeFile(tb, "audiencias.csv", func(f *os.File) error {
		return csvfile.NewWriter(f, 0).WriteTable(context.Background(), table)
	})
}

func writeFile(tb testing.TB, name string, write func(*os.File) error) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create %s: %v", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		tb.Fatalf("write %s: %v", name, err)
	}
	if err := f.Close(); err != nil {
		tb.Fatalf("close %s: %v", name, err)
	}
	return path
}

// NewSQLiteHearingDB creates a database file holding table in the
// "audiencias" table and returns its path. Every column is TEXT; native
// timestamps are stored in persistence.TimestampLayout.
func NewSQLiteHearingDB(tb testing.TB, table persistence.Table) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "audiencias.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	columns := make([]string, len(table.Header))
	marks := make([]string, len(table.Header))
	for i, h := range table.Header {
		columns[i] = fmt.Sprintf("%q TEXT", h)
		marks[i] = "?"
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE audiencias (%s)", strings.Join(columns, ", "))); err != nil {
		tb.Fatalf("create table: %v", err)
	}

	insert := fmt.Sprintf("INSERT INTO audiencias VALUES (%s)", strings.Join(marks, ", "))
	for _, row := range table.Rows {
		args := make([]any, len(table.Header))
		for i := range args {
			switch v := row.At(i).(type) {
			case nil:
				args[i] = nil
			case time.Time:
				args[i] = v.Format(persistence.TimestampLayout)
			default:
				args[i] = persistence.CellText(v)
			}
		}
		if _, err := db.Exec(insert, args...); err != nil {
			tb.Fatalf("insert row: %v", err)
		}
	}
	return path
}
