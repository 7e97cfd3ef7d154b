// Package sources picks the table reader for a hearing file.
package sources

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/csvfile"
	"github.com/example/hearing-board/internal/persistence/sqlite"
	"github.com/example/hearing-board/internal/persistence/xlsx"
)

// Options tune the reader chosen by Open.
type Options struct {
	// Sheet selects the workbook sheet; empty means the first one.
	Sheet string
	// Table names the SQLite table.
	Table string
	// Comma is the CSV separator; zero means ','.
	Comma rune
	// Location is the zone for spreadsheet date cells.
	Location *time.Location
}

// Kind names a supported source format.
type Kind string

const (
	KindXLSX   Kind = "xlsx"
	KindCSV    Kind = "csv"
	KindSQLite Kind = "sqlite"
)

// KindOf maps a file extension to its source kind.
func KindOf(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return KindXLSX, nil
	case ".csv":
		return KindCSV, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s", persistence.ErrUnsupportedSource, path)
	}
}

// Open returns the table source for path selected by its extension.
func Open(path string, opts Options) (persistence.TableSource, error) {
	kind, err := KindOf(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindCSV:
		return csvfile.NewSource(path, opts.Comma), nil
	case KindSQLite:
		src, err := sqlite.NewSource(sqlite.Config{DSN: path, Table: opts.Table, MaxRetries: 3})
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return xlsx.NewSource(path, opts.Sheet, opts.Location), nil
	}
}
