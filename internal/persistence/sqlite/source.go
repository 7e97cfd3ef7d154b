// Package sqlite reads the hearing table from a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/example/hearing-board/internal/persistence"
)

// ErrInvalidTable is returned for table names that are not plain identifiers.
var ErrInvalidTable = errors.New("sqlite: invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Source is a persistence.TableSource over one database table.
type Source struct {
	cfg Config
}

// NewSource validates cfg and returns a source. The file is opened on every
// read so a replaced file is picked up by the next reload.
func NewSource(cfg Config) (*Source, error) {
	cfg = cfg.withDefaults()
	if !identifier.MatchString(cfg.Table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, cfg.Table)
	}
	return &Source{cfg: cfg}, nil
}

// Fingerprint hashes the database file.
func (s *Source) Fingerprint(context.Context) (string, error) {
	return persistence.FingerprintFile(s.cfg.DSN)
}

// ReadTable returns every row of the configured table. Columns declared as
// DATE, DATETIME or TIMESTAMP arrive as time.Time.
func (s *Source) ReadTable(ctx context.Context) (persistence.Table, error) {
	if err := persistence.CheckFile(s.cfg.DSN); err != nil {
		return persistence.Table{}, err
	}

	db, err := openDB(ctx, s.cfg)
	if err != nil {
		return persistence.Table{}, err
	}
	defer db.Close()

	var table persistence.Table
	err = withRetry(ctx, s.cfg.MaxRetries, func() error {
		return withReadOnlyTransaction(ctx, db, func(tx *sql.Tx) error {
			var qErr error
			table, qErr = queryTable(ctx, tx, s.cfg.Table)
			return qErr
		})
	})
	if err != nil {
		return persistence.Table{}, err
	}
	return table, nil
}

func queryTable(ctx context.Context, tx *sql.Tx, name string) (persistence.Table, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s"`, name))
	if err != nil {
		return persistence.Table{}, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return persistence.Table{}, fmt.Errorf("columns of %s: %w", name, err)
	}
	if len(header) == 0 {
		return persistence.Table{}, persistence.ErrEmptySource
	}

	table := persistence.Table{Header: header}
	for rows.Next() {
		cells := make([]any, len(header))
		ptrs := make([]any, len(header))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return persistence.Table{}, fmt.Errorf("scan %s: %w", name, err)
		}
		table.Rows = append(table.Rows, normalizeRow(cells))
	}
	if err := rows.Err(); err != nil {
		return persistence.Table{}, fmt.Errorf("iterate %s: %w", name, err)
	}
	return table, nil
}

func normalizeRow(cells []any) persistence.Row {
	row := make(persistence.Row, len(cells))
	for i, v := range cells {
		if b, ok := v.([]byte); ok {
			row[i] = string(b)
			continue
		}
		row[i] = v
	}
	return row
}
