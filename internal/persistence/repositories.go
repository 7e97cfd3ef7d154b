package persistence

import "context"

// TableSource reads the complete hearing table from its backing file.
type TableSource interface {
	ReadTable(ctx context.Context) (Table, error)
	Fingerprint(ctx context.Context) (string, error)
}

// TableWriter emits a table as a spreadsheet byte stream.
type TableWriter interface {
	WriteTable(ctx context.Context, table Table) error
}
