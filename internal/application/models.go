package application

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/example/hearing-board/internal/hearing"
)

// FilterInput carries filter values exactly as a caller typed them. Dates use
// YYYY-MM-DD, times HH:MM or HH:MM:SS and room an integer or "all".
type FilterInput struct {
	DateFrom   string
	DateTo     string
	TimeFrom   string
	TimeTo     string
	Room       string
	Judge      string
	CaseNumber string
	Party      string
}

// Snapshot describes one loaded dataset.
type Snapshot struct {
	ID          string
	Fingerprint string
	LoadedAt    time.Time
	Dataset     *hearing.Dataset
}

// ReloadResult reports what a reload did.
type ReloadResult struct {
	Snapshot Snapshot
	Stats    hearing.LoadStats
	// Changed is false when the source fingerprint matched the loaded snapshot.
	Changed bool
}

// SearchResult is the filtered view returned by Search.
type SearchResult struct {
	SnapshotID string
	Criteria   hearing.Criteria
	Records    []hearing.Record
}

// Count is the number of matching hearings.
func (r SearchResult) Count() int { return len(r.Records) }

// FilterOptions lists the values a caller can choose from.
type FilterOptions struct {
	SnapshotID string
	Rooms      []int
	Judges     []string
	DateFrom   civil.Date
	DateTo     civil.Date
	HasDates   bool
	TimeFrom   civil.Time
	TimeTo     civil.Time
	Stats      hearing.LoadStats
}

// ExportResult describes a written export.
type ExportResult struct {
	SnapshotID  string
	Count       int
	FileName    string
	ContentType string
}
