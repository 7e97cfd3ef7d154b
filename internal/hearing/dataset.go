package hearing

import (
	"math"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
)

// Dataset is an immutable working set produced by Load.
type Dataset struct {
	records []Record
	columns Columns
	stats   LoadStats
}

func newDataset(records []Record, cols Columns, stats LoadStats) *Dataset {
	return &Dataset{records: records, columns: cols, stats: stats}
}

// NewDataset wraps already derived records, for callers that build records
// without a tabular source.
func NewDataset(records []Record, cols Columns) *Dataset {
	return newDataset(slices.Clone(records), cols.WithDefaults(), LoadStats{Rows: len(records), Loaded: len(records)})
}

// Records returns a copy of the working set in source order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return slices.Clone(d.records)
}

// Len reports the size of the working set.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Columns returns the header names the dataset was loaded with.
func (d *Dataset) Columns() Columns {
	if d == nil {
		return DefaultColumns()
	}
	return d.columns
}

// Stats returns the load summary.
func (d *Dataset) Stats() LoadStats {
	if d == nil {
		return LoadStats{}
	}
	return d.stats
}

// DateSpan returns the earliest and latest calendar date. ok is false for an
// empty dataset.
func (d *Dataset) DateSpan() (from, to civil.Date, ok bool) {
	if d.Len() == 0 {
		return civil.Date{}, civil.Date{}, false
	}
	from, to = d.records[0].Date, d.records[0].Date
	for _, r := range d.records[1:] {
		if r.Date.Before(from) {
			from = r.Date
		}
		if r.Date.After(to) {
			to = r.Date
		}
	}
	return from, to, true
}

// Rooms returns the distinct integral room numbers in ascending order.
func (d *Dataset) Rooms() []int {
	if d == nil {
		return nil
	}
	seen := make(map[int]struct{})
	var rooms []int
	for _, r := range d.records {
		if !r.HasRoomNumber || r.RoomNumber != math.Trunc(r.RoomNumber) {
			continue
		}
		n := int(r.RoomNumber)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		rooms = append(rooms, n)
	}
	slices.Sort(rooms)
	return rooms
}

// Judges returns the distinct trimmed non-empty judge names, sorted.
func (d *Dataset) Judges() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var judges []string
	for _, r := range d.records {
		name := strings.TrimSpace(r.Judge)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		judges = append(judges, name)
	}
	slices.Sort(judges)
	return judges
}

// DefaultCriteria bounds the date range by the observed span and the time
// range by the full day.
func (d *Dataset) DefaultCriteria() Criteria {
	from, to, _ := d.DateSpan()
	return Criteria{DateFrom: from, DateTo: to, TimeTo: ClockPtr(EndOfDay)}
}

// Result is a filtered, ordered view of a dataset.
type Result struct {
	Records []Record
}

// Count is the number of records in the view.
func (r Result) Count() int { return len(r.Records) }

// Empty reports whether nothing matched.
func (r Result) Empty() bool { return len(r.Records) == 0 }

// Filter applies c to the working set.
func (d *Dataset) Filter(c Criteria) Result {
	if d == nil {
		return Result{Records: []Record{}}
	}
	return Result{Records: Apply(d.records, c)}
}
