package hearing

import (
	"strings"

	"cloud.google.com/go/civil"
)

// AllJudges selects every judge.
const AllJudges = "all"

// EndOfDay is the inclusive upper bound of a full day.
var EndOfDay = civil.Time{Hour: 23, Minute: 59, Second: 59, Nanosecond: 999999999}

// Criteria narrows a working set. The zero value matches everything: zero
// dates leave that side of the range open, a nil TimeTo means end of day,
// a nil Room means all rooms and an empty Judge, CaseNumber or Party is
// ignored. TimeFrom needs no marker since 00:00 is already the lowest bound.
type Criteria struct {
	DateFrom civil.Date
	DateTo   civil.Date
	TimeFrom civil.Time
	TimeTo   *civil.Time

	Room       *int
	Judge      string
	CaseNumber string
	Party      string
}

// RoomPtr is a convenience for building criteria literals.
func RoomPtr(n int) *int { return &n }

// ClockPtr is a convenience for building criteria literals.
func ClockPtr(t civil.Time) *civil.Time { return &t }

// UpperTime is the inclusive time-of-day upper bound.
func (c Criteria) UpperTime() civil.Time {
	if c.TimeTo == nil {
		return EndOfDay
	}
	return *c.TimeTo
}

type predicate func(Record) bool

func (c Criteria) predicates() []predicate {
	preds := []predicate{c.inDateRange, c.inTimeRange}

	if c.Room != nil {
		want := float64(*c.Room)
		preds = append(preds, func(r Record) bool {
			return r.HasRoomNumber && r.RoomNumber == want
		})
	}

	if judge := strings.TrimSpace(c.Judge); !isAllJudges(judge) {
		preds = append(preds, func(r Record) bool {
			return strings.TrimSpace(r.Judge) == judge
		})
	}

	if needle := strings.ToLower(c.CaseNumber); needle != "" {
		preds = append(preds, func(r Record) bool {
			return strings.Contains(strings.ToLower(r.CaseNumber), needle)
		})
	}

	if needle := strings.ToLower(c.Party); needle != "" {
		preds = append(preds, func(r Record) bool {
			return strings.Contains(strings.ToLower(r.Plaintiff), needle) ||
				strings.Contains(strings.ToLower(r.Defendant), needle)
		})
	}

	return preds
}

func (c Criteria) inDateRange(r Record) bool {
	if c.DateFrom != (civil.Date{}) && r.Date.Before(c.DateFrom) {
		return false
	}
	if c.DateTo != (civil.Date{}) && r.Date.After(c.DateTo) {
		return false
	}
	return true
}

func (c Criteria) inTimeRange(r Record) bool {
	return !r.Clock.Before(c.TimeFrom) && !r.Clock.After(c.UpperTime())
}

func (c Criteria) matches(r Record, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func isAllJudges(judge string) bool {
	switch strings.ToLower(judge) {
	case "", AllJudges, "todos":
		return true
	}
	return false
}
