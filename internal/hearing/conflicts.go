package hearing

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ConflictType describes what two or more hearings share at the same instant.
type ConflictType string

const (
	// ConflictTypeRoom indicates a numbered room is double-booked.
	ConflictTypeRoom ConflictType = "room"
	// ConflictTypeJudge indicates a judge is scheduled twice.
	ConflictTypeJudge ConflictType = "judge"
)

// Conflict groups the hearings that collide on one room or judge.
type Conflict struct {
	Type        ConflictType
	Key         string
	At          time.Time
	CaseNumbers []string
}

// DetectConflicts reports hearings booked at the same instant in the same
// numbered room or before the same judge. Rooms without a number are never
// considered double-booked. Results are ordered by time, type and key.
func DetectConflicts(records []Record) []Conflict {
	type slot struct {
		kind ConflictType
		key  string
		at   int64
	}

	groups := make(map[slot]*Conflict)
	add := func(kind ConflictType, key string, r Record) {
		s := slot{kind: kind, key: key, at: r.At.UnixNano()}
		c, ok := groups[s]
		if !ok {
			c = &Conflict{Type: kind, Key: key, At: r.At}
			groups[s] = c
		}
		c.CaseNumbers = append(c.CaseNumbers, r.CaseNumber)
	}

	for _, r := range records {
		if r.HasRoomNumber {
			add(ConflictTypeRoom, strconv.FormatFloat(r.RoomNumber, 'f', -1, 64), r)
		}
		if judge := strings.TrimSpace(r.Judge); judge != "" {
			add(ConflictTypeJudge, judge, r)
		}
	}

	out := make([]Conflict, 0)
	for _, c := range groups {
		if len(c.CaseNumbers) > 1 {
			out = append(out, *c)
		}
	}
	slices.SortFunc(out, func(a, b Conflict) int {
		return cmp.Or(
			a.At.Compare(b.At),
			cmp.Compare(a.Type, b.Type),
			cmp.Compare(a.Key, b.Key),
		)
	})
	return out
}
