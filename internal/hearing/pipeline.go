package hearing

import (
	"cmp"
	"slices"
)

// Apply returns the records matching c, ordered by numeric room and then
// timestamp. Records without a numeric room come last. The sort is stable and
// records is never modified.
func Apply(records []Record, c Criteria) []Record {
	preds := c.predicates()
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if c.matches(r, preds) {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, compareRecords)
	return out
}

func compareRecords(a, b Record) int {
	if a.HasRoomNumber != b.HasRoomNumber {
		if a.HasRoomNumber {
			return -1
		}
		return 1
	}
	if a.HasRoomNumber {
		if n := cmp.Compare(a.RoomNumber, b.RoomNumber); n != 0 {
			return n
		}
	}
	return a.At.Compare(b.At)
}
