package hearing

import (
	"time"

	"cloud.google.com/go/civil"
)

// Record is one scheduled hearing with its derived date/time attributes.
type Record struct {
	CaseNumber string
	Plaintiff  string
	Defendant  string
	// RawDateTime is the source cell as read: a time.Time or text.
	RawDateTime any
	Room        string
	Judge       string

	At            time.Time
	Date          civil.Date
	Clock         civil.Time
	RoomNumber    float64
	HasRoomNumber bool
}

// Values returns the original field values in display order.
func (r Record) Values() []any {
	return []any{r.CaseNumber, r.Plaintiff, r.Defendant, r.RawDateTime, r.Room, r.Judge}
}
