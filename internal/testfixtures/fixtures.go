package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
)

var hearingCounter uint64

var referenceTime = time.Date(2026, time.January, 20, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// HearingFixture is one source row before loading. DateTime and Room hold the
// raw cell values, so tests can feed native timestamps, numbers or text.
type HearingFixture struct {
	CaseNumber string
	Plaintiff  string
	Defendant  string
	DateTime   any
	Room       any
	Judge      string
}

// HearingOption configures the generated hearing fixture.
type HearingOption func(*HearingFixture)

// NewHearingFixture returns a deterministic hearing with optional overrides.
// Each call schedules the hearing one hour after the previous one, in rooms
// 1 to 3 in turn.
func NewHearingFixture(opts ...HearingOption) HearingFixture {
	idx := atomic.AddUint64(&hearingCounter, 1)
	fixture := HearingFixture{
		CaseNumber: fmt.Sprintf("11001-31-03-%05d", idx),
		Plaintiff:  fmt.Sprintf("Demandante %03d", idx),
		Defendant:  fmt.Sprintf("Demandado %03d", idx),
		DateTime:   dateparser.Format(referenceTime.Add(time.Duration(idx) * time.Hour)),
		Room:       fmt.Sprintf("%d", idx%3+1),
		Judge:      "Juez Primero Civil",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithCaseNumber overrides the case number.
func WithCaseNumber(caseNumber string) HearingOption {
	return func(f *HearingFixture) { f.CaseNumber = caseNumber }
}

// WithParties overrides plaintiff and defendant.
func WithParties(plaintiff, defendant string) HearingOption {
	return func(f *HearingFixture) {
		f.Plaintiff = plaintiff
		f.Defendant = defendant
	}
}

// WithDateTime overrides the raw date/time cell.
func WithDateTime(value any) HearingOption {
	return func(f *HearingFixture) { f.DateTime = value }
}

// WithRoom overrides the raw room cell.
func WithRoom(value any) HearingOption {
	return func(f *HearingFixture) { f.Room = value }
}

// WithJudge overrides the judge.
func WithJudge(judge string) HearingOption {
	return func(f *HearingFixture) { f.Judge = judge }
}

// Row returns the fixture as a source row in HearingHeader order.
func (f HearingFixture) Row() persistence.Row {
	return persistence.Row{f.CaseNumber, f.Plaintiff, f.Defendant, f.DateTime, f.Room, f.Judge}
}

// HearingHeader returns the default header names in display order.
func HearingHeader() []string {
	return hearing.DefaultColumns().DisplayHeaders()
}

// HearingTable builds a table with the default header.
func HearingTable(fixtures ...HearingFixture) persistence.Table {
	table := persistence.Table{Header: HearingHeader()}
	for _, f := range fixtures {
		table.Rows = append(table.Rows, f.Row())
	}
	return table
}

// SampleHearings returns a fixed board: five usable hearings over two days and
// two rows that are dropped at load (blank and unparseable date).
func SampleHearings() []HearingFixture {
	return []HearingFixture{
		{"2025-00101", "Ana Pérez", "Banco Andino S.A.", "21 de enero de 2026 2:00 pm", "3", "Juez Gómez"},
		{"2025-00102", "Luis Mora", "Constructora Sur", "21 de enero de 2026 9:00 AM", "1", "Juez Ruiz"},
		{"2025-00103", "Carla Díaz", "Seguros Altos", time.Date(2026, time.January, 22, 10, 30, 0, 0, time.UTC), "Virtual", "Juez Gómez"},
		{"2025-00104", "Pedro Ríos", "Ana Pérez", "22 de enero de 2026 8:00 am", "3", "Juez Ruiz"},
		{"2025-00105", "Marta Gil", "Transportes Río", "", "2", "Juez Gómez"},
		{"2025-00106", "Jorge León", "Alimentos Sol", "por definir", "2", "Juez Gómez"},
		{"2025-00107", "Sofía Vega", "Banco Andino S.A.", "23 de setiembre de 2026 11:15 am", "2", "Juez Ruiz"},
	}
}

// SampleTable is HearingTable(SampleHearings()...).
func SampleTable() persistence.Table {
	return HearingTable(SampleHearings()...)
}
