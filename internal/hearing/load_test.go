package hearing

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/persistence"
)

func TestLoad_DropsBlankAndUnparseableRows(t *testing.T) {
	t.Parallel()

	ds, err := Load(sampleTable(), DefaultColumns(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats := ds.Stats()
	want := LoadStats{Rows: 7, Loaded: 5, BlankDate: 1, Unparseable: 1}
	if stats != want {
		t.Fatalf("expected stats %+v, got %+v", want, stats)
	}
	if stats.Dropped() != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", stats.Dropped())
	}

	got := caseNumbers(ds.Records())
	wantCases := []string{"2025-001", "2025-002", "2025-003", "2025-004", "2025-007"}
	if !reflect.DeepEqual(got, wantCases) {
		t.Fatalf("expected source order %v, got %v", wantCases, got)
	}
}

func TestLoad_DerivesDateClockAndRoom(t *testing.T) {
	t.Parallel()

	records := mustLoad(sampleTable()).Records()

	first := records[0]
	if first.Date != (civil.Date{Year: 2026, Month: time.January, Day: 21}) {
		t.Fatalf("unexpected date %v", first.Date)
	}
	if first.Clock != (civil.Time{Hour: 14}) {
		t.Fatalf("unexpected clock %v", first.Clock)
	}
	if !first.HasRoomNumber || first.RoomNumber != 3 {
		t.Fatalf("expected numeric room 3, got %v %v", first.RoomNumber, first.HasRoomNumber)
	}

	virtual := records[2]
	if virtual.HasRoomNumber {
		t.Fatalf("expected non-numeric room for %q", virtual.Room)
	}
	if _, ok := virtual.RawDateTime.(time.Time); !ok {
		t.Fatalf("expected native timestamp to be kept as raw value, got %T", virtual.RawDateTime)
	}

	numericCell := records[3]
	if numericCell.Room != "3" || numericCell.RoomNumber != 3 {
		t.Fatalf("expected float cell rendered as 3, got %q", numericCell.Room)
	}

	decimal := records[4]
	if !decimal.HasRoomNumber || decimal.RoomNumber != 2 {
		t.Fatalf("expected 2.0 to parse as room 2, got %v", decimal.RoomNumber)
	}
	if decimal.At.Month() != time.September {
		t.Fatalf("expected setiembre to resolve to September, got %v", decimal.At)
	}
}

func TestLoad_UsesParserLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("COT", -5*60*60)
	ds, err := Load(sampleTable(), DefaultColumns(), dateparser.New(loc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ds.Records()[0].At.Location(); got != loc {
		t.Fatalf("expected location %v, got %v", loc, got)
	}
}

func TestLoad_MissingColumnsAreAggregated(t *testing.T) {
	t.Parallel()

	table := persistence.Table{
		Header: []string{"Radicado", "Demandante", "Fecha y hora Audiencia"},
		Rows:   []persistence.Row{{"1", "a", "21 de enero de 2026 2:00 pm"}},
	}

	_, err := Load(table, DefaultColumns(), nil)
	if !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	wantFields := []Field{FieldDefendant, FieldRoom, FieldJudge}
	if !reflect.DeepEqual(missing.Fields, wantFields) {
		t.Fatalf("expected missing %v, got %v", wantFields, missing.Fields)
	}
	wantMsg := "hearing: missing required columns: Demandado, Sala Audiencia, Juez"
	if err.Error() != wantMsg {
		t.Fatalf("expected message %q, got %q", wantMsg, err.Error())
	}
}

func TestLoad_CustomColumns(t *testing.T) {
	t.Parallel()

	table := persistence.Table{
		Header: []string{"Fecha", "Proceso", "Actor", "Accionado", "Sala", "Despacho"},
		Rows: []persistence.Row{
			{"2 de febrero de 2026 3:00 pm", "77", "X", "Y", "4", "Juez Z"},
		},
	}
	cols := Columns{DateTime: "Fecha", Case: "Proceso", Plaintiff: "Actor", Defendant: "Accionado", Room: "Sala", Judge: "Despacho"}

	ds, err := Load(table, cols, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Len() != 1 || ds.Records()[0].CaseNumber != "77" {
		t.Fatalf("expected one record for case 77, got %+v", ds.Records())
	}
	if ds.Columns().Room != "Sala" {
		t.Fatalf("expected dataset to keep custom columns, got %+v", ds.Columns())
	}
}

func TestLoad_ShortRowsTreatMissingCellsAsBlank(t *testing.T) {
	t.Parallel()

	table := persistence.Table{
		Header: sampleHeader(),
		Rows: []persistence.Row{
			{"2025-010", "Solo demandante"},
			{"2025-011", nil, nil, "3 de marzo de 2026 10:00 am"},
		},
	}
	ds := mustLoad(table)
	if ds.Stats().BlankDate != 1 || ds.Len() != 1 {
		t.Fatalf("unexpected stats %+v", ds.Stats())
	}
	r := ds.Records()[0]
	if r.Plaintiff != "" || r.Room != "" || r.HasRoomNumber {
		t.Fatalf("expected empty optional fields, got %+v", r)
	}
}
