package hearing

import (
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestDataset_Options(t *testing.T) {
	t.Parallel()

	ds := mustLoad(sampleTable())

	if got, want := ds.Rooms(), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected rooms %v, got %v", want, got)
	}
	if got, want := ds.Judges(), []string{"Juez Gómez", "Juez Ruiz"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected judges %v, got %v", want, got)
	}

	from, to, ok := ds.DateSpan()
	if !ok {
		t.Fatalf("expected a date span")
	}
	if from != (civil.Date{Year: 2026, Month: time.January, Day: 21}) || to != (civil.Date{Year: 2026, Month: time.September, Day: 23}) {
		t.Fatalf("unexpected span %v - %v", from, to)
	}
}

func TestDataset_DefaultCriteriaMatchesEverything(t *testing.T) {
	t.Parallel()

	ds := mustLoad(sampleTable())
	c := ds.DefaultCriteria()
	if c.TimeFrom != (civil.Time{}) || c.TimeTo == nil || *c.TimeTo != EndOfDay {
		t.Fatalf("unexpected time bounds %v - %v", c.TimeFrom, c.UpperTime())
	}
	if got := ds.Filter(c).Count(); got != ds.Len() {
		t.Fatalf("expected default criteria to keep %d records, got %d", ds.Len(), got)
	}
}

func TestDataset_Empty(t *testing.T) {
	t.Parallel()

	ds := NewDataset(nil, Columns{})
	if _, _, ok := ds.DateSpan(); ok {
		t.Fatalf("expected no span for empty dataset")
	}
	if res := ds.Filter(ds.DefaultCriteria()); !res.Empty() {
		t.Fatalf("expected empty result")
	}
	if ds.Columns() != DefaultColumns() {
		t.Fatalf("expected default columns, got %+v", ds.Columns())
	}
}

func TestDataset_RecordsReturnsCopy(t *testing.T) {
	t.Parallel()

	ds := mustLoad(sampleTable())
	recs := ds.Records()
	recs[0].CaseNumber = "changed"
	if ds.Records()[0].CaseNumber == "changed" {
		t.Fatalf("dataset records were mutated through the returned slice")
	}
}

func TestColumns_DisplayHeaders(t *testing.T) {
	t.Parallel()

	want := []string{"Radicado", "Demandante", "Demandado", "Fecha y hora Audiencia", "Sala Audiencia", "Juez"}
	if got := DefaultColumns().DisplayHeaders(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	partial := Columns{Room: "Sala"}.WithDefaults()
	if partial.Room != "Sala" || partial.Judge != "Juez" {
		t.Fatalf("unexpected defaults %+v", partial)
	}
}
