package application_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/example/hearing-board/internal/application"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/csvfile"
	"github.com/example/hearing-board/internal/testfixtures"
)

func newLoadedService(t *testing.T, source *testfixtures.StaticSource) *application.HearingService {
	t.Helper()

	svc := testfixtures.NewServiceFactory().NewHearingService(testfixtures.HearingServiceDeps{Source: source})
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return svc
}

func caseNumbers(records []hearing.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.CaseNumber)
	}
	return out
}

func TestHearingService_Reload(t *testing.T) {
	t.Parallel()

	clock := testfixtures.NewClock(time.Time{})
	factory := testfixtures.NewServiceFactory(testfixtures.WithClock(clock))
	source := testfixtures.NewStaticSource(testfixtures.SampleTable())
	svc := factory.NewHearingService(testfixtures.HearingServiceDeps{Source: source})

	if _, err := svc.Current(); !errors.Is(err, application.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before reload, got %v", err)
	}

	result, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !result.Changed {
		t.Fatalf("expected first reload to report a change")
	}
	if result.Snapshot.ID != "snapshot-1" || result.Snapshot.Fingerprint != "static-1" {
		t.Fatalf("unexpected snapshot %+v", result.Snapshot)
	}
	if !result.Snapshot.LoadedAt.Equal(testfixtures.ReferenceTime()) {
		t.Fatalf("expected LoadedAt from the fixture clock, got %v", result.Snapshot.LoadedAt)
	}
	if result.Stats.Rows != 7 || result.Stats.Loaded != 5 || result.Stats.BlankDate != 1 || result.Stats.Unparseable != 1 {
		t.Fatalf("unexpected stats %+v", result.Stats)
	}
	if svc.Dataset().Len() != 5 {
		t.Fatalf("expected 5 records in the working set, got %d", svc.Dataset().Len())
	}
}

func TestHearingService_ReloadUnchangedKeepsSnapshot(t *testing.T) {
	t.Parallel()

	source := testfixtures.NewStaticSource(testfixtures.SampleTable())
	svc := newLoadedService(t, source)

	again, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Changed || again.Snapshot.ID != "snapshot-1" {
		t.Fatalf("expected unchanged snapshot, got %+v", again)
	}
	if source.Reads() != 1 {
		t.Fatalf("expected a single table read, got %d", source.Reads())
	}

	source.SetTable(testfixtures.HearingTable(testfixtures.NewHearingFixture()))
	changed, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !changed.Changed || changed.Snapshot.ID != "snapshot-2" || changed.Stats.Loaded != 1 {
		t.Fatalf("expected new snapshot, got %+v", changed)
	}
}

func TestHearingService_ReloadFailureKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	source := testfixtures.NewStaticSource(testfixtures.SampleTable())
	svc := newLoadedService(t, source)

	source.FailWith(persistence.ErrNotFound)
	if _, err := svc.Reload(context.Background()); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	current, err := svc.Current()
	if err != nil || current.ID != "snapshot-1" {
		t.Fatalf("expected previous snapshot to survive, got %+v, %v", current, err)
	}
}

func TestHearingService_ReloadMissingColumns(t *testing.T) {
	t.Parallel()

	table := persistence.Table{Header: []string{"Expediente", "Fecha"}, Rows: []persistence.Row{{"1", "21 de enero de 2026 2:00 pm"}}}
	svc := testfixtures.NewServiceFactory().NewHearingService(testfixtures.HearingServiceDeps{Source: testfixtures.NewStaticSource(table)})

	_, err := svc.Reload(context.Background())
	if !errors.Is(err, hearing.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if application.ErrorKind(err) != "missing_columns" {
		t.Fatalf("unexpected error kind %q", application.ErrorKind(err))
	}
}

func TestHearingService_Search(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	tests := []struct {
		name string
		in   application.FilterInput
		want []string
	}{
		{
			name: "defaults cover the whole dataset",
			want: []string{"2025-00102", "2025-00107", "2025-00101", "2025-00104", "2025-00103"},
		},
		{
			name: "room",
			in:   application.FilterInput{Room: "3"},
			want: []string{"2025-00101", "2025-00104"},
		},
		{
			name: "judge",
			in:   application.FilterInput{Judge: "Juez Ruiz"},
			want: []string{"2025-00102", "2025-00107", "2025-00104"},
		},
		{
			name: "date range",
			in:   application.FilterInput{DateFrom: "2026-01-22", DateTo: "2026-01-22"},
			want: []string{"2025-00104", "2025-00103"},
		},
		{
			name: "time window",
			in:   application.FilterInput{TimeFrom: "09:00", TimeTo: "11:00"},
			want: []string{"2025-00102", "2025-00103"},
		},
		{
			name: "party matches either side",
			in:   application.FilterInput{Party: "ana pérez"},
			want: []string{"2025-00101", "2025-00104"},
		},
		{
			name: "no match",
			in:   application.FilterInput{CaseNumber: "1999"},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := svc.Search(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("search: %v", err)
			}
			if got.SnapshotID != "snapshot-1" {
				t.Fatalf("unexpected snapshot id %q", got.SnapshotID)
			}
			if strings.Join(caseNumbers(got.Records), ",") != strings.Join(tc.want, ",") {
				t.Fatalf("expected %v, got %v", tc.want, caseNumbers(got.Records))
			}
		})
	}
}

func TestHearingService_SearchValidation(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	_, err := svc.Search(context.Background(), application.FilterInput{Room: "tres", DateFrom: "ayer"})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := vErr.FieldErrors["room"]; !ok {
		t.Fatalf("expected room error, got %v", vErr.FieldErrors)
	}
	if _, ok := vErr.FieldErrors["date_from"]; !ok {
		t.Fatalf("expected date_from error, got %v", vErr.FieldErrors)
	}
}

func TestHearingService_SearchBeforeLoad(t *testing.T) {
	t.Parallel()

	svc := testfixtures.NewServiceFactory().NewHearingService(testfixtures.HearingServiceDeps{})
	if _, err := svc.Search(context.Background(), application.FilterInput{}); !errors.Is(err, application.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := svc.Options(context.Background()); !errors.Is(err, application.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestHearingService_Export(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	var buf bytes.Buffer
	result, err := svc.Export(context.Background(), application.FilterInput{Room: "3"}, "csv", &buf)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if result.Count != 2 || result.FileName != "audiencias_filtradas.csv" {
		t.Fatalf("unexpected export result %+v", result)
	}

	table, err := csvfile.Read(context.Background(), &buf, ',')
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 exported rows, got %d", len(table.Rows))
	}
	if table.Rows[0][0] != "2025-00101" {
		t.Fatalf("expected rows in filter order, got %v", table.Rows[0])
	}
}

func TestHearingService_ExportEmpty(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	var buf bytes.Buffer
	_, err := svc.Export(context.Background(), application.FilterInput{Judge: "Juez Inexistente"}, "xlsx", &buf)
	if !errors.Is(err, application.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %d bytes", buf.Len())
	}
}

func TestHearingService_ExportUnknownFormat(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	_, err := svc.Export(context.Background(), application.FilterInput{}, "pdf", &bytes.Buffer{})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) || vErr.FieldErrors["format"] == "" {
		t.Fatalf("expected format validation error, got %v", err)
	}
}

func TestHearingService_Options(t *testing.T) {
	t.Parallel()

	svc := newLoadedService(t, testfixtures.NewStaticSource(testfixtures.SampleTable()))

	opts, err := svc.Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(opts.Rooms) != 3 || opts.Rooms[0] != 1 || opts.Rooms[2] != 3 {
		t.Fatalf("unexpected rooms %v", opts.Rooms)
	}
	if strings.Join(opts.Judges, ",") != "Juez Gómez,Juez Ruiz" {
		t.Fatalf("unexpected judges %v", opts.Judges)
	}
	if !opts.HasDates {
		t.Fatalf("expected date span")
	}
	if opts.DateFrom != (civil.Date{Year: 2026, Month: time.January, Day: 21}) || opts.DateTo != (civil.Date{Year: 2026, Month: time.September, Day: 23}) {
		t.Fatalf("unexpected span %v - %v", opts.DateFrom, opts.DateTo)
	}
	if opts.TimeTo != hearing.EndOfDay {
		t.Fatalf("expected end of day default, got %v", opts.TimeTo)
	}
}
