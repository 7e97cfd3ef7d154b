package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/export"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/metrics"
	"github.com/example/hearing-board/internal/persistence"
)

// HearingService owns the loaded dataset and serves filter, option and export
// requests against it. Reloads swap the snapshot atomically; readers keep the
// snapshot they started with.
type HearingService struct {
	source      persistence.TableSource
	columns     hearing.Columns
	parser      *dateparser.Parser
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
	metrics     *metrics.Metrics
	cache       *resultCache

	reloadMu sync.Mutex
	mu       sync.RWMutex
	current  *Snapshot
}

// NewHearingService constructs a hearing service reading from source.
func NewHearingService(source persistence.TableSource, columns hearing.Columns, parser *dateparser.Parser, idGenerator func() string, now func() time.Time) *HearingService {
	return NewHearingServiceWithLogger(source, columns, parser, idGenerator, now, nil)
}

// NewHearingServiceWithLogger constructs a hearing service with a specified logger.
func NewHearingServiceWithLogger(source persistence.TableSource, columns hearing.Columns, parser *dateparser.Parser, idGenerator func() string, now func() time.Time, logger *slog.Logger) *HearingService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if parser == nil {
		parser = dateparser.New(nil)
	}
	return &HearingService{
		source:      source,
		columns:     columns.WithDefaults(),
		parser:      parser,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
		cache:       newResultCache(time.Minute, 256, now),
	}
}

// SetMetrics attaches Prometheus instruments. A nil value disables them.
func (s *HearingService) SetMetrics(m *metrics.Metrics) {
	if s != nil {
		s.metrics = m
	}
}

func (s *HearingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "HearingService", operation, attrs...)
}

// Reload reads the source and replaces the current snapshot. When the source
// fingerprint matches the loaded snapshot nothing is re-parsed.
func (s *HearingService) Reload(ctx context.Context) (result ReloadResult, err error) {
	if s == nil {
		err = fmt.Errorf("HearingService is nil")
		return
	}
	if s.source == nil {
		err = fmt.Errorf("hearing source not configured")
		return
	}

	logger := s.loggerWith(ctx, "Reload")
	defer func() {
		if err != nil {
			s.metrics.ObserveReload("failed")
			logger.ErrorContext(ctx, "failed to reload hearings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if !result.Changed {
			s.metrics.ObserveReload("unchanged")
			logger.With("snapshot_id", result.Snapshot.ID).DebugContext(ctx, "hearing source unchanged")
			return
		}
		s.metrics.ObserveReload("loaded")
		logger.With(
			"snapshot_id", result.Snapshot.ID,
			"rows", result.Stats.Rows,
			"loaded", result.Stats.Loaded,
			"dropped", result.Stats.Dropped(),
		).InfoContext(ctx, "hearings loaded")
	}()

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	fingerprint, err := s.source.Fingerprint(ctx)
	if err != nil {
		err = fmt.Errorf("fingerprint hearing source: %w", err)
		return
	}

	if current := s.snapshot(); current != nil && current.Fingerprint == fingerprint {
		result = ReloadResult{Snapshot: *current, Stats: current.Dataset.Stats()}
		return
	}

	table, err := s.source.ReadTable(ctx)
	if err != nil {
		err = fmt.Errorf("read hearing source: %w", err)
		return
	}

	dataset, err := hearing.Load(table, s.columns, s.parser)
	if err != nil {
		return
	}

	stats := dataset.Stats()
	if stats.Dropped() > 0 {
		logger.DebugContext(ctx, "rows dropped at load",
			"blank_date", stats.BlankDate,
			"unparseable_date", stats.Unparseable,
		)
	}
	s.metrics.ObserveLoad(stats.Loaded, stats.BlankDate, stats.Unparseable)

	snapshot := &Snapshot{
		ID:          s.idGenerator(),
		Fingerprint: fingerprint,
		LoadedAt:    s.now(),
		Dataset:     dataset,
	}

	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()
	s.cache.Invalidate()

	result = ReloadResult{Snapshot: *snapshot, Stats: stats, Changed: true}
	return
}

func (s *HearingService) snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Current returns the loaded snapshot.
func (s *HearingService) Current() (Snapshot, error) {
	if s == nil {
		return Snapshot{}, ErrNotLoaded
	}
	current := s.snapshot()
	if current == nil {
		return Snapshot{}, ErrNotLoaded
	}
	return *current, nil
}

// Dataset returns the loaded dataset, or nil before the first reload.
func (s *HearingService) Dataset() *hearing.Dataset {
	current, err := s.Current()
	if err != nil {
		return nil
	}
	return current.Dataset
}

// Columns returns the header names used for loading and export.
func (s *HearingService) Columns() hearing.Columns {
	if s == nil {
		return hearing.DefaultColumns()
	}
	return s.columns
}

// Search validates in, fills missing bounds from the dataset defaults and
// runs the filter pipeline.
func (s *HearingService) Search(ctx context.Context, in FilterInput) (result SearchResult, err error) {
	if s == nil {
		err = fmt.Errorf("HearingService is nil")
		return
	}
	logger := s.loggerWith(ctx, "Search")
	defer func() {
		if err != nil {
			logger.WarnContext(ctx, "search rejected", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("snapshot_id", result.SnapshotID, "count", result.Count()).DebugContext(ctx, "search completed")
	}()

	current, err := s.Current()
	if err != nil {
		return
	}

	criteria, err := ParseFilterInput(in, current.Dataset.DefaultCriteria())
	if err != nil {
		return
	}

	result = SearchResult{SnapshotID: current.ID, Criteria: criteria}

	key := buildResultCacheKey(current.ID, criteria)
	if records, ok := s.cache.Get(key); ok {
		result.Records = records
		return
	}

	started := time.Now()
	result.Records = current.Dataset.Filter(criteria).Records
	s.metrics.ObserveSearch(time.Since(started))
	s.cache.Store(key, result.Records)
	return
}

// Export writes the hearings matching in to w. An empty match returns
// ErrNoResults and writes nothing.
func (s *HearingService) Export(ctx context.Context, in FilterInput, format string, w io.Writer) (result ExportResult, err error) {
	if s == nil {
		err = fmt.Errorf("HearingService is nil")
		return
	}
	logger := s.loggerWith(ctx, "Export", "format", format)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to export hearings", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("snapshot_id", result.SnapshotID, "count", result.Count).InfoContext(ctx, "hearings exported")
	}()

	f, fErr := export.ParseFormat(format)
	if fErr != nil {
		vErr := &ValidationError{}
		vErr.add("format", "Formato no soportado, use xlsx o csv.")
		err = vErr
		return
	}

	found, err := s.Search(ctx, in)
	if err != nil {
		return
	}
	if found.Count() == 0 {
		err = ErrNoResults
		return
	}

	if err = export.Write(ctx, w, f, s.columns, found.Records); err != nil {
		if errors.Is(err, export.ErrNoRows) {
			err = ErrNoResults
		}
		return
	}
	s.metrics.ObserveExport(string(f))

	result = ExportResult{
		SnapshotID:  found.SnapshotID,
		Count:       found.Count(),
		FileName:    f.FileName(),
		ContentType: f.ContentType(),
	}
	return
}

// Options lists rooms, judges and the default date and time bounds of the
// loaded dataset.
func (s *HearingService) Options(ctx context.Context) (FilterOptions, error) {
	current, err := s.Current()
	if err != nil {
		return FilterOptions{}, err
	}
	ds := current.Dataset
	from, to, ok := ds.DateSpan()
	defaults := ds.DefaultCriteria()
	return FilterOptions{
		SnapshotID: current.ID,
		Rooms:      ds.Rooms(),
		Judges:     ds.Judges(),
		DateFrom:   from,
		DateTo:     to,
		HasDates:   ok,
		TimeFrom:   defaults.TimeFrom,
		TimeTo:     defaults.UpperTime(),
		Stats:      ds.Stats(),
	}, nil
}
