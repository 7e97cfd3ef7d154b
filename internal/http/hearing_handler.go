package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/example/hearing-board/internal/application"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
)

type hearingService interface {
	Search(ctx context.Context, in application.FilterInput) (application.SearchResult, error)
	Export(ctx context.Context, in application.FilterInput, format string, w io.Writer) (application.ExportResult, error)
	Options(ctx context.Context) (application.FilterOptions, error)
	Reload(ctx context.Context) (application.ReloadResult, error)
	Current() (application.Snapshot, error)
}

type HearingHandler struct {
	service   hearingService
	responder responder
	logger    *slog.Logger
}

func NewHearingHandler(service hearingService, logger *slog.Logger) *HearingHandler {
	base := defaultLogger(logger)
	return &HearingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *HearingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "HearingHandler", operation, attrs...)
}

func (h *HearingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "List")
	result, err := h.service.Search(r.Context(), filterInputFromQuery(r.URL.Query()))
	if err != nil {
		logger.WarnContext(r.Context(), "hearing search failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("dataset_id", result.SnapshotID, "result_count", result.Count()).InfoContext(r.Context(), "hearings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listHearingsResponse{
		Count:     result.Count(),
		Hearings:  toHearingDTOs(result.Records),
		DatasetID: result.SnapshotID,
	})
}

// Export renders into memory first so an error never leaves a partial
// attachment on the wire.
func (h *HearingHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	format := query.Get("format")
	logger := h.log(r.Context(), "Export", "format", format)

	var buf bytes.Buffer
	result, err := h.service.Export(r.Context(), filterInputFromQuery(query), format, &buf)
	if err != nil {
		logger.WarnContext(r.Context(), "hearing export failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", result.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.ErrorContext(r.Context(), "failed to write export", "error", err)
		return
	}
	logger.With("dataset_id", result.SnapshotID, "result_count", result.Count).InfoContext(r.Context(), "hearings exported")
}

func (h *HearingHandler) Filters(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Filters")
	snapshot, err := h.service.Current()
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	etag := strconv.Quote(snapshot.Fingerprint)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		h.responder.writeJSON(r.Context(), w, http.StatusNotModified, nil)
		return
	}

	opts, err := h.service.Options(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "filter options failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toFiltersResponse(opts))
}

func (h *HearingHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Reload")
	result, err := h.service.Reload(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "dataset reload failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("dataset_id", result.Snapshot.ID, "changed", result.Changed).InfoContext(r.Context(), "dataset reloaded")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reloadResponse{
		DatasetID: result.Snapshot.ID,
		Changed:   result.Changed,
		LoadedAt:  result.Snapshot.LoadedAt.UTC().Format(time.RFC3339),
		Stats:     toStatsDTO(result.Stats),
	})
}

func (h *HearingHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	snapshot, err := h.service.Current()
	if err != nil {
		h.responder.writeJSON(r.Context(), w, http.StatusServiceUnavailable, healthResponse{Status: "not_loaded"})
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, healthResponse{Status: "ok", DatasetID: snapshot.ID})
}

func filterInputFromQuery(q url.Values) application.FilterInput {
	return application.FilterInput{
		DateFrom:   q.Get("date_from"),
		DateTo:     q.Get("date_to"),
		TimeFrom:   q.Get("time_from"),
		TimeTo:     q.Get("time_to"),
		Room:       q.Get("room"),
		Judge:      q.Get("judge"),
		CaseNumber: q.Get("case_number"),
		Party:      q.Get("party"),
	}
}

type listHearingsResponse struct {
	Count     int          `json:"count"`
	Hearings  []hearingDTO `json:"hearings"`
	DatasetID string       `json:"dataset_id"`
}

type hearingDTO struct {
	CaseNumber string `json:"case_number"`
	Plaintiff  string `json:"plaintiff"`
	Defendant  string `json:"defendant"`
	// OriginalDateTime is the source cell as written in the spreadsheet.
	OriginalDateTime string `json:"original_datetime"`
	DateTime         string `json:"datetime"`
	Date             string `json:"date"`
	Time             string `json:"time"`
	Room             string `json:"room"`
	Judge            string `json:"judge"`
}

func toHearingDTO(r hearing.Record) hearingDTO {
	return hearingDTO{
		CaseNumber:       r.CaseNumber,
		Plaintiff:        r.Plaintiff,
		Defendant:        r.Defendant,
		OriginalDateTime: persistence.CellText(r.RawDateTime),
		DateTime:         r.At.Format(time.RFC3339),
		Date:             r.Date.String(),
		Time:             r.At.Format("15:04"),
		Room:             r.Room,
		Judge:            r.Judge,
	}
}

func toHearingDTOs(records []hearing.Record) []hearingDTO {
	out := make([]hearingDTO, 0, len(records))
	for _, r := range records {
		out = append(out, toHearingDTO(r))
	}
	return out
}

type statsDTO struct {
	Rows        int `json:"rows"`
	Loaded      int `json:"loaded"`
	BlankDate   int `json:"blank_date"`
	Unparseable int `json:"unparseable_date"`
	Dropped     int `json:"dropped"`
}

func toStatsDTO(s hearing.LoadStats) statsDTO {
	return statsDTO{
		Rows:        s.Rows,
		Loaded:      s.Loaded,
		BlankDate:   s.BlankDate,
		Unparseable: s.Unparseable,
		Dropped:     s.Dropped(),
	}
}

type filtersResponse struct {
	DatasetID string   `json:"dataset_id"`
	Rooms     []int    `json:"rooms"`
	Judges    []string `json:"judges"`
	DateFrom  string   `json:"date_from,omitempty"`
	DateTo    string   `json:"date_to,omitempty"`
	TimeFrom  string   `json:"time_from"`
	TimeTo    string   `json:"time_to"`
	Stats     statsDTO `json:"stats"`
}

func toFiltersResponse(opts application.FilterOptions) filtersResponse {
	resp := filtersResponse{
		DatasetID: opts.SnapshotID,
		Rooms:     opts.Rooms,
		Judges:    opts.Judges,
		TimeFrom:  formatClock(opts.TimeFrom.Hour, opts.TimeFrom.Minute),
		TimeTo:    formatClock(opts.TimeTo.Hour, opts.TimeTo.Minute),
		Stats:     toStatsDTO(opts.Stats),
	}
	if resp.Rooms == nil {
		resp.Rooms = []int{}
	}
	if resp.Judges == nil {
		resp.Judges = []string{}
	}
	if opts.HasDates {
		resp.DateFrom = opts.DateFrom.String()
		resp.DateTo = opts.DateTo.String()
	}
	return resp
}

func formatClock(hour, minute int) string {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04")
}

type reloadResponse struct {
	DatasetID string   `json:"dataset_id"`
	Changed   bool     `json:"changed"`
	LoadedAt  string   `json:"loaded_at"`
	Stats     statsDTO `json:"stats"`
}

type healthResponse struct {
	Status    string `json:"status"`
	DatasetID string `json:"dataset_id,omitempty"`
}
