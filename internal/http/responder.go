package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/hearing-board/internal/application"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
)

var errTooManyRequests = errors.New("Demasiadas solicitudes de exportación, intente de nuevo en unos segundos.")

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || status == http.StatusNotModified || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).WarnContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("error desconocido"))
		return
	}

	var vErr *application.ValidationError
	var colErr *hearing.MissingColumnsError
	switch {
	case errors.As(err, &vErr):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: localizedStatusMessage(http.StatusUnprocessableEntity),
			Errors:  vErr.FieldErrors,
		})
	case errors.Is(err, application.ErrNoResults):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "No hay resultados para exportar."})
	case errors.Is(err, application.ErrNotLoaded):
		r.writeJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{
			ErrorCode: "DATASET_NOT_LOADED",
			Message:   "Los datos de audiencias aún no se han cargado.",
		})
	case errors.As(err, &colErr):
		r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			ErrorCode: "MISSING_COLUMNS",
			Message:   "Faltan columnas obligatorias en el archivo: " + strings.Join(colErr.Headers, ", "),
		})
	case errors.Is(err, persistence.ErrNotFound), errors.Is(err, persistence.ErrEmptySource):
		r.writeJSON(ctx, w, http.StatusServiceUnavailable, errorResponse{
			ErrorCode: "SOURCE_UNAVAILABLE",
			Message:   "No se pudo leer el archivo de audiencias.",
		})
	default:
		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: localizedStatusMessage(http.StatusInternalServerError)})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La solicitud no es válida."
	case http.StatusNotFound:
		return "El recurso solicitado no existe."
	case http.StatusMethodNotAllowed:
		return "Método no permitido."
	case http.StatusUnprocessableEntity:
		return "Los parámetros de búsqueda no son válidos."
	case http.StatusTooManyRequests:
		return "Demasiadas solicitudes, intente de nuevo más tarde."
	case http.StatusServiceUnavailable:
		return "El servicio no está disponible."
	default:
		return "Se produjo un error interno en el servidor."
	}
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
