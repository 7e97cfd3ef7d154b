package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/logging"
	"github.com/example/hearing-board/internal/persistence"
	"github.com/example/hearing-board/internal/persistence/sqlite"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func serviceLogger(ctx context.Context, base *slog.Logger, serviceName, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}

	pairs := []any{"service", serviceName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotLoaded):
		return "not_loaded"
	case errors.Is(err, ErrNoResults):
		return "no_results"
	case errors.Is(err, hearing.ErrMissingColumns):
		return "missing_columns"
	case errors.Is(err, persistence.ErrNotFound):
		return "source_not_found"
	case errors.Is(err, persistence.ErrUnsupportedSource), errors.Is(err, sqlite.ErrInvalidTable):
		return "unsupported_source"
	case errors.Is(err, persistence.ErrEmptySource):
		return "empty_source"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
