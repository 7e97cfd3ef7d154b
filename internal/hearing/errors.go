package hearing

import (
	"errors"
	"strings"
)

// ErrMissingColumns is matched by every MissingColumnsError.
var ErrMissingColumns = errors.New("hearing: missing required columns")

// MissingColumnsError lists every required header absent from the source.
type MissingColumnsError struct {
	Fields  []Field
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	if e == nil || len(e.Headers) == 0 {
		return ErrMissingColumns.Error()
	}
	return ErrMissingColumns.Error() + ": " + strings.Join(e.Headers, ", ")
}

// Is reports ErrMissingColumns as the sentinel for this error.
func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}
