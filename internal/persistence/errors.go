package persistence

import "errors"

var (
	// ErrNotFound is returned when the source file does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrUnsupportedSource is returned when no reader handles the file type.
	ErrUnsupportedSource = errors.New("persistence: unsupported source")
	// ErrEmptySource is returned when the source has no header row.
	ErrEmptySource = errors.New("persistence: source has no header row")
)
