package dataset

import (
	"errors"
	"fmt"
)

// ErrAirportNotFound means the requested airport has no data directory.
var ErrAirportNotFound = errors.New("airport not found")

// FileError is a typed load failure for a single dataset file, telling a
// read failure apart from a parse failure.
type FileError struct {
	Path string
	Op   string // "read" or "parse"
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
