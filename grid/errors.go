package grid

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when an operation requires at least one cell,
// e.g. RandomCell on an empty board. Callers should check Count first.
var ErrEmptyGrid = errors.New("grid: empty grid")

// DataError reports a malformed snapshot during FromData. Field names
// the offending part of the record.
type DataError struct {
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("grid: invalid data field %q: %s", e.Field, e.Reason)
}
