package certificate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both id and verification-code lookups that match
	// nothing. It is a normal negative result, not a failure.
	ErrNotFound = errors.New("certificate not found")

	// ErrEmptyBatch is returned for uploads whose table has a header but no
	// data rows.
	ErrEmptyBatch = errors.New("batch has no data rows")

	// ErrNoCertificates guards the manual single-entry path, which reuses
	// the background of an earlier batch import for the same event.
	ErrNoCertificates = errors.New("event has no certificates yet")
)

// MissingColumnsError aborts a batch before any per-row check runs.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.Columns, ", "))
}
