// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"errors"
	"fmt"
)

// ErrMissingSource indicates a chapter source file could not be opened.
var ErrMissingSource = errors.New("missing source file")

// ErrMalformedRow indicates a source row could not be parsed into a question.
var ErrMalformedRow = errors.New("malformed row")

// Reasons a row is rejected.
var (
	errAllEmpty      = errors.New("all fields empty")
	errMarkerNotInt  = errors.New("correct-answer marker is not an integer")
	errMarkerOutside = errors.New("correct-answer marker out of range")
)

// RowError locates a malformed row in a chapter source file. It matches
// ErrMalformedRow with errors.Is.
type RowError struct {
	Path string
	// Row is the 1-based line the record starts on.
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s: row %d: %v", e.Path, e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Is reports ErrMalformedRow as a match so callers need not know the reason.
func (e *RowError) Is(target error) bool {
	return target == ErrMalformedRow
}
