// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package anki formats questions as flashcard records for Anki's CSV import:
// one row per question with front, back and tag columns.
package anki

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/quizbank/pkg/types"
)

// Card is one flashcard record.
type Card struct {
	Front string
	Back  string
	Tag   string
}

// Format controls how the card front is laid out.
type Format struct {
	// Separator sits on its own line between the question and its options.
	Separator string
	// LineBreak joins the lines of the front.
	LineBreak string
}

// FormatFront renders the full question: the text, the separator, then
// every option in source order, each on its own line.
func FormatFront(q types.Question, f Format) string {
	lines := make([]string, 0, len(q.Answers)+2)
	lines = append(lines, q.Text)
	if f.Separator != "" {
		lines = append(lines, f.Separator)
	}
	lines = append(lines, q.Answers...)
	return strings.Join(lines, f.LineBreak)
}

// NewCard builds the flashcard for q. The back is exactly the correct
// option's text.
func NewCard(q types.Question, tag string, f Format) Card {
	return Card{
		Front: FormatFront(q, f),
		Back:  q.CorrectAnswer(),
		Tag:   tag,
	}
}

// Writer writes cards as CSV records.
type Writer struct {
	cw    *csv.Writer
	count int
}

// NewWriter returns a Writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w)}
}

// Write writes one card record.
func (w *Writer) Write(c Card) error {
	if err := w.cw.Write([]string{c.Front, c.Back, c.Tag}); err != nil {
		return fmt.Errorf("writing card %d: %w", w.count+1, err)
	}
	w.count++
	return nil
}

// Flush writes any buffered records and reports a write error.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// Count returns the number of cards written.
func (w *Writer) Count() int {
	return w.count
}
