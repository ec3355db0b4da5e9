// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quiz reads chapter source files into questions.
//
// A source row has the shape
//
//	text, option_1, ..., option_k, <empty>*, marker
//
// where marker is the 1-based position of the correct option. Chapters may
// have different option counts and unused trailing columns, so the marker is
// found by scanning backward past empty fields.
package quiz

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/quizbank/pkg/types"
)

const bom = "\uFEFF"

// ParseRow builds a Question from the fields of one source row.
func ParseRow(fields []string) (types.Question, error) {
	last := markerIndex(fields)
	if last < 0 {
		return types.Question{}, errAllEmpty
	}

	marker, err := strconv.Atoi(strings.TrimSpace(fields[last]))
	if err != nil {
		return types.Question{}, fmt.Errorf("%w: %q", errMarkerNotInt, fields[last])
	}

	// fields[0] is the question text, so the options are everything strictly
	// between it and the marker.
	var answers []string
	if last > 1 {
		answers = append([]string(nil), fields[1:last]...)
	}
	if marker < 1 || marker > len(answers) {
		return types.Question{}, fmt.Errorf("%w: %d with %d answers", errMarkerOutside, marker, len(answers))
	}

	return types.Question{
		Text:         fields[0],
		Answers:      answers,
		CorrectIndex: marker - 1,
	}, nil
}

// markerIndex returns the position of the last non-empty field, or -1 when
// every field is empty.
func markerIndex(fields []string) int {
	last := len(fields) - 1
	for last >= 0 && fields[last] == "" {
		last--
	}
	return last
}

// SourcePath returns the source file path for a chapter.
func SourcePath(cfg types.SourceConfig, number int) string {
	return types.ExpandChapter(cfg.Pattern, number)
}

// ChapterTitle returns the label for a chapter.
func ChapterTitle(cfg types.SourceConfig, number int) string {
	return types.ExpandChapter(cfg.Title, number)
}

// ReadChapter reads and parses the source file for chapter number. The
// first malformed row aborts the read.
func ReadChapter(cfg types.SourceConfig, number int) (*types.Chapter, error) {
	comma, err := delimiter(cfg)
	if err != nil {
		return nil, err
	}

	path := SourcePath(cfg, number)
	f, err := openSource(path, number)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	questions, err := ParseChapter(f, path, comma)
	if err != nil {
		return nil, err
	}
	return &types.Chapter{
		Number:    number,
		Title:     ChapterTitle(cfg, number),
		Questions: questions,
	}, nil
}

// ParseChapter parses rows from r, stopping at the first malformed row.
// path is used only to label errors.
func ParseChapter(r io.Reader, path string, comma rune) ([]types.Question, error) {
	var questions []types.Question
	err := scan(r, path, comma, func(line int, fields []string) error {
		q, err := ParseRow(fields)
		if err != nil {
			return &RowError{Path: path, Row: line, Err: err}
		}
		questions = append(questions, q)
		return nil
	})
	return questions, err
}

func openSource(path string, number int) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chapter %d: %w: %w", number, ErrMissingSource, err)
	}
	return f, nil
}

// scan reads delimited records from r and calls fn with the line each
// record starts on. Rows may have any number of fields, blank lines are
// skipped, and a leading byte-order mark is dropped. A quote inside an
// unquoted field is kept as literal text. Reader syntax errors are reported
// as a RowError.
func scan(r io.Reader, path string, comma rune, fn func(line int, fields []string) error) error {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return &RowError{Path: path, Row: pe.StartLine, Err: pe.Err}
			}
			return fmt.Errorf("reading %s: %w", path, err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(line, fields); err != nil {
			return err
		}
	}
}

func delimiter(cfg types.SourceConfig) (rune, error) {
	if cfg.Delimiter == "" {
		return ',', nil
	}
	r, size := utf8.DecodeRuneInString(cfg.Delimiter)
	if r == utf8.RuneError || size != len(cfg.Delimiter) {
		return 0, fmt.Errorf("invalid delimiter %q", cfg.Delimiter)
	}
	return r, nil
}
