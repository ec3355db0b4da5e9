// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export reads every chapter of a question bank and routes it to a
// single output sink: a .docx document, an Anki flashcard CSV, or a SQLite
// question bank.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/quizbank/internal/quiz"
	"github.com/pdiddy/quizbank/pkg/types"
)

// Modes lists the accepted export modes in display order.
var Modes = []types.ExportMode{types.ModeDocument, types.ModeFlashcard, types.ModeBank}

// ParseMode maps the CLI mode argument to an ExportMode. An empty argument
// selects document mode.
func ParseMode(arg string) (types.ExportMode, error) {
	if arg == "" {
		return types.ModeDocument, nil
	}
	for _, m := range Modes {
		if types.ExportMode(arg) == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q: use %s, %s, or %s", arg, Modes[0], Modes[1], Modes[2])
}

// Summary holds the outcome of an export run.
type Summary struct {
	Mode      types.ExportMode
	Output    string
	Chapters  int
	Questions int
}

// Run exports chapters 1 through cfg.Chapters in the given mode, printing
// progress to w. Any missing source, malformed row or write failure aborts
// the run; the destination file is then left as it was before the run.
func Run(ctx context.Context, cfg types.Config, mode types.ExportMode, w io.Writer) (Summary, error) {
	summary := Summary{Mode: mode}
	fmt.Fprintf(w, "Running %s export\n", mode)

	sink, err := NewSink(cfg, mode)
	if err != nil {
		return summary, fmt.Errorf("writing %s output: %w", mode, err)
	}
	summary.Output = sink.Path()

	for n := 1; n <= cfg.Chapters; n++ {
		select {
		case <-ctx.Done():
			sink.Discard()
			return summary, ctx.Err()
		default:
		}

		ch, err := quiz.ReadChapter(cfg.Source, n)
		if err != nil {
			sink.Discard()
			return summary, err
		}
		if err := sink.WriteChapter(ctx, ch); err != nil {
			sink.Discard()
			return summary, fmt.Errorf("writing %s output %s: %w", mode, sink.Path(), err)
		}

		summary.Chapters++
		summary.Questions += len(ch.Questions)
		fmt.Fprintf(w, "chapter %d: %d questions\n", n, len(ch.Questions))
	}

	if err := sink.Close(); err != nil {
		return summary, fmt.Errorf("writing %s output: %w", mode, err)
	}

	fmt.Fprintf(w, "\nExported %d questions from %d chapters to %s\n",
		summary.Questions, summary.Chapters, summary.Output)
	return summary, nil
}
