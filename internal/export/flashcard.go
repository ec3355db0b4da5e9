// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"

	"github.com/pdiddy/quizbank/internal/anki"
	"github.com/pdiddy/quizbank/pkg/types"
)

// flashcardSink writes one Anki CSV record per question.
type flashcardSink struct {
	cfg    types.FlashcardConfig
	out    *atomicFile
	cards  *anki.Writer
	format anki.Format
}

func newFlashcardSink(cfg types.FlashcardConfig) (*flashcardSink, error) {
	out, err := createAtomic(cfg.Path)
	if err != nil {
		return nil, err
	}
	return &flashcardSink{
		cfg:    cfg,
		out:    out,
		cards:  anki.NewWriter(out),
		format: anki.Format{Separator: cfg.Separator, LineBreak: cfg.LineBreak},
	}, nil
}

func (s *flashcardSink) WriteChapter(_ context.Context, ch *types.Chapter) error {
	tag := types.ExpandChapter(s.cfg.Tag, ch.Number)
	for i, q := range ch.Questions {
		if err := s.cards.Write(anki.NewCard(q, tag, s.format)); err != nil {
			return fmt.Errorf("chapter %d question %d: %w", ch.Number, i+1, err)
		}
	}
	return nil
}

func (s *flashcardSink) Close() error {
	if err := s.cards.Flush(); err != nil {
		s.out.Discard()
		return fmt.Errorf("writing flashcards %s: %w", s.out.path, err)
	}
	return s.out.Commit()
}

func (s *flashcardSink) Discard() { s.out.Discard() }

func (s *flashcardSink) Path() string { return s.out.path }
