// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/pdiddy/quizbank/pkg/types"
)

// Paragraph style IDs from the default document template.
const (
	styleQuestion = "ListNumber"
	styleAnswer   = "ListBullet2"
)

// documentSink renders chapters into a .docx question bank: a centered
// title, then per chapter a centered heading, numbered questions with
// their options as sub-bullets, the correct option bold and underlined,
// and a page break.
type documentSink struct {
	doc *docx.RootDoc
	out *atomicFile
}

func newDocumentSink(cfg types.DocumentConfig) (*documentSink, error) {
	out, err := createAtomic(cfg.Path)
	if err != nil {
		return nil, err
	}
	// The document is saved by file name on Close.
	if err := out.File.Close(); err != nil {
		out.Discard()
		return nil, fmt.Errorf("preparing %s: %w", cfg.Path, err)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		out.Discard()
		return nil, fmt.Errorf("creating document: %w", err)
	}

	title, err := doc.AddHeading(cfg.Title, 0)
	if err != nil {
		out.Discard()
		return nil, fmt.Errorf("adding title: %w", err)
	}
	title.Justification(stypes.JustificationCenter)

	return &documentSink{doc: doc, out: out}, nil
}

func (s *documentSink) WriteChapter(_ context.Context, ch *types.Chapter) error {
	heading, err := s.doc.AddHeading(ch.Title, 1)
	if err != nil {
		return fmt.Errorf("chapter %d heading: %w", ch.Number, err)
	}
	heading.Justification(stypes.JustificationCenter)

	for _, q := range ch.Questions {
		s.doc.AddParagraph(q.Text).Style(styleQuestion)
		for i, a := range q.Answers {
			p := s.doc.AddParagraph("")
			p.Style(styleAnswer)
			run := p.AddText(a)
			if i == q.CorrectIndex {
				run.Bold(true)
				run.Underline(stypes.UnderlineSingle)
			}
		}
	}
	s.doc.AddPageBreak()
	return nil
}

func (s *documentSink) Close() error {
	if err := s.doc.SaveTo(s.out.Name()); err != nil {
		s.out.Discard()
		return fmt.Errorf("writing document %s: %w", s.out.path, err)
	}
	return s.out.replace()
}

func (s *documentSink) Discard() { s.out.Discard() }

func (s *documentSink) Path() string { return s.out.path }
