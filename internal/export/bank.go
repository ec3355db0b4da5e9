// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/quizbank/internal/bank"
	"github.com/pdiddy/quizbank/pkg/types"
)

// bankSink stores chapters in a fresh SQLite question bank.
type bankSink struct {
	tag   string
	out   *atomicFile
	store *bank.Store
}

func newBankSink(cfg types.BankConfig, tag string) (*bankSink, error) {
	out, err := createAtomic(cfg.Path)
	if err != nil {
		return nil, err
	}
	// SQLite opens the file itself; the empty temp file becomes a new database.
	if err := out.File.Close(); err != nil {
		os.Remove(out.Name())
		return nil, fmt.Errorf("preparing %s: %w", cfg.Path, err)
	}

	store, err := bank.Open(out.Name())
	if err != nil {
		os.Remove(out.Name())
		return nil, err
	}
	return &bankSink{tag: tag, out: out, store: store}, nil
}

func (s *bankSink) WriteChapter(ctx context.Context, ch *types.Chapter) error {
	return s.store.PutChapter(ctx, ch, types.ExpandChapter(s.tag, ch.Number))
}

func (s *bankSink) Close() error {
	tmp := s.out.Name()
	if err := s.store.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing question bank %s: %w", s.out.path, err)
	}
	return s.out.replace()
}

func (s *bankSink) Discard() {
	s.store.Close()
	os.Remove(s.out.Name())
}

func (s *bankSink) Path() string { return s.out.path }
