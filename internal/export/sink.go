// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/quizbank/pkg/types"
)

// Sink receives parsed chapters in order and produces one output file.
// Implementations write to a temporary file beside the destination; Close
// moves it into place and Discard removes it, so a failed run never leaves
// a half-written output behind.
type Sink interface {
	// WriteChapter adds one chapter to the output.
	WriteChapter(ctx context.Context, ch *types.Chapter) error
	// Close finishes the output and replaces the destination file.
	Close() error
	// Discard abandons the output, leaving any existing destination untouched.
	Discard()
	// Path is the destination file.
	Path() string
}

// NewSink creates the sink for mode.
func NewSink(cfg types.Config, mode types.ExportMode) (Sink, error) {
	switch mode {
	case types.ModeDocument:
		return newDocumentSink(cfg.Document)
	case types.ModeFlashcard:
		return newFlashcardSink(cfg.Flashcards)
	case types.ModeBank:
		return newBankSink(cfg.Bank, cfg.Flashcards.Tag)
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}
}

// atomicFile is a temporary file that replaces path on Commit.
type atomicFile struct {
	*os.File
	path string
}

func createAtomic(path string) (*atomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", path, err)
	}
	return &atomicFile{File: f, path: path}, nil
}

// Commit flushes the temporary file to disk and renames it onto path.
func (a *atomicFile) Commit() error {
	tmp := a.Name()
	if err := a.Sync(); err != nil {
		a.Discard()
		return fmt.Errorf("syncing %s: %w", a.path, err)
	}
	if err := a.File.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", a.path, err)
	}
	return a.replace()
}

// replace moves the already closed temporary file onto path.
func (a *atomicFile) replace() error {
	tmp := a.Name()
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("setting permissions on %s: %w", a.path, err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", a.path, err)
	}
	return nil
}

// Discard closes and removes the temporary file.
func (a *atomicFile) Discard() {
	a.File.Close()
	os.Remove(a.Name())
}
