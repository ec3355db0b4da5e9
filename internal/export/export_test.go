// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizbank/internal/bank"
	"github.com/pdiddy/quizbank/internal/quiz"
	"github.com/pdiddy/quizbank/pkg/types"
)

var sampleChapters = []string{
	"Q1,A,B,C,,,2\nQ2,X,Y,1\n",
	"ما هو العائد؟,بسيط,مركب,,,2\n",
}

// setup writes chapter sources into a temp dir and returns a config whose
// outputs also live there.
func setup(t *testing.T, chapters ...string) types.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	for i, content := range chapters {
		name := filepath.Join(dir, "data", "chapter"+string(rune('1'+i))+".csv")
		require.NoError(t, os.WriteFile(name, []byte(content), 0o644))
	}
	return types.Config{
		Chapters: len(chapters),
		Source: types.SourceConfig{
			Pattern:   filepath.Join(dir, "data", "chapter{n}.csv"),
			Delimiter: ",",
			Title:     "الفصل {n}",
		},
		Document: types.DocumentConfig{
			Title: "بنك أسئلة",
			Path:  filepath.Join(dir, "questions.docx"),
		},
		Flashcards: types.FlashcardConfig{
			Path:      filepath.Join(dir, "anki_csv.csv"),
			Tag:       "chapter{n}",
			Separator: "-----",
			LineBreak: "<br>",
		},
		Bank: types.BankConfig{Path: filepath.Join(dir, "questions.db")},
	}
}

func run(t *testing.T, cfg types.Config, mode types.ExportMode) (Summary, string) {
	t.Helper()
	var log bytes.Buffer
	summary, err := Run(context.Background(), cfg, mode, &log)
	require.NoError(t, err)
	return summary, log.String()
}

// documentXML returns word/document.xml from the .docx at path.
func documentXML(t *testing.T, path string) string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(data)
	}
	t.Fatal("word/document.xml not found")
	return ""
}

// docParagraph is the rendered content of one w:p element.
type docParagraph struct {
	Style     string
	Centered  bool
	Text      string
	Emphasis  []string // text of runs that are both bold and underlined
	PageBreak bool
}

// documentParagraphs decodes the body paragraphs of the .docx at path.
// Style IDs are returned with spaces removed.
func documentParagraphs(t *testing.T, path string) []docParagraph {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(documentXML(t, path)))

	var (
		paras           []docParagraph
		bold, underline bool
		inText          bool
		runText         strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return paras
		}
		require.NoError(t, err)

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "p" {
				paras = append(paras, docParagraph{})
				continue
			}
			if len(paras) == 0 {
				continue
			}
			cur := &paras[len(paras)-1]
			switch el.Name.Local {
			case "pStyle":
				cur.Style = strings.ReplaceAll(attrValue(el, "val"), " ", "")
			case "jc":
				cur.Centered = attrValue(el, "val") == "center"
			case "r":
				bold, underline = false, false
				runText.Reset()
			case "b":
				v := attrValue(el, "val")
				bold = v != "false" && v != "0"
			case "u":
				v := attrValue(el, "val")
				underline = v != "" && v != "none"
			case "t":
				inText = true
			case "br":
				if attrValue(el, "type") == "page" {
					cur.PageBreak = true
				}
			}
		case xml.CharData:
			if inText {
				runText.Write(el)
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "r":
				if len(paras) == 0 {
					continue
				}
				cur := &paras[len(paras)-1]
				text := runText.String()
				cur.Text += text
				if text != "" && bold && underline {
					cur.Emphasis = append(cur.Emphasis, text)
				}
			}
		}
	}
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// countStyle returns how many paragraphs use style.
func countStyle(paras []docParagraph, style string) int {
	n := 0
	for _, p := range paras {
		if p.Style == style {
			n++
		}
	}
	return n
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		arg     string
		want    types.ExportMode
		wantErr bool
	}{
		{arg: "", want: types.ModeDocument},
		{arg: "docx", want: types.ModeDocument},
		{arg: "anki", want: types.ModeFlashcard},
		{arg: "bank", want: types.ModeBank},
		{arg: "pdf", wantErr: true},
		{arg: "DOCX", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParseMode(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown mode")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunDocument(t *testing.T) {
	cfg := setup(t, sampleChapters...)
	summary, log := run(t, cfg, types.ModeDocument)

	assert.Equal(t, Summary{Mode: types.ModeDocument, Output: cfg.Document.Path, Chapters: 2, Questions: 3}, summary)
	assert.True(t, strings.HasPrefix(log, "Running docx export\n"))
	assert.Contains(t, log, "chapter 1: 2 questions")
	assert.Contains(t, log, "chapter 2: 1 questions")

	paras := documentParagraphs(t, cfg.Document.Path)
	assert.Equal(t, 1, countStyle(paras, "Title"))
	assert.Equal(t, 2, countStyle(paras, "Heading1"))
	assert.Equal(t, 3, countStyle(paras, "ListNumber"))
	assert.Equal(t, 7, countStyle(paras, "ListBullet2"))

	var order []string
	breaks, emphasized := 0, 0
	for _, p := range paras {
		switch p.Style {
		case "Title", "Heading1":
			assert.True(t, p.Centered, "%s %q is not centered", p.Style, p.Text)
		}
		if len(p.Emphasis) > 0 {
			emphasized++
		}
		if p.PageBreak {
			breaks++
			order = append(order, "<page>")
		} else if p.Text != "" {
			order = append(order, p.Text)
		}
	}
	assert.Equal(t, 2, breaks)
	assert.Equal(t, 3, emphasized, "one emphasized answer per question")

	// Chapter-then-row order: title, then per chapter its heading,
	// questions with their options, and a page break.
	assert.Equal(t, []string{
		"بنك أسئلة",
		"الفصل 1", "Q1", "A", "B", "C", "Q2", "X", "Y", "<page>",
		"الفصل 2", "ما هو العائد؟", "بسيط", "مركب", "<page>",
	}, order)
}

func TestRunDocumentCorrectAnswerEmphasis(t *testing.T) {
	cfg := setup(t, "Q1,A,B,C,,,2\n")
	run(t, cfg, types.ModeDocument)

	var answers []docParagraph
	for _, p := range documentParagraphs(t, cfg.Document.Path) {
		if p.Style == "ListBullet2" {
			answers = append(answers, p)
		}
	}
	require.Len(t, answers, 3)
	assert.Equal(t, "A", answers[0].Text)
	assert.Empty(t, answers[0].Emphasis)
	assert.Equal(t, []string{"B"}, answers[1].Emphasis)
	assert.Empty(t, answers[2].Emphasis)
}

func TestRunFlashcard(t *testing.T) {
	cfg := setup(t, sampleChapters...)
	summary, _ := run(t, cfg, types.ModeFlashcard)
	assert.Equal(t, 3, summary.Questions)

	f, err := os.Open(cfg.Flashcards.Path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"Q1<br>-----<br>A<br>B<br>C", "B", "chapter1"},
		{"Q2<br>-----<br>X<br>Y", "X", "chapter1"},
		{"ما هو العائد؟<br>-----<br>بسيط<br>مركب", "مركب", "chapter2"},
	}, records)
}

func TestRunBank(t *testing.T) {
	cfg := setup(t, sampleChapters...)
	run(t, cfg, types.ModeBank)

	store, err := bank.Open(cfg.Bank.Path)
	require.NoError(t, err)
	defer store.Close()

	st, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bank.Stats{Chapters: 2, Questions: 3, Answers: 7}, st)

	ch, err := store.Chapter(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "الفصل 2", ch.Title)
	require.Len(t, ch.Questions, 1)
	assert.Equal(t, "مركب", ch.Questions[0].CorrectAnswer())
}

func TestModeDispatch(t *testing.T) {
	cfg := setup(t, sampleChapters...)

	defaultMode, err := ParseMode("")
	require.NoError(t, err)
	run(t, cfg, defaultMode)
	viaDefault := documentXML(t, cfg.Document.Path)
	require.NoError(t, os.Remove(cfg.Document.Path))

	docxMode, err := ParseMode("docx")
	require.NoError(t, err)
	run(t, cfg, docxMode)
	assert.Equal(t, viaDefault, documentXML(t, cfg.Document.Path))

	_, err = os.Stat(cfg.Flashcards.Path)
	assert.True(t, os.IsNotExist(err), "document mode must not write flashcards")

	require.NoError(t, os.Remove(cfg.Document.Path))
	run(t, cfg, types.ModeFlashcard)
	_, err = os.Stat(cfg.Document.Path)
	assert.True(t, os.IsNotExist(err), "flashcard mode must not write the document")
}

func TestRunIsIdempotent(t *testing.T) {
	t.Run("docx", func(t *testing.T) {
		cfg := setup(t, sampleChapters...)
		run(t, cfg, types.ModeDocument)
		first := documentXML(t, cfg.Document.Path)

		run(t, cfg, types.ModeDocument)
		assert.Equal(t, first, documentXML(t, cfg.Document.Path))
	})

	t.Run("anki", func(t *testing.T) {
		cfg := setup(t, sampleChapters...)
		run(t, cfg, types.ModeFlashcard)
		first, err := os.ReadFile(cfg.Flashcards.Path)
		require.NoError(t, err)

		run(t, cfg, types.ModeFlashcard)
		second, err := os.ReadFile(cfg.Flashcards.Path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRunMissingChapterKeepsExistingOutput(t *testing.T) {
	for _, mode := range Modes {
		t.Run(string(mode), func(t *testing.T) {
			cfg := setup(t, sampleChapters...)
			cfg.Chapters = 3

			sink, err := NewSink(cfg, mode)
			require.NoError(t, err)
			dest := sink.Path()
			sink.Discard()
			require.NoError(t, os.WriteFile(dest, []byte("previous run"), 0o644))

			var log bytes.Buffer
			_, err = Run(context.Background(), cfg, mode, &log)
			require.Error(t, err)
			assert.ErrorIs(t, err, quiz.ErrMissingSource)
			assert.Contains(t, err.Error(), "chapter 3")

			data, err := os.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, "previous run", string(data))

			entries, err := os.ReadDir(filepath.Dir(dest))
			require.NoError(t, err)
			for _, e := range entries {
				assert.NotContains(t, e.Name(), ".tmp-", "temporary file left behind")
			}
		})
	}
}

func TestRunMalformedRowAborts(t *testing.T) {
	cfg := setup(t, "Q1,A,B,1\n", "Q1,A,B,1\nQ2,A,B,7\n")

	var log bytes.Buffer
	_, err := Run(context.Background(), cfg, types.ModeFlashcard, &log)
	require.Error(t, err)
	assert.ErrorIs(t, err, quiz.ErrMalformedRow)
	assert.Contains(t, err.Error(), "chapter2.csv: row 2")

	_, statErr := os.Stat(cfg.Flashcards.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunOutputWriteFailure(t *testing.T) {
	cfg := setup(t, sampleChapters...)
	blocker := filepath.Join(filepath.Dir(cfg.Document.Path), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	cfg.Document.Path = filepath.Join(blocker, "questions.docx")

	var log bytes.Buffer
	_, err := Run(context.Background(), cfg, types.ModeDocument, &log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing docx output")
	assert.True(t, strings.HasPrefix(log.String(), "Running docx export"))
}

func TestRunCancelled(t *testing.T) {
	cfg := setup(t, sampleChapters...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	_, err := Run(ctx, cfg, types.ModeDocument, &log)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(cfg.Document.Path)
	assert.True(t, os.IsNotExist(statErr))
}
