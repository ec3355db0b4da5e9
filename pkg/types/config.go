package types

import (
	"strconv"
	"strings"
)

// ChapterPlaceholder is replaced by the chapter number in path, title and
// tag templates.
const ChapterPlaceholder = "{n}"

// ExpandChapter substitutes the chapter number into a template.
func ExpandChapter(template string, number int) string {
	return strings.ReplaceAll(template, ChapterPlaceholder, strconv.Itoa(number))
}

// ExportMode selects the output produced by a run.
type ExportMode string

const (
	ModeDocument  ExportMode = "docx"
	ModeFlashcard ExportMode = "anki"
	ModeBank      ExportMode = "bank"
)

// SourceConfig describes where chapter source files live and how they are
// labelled.
type SourceConfig struct {
	// Pattern is the source path template (e.g. "data/chapter{n}.csv").
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// Delimiter is the field separator; it must be a single character.
	Delimiter string `json:"delimiter" yaml:"delimiter" mapstructure:"delimiter"`

	// Title is the chapter title template (e.g. "الفصل {n}").
	Title string `json:"title" yaml:"title" mapstructure:"title"`
}

// DocumentConfig holds settings for document mode.
type DocumentConfig struct {
	// Title is the centered title placed before the first chapter.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Path is the output DOCX file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// FlashcardConfig holds settings for flashcard mode.
type FlashcardConfig struct {
	// Path is the output CSV file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Tag is the per-chapter tag template (e.g. "chapter{n}").
	Tag string `json:"tag" yaml:"tag" mapstructure:"tag"`

	// Separator is placed between the question text and its options on the
	// front of the card.
	Separator string `json:"separator" yaml:"separator" mapstructure:"separator"`

	// LineBreak joins the lines of the card front. Anki renders fields as
	// HTML, so the default is "<br>".
	LineBreak string `json:"line_break" yaml:"line_break" mapstructure:"line_break"`
}

// BankConfig holds settings for the SQLite question bank mode.
type BankConfig struct {
	// Path is the output SQLite database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all settings for a run.
type Config struct {
	// Chapters is the number of chapters; chapters 1 through Chapters are read.
	Chapters int `json:"chapters" yaml:"chapters" mapstructure:"chapters"`

	Source     SourceConfig    `json:"source" yaml:"source" mapstructure:"source"`
	Document   DocumentConfig  `json:"document" yaml:"document" mapstructure:"document"`
	Flashcards FlashcardConfig `json:"flashcards" yaml:"flashcards" mapstructure:"flashcards"`
	Bank       BankConfig      `json:"bank" yaml:"bank" mapstructure:"bank"`
}
