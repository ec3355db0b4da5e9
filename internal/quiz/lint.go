// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"errors"

	"github.com/pdiddy/quizbank/pkg/types"
)

// Issue describes one malformed row found by LintChapter.
type Issue struct {
	Row    int    `json:"row" yaml:"row"`
	Reason string `json:"reason" yaml:"reason"`
}

// ChapterReport summarizes a lint pass over one chapter source file.
type ChapterReport struct {
	Chapter   int     `json:"chapter" yaml:"chapter"`
	Path      string  `json:"path" yaml:"path"`
	Questions int     `json:"questions" yaml:"questions"`
	Issues    []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// OK reports whether the chapter parsed without issues.
func (r ChapterReport) OK() bool {
	return len(r.Issues) == 0
}

// LintChapter parses the whole source file for chapter number and records
// every malformed row rather than stopping at the first. A missing file is
// returned as an error; a reader syntax error ends the pass and is recorded
// as the final issue.
func LintChapter(cfg types.SourceConfig, number int) (ChapterReport, error) {
	report := ChapterReport{Chapter: number, Path: SourcePath(cfg, number)}

	comma, err := delimiter(cfg)
	if err != nil {
		return report, err
	}

	f, err := openSource(report.Path, number)
	if err != nil {
		return report, err
	}
	defer f.Close()

	err = scan(f, report.Path, comma, func(line int, fields []string) error {
		if _, err := ParseRow(fields); err != nil {
			report.Issues = append(report.Issues, Issue{Row: line, Reason: err.Error()})
			return nil
		}
		report.Questions++
		return nil
	})

	var rowErr *RowError
	if errors.As(err, &rowErr) {
		report.Issues = append(report.Issues, Issue{Row: rowErr.Row, Reason: rowErr.Err.Error()})
		return report, nil
	}
	return report, err
}

// LintAll lints chapters 1 through cfg.Chapters. Missing files are reported
// as issues on row 0 so one pass surfaces every authoring problem.
func LintAll(cfg types.Config) []ChapterReport {
	reports := make([]ChapterReport, 0, cfg.Chapters)
	for n := 1; n <= cfg.Chapters; n++ {
		report, err := LintChapter(cfg.Source, n)
		if err != nil {
			report.Issues = append(report.Issues, Issue{Row: 0, Reason: err.Error()})
		}
		reports = append(reports, report)
	}
	return reports
}
