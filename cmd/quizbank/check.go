// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizbank/internal/quiz"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report every malformed row in the chapter source files",
	Long: `Check parses every chapter source file without writing any output and
lists each problem with its file and row: missing files, rows whose fields
are all empty, and correct-answer markers that are not an integer or do not
name one of the row's options. It exits non-zero if any problem is found.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	reports := quiz.LintAll(cfg)
	if err := formatCheckOutput(cmd.OutOrStdout(), reports, format); err != nil {
		return err
	}

	issues := 0
	for _, r := range reports {
		issues += len(r.Issues)
	}
	if issues > 0 {
		return fmt.Errorf("%d issue(s) found", issues)
	}
	return nil
}

func formatCheckOutput(w io.Writer, reports []quiz.ChapterReport, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "text", "":
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
	}

	total := 0
	for _, r := range reports {
		total += r.Questions
		status := "ok"
		if !r.OK() {
			status = fmt.Sprintf("%d issue(s)", len(r.Issues))
		}
		fmt.Fprintf(w, "chapter %d  %-30s  %3d questions  %s\n", r.Chapter, r.Path, r.Questions, status)
		for _, issue := range r.Issues {
			if issue.Row > 0 {
				fmt.Fprintf(w, "    row %d: %s\n", issue.Row, issue.Reason)
			} else {
				fmt.Fprintf(w, "    %s\n", issue.Reason)
			}
		}
	}
	fmt.Fprintf(w, "\n%d questions in %d chapters\n", total, len(reports))
	return nil
}

func init() {
	checkCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(checkCmd)
}
