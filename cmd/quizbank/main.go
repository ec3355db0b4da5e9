// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quizbank CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizbank/internal/config"
	"github.com/pdiddy/quizbank/internal/export"
	"github.com/pdiddy/quizbank/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configErr holds a config file read failure from initConfig; commands
// report it when they load settings.
var configErr error

// rootCmd exports the question bank in the mode named by its optional
// argument.
var rootCmd = &cobra.Command{
	Use:   "quizbank [docx|anki|bank]",
	Short: "Convert chapter question files into a document, flashcards, or a question bank",
	Long: `quizbank reads one delimited source file per chapter (data/chapter1.csv,
data/chapter2.csv, ...) where each row holds a question, its options, and a
trailing 1-based marker naming the correct option.

With no argument or "docx" it writes questions.docx: numbered questions with
the correct option bold and underlined, one chapter per page. With "anki" it
writes anki_csv.csv for Anki's CSV import. With "bank" it writes a SQLite
question bank, questions.db.

Use "quizbank check" to list every malformed row before exporting.`,
	Args:         cobra.MaximumNArgs(1),
	ValidArgs:    []string{string(types.ModeDocument), string(types.ModeFlashcard), string(types.ModeBank)},
	SilenceUsage: true,
	RunE:         runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	mode, err := export.ParseMode(arg)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, err = export.Run(cmd.Context(), cfg, mode, cmd.OutOrStdout())
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./quizbank.yaml or ~/.config/quizbank/quizbank.yaml)")
	flags.Int("chapters", 0, "number of chapters to read (default 5)")
	flags.String("source", "", `chapter source path template, "{n}" is the chapter number (default "data/chapter{n}.csv")`)

	viper.BindPFlag("chapters", flags.Lookup("chapters"))
	viper.BindPFlag("source.pattern", flags.Lookup("source"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	config.Setup(viper.GetViper(), cfgFile)

	used, err := config.Read(viper.GetViper())
	if err != nil {
		configErr = err
		return
	}
	if used != "" {
		fmt.Fprintln(os.Stderr, "Using config file:", used)
	}
}

// loadConfig returns the merged settings for this invocation.
func loadConfig() (types.Config, error) {
	if configErr != nil {
		return types.Config{}, configErr
	}
	return config.Load(viper.GetViper())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
