// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads run settings from defaults, the quizbank.yaml config
// file, QUIZBANK_* environment variables and bound CLI flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/pdiddy/quizbank/pkg/types"
)

const (
	// Name is the config file base name and the directory under ~/.config.
	Name = "quizbank"
	// EnvPrefix prefixes environment overrides (QUIZBANK_CHAPTERS, ...).
	EnvPrefix = "QUIZBANK"
)

// Defaults describe the stock bank layout: five chapters under data/,
// Arabic chapter labels, and the output files in the working directory.
var Defaults = map[string]any{
	"chapters":              5,
	"source.pattern":        "data/chapter{n}.csv",
	"source.delimiter":      ",",
	"source.title":          "الفصل {n}",
	"document.title":        "بنك أسئلة - إقتصاد هندسي",
	"document.path":         "questions.docx",
	"flashcards.path":       "anki_csv.csv",
	"flashcards.tag":        "chapter{n}",
	"flashcards.separator":  "----------",
	"flashcards.line_break": "<br>",
	"bank.path":             "questions.db",
}

// SetDefaults registers Defaults on v.
func SetDefaults(v *viper.Viper) {
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
}

// Setup points v at the config file and environment. When cfgFile is empty
// the file is searched for as ./quizbank.yaml, then
// ~/.config/quizbank/quizbank.yaml.
func Setup(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Read loads the config file if one is found. A missing file is not an
// error; a malformed or explicitly named but unreadable one is.
func Read(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings a run depends on.
func Validate(cfg types.Config) error {
	var issues []Issue
	if cfg.Chapters < 1 {
		issues = append(issues, Issue{Field: "chapters", Message: fmt.Sprintf("must be at least 1, got %d", cfg.Chapters)})
	}
	if strings.TrimSpace(cfg.Source.Pattern) == "" {
		issues = append(issues, Issue{Field: "source.pattern", Message: "is required"})
	}
	if utf8.RuneCountInString(cfg.Source.Delimiter) != 1 {
		issues = append(issues, Issue{Field: "source.delimiter", Message: fmt.Sprintf("must be a single character, got %q", cfg.Source.Delimiter)})
	} else if r, _ := utf8.DecodeRuneInString(cfg.Source.Delimiter); r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		issues = append(issues, Issue{Field: "source.delimiter", Message: fmt.Sprintf("%q cannot be used as a delimiter", cfg.Source.Delimiter)})
	}
	if strings.TrimSpace(cfg.Document.Path) == "" {
		issues = append(issues, Issue{Field: "document.path", Message: "is required"})
	}
	if strings.TrimSpace(cfg.Flashcards.Path) == "" {
		issues = append(issues, Issue{Field: "flashcards.path", Message: "is required"})
	}
	if strings.TrimSpace(cfg.Bank.Path) == "" {
		issues = append(issues, Issue{Field: "bank.path", Message: "is required"})
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}
