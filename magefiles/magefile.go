//go:build mage

// Package main contains Mage build targets for quizbank developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories an export expects.
var projectDirs = []string{
	"data",
}

// Init creates the project directory structure for chapter sources.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized. Add data/chapter1.csv, data/chapter2.csv, ...")
	return nil
}

const (
	binDir  = "bin"
	binName = "quizbank"
	cmdPkg  = "./cmd/quizbank"
)

// binPath is the CLI binary produced by Build.
var binPath = filepath.Join(binDir, binName)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := sh.RunV("go", "build", "-o", binPath, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", binPath)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Docx builds the CLI and writes questions.docx from data/.
func Docx() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "docx")
}

// Anki builds the CLI and writes the anki_csv.csv flashcard import file.
func Anki() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "anki")
}

// Bank builds the CLI and writes the questions.db SQLite question bank.
func Bank() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "bank")
}

// Check builds the CLI and reports malformed rows in data/.
func Check() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "check")
}

// All runs every export after a clean check.
func All() {
	mg.SerialDeps(Check, Docx, Anki, Bank)
}
