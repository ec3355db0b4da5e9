// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirWithChapters switches to a temp dir holding two chapter files under
// the default data/ layout.
func chdirWithChapters(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "chapter1.csv"), []byte("Q1,A,B,C,,,2\nQ2,X,Y,1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "chapter2.csv"), []byte("Q3,P,Q,2\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func readDocumentXML(t *testing.T, path string) string {
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

func TestRootDefaultModeMatchesDocx(t *testing.T) {
	dir := chdirWithChapters(t)
	docPath := filepath.Join(dir, "questions.docx")

	out, err := execute(t, "--chapters", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Running docx export")
	assert.Contains(t, out, "Exported 3 questions from 2 chapters")
	viaDefault := readDocumentXML(t, docPath)
	require.NoError(t, os.Remove(docPath))

	_, err = execute(t, "docx", "--chapters", "2")
	require.NoError(t, err)
	assert.Equal(t, viaDefault, readDocumentXML(t, docPath))

	_, err = os.Stat(filepath.Join(dir, "anki_csv.csv"))
	assert.True(t, os.IsNotExist(err), "document mode must not write flashcards")
}

func TestRootFlashcardMode(t *testing.T) {
	dir := chdirWithChapters(t)

	out, err := execute(t, "anki", "--chapters", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Running anki export")

	_, err = os.Stat(filepath.Join(dir, "anki_csv.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "questions.docx"))
	assert.True(t, os.IsNotExist(err), "flashcard mode must not write the document")
}

func TestRootRejectsBadArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown mode", args: []string{"bogus", "--chapters", "2"}, wantErr: "unknown mode"},
		{name: "too many modes", args: []string{"docx", "anki", "--chapters", "2"}, wantErr: "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirWithChapters(t)

			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			for _, e := range entries {
				assert.Equal(t, "data", e.Name(), "no output expected")
			}
		})
	}
}
