// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank persists parsed chapters in a SQLite question bank so other
// tools can query questions and answers relationally.
package bank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/quizbank/pkg/types"
)

// Store manages the question bank SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the question bank at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chapters (
			number INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			tag TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chapter INTEGER NOT NULL REFERENCES chapters(number) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct_index INTEGER NOT NULL,
			UNIQUE (chapter, position)
		)`,
		`CREATE TABLE IF NOT EXISTS answers (
			question_id INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (question_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_questions_chapter ON questions(chapter)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// PutChapter stores a chapter with its questions and answers, replacing any
// earlier copy of the same chapter number.
func (s *Store) PutChapter(ctx context.Context, ch *types.Chapter, tag string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE number = ?`, ch.Number); err != nil {
		return fmt.Errorf("deleting old chapter %d: %w", ch.Number, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chapters (number, title, tag) VALUES (?, ?, ?)`,
		ch.Number, ch.Title, tag,
	); err != nil {
		return fmt.Errorf("inserting chapter %d: %w", ch.Number, err)
	}

	answerStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO answers (question_id, position, text, correct) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing answer insert: %w", err)
	}
	defer answerStmt.Close()

	for i, q := range ch.Questions {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO questions (chapter, position, text, correct_index) VALUES (?, ?, ?, ?)`,
			ch.Number, i, q.Text, q.CorrectIndex,
		)
		if err != nil {
			return fmt.Errorf("inserting chapter %d question %d: %w", ch.Number, i+1, err)
		}
		qid, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading question id: %w", err)
		}
		for j, a := range q.Answers {
			if _, err := answerStmt.ExecContext(ctx, qid, j, a, j == q.CorrectIndex); err != nil {
				return fmt.Errorf("inserting chapter %d question %d answer %d: %w", ch.Number, i+1, j+1, err)
			}
		}
	}

	return tx.Commit()
}

// Stats holds row counts for the question bank.
type Stats struct {
	Chapters  int
	Questions int
	Answers   int
}

// Stats counts the stored chapters, questions and answers.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT (SELECT count(*) FROM chapters), (SELECT count(*) FROM questions), (SELECT count(*) FROM answers)`,
	).Scan(&st.Chapters, &st.Questions, &st.Answers)
	if err != nil {
		return Stats{}, fmt.Errorf("counting rows: %w", err)
	}
	return st, nil
}

// Chapter loads a stored chapter with its questions in position order.
func (s *Store) Chapter(ctx context.Context, number int) (*types.Chapter, error) {
	ch := &types.Chapter{Number: number}
	err := s.db.QueryRowContext(ctx, `SELECT title FROM chapters WHERE number = ?`, number).Scan(&ch.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chapter %d not found", number)
	}
	if err != nil {
		return nil, fmt.Errorf("querying chapter %d: %w", number, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT q.id, q.text, q.correct_index, a.text
		 FROM questions q JOIN answers a ON a.question_id = q.id
		 WHERE q.chapter = ?
		 ORDER BY q.position, a.position`, number)
	if err != nil {
		return nil, fmt.Errorf("querying questions: %w", err)
	}
	defer rows.Close()

	lastID := int64(-1)
	for rows.Next() {
		var (
			id           int64
			text, answer string
			correct      int
		)
		if err := rows.Scan(&id, &text, &correct, &answer); err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		if id != lastID {
			ch.Questions = append(ch.Questions, types.Question{Text: text, CorrectIndex: correct})
			lastID = id
		}
		q := &ch.Questions[len(ch.Questions)-1]
		q.Answers = append(q.Answers, answer)
	}
	return ch, rows.Err()
}
