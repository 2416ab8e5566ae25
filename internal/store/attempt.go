package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Append(ctx context.Context, a *Attempt) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now()
	}

	quizID := sql.NullString{String: a.QuizID, Valid: a.QuizID != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts
		 (id, quiz_id, source, score, total_questions, correct_answers, status, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, quizID, a.Source, a.Score, a.TotalQuestions, a.CorrectAnswers, a.Status,
		formatTime(a.SubmittedAt))
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) List(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	query := `SELECT id, quiz_id, source, score, total_questions, correct_answers, status, submitted_at
		FROM quiz_attempts`
	var args []any
	if opts.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY submitted_at DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a         Attempt
			quizID    sql.NullString
			submitted string
		)
		err := rows.Scan(&a.ID, &quizID, &a.Source, &a.Score, &a.TotalQuestions,
			&a.CorrectAnswers, &a.Status, &submitted)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.QuizID = quizID.String
		if a.SubmittedAt, err = parseTime(submitted); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
