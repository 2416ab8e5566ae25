package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) Save(ctx context.Context, q *Quiz) error {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	questions, err := json.Marshal(q.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quizzes (id, source, language, questions, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		q.ID, q.Source, q.Language, string(questions), formatTime(q.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) Get(ctx context.Context, id string) (*Quiz, error) {
	var (
		q         Quiz
		questions string
		created   string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, source, language, questions, created_at FROM quizzes WHERE id = ?`, id).
		Scan(&q.ID, &q.Source, &q.Language, &questions, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quiz %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(questions), &q.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions of quiz %s: %w", id, err)
	}
	if q.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &q, nil
}
