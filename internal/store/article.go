package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type articleRepo struct {
	db *sql.DB
}

func (r *articleRepo) Record(ctx context.Context, a *Article) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.FetchedAt.IsZero() {
		a.FetchedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO articles (id, title, language, source, action, sections, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Language, a.Source, a.Action, a.Sections, formatTime(a.FetchedAt))
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *articleRepo) Recent(ctx context.Context, opts QueryOpts) ([]Article, error) {
	query := `SELECT id, title, language, source, action, sections, fetched_at FROM articles`
	var args []any
	if opts.Source != "" {
		query += ` WHERE source = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY fetched_at DESC`
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var out []Article
	for rows.Next() {
		var (
			a       Article
			fetched string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Language, &a.Source, &a.Action, &a.Sections, &fetched); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if a.FetchedAt, err = parseTime(fetched); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
