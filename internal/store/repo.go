package store

import (
	"context"
	"time"

	"github.com/abhisek/wikismart/internal/generation"
)

// Article records one processed source and what was done with it.
type Article struct {
	ID        string
	Title     string
	Language  string
	Source    string
	Action    string // e.g. "ingest", "summary", "pdf_quiz"
	Sections  int
	FetchedAt time.Time
}

// Quiz is an issued quiz kept verbatim so it can be graded later.
type Quiz struct {
	ID        string
	Source    string
	Language  string
	Questions []generation.QuizQuestion
	CreatedAt time.Time
}

// Attempt is a graded quiz submission.
type Attempt struct {
	ID             string
	QuizID         string // empty when the key was regenerated
	Source         string
	Score          float64
	TotalQuestions int
	CorrectAnswers int
	Status         string
	SubmittedAt    time.Time
}

// QueryOpts filters list queries.
type QueryOpts struct {
	Limit  int    // max results (0 = unlimited)
	Source string // exact source match, empty for all
}

// ArticleRepo keeps the ingestion history.
type ArticleRepo interface {
	// Record stores a; an empty ID is assigned.
	Record(ctx context.Context, a *Article) error

	// Recent returns articles newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]Article, error)
}

// QuizRepo stores issued quizzes.
type QuizRepo interface {
	// Save stores q; an empty ID is assigned.
	Save(ctx context.Context, q *Quiz) error

	// Get returns the quiz with the given ID, or nil if none exists.
	Get(ctx context.Context, id string) (*Quiz, error)
}

// AttemptRepo stores graded attempts.
type AttemptRepo interface {
	// Append stores a; an empty ID is assigned.
	Append(ctx context.Context, a *Attempt) error

	// List returns attempts newest first.
	List(ctx context.Context, opts QueryOpts) ([]Attempt, error)
}
