// Package learn implements the learner-facing operations: ingest an
// article or upload, then summarize, translate, quiz and grade it. Every
// operation works on the Introduction section of the source.
package learn

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/store"
)

// Ingester turns a locator into a segmented document.
type Ingester interface {
	Fetch(ctx context.Context, raw string) (*document.Document, error)
}

// TextExtractor pulls plain text out of an uploaded PDF.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte) (string, error)
}

// ErrQuizNotFound is returned when a submission names an unknown quiz.
var ErrQuizNotFound = errors.New("quiz not found")

// Actions recorded in the article history.
const (
	ActionIngest         = "ingest"
	ActionSummary        = "summary"
	ActionTranslation    = "translation"
	ActionQuiz           = "quiz"
	ActionPDFSummary     = "pdf_summary"
	ActionPDFTranslation = "pdf_translation"
	ActionPDFQuiz        = "pdf_quiz"
)

// Options holds the service dependencies. The repositories are optional;
// without Quizzes every grading regenerates the answer key.
type Options struct {
	Ingester  Ingester
	Generator generation.Generator
	Extractor TextExtractor

	Articles store.ArticleRepo
	Quizzes  store.QuizRepo
	Attempts store.AttemptRepo

	Logger *zap.Logger
}

// Service runs the learner-facing operations.
type Service struct {
	opts   Options
	cfg    Config
	logger *zap.Logger
}

// NewService creates a Service.
func NewService(opts Options, cfg Config) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{opts: opts, cfg: cfg, logger: logger}
}

// SummaryResult is the outcome of Summarize.
type SummaryResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// TranslationResult is the outcome of Translate.
type TranslationResult struct {
	OriginalTitle string `json:"original_title"`
	Translation   string `json:"translation"`
}

// QuizResult is an issued quiz. QuizID is empty when no quiz store is
// configured.
type QuizResult struct {
	QuizID string                    `json:"quiz_id,omitempty"`
	Title  string                    `json:"title"`
	Quiz   []generation.QuizQuestion `json:"quiz"`
}

// Ingest fetches and segments the article behind url.
func (s *Service) Ingest(ctx context.Context, url string) (*document.Document, error) {
	doc, err := s.opts.Ingester.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	s.record(ctx, doc, url, ActionIngest)
	return doc, nil
}

// Summarize summarizes the Introduction in the article's own language.
func (s *Service) Summarize(ctx context.Context, url string) (*SummaryResult, error) {
	doc, err := s.opts.Ingester.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	summary, err := s.opts.Generator.Summarize(ctx, doc.Introduction(), doc.Language)
	if err != nil {
		return nil, err
	}
	s.record(ctx, doc, url, ActionSummary)
	return &SummaryResult{Title: doc.Title, Summary: summary}, nil
}

// Translate translates the Introduction into target, a language name.
// An empty target uses the configured default.
func (s *Service) Translate(ctx context.Context, url, target string) (*TranslationResult, error) {
	doc, err := s.opts.Ingester.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	translation, err := s.opts.Generator.Translate(ctx, doc.Introduction(), s.cfg.target(target))
	if err != nil {
		return nil, err
	}
	s.record(ctx, doc, url, ActionTranslation)
	return &TranslationResult{OriginalTitle: doc.Title, Translation: translation}, nil
}

// Quiz generates a quiz on the Introduction and stores it for grading.
func (s *Service) Quiz(ctx context.Context, url string) (*QuizResult, error) {
	doc, err := s.opts.Ingester.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	questions, err := s.opts.Generator.GenerateQuiz(ctx, doc.Introduction(), doc.Language)
	if err != nil {
		return nil, err
	}
	s.record(ctx, doc, url, ActionQuiz)

	id, err := s.saveQuiz(ctx, url, string(doc.Language), questions)
	if err != nil {
		return nil, err
	}
	return &QuizResult{QuizID: id, Title: doc.Title, Quiz: questions}, nil
}

// Grade scores a submission. A submission naming a stored quiz is graded
// against that quiz; otherwise the key is regenerated from the source.
func (s *Service) Grade(ctx context.Context, sub quiz.Submission) (quiz.Result, error) {
	key, source, err := s.answerKey(ctx, sub)
	if err != nil {
		return quiz.Result{}, err
	}

	result := quiz.Grade(sub.Answers, key)
	s.logger.Info("graded quiz",
		zap.String("source", source),
		zap.String("quiz_id", sub.QuizID),
		zap.Int("correct", result.CorrectAnswers),
		zap.Int("total", result.TotalQuestions),
		zap.String("status", string(result.Status)))

	if s.opts.Attempts != nil {
		err := s.opts.Attempts.Append(ctx, &store.Attempt{
			QuizID:         sub.QuizID,
			Source:         source,
			Score:          result.Score,
			TotalQuestions: result.TotalQuestions,
			CorrectAnswers: result.CorrectAnswers,
			Status:         string(result.Status),
			SubmittedAt:    result.SubmittedAt,
		})
		if err != nil {
			return quiz.Result{}, fmt.Errorf("record attempt: %w", err)
		}
	}
	return result, nil
}

func (s *Service) answerKey(ctx context.Context, sub quiz.Submission) ([]generation.QuizQuestion, string, error) {
	if sub.QuizID != "" {
		if s.opts.Quizzes == nil {
			return nil, "", fmt.Errorf("%w: %s", ErrQuizNotFound, sub.QuizID)
		}
		stored, err := s.opts.Quizzes.Get(ctx, sub.QuizID)
		if err != nil {
			return nil, "", fmt.Errorf("load quiz: %w", err)
		}
		if stored == nil {
			return nil, "", fmt.Errorf("%w: %s", ErrQuizNotFound, sub.QuizID)
		}
		return stored.Questions, stored.Source, nil
	}

	doc, err := s.opts.Ingester.Fetch(ctx, sub.SourceReference)
	if err != nil {
		return nil, "", err
	}
	key, err := s.opts.Generator.GenerateQuiz(ctx, doc.Introduction(), doc.Language)
	if err != nil {
		return nil, "", err
	}
	s.logger.Debug("regenerated answer key", zap.String("source", sub.SourceReference))
	return key, sub.SourceReference, nil
}

func (s *Service) saveQuiz(ctx context.Context, source, lang string, questions []generation.QuizQuestion) (string, error) {
	if s.opts.Quizzes == nil {
		return "", nil
	}
	q := &store.Quiz{Source: source, Language: lang, Questions: questions}
	if err := s.opts.Quizzes.Save(ctx, q); err != nil {
		return "", fmt.Errorf("save quiz: %w", err)
	}
	return q.ID, nil
}

// record appends to the article history. History is informational, so a
// failed write is logged and the operation still succeeds.
func (s *Service) record(ctx context.Context, doc *document.Document, source, action string) string {
	if s.opts.Articles == nil {
		return ""
	}
	a := &store.Article{
		Title:    doc.Title,
		Language: string(doc.Language),
		Source:   source,
		Action:   action,
		Sections: doc.Sections.Len(),
	}
	if err := s.opts.Articles.Record(ctx, a); err != nil {
		s.logger.Warn("record article history failed",
			zap.String("source", source),
			zap.String("action", action),
			zap.Error(err))
		return ""
	}
	return a.ID
}
