// Package server exposes the learner operations over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/learn"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/store"
)

// Learner is the operation set served over HTTP. *learn.Service
// implements it.
type Learner interface {
	Ingest(ctx context.Context, url string) (*document.Document, error)
	Summarize(ctx context.Context, url string) (*learn.SummaryResult, error)
	Translate(ctx context.Context, url, target string) (*learn.TranslationResult, error)
	Quiz(ctx context.Context, url string) (*learn.QuizResult, error)
	Grade(ctx context.Context, sub quiz.Submission) (quiz.Result, error)

	SummarizePDF(ctx context.Context, up learn.Upload, lang language.Code) (*learn.UploadResult, error)
	TranslatePDF(ctx context.Context, up learn.Upload, target string) (*learn.UploadResult, error)
	QuizPDF(ctx context.Context, up learn.Upload, lang language.Code) (*learn.UploadResult, error)
}

// Options configures a Server. The history repositories are optional;
// without them the history routes are not mounted.
type Options struct {
	Learner  Learner
	Articles store.ArticleRepo
	Attempts store.AttemptRepo
	Logger   *zap.Logger

	// MaxUploadBytes bounds multipart upload bodies.
	MaxUploadBytes int64
}

// Server routes HTTP requests to a Learner.
type Server struct {
	opts   Options
	logger *zap.Logger
	router chi.Router
}

// New creates a Server and mounts its routes.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 20 << 20
	}
	s := &Server{opts: opts, logger: opts.Logger}
	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then drains
// in-flight requests for up to shutdownGrace.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const shutdownGrace = 15 * time.Second

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/ingest/wiki", s.handleIngest)

	r.Route("/ai", func(r chi.Router) {
		r.Get("/summarize", s.handleSummarize)
		r.Get("/translate", s.handleTranslate)
		r.Get("/quiz", s.handleQuiz)
		r.Post("/quiz/grade", s.handleGrade)
	})

	r.Route("/upload/pdf", func(r chi.Router) {
		r.Post("/summarize", s.handleSummarizePDF)
		r.Post("/translate", s.handleTranslatePDF)
		r.Post("/quiz", s.handleQuizPDF)
	})

	r.Post("/export/{format}", s.handleExport)

	if s.opts.Articles != nil && s.opts.Attempts != nil {
		r.Get("/history/articles", s.handleArticleHistory)
		r.Get("/history/attempts", s.handleAttemptHistory)
	}
	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}
