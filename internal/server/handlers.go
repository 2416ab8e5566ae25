package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/export"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/learn"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/store"
)

const defaultHistoryLimit = 50

// requireURL returns the url query parameter or writes a 400.
func requireURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	u := strings.TrimSpace(r.URL.Query().Get("url"))
	if u == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return "", false
	}
	return u, true
}

// GET /ingest/wiki?url=
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	u, ok := requireURL(w, r)
	if !ok {
		return
	}
	doc, err := s.opts.Learner.Ingest(r.Context(), u)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ingestView{URL: u, Document: doc})
}

// ingestView echoes the requested locator next to the document.
type ingestView struct {
	URL string `json:"url"`
	*document.Document
}

// GET /ai/summarize?url=
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	u, ok := requireURL(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.Summarize(r.Context(), u)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /ai/translate?url=&target_lang=
func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	u, ok := requireURL(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.Translate(r.Context(), u, r.URL.Query().Get("target_lang"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GET /ai/quiz?url=
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	u, ok := requireURL(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.Quiz(r.Context(), u)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /ai/quiz/grade
func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var sub quiz.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if sub.QuizID == "" && strings.TrimSpace(sub.SourceReference) == "" {
		writeError(w, http.StatusBadRequest, "quiz_id or article_url is required")
		return
	}
	res, err := s.opts.Learner.Grade(r.Context(), sub)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /upload/pdf/summarize (multipart: file, lang_code)
func (s *Server) handleSummarizePDF(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.SummarizePDF(r.Context(), up, language.Parse(r.FormValue("lang_code")))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /upload/pdf/translate (multipart: file, target_lang)
func (s *Server) handleTranslatePDF(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.TranslatePDF(r.Context(), up, r.FormValue("target_lang"))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// POST /upload/pdf/quiz (multipart: file, lang_code)
func (s *Server) handleQuizPDF(w http.ResponseWriter, r *http.Request) {
	up, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	res, err := s.opts.Learner.QuizPDF(r.Context(), up, language.Parse(r.FormValue("lang_code")))
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// readUpload parses the multipart "file" field.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (learn.Upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "upload too large")
			return learn.Upload{}, false
		}
		writeError(w, http.StatusBadRequest, "multipart form with a file field is required")
		return learn.Upload{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return learn.Upload{}, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return learn.Upload{}, false
	}
	return learn.Upload{Filename: header.Filename, Content: content}, true
}

type exportRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// POST /export/{format} with {"title","content"}
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	renderer, err := export.ForFormat(chi.URLParam(r, "format"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	out, err := renderer.Render(req.Title, req.Content)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(req.Title, renderer)))
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type articleView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Language  string `json:"language"`
	Source    string `json:"url"`
	Action    string `json:"action"`
	FetchedAt string `json:"created_at"`
}

type attemptView struct {
	ID          string  `json:"id"`
	QuizID      string  `json:"quiz_id,omitempty"`
	Source      string  `json:"article_url"`
	Score       float64 `json:"score"`
	Status      string  `json:"status"`
	SubmittedAt string  `json:"submitted_at"`
}

// GET /history/articles?source=&limit=
func (s *Server) handleArticleHistory(w http.ResponseWriter, r *http.Request) {
	opts, ok := historyOpts(w, r)
	if !ok {
		return
	}
	articles, err := s.opts.Articles.Recent(r.Context(), opts)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	out := make([]articleView, 0, len(articles))
	for _, a := range articles {
		out = append(out, articleView{
			ID: a.ID, Title: a.Title, Language: a.Language, Source: a.Source,
			Action: a.Action, FetchedAt: a.FetchedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /history/attempts?source=&limit=
func (s *Server) handleAttemptHistory(w http.ResponseWriter, r *http.Request) {
	opts, ok := historyOpts(w, r)
	if !ok {
		return
	}
	attempts, err := s.opts.Attempts.List(r.Context(), opts)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	out := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptView{
			ID: a.ID, QuizID: a.QuizID, Source: a.Source, Score: a.Score,
			Status: a.Status, SubmittedAt: a.SubmittedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func historyOpts(w http.ResponseWriter, r *http.Request) (store.QueryOpts, bool) {
	opts := store.QueryOpts{Limit: defaultHistoryLimit, Source: r.URL.Query().Get("source")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return opts, false
		}
		opts.Limit = n
	}
	return opts, true
}
