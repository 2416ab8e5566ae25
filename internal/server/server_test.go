package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/learn"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/store"
)

const catsURL = "https://en.wikipedia.org/wiki/Cat"

// fakeLearner answers for catsURL and fails with err otherwise.
type fakeLearner struct {
	err error

	gotTarget string
	gotLang   language.Code
	gotUpload learn.Upload
	gotSub    quiz.Submission
}

func (f *fakeLearner) check(u string) error {
	if u != catsURL {
		return f.err
	}
	return nil
}

func (f *fakeLearner) Ingest(_ context.Context, u string) (*document.Document, error) {
	if err := f.check(u); err != nil {
		return nil, err
	}
	return document.New("Cat", "en", document.Segment("Cats purr.\n\n== Behaviour ==\nThey sleep.")), nil
}

func (f *fakeLearner) Summarize(_ context.Context, u string) (*learn.SummaryResult, error) {
	if err := f.check(u); err != nil {
		return nil, err
	}
	return &learn.SummaryResult{Title: "Cat", Summary: "Cats are small."}, nil
}

func (f *fakeLearner) Translate(_ context.Context, u, target string) (*learn.TranslationResult, error) {
	f.gotTarget = target
	if err := f.check(u); err != nil {
		return nil, err
	}
	return &learn.TranslationResult{OriginalTitle: "Cat", Translation: "Chat"}, nil
}

func (f *fakeLearner) Quiz(_ context.Context, u string) (*learn.QuizResult, error) {
	if err := f.check(u); err != nil {
		return nil, err
	}
	return &learn.QuizResult{QuizID: "q-1", Title: "Cat", Quiz: []generation.QuizQuestion{
		{Question: "What do cats do?", Options: []string{"Purr", "Bark", "Moo", "Quack"}, Answer: "Purr"},
	}}, nil
}

func (f *fakeLearner) Grade(_ context.Context, sub quiz.Submission) (quiz.Result, error) {
	f.gotSub = sub
	if sub.QuizID == "missing" {
		return quiz.Result{}, learn.ErrQuizNotFound
	}
	return quiz.Grade(sub.Answers, []generation.QuizQuestion{{Question: "Q", Answer: "A"}}), nil
}

func (f *fakeLearner) SummarizePDF(_ context.Context, up learn.Upload, lang language.Code) (*learn.UploadResult, error) {
	f.gotUpload, f.gotLang = up, lang
	if f.err != nil {
		return nil, f.err
	}
	return &learn.UploadResult{Filename: up.Filename, Summary: "short", TextLength: len(up.Content)}, nil
}

func (f *fakeLearner) TranslatePDF(_ context.Context, up learn.Upload, target string) (*learn.UploadResult, error) {
	f.gotUpload, f.gotTarget = up, target
	return &learn.UploadResult{Filename: up.Filename, Translation: "court", TextLength: len(up.Content)}, nil
}

func (f *fakeLearner) QuizPDF(_ context.Context, up learn.Upload, lang language.Code) (*learn.UploadResult, error) {
	f.gotUpload, f.gotLang = up, lang
	return &learn.UploadResult{Filename: up.Filename, QuizID: "q-2"}, nil
}

func do(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var body map[string]any
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body
}

func get(path string, params url.Values) *http.Request {
	return httptest.NewRequest(http.MethodGet, path+"?"+params.Encode(), nil)
}

func TestIngestReturnsOrderedSections(t *testing.T) {
	srv := New(Options{Learner: &fakeLearner{}})

	rec, _ := do(t, srv, get("/ingest/wiki", url.Values{"url": {catsURL}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"url":"`+catsURL+`","title":"Cat","language":"en","sections":{"Introduction":"Cats purr.","Behaviour":"They sleep."}}`,
		rec.Body.String())
	assert.Less(t, strings.Index(rec.Body.String(), "Introduction"), strings.Index(rec.Body.String(), "Behaviour"))
}

func TestSourceFailuresRenderedAsData(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantOpts   []any
	}{
		{
			name:       "ambiguous",
			err:        failure.AmbiguousSource([]string{"Mercury (planet)", "Mercury (element)"}),
			wantStatus: http.StatusOK,
			wantError:  "Ambiguous title",
			wantOpts:   []any{"Mercury (planet)", "Mercury (element)"},
		},
		{"not found", failure.SourceNotFound("Nope"), http.StatusOK, "Article not found", nil},
		{"invalid locator", failure.InvalidLocator("https://x.org/"), http.StatusBadRequest, `invalid locator "https://x.org/"`, nil},
		{"provider", failure.ProviderError(errors.New("quota exceeded")), http.StatusBadGateway, "quota exceeded", nil},
		{"malformed", failure.MalformedProviderOutput(errors.New("bad json")), http.StatusBadGateway, "provider returned malformed output", nil},
		{"unexpected", errors.New("disk full"), http.StatusInternalServerError, "internal error", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(Options{Learner: &fakeLearner{err: tt.err}})
			rec, body := do(t, srv, get("/ai/summarize", url.Values{"url": {"https://en.wikipedia.org/wiki/Other"}}))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantError, body["error"])
			if tt.wantOpts != nil {
				assert.Equal(t, tt.wantOpts, body["options"])
			} else {
				assert.NotContains(t, body, "options")
			}
		})
	}
}

func TestMissingURL(t *testing.T) {
	srv := New(Options{Learner: &fakeLearner{}})
	for _, path := range []string{"/ingest/wiki", "/ai/summarize", "/ai/translate", "/ai/quiz"} {
		rec, body := do(t, srv, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "url is required", body["error"], path)
	}
}

func TestTranslatePassesTarget(t *testing.T) {
	fl := &fakeLearner{}
	srv := New(Options{Learner: fl})

	rec, body := do(t, srv, get("/ai/translate", url.Values{"url": {catsURL}, "target_lang": {"German"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Chat", body["translation"])
	assert.Equal(t, "Cat", body["original_title"])
	assert.Equal(t, "German", fl.gotTarget)
}

func TestQuizAndGrade(t *testing.T) {
	fl := &fakeLearner{}
	srv := New(Options{Learner: fl})

	rec, body := do(t, srv, get("/ai/quiz", url.Values{"url": {catsURL}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "q-1", body["quiz_id"])
	assert.Len(t, body["quiz"], 1)

	payload := `{"article_url":"` + catsURL + `","quiz_id":"q-1","answers":[{"question":"Q","user_answer":"A"}]}`
	rec, body = do(t, srv, httptest.NewRequest(http.MethodPost, "/ai/quiz/grade", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, body["score"])
	assert.Equal(t, "Excellent", body["status"])
	assert.Equal(t, "q-1", fl.gotSub.QuizID)

	rec, body = do(t, srv, httptest.NewRequest(http.MethodPost, "/ai/quiz/grade",
		strings.NewReader(`{"quiz_id":"missing","answers":[]}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Quiz not found", body["error"])

	rec, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/ai/quiz/grade", strings.NewReader(`{"answers":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/ai/quiz/grade", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func multipartRequest(t *testing.T, path, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadRoutes(t *testing.T) {
	fl := &fakeLearner{}
	srv := New(Options{Learner: fl})

	rec, body := do(t, srv, multipartRequest(t, "/upload/pdf/summarize", "notes.pdf", []byte("%PDF-1.4"),
		map[string]string{"lang_code": "fr"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "notes.pdf", body["filename"])
	assert.Equal(t, float64(8), body["text_length"])
	assert.Equal(t, language.Code("fr"), fl.gotLang)
	assert.Equal(t, []byte("%PDF-1.4"), fl.gotUpload.Content)

	rec, _ = do(t, srv, multipartRequest(t, "/upload/pdf/quiz", "notes.pdf", []byte("x"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, language.Default, fl.gotLang)

	rec, _ = do(t, srv, multipartRequest(t, "/upload/pdf/translate", "notes.pdf", []byte("x"),
		map[string]string{"target_lang": "Arabic"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Arabic", fl.gotTarget)

	rec, body = do(t, srv, multipartRequest(t, "/upload/pdf/summarize", "", nil, map[string]string{"lang_code": "en"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file is required", body["error"])
}

func TestUploadFailures(t *testing.T) {
	srv := New(Options{Learner: &fakeLearner{err: failure.EmptyExtractedText(nil)}})
	rec, body := do(t, srv, multipartRequest(t, "/upload/pdf/summarize", "scan.pdf", []byte("x"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No text could be extracted from the PDF", body["error"])

	srv = New(Options{Learner: &fakeLearner{err: failure.UnsupportedUpload("a.txt")}})
	rec, body = do(t, srv, multipartRequest(t, "/upload/pdf/summarize", "a.txt", []byte("x"), nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only PDF files are supported", body["error"])

	srv = New(Options{Learner: &fakeLearner{}, MaxUploadBytes: 64})
	rec, _ = do(t, srv, multipartRequest(t, "/upload/pdf/summarize", "big.pdf", bytes.Repeat([]byte("x"), 1024), nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestExport(t *testing.T) {
	srv := New(Options{Learner: &fakeLearner{}})
	payload := `{"title":"Cat (animal)","content":"Cats purr."}`

	rec, _ := do(t, srv, httptest.NewRequest(http.MethodPost, "/export/txt", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Title: Cat (animal)\n\nCats purr.", rec.Body.String())
	assert.Equal(t, `attachment; filename="Cat_animal.txt"`, rec.Header().Get("Content-Disposition"))

	rec, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/export/pdf", strings.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec, _ = do(t, srv, httptest.NewRequest(http.MethodPost, "/export/docx", strings.NewReader(payload)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistoryRoutes(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()

	require.NoError(t, st.Articles().Record(ctx, &store.Article{Title: "Cat", Language: "en", Source: catsURL, Action: "summary"}))
	require.NoError(t, st.Attempts().Append(ctx, &store.Attempt{Source: catsURL, Score: 60, Status: "Good"}))

	srv := New(Options{Learner: &fakeLearner{}, Articles: st.Articles(), Attempts: st.Attempts()})

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/articles", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var articles []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 1)
	assert.Equal(t, "summary", articles[0]["action"])

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, get("/history/attempts", url.Values{"source": {catsURL}, "limit": {"5"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	var attempts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &attempts))
	require.Len(t, attempts, 1)
	assert.Equal(t, "Good", attempts[0]["status"])

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, get("/history/articles", url.Values{"source": {"https://en.wikipedia.org/wiki/Dog"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, get("/history/attempts", url.Values{"limit": {"-1"}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Without repositories the routes are absent.
	bare := New(Options{Learner: &fakeLearner{}})
	rec = httptest.NewRecorder()
	bare.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/articles", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	rec, body := do(t, New(Options{Learner: &fakeLearner{}}), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}
