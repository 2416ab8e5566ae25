package learn

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wikismart/internal/document"
	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/generation"
	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/llm"
	"github.com/abhisek/wikismart/internal/quiz"
	"github.com/abhisek/wikismart/internal/store"
)

const mercuryURL = "https://fr.wikipedia.org/wiki/Mercure_(planète)"

type stubIngester struct {
	docs  map[string]*document.Document
	calls int
}

func (s *stubIngester) Fetch(_ context.Context, raw string) (*document.Document, error) {
	s.calls++
	if doc, ok := s.docs[raw]; ok {
		return doc, nil
	}
	return nil, failure.SourceNotFound(raw)
}

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(context.Context, []byte) (string, error) {
	return s.text, s.err
}

func mercuryDoc() *document.Document {
	sections := document.Segment("Mercure est la planète la plus proche du Soleil.\n\n== Orbite ==\nElle tourne vite.")
	return document.New("Mercure (planète)", language.Code("fr"), sections)
}

func sampleQuiz() []generation.QuizQuestion {
	quiz := make([]generation.QuizQuestion, generation.QuizSize)
	for i := range quiz {
		quiz[i] = generation.QuizQuestion{
			Question: fmt.Sprintf("Question %d ?", i+1),
			Options:  []string{"Mercure", "Vénus", "Mars", "Terre"},
			Answer:   "Mercure",
		}
	}
	return quiz
}

type fixture struct {
	svc      *Service
	mock     *llm.MockProvider
	ingester *stubIngester
	store    *store.Store
}

func newFixture(t *testing.T, extractor TextExtractor, responses ...llm.MockResponse) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "learn.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider(responses...)
	ingester := &stubIngester{docs: map[string]*document.Document{mercuryURL: mercuryDoc()}}
	if extractor == nil {
		extractor = &stubExtractor{}
	}

	svc := NewService(Options{
		Ingester:  ingester,
		Generator: generation.NewChatGenerator(mock, generation.DefaultConfig(), nil),
		Extractor: extractor,
		Articles:  st.Articles(),
		Quizzes:   st.Quizzes(),
		Attempts:  st.Attempts(),
	}, DefaultConfig())

	return &fixture{svc: svc, mock: mock, ingester: ingester, store: st}
}

func TestSummarizeUsesIntroductionAndLanguage(t *testing.T) {
	f := newFixture(t, nil, llm.MockText("Mercure est petite."))

	res, err := f.svc.Summarize(context.Background(), mercuryURL)
	require.NoError(t, err)
	assert.Equal(t, "Mercure (planète)", res.Title)
	assert.Equal(t, "Mercure est petite.", res.Summary)

	req, _ := f.mock.LastCall()
	assert.Equal(t, "Mercure est la planète la plus proche du Soleil.", req.Messages[0].Content)
	assert.Contains(t, req.System, "French")

	history, err := f.store.Articles().Recent(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, ActionSummary, history[0].Action)
	assert.Equal(t, 2, history[0].Sections)
}

func TestTranslateDefaultsTarget(t *testing.T) {
	f := newFixture(t, nil, llm.MockText("Mercury is the closest planet."), llm.MockText("Merkur"))
	ctx := context.Background()

	res, err := f.svc.Translate(ctx, mercuryURL, "")
	require.NoError(t, err)
	assert.Equal(t, "Mercure (planète)", res.OriginalTitle)
	req, _ := f.mock.LastCall()
	assert.Contains(t, req.System, "French")

	_, err = f.svc.Translate(ctx, mercuryURL, "German")
	require.NoError(t, err)
	req, _ = f.mock.LastCall()
	assert.Contains(t, req.System, "German")
}

func TestSourceErrorsPassThrough(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Summarize(context.Background(), "https://en.wikipedia.org/wiki/Nope")
	assert.True(t, failure.Is(err, failure.KindSourceNotFound))
	assert.Equal(t, 0, f.mock.CallCount())
}

func TestQuizIsStoredAndGradedAgainstStoredKey(t *testing.T) {
	f := newFixture(t, nil, llm.MockJSON(map[string]any{"quiz": sampleQuiz()}))
	ctx := context.Background()

	issued, err := f.svc.Quiz(ctx, mercuryURL)
	require.NoError(t, err)
	require.NotEmpty(t, issued.QuizID)
	require.Len(t, issued.Quiz, generation.QuizSize)

	var answers []quiz.Answer
	for i, q := range issued.Quiz {
		a := quiz.Answer{Question: q.Question, UserAnswer: q.Answer}
		if i == 0 {
			a.UserAnswer = "Mars"
		}
		answers = append(answers, a)
	}

	// No further provider responses are queued: grading must not regenerate.
	result, err := f.svc.Grade(ctx, quiz.Submission{
		SourceReference: mercuryURL,
		QuizID:          issued.QuizID,
		Answers:         answers,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.CorrectAnswers)
	assert.InDelta(t, 80.0, result.Score, 1e-9)
	assert.Equal(t, quiz.StatusExcellent, result.Status)
	assert.Equal(t, 1, f.mock.CallCount())

	attempts, err := f.store.Attempts().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, issued.QuizID, attempts[0].QuizID)
	assert.Equal(t, mercuryURL, attempts[0].Source)
}

func TestGradeRegeneratesWithoutQuizID(t *testing.T) {
	f := newFixture(t, nil, llm.MockJSON(map[string]any{"quiz": sampleQuiz()}))

	result, err := f.svc.Grade(context.Background(), quiz.Submission{
		SourceReference: mercuryURL,
		Answers: []quiz.Answer{
			{Question: "Question 1 ?", UserAnswer: "Mercure"},
			{Question: "Question 2 ?", UserAnswer: "Vénus"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.InDelta(t, 50.0, result.Score, 1e-9)
	assert.Equal(t, quiz.StatusNeedsImprovement, result.Status)
	assert.Equal(t, 1, f.mock.CallCount())
}

func TestGradeEmptySubmission(t *testing.T) {
	f := newFixture(t, nil, llm.MockJSON(map[string]any{"quiz": sampleQuiz()}))

	result, err := f.svc.Grade(context.Background(), quiz.Submission{SourceReference: mercuryURL})
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.Zero(t, result.TotalQuestions)
	assert.Equal(t, quiz.StatusNeedsImprovement, result.Status)
}

func TestGradeUnknownQuiz(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.Grade(context.Background(), quiz.Submission{QuizID: "missing"})
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestSummarizePDF(t *testing.T) {
	long := strings.Repeat("é", 6000)
	f := newFixture(t, &stubExtractor{text: long}, llm.MockText("Résumé."))

	res, err := f.svc.SummarizePDF(context.Background(), Upload{Filename: "notes.pdf"}, language.Code("fr"))
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", res.Filename)
	assert.Equal(t, "Résumé.", res.Summary)
	assert.Equal(t, 6000, res.TextLength)
	assert.NotEmpty(t, res.ArticleID)

	req, _ := f.mock.LastCall()
	assert.Equal(t, 5000, len([]rune(req.Messages[0].Content)))
	assert.Contains(t, req.System, "French")

	history, err := f.store.Articles().Recent(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "uploaded:notes.pdf", history[0].Source)
	assert.Equal(t, ActionPDFSummary, history[0].Action)
}

func TestQuizPDFStoresQuiz(t *testing.T) {
	f := newFixture(t, &stubExtractor{text: "Some lecture notes."},
		llm.MockJSON(map[string]any{"quiz": sampleQuiz()}))
	ctx := context.Background()

	res, err := f.svc.QuizPDF(ctx, Upload{Filename: "lecture.PDF"}, "")
	require.NoError(t, err)
	require.NotEmpty(t, res.QuizID)
	assert.Equal(t, len("Some lecture notes."), res.TextLength)

	stored, err := f.store.Quizzes().Get(ctx, res.QuizID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "uploaded:lecture.PDF", stored.Source)
	assert.Equal(t, "en", stored.Language)
}

func TestUploadErrors(t *testing.T) {
	extractErr := failure.EmptyExtractedText(errors.New("corrupt xref"))

	tests := []struct {
		name      string
		filename  string
		extractor *stubExtractor
		wantKind  failure.Kind
	}{
		{"not a pdf", "notes.docx", &stubExtractor{text: "text"}, failure.KindInvalidLocator},
		{"corrupt pdf", "notes.pdf", &stubExtractor{err: extractErr}, failure.KindEmptyExtractedText},
		{"blank text", "notes.pdf", &stubExtractor{text: " \n "}, failure.KindEmptyExtractedText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.extractor)
			_, err := f.svc.TranslatePDF(context.Background(), Upload{Filename: tt.filename}, "")
			assert.True(t, failure.Is(err, tt.wantKind), "got %v", err)
			assert.Equal(t, 0, f.mock.CallCount())
		})
	}
}

func TestWithoutRepositories(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]any{"quiz": sampleQuiz()}))
	svc := NewService(Options{
		Ingester:  &stubIngester{docs: map[string]*document.Document{mercuryURL: mercuryDoc()}},
		Generator: generation.NewPromptGenerator(mock, generation.DefaultConfig(), nil),
	}, DefaultConfig())

	res, err := svc.Quiz(context.Background(), mercuryURL)
	require.NoError(t, err)
	assert.Empty(t, res.QuizID)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "été", truncateRunes("étés", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 10))
}
