package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/wikismart/internal/generation"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestQuizSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.Quizzes()
	ctx := context.Background()

	q := &Quiz{
		Source:   "https://en.wikipedia.org/wiki/Mercury_(planet)",
		Language: "en",
		Questions: []generation.QuizQuestion{{
			Question: "Which planet is closest to the Sun?",
			Options:  []string{"Venus", "Mercury", "Mars", "Earth"},
			Answer:   "Mercury",
		}},
	}
	if err := repo.Save(ctx, q); err != nil {
		t.Fatalf("save: %v", err)
	}
	if q.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	got, err := repo.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected stored quiz")
	}
	if got.Source != q.Source || got.Language != "en" {
		t.Errorf("got source %q language %q", got.Source, got.Language)
	}
	if len(got.Questions) != 1 || got.Questions[0].Answer != "Mercury" {
		t.Errorf("questions = %+v", got.Questions)
	}
	if got.Questions[0].Options[1] != "Mercury" {
		t.Errorf("option order not preserved: %v", got.Questions[0].Options)
	}
	if !got.CreatedAt.Equal(q.CreatedAt.UTC()) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, q.CreatedAt)
	}
}

func TestQuizGetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Quizzes().Get(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil quiz, got %+v", got)
	}
}

func TestAttemptsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	quiz := &Quiz{Source: "a", Language: "en"}
	if err := s.Quizzes().Save(ctx, quiz); err != nil {
		t.Fatalf("save quiz: %v", err)
	}

	repo := s.Attempts()
	base := time.Now().UTC().Truncate(time.Second)
	attempts := []*Attempt{
		{QuizID: quiz.ID, Source: "a", Score: 40, TotalQuestions: 5, CorrectAnswers: 2, Status: "Needs Improvement", SubmittedAt: base},
		{Source: "b", Score: 100, TotalQuestions: 5, CorrectAnswers: 5, Status: "Excellent", SubmittedAt: base.Add(time.Minute)},
		{QuizID: quiz.ID, Source: "a", Score: 80, TotalQuestions: 5, CorrectAnswers: 4, Status: "Excellent", SubmittedAt: base.Add(2 * time.Minute)},
	}
	for i, a := range attempts {
		if err := repo.Append(ctx, a); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Score != 80 || all[2].Score != 40 {
		t.Errorf("order = %v, %v, %v", all[0].Score, all[1].Score, all[2].Score)
	}
	if all[1].QuizID != "" {
		t.Errorf("regenerated attempt quiz_id = %q, want empty", all[1].QuizID)
	}

	onlyA, err := repo.List(ctx, QueryOpts{Source: "a", Limit: 1})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(onlyA) != 1 || onlyA[0].Score != 80 {
		t.Errorf("filtered = %+v", onlyA)
	}
}

func TestAttemptUnknownQuizRejected(t *testing.T) {
	s := openTestStore(t)
	err := s.Attempts().Append(context.Background(), &Attempt{
		QuizID: "missing", Source: "a", Status: "Good",
	})
	if err == nil {
		t.Fatal("expected foreign key violation")
	}
}

func TestArticlesRecent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Articles()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, title := range []string{"Cats", "Dogs", "Birds"} {
		err := repo.Record(ctx, &Article{
			Title:     title,
			Language:  "en",
			Source:    "https://en.wikipedia.org/wiki/" + title,
			Action:    "ingest",
			Sections:  i + 1,
			FetchedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("record %s: %v", title, err)
		}
	}

	recent, err := repo.Recent(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len = %d, want 2", len(recent))
	}
	if recent[0].Title != "Birds" || recent[1].Title != "Dogs" {
		t.Errorf("titles = %q, %q", recent[0].Title, recent[1].Title)
	}
	if recent[0].Action != "ingest" {
		t.Errorf("action = %q, want ingest", recent[0].Action)
	}
	if recent[0].Sections != 3 {
		t.Errorf("sections = %d, want 3", recent[0].Sections)
	}
}

func TestDefaultDBPathFromEnv(t *testing.T) {
	want := filepath.Join(t.TempDir(), "nested", "w.db")
	t.Setenv("WIKISMART_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
