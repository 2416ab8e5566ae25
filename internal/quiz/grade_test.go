package quiz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/wikismart/internal/generation"
)

func answerKey() []generation.QuizQuestion {
	key := make([]generation.QuizQuestion, 5)
	for i := range key {
		key[i] = generation.QuizQuestion{
			Question: fmt.Sprintf("Q%d", i+1),
			Options:  []string{"Paris", "Lyon", "Nice", "Lille"},
			Answer:   "Paris",
		}
	}
	return key
}

func answers(correct, wrong int) []Answer {
	var out []Answer
	for i := 0; i < correct+wrong; i++ {
		a := Answer{Question: fmt.Sprintf("Q%d", i+1), UserAnswer: "Paris"}
		if i >= correct {
			a.UserAnswer = "Lyon"
		}
		out = append(out, a)
	}
	return out
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		answers     []Answer
		wantScore   float64
		wantCorrect int
		wantStatus  Status
	}{
		{"empty submission", nil, 0, 0, StatusNeedsImprovement},
		{"all correct", answers(5, 0), 100, 5, StatusExcellent},
		{"four of five", answers(4, 1), 80, 4, StatusExcellent},
		{"three of five", answers(3, 2), 60, 3, StatusGood},
		{"two of five", answers(2, 3), 40, 2, StatusNeedsImprovement},
		{"partial submission", answers(2, 0), 100, 2, StatusExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.answers, answerKey())
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, len(tt.answers), got.TotalQuestions)
			assert.Equal(t, tt.wantCorrect, got.CorrectAnswers)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.False(t, got.SubmittedAt.IsZero())
		})
	}
}

func TestGradeExactMatch(t *testing.T) {
	key := answerKey()
	submitted := []Answer{
		{Question: "Q1", UserAnswer: "paris"},
		{Question: "Q2", UserAnswer: "Paris "},
		{Question: "Q3 ", UserAnswer: "Paris"},
		{Question: "Unknown", UserAnswer: "Paris"},
	}

	got := Grade(submitted, key)
	assert.Equal(t, 0, got.CorrectAnswers)
	assert.Equal(t, 4, got.TotalQuestions)
	assert.Zero(t, got.Score)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusExcellent, StatusFor(80))
	assert.Equal(t, StatusGood, StatusFor(79.99))
	assert.Equal(t, StatusGood, StatusFor(60))
	assert.Equal(t, StatusNeedsImprovement, StatusFor(59.9))
	assert.Equal(t, StatusNeedsImprovement, StatusFor(0))
}
