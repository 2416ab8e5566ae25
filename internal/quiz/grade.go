// Package quiz grades learner answers against a quiz answer key.
package quiz

import (
	"time"

	"github.com/abhisek/wikismart/internal/generation"
)

// Status is the categorical label derived from a score.
type Status string

const (
	StatusExcellent        Status = "Excellent"
	StatusGood             Status = "Good"
	StatusNeedsImprovement Status = "Needs Improvement"
)

// Score thresholds, inclusive.
const (
	excellentThreshold = 80.0
	goodThreshold      = 60.0
)

// Answer is one submitted (question, answer) pair.
type Answer struct {
	Question   string `json:"question"`
	UserAnswer string `json:"user_answer"`
}

// Submission is what a learner sends back for grading. QuizID, when set,
// names the stored quiz that was issued to the learner.
type Submission struct {
	SourceReference string   `json:"article_url"`
	QuizID          string   `json:"quiz_id,omitempty"`
	Answers         []Answer `json:"answers"`
}

// Result is the outcome of grading a submission.
type Result struct {
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	CorrectAnswers int       `json:"correct_answers"`
	Status         Status    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// Grade scores answers against key. A submitted answer counts only when it
// equals the key's answer for the same question text byte for byte. The
// score is a percentage of the submitted answers; an empty submission
// scores 0.
func Grade(answers []Answer, key []generation.QuizQuestion) Result {
	correctByQuestion := make(map[string]string, len(key))
	for _, q := range key {
		correctByQuestion[q.Question] = q.Answer
	}

	correct := 0
	for _, a := range answers {
		if want, ok := correctByQuestion[a.Question]; ok && want == a.UserAnswer {
			correct++
		}
	}

	var score float64
	if len(answers) > 0 {
		score = float64(correct) / float64(len(answers)) * 100
	}

	return Result{
		Score:          score,
		TotalQuestions: len(answers),
		CorrectAnswers: correct,
		Status:         StatusFor(score),
		SubmittedAt:    time.Now().UTC(),
	}
}

// StatusFor maps a score to its label.
func StatusFor(score float64) Status {
	switch {
	case score >= excellentThreshold:
		return StatusExcellent
	case score >= goodThreshold:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}
