package generation

import (
	"fmt"
	"strings"
)

// QuizValidator checks a decoded quiz. Implementations are stateless.
type QuizValidator interface {
	// Name is a short identifier used in error messages, e.g. "size".
	Name() string

	// Validate returns nil when quiz passes the check.
	Validate(quiz []QuizQuestion) *ValidationError
}

// ValidationError describes why a quiz was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultQuizValidators returns the standard chain: size, shape, answer.
func DefaultQuizValidators() []QuizValidator {
	return []QuizValidator{
		&SizeValidator{},
		&ShapeValidator{},
		&AnswerValidator{},
	}
}

// SizeValidator requires exactly QuizSize questions.
type SizeValidator struct{}

func (v *SizeValidator) Name() string { return "size" }

func (v *SizeValidator) Validate(quiz []QuizQuestion) *ValidationError {
	if len(quiz) != QuizSize {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d questions, got %d", QuizSize, len(quiz)),
		}
	}
	return nil
}

// ShapeValidator requires non-empty questions with exactly OptionCount
// non-empty options.
type ShapeValidator struct{}

func (v *ShapeValidator) Name() string { return "shape" }

func (v *ShapeValidator) Validate(quiz []QuizQuestion) *ValidationError {
	for i, q := range quiz {
		if strings.TrimSpace(q.Question) == "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d is empty", i+1),
			}
		}
		if len(q.Options) != OptionCount {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d has %d options, want %d", i+1, len(q.Options), OptionCount),
			}
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d option %d is empty", i+1, j+1),
				}
			}
		}
	}
	return nil
}

// AnswerValidator requires every answer to equal one option exactly.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(quiz []QuizQuestion) *ValidationError {
	for i, q := range quiz {
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d answer %q is not one of its options", i+1, q.Answer),
			}
		}
	}
	return nil
}
