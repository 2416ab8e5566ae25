package generation

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/abhisek/wikismart/internal/failure"
	"github.com/abhisek/wikismart/internal/llm"
)

var errNoText = errors.New("no text provided")

// classify maps a provider error onto the failure taxonomy. Output that was
// cut short or failed schema validation is malformed; everything else is a
// provider failure carrying the back-end's message.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var fe *failure.Error
	if errors.As(err, &fe) {
		return fe
	}
	if llm.IsMalformed(err) {
		return failure.MalformedProviderOutput(err)
	}
	return failure.ProviderError(err)
}

func requireText(text string) error {
	if strings.TrimSpace(text) == "" {
		return failure.ProviderError(errNoText)
	}
	return nil
}

// decodeQuiz parses a structured quiz response and runs the validator chain.
// Strings are trimmed before validation so that stray whitespace does not
// break the verbatim answer check.
func decodeQuiz(raw json.RawMessage, validators []QuizValidator) ([]QuizQuestion, error) {
	var out quizOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, failure.MalformedProviderOutput(err)
	}

	quiz := make([]QuizQuestion, len(out.Quiz))
	for i, q := range out.Quiz {
		opts := make([]string, len(q.Options))
		for j, o := range q.Options {
			opts[j] = strings.TrimSpace(o)
		}
		quiz[i] = QuizQuestion{
			Question: strings.TrimSpace(q.Question),
			Options:  opts,
			Answer:   strings.TrimSpace(q.Answer),
		}
	}

	for _, v := range validators {
		if verr := v.Validate(quiz); verr != nil {
			return nil, failure.MalformedProviderOutput(verr)
		}
	}
	return quiz, nil
}
