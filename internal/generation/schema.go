package generation

import "github.com/abhisek/wikismart/internal/llm"

// QuizSchema is the structured output shape for quiz generation:
// {"quiz":[{"question","options"[4],"answer"}]}.
var QuizSchema = &llm.Schema{
	Name:        "article-quiz",
	Description: "A multiple-choice comprehension quiz about an article excerpt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type":        "array",
				"description": "Exactly 5 questions",
				"minItems":    QuizSize,
				"maxItems":    QuizSize,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question, answerable from the text alone",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "Exactly 4 answer options",
							"items":       map[string]any{"type": "string"},
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The correct option, copied verbatim from options",
						},
					},
					"required":             []any{"question", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}

// quizOutput is the decoded structured response before validation.
type quizOutput struct {
	Quiz []QuizQuestion `json:"quiz"`
}
