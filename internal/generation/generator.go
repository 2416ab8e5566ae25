// Package generation implements summarization, translation and quiz
// generation on top of llm providers. Every failure leaving this package is
// a *failure.Error; back-end specific error types never escape.
package generation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/llm"
)

// Generator is the capability shared by every generation style. Callers
// pass already-selected section text, never a whole document.
type Generator interface {
	// Summarize writes a summary exclusively in the language named by lang.
	// Unknown codes are used verbatim as the language name.
	Summarize(ctx context.Context, text string, lang language.Code) (string, error)

	// Translate renders text in the free-form target language name.
	Translate(ctx context.Context, text, targetLanguage string) (string, error)

	// GenerateQuiz returns exactly QuizSize questions written in lang.
	GenerateQuiz(ctx context.Context, text string, lang language.Code) ([]QuizQuestion, error)
}

// QuizQuestion is one multiple-choice question. Answer is a verbatim copy
// of one of the Options.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

const (
	QuizSize    = 5
	OptionCount = 4
)

// Style selects how requests are phrased for a back-end.
type Style string

const (
	// StyleChat sends a system instruction plus the raw text.
	StyleChat Style = "chat"
	// StylePrompt sends one user prompt embedding the text.
	StylePrompt Style = "prompt"
)

// New creates the generator for style on top of provider.
func New(style Style, provider llm.Provider, cfg Config, logger *zap.Logger) (Generator, error) {
	switch style {
	case StyleChat:
		return NewChatGenerator(provider, cfg, logger), nil
	case StylePrompt:
		return NewPromptGenerator(provider, cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown generation style %q (use %q or %q)", style, StyleChat, StylePrompt)
	}
}

// Router sends each operation to the generator configured for it.
type Router struct {
	Summarizer Generator
	Translator Generator
	QuizMaker  Generator
}

// NewRouter builds a Router. Nil members fall back to def.
func NewRouter(def, summarizer, translator, quizMaker Generator) *Router {
	pick := func(g Generator) Generator {
		if g == nil {
			return def
		}
		return g
	}
	return &Router{
		Summarizer: pick(summarizer),
		Translator: pick(translator),
		QuizMaker:  pick(quizMaker),
	}
}

func (r *Router) Summarize(ctx context.Context, text string, lang language.Code) (string, error) {
	return r.Summarizer.Summarize(ctx, text, lang)
}

func (r *Router) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	return r.Translator.Translate(ctx, text, targetLanguage)
}

func (r *Router) GenerateQuiz(ctx context.Context, text string, lang language.Code) ([]QuizQuestion, error) {
	return r.QuizMaker.GenerateQuiz(ctx, text, lang)
}
