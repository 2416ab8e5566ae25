package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/llm"
)

// PromptGenerator drives single-prompt back-ends: instruction and text are
// sent together as one user message with no system message. Quizzes use the
// back-end's structured output mode.
type PromptGenerator struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewPromptGenerator creates a PromptGenerator on top of provider.
func NewPromptGenerator(provider llm.Provider, cfg Config, logger *zap.Logger) *PromptGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromptGenerator{provider: provider, cfg: cfg, logger: logger}
}

func (g *PromptGenerator) Summarize(ctx context.Context, text string, lang language.Code) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	return g.text(llm.WithPurpose(ctx, llm.PurposeSummarize),
		buildSummaryPrompt(text, lang.Name()),
		g.cfg.SummaryMaxTokens, g.cfg.SummaryTemperature)
}

func (g *PromptGenerator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	return g.text(llm.WithPurpose(ctx, llm.PurposeTranslate),
		buildTranslatePrompt(text, targetLanguage),
		g.cfg.TranslateMaxTokens, g.cfg.TranslateTemperature)
}

func (g *PromptGenerator) GenerateQuiz(ctx context.Context, text string, lang language.Code) ([]QuizQuestion, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuiz), llm.Request{
		Messages:    []llm.Message{llm.UserMessage(buildQuizPrompt(text, lang.Name()))},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.QuizMaxTokens,
		Temperature: g.cfg.QuizTemperature,
	})
	if err != nil {
		return nil, classify(err)
	}
	quiz, err := decodeQuiz(resp.Content, g.cfg.validators())
	if err != nil {
		g.logger.Warn("rejected generated quiz", zap.String("model", resp.Model), zap.Error(err))
		return nil, err
	}
	return quiz, nil
}

func (g *PromptGenerator) text(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{llm.UserMessage(prompt)},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", classify(err)
	}
	out := cleanText(resp.Text())
	if out == "" {
		return "", classify(&llm.ErrEmptyResponse{Reason: "empty text after cleanup"})
	}
	return out, nil
}
