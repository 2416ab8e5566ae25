package generation

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/wikismart/internal/language"
	"github.com/abhisek/wikismart/internal/llm"
)

// ChatGenerator drives chat-style back-ends: the instruction travels as a
// system message and the raw section text as the only user message.
type ChatGenerator struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewChatGenerator creates a ChatGenerator on top of provider.
func NewChatGenerator(provider llm.Provider, cfg Config, logger *zap.Logger) *ChatGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatGenerator{provider: provider, cfg: cfg, logger: logger}
}

func (g *ChatGenerator) Summarize(ctx context.Context, text string, lang language.Code) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeSummarize), llm.Request{
		System:      summarySystemPrompt(lang.Name()),
		Messages:    []llm.Message{llm.UserMessage(text)},
		MaxTokens:   g.cfg.SummaryMaxTokens,
		Temperature: g.cfg.SummaryTemperature,
	})
	if err != nil {
		return "", classify(err)
	}
	return g.finishText(resp, "summary")
}

func (g *ChatGenerator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if err := requireText(text); err != nil {
		return "", err
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeTranslate), llm.Request{
		System:      translateSystemPrompt(targetLanguage),
		Messages:    []llm.Message{llm.UserMessage(text)},
		MaxTokens:   g.cfg.TranslateMaxTokens,
		Temperature: g.cfg.TranslateTemperature,
	})
	if err != nil {
		return "", classify(err)
	}
	return g.finishText(resp, "translation")
}

func (g *ChatGenerator) GenerateQuiz(ctx context.Context, text string, lang language.Code) ([]QuizQuestion, error) {
	if err := requireText(text); err != nil {
		return nil, err
	}
	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeQuiz), llm.Request{
		System:      quizSystemPrompt(lang.Name()),
		Messages:    []llm.Message{llm.UserMessage(text)},
		Schema:      QuizSchema,
		MaxTokens:   g.cfg.QuizMaxTokens,
		Temperature: g.cfg.QuizTemperature,
	})
	if err != nil {
		return nil, classify(err)
	}
	return decodeQuiz(resp.Content, g.cfg.validators())
}

func (g *ChatGenerator) finishText(resp *llm.Response, kind string) (string, error) {
	out := cleanText(resp.Text())
	if out == "" {
		return "", classify(&llm.ErrEmptyResponse{Reason: "empty " + kind + " after cleanup"})
	}
	if out != resp.Text() {
		g.logger.Debug("cleaned generated text",
			zap.String("kind", kind),
			zap.Int("raw_chars", len(resp.Text())),
			zap.Int("clean_chars", len(out)))
	}
	return out, nil
}
