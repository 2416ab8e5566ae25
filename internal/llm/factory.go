package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NewProvider creates the named back-end wrapped with logging and the
// configured timeout: caller → timeout → logging → back-end.
func NewProvider(ctx context.Context, backend string, cfg Config, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch backend {
	case BackendAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case BackendOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case BackendGroq:
		base, err = NewGroqProvider(cfg.Groq)
	case BackendOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case BackendGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case BackendMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", backend, err)
	}

	return WithTimeout(WithLogging(base, backend, logger), cfg.Timeout), nil
}

// NewRoute builds the provider for one operation from a comma-separated
// list of back-end names. More than one name yields a fallback Chain.
func NewRoute(ctx context.Context, route string, cfg Config, logger *zap.Logger) (Provider, error) {
	names := ParseRoute(route)
	if len(names) == 0 {
		return nil, fmt.Errorf("empty provider route")
	}

	providers := make([]Provider, 0, len(names))
	for _, name := range names {
		p, err := NewProvider(ctx, name, cfg, logger)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return NewChain(providers...), nil
}

// ParseRoute splits a route like "groq, gemini" into back-end names.
func ParseRoute(route string) []string {
	var names []string
	for _, part := range strings.Split(route, ",") {
		if name := strings.ToLower(strings.TrimSpace(part)); name != "" {
			names = append(names, name)
		}
	}
	return names
}
