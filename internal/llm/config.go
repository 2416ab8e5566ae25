package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Back-end names accepted by NewProvider.
const (
	BackendAnthropic  = "anthropic"
	BackendOpenAI     = "openai"
	BackendGroq       = "groq"
	BackendOpenRouter = "openrouter"
	BackendGemini     = "gemini"
	BackendMock       = "mock"
)

// Config holds the credentials and models of every back-end. Which back-end
// serves which operation is decided by the caller.
type Config struct {
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Groq       OpenAIConfig     `yaml:"groq"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Gemini     GeminiConfig     `yaml:"gemini"`

	// Timeout bounds a single Generate call. Default: 60s.
	Timeout time.Duration `yaml:"timeout"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// OpenAIConfig configures any OpenAI-compatible chat completions API.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// DefaultConfig returns a Config with default models and no credentials.
func DefaultConfig() Config {
	return Config{
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Groq:       OpenAIConfig{Model: "llama-3.3-70b-versatile", BaseURL: defaultGroqBaseURL},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		Timeout:    60 * time.Second,
	}
}

// ApplyEnv overrides credentials and models from WIKISMART_* variables and
// falls back to the vendors' conventional key variables.
func (c *Config) ApplyEnv() {
	setFromEnv(&c.Anthropic.APIKey, "WIKISMART_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	setFromEnv(&c.Anthropic.Model, "WIKISMART_ANTHROPIC_MODEL")

	setFromEnv(&c.OpenAI.APIKey, "WIKISMART_OPENAI_API_KEY", "OPENAI_API_KEY")
	setFromEnv(&c.OpenAI.Model, "WIKISMART_OPENAI_MODEL")
	setFromEnv(&c.OpenAI.BaseURL, "WIKISMART_OPENAI_BASE_URL")

	setFromEnv(&c.Groq.APIKey, "WIKISMART_GROQ_API_KEY", "GROQ_API_KEY")
	setFromEnv(&c.Groq.Model, "WIKISMART_GROQ_MODEL")

	setFromEnv(&c.OpenRouter.APIKey, "WIKISMART_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	setFromEnv(&c.OpenRouter.Model, "WIKISMART_OPENROUTER_MODEL")

	setFromEnv(&c.Gemini.APIKey, "WIKISMART_GEMINI_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	setFromEnv(&c.Gemini.Model, "WIKISMART_GEMINI_MODEL")
}

// setFromEnv assigns the first non-empty variable among keys to dst.
func setFromEnv(dst *string, keys ...string) {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

// Discover returns the first back-end, in priority order, that has
// credentials configured. It reports false when none has.
func (c Config) Discover() (string, bool) {
	for _, name := range []string{BackendGemini, BackendGroq, BackendOpenAI, BackendAnthropic, BackendOpenRouter} {
		if c.apiKey(name) != "" {
			return name, true
		}
	}
	return "", false
}

func (c Config) apiKey(backend string) string {
	switch backend {
	case BackendAnthropic:
		return c.Anthropic.APIKey
	case BackendOpenAI:
		return c.OpenAI.APIKey
	case BackendGroq:
		return c.Groq.APIKey
	case BackendOpenRouter:
		return c.OpenRouter.APIKey
	case BackendGemini:
		return c.Gemini.APIKey
	}
	return ""
}

// ValidateBackend checks that backend is known and has its API key set.
func (c Config) ValidateBackend(backend string) error {
	switch backend {
	case BackendMock:
		return nil
	case BackendAnthropic, BackendOpenAI, BackendGroq, BackendOpenRouter, BackendGemini:
		if c.apiKey(backend) == "" {
			return fmt.Errorf("an API key is required for the %s provider (set WIKISMART_%s_API_KEY)",
				backend, strings.ToUpper(backend))
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", backend)
	}
}
