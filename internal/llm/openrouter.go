package llm

import "fmt"

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultGroqBaseURL       = "https://api.groq.com/openai/v1"
)

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama-70b": "llama-3.3-70b-versatile",
	"llama-8b":  "llama-3.1-8b-instant",
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newOpenAIProviderRaw(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	}, nil, modeJSONSchema), nil
}

// NewGroqProvider creates a provider targeting Groq's OpenAI-compatible API.
// Structured requests use JSON object mode with the schema in the system
// message.
func NewGroqProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGroqBaseURL
	}
	return newOpenAIProviderRaw(cfg, groqModels, modeJSONObject), nil
}
