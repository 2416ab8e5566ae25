package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("model pass-through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "anthropic/claude-3-haiku" {
			t.Errorf("model = %q, want %q", p.ModelID(), "anthropic/claude-3-haiku")
		}
		if p.mode != modeJSONSchema {
			t.Error("openrouter should use json_schema mode")
		}
	})
}

func TestNewGroqProvider(t *testing.T) {
	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewGroqProvider(OpenAIConfig{Model: "llama-70b"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("friendly model name", func(t *testing.T) {
		p, err := NewGroqProvider(OpenAIConfig{APIKey: "gsk-test", Model: "llama-70b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "llama-3.3-70b-versatile" {
			t.Errorf("model = %q", p.ModelID())
		}
		if p.mode != modeJSONObject {
			t.Error("groq should use json_object mode")
		}
	})

	t.Run("direct model id", func(t *testing.T) {
		p, err := NewGroqProvider(OpenAIConfig{APIKey: "gsk-test", Model: "mixtral-8x7b-32768"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "mixtral-8x7b-32768" {
			t.Errorf("model = %q", p.ModelID())
		}
	})
}
