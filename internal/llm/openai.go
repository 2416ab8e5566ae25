package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// openaiModels maps friendly names to OpenAI model IDs.
var openaiModels = map[string]string{
	"gpt-4o":      "gpt-4o",
	"gpt-4o-mini": "gpt-4o-mini",
}

// structuredMode selects how a structured request is expressed on the wire.
type structuredMode int

const (
	// modeJSONSchema sends the schema as a strict json_schema response format.
	modeJSONSchema structuredMode = iota

	// modeJSONObject asks for a bare JSON object and states the schema in the
	// system message, for compatible APIs without json_schema support.
	modeJSONObject
)

// OpenAIProvider implements Provider on the chat completions API. Groq and
// OpenRouter reuse it through their OpenAI-compatible endpoints.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	mode   structuredMode
}

// NewOpenAIProvider creates a provider for the OpenAI API or, when BaseURL
// is set, any compatible endpoint.
func NewOpenAIProvider(cfg OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	return newOpenAIProviderRaw(cfg, openaiModels, modeJSONSchema), nil
}

func newOpenAIProviderRaw(cfg OpenAIConfig, models map[string]string, mode structuredMode) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  resolveModel(cfg.Model, models),
		mode:   mode,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            p.buildMessages(req),
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	if req.Schema != nil {
		switch p.mode {
		case modeJSONObject:
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			}
		default:
			schemaBytes, err := json.Marshal(req.Schema.Definition)
			if err != nil {
				return nil, fmt.Errorf("marshal schema: %w", err)
			}
			chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   req.Schema.Name,
					Schema: json.RawMessage(schemaBytes),
					Strict: true,
				},
			}
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ErrEmptyResponse{Reason: "no choices"}
	}
	choice := resp.Choices[0]
	if strings.TrimSpace(choice.Message.Content) == "" {
		return nil, &ErrEmptyResponse{Reason: string(choice.FinishReason)}
	}

	content := json.RawMessage(choice.Message.Content)
	stop := mapOpenAIStopReason(choice.FinishReason)

	if req.Schema != nil {
		content = normalizeJSON(content)
		if stop == "max_tokens" {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stop,
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

func (p *OpenAIProvider) buildMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	system := req.System
	if req.Schema != nil && p.mode == modeJSONObject {
		system = appendSchemaInstruction(system, req.Schema)
	}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

// appendSchemaInstruction states the expected JSON shape in the system
// message for back-ends that only support a generic JSON mode.
func appendSchemaInstruction(system string, schema *Schema) string {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return system
	}
	var b strings.Builder
	if system != "" {
		b.WriteString(system)
		b.WriteString("\n\n")
	}
	b.WriteString("Respond with a single JSON object that validates against this JSON Schema:\n")
	b.Write(def)
	return b.String()
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	if reason == openai.FinishReasonLength {
		return "max_tokens"
	}
	return "end"
}

func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}
