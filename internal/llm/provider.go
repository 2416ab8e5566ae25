// Package llm is the transport layer between the generation operations and
// the text-generation back-ends. Every back-end speaks the same Request and
// Response shapes and reports failures with the error types in errors.go.
package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider sends a single generation request to a back-end.
type Provider interface {
	// Generate returns the model output for req. When req.Schema is set the
	// back-end's native structured output mode is used and Content holds
	// JSON that has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request is a provider-agnostic generation request.
type Request struct {
	// System carries the instruction for chat-style back-ends. Prompt-style
	// callers leave it empty and embed everything in a single user message.
	System string

	Messages []Message

	// Schema, when set, requests JSON output conforming to it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the back-end default in place.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Schema describes the JSON document a structured request must produce.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "article-quiz". It doubles as the
	// cache key for the compiled validator.
	Name string

	Description string

	// Definition is a JSON Schema document.
	Definition map[string]any
}

// Response is the output of a Generate call.
type Response struct {
	// Content is the raw model output. For structured requests it is the
	// validated JSON document.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns the output as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage reports token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
