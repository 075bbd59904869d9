package llm

import (
	"context"
	"encoding/json"
)

// Provider generates text from a language model. PromptLab uses it for the
// oracle explanation mode, where the model describes its own choices.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set, Content is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes a single-turn or multi-turn generation.
type Request struct {
	System   string
	Messages []Message

	// Schema requests structured output. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0,1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured output. Name doubles as the
// schema cache key and must be unique per definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is validated JSON when a schema was requested, otherwise the
	// raw text encoded as a JSON string.
	Content json.RawMessage

	Usage Usage
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Text returns Content decoded as a plain string when it is a JSON string,
// or the raw bytes otherwise.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// textContent encodes free text as a JSON string.
func textContent(s string) json.RawMessage {
	b, err := json.Marshal(s)
	if err != nil {
		return json.RawMessage(`""`)
	}
	return b
}

// finishContent validates structured output or wraps free text.
func finishContent(schema *Schema, raw string) (json.RawMessage, error) {
	if schema == nil {
		return textContent(raw), nil
	}
	content := json.RawMessage(raw)
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}
