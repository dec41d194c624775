package llm

import (
	"context"
	"encoding/json"
)

// Provider is the gateway abstraction for the generative model. Consumers
// send a prompt and receive the raw JSON payload the model produced; all
// interpretation of that payload happens downstream.
type Provider interface {
	// Generate sends a single-turn prompt to the model. When req.Schema is
	// set the provider requests native structured output conforming to it.
	// The returned Content is the model's text with markdown fences
	// stripped; it is guaranteed to be non-empty, parseable JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured for.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and output contract. Concatenated ahead
	// of User for providers without a distinct system channel.
	System string

	// User is the per-request prompt body.
	User string

	// Schema is the JSON shape the response must conform to. The provider
	// forwards it as the declared response schema; it does not validate
	// the output against it.
	Schema *Schema

	// MaxTokens bounds the response length. 0 means provider default.
	MaxTokens int

	// Temperature controls randomness, 0.0–1.0. Default 0 (deterministic).
	Temperature float64
}

// Schema declares the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema for logging and compilation caching.
	Name string

	// Definition is a JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated JSON payload.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
