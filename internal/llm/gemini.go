package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig configures the Gemini gateway. Passed explicitly so the core
// never reads ambient process state.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiProvider implements Provider against the Gemini API. Each Generate
// call is one blocking round-trip with a bounded deadline; failures map onto
// the APIError taxonomy and are never retried here.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	return &GeminiProvider{client: client, model: model, timeout: timeout}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: req.User}},
	}}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	// Some models wrap output in markdown fences despite instructions.
	text := StripFences(result.Text())
	if text == "" {
		return nil, &ErrInvalidResponse{Err: errors.New("empty response body")}
	}
	if !json.Valid([]byte(text)) {
		return nil, &ErrInvalidResponse{
			Content: []byte(text),
			Err:     errors.New("response body is not valid JSON"),
		}
	}

	resp := &Response{
		Content: json.RawMessage(text),
		Model:   p.model,
	}
	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}
	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

// StripFences removes a leading/trailing markdown code fence from s.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// mapGeminiError classifies a transport or vendor failure into the APIError
// taxonomy the rest of the system propagates.
func mapGeminiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			StatusCode: http.StatusRequestTimeout,
			Message:    "the analysis request timed out; please try again",
			Retryable:  true,
			Err:        err,
		}
	}

	// The vendor signals interrupted requests through a non-standard error
	// envelope; it surfaces here only as message text.
	if strings.Contains(strings.ToUpper(err.Error()), "USER_ABORTED_REQUEST") {
		return &APIError{
			StatusCode: http.StatusRequestTimeout,
			Message:    "the analysis request was interrupted; please try again",
			Retryable:  true,
			Err:        err,
		}
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		upper := strings.ToUpper(apiErr.Status + " " + apiErr.Message)
		switch {
		case apiErr.Code == http.StatusTooManyRequests || strings.Contains(upper, "RESOURCE_EXHAUSTED"):
			return &APIError{
				StatusCode: http.StatusTooManyRequests,
				Message:    "AI service rate limit exceeded; please try again later",
				Retryable:  true,
				Err:        err,
			}
		case apiErr.Code == http.StatusServiceUnavailable || strings.Contains(upper, "UNAVAILABLE"):
			return &APIError{
				StatusCode: http.StatusServiceUnavailable,
				Message:    "AI service temporarily unavailable; please try again later",
				Retryable:  true,
				Err:        err,
			}
		default:
			code := apiErr.Code
			if code == 0 {
				code = http.StatusServiceUnavailable
			}
			return &APIError{
				StatusCode: code,
				Message:    apiErr.Message,
				Retryable:  code == http.StatusRequestTimeout,
				Err:        err,
			}
		}
	}

	// Connection-level failure: no vendor envelope at all.
	return &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "failed to reach the AI service",
		Retryable:  true,
		Err:        err,
	}
}

// buildGeminiSchema converts a JSON Schema definition map to a genai.Schema.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}

	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	if desc, ok := def["description"].(string); ok {
		schema.Description = desc
	}

	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGeminiSchema(propDef)
			}
		}
	}

	if req, ok := def["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}

	if enums, ok := def["enum"].([]any); ok {
		for _, e := range enums {
			if s, ok := e.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}

	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}

	if min, ok := toFloat(def["minimum"]); ok {
		schema.Minimum = &min
	}
	if max, ok := toFloat(def["maximum"]); ok {
		schema.Maximum = &max
	}

	return schema
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
