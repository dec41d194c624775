package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"google.golang.org/genai"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}\n```", "{\"a\":1}"},
		{"  \n```json\n{\"a\":1}\n```\n  ", "{\"a\":1}"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripFences(tt.input); got != tt.expected {
			t.Errorf("StripFences(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMapGeminiError_Timeout(t *testing.T) {
	err := mapGeminiError(context.DeadlineExceeded)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusRequestTimeout {
		t.Errorf("got status %d, want 408", apiErr.StatusCode)
	}
	if !apiErr.Retryable {
		t.Error("timeout should be retryable")
	}
}

func TestMapGeminiError_AbortedRequest(t *testing.T) {
	err := mapGeminiError(errors.New("rpc failed: USER_ABORTED_REQUEST"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusRequestTimeout || !apiErr.Retryable {
		t.Errorf("got status %d retryable %v, want 408 retryable", apiErr.StatusCode, apiErr.Retryable)
	}
}

func TestMapGeminiError_QuotaExhausted(t *testing.T) {
	err := mapGeminiError(&genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests || !apiErr.Retryable {
		t.Errorf("got status %d retryable %v, want 429 retryable", apiErr.StatusCode, apiErr.Retryable)
	}
}

func TestMapGeminiError_Unavailable(t *testing.T) {
	err := mapGeminiError(&genai.APIError{Code: 503, Status: "UNAVAILABLE", Message: "overloaded"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want 503", apiErr.StatusCode)
	}
}

func TestMapGeminiError_PassthroughCode(t *testing.T) {
	err := mapGeminiError(&genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad schema"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("got status %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Retryable {
		t.Error("client error should not be retryable")
	}
}

func TestMapGeminiError_NoEnvelope(t *testing.T) {
	err := mapGeminiError(errors.New("dial tcp: connection refused"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable || !apiErr.Retryable {
		t.Errorf("got status %d retryable %v, want 503 retryable", apiErr.StatusCode, apiErr.Retryable)
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status": map[string]any{"type": "string", "enum": []any{"weak", "developing", "strong"}},
			"score":  map[string]any{"type": "integer", "minimum": 0, "maximum": 400},
			"weeks": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
		"required": []any{"status", "score"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject {
		t.Fatalf("got type %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 3 {
		t.Fatalf("got %d properties, want 3", len(schema.Properties))
	}
	if len(schema.Properties["status"].Enum) != 3 {
		t.Errorf("got %d enum values, want 3", len(schema.Properties["status"].Enum))
	}
	score := schema.Properties["score"]
	if score.Minimum == nil || *score.Minimum != 0 {
		t.Error("minimum not carried over")
	}
	if score.Maximum == nil || *score.Maximum != 400 {
		t.Error("maximum not carried over")
	}
	if schema.Properties["weeks"].Items.Type != genai.TypeObject {
		t.Errorf("got items type %s, want OBJECT", schema.Properties["weeks"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("got %d required, want 2", len(schema.Required))
	}
}

func TestMapGeminiType_Unknown(t *testing.T) {
	if got := mapGeminiType("whatever"); got != genai.TypeString {
		t.Errorf("got %s, want STRING fallback", got)
	}
}
