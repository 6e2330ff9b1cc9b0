package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/llm/openai"
)

func chatCompletionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-123",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     12,
			"completion_tokens": 30,
			"total_tokens":      42,
		},
	})
	return string(body)
}

func testPrompt() domain.StructuredPrompt {
	return domain.StructuredPrompt{
		Name:   "investment_estimate",
		System: "system instructions",
		User:   "property details",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{"risk_score": map[string]any{"type": "number"}},
			"required":             []string{"risk_score"},
			"additionalProperties": false,
		},
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("should create provider", func(t *testing.T) {
		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key"})

		require.NoError(t, err)
		require.NotNil(t, provider)
		require.Equal(t, "openai", provider.Name())
	})

	t.Run("should require api key", func(t *testing.T) {
		provider, err := openai.NewProvider(openai.Config{})

		require.Error(t, err)
		require.Nil(t, provider)
		require.Contains(t, err.Error(), "OpenAI API key is required")
	})
}

func TestProvider_Complete(t *testing.T) {
	t.Run("should request strict json schema and return content", func(t *testing.T) {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/chat/completions", r.URL.Path)
			raw, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal(raw, &captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, chatCompletionBody(`{"risk_score": 42}`))
		}))
		defer server.Close()

		provider, err := openai.NewProvider(openai.Config{
			APIKey:  "test-key",
			BaseURL: server.URL,
			Model:   "gpt-4o-mini",
		})
		require.NoError(t, err)

		raw, err := provider.Complete(context.Background(), testPrompt())
		require.NoError(t, err)
		require.JSONEq(t, `{"risk_score": 42}`, string(raw))

		require.Equal(t, "gpt-4o-mini", captured["model"])
		format, ok := captured["response_format"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "json_schema", format["type"])
		schema, ok := format["json_schema"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "investment_estimate", schema["name"])
		require.Equal(t, true, schema["strict"])

		messages, ok := captured["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
	})

	t.Run("should fail on empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, chatCompletionBody("  "))
		}))
		defer server.Close()

		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		raw, err := provider.Complete(context.Background(), testPrompt())
		require.Error(t, err)
		require.Nil(t, raw)
		require.Contains(t, err.Error(), "empty message")
	})

	t.Run("should surface api errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":{"message":"bad schema","type":"invalid_request_error"}}`)
		}))
		defer server.Close()

		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), testPrompt())
		require.Error(t, err)
		require.Contains(t, err.Error(), "OpenAI API call failed")
	})

	t.Run("should reject prompt without schema", func(t *testing.T) {
		provider, err := openai.NewProvider(openai.Config{APIKey: "test-key"})
		require.NoError(t, err)

		_, err = provider.Complete(context.Background(), domain.StructuredPrompt{Name: "x"})
		require.Error(t, err)
	})
}
