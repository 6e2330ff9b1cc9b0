// Package openai completes structured prompts with the OpenAI chat completions API.
// Responses are requested in strict json_schema mode and returned verbatim;
// validation against the schema happens in the domain layer.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/propwise/internal/domain"
	"github.com/davidbz/propwise/internal/observability"
)

// Provider implements domain.LLMProvider for OpenAI.
type Provider struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	if config.Model == "" {
		config.Model = string(openai.ChatModelGPT4oMini)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return &Provider{
		client:      openai.NewClient(opts...),
		model:       config.Model,
		temperature: config.Temperature,
		maxTokens:   config.MaxTokens,
	}, nil
}

// Complete sends a structured prompt and returns the raw JSON answer.
func (p *Provider) Complete(ctx context.Context, prompt domain.StructuredPrompt) (json.RawMessage, error) {
	if prompt.Name == "" || prompt.Schema == nil {
		return nil, errors.New("structured prompt requires a name and a schema")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API",
		observability.String("model", p.model),
		observability.String("schema", prompt.Name))

	resp, err := p.client.Chat.Completions.New(ctx, p.toSDKParams(prompt))
	if err != nil {
		logger.Error("OpenAI API call failed", observability.Error(err))
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	logger.Debug("OpenAI API call succeeded",
		observability.Int("prompt_tokens", int(resp.Usage.PromptTokens)),
		observability.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)

	if len(resp.Choices) == 0 {
		return nil, errors.New("OpenAI returned no choices")
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("OpenAI refused the prompt: %s", choice.Message.Refusal)
	}

	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return nil, errors.New("OpenAI returned an empty message")
	}

	return json.RawMessage(content), nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return "openai"
}

// toSDKParams converts a structured prompt to SDK ChatCompletionNewParams.
func (p *Provider) toSDKParams(prompt domain.StructuredPrompt) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, openai.UserMessage(prompt.User))

	//nolint:exhaustruct // OpenAI SDK struct has many optional fields
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   prompt.Name,
					Schema: prompt.Schema,
					Strict: openai.Bool(true),
				},
			},
		},
		Temperature: openai.Float(p.temperature),
	}

	if p.maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(p.maxTokens))
	}

	return params
}
