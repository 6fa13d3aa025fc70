package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4.1-mini"
	providerName   = "openai"
)

// OpenAIProvider implements the Provider interface for OpenAI API
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New creates a new OpenAI provider instance with default values from environment.
// Environment variables:
//   - OPENAI_API_KEY: API key for authentication
//   - OPENAI_API_BASE_URL: Base URL for API (optional, any OpenAI-compatible endpoint)
//   - OPENAI_MODEL: model used when a request names none (optional)
func New() *OpenAIProvider {
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &OpenAIProvider{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// Name implements ai.Provider.
func (p *OpenAIProvider) Name() string { return providerName }

// WithAPIKey sets the API key for the provider
func (p *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API
func (p *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *OpenAIProvider) WithModel(model string) *OpenAIProvider {
	p.model = model
	return p
}

// SendMessage implements the Provider interface
func (p *OpenAIProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)

	if p.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	model := request.Model
	if model == "" {
		model = p.model
	}

	if span != nil {
		span.AddEvent(observability.EventLLMRequestStart)
		span.SetAttributes(
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMEndpoint, p.baseURL),
			observability.String(observability.AttrLLMModel, model),
		)
		defer span.AddEvent(observability.EventLLMRequestEnd)
	}

	client := openai.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.client),
		option.WithMaxRetries(0),
	)

	completion, err := client.Chat.Completions.New(ctx, requestFromGeneric(model, request))
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed: %w", err)
	}

	result := responseToGeneric(completion)
	if result.Model == "" {
		result.Model = model
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
		)
		if result.Usage != nil {
			span.AddEvent(observability.EventTokensReceived,
				observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens),
			)
		}
	}

	return result, nil
}

func requestFromGeneric(model string, request ai.ChatRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(request.Messages)+1)
	if request.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(request.SystemPrompt))
	}
	for _, msg := range request.Messages {
		switch msg.Role {
		case ai.RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case ai.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature != nil {
			params.Temperature = openai.Float(*cfg.Temperature)
		}
		if cfg.MaxOutputTokens > 0 {
			params.MaxCompletionTokens = openai.Int(int64(cfg.MaxOutputTokens))
		}
	}

	if request.ResponseFormat != nil && request.ResponseFormat.Type == ai.ResponseFormatJSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return params
}

func responseToGeneric(completion *openai.ChatCompletion) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:    completion.ID,
		Model: completion.Model,
	}

	if raw := completion.RawJSON(); raw != "" {
		result.Raw = json.RawMessage(raw)
	}

	if len(completion.Choices) > 0 {
		result.Content = completion.Choices[0].Message.Content
		result.FinishReason = completion.Choices[0].FinishReason
	}

	usage := completion.Usage
	if usage.PromptTokens > 0 || usage.CompletionTokens > 0 || usage.TotalTokens > 0 {
		result.Usage = &ai.Usage{
			PromptTokens:     int(usage.PromptTokens),
			CompletionTokens: int(usage.CompletionTokens),
			TotalTokens:      int(usage.TotalTokens),
		}
	}

	return result
}
