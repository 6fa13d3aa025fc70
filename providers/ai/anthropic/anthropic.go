package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/"
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 2048
	providerName     = "anthropic"
)

// AnthropicProvider implements [ai.Provider] for Anthropic's Messages API.
type AnthropicProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New returns an [AnthropicProvider] initialized from environment variables.
func New() *AnthropicProvider {
	baseURL := os.Getenv("ANTHROPIC_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &AnthropicProvider{
		apiKey:  os.Getenv("ANTHROPIC_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// Name implements ai.Provider.
func (p *AnthropicProvider) Name() string { return providerName }

// WithAPIKey sets the API key used for authenticating requests.
func (p *AnthropicProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL overrides the API base URL. Use this when targeting a proxy or
// local testing endpoint.
func (p *AnthropicProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient replaces the default [http.Client] used for API calls.
func (p *AnthropicProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *AnthropicProvider) WithModel(model string) *AnthropicProvider {
	p.model = model
	return p
}

// SendMessage implements [ai.Provider] by sending a synchronous Messages API
// request and mapping the reply to [ai.ChatResponse].
func (p *AnthropicProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)

	if p.apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
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

	client := anthropic.NewClient(
		option.WithAPIKey(p.apiKey),
		option.WithBaseURL(p.baseURL),
		option.WithHTTPClient(p.client),
		option.WithMaxRetries(0),
	)

	message, err := client.Messages.New(ctx, requestFromGeneric(model, request))
	if err != nil {
		return nil, fmt.Errorf("anthropic messages request failed: %w", err)
	}

	result := responseToGeneric(message)

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

func requestFromGeneric(model string, request ai.ChatRequest) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: defaultMaxTokens,
	}

	var system []string
	if request.SystemPrompt != "" {
		system = append(system, request.SystemPrompt)
	}

	for _, msg := range request.Messages {
		block := anthropic.ContentBlockParamUnion{OfText: &anthropic.TextBlockParam{Text: msg.Content}}
		switch msg.Role {
		case ai.RoleSystem:
			system = append(system, msg.Content)
		case ai.RoleAssistant:
			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleAssistant,
				Content: []anthropic.ContentBlockParamUnion{block},
			})
		default:
			params.Messages = append(params.Messages, anthropic.MessageParam{
				Role:    anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{block},
			})
		}
	}

	if len(system) > 0 {
		params.System = []anthropic.TextBlockParam{{Text: strings.Join(system, "\n\n")}}
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature != nil {
			params.Temperature = anthropic.Float(*cfg.Temperature)
		}
		if cfg.MaxOutputTokens > 0 {
			params.MaxTokens = int64(cfg.MaxOutputTokens)
		}
	}

	return params
}

func responseToGeneric(message *anthropic.Message) *ai.ChatResponse {
	result := &ai.ChatResponse{
		Id:           message.ID,
		Model:        string(message.Model),
		FinishReason: mapStopReason(string(message.StopReason)),
	}

	if raw := message.RawJSON(); raw != "" {
		result.Raw = json.RawMessage(raw)
	}

	var textParts []string
	for _, block := range message.Content {
		if block.Type == "text" && block.Text != "" {
			textParts = append(textParts, block.Text)
		}
	}
	result.Content = strings.Join(textParts, "\n")

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		result.Usage = &ai.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens + message.Usage.OutputTokens),
		}
	}

	return result
}

// mapStopReason converts Anthropic stop reasons to generic finish reasons.
func mapStopReason(reason string) string {
	switch reason {
	case "max_tokens":
		return "length"
	case "refusal":
		return "content_filter"
	case "tool_use":
		return "tool_calls"
	default:
		return "stop"
	}
}
