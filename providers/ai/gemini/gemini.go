package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	providerName   = "gemini"
)

// GeminiProvider implements the ai.Provider interface for Google's Gemini API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New creates a new Gemini provider instance with default values from environment.
// Environment variables:
//   - GEMINI_API_KEY: API key for authentication
//   - GEMINI_API_BASE_URL: Base URL for API (optional, defaults to Google's API)
//   - GEMINI_MODEL: model used when a request names none (optional)
func New() *GeminiProvider {
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &GeminiProvider{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{},
	}
}

// Name implements ai.Provider.
func (p *GeminiProvider) Name() string { return providerName }

// WithAPIKey sets the API key for the provider.
func (p *GeminiProvider) WithAPIKey(apiKey string) ai.Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the base URL for the API.
func (p *GeminiProvider) WithBaseURL(baseURL string) ai.Provider {
	p.baseURL = baseURL
	return p
}

// WithHttpClient sets a custom HTTP client.
func (p *GeminiProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	p.client = httpClient
	return p
}

// WithModel sets the model used when a request does not name one.
func (p *GeminiProvider) WithModel(model string) *GeminiProvider {
	p.model = model
	return p
}

// SendMessage implements the ai.Provider interface.
// It sends a chat request to the Gemini API and returns the response.
func (p *GeminiProvider) SendMessage(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	span := observability.SpanFromContext(ctx)
	observer := observability.ObserverFromContext(ctx)

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

	if observer != nil {
		observer.Trace(ctx, "Gemini provider preparing request",
			observability.String(observability.AttrLLMProvider, providerName),
			observability.String(observability.AttrLLMModel, model),
		)
	}

	if p.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)

	// Decode as raw JSON first; the typed view is derived from the same bytes.
	httpResponse, raw, err := utils.DoPostSync[json.RawMessage](
		ctx,
		p.client,
		url,
		"", // Gemini authenticates with x-goog-api-key, not Bearer
		requestToGemini(request),
		utils.HeaderOption{Key: "x-goog-api-key", Value: p.apiKey},
	)
	if err != nil {
		if observer != nil {
			observer.Trace(ctx, "HTTP request failed", observability.Error(err))
		}
		return nil, err
	}

	if raw == nil || len(*raw) == 0 {
		return nil, fmt.Errorf("empty response from Gemini API: %s", httpResponse.Status)
	}

	var resp generateContentResponse
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("error decoding Gemini response: %w", err)
	}

	result := geminiToGeneric(resp)
	if result.Model == "" {
		result.Model = model
	}
	result.Raw = *raw

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrLLMResponseID, result.Id),
			observability.String(observability.AttrLLMFinishReason, result.FinishReason),
			observability.Int(observability.AttrHTTPStatusCode, httpResponse.StatusCode),
		)
		if result.Usage != nil {
			span.AddEvent(observability.EventTokensReceived,
				observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens),
			)
		}
	}

	return result, nil
}
