package tavily

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/search"
)

const (
	defaultBaseURL = "https://api.tavily.com"
	envAPIKey      = "TAVILY_API_KEY"
	envBaseURL     = "TAVILY_BASE_URL"
	maxResults     = 20

	// Tavily content excerpts can run long; snippets stay short.
	maxSnippetRunes = 500
)

// Provider queries the Tavily /search endpoint.
type Provider struct {
	apiKey         string
	baseURL        string
	searchDepth    string
	excludeDomains []string
	client         *http.Client
}

var _ search.Provider = (*Provider)(nil)

// New creates a Tavily provider configured from TAVILY_API_KEY and,
// optionally, TAVILY_BASE_URL. Search depth defaults to "basic".
func New() *Provider {
	baseURL := os.Getenv(envBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		apiKey:      os.Getenv(envAPIKey),
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		searchDepth: "basic",
		client:      http.DefaultClient,
	}
}

func (p *Provider) Name() string {
	return "tavily"
}

func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	return p
}

func (p *Provider) WithBaseURL(baseURL string) *Provider {
	p.baseURL = strings.TrimSuffix(baseURL, "/")
	return p
}

func (p *Provider) WithHttpClient(client *http.Client) *Provider {
	p.client = client
	return p
}

// WithSearchDepth sets "basic" (1 credit) or "advanced" (2 credits).
func (p *Provider) WithSearchDepth(depth string) *Provider {
	p.searchDepth = depth
	return p
}

// WithExcludeDomains drops results from the given domains server-side.
func (p *Provider) WithExcludeDomains(domains ...string) *Provider {
	p.excludeDomains = append(p.excludeDomains, domains...)
	return p
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results"`
	ExcludeDomains []string `json:"exclude_domains,omitempty"`
}

type searchResponse struct {
	Query        string       `json:"query"`
	Results      []resultItem `json:"results"`
	ResponseTime float64      `json:"response_time"`
	RequestID    string       `json:"request_id"`
}

type resultItem struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// Search implements search.Provider.
func (p *Provider) Search(ctx context.Context, query string, count int) ([]company.SearchResultItem, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set", envAPIKey)
	}

	if count <= 0 {
		count = search.DefaultCount
	}
	if count > maxResults {
		count = maxResults
	}

	request := searchRequest{
		APIKey:         p.apiKey,
		Query:          query,
		SearchDepth:    p.searchDepth,
		MaxResults:     count,
		ExcludeDomains: p.excludeDomains,
	}

	_, response, err := utils.DoPostSync[searchResponse](ctx, p.client, p.baseURL+"/search", p.apiKey, request)
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}

	results := make([]company.SearchResultItem, 0, len(response.Results))
	for _, r := range response.Results {
		if r.URL == "" {
			continue
		}
		results = append(results, company.SearchResultItem{
			Title:   strings.TrimSpace(r.Title),
			URL:     r.URL,
			Snippet: utils.FirstRunes(strings.TrimSpace(r.Content), maxSnippetRunes),
		})
	}
	return results, nil
}
