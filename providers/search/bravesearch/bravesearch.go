package bravesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/search"
)

const (
	defaultBaseURL = "https://api.search.brave.com/res/v1"
	envAPIKey      = "BRAVE_SEARCH_API_KEY"
	envBaseURL     = "BRAVE_SEARCH_BASE_URL"

	// maxCount is the largest page size the API accepts.
	maxCount = 20
)

// Provider queries the Brave Search web endpoint.
type Provider struct {
	apiKey     string
	baseURL    string
	country    string
	searchLang string
	client     *http.Client
}

var _ search.Provider = (*Provider)(nil)

// New creates a Brave provider configured from BRAVE_SEARCH_API_KEY and,
// optionally, BRAVE_SEARCH_BASE_URL.
func New() *Provider {
	baseURL := os.Getenv(envBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		apiKey:  os.Getenv(envAPIKey),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  http.DefaultClient,
	}
}

func (p *Provider) Name() string {
	return "brave"
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

// WithCountry restricts results to a country code such as "jp".
func (p *Provider) WithCountry(country string) *Provider {
	p.country = country
	return p
}

// WithSearchLang sets the search language, e.g. "ja".
func (p *Provider) WithSearchLang(lang string) *Provider {
	p.searchLang = lang
	return p
}

// apiResponse is the subset of the Brave response this provider reads.
type apiResponse struct {
	Type  string      `json:"type"`
	Query *queryInfo  `json:"query,omitempty"`
	Web   *webResults `json:"web,omitempty"`
}

type queryInfo struct {
	Original     string `json:"original"`
	AlteredQuery string `json:"altered,omitempty"`
}

type webResults struct {
	Type    string      `json:"type"`
	Results []webResult `json:"results"`
}

type webResult struct {
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
	ExtraSnippets []string `json:"extra_snippets,omitempty"`
	Age           string   `json:"age,omitempty"`
}

// Search implements search.Provider.
func (p *Provider) Search(ctx context.Context, query string, count int) ([]company.SearchResultItem, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set", envAPIKey)
	}

	response, err := p.fetch(ctx, query, count)
	if err != nil {
		return nil, err
	}
	if response.Web == nil {
		return nil, nil
	}

	results := make([]company.SearchResultItem, 0, len(response.Web.Results))
	for _, r := range response.Web.Results {
		if r.URL == "" {
			continue
		}
		results = append(results, company.SearchResultItem{
			Title:   cleanHTML(r.Title),
			URL:     r.URL,
			Snippet: cleanHTML(r.Description),
		})
	}
	return results, nil
}

func (p *Provider) fetch(ctx context.Context, query string, count int) (*apiResponse, error) {
	if count <= 0 {
		count = search.DefaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("count", strconv.Itoa(count))
	params.Add("result_filter", "web")
	if p.country != "" {
		params.Add("country", p.country)
	}
	if p.searchLang != "" {
		params.Add("search_lang", p.searchLang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", p.apiKey)

	client := p.client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, utils.TruncateString(string(body), utils.DefaultMaxStringLength))
	}

	var response apiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &response, nil
}

// cleanHTML removes the highlight markup Brave puts around matched terms and
// decodes entities.
func cleanHTML(s string) string {
	for _, tag := range []string{"<strong>", "</strong>", "<em>", "</em>", "<b>", "</b>"} {
		s = strings.ReplaceAll(s, tag, "")
	}
	return strings.TrimSpace(html.UnescapeString(s))
}
