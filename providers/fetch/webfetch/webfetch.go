package webfetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/sync/errgroup"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	// DefaultTimeout is the default per-page request timeout
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "sitefinder-webfetch/1.0"
	// DefaultConcurrency bounds parallel fetches in FetchAll
	DefaultConcurrency = 4
	// DefaultMaxContentRunes caps the Markdown kept per page
	DefaultMaxContentRunes = 20000
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is the maximum time an idle connection can be reused
	IdleConnTimeout = 90 * time.Second

	maxRedirects = 10
)

// Fetcher retrieves pages over HTTP. The zero value is not usable; call New.
type Fetcher struct {
	client          *http.Client
	timeout         time.Duration
	userAgent       string
	concurrency     int
	maxContentRunes int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// WithConcurrency bounds the number of pages fetched at once by FetchAll.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

// WithMaxContentRunes caps the Markdown kept per page. Zero or negative keeps everything.
func WithMaxContentRunes(n int) Option {
	return func(f *Fetcher) {
		f.maxContentRunes = n
	}
}

// WithHttpClient replaces the HTTP client. The client's redirect policy is
// left untouched.
func WithHttpClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// New creates a Fetcher with a transport tuned for many short-lived hosts.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:         DefaultTimeout,
		userAgent:       DefaultUserAgent,
		concurrency:     DefaultConcurrency,
		maxContentRunes: DefaultMaxContentRunes,
	}
	f.client = &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			IdleConnTimeout:       IdleConnTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Page is a fetched document.
type Page struct {
	// URL is the final URL after following redirects
	URL string
	// Markdown is the page body converted from HTML
	Markdown string
}

// Fetch retrieves rawURL and returns its content as Markdown.
//
// Partial URLs (e.g. "acme.co.jp") are normalised by prepending "https://".
// Fetch returns an error when the URL is empty, the status is not 200, the
// body exceeds MaxBodySize, conversion fails, or the context is done.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return Page{}, fmt.Errorf("URL cannot be empty")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Page{}, fmt.Errorf("request timeout or canceled: %w", err)
		}
		return Page{}, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	// One byte over the limit tells a full body apart from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return Page{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > MaxBodySize {
		return Page{}, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	markdown, err := htmltomarkdown.ConvertString(string(body))
	if err != nil {
		return Page{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	markdown = strings.TrimSpace(markdown)
	if f.maxContentRunes > 0 {
		markdown = utils.FirstRunes(markdown, f.maxContentRunes)
	}

	return Page{
		URL:      resp.Request.URL.String(),
		Markdown: markdown,
	}, nil
}

// FetchAll fetches every item and returns one PageContent per item, in input
// order. Failures never abort the batch: the page keeps empty content, a
// warning is logged and MetricFetchFailures is incremented. The returned
// error is non-nil only when ctx is done.
func (f *Fetcher) FetchAll(ctx context.Context, items []company.SearchResultItem) ([]company.PageContent, error) {
	pages := make([]company.PageContent, len(items))
	for i, item := range items {
		pages[i] = company.PageContent{SearchResultItem: item}
	}

	observer := observability.ObserverFromContext(ctx)

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.concurrency)
	for i := range items {
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			page, err := f.Fetch(groupCtx, items[i].URL)
			if err != nil {
				if observer != nil {
					observer.Warn(groupCtx, "page fetch failed, scoring without content",
						observability.String(observability.AttrCandidateURL, items[i].URL),
						observability.Error(err),
					)
					observer.Counter(observability.MetricFetchFailures).Add(groupCtx, 1)
				}
				return nil
			}
			pages[i].Content = page.Markdown
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return pages, err
	}
	return pages, nil
}
