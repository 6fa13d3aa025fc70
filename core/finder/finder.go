package finder

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/normalize"
	"github.com/leofalp/sitefinder/core/urlnorm"
	"github.com/leofalp/sitefinder/providers/observability"
	"github.com/leofalp/sitefinder/providers/search"
)

const (
	// DefaultThreshold is the minimum score a candidate needs to be returned.
	DefaultThreshold = 0.6
	// DefaultMaxResults is the number of search results requested.
	DefaultMaxResults = 10
	// DefaultBatchConcurrency bounds companies resolved at once by FindBatch.
	DefaultBatchConcurrency = 2
)

// PageFetcher turns search hits into pages with content, one per item and in
// input order.
type PageFetcher interface {
	FetchAll(ctx context.Context, items []company.SearchResultItem) ([]company.PageContent, error)
}

// CandidateScorer scores fetched pages. It never fails.
type CandidateScorer interface {
	ScoreCandidates(ctx context.Context, info company.Info, pages []company.PageContent) company.ScoreResult
}

// Finder runs search, fetch and scoring for one company at a time. It is safe
// for concurrent use if its collaborators are.
type Finder struct {
	searcher   search.Provider
	fetcher    PageFetcher
	scorer     CandidateScorer
	threshold  float64
	maxResults int
	observer   observability.Provider
}

// Option configures a Finder.
type Option func(*Finder)

// WithThreshold sets the minimum accepted score.
func WithThreshold(threshold float64) Option {
	return func(f *Finder) { f.threshold = threshold }
}

// WithMaxResults sets how many search results are requested.
func WithMaxResults(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.maxResults = n
		}
	}
}

// WithObserver enables spans and logs. Without it the observer in the call
// context, if any, is used.
func WithObserver(observer observability.Provider) Option {
	return func(f *Finder) { f.observer = observer }
}

// New returns a Finder wired to the given collaborators.
func New(searcher search.Provider, fetcher PageFetcher, scorer CandidateScorer, opts ...Option) *Finder {
	f := &Finder{
		searcher:   searcher,
		fetcher:    fetcher,
		scorer:     scorer,
		threshold:  DefaultThreshold,
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildQuery returns the search query for info: the normalized name followed
// by the normalized license number when present.
func BuildQuery(info company.Info) string {
	parts := []string{normalize.ForQuery(info.Name)}
	if license := normalize.LicenseNumberForQuery(info.LicenseNumber); license != "" {
		parts = append(parts, license)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// FindBestCompanyURL returns the best candidate for info, or nil when search
// found nothing or no candidate reached the threshold. Errors come only from
// search (every provider failed) or a done context.
func (f *Finder) FindBestCompanyURL(ctx context.Context, info company.Info) (*company.SearchResult, error) {
	observer := f.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanFindCompanyURL,
			observability.String(observability.AttrCompanyName, info.Name),
		)
		defer span.End()
		ctx = observability.ContextWithObserver(ctx, observer)
	}

	query := BuildQuery(info)
	if query == "" {
		return nil, fmt.Errorf("company name is required")
	}

	items, err := f.searcher.Search(ctx, query, f.maxResults)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "search failed")
		}
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	items = dedupe(items)
	if len(items) == 0 {
		if observer != nil {
			observer.Info(ctx, "no search results",
				observability.String(observability.AttrCompanyName, info.Name),
				observability.String(observability.AttrSearchQuery, query),
			)
		}
		if span != nil {
			span.SetStatus(observability.StatusOK, "no candidates")
		}
		return nil, nil
	}

	pages, err := f.fetcher.FetchAll(ctx, items)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "fetch interrupted")
		}
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	result := f.scorer.ScoreCandidates(ctx, info, pages)

	best, ok := result.Best()
	if !ok || best.Score < f.threshold {
		if observer != nil {
			observer.Info(ctx, "no candidate reached the threshold",
				observability.String(observability.AttrCompanyName, info.Name),
				observability.Float64(observability.AttrCandidateScore, best.Score),
				observability.Float64("threshold", f.threshold),
			)
		}
		if span != nil {
			span.SetStatus(observability.StatusOK, "below threshold")
		}
		return nil, nil
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrCandidateURL, best.URL),
			observability.Float64(observability.AttrCandidateScore, best.Score),
		)
		span.SetStatus(observability.StatusOK, "")
	}

	return &company.SearchResult{
		ScoredURL:           best,
		HeadquartersAddress: result.HeadquartersAddress,
	}, nil
}

// dedupe drops items without a URL and keeps the first item per canonical domain.
func dedupe(items []company.SearchResultItem) []company.SearchResultItem {
	seen := make(map[string]struct{}, len(items))
	out := make([]company.SearchResultItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.URL) == "" {
			continue
		}
		key := urlnorm.DomainURL(item.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}

// BatchResult pairs a company with its resolution outcome.
type BatchResult struct {
	Company company.Info          `json:"company"`
	Result  *company.SearchResult `json:"result"`
	Error   string                `json:"error,omitempty"`
}

// FindBatch resolves every company with at most concurrency lookups in
// flight. Results keep input order; a failure is recorded on its entry and
// does not stop the batch.
func (f *Finder) FindBatch(ctx context.Context, infos []company.Info, concurrency int) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]BatchResult, len(infos))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, info := range infos {
		results[i].Company = info
		group.Go(func() error {
			found, err := f.FindBestCompanyURL(groupCtx, info)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Result = found
			return nil
		})
	}
	_ = group.Wait()
	return results
}
