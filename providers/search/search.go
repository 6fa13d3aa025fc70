package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/providers/observability"
)

// DefaultCount is the number of results requested when callers pass count <= 0.
const DefaultCount = 10

// Provider is a web search backend.
type Provider interface {
	// Search returns up to count results for query. An empty result with a nil
	// error means the backend answered but found nothing.
	Search(ctx context.Context, query string, count int) ([]company.SearchResultItem, error)

	// Name identifies the backend in logs.
	Name() string
}

// Chain queries providers in order. The first provider returning at least one
// result wins; errors and empty answers move on to the next provider.
type Chain struct {
	providers []Provider
}

var _ Provider = (*Chain)(nil)

// NewChain builds a chain over providers, skipping nil entries.
func NewChain(providers ...Provider) *Chain {
	chain := &Chain{}
	for _, provider := range providers {
		if provider != nil {
			chain.providers = append(chain.providers, provider)
		}
	}
	return chain
}

// Name returns "chain".
func (c *Chain) Name() string {
	return "chain"
}

// Len returns the number of providers in the chain.
func (c *Chain) Len() int {
	return len(c.providers)
}

// Search implements Provider. It returns an error only when every provider
// failed; if at least one answered with no results, the result is empty and
// the error nil.
func (c *Chain) Search(ctx context.Context, query string, count int) ([]company.SearchResultItem, error) {
	if count <= 0 {
		count = DefaultCount
	}

	observer := observability.ObserverFromContext(ctx)

	var errs []error
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var span observability.Span
		searchCtx := ctx
		if observer != nil {
			searchCtx, span = observer.StartSpan(ctx, observability.SpanSearch,
				observability.String(observability.AttrSearchProvider, provider.Name()),
				observability.String(observability.AttrSearchQuery, query),
			)
		}

		results, err := provider.Search(searchCtx, query, count)
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "search failed")
			} else {
				span.SetAttributes(observability.Int(observability.AttrCandidateCount, len(results)))
				span.SetStatus(observability.StatusOK, "")
			}
			span.End()
		}

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
			if observer != nil {
				observer.Warn(ctx, "search provider failed, trying next",
					observability.String(observability.AttrSearchProvider, provider.Name()),
					observability.Error(err),
				)
			}
			continue
		}

		if len(results) > 0 {
			if len(results) > count {
				results = results[:count]
			}
			return results, nil
		}

		if observer != nil {
			observer.Info(ctx, "search provider returned no results",
				observability.String(observability.AttrSearchProvider, provider.Name()),
			)
		}
	}

	if len(errs) == len(c.providers) && len(errs) > 0 {
		return nil, fmt.Errorf("all search providers failed: %w", errors.Join(errs...))
	}
	return nil, nil
}
