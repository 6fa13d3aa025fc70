package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/leofalp/sitefinder/core/address"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/llm"
	"github.com/leofalp/sitefinder/core/urlnorm"
	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/observability"
)

// UnscoredReason marks a candidate the model left out of its answer.
const UnscoredReason = "URL not scored by Gemini."

const (
	pathLLM       = "llm"
	pathHeuristic = "heuristic"
)

// Scorer scores candidate pages with an LLM and a heuristic fallback. It
// holds no per-call state and is safe for concurrent use.
type Scorer struct {
	provider     ai.Provider
	model        string
	observer     observability.Provider
	middlewares  []llm.Middleware
	timeout      time.Duration
	previewRunes int
	jsonMode     bool
	send         llm.SendFunc
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithModel sets the model requested from the provider. Empty leaves the
// choice to the provider.
func WithModel(model string) Option {
	return func(s *Scorer) { s.model = model }
}

// WithObserver enables spans, metrics and logs for scoring calls.
func WithObserver(observer observability.Provider) Option {
	return func(s *Scorer) { s.observer = observer }
}

// WithMiddleware appends middlewares around the provider call.
func WithMiddleware(middlewares ...llm.Middleware) Option {
	return func(s *Scorer) { s.middlewares = append(s.middlewares, middlewares...) }
}

// WithTimeout bounds the provider call. Zero means no bound beyond the
// caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scorer) { s.timeout = timeout }
}

// WithPreviewRunes sets how much page content is embedded per candidate.
func WithPreviewRunes(n int) Option {
	return func(s *Scorer) { s.previewRunes = n }
}

// WithJSONMode asks providers that support it for a JSON-only response.
func WithJSONMode(enabled bool) Option {
	return func(s *Scorer) { s.jsonMode = enabled }
}

// New returns a Scorer that calls provider.
func New(provider ai.Provider, opts ...Option) *Scorer {
	s := &Scorer{
		provider:     provider,
		previewRunes: DefaultPreviewRunes,
		jsonMode:     true,
	}
	for _, opt := range opts {
		opt(s)
	}

	chain := make([]llm.Middleware, 0, len(s.middlewares)+2)
	chain = append(chain, llm.Observe(s.observer, s.model))
	chain = append(chain, s.middlewares...)
	chain = append(chain, llm.Timeout(s.timeout))
	s.send = llm.Chain(provider, chain...)

	return s
}

// ScoreCandidates returns one score per page, in page order. Empty input
// returns an empty result without calling the model.
func (s *Scorer) ScoreCandidates(ctx context.Context, info company.Info, pages []company.PageContent) company.ScoreResult {
	if len(pages) == 0 {
		return company.ScoreResult{URLs: []company.ScoredURL{}}
	}

	observer := s.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanScoreCandidates,
			observability.String(observability.AttrCompanyName, info.Name),
			observability.Int(observability.AttrCandidateCount, len(pages)),
		)
		ctx = observability.ContextWithObserver(ctx, observer)
		defer span.End()
		observer.Counter(observability.MetricScoringRequests).Add(ctx, 1)
	}

	result, failure := s.scoreWithModel(ctx, observer, info, pages)
	if failure != "" {
		result = HeuristicScore(info, pages)
		if observer != nil {
			observer.Counter(observability.MetricScoringFallbacks).Add(ctx, 1,
				observability.String(observability.AttrFailureReason, string(failure)),
			)
		}
		if span != nil {
			span.AddEvent(observability.EventHeuristicFallback,
				observability.String(observability.AttrFailureReason, string(failure)),
			)
			span.SetAttributes(observability.String(observability.AttrScoringPath, pathHeuristic))
		}
		return result
	}

	if span != nil {
		span.SetAttributes(observability.String(observability.AttrScoringPath, pathLLM))
		span.SetStatus(observability.StatusOK, "scored")
	}
	return result
}

// scoreWithModel runs the LLM path. A non-empty FailureReason means the
// caller must fall back.
func (s *Scorer) scoreWithModel(ctx context.Context, observer observability.Provider, info company.Info, pages []company.PageContent) (company.ScoreResult, FailureReason) {
	request := ai.ChatRequest{
		Model:    s.model,
		Messages: []ai.Message{ai.UserMessage(BuildPrompt(info, pages, s.previewRunes))},
	}
	if s.jsonMode {
		request.ResponseFormat = &ai.ResponseFormat{Type: ai.ResponseFormatJSON}
	}

	response, err := s.send(ctx, request)
	if err == nil && response == nil {
		err = &ParseError{Reason: FailureEmptyResponse}
	}
	if err != nil {
		reason := FailureReasonOf(err)
		if observer != nil {
			observer.Error(ctx, "Failed to score URLs with the model. Falling back to heuristic scoring.",
				observability.Error(err),
				observability.String(observability.AttrFailureReason, string(reason)),
			)
		}
		return company.ScoreResult{}, reason
	}

	logUsage(ctx, observer, response.Usage)

	text := ExtractText(response.Raw)
	if text == "" {
		text = strings.TrimSpace(response.Content)
	}

	parsed, err := ParseResponse(text)
	if err != nil {
		reason := FailureReasonOf(err)
		if observer != nil {
			observer.Warn(ctx, "Model response could not be parsed. Falling back to heuristic scoring.",
				observability.Error(err),
				observability.String(observability.AttrFailureReason, string(reason)),
				observability.String(observability.AttrResponsePreview, utils.TruncateString(text, utils.DefaultMaxStringLength)),
			)
		}
		return company.ScoreResult{}, reason
	}

	result := company.ScoreResult{
		URLs:                Reconcile(pages, parsed.URLs),
		HeadquartersAddress: parsed.HeadquartersAddress,
	}
	if result.HeadquartersAddress == "" {
		result.HeadquartersAddress = address.Extract(pages)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventCandidatesReconciled,
			observability.Int(observability.AttrCandidateCount, len(parsed.URLs)),
		)
	}

	return result, ""
}

// Reconcile maps model scores back onto pages by domain URL. The output has
// one entry per page in page order; the first model entry for a domain wins
// and pages the model skipped get a zero score with UnscoredReason.
func Reconcile(pages []company.PageContent, scored []company.ScoredURL) []company.ScoredURL {
	byURL := make(map[string]company.ScoredURL, len(scored))
	for _, entry := range scored {
		if _, seen := byURL[entry.URL]; !seen {
			byURL[entry.URL] = entry
		}
	}

	out := make([]company.ScoredURL, len(pages))
	for i, page := range pages {
		domainURL := urlnorm.DomainURL(page.URL)
		if entry, ok := byURL[domainURL]; ok {
			out[i] = entry
			continue
		}
		out[i] = company.ScoredURL{URL: domainURL, Score: 0, Reason: UnscoredReason}
	}
	return out
}

func logUsage(ctx context.Context, observer observability.Provider, usage *ai.Usage) {
	if observer == nil {
		return
	}
	if usage == nil {
		observer.Info(ctx, "LLM token usage metadata was not provided in the response.")
		return
	}
	observer.Info(ctx, "LLM token usage",
		observability.Int(observability.AttrLLMTokensPrompt, usage.PromptTokens),
		observability.Int(observability.AttrLLMTokensCompletion, usage.CompletionTokens),
		observability.Int(observability.AttrLLMTokensTotal, usage.TotalTokens),
	)
}
