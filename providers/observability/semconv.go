package observability

// Semantic conventions for observability attributes.

// --- LLM Provider Attributes ---

const (
	// AttrLLMProvider is the name of the LLM provider (e.g., "gemini", "openai")
	AttrLLMProvider = "llm.provider"

	// AttrLLMModel is the model identifier
	AttrLLMModel = "llm.model"

	// AttrLLMEndpoint is the API endpoint URL
	AttrLLMEndpoint = "llm.endpoint"

	// AttrLLMResponseID is the unique response identifier from the provider
	AttrLLMResponseID = "llm.response.id"

	// AttrLLMFinishReason is the reason the generation finished
	AttrLLMFinishReason = "llm.finish_reason"
)

// --- Token Usage Attributes ---

const (
	AttrLLMTokensPrompt     = "llm.tokens.prompt"     // #nosec G101 -- token refers to LLM tokens
	AttrLLMTokensCompletion = "llm.tokens.completion" // #nosec G101 -- token refers to LLM tokens
	AttrLLMTokensTotal      = "llm.tokens.total"      // #nosec G101 -- token refers to LLM tokens
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Company / Candidate Attributes ---

const (
	// AttrCompanyName is the company being resolved
	AttrCompanyName = "company.name"

	// AttrCandidateCount is the number of candidate pages in a batch
	AttrCandidateCount = "candidate.count"

	// AttrCandidateURL is a single candidate URL
	AttrCandidateURL = "candidate.url"

	// AttrCandidateScore is the score assigned to a candidate
	AttrCandidateScore = "candidate.score"

	// AttrScoringPath is "llm" or "heuristic"
	AttrScoringPath = "scoring.path"

	// AttrFailureReason is the reason the LLM scoring attempt failed
	AttrFailureReason = "scoring.failure_reason"

	// AttrSearchProvider is the name of a search provider
	AttrSearchProvider = "search.provider"

	// AttrSearchQuery is the query sent to a search provider
	AttrSearchQuery = "search.query"

	// AttrResponsePreview is a truncated preview of an LLM response
	AttrResponsePreview = "response.preview"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	SpanScoreCandidates = "scoring.score_candidates"
	SpanLLMRequest      = "llm.request"
	SpanFindCompanyURL  = "finder.find_company_url"
	SpanSearch          = "search.query"
)

// --- Event Names ---

const (
	EventLLMRequestStart      = "llm.request.start"
	EventLLMRequestEnd        = "llm.request.end"
	EventTokensReceived       = "llm.tokens.received" // #nosec G101 -- token refers to LLM tokens
	EventHeuristicFallback    = "scoring.heuristic_fallback"
	EventCandidatesReconciled = "scoring.reconciled"
)

// --- Metric Names ---

const (
	MetricScoringRequests  = "sitefinder.scoring.requests"
	MetricScoringFallbacks = "sitefinder.scoring.fallbacks"
	MetricLLMTokensTotal   = "sitefinder.llm.tokens.total"
	MetricLLMRequestCount  = "sitefinder.llm.requests"
	MetricLLMDuration      = "sitefinder.llm.duration"
	MetricFetchFailures    = "sitefinder.fetch.failures"
)
