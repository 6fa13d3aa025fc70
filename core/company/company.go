// Package company holds the data model shared by the sitefinder pipeline:
// the company being resolved, the candidate pages found for it, and the
// scores assigned to those candidates.
package company

// Info describes the company whose official website is being resolved.
// It is caller-supplied and never mutated by the pipeline.
type Info struct {
	Name           string `json:"name"`
	LicenseNumber  string `json:"licenseNumber"`
	LicenseAddress string `json:"licenseAddress,omitempty"`
	Description    string `json:"description,omitempty"`
}

// SearchResultItem is a single hit returned by a search provider.
type SearchResultItem struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// PageContent is a search hit augmented with the fetched page text.
type PageContent struct {
	SearchResultItem
	Content string `json:"content"`
}

// ScoredURL is a candidate URL in canonical domain form with its score in [0,1].
type ScoredURL struct {
	URL    string  `json:"url"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason,omitempty"`
}

// ScoreResult holds one ScoredURL per input page, in input order.
type ScoreResult struct {
	URLs                []ScoredURL `json:"urls"`
	HeadquartersAddress string      `json:"headquartersAddress,omitempty"`
}

// SearchResult is the winning candidate reported to callers of the finder.
type SearchResult struct {
	ScoredURL
	HeadquartersAddress string `json:"headquartersAddress,omitempty"`
}

// Best returns the highest-scoring entry and true, or false when URLs is
// empty. Ties keep the earliest entry.
func (r ScoreResult) Best() (ScoredURL, bool) {
	if len(r.URLs) == 0 {
		return ScoredURL{}, false
	}
	best := r.URLs[0]
	for _, candidate := range r.URLs[1:] {
		if candidate.Score > best.Score {
			best = candidate
		}
	}
	return best, true
}
