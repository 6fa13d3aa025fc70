package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/leofalp/sitefinder/core/address"
	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/parse"
	"github.com/leofalp/sitefinder/core/urlnorm"
)

// FailureReason tags why an LLM scoring attempt was abandoned.
type FailureReason string

const (
	FailureTransport      FailureReason = "transport"
	FailureEmptyResponse  FailureReason = "empty_response"
	FailureInvalidJSON    FailureReason = "invalid_json"
	FailureSchemaMismatch FailureReason = "schema_mismatch"
)

// ParseError reports a response that could not be turned into scores.
type ParseError struct {
	Reason FailureReason
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unusable model response: %s", e.Reason)
	}
	return fmt.Sprintf("unusable model response: %s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FailureReasonOf returns the tag carried by err, or FailureTransport for any
// error that is not a *ParseError.
func FailureReasonOf(err error) FailureReason {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Reason
	}
	return FailureTransport
}

// ParseResponse turns model output text into a ScoreResult. The text may be
// wrapped in a markdown code fence; what remains must be valid JSON that
// decodes to an object with an array "urls". Malformed or truncated JSON is
// rejected with FailureInvalidJSON rather than repaired.
//
// Entries without a string url and a numeric score are dropped. Scores are
// clamped to [0,1] and URLs reduced to their domain form. The address comes
// from "headquartersAddress", falling back to "headquarters_address" when the
// former is missing or blank. The returned URLs carry no cardinality
// guarantee relative to any candidate list.
func ParseResponse(text string) (company.ScoreResult, error) {
	cleaned := parse.UnwrapCodeFence(text)
	if cleaned == "" {
		return company.ScoreResult{}, &ParseError{Reason: FailureEmptyResponse}
	}

	if !gjson.Valid(cleaned) {
		return company.ScoreResult{}, &ParseError{Reason: FailureInvalidJSON, Err: errors.New("malformed JSON document")}
	}

	root := gjson.Parse(cleaned)
	urls := root.Get("urls")
	if !root.IsObject() || !urls.IsArray() {
		return company.ScoreResult{}, &ParseError{
			Reason: FailureSchemaMismatch,
			Err:    errors.New(`missing "urls" array`),
		}
	}

	result := company.ScoreResult{URLs: []company.ScoredURL{}}
	for _, entry := range urls.Array() {
		url := entry.Get("url")
		score := entry.Get("score")
		if url.Type != gjson.String || score.Type != gjson.Number {
			continue
		}

		scored := company.ScoredURL{
			URL:   urlnorm.DomainURL(url.Str),
			Score: ClampScore(score.Num),
		}
		if reason := entry.Get("reason"); reason.Type == gjson.String {
			scored.Reason = reason.Str
		}
		result.URLs = append(result.URLs, scored)
	}

	result.HeadquartersAddress = reportedAddress(root)
	return result, nil
}

// ClampScore bounds score to [0,1].
func ClampScore(score float64) float64 {
	return math.Min(1, math.Max(0, score))
}

func reportedAddress(root gjson.Result) string {
	for _, key := range []string{"headquartersAddress", "headquarters_address"} {
		if value := root.Get(key); value.Type == gjson.String {
			if normalized := address.Normalize(value.Str); normalized != "" {
				return normalized
			}
		}
	}
	return ""
}
