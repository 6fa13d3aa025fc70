package parse

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ErrNoJSON is returned when no valid JSON document can be recovered from
// the input, even after repair.
var ErrNoJSON = errors.New("no JSON document found")

var codeFencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// UnwrapCodeFence trims text and, if the whole of it is a markdown code
// block (optionally tagged json), returns the block body. Anything else is
// returned trimmed.
func UnwrapCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if match := codeFencePattern.FindStringSubmatch(trimmed); match != nil {
		return strings.TrimSpace(match[1])
	}
	return trimmed
}

// RepairJSON returns a syntactically valid JSON document recovered from
// content. Valid input is returned untouched after fence unwrapping;
// otherwise jsonrepair is applied and its output validated.
//
// Example:
//
//	doc, err := RepairJSON("```json\n{urls: [{'url': 'https://acme.com', score: 0.9,}]}\n```")
//	// doc == `{"urls": [{"url": "https://acme.com", "score": 0.9}]}`
func RepairJSON(content string) (string, error) {
	cleaned := UnwrapCodeFence(content)
	if cleaned == "" {
		return "", fmt.Errorf("%w: empty input", ErrNoJSON)
	}

	if json.Valid([]byte(cleaned)) {
		return cleaned, nil
	}

	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil {
		return "", fmt.Errorf("%w: repair failed: %v", ErrNoJSON, err)
	}
	if !json.Valid([]byte(repaired)) {
		return "", fmt.Errorf("%w: repaired output is still invalid", ErrNoJSON)
	}

	return repaired, nil
}

// ParseStringAs decodes content into T after recovering it with RepairJSON.
func ParseStringAs[T any](content string) (T, error) {
	var result T

	doc, err := RepairJSON(content)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(doc), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T: %w", result, err)
	}

	return result, nil
}
