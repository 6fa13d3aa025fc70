package scoring

import (
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// textReader pulls zero or more text fragments out of a response document.
type textReader func(root gjson.Result) []string

// candidateGroupPaths are the places a Gemini-style candidates array has been
// observed across client and API versions, in priority order.
var candidateGroupPaths = []string{
	"response.candidates",
	"candidates",
	"output.candidates",
	"result.candidates",
}

// plainTextPaths hold a response's text directly.
var plainTextPaths = []string{
	"response.text",
	"response.output_text",
	"output_text",
	"text",
}

var textReaders = []textReader{
	readCandidateGroups,
	readOutputItems,
	readChatChoices,
	readMessageContent,
	readPlainText,
}

// ExtractText collects every non-blank text fragment it can find in a raw
// LLM response body. Fragments are trimmed, de-duplicated in discovery order
// and joined with newlines. Unknown or invalid documents yield "".
func ExtractText(raw []byte) string {
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return ""
	}
	root := gjson.ParseBytes(raw)

	var fragments []string
	for _, read := range textReaders {
		for _, fragment := range read(root) {
			fragment = strings.TrimSpace(fragment)
			if fragment != "" && !slices.Contains(fragments, fragment) {
				fragments = append(fragments, fragment)
			}
		}
	}

	return strings.Join(fragments, "\n")
}

func readCandidateGroups(root gjson.Result) []string {
	var out []string
	for _, path := range candidateGroupPaths {
		group := root.Get(path)
		if !group.IsArray() {
			continue
		}
		for _, candidate := range group.Array() {
			out = append(out, itemText(candidate)...)
		}
	}
	return out
}

// readOutputItems reads a top-level output array whose items have the same
// shape as candidates.
func readOutputItems(root gjson.Result) []string {
	output := root.Get("output")
	if !output.IsArray() {
		return nil
	}
	var out []string
	for _, item := range output.Array() {
		out = append(out, itemText(item)...)
	}
	return out
}

// readChatChoices reads OpenAI-compatible chat completion bodies.
func readChatChoices(root gjson.Result) []string {
	var out []string
	for _, content := range root.Get("choices.#.message.content").Array() {
		if content.Type == gjson.String {
			out = append(out, content.Str)
		}
	}
	return out
}

// readMessageContent reads content-block arrays such as Anthropic messages.
func readMessageContent(root gjson.Result) []string {
	return partsText(root.Get("content"))
}

func readPlainText(root gjson.Result) []string {
	var out []string
	for _, path := range plainTextPaths {
		if value := root.Get(path); value.Type == gjson.String {
			out = append(out, value.Str)
		}
	}
	return out
}

// itemText reads one candidate or output item: content.parts, parts, then
// output_text.
func itemText(item gjson.Result) []string {
	if !item.IsObject() {
		return nil
	}
	out := partsText(item.Get("content.parts"))
	out = append(out, partsText(item.Get("parts"))...)
	if outputText := item.Get("output_text"); outputText.Type == gjson.String {
		out = append(out, outputText.Str)
	}
	return out
}

// partsText accepts parts that are either objects with a string text field
// or bare strings.
func partsText(parts gjson.Result) []string {
	if !parts.IsArray() {
		return nil
	}
	var out []string
	for _, part := range parts.Array() {
		switch {
		case part.Type == gjson.String:
			out = append(out, part.Str)
		case part.IsObject():
			if text := part.Get("text"); text.Type == gjson.String {
				out = append(out, text.Str)
			}
		}
	}
	return out
}
