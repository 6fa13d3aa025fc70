// Package ai defines the provider-agnostic request and response types shared
// by the LLM backends (Gemini, OpenAI, Anthropic). Each backend maps
// [ChatRequest] to its own wire format and returns a [ChatResponse] that
// keeps the raw body next to the decoded content, because downstream
// consumers of model output cannot rely on any single response shape.
package ai
