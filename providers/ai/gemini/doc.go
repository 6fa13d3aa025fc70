// Package gemini implements [ai.Provider] for Google's Gemini generative
// language API via the generateContent endpoint.
//
// The primary entry point is [New], which reads GEMINI_API_KEY,
// GEMINI_API_BASE_URL and GEMINI_MODEL from the environment. Use
// [GeminiProvider.WithAPIKey], [GeminiProvider.WithBaseURL], or
// [GeminiProvider.WithHttpClient] to configure the provider programmatically.
// The raw response body is kept on [ai.ChatResponse.Raw] so callers can inspect
// shapes the typed decoding does not cover.
package gemini
