// Package anthropic implements [ai.Provider] for Anthropic's Messages API
// using the official anthropic-sdk-go client.
//
// The primary entry point is [New], which reads ANTHROPIC_API_KEY,
// ANTHROPIC_API_BASE_URL and ANTHROPIC_MODEL from the environment. The
// Messages API has no JSON response mode, so [ai.ResponseFormat] is ignored
// and callers rely on prompt instructions instead.
package anthropic
