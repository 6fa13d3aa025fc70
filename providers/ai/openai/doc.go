// Package openai implements [ai.Provider] for OpenAI-compatible chat
// completion APIs on top of the official openai-go SDK.
//
// The main entry point is [New], which reads OPENAI_API_KEY,
// OPENAI_API_BASE_URL and OPENAI_MODEL from the environment. The SDK's own
// retry loop is disabled: a failed call surfaces once and the caller decides
// what to do with it.
package openai
