// Package utils provides shared low-level helpers for the sitefinder
// providers: a synchronous JSON POST helper used by the LLM backends, a
// response-body close helper, and string truncation for log previews.
package utils
