// Package slog implements [observability.Provider] on top of the standard
// library's log/slog. Spans, counters and histograms are rendered as log
// records; counters also keep an in-memory running total.
package slog
