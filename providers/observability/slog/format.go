package slog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output format of loggers built by NewLogger.
type Format string

const (
	// FormatText is slog's key=value text output (default).
	FormatText Format = "text"
	// FormatJSON is one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Unknown values yield FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// GetFormatFromEnv reads SITEFINDER_LOG_FORMAT, then LOG_FORMAT.
func GetFormatFromEnv() Format {
	if format := os.Getenv("SITEFINDER_LOG_FORMAT"); format != "" {
		return ParseFormat(format)
	}
	return ParseFormat(os.Getenv("LOG_FORMAT"))
}

// NewLogger builds a logger writing to w with the level and format taken
// from the environment. A nil w means os.Stderr.
func NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: GetLogLevelFromEnv()}
	if GetFormatFromEnv() == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
