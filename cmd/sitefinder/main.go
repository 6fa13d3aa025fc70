// Command sitefinder resolves the official website and headquarters address
// of one company, or of every company in a JSON batch file.
//
// Usage:
//
//	sitefinder -name "Acme Corp" -license "13-ユ-123456"
//	sitefinder -input companies.json -concurrency 4
//
// API keys are read from the environment or a .env file: GEMINI_API_KEY,
// OPENAI_API_KEY or ANTHROPIC_API_KEY for scoring, and BRAVE_SEARCH_API_KEY
// and/or TAVILY_API_KEY for search.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/sitefinder/core/finder"
	"github.com/leofalp/sitefinder/core/scoring"
	"github.com/leofalp/sitefinder/providers/fetch/webfetch"
	"github.com/leofalp/sitefinder/providers/observability"
	slogobs "github.com/leofalp/sitefinder/providers/observability/slog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	provider, err := buildProvider(cfg.provider)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	searcher, err := buildSearchChain()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	observer := slogobs.New(slogobs.NewLogger(stderr))

	scorer := scoring.New(provider,
		scoring.WithModel(cfg.model),
		scoring.WithTimeout(cfg.llmTimeout),
	)
	fetcher := webfetch.New(
		webfetch.WithConcurrency(cfg.fetchConcurrency),
		webfetch.WithTimeout(cfg.fetchTimeout),
	)
	f := finder.New(searcher, fetcher, scorer,
		finder.WithThreshold(cfg.threshold),
		finder.WithMaxResults(cfg.maxResults),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = observability.ContextWithObserver(ctx, observer)

	if cfg.input != "" {
		infos, err := loadBatch(cfg.input)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return writeJSON(stdout, stderr, f.FindBatch(ctx, infos, cfg.batchConcurrency))
	}

	result, err := f.FindBestCompanyURL(ctx, cfg.info)
	if err != nil {
		fmt.Fprintf(stderr, "lookup failed: %v\n", err)
		return 1
	}
	if result == nil {
		fmt.Fprintln(stdout, "no official website found")
		return 0
	}
	return writeJSON(stdout, stderr, result)
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		fmt.Fprintf(stderr, "write result: %v\n", err)
		return 1
	}
	return 0
}
