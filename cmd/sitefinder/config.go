package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leofalp/sitefinder/core/company"
	"github.com/leofalp/sitefinder/core/finder"
	"github.com/leofalp/sitefinder/core/parse"
	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/ai/anthropic"
	"github.com/leofalp/sitefinder/providers/ai/gemini"
	"github.com/leofalp/sitefinder/providers/ai/openai"
	"github.com/leofalp/sitefinder/providers/fetch/webfetch"
	"github.com/leofalp/sitefinder/providers/search"
	"github.com/leofalp/sitefinder/providers/search/bravesearch"
	"github.com/leofalp/sitefinder/providers/search/tavily"
)

type config struct {
	info             company.Info
	input            string
	provider         string
	model            string
	threshold        float64
	maxResults       int
	fetchConcurrency int
	batchConcurrency int
	fetchTimeout     time.Duration
	llmTimeout       time.Duration
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("sitefinder", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.info.Name, "name", "", "company name")
	fs.StringVar(&cfg.info.LicenseNumber, "license", "", "Paid Employment Placement license number")
	fs.StringVar(&cfg.info.LicenseAddress, "address", "", "address registered on the license")
	fs.StringVar(&cfg.info.Description, "description", "", "free-text company description")
	fs.StringVar(&cfg.input, "input", "", "JSON file with an array of companies (overrides -name)")
	fs.StringVar(&cfg.provider, "provider", "gemini", "scoring backend: gemini, openai or anthropic")
	fs.StringVar(&cfg.model, "model", "", "model override for the scoring backend")
	fs.Float64Var(&cfg.threshold, "threshold", finder.DefaultThreshold, "minimum score for a result")
	fs.IntVar(&cfg.maxResults, "max-results", finder.DefaultMaxResults, "search results to request")
	fs.IntVar(&cfg.fetchConcurrency, "concurrency", webfetch.DefaultConcurrency, "pages fetched in parallel")
	fs.IntVar(&cfg.batchConcurrency, "batch-concurrency", finder.DefaultBatchConcurrency, "companies resolved in parallel with -input")
	fs.DurationVar(&cfg.fetchTimeout, "fetch-timeout", webfetch.DefaultTimeout, "per-page fetch timeout")
	fs.DurationVar(&cfg.llmTimeout, "llm-timeout", 60*time.Second, "scoring call timeout")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if cfg.input == "" && strings.TrimSpace(cfg.info.Name) == "" {
		return config{}, errors.New("either -name or -input is required")
	}
	if cfg.threshold < 0 || cfg.threshold > 1 {
		return config{}, fmt.Errorf("-threshold must be within [0,1], got %v", cfg.threshold)
	}
	return cfg, nil
}

// buildProvider returns the scoring backend named by name, configured from
// the environment.
func buildProvider(name string) (ai.Provider, error) {
	var (
		provider ai.Provider
		envKey   string
	)
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gemini":
		provider, envKey = gemini.New(), "GEMINI_API_KEY"
	case "openai":
		provider, envKey = openai.New(), "OPENAI_API_KEY"
	case "anthropic":
		provider, envKey = anthropic.New(), "ANTHROPIC_API_KEY"
	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini, openai or anthropic)", name)
	}
	if os.Getenv(envKey) == "" {
		return nil, fmt.Errorf("%s environment variable is not set", envKey)
	}
	return provider, nil
}

// buildSearchChain wires Brave then Tavily, skipping providers without a key.
func buildSearchChain() (*search.Chain, error) {
	var providers []search.Provider
	if os.Getenv("BRAVE_SEARCH_API_KEY") != "" {
		providers = append(providers, bravesearch.New())
	}
	if os.Getenv("TAVILY_API_KEY") != "" {
		providers = append(providers, tavily.New())
	}
	if len(providers) == 0 {
		return nil, errors.New("no search provider configured: set BRAVE_SEARCH_API_KEY or TAVILY_API_KEY")
	}
	return search.NewChain(providers...), nil
}

// loadBatch reads a JSON array of companies. Hand-edited files with trailing
// commas or unquoted keys are repaired before decoding.
func loadBatch(path string) ([]company.Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	infos, err := parse.ParseStringAs[[]company.Info](string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%s contains no companies", path)
	}
	return infos, nil
}
