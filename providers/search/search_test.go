package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leofalp/sitefinder/core/company"
)

type stubProvider struct {
	name    string
	results []company.SearchResultItem
	err     error
	calls   int
	count   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Search(_ context.Context, _ string, count int) ([]company.SearchResultItem, error) {
	s.calls++
	s.count = count
	return s.results, s.err
}

func items(urls ...string) []company.SearchResultItem {
	out := make([]company.SearchResultItem, 0, len(urls))
	for _, u := range urls {
		out = append(out, company.SearchResultItem{Title: u, URL: u})
	}
	return out
}

func TestChain_FirstNonEmptyWins(t *testing.T) {
	first := &stubProvider{name: "first"}
	second := &stubProvider{name: "second", results: items("https://a.com")}
	third := &stubProvider{name: "third", results: items("https://b.com")}

	got, err := NewChain(first, second, third).Search(context.Background(), "acme", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].URL != "https://a.com" {
		t.Errorf("unexpected results %+v", got)
	}
	if third.calls != 0 {
		t.Error("third provider should not be queried")
	}
}

func TestChain_ErrorFallsThrough(t *testing.T) {
	broken := &stubProvider{name: "broken", err: errors.New("429 too many requests")}
	backup := &stubProvider{name: "backup", results: items("https://a.com", "https://b.com")}

	got, err := NewChain(broken, backup).Search(context.Background(), "acme", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 results, got %d", len(got))
	}
}

func TestChain_AllFail(t *testing.T) {
	chain := NewChain(
		&stubProvider{name: "a", err: errors.New("boom")},
		&stubProvider{name: "b", err: errors.New("bang")},
	)

	_, err := chain.Search(context.Background(), "acme", 5)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"a: boom", "b: bang"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestChain_EmptyAndFailedIsNotAnError(t *testing.T) {
	chain := NewChain(
		&stubProvider{name: "a", err: errors.New("boom")},
		&stubProvider{name: "b"},
	)

	got, err := chain.Search(context.Background(), "acme", 5)
	if err != nil || len(got) != 0 {
		t.Errorf("expected no results and no error, got %v, %v", got, err)
	}
}

func TestChain_CountDefaultAndTruncate(t *testing.T) {
	provider := &stubProvider{name: "p", results: items("1", "2", "3", "4")}
	chain := NewChain(nil, provider)

	if chain.Len() != 1 {
		t.Errorf("nil provider should be skipped, len = %d", chain.Len())
	}

	got, _ := chain.Search(context.Background(), "q", 2)
	if len(got) != 2 {
		t.Errorf("expected truncation to 2, got %d", len(got))
	}

	_, _ = chain.Search(context.Background(), "q", 0)
	if provider.count != DefaultCount {
		t.Errorf("count = %d, want %d", provider.count, DefaultCount)
	}
}

func TestChain_CanceledContext(t *testing.T) {
	provider := &stubProvider{name: "p", results: items("1")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewChain(provider).Search(ctx, "q", 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if provider.calls != 0 {
		t.Error("provider should not be called")
	}
}
