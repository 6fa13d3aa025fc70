package bravesearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearch_MapsWebResults(t *testing.T) {
	var gotQuery, gotCount, gotToken, gotCountry string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/web/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotCount = r.URL.Query().Get("count")
		gotCountry = r.URL.Query().Get("country")
		gotToken = r.Header.Get("X-Subscription-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"type": "search",
			"query": {"original": "acme"},
			"web": {"type": "search", "results": [
				{"title": "<strong>Acme</strong> Corp", "url": "https://www.acme.com/", "description": "Official site of <strong>Acme</strong> &amp; partners"},
				{"title": "no url", "url": ""},
				{"title": "Acme on Wikipedia", "url": "https://en.wikipedia.org/wiki/Acme", "description": ""}
			]}
		}`))
	}))
	defer server.Close()

	provider := New().WithAPIKey("test-key").WithBaseURL(server.URL + "/").WithCountry("jp")
	results, err := provider.Search(context.Background(), "acme 13-ユ-1", 50)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "acme 13-ユ-1" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotCount != "20" {
		t.Errorf("count = %q, want capped 20", gotCount)
	}
	if gotCountry != "jp" {
		t.Errorf("country = %q", gotCountry)
	}
	if gotToken != "test-key" {
		t.Errorf("token = %q", gotToken)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Acme Corp" || results[0].Snippet != "Official site of Acme & partners" {
		t.Errorf("unexpected first result %+v", results[0])
	}
	if results[1].URL != "https://en.wikipedia.org/wiki/Acme" {
		t.Errorf("unexpected second result %+v", results[1])
	}
}

func TestSearch_NoWebSection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"type":"search"}`))
	}))
	defer server.Close()

	results, err := New().WithAPIKey("k").WithBaseURL(server.URL).Search(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestSearch_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := New().WithAPIKey("").Search(context.Background(), "q", 5)
		if err == nil || !strings.Contains(err.Error(), envAPIKey) {
			t.Errorf("expected missing key error, got %v", err)
		}
	})

	t.Run("non-200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limited"}`))
		}))
		defer server.Close()

		_, err := New().WithAPIKey("k").WithBaseURL(server.URL).Search(context.Background(), "q", 5)
		if err == nil || !strings.Contains(err.Error(), "429") {
			t.Errorf("expected status error, got %v", err)
		}
	})

	t.Run("bad body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer server.Close()

		_, err := New().WithAPIKey("k").WithBaseURL(server.URL).Search(context.Background(), "q", 5)
		if err == nil || !strings.Contains(err.Error(), "error parsing response") {
			t.Errorf("expected parse error, got %v", err)
		}
	})
}

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"<strong>hello</strong> world", "hello world"},
		{"<strong>bold</strong> and <em>italic</em>", "bold and italic"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"plain text", "plain text"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanHTML(tt.input); got != tt.expected {
			t.Errorf("cleanHTML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
