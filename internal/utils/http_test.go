package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestDoPostSync_Success verifies that a 200 response with valid JSON is
// decoded into the output struct.
func TestDoPostSync_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header: %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"value":42}`)
	}))
	defer server.Close()

	type response struct {
		Value int `json:"value"`
	}

	_, result, err := DoPostSync[response](context.Background(), server.Client(), server.URL, "test-key", map[string]string{"q": "test"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result == nil || result.Value != 42 {
		t.Errorf("expected Value=42, got %+v", result)
	}
}

// TestDoPostSync_RawMessage verifies the helper can hand back the body
// untouched for callers that inspect it themselves.
func TestDoPostSync_RawMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[{"output_text":"hi"}]}`)
	}))
	defer server.Close()

	_, raw, err := DoPostSync[json.RawMessage](context.Background(), nil, server.URL, "", struct{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(*raw), "output_text") {
		t.Errorf("raw body not preserved: %s", string(*raw))
	}
}

// TestDoPostSync_CustomHeader verifies that extra headers are sent.
func TestDoPostSync_CustomHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "abc" {
			t.Errorf("expected x-goog-api-key=abc, got %q", got)
		}
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header")
		}
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	_, _, err := DoPostSync[map[string]any](context.Background(), server.Client(), server.URL, "", struct{}{},
		HeaderOption{Key: "x-goog-api-key", Value: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestDoPostSync_Non2xxStatus verifies that a non-2xx status is an error that
// mentions the code.
func TestDoPostSync_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, "slow down")
	}))
	defer server.Close()

	res, _, err := DoPostSync[map[string]any](context.Background(), server.Client(), server.URL, "", struct{}{})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got: %v", err)
	}
	if res == nil || res.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected response to be returned alongside the error")
	}
}

// TestDoPostSync_UnmarshalError verifies undecodable bodies are reported.
func TestDoPostSync_UnmarshalError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	_, _, err := DoPostSync[map[string]any](context.Background(), server.Client(), server.URL, "", struct{}{})
	if err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

// TestDoPostSync_CanceledContext verifies cancellation surfaces as an error.
func TestDoPostSync_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := DoPostSync[map[string]any](ctx, server.Client(), server.URL, "", struct{}{}); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"long", "hello world", 5, "hello... (truncated, total: 11 chars)"},
		{"multibyte boundary", "東京都", 4, "東... (truncated, total: 9 chars)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestFirstRunes(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 10, "abc"},
		{"東京都千代田区", 3, "東京都"},
		{"abc", 0, ""},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := FirstRunes(tt.input, tt.n); got != tt.want {
			t.Errorf("FirstRunes(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
