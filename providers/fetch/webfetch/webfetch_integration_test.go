//go:build integration

package webfetch

import (
	"context"
	"strings"
	"testing"
	"time"
)

// Run with: go test -tags=integration ./providers/fetch/webfetch/...
func TestFetch_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	page, err := New().Fetch(ctx, "example.com")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !strings.Contains(page.Markdown, "Example Domain") {
		t.Errorf("unexpected content:\n%s", page.Markdown)
	}
}
