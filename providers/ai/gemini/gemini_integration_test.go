//go:build integration

package gemini

import (
	"context"
	"os"
	"testing"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/leofalp/sitefinder/providers/ai"
)

// requireAPIKey fails the test immediately when GEMINI_API_KEY is not set.
// Integration tests are opt-in (build tag), so a missing key is a configuration
// error that should surface loudly rather than be silently skipped.
func requireAPIKey(t *testing.T) {
	t.Helper()
	if os.Getenv("GEMINI_API_KEY") == "" {
		t.Fatal("GEMINI_API_KEY is required for integration tests")
	}
}

func TestGeminiSendMessage_Integration(t *testing.T) {
	requireAPIKey(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	response, err := New().SendMessage(ctx, ai.ChatRequest{
		Messages:       []ai.Message{ai.UserMessage(`Return the JSON object {"urls": []} and nothing else.`)},
		ResponseFormat: &ai.ResponseFormat{Type: ai.ResponseFormatJSON},
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if response.Content == "" {
		t.Error("expected non-empty content in response")
	}
	if len(response.Raw) == 0 {
		t.Error("expected raw body to be retained")
	}
	if response.Usage == nil {
		t.Error("expected non-nil usage in response")
	}
}
