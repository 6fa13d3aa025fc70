package scoring

import (
	"context"
	"net/http"
	"sync"

	"github.com/leofalp/sitefinder/providers/ai"
)

// fakeProvider returns a canned response and records every request.
type fakeProvider struct {
	mu       sync.Mutex
	response *ai.ChatResponse
	err      error
	requests []ai.ChatRequest
}

func (f *fakeProvider) SendMessage(_ context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	return f.response, f.err
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeProvider) Name() string                            { return "fake" }
func (f *fakeProvider) WithAPIKey(string) ai.Provider           { return f }
func (f *fakeProvider) WithBaseURL(string) ai.Provider          { return f }
func (f *fakeProvider) WithHttpClient(*http.Client) ai.Provider { return f }

// contentResponse is a provider reply carrying only decoded text.
func contentResponse(text string) *ai.ChatResponse {
	return &ai.ChatResponse{Content: text}
}
