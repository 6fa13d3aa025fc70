package llm

import (
	"context"

	"github.com/leofalp/sitefinder/providers/ai"
)

// SendFunc sends a chat request and returns the completed response.
type SendFunc func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error)

// Middleware wraps the next SendFunc in the chain. The first middleware
// passed to Chain is the outermost wrapper.
type Middleware func(next SendFunc) SendFunc

// Chain builds a SendFunc that calls provider.SendMessage through the given
// middlewares. Nil middlewares are skipped.
func Chain(provider ai.Provider, middlewares ...Middleware) SendFunc {
	var chain SendFunc = func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
		return provider.SendMessage(ctx, request)
	}

	// reverse so that middlewares[0] is outermost
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] != nil {
			chain = middlewares[i](chain)
		}
	}

	return chain
}
