package llm

import (
	"context"
	"time"

	"github.com/leofalp/sitefinder/providers/ai"
)

// Timeout returns a middleware that bounds each call with a deadline. A
// shorter deadline already on the caller's context wins. A non-positive
// timeout yields a pass-through middleware.
func Timeout(timeout time.Duration) Middleware {
	return func(next SendFunc) SendFunc {
		if timeout <= 0 {
			return next
		}
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			return next(ctx, request)
		}
	}
}
