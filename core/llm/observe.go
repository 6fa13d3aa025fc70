package llm

import (
	"context"
	"time"

	"github.com/leofalp/sitefinder/internal/utils"
	"github.com/leofalp/sitefinder/providers/ai"
	"github.com/leofalp/sitefinder/providers/observability"
)

// Observe returns a middleware that records a span, request/token metrics and
// a structured log line around every call. Both the span and the observer are
// placed on the context before calling next so providers can enrich them.
//
// A nil observer is resolved from the call context; without one the call
// passes through untouched. defaultModel labels attributes when the request
// leaves Model empty.
func Observe(observer observability.Provider, defaultModel string) Middleware {
	return func(next SendFunc) SendFunc {
		return func(ctx context.Context, request ai.ChatRequest) (*ai.ChatResponse, error) {
			observer := observer
			if observer == nil {
				observer = observability.ObserverFromContext(ctx)
			}
			if observer == nil {
				return next(ctx, request)
			}

			model := request.Model
			if model == "" {
				model = defaultModel
			}

			ctx, span := observer.StartSpan(ctx, observability.SpanLLMRequest,
				observability.String(observability.AttrLLMModel, model),
			)
			ctx = observability.ContextWithSpan(ctx, span)
			ctx = observability.ContextWithObserver(ctx, observer)

			observer.Debug(ctx, "llm send", observability.String(observability.AttrLLMModel, model))

			start := time.Now()
			response, err := next(ctx, request)
			elapsed := time.Since(start)

			observer.Histogram(observability.MetricLLMDuration).Record(ctx, elapsed.Seconds(),
				observability.String(observability.AttrLLMModel, model),
			)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(observability.StatusError, "llm send failed")
				span.End()

				observer.Counter(observability.MetricLLMRequestCount).Add(ctx, 1,
					observability.String(observability.AttrStatus, "error"),
					observability.String(observability.AttrLLMModel, model),
				)
				return nil, err
			}

			recordSuccess(ctx, span, observer, response, elapsed, model)
			return response, nil
		}
	}
}

func recordSuccess(
	ctx context.Context,
	span observability.Span,
	observer observability.Provider,
	response *ai.ChatResponse,
	elapsed time.Duration,
	model string,
) {
	observer.Counter(observability.MetricLLMRequestCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, "success"),
		observability.String(observability.AttrLLMModel, model),
	)

	if response == nil {
		observer.Debug(ctx, "llm send completed without a response body")
		span.SetStatus(observability.StatusOK, "empty")
		span.End()
		return
	}

	logAttrs := []observability.Attribute{
		observability.String(observability.AttrLLMModel, model),
		observability.String(observability.AttrLLMFinishReason, response.FinishReason),
		observability.Duration(observability.AttrDuration, elapsed),
	}

	if response.Usage != nil {
		observer.Counter(observability.MetricLLMTokensTotal).Add(ctx, int64(response.Usage.TotalTokens),
			observability.String(observability.AttrLLMModel, model),
		)
		span.SetAttributes(
			observability.Int(observability.AttrLLMTokensTotal, response.Usage.TotalTokens),
			observability.Int(observability.AttrLLMTokensPrompt, response.Usage.PromptTokens),
			observability.Int(observability.AttrLLMTokensCompletion, response.Usage.CompletionTokens),
		)
	}

	if response.Content != "" {
		logAttrs = append(logAttrs,
			observability.String(observability.AttrResponsePreview, utils.TruncateString(response.Content, 100)),
		)
	}

	observer.Debug(ctx, "llm send completed", logAttrs...)

	span.SetStatus(observability.StatusOK, "success")
	span.End()
}
