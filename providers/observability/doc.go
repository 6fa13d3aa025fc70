// Package observability defines the interfaces and attribute conventions used
// for tracing, metrics and structured logging across sitefinder.
//
// A [Provider] and the active [Span] travel through a [context.Context] via
// [ContextWithObserver] and [ContextWithSpan]. Components fetch them with
// [ObserverFromContext] and [SpanFromContext] and must tolerate nil, which
// means observability is disabled for that call.
package observability
