// Package llm wraps a single [ai.Provider] call in a middleware chain.
//
// A [SendFunc] is the unit threaded through the chain; [Chain] builds it from
// a provider and a list of [Middleware], outermost first. [Observe] adds a
// span, request/token metrics and a completion log; [Timeout] bounds each
// call with a deadline. There is deliberately no retry middleware: callers of
// this package degrade to a local fallback after the first failure.
package llm
