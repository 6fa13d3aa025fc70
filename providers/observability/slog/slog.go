package slog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/sitefinder/providers/observability"
)

// Observer implements observability.Provider using Go's standard library slog
type Observer struct {
	logger  *slog.Logger
	metrics *metricsStore
}

// New creates a new slog-based observer. A nil logger means slog.Default().
func New(logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		logger:  logger,
		metrics: newMetricsStore(),
	}
}

var _ observability.Provider = (*Observer)(nil)

// --- TRACING ---

// StartSpan logs the span start and returns a context carrying the span.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger,
		attrs:     attrs,
	}

	logAttrs := []slog.Attr{
		slog.String("span", name),
		slog.String("event", "span.start"),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started", logAttrs...)

	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	attrs     []observability.Attribute
	mu        sync.Mutex
}

func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", "span.end"),
		slog.Duration("duration", time.Since(s.startTime)),
	}
	logAttrs = appendAttrs(logAttrs, s.attrs)
	s.logger.LogAttrs(context.Background(), slog.LevelInfo, "Span ended", logAttrs...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var statusStr string
	switch code {
	case observability.StatusOK:
		statusStr = "ok"
	case observability.StatusError:
		statusStr = "error"
	default:
		statusStr = "unset"
	}

	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, statusStr))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attrs = append(s.attrs, observability.Error(err))
	s.logger.LogAttrs(context.Background(), slog.LevelError, "Span error",
		slog.String("span", s.name),
		slog.String("event", "error"),
		slog.String("error", err.Error()),
	)
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", name),
	}
	logAttrs = appendAttrs(logAttrs, attrs)
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", logAttrs...)
}

// --- METRICS ---

// Counter returns the named counter. Every Add is logged at debug level with
// the running total.
func (o *Observer) Counter(name string) observability.Counter {
	return counter{o.metrics.series(name), o.logger}
}

// Histogram returns the named histogram. Only the sample count and sum are
// kept; each sample is logged at debug level.
func (o *Observer) Histogram(name string) observability.Histogram {
	return histogram{o.metrics.series(name), o.logger}
}

// CounterValue returns the running total of a counter, or 0 if it was never used.
func (o *Observer) CounterValue(name string) int64 {
	s, ok := o.metrics.lookup(name)
	if !ok {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// HistogramStats returns how many samples a histogram received and their sum.
func (o *Observer) HistogramStats(name string) (count int64, sum float64) {
	s, ok := o.metrics.lookup(name)
	if !ok {
		return 0, 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples, s.sum
}

// metricsStore keeps one series per metric name. Counters and histograms
// share the name space.
type metricsStore struct {
	mu     sync.Mutex
	byName map[string]*series
}

func newMetricsStore() *metricsStore {
	return &metricsStore{byName: make(map[string]*series)}
}

func (m *metricsStore) series(name string) *series {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byName[name]
	if !ok {
		s = &series{name: name}
		m.byName[name] = s
	}
	return s
}

func (m *metricsStore) lookup(name string) (*series, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byName[name]
	return s, ok
}

type series struct {
	name string

	mu      sync.Mutex
	total   int64
	samples int64
	sum     float64
}

type counter struct {
	s      *series
	logger *slog.Logger
}

func (c counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.s.mu.Lock()
	c.s.total += value
	total := c.s.total
	c.s.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", c.s.name),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "Counter", appendAttrs(logAttrs, attrs)...)
}

type histogram struct {
	s      *series
	logger *slog.Logger
}

func (h histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	h.s.mu.Lock()
	h.s.samples++
	h.s.sum += value
	h.s.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", h.s.name),
		slog.Float64("value", value),
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "Histogram", appendAttrs(logAttrs, attrs)...)
}

// --- LOGGING ---

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	// Debug-4 is filtered out unless explicitly enabled
	o.log(ctx, slog.LevelDebug-4, msg, attrs...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs...)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, level, msg, appendAttrs(make([]slog.Attr, 0, len(attrs)), attrs)...)
}

func appendAttrs(dst []slog.Attr, attrs []observability.Attribute) []slog.Attr {
	for _, attr := range attrs {
		dst = append(dst, slog.Any(attr.Key, attr.Value))
	}
	return dst
}
