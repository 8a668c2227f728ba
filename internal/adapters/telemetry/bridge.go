package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vigil/internal/core/ports"
)

// MetricsBridge implements sdktrace.SpanProcessor and reports the duration of every
// finished span as an operation timing.
type MetricsBridge struct {
	metrics ports.Metrics
}

var _ sdktrace.SpanProcessor = (*MetricsBridge)(nil)

// NewMetricsBridge returns a new MetricsBridge.
func NewMetricsBridge(metrics ports.Metrics) *MetricsBridge {
	return &MetricsBridge{metrics: metrics}
}

// OnStart does nothing.
func (b *MetricsBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *MetricsBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil || !s.SpanContext().IsValid() {
		return
	}

	b.metrics.OperationFinished(
		s.Name(),
		s.EndTime().Sub(s.StartTime()),
		s.Status().Code == codes.Error,
	)
}

// ForceFlush does nothing.
func (b *MetricsBridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *MetricsBridge) Shutdown(_ context.Context) error {
	return nil
}
