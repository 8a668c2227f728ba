package telemetry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/vigil/internal/adapters/telemetry"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
}

func TestOTelTracer_Attributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(telemetry.NewTracerProvider(recorder))

	_, span := tracer.Start(t.Context(), "scanner.scan")
	span.SetAttribute("root", "/srv/www")
	span.SetAttribute("files", 12)
	span.SetAttribute("bytes", int64(99))
	span.SetAttribute("percent", 50.0)
	span.SetAttribute("clean", true)
	span.SetAttribute("paths", []string{"a.php"})
	span.SetAttribute("source", domain.SourceLocal)
	span.SetAttribute("other", struct{ N int }{N: 1})
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "scanner.scan", ended[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("root", "/srv/www"),
		attribute.Int("files", 12),
		attribute.Int64("bytes", 99),
		attribute.Float64("percent", 50),
		attribute.Bool("clean", true),
		attribute.StringSlice("paths", []string{"a.php"}),
		attribute.String("source", "local"),
		attribute.String("other", "{1}"),
	}, ended[0].Attributes())
}

func TestOTelTracer_RecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(telemetry.NewTracerProvider(recorder))

	_, span := tracer.Start(t.Context(), "manifest.load")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	assert.Len(t, ended[0].Events(), 1)
}

func TestOTelTracer_Nesting(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := telemetry.NewOTelTracer(telemetry.NewTracerProvider(recorder))

	ctx, parent := tracer.Start(t.Context(), "app.scan")
	_, child := tracer.Start(ctx, "scanner.scan")
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[1].SpanContext().SpanID(), ended[0].Parent().SpanID())
}

func TestMetricsBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().OperationFinished("app.scan", gomock.Any(), false).Times(1)
	m.EXPECT().OperationFinished("manifest.load", gomock.Any(), true).Times(1)

	tracer := telemetry.NewOTelTracer(telemetry.NewTracerProvider(telemetry.NewMetricsBridge(m)))

	ctx, span := tracer.Start(t.Context(), "app.scan")
	_, failed := tracer.Start(ctx, "manifest.load")
	failed.RecordError(errors.New("offline"))
	failed.End()
	span.End()
}

func TestMetricsBridge_NilMetrics(t *testing.T) {
	tracer := telemetry.NewOTelTracer(telemetry.NewTracerProvider(telemetry.NewMetricsBridge(nil)))
	_, span := tracer.Start(t.Context(), "noop")
	assert.NotPanics(t, span.End)
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := t.Context()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
