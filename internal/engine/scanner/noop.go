package scanner

import (
	"context"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End()                     {}
func (noopSpan) RecordError(error)        {}
func (noopSpan) SetAttribute(string, any) {}

type noopMetrics struct{}

func (noopMetrics) ManifestLoaded(domain.Source, int)              {}
func (noopMetrics) ManifestFailed(domain.Source)                   {}
func (noopMetrics) FileHashed(bool)                                {}
func (noopMetrics) OperationFinished(string, time.Duration, bool)  {}
func (noopMetrics) ScanFinished(*domain.ScanResult, time.Duration) {}
