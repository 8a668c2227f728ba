package metrics

import (
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// NoOp discards every measurement.
type NoOp struct{}

// ManifestLoaded does nothing.
func (NoOp) ManifestLoaded(domain.Source, int) {}

// ManifestFailed does nothing.
func (NoOp) ManifestFailed(domain.Source) {}

// FileHashed does nothing.
func (NoOp) FileHashed(bool) {}

// OperationFinished does nothing.
func (NoOp) OperationFinished(string, time.Duration, bool) {}

// ScanFinished does nothing.
func (NoOp) ScanFinished(*domain.ScanResult, time.Duration) {}
