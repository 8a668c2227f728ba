package ports

import (
	"time"

	"go.trai.ch/vigil/internal/core/domain"
)

// Metrics records scan counters and timings.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ManifestLoaded records a successful manifest load.
	ManifestLoaded(source domain.Source, entries int)
	// ManifestFailed records a failed manifest load.
	ManifestFailed(source domain.Source)
	// FileHashed records one hashed file; failed is true when the file could not be read.
	FileHashed(failed bool)
	// OperationFinished records the duration of a traced operation.
	OperationFinished(name string, elapsed time.Duration, failed bool)
	// ScanFinished records the outcome of a completed scan.
	ScanFinished(result *domain.ScanResult, elapsed time.Duration)
}
