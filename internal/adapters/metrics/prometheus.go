// Package metrics exposes scan counters and timings to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

const namespace = "vigil"

// Prometheus implements ports.Metrics on a private registry.
type Prometheus struct {
	registry *prometheus.Registry

	// Manifest metrics
	ManifestLoads   *prometheus.CounterVec
	ManifestEntries *prometheus.GaugeVec

	// File metrics
	FilesHashed *prometheus.CounterVec

	// Scan metrics
	Scans        *prometheus.CounterVec
	Findings     *prometheus.CounterVec
	ScanDuration prometheus.Histogram

	// Traced operations
	OperationDuration *prometheus.HistogramVec
}

var _ ports.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the collectors on reg.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,

		ManifestLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "manifest_loads_total",
			Help:      "Baseline manifest loads by source and outcome",
		}, []string{"source", "outcome"}),
		ManifestEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_entries",
			Help:      "Number of entries in the last loaded manifest",
		}, []string{"source"}),

		FilesHashed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_hashed_total",
			Help:      "Files hashed by outcome",
		}, []string{"outcome"}),

		Scans: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Completed scans by status",
		}, []string{"status"}),
		Findings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "Classified files by class",
		}, []string{"class"}),
		ScanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scan_duration_seconds",
			Help:      "Time taken to complete a scan",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 14),
		}),

		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of traced operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
}

// NewDefault creates a Prometheus backed by a fresh registry that also carries the Go
// runtime and process collectors.
func NewDefault() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewPrometheus(reg)
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// ManifestLoaded records a successful manifest load.
func (p *Prometheus) ManifestLoaded(source domain.Source, entries int) {
	p.ManifestLoads.WithLabelValues(source.String(), "ok").Inc()
	p.ManifestEntries.WithLabelValues(source.String()).Set(float64(entries))
}

// ManifestFailed records a failed manifest load.
func (p *Prometheus) ManifestFailed(source domain.Source) {
	p.ManifestLoads.WithLabelValues(source.String(), "error").Inc()
}

// FileHashed records one hashed file.
func (p *Prometheus) FileHashed(failed bool) {
	p.FilesHashed.WithLabelValues(outcome(failed)).Inc()
}

// OperationFinished records the duration of a traced operation.
func (p *Prometheus) OperationFinished(name string, elapsed time.Duration, failed bool) {
	p.OperationDuration.WithLabelValues(name, outcome(failed)).Observe(elapsed.Seconds())
}

// ScanFinished records the outcome of a completed scan.
func (p *Prometheus) ScanFinished(result *domain.ScanResult, elapsed time.Duration) {
	status := "clean"
	if !result.Clean() {
		status = "violations"
	}
	p.Scans.WithLabelValues(status).Inc()

	p.Findings.WithLabelValues("modified").Add(float64(len(result.Modified)))
	p.Findings.WithLabelValues("missing").Add(float64(len(result.Missing)))
	p.Findings.WithLabelValues("unknown").Add(float64(len(result.Unknown)))

	p.ScanDuration.Observe(elapsed.Seconds())
}

func outcome(failed bool) string {
	if failed {
		return "error"
	}
	return "ok"
}
