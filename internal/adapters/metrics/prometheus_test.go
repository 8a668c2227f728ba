package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/metrics"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Metrics = (*metrics.Prometheus)(nil)
	var _ ports.Metrics = metrics.NoOp{}
}

func TestPrometheus_Manifest(t *testing.T) {
	m := metrics.NewPrometheus(prometheus.NewRegistry())

	m.ManifestLoaded(domain.SourceOnline, 3000)
	m.ManifestLoaded(domain.SourceOnline, 3010)
	m.ManifestFailed(domain.SourceLocal)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.ManifestLoads.WithLabelValues("online", "ok")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.ManifestLoads.WithLabelValues("local", "error")), 0)
	assert.InDelta(t, 3010.0, testutil.ToFloat64(m.ManifestEntries.WithLabelValues("online")), 0)
}

func TestPrometheus_Files(t *testing.T) {
	m := metrics.NewPrometheus(prometheus.NewRegistry())

	m.FileHashed(false)
	m.FileHashed(false)
	m.FileHashed(true)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.FilesHashed.WithLabelValues("ok")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.FilesHashed.WithLabelValues("error")), 0)
}

func TestPrometheus_ScanFinished(t *testing.T) {
	m := metrics.NewPrometheus(prometheus.NewRegistry())

	m.ScanFinished(&domain.ScanResult{
		Modified: []string{"a.php", "b.php"},
		Missing:  []string{"c.php"},
	}, time.Second)
	m.ScanFinished(&domain.ScanResult{}, 2*time.Second)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Scans.WithLabelValues("violations")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Scans.WithLabelValues("clean")), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.Findings.WithLabelValues("modified")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.Findings.WithLabelValues("missing")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.Findings.WithLabelValues("unknown")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ScanDuration))
}

func TestPrometheus_Handler(t *testing.T) {
	m := metrics.NewDefault()
	m.OperationFinished("scanner.scan", 150*time.Millisecond, false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, `vigil_operation_duration_seconds_count{operation="scanner.scan",outcome="ok"} 1`), text)
	assert.Contains(t, text, "go_goroutines")
}
