package metrics

import (
	"context"
	"net/http"

	"github.com/grindlemire/graft"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/vigil/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the metrics Graft node.
	NodeID graft.ID = "adapter.metrics"
	// HandlerNodeID is the unique identifier for the metrics HTTP handler Graft node.
	HandlerNodeID graft.ID = "adapter.metrics_handler"
)

func init() {
	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Metrics, error) {
			return NewDefault(), nil
		},
	})

	graft.Register(graft.Node[http.Handler]{
		ID:        HandlerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (http.Handler, error) {
			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}
			if p, ok := m.(interface{ Handler() http.Handler }); ok {
				return p.Handler(), nil
			}
			return promhttp.Handler(), nil
		},
	})
}
