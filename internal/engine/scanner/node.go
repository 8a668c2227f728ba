package scanner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vigil/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vigil/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vigil/internal/adapters/progress"  //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vigil/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vigil/internal/core/ports"
)

// NodeID is the unique identifier for the scanner Graft node.
const NodeID graft.ID = "engine.scanner"

func init() {
	graft.Register(graft.Node[*Scanner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.WalkerNodeID,
			fs.HasherNodeID,
			progress.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Scanner, error) {
			walker, err := graft.Dep[ports.Walker](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ProgressStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			m, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return NewScanner(walker, hasher, store, log, WithTracer(tracer), WithMetrics(m)), nil
		},
	})
}
