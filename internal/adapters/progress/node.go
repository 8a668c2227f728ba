package progress

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
	"go.trai.ch/vigil/internal/adapters/config"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// NodeID is the unique identifier for the progress store Graft node.
const NodeID graft.ID = "adapter.progress_store"

func init() {
	graft.Register(graft.Node[ports.ProgressStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ProgressStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.ProgressStore, clockwork.NewRealClock()), nil
		},
	})
}

// New returns the store selected by kind. Unknown kinds use the file store.
func New(kind string, clock clockwork.Clock) ports.ProgressStore {
	if kind == domain.ProgressStoreMemory {
		return NewMemoryStore(clock)
	}
	return NewFileStore(domain.DefaultProgressPath(), clock)
}
