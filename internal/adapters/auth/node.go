package auth

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vigil/internal/adapters/config"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// NodeID is the unique identifier for the authorizer Graft node.
const NodeID graft.ID = "adapter.auth"

func init() {
	graft.Register(graft.Node[ports.Authorizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Authorizer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewTokenAuthorizer(cfg.AuthToken), nil
		},
	})
}
