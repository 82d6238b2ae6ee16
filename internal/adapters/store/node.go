package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// NodeID is the unique identifier for the module store Graft node.
const NodeID graft.ID = "adapter.module_store"

func init() {
	graft.Register(graft.Node[ports.ModuleStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.ModuleStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			s, err := NewStore(cfg.StatePath)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
	})
}
