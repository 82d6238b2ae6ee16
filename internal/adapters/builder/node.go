package builder

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/adapters/logger"
	"go.trai.ch/mbs/internal/adapters/store"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// NodeID is the unique identifier for the builder Graft node.
const NodeID graft.ID = "adapter.builder"

func init() {
	graft.Register(graft.Node[ports.Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, store.NodeID},
		Run: func(ctx context.Context) (ports.Builder, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			history, err := graft.Dep[ports.ModuleStore](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg, log, history)
		},
	})
}
