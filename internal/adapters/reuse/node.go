package reuse

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/store"
	"go.trai.ch/mbs/internal/core/ports"
)

// NodeID is the unique identifier for the reuse resolver Graft node.
const NodeID graft.ID = "adapter.reuse_resolver"

func init() {
	graft.Register(graft.Node[ports.ReuseResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{store.NodeID},
		Run: func(ctx context.Context) (ports.ReuseResolver, error) {
			s, err := graft.Dep[ports.ModuleStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(s), nil
		},
	})
}
