package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/builder"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/adapters/reuse"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/adapters/store"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			builder.NodeID,
			reuse.NodeID,
			store.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Scheduler, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			b, err := graft.Dep[ports.Builder](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.ReuseResolver](ctx)
			if err != nil {
				return nil, err
			}

			st, err := graft.Dep[ports.ModuleStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return NewScheduler(cfg, b, resolver, st, log, tel), nil
		},
	})
}
