package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/builder"   //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/adapters/reuse"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/mbs/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			config.ModuleLoaderNodeID,
			store.NodeID,
			builder.NodeID,
			reuse.NodeID,
			scheduler.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.NodeID,
			builder.NodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ModuleLoader](ctx)
	if err != nil {
		return nil, err
	}

	st, err := graft.Dep[ports.ModuleStore](ctx)
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

	sched, err := graft.Dep[*scheduler.Scheduler](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, st, b, resolver, sched, log, cfg.PollInterval), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	b, err := graft.Dep[ports.Builder](ctx)
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

	return &Components{
		App:       a,
		Logger:    log,
		Config:    cfg,
		Builder:   b,
		Telemetry: tel,
	}, nil
}
