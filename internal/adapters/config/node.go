package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// Path is the configuration file location resolved by the config node.
type Path string

const (
	// PathNodeID provides the configuration file path. The CLI patches it from the --config flag.
	PathNodeID graft.ID = "adapter.config_path"
	// LoaderNodeID provides the ports.ConfigLoader.
	LoaderNodeID graft.ID = "adapter.config_loader"
	// NodeID provides the loaded *domain.Config.
	NodeID graft.ID = "adapter.config"
	// ModuleLoaderNodeID provides the ports.ModuleLoader.
	ModuleLoaderNodeID graft.ID = "adapter.module_loader"
)

func init() {
	graft.Register(graft.Node[Path]{
		ID:        PathNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Path, error) {
			return DefaultPath, nil
		},
	})

	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{PathNodeID, LoaderNodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			path, err := graft.Dep[Path](ctx)
			if err != nil {
				return nil, err
			}
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			return loader.Load(string(path))
		},
	})

	graft.Register(graft.Node[ports.ModuleLoader]{
		ID:        ModuleLoaderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.ModuleLoader, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewModuleLoader(cfg.RebuildStrategy), nil
		},
	})
}
