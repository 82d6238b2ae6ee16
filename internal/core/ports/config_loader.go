package ports

import "go.trai.ch/mbs/internal/core/domain"

// ConfigLoader loads the runtime configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, applies environment overrides and validates it.
	Load(path string) (*domain.Config, error)
}

// ModuleLoader turns a module definition file into a new module build.
type ModuleLoader interface {
	// LoadModule reads the definition at path. The returned module build is not persisted.
	LoadModule(path string) (*domain.ModuleBuild, error)
}
