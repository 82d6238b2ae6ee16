package config

import (
	"os"
	"time"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ModuleLoader implements ports.ModuleLoader for YAML module definition files.
type ModuleLoader struct {
	// DefaultStrategy applies to modules that do not name a rebuild strategy.
	DefaultStrategy domain.RebuildStrategy
}

// NewModuleLoader creates a ModuleLoader with the given default rebuild strategy.
func NewModuleLoader(defaultStrategy domain.RebuildStrategy) *ModuleLoader {
	return &ModuleLoader{DefaultStrategy: defaultStrategy}
}

// LoadModule reads the module definition at path and returns a new module build
// in the init state. The bootstrap component occupies the bootstrap batch and
// every user batch is shifted up by one.
func (l *ModuleLoader) LoadModule(path string) (*domain.ModuleBuild, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read module file"), "path", path)
	}

	var file ModuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse module file"), "path", path)
	}

	m, err := l.build(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return m, nil
}

func (l *ModuleLoader) build(file *ModuleFile) (*domain.ModuleBuild, error) {
	if file.Name == "" {
		return nil, zerr.Wrap(domain.ErrInvalidModule, "module name is required")
	}

	strategy := l.DefaultStrategy
	if file.RebuildStrategy != "" {
		strategy = domain.RebuildStrategy(file.RebuildStrategy)
	}
	if !strategy.Valid() {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidModule, "unknown rebuild strategy"),
			"rebuild_strategy", string(strategy))
	}

	if len(file.Components) == 0 {
		return nil, zerr.Wrap(domain.ErrInvalidModule, "module has no components")
	}

	m := &domain.ModuleBuild{
		ID:              domain.NewModuleID(),
		Name:            file.Name,
		RebuildStrategy: strategy,
		State:           domain.ModuleInit,
		CreatedAt:       time.Now().UTC(),
	}
	m.Components = append(m.Components, &domain.ComponentBuild{
		ID:       domain.NewComponentID(),
		ModuleID: m.ID,
		Package:  domain.BootstrapPackage,
		Batch:    domain.BootstrapBatch,
		State:    domain.ComponentWait,
	})

	seen := map[string]bool{domain.BootstrapPackage: true}
	for _, dto := range file.Components {
		if dto.Package == "" {
			return nil, zerr.Wrap(domain.ErrInvalidModule, "component package is required")
		}
		if seen[dto.Package] {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidModule, "duplicate component"), "package", dto.Package)
		}
		if dto.Batch < 1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidModule, "component batch must be at least 1"),
				"package", dto.Package)
		}
		if dto.Weight < 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidModule, "component weight must not be negative"),
				"package", dto.Package)
		}
		seen[dto.Package] = true

		m.Components = append(m.Components, &domain.ComponentBuild{
			ID:       domain.NewComponentID(),
			ModuleID: m.ID,
			Package:  dto.Package,
			SCMURL:   dto.SCMURL,
			Batch:    dto.Batch + domain.BootstrapBatch,
			Weight:   dto.Weight,
			State:    domain.ComponentWait,
		})
	}
	return m, nil
}
