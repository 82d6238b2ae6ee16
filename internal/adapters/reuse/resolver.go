// Package reuse finds components of a prior module build that can stand in for
// components of the current one.
package reuse

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// ReasonReused is the state reason recorded on reused components.
const ReasonReused = "Reused component from previous module build"

// Resolver implements ports.ReuseResolver on top of the module store.
type Resolver struct {
	store ports.ModuleStore
}

// NewResolver creates a new Resolver reading prior module builds from store.
func NewResolver(store ports.ModuleStore) *Resolver {
	return &Resolver{store: store}
}

// Fingerprint identifies the source a component is built from.
func Fingerprint(c *domain.ComponentBuild) uint64 {
	return xxhash.Sum64String(c.Package + "\x00" + c.SCMURL)
}

// GetReusableComponents returns, for every package, the completed component of
// the latest finished build of the same module that can be reused, or nil.
// The bootstrap component is always rebuilt.
func (r *Resolver) GetReusableComponents(
	ctx context.Context,
	module *domain.ModuleBuild,
	packages []string,
) ([]*domain.ComponentBuild, error) {
	out := make([]*domain.ComponentBuild, len(packages))
	if module.RebuildStrategy == domain.RebuildAll {
		return out, nil
	}

	prior, err := r.previous(ctx, module)
	if err != nil || prior == nil {
		return out, err
	}

	for i, pkg := range packages {
		current, ok := module.Component(pkg)
		if !ok || current.Batch <= domain.BootstrapBatch {
			continue
		}
		if module.RebuildStrategy == domain.RebuildChangedAndAfter && changedBefore(module, prior, current.Batch) {
			continue
		}
		if match := counterpart(prior, current); match != nil && match.State == domain.ComponentComplete {
			out[i] = match
		}
	}
	return out, nil
}

// ReuseComponent copies the outcome of reusedFrom onto component.
func (r *Resolver) ReuseComponent(component, reusedFrom *domain.ComponentBuild) {
	component.State = reusedFrom.State
	component.StateReason = ReasonReused
	component.TaskID = reusedFrom.TaskID
	component.NVR = reusedFrom.NVR
	component.ReusedComponentID = reusedFrom.ID
}

// previous returns the most recent finished build of the same module, or nil.
func (r *Resolver) previous(ctx context.Context, module *domain.ModuleBuild) (*domain.ModuleBuild, error) {
	modules, err := r.store.List(ctx)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list module builds"), "module", module.ID.String())
	}

	var latest *domain.ModuleBuild
	for _, m := range modules {
		if m.ID == module.ID || m.Name != module.Name || m.State != domain.ModuleDone {
			continue
		}
		latest = m
	}
	return latest, nil
}

// changedBefore reports whether any component between the bootstrap batch and
// batch differs from the prior build.
func changedBefore(module, prior *domain.ModuleBuild, batch int) bool {
	for _, c := range module.Components {
		if c.Batch <= domain.BootstrapBatch || c.Batch >= batch {
			continue
		}
		if counterpart(prior, c) == nil {
			return true
		}
	}
	return false
}

// counterpart returns the component of prior built from the same source in the same batch.
func counterpart(prior *domain.ModuleBuild, c *domain.ComponentBuild) *domain.ComponentBuild {
	match, ok := prior.Component(c.Package)
	if !ok || match.Batch != c.Batch || Fingerprint(match) != Fingerprint(c) {
		return nil
	}
	return match
}
