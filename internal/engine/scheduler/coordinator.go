package scheduler

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Coordinator submits as many components of the current batch as the
// concurrency policy allows.
type Coordinator struct {
	builder   ports.Builder
	store     ports.ModuleStore
	policy    ConcurrencyPolicy
	submitter *Submitter
	logger    ports.Logger
	workers   int
}

// NewCoordinator creates a new Coordinator that dispatches submissions on at most workers goroutines.
func NewCoordinator(
	builder ports.Builder,
	store ports.ModuleStore,
	policy ConcurrencyPolicy,
	submitter *Submitter,
	logger ports.Logger,
	workers int,
) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{
		builder:   builder,
		store:     store,
		policy:    policy,
		submitter: submitter,
		logger:    logger,
		workers:   workers,
	}
}

// ContinueBatch submits components of the module's current batch, heaviest first.
//
// When components is nil, every waiting component of the current batch is a
// candidate. Admission stops at the concurrency threshold; the rest stay
// waiting for a later call. All submissions of one call are joined before it
// returns, the module is committed once, and the first submission error is
// returned after the commit.
func (c *Coordinator) ContinueBatch(
	ctx context.Context,
	module *domain.ModuleBuild,
	components []*domain.ComponentBuild,
) error {
	if components == nil {
		components = waiting(module.CurrentBatch())
	}

	if len(components) == 0 {
		c.logger.Info("no components to submit", "module", module.ID.String(), "batch", module.Batch)
		return nil
	}

	c.recoverOrphans(ctx, components)

	sorted := slices.Clone(components)
	slices.SortStableFunc(sorted, func(a, b *domain.ComponentBuild) int {
		return cmp.Compare(b.Weight, a.Weight)
	})

	elsewhere, err := c.store.CountBuilding(ctx, module.ID)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to count building components"), "module", module.ID.String())
	}

	admitted := c.admit(module, sorted, elsewhere)

	dispatchErr := c.dispatch(ctx, module, admitted)

	if err := c.store.Commit(ctx, module); err != nil {
		return errors.Join(dispatchErr, zerr.Wrap(err, "failed to commit batch submission"))
	}

	return dispatchErr
}

// recoverOrphans attaches builder tasks that exist for components that never got a task handle.
func (c *Coordinator) recoverOrphans(ctx context.Context, components []*domain.ComponentBuild) {
	for _, component := range components {
		if !component.IsWaiting() || component.HasTask() {
			continue
		}
		recovered, err := c.builder.RecoverOrphanedArtifact(ctx, component)
		if err != nil {
			c.logger.Warn("orphan recovery failed", "package", component.Package, "error", err.Error())
			continue
		}
		if recovered {
			c.logger.Info("recovered orphaned task",
				"package", component.Package,
				"task_id", component.TaskID,
				"state", string(component.State),
			)
		}
	}
}

func (c *Coordinator) admit(
	module *domain.ModuleBuild,
	sorted []*domain.ComponentBuild,
	elsewhere int,
) []*domain.ComponentBuild {
	var admitted []*domain.ComponentBuild
	for _, component := range sorted {
		if component.State == domain.ComponentComplete || !component.IsWaiting() {
			continue
		}
		if component.Batch != module.Batch {
			c.logger.Warn("refusing to submit component outside the current batch",
				"package", component.Package,
				"component_batch", component.Batch,
				"module_batch", module.Batch,
			)
			continue
		}
		if c.policy.AtThreshold(elsewhere + module.CountBuilding()) {
			c.logger.Info("concurrent build threshold reached",
				"module", module.ID.String(),
				"admitted", len(admitted),
			)
			break
		}
		component.State = domain.ComponentBuilding
		admitted = append(admitted, component)
	}
	return admitted
}

// dispatch runs the submissions on the worker pool and waits for all of them.
// It returns the first error any worker produced.
func (c *Coordinator) dispatch(
	ctx context.Context,
	module *domain.ModuleBuild,
	admitted []*domain.ComponentBuild,
) error {
	if len(admitted) == 0 {
		return nil
	}

	var g errgroup.Group
	g.SetLimit(c.workers)

	for _, component := range admitted {
		g.Go(func() (err error) {
			defer zerr.Defer(func(perr error) {
				reason := fmt.Sprintf("Failed to build artifact %s: %s", component.Package, perr)
				component.State = domain.ComponentFailed
				component.StateReason = reason
				module.Fail(domain.FailureInfra, reason)
				err = zerr.With(errors.Join(domain.ErrSubmissionPanicked, perr), "package", component.Package)
			})
			c.submitter.Submit(ctx, module, component)
			return nil
		})
	}

	return g.Wait()
}

func waiting(components []*domain.ComponentBuild) []*domain.ComponentBuild {
	var out []*domain.ComponentBuild
	for _, component := range components {
		if component.IsWaiting() {
			out = append(out, component)
		}
	}
	return out
}
