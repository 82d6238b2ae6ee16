// Package scheduler implements batch scheduling of module component builds.
package scheduler

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Scheduler decides, on every invocation for a module build, whether to keep
// submitting the current batch, wait, halt, or advance to the next batch.
// It keeps no state of its own between invocations.
type Scheduler struct {
	builder     ports.Builder
	resolver    ports.ReuseResolver
	store       ports.ModuleStore
	coordinator *Coordinator
	logger      ports.Logger
	telemetry   ports.Telemetry
}

// NewScheduler creates a new Scheduler. The concurrency policy is derived from
// cfg once, here.
func NewScheduler(
	cfg *domain.Config,
	builder ports.Builder,
	resolver ports.ReuseResolver,
	store ports.ModuleStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Scheduler {
	submitter := NewSubmitter(builder, logger, telemetry)
	coordinator := NewCoordinator(
		builder,
		store,
		PolicyFor(cfg),
		submitter,
		logger,
		cfg.NumThreadsForBuildSubmissions,
	)

	return &Scheduler{
		builder:     builder,
		resolver:    resolver,
		store:       store,
		coordinator: coordinator,
		logger:      logger,
		telemetry:   telemetry,
	}
}

// StartNextBatch moves the module build forward as far as it can right now and
// returns follow-up events for the driving event loop.
//
// When components is non-nil it replaces the computed list of components to
// submit for this invocation.
func (s *Scheduler) StartNextBatch(
	ctx context.Context,
	module *domain.ModuleBuild,
	components []*domain.ComponentBuild,
) ([]domain.Event, error) {
	for {
		if len(module.Unbuilt()) == 0 {
			return nil, nil
		}

		current := module.CurrentBatch()

		if len(waiting(current)) > 0 {
			return nil, s.coordinator.ContinueBatch(ctx, module, components)
		}

		if building := buildingIn(current); len(building) > 0 {
			s.logger.Info("waiting on building components",
				"module", module.ID.String(),
				"batch", module.Batch,
				"building", len(building),
			)
			return nil, nil
		}

		if failed := module.FailedComponents(); len(failed) > 0 {
			s.logger.Info("not starting the next batch, module has failed components",
				"module", module.ID.String(),
				"failed", packages(failed),
			)
			return nil, nil
		}

		halt, err := s.haltOnActiveTasks(ctx, module)
		if err != nil || halt {
			return nil, err
		}

		ready, err := s.builder.BuildrootReady(ctx, domain.NVRs(current))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to check buildroot"), "module", module.ID.String())
		}
		if !ready {
			s.logger.Info("buildroot not ready, retrying later",
				"module", module.ID.String(),
				"batch", module.Batch,
			)
			return nil, nil
		}

		allReused := module.AllReusedSinceBootstrap()
		prevBatch := module.Batch

		module.Batch++
		if err := s.store.Commit(ctx, module); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to commit batch advance"), "module", module.ID.String())
		}
		s.logger.Info("starting batch", "module", module.ID.String(), "batch", module.Batch)

		unbuilt := components
		if unbuilt == nil {
			unbuilt = waiting(module.CurrentBatch())
			if len(unbuilt) == 0 {
				if module.Batch >= maxBatch(module) {
					return nil, nil
				}
				continue
			}
		}

		if shouldAttemptReuse(module, allReused, prevBatch) {
			remaining, reused, err := s.reuse(ctx, module, unbuilt)
			if err != nil {
				return nil, err
			}
			if len(remaining) == 0 && reused > 0 {
				s.logger.Info("batch fully reused",
					"module", module.ID.String(),
					"batch", module.Batch,
					"reused", reused,
				)
				return []domain.Event{domain.RepoRegenerated{
					ModuleID:  module.ID,
					Batch:     module.Batch,
					Synthetic: true,
				}}, nil
			}
			unbuilt = remaining
		}

		return nil, s.coordinator.ContinueBatch(ctx, module, unbuilt)
	}
}

// haltOnActiveTasks fails the module when the builder still runs tasks for it
// although none of its components is building.
func (s *Scheduler) haltOnActiveTasks(ctx context.Context, module *domain.ModuleBuild) (bool, error) {
	tasks, err := s.builder.ListTasksForComponents(ctx, module.Components, domain.TaskActive)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to list active tasks"), "module", module.ID.String())
	}
	if len(tasks) == 0 {
		return false, nil
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = fmt.Sprint(task.ID)
	}
	reason := fmt.Sprintf(
		"Cannot start a batch, because some components are already in building state: task IDs %s",
		strings.Join(ids, ", "),
	)
	module.Fail(domain.FailureInfra, reason)
	s.logger.Warn("active builder tasks found for module",
		"module", module.ID.String(),
		"task_ids", ids,
	)

	if err := s.store.Commit(ctx, module); err != nil {
		return true, zerr.Wrap(err, "failed to commit module failure")
	}
	return true, nil
}

// shouldAttemptReuse applies the changed-and-after heuristic. The bootstrap
// batch never holds reused components, so the batch following it is always
// eligible.
func shouldAttemptReuse(module *domain.ModuleBuild, allReused bool, prevBatch int) bool {
	if module.RebuildStrategy != domain.RebuildChangedAndAfter {
		return false
	}
	return allReused || prevBatch == domain.BootstrapBatch
}

// reuse marks every reusable candidate as reused and returns those still to build.
// Resolver errors degrade to nothing reusable.
func (s *Scheduler) reuse(
	ctx context.Context,
	module *domain.ModuleBuild,
	candidates []*domain.ComponentBuild,
) ([]*domain.ComponentBuild, int, error) {
	found, err := s.resolver.GetReusableComponents(ctx, module, packages(candidates))
	if err != nil {
		s.logger.Warn("reuse lookup failed, rebuilding", "module", module.ID.String(), "error", err.Error())
		return candidates, 0, nil
	}
	if len(found) != len(candidates) {
		s.logger.Warn("reuse lookup returned a mismatched result, rebuilding",
			"module", module.ID.String(),
			"expected", len(candidates),
			"got", len(found),
		)
		return candidates, 0, nil
	}

	remaining := make([]*domain.ComponentBuild, 0, len(candidates))
	reused := 0
	for i, candidate := range candidates {
		prior := found[i]
		if prior == nil {
			remaining = append(remaining, candidate)
			continue
		}
		s.resolver.ReuseComponent(candidate, prior)
		_, vertex := s.telemetry.Record(ctx, "reuse "+candidate.Package)
		vertex.Cached()
		reused++
	}

	if reused > 0 {
		if err := s.store.Commit(ctx, module); err != nil {
			return nil, 0, zerr.Wrap(err, "failed to commit reused components")
		}
	}
	return remaining, reused, nil
}

func buildingIn(components []*domain.ComponentBuild) []*domain.ComponentBuild {
	var out []*domain.ComponentBuild
	for _, component := range components {
		if component.IsBuilding() {
			out = append(out, component)
		}
	}
	return out
}

func packages(components []*domain.ComponentBuild) []string {
	out := make([]string, len(components))
	for i, component := range components {
		out[i] = component.Package
	}
	return out
}

func maxBatch(module *domain.ModuleBuild) int {
	highest := 0
	for _, component := range module.Components {
		highest = max(highest, component.Batch)
	}
	return highest
}
