// Package app implements the application layer for mbs.
package app

import (
	"context"
	"time"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// BatchScheduler advances a module build by one scheduling pass.
type BatchScheduler interface {
	StartNextBatch(
		ctx context.Context,
		module *domain.ModuleBuild,
		components []*domain.ComponentBuild,
	) ([]domain.Event, error)
}

// App submits module builds and drives them to a terminal state.
type App struct {
	loader       ports.ModuleLoader
	store        ports.ModuleStore
	builder      ports.Builder
	resolver     ports.ReuseResolver
	scheduler    BatchScheduler
	logger       ports.Logger
	pollInterval time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ModuleLoader,
	store ports.ModuleStore,
	builder ports.Builder,
	resolver ports.ReuseResolver,
	scheduler BatchScheduler,
	logger ports.Logger,
	pollInterval time.Duration,
) *App {
	return &App{
		loader:       loader,
		store:        store,
		builder:      builder,
		resolver:     resolver,
		scheduler:    scheduler,
		logger:       logger,
		pollInterval: pollInterval,
	}
}

// Submit creates a module build from the definition at path and queues it.
// Modules using the only-changed strategy get their reusable components
// resolved here, before the first batch starts.
func (a *App) Submit(ctx context.Context, path string) (*domain.ModuleBuild, error) {
	module, err := a.loader.LoadModule(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load module definition")
	}

	if module.RebuildStrategy == domain.RebuildOnlyChanged {
		a.reuseUpFront(ctx, module)
	}

	module.Transition(domain.ModuleWait, "")
	if err := a.store.Commit(ctx, module); err != nil {
		return nil, zerr.Wrap(err, "failed to commit new module build")
	}

	a.logger.Info("module build submitted",
		"module", module.ID.String(),
		"name", module.Name,
		"components", len(module.Components),
		"rebuild_strategy", string(module.RebuildStrategy),
	)
	return module, nil
}

func (a *App) reuseUpFront(ctx context.Context, module *domain.ModuleBuild) {
	var candidates []*domain.ComponentBuild
	var names []string
	for _, c := range module.Components {
		if c.Batch > domain.BootstrapBatch {
			candidates = append(candidates, c)
			names = append(names, c.Package)
		}
	}

	found, err := a.resolver.GetReusableComponents(ctx, module, names)
	if err != nil || len(found) != len(candidates) {
		a.logger.Warn("reuse lookup failed, rebuilding everything", "module", module.ID.String())
		return
	}

	reused := 0
	for i, prior := range found {
		if prior != nil {
			a.resolver.ReuseComponent(candidates[i], prior)
			reused++
		}
	}
	a.logger.Info("resolved reusable components", "module", module.ID.String(), "reused", reused)
}

// Run drives the module build until it is done or failed. The scheduler runs
// again right away after follow-up events or progress, and otherwise on the
// next builder completion or poll tick.
// A failed module build is reported as domain.ErrModuleBuildFailed. A cancelled
// run returns the context error and leaves the module resumable.
func (a *App) Run(ctx context.Context, id domain.ModuleID) error {
	module, err := a.store.Get(ctx, id)
	if err != nil {
		return zerr.Wrap(err, "failed to load module build")
	}
	if module.State.IsTerminal() {
		return outcome(module)
	}

	module.Transition(domain.ModuleBuilding, "")
	if err := a.reconcile(ctx, module); err != nil {
		return err
	}
	if err := a.store.Commit(ctx, module); err != nil {
		return zerr.Wrap(err, "failed to commit module build state")
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		before := progressOf(module)
		events, err := a.scheduler.StartNextBatch(ctx, module, nil)
		if ctx.Err() != nil {
			return a.interrupted(ctx, module)
		}
		if err != nil {
			a.logger.Error(zerr.With(zerr.Wrap(err, "scheduling pass failed"), "module", module.ID.String()))
			module.Fail(domain.FailureInfra, err.Error())
		}

		if done, err := a.finalize(ctx, module); done {
			return err
		}

		for _, event := range events {
			a.logger.Info("handling event", "module", module.ID.String(), "event", event.EventName())
		}
		if len(events) > 0 || progressOf(module) != before {
			continue
		}

		select {
		case <-ctx.Done():
			return a.interrupted(ctx, module)
		case completion := <-a.builder.Completions():
			if err := a.complete(ctx, module, completion); err != nil {
				return err
			}
		case <-ticker.C:
		}
	}
}

// reconcile puts building components whose builder task no longer exists back
// into the wait state. An interrupted earlier run leaves them behind with the
// task ids of killed processes. The scheduler then recovers their artifact or
// submits them again.
func (a *App) reconcile(ctx context.Context, module *domain.ModuleBuild) error {
	var building []*domain.ComponentBuild
	for _, c := range module.Building() {
		if !c.IsReused() {
			building = append(building, c)
		}
	}
	if len(building) == 0 {
		return nil
	}

	tasks, err := a.builder.ListTasksForComponents(ctx, building, domain.TaskActive)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to list active builder tasks"), "module", module.ID.String())
	}
	active := make(map[int64]struct{}, len(tasks))
	for _, task := range tasks {
		active[task.ID] = struct{}{}
	}

	for _, c := range building {
		if _, ok := active[c.TaskID]; ok {
			continue
		}
		a.logger.Warn("builder task lost, resubmitting component",
			"module", module.ID.String(),
			"package", c.Package,
			"task_id", c.TaskID,
		)
		c.State = domain.ComponentWait
		c.StateReason = ""
		c.TaskID = 0
		c.NVR = ""
	}
	return nil
}

// interrupted saves the module build as it stands and reports the cancellation.
// The module stays in the building state so that a later run resumes it.
func (a *App) interrupted(ctx context.Context, module *domain.ModuleBuild) error {
	if err := a.store.Commit(context.WithoutCancel(ctx), module); err != nil {
		a.logger.Error(zerr.With(zerr.Wrap(err, "failed to commit interrupted module build"), "module", module.ID.String()))
	}
	a.logger.Warn("module build interrupted", "module", module.ID.String())
	return ctx.Err()
}

// progress is the part of a module build that only ever grows.
type progress struct {
	batch   int
	settled int
}

func progressOf(module *domain.ModuleBuild) progress {
	p := progress{batch: module.Batch}
	for _, c := range module.Components {
		if c.State.IsTerminal() {
			p.settled++
		}
	}
	return p
}

// complete applies a finished builder task to its component.
func (a *App) complete(ctx context.Context, module *domain.ModuleBuild, done domain.TaskCompletion) error {
	component, ok := module.ComponentByTask(done.TaskID)
	if !ok {
		a.logger.Warn("completion for unknown task", "module", module.ID.String(), "task_id", done.TaskID)
		return nil
	}

	component.State = done.State
	component.StateReason = done.Reason
	component.NVR = done.NVR

	a.logger.Info("component finished",
		"module", module.ID.String(),
		"package", component.Package,
		"task_id", done.TaskID,
		"state", string(done.State),
	)

	if err := a.store.Commit(ctx, module); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to commit component completion"), "package", component.Package)
	}
	return nil
}

// finalize moves the module to a terminal state once that is decided and
// reports whether the driver loop must stop.
func (a *App) finalize(ctx context.Context, module *domain.ModuleBuild) (bool, error) {
	if failed := module.FailedComponents(); len(failed) > 0 {
		module.Fail(domain.FailureUser, "Some components failed to build: "+failed[0].StateReason)
	}

	switch {
	case module.Failed():
	case len(module.Unbuilt()) == 0 && len(module.Building()) == 0:
		module.Transition(domain.ModuleDone, "")
	default:
		return false, nil
	}

	if err := a.store.Commit(ctx, module); err != nil {
		return true, zerr.Wrap(err, "failed to commit finished module build")
	}
	a.logger.Info("module build finished",
		"module", module.ID.String(),
		"state", string(module.State),
		"reason", module.StateReason,
	)
	return true, outcome(module)
}

func outcome(module *domain.ModuleBuild) error {
	if module.State != domain.ModuleFailed {
		return nil
	}
	err := zerr.Wrap(domain.ErrModuleBuildFailed, module.StateReason)
	err = zerr.With(err, "module", module.ID.String())
	return zerr.With(err, "failure_type", string(module.FailureType))
}

// Build submits the module definition at path and drives it to completion.
func (a *App) Build(ctx context.Context, path string) (*domain.ModuleBuild, error) {
	module, err := a.Submit(ctx, path)
	if err != nil {
		return nil, err
	}
	runErr := a.Run(ctx, module.ID)

	final, err := a.store.Get(ctx, module.ID)
	if err != nil {
		return module, zerr.Wrap(err, "failed to load finished module build")
	}
	return final, runErr
}

// Status returns the stored module build.
func (a *App) Status(ctx context.Context, id domain.ModuleID) (*domain.ModuleBuild, error) {
	module, err := a.store.Get(ctx, id)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get module build status")
	}
	return module, nil
}

// List returns every stored module build, oldest first.
func (a *App) List(ctx context.Context) ([]*domain.ModuleBuild, error) {
	modules, err := a.store.List(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to list module builds")
	}
	return modules, nil
}
