package scheduler_test

import (
	"testing"

	"go.trai.ch/mbs/internal/adapters/telemetry"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports/mocks"
	"go.trai.ch/mbs/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type harness struct {
	builder  *mocks.MockBuilder
	store    *mocks.MockModuleStore
	resolver *mocks.MockReuseResolver
	logger   *mocks.MockLogger
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		builder:  mocks.NewMockBuilder(ctrl),
		store:    mocks.NewMockModuleStore(ctrl),
		resolver: mocks.NewMockReuseResolver(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	h.logger.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any(), gomock.Any()).AnyTimes()
	h.logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return h
}

// permissiveStore accepts commits and reports no building components in other modules.
func (h *harness) permissiveStore() {
	h.store.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	h.store.EXPECT().CountBuilding(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
}

func (h *harness) submitter() *scheduler.Submitter {
	return scheduler.NewSubmitter(h.builder, h.logger, telemetry.NewNoop())
}

func (h *harness) coordinator(policy scheduler.ConcurrencyPolicy, workers int) *scheduler.Coordinator {
	return scheduler.NewCoordinator(h.builder, h.store, policy, h.submitter(), h.logger, workers)
}

func (h *harness) scheduler(cfg domain.Config) *scheduler.Scheduler {
	return scheduler.NewScheduler(&cfg, h.builder, h.resolver, h.store, h.logger, telemetry.NewNoop())
}

func localConfig(maxBuilds, workers int) domain.Config {
	cfg := domain.DefaultConfig()
	cfg.System = domain.SystemLocal
	cfg.NumConcurrentBuilds = maxBuilds
	cfg.NumThreadsForBuildSubmissions = workers
	return cfg
}

func component(pkg string, batch int, weight float64) *domain.ComponentBuild {
	return &domain.ComponentBuild{
		ID:      domain.NewComponentID(),
		Package: pkg,
		SCMURL:  "https://src.example.com/rpms/" + pkg + "#main",
		Batch:   batch,
		Weight:  weight,
		State:   domain.ComponentWait,
	}
}

func complete(c *domain.ComponentBuild) *domain.ComponentBuild {
	c.State = domain.ComponentComplete
	c.NVR = c.Package + "-1.0-1"
	c.TaskID = 1000 + int64(len(c.Package))
	return c
}

func newModule(batch int, strategy domain.RebuildStrategy, components ...*domain.ComponentBuild) *domain.ModuleBuild {
	m := &domain.ModuleBuild{
		ID:              domain.NewModuleID(),
		Name:            "testmodule",
		Batch:           batch,
		RebuildStrategy: strategy,
		State:           domain.ModuleBuilding,
		Components:      components,
	}
	for _, c := range components {
		c.ModuleID = m.ID
	}
	return m
}
