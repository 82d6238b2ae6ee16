package scheduler_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mbs/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func bootstrap() *domain.ComponentBuild {
	return complete(component(domain.BootstrapPackage, domain.BootstrapBatch, 0))
}

func TestScheduler_StartNextBatch_NothingUnbuiltIsIdempotent(t *testing.T) {
	h := newHarness(t)
	m := newModule(2, domain.RebuildAll, bootstrap(), complete(component("a", 2, 1)))
	s := h.scheduler(localConfig(0, 2))

	for range 2 {
		events, err := s.StartNextBatch(context.Background(), m, nil)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, 2, m.Batch)
		assert.Equal(t, domain.ModuleBuilding, m.State)
	}
}

func TestScheduler_StartNextBatch_WaitsOnBuildingComponents(t *testing.T) {
	h := newHarness(t)
	building := component("a", 2, 1)
	building.State = domain.ComponentBuilding
	building.TaskID = 12
	m := newModule(2, domain.RebuildAll, bootstrap(), building, component("b", 3, 1))

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 2, m.Batch)
}

func TestScheduler_StartNextBatch_HaltsOnFailedComponents(t *testing.T) {
	h := newHarness(t)
	failed := component("a", 2, 1)
	failed.State = domain.ComponentFailed
	m := newModule(2, domain.RebuildAll, bootstrap(), failed, component("b", 3, 1))

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 2, m.Batch)
}

func TestScheduler_StartNextBatch_ActiveTasksFailModule(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()
	m := newModule(2, domain.RebuildAll, bootstrap(), complete(component("a", 2, 1)), component("b", 3, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), m.Components, domain.TaskActive).Return([]domain.Task{
		{ID: 301, Package: "b", State: domain.TaskActive},
		{ID: 302, Package: "b", State: domain.TaskActive},
	}, nil)

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Equal(t, 2, m.Batch)
	assert.True(t, m.Failed())
	assert.Equal(t, domain.FailureInfra, m.FailureType)
	assert.Contains(t, m.StateReason, "301, 302")
}

func TestScheduler_StartNextBatch_BuildrootNotReady(t *testing.T) {
	h := newHarness(t)
	a := complete(component("a", 2, 1))
	m := newModule(2, domain.RebuildAll, bootstrap(), a, component("b", 3, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), domain.TaskActive).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), []string{a.NVR}).Return(false, nil)

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 2, m.Batch)
	assert.Equal(t, domain.ComponentWait, m.Components[2].State)
}

func TestScheduler_StartNextBatch_AdvancesAndSubmits(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()
	m := newModule(2, domain.RebuildAll, bootstrap(), complete(component("a", 2, 1)), component("b", 3, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "b", gomock.Any()).Return(buildingResult(77), nil)

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, 3, m.Batch)
	assert.Equal(t, domain.ComponentBuilding, m.Components[2].State)
	assert.Equal(t, int64(77), m.Components[2].TaskID)
}

func TestScheduler_StartNextBatch_SkipsEmptyBatches(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()
	// Batch 3 has no components.
	m := newModule(2, domain.RebuildAll, bootstrap(), complete(component("a", 2, 1)), component("b", 4, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "b", gomock.Any()).Return(buildingResult(5), nil)

	_, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Batch)
}

func TestScheduler_StartNextBatch_FullReuseEmitsSyntheticEvent(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	a := component("a", 2, 1)
	b := component("b", 2, 1)
	m := newModule(1, domain.RebuildChangedAndAfter, bootstrap(), a, b, component("c", 3, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)

	priorA := complete(component("a", 2, 1))
	priorB := complete(component("b", 2, 1))
	h.resolver.EXPECT().GetReusableComponents(gomock.Any(), m, []string{"a", "b"}).
		Return([]*domain.ComponentBuild{priorA, priorB}, nil)
	h.resolver.EXPECT().ReuseComponent(gomock.Any(), gomock.Any()).Do(
		func(c, from *domain.ComponentBuild) {
			c.State = from.State
			c.NVR = from.NVR
			c.ReusedComponentID = from.ID
		}).Times(2)

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, domain.RepoRegenerated{ModuleID: m.ID, Batch: 2, Synthetic: true}, events[0])
	assert.Equal(t, 2, m.Batch)
	assert.Equal(t, priorA.ID, a.ReusedComponentID)
	assert.Equal(t, priorB.ID, b.ReusedComponentID)
}

func TestScheduler_StartNextBatch_PartialReuseSubmitsTheRest(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	a := component("a", 2, 1)
	b := component("b", 2, 1)
	m := newModule(1, domain.RebuildChangedAndAfter, bootstrap(), a, b)

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)
	prior := complete(component("a", 2, 1))
	h.resolver.EXPECT().GetReusableComponents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.ComponentBuild{prior, nil}, nil)
	h.resolver.EXPECT().ReuseComponent(a, prior).Do(func(c, from *domain.ComponentBuild) {
		c.State = domain.ComponentComplete
		c.ReusedComponentID = from.ID
	})
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), b).Return(false, nil)
	// Build must never be called for the reused component.
	h.builder.EXPECT().Build(gomock.Any(), "b", gomock.Any()).Return(buildingResult(3), nil)

	events, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, domain.ComponentComplete, a.State)
	assert.Equal(t, domain.ComponentBuilding, b.State)
}

func TestScheduler_StartNextBatch_ReuseErrorDegradesToRebuild(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	a := component("a", 2, 1)
	m := newModule(1, domain.RebuildChangedAndAfter, bootstrap(), a)

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)
	h.resolver.EXPECT().GetReusableComponents(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("store offline"))
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), a).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "a", gomock.Any()).Return(buildingResult(3), nil)

	_, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.False(t, a.IsReused())
	assert.Equal(t, domain.ComponentBuilding, a.State)
}

func TestScheduler_StartNextBatch_NoReuseAfterRebuiltBatch(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	// Batch 2 was rebuilt, so batch 3 must be rebuilt as well.
	m := newModule(2, domain.RebuildChangedAndAfter, bootstrap(), complete(component("a", 2, 1)), component("b", 3, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "b", gomock.Any()).Return(buildingResult(3), nil)

	_, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
}

func TestScheduler_StartNextBatch_RebuildAllNeverReuses(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	m := newModule(1, domain.RebuildAll, bootstrap(), component("a", 2, 1))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil)
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "a", gomock.Any()).Return(buildingResult(3), nil)

	_, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
}

func TestScheduler_StartNextBatch_PartialBatchContinuation(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	components := []*domain.ComponentBuild{bootstrap()}
	for i := range 10 {
		components = append(components, component(fmt.Sprintf("pkg%02d", i), 2, float64(i)))
	}
	m := newModule(2, domain.RebuildAll, components...)
	s := h.scheduler(localConfig(3, 4))

	var (
		taskID    atomic.Int64
		mu        sync.Mutex
		submitted []string
	)
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	h.builder.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name, _ string) (domain.BuildResult, error) {
			mu.Lock()
			submitted = append(submitted, name)
			mu.Unlock()
			return buildingResult(taskID.Add(1)), nil
		}).AnyTimes()

	// First call admits the three heaviest.
	_, err := s.StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pkg09", "pkg08", "pkg07"}, submitted)
	assert.Equal(t, 3, m.CountBuilding())

	// Second call before anything finished admits nothing.
	_, err = s.StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Len(t, submitted, 3)

	// Third call after the three completed admits the next three.
	for _, c := range m.Building() {
		c.State = domain.ComponentComplete
	}
	_, err = s.StartNextBatch(context.Background(), m, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pkg09", "pkg08", "pkg07", "pkg06", "pkg05", "pkg04"}, submitted)
	assert.Equal(t, 3, m.CountBuilding())
	assert.Equal(t, 2, m.Batch)
}

func TestScheduler_StartNextBatch_ExplicitComponents(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	a := component("a", 2, 1)
	b := component("b", 2, 1)
	m := newModule(2, domain.RebuildAll, bootstrap(), a, b)

	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), b).Return(false, nil)
	h.builder.EXPECT().Build(gomock.Any(), "b", gomock.Any()).Return(buildingResult(1), nil)

	_, err := h.scheduler(localConfig(0, 2)).StartNextBatch(context.Background(), m, []*domain.ComponentBuild{b})
	require.NoError(t, err)
	assert.Equal(t, domain.ComponentWait, a.State)
	assert.Equal(t, domain.ComponentBuilding, b.State)
}

func TestScheduler_StartNextBatch_BatchNeverDecreases(t *testing.T) {
	h := newHarness(t)
	h.permissiveStore()

	m := newModule(0, domain.RebuildAll,
		component(domain.BootstrapPackage, domain.BootstrapBatch, 0),
		component("a", 2, 1),
		component("b", 3, 1),
	)
	s := h.scheduler(localConfig(0, 2))

	h.builder.EXPECT().ListTasksForComponents(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	h.builder.EXPECT().BuildrootReady(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
	h.builder.EXPECT().RecoverOrphanedArtifact(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	h.builder.EXPECT().Build(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, name, _ string) (domain.BuildResult, error) {
			c, _ := m.Component(name)
			assert.LessOrEqual(t, c.Batch, m.Batch, "component admitted ahead of its batch")
			return domain.BuildResult{TaskID: 1, State: domain.ComponentComplete, NVR: name + "-1-1"}, nil
		}).Times(3)

	last := m.Batch
	for range 6 {
		_, err := s.StartNextBatch(context.Background(), m, nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.Batch, last)
		last = m.Batch
	}
	assert.Equal(t, 3, m.Batch)
	assert.Empty(t, m.Unbuilt())
}
