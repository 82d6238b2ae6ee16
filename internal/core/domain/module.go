package domain

import (
	"sync"
	"time"
)

// BootstrapBatch is the batch that holds the bootstrap component of every module.
// The batch numbering convention is owned by the module loader; the reuse heuristic
// in the scheduler depends on it.
const BootstrapBatch = 1

// BootstrapPackage is the package name of the bootstrap component placed in BootstrapBatch.
const BootstrapPackage = "module-build-macros"

// ModuleBuild is the aggregate for one module's build process.
// It owns its component builds.
type ModuleBuild struct {
	ID              ModuleID          `json:"id"`
	Name            string            `json:"name"`
	Batch           int               `json:"batch"`
	RebuildStrategy RebuildStrategy   `json:"rebuild_strategy"`
	State           ModuleState       `json:"state"`
	StateReason     string            `json:"state_reason,omitzero"`
	FailureType     FailureType       `json:"failure_type,omitzero"`
	Components      []*ComponentBuild `json:"components"`
	CreatedAt       time.Time         `json:"created_at,omitzero"`
	CompletedAt     time.Time         `json:"completed_at,omitzero"`

	// mu serializes module-level state transitions made by concurrent submitters.
	mu sync.Mutex
}

// Transition moves the module to the given state.
func (m *ModuleBuild) Transition(state ModuleState, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transition(state, reason)
}

// Fail moves the module to ModuleFailed, recording the failure type and reason.
// The first failure wins; later calls leave the recorded reason untouched.
func (m *ModuleBuild) Fail(failureType FailureType, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State == ModuleFailed {
		return
	}
	m.FailureType = failureType
	m.transition(ModuleFailed, reason)
}

// Failed reports whether the module is in the failed state.
func (m *ModuleBuild) Failed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State == ModuleFailed
}

func (m *ModuleBuild) transition(state ModuleState, reason string) {
	m.State = state
	m.StateReason = reason
	if state.IsTerminal() {
		m.CompletedAt = time.Now().UTC()
	}
}

// CurrentBatch returns the components whose batch equals the module's batch.
func (m *ModuleBuild) CurrentBatch() []*ComponentBuild {
	return m.ComponentsInBatch(m.Batch)
}

// ComponentsInBatch returns the components assigned to the given batch, in definition order.
func (m *ModuleBuild) ComponentsInBatch(batch int) []*ComponentBuild {
	var out []*ComponentBuild
	for _, c := range m.Components {
		if c.Batch == batch {
			out = append(out, c)
		}
	}
	return out
}

// Unbuilt returns the components across the whole module that were not submitted yet.
func (m *ModuleBuild) Unbuilt() []*ComponentBuild {
	var out []*ComponentBuild
	for _, c := range m.Components {
		if c.IsWaiting() {
			out = append(out, c)
		}
	}
	return out
}

// Building returns the components that are in flight.
func (m *ModuleBuild) Building() []*ComponentBuild {
	var out []*ComponentBuild
	for _, c := range m.Components {
		if c.IsBuilding() {
			out = append(out, c)
		}
	}
	return out
}

// FailedComponents returns the components in the failed state.
func (m *ModuleBuild) FailedComponents() []*ComponentBuild {
	var out []*ComponentBuild
	for _, c := range m.Components {
		if c.State == ComponentFailed {
			out = append(out, c)
		}
	}
	return out
}

// CountBuilding returns how many components are building without a reuse reference.
func (m *ModuleBuild) CountBuilding() int {
	n := 0
	for _, c := range m.Components {
		if c.IsBuilding() && !c.IsReused() {
			n++
		}
	}
	return n
}

// AllReusedSinceBootstrap reports whether every component after the bootstrap batch,
// up to and including the current batch, was satisfied through reuse.
// It is vacuously true while the module has not moved past the bootstrap batch.
func (m *ModuleBuild) AllReusedSinceBootstrap() bool {
	for _, c := range m.Components {
		if c.Batch <= BootstrapBatch || c.Batch > m.Batch {
			continue
		}
		if !c.IsReused() {
			return false
		}
	}
	return true
}

// Component looks up a component by package name.
func (m *ModuleBuild) Component(pkg string) (*ComponentBuild, bool) {
	for _, c := range m.Components {
		if c.Package == pkg {
			return c, true
		}
	}
	return nil, false
}

// ComponentByTask looks up the building component waiting on a builder task.
// Settled components keep the task id of the run that built them, and those ids
// may be handed out again by a later builder process, so they never match.
func (m *ModuleBuild) ComponentByTask(taskID int64) (*ComponentBuild, bool) {
	if taskID == 0 {
		return nil, false
	}
	for _, c := range m.Components {
		if c.IsBuilding() && c.TaskID == taskID {
			return c, true
		}
	}
	return nil, false
}

// NVRs returns the non-empty NVRs of the given components.
func NVRs(components []*ComponentBuild) []string {
	out := make([]string, 0, len(components))
	for _, c := range components {
		if c.NVR != "" {
			out = append(out, c.NVR)
		}
	}
	return out
}
