package domain

import "strings"

// ComponentState represents the lifecycle state of a single component build.
type ComponentState string

const (
	// ComponentWait indicates the component has not been submitted to the builder yet.
	ComponentWait ComponentState = "wait"
	// ComponentBuilding indicates the component was admitted and is being built.
	ComponentBuilding ComponentState = "building"
	// ComponentComplete indicates the component built successfully or was reused.
	ComponentComplete ComponentState = "complete"
	// ComponentFailed indicates the component failed to build.
	ComponentFailed ComponentState = "failed"
)

// IsTerminal checks if a component state is terminal (Complete or Failed).
func (s ComponentState) IsTerminal() bool {
	switch s {
	case ComponentComplete, ComponentFailed:
		return true
	default:
		return false
	}
}

// NormalizeComponentState converts a string to a ComponentState, defaulting to wait if unknown.
func NormalizeComponentState(s string) ComponentState {
	switch strings.ToLower(s) {
	case string(ComponentBuilding):
		return ComponentBuilding
	case string(ComponentComplete):
		return ComponentComplete
	case string(ComponentFailed):
		return ComponentFailed
	default:
		return ComponentWait
	}
}

// ModuleState represents the lifecycle state of a module build.
type ModuleState string

const (
	// ModuleInit indicates the module build was created but not accepted yet.
	ModuleInit ModuleState = "init"
	// ModuleWait indicates the module build is queued for scheduling.
	ModuleWait ModuleState = "wait"
	// ModuleBuilding indicates the module build has batches in progress.
	ModuleBuilding ModuleState = "build"
	// ModuleDone indicates every component resolved successfully.
	ModuleDone ModuleState = "done"
	// ModuleFailed indicates the module build stopped on an error.
	ModuleFailed ModuleState = "failed"
)

// IsTerminal checks if a module state is terminal (Done or Failed).
func (s ModuleState) IsTerminal() bool {
	return s == ModuleDone || s == ModuleFailed
}

// FailureType classifies why a module build failed.
type FailureType string

const (
	// FailureNone is the zero value for modules that did not fail.
	FailureNone FailureType = ""
	// FailureInfra marks failures caused by the build infrastructure.
	FailureInfra FailureType = "infra"
	// FailureUser marks failures caused by the module content, e.g. a component that does not build.
	FailureUser FailureType = "user"
)

// RebuildStrategy controls which components of a module are rebuilt.
type RebuildStrategy string

const (
	// RebuildAll rebuilds every component.
	RebuildAll RebuildStrategy = "all"
	// RebuildChangedAndAfter reuses unchanged components until the first batch containing a change.
	RebuildChangedAndAfter RebuildStrategy = "changed-and-after"
	// RebuildOnlyChanged reuses every unchanged component.
	RebuildOnlyChanged RebuildStrategy = "only-changed"
)

// Valid reports whether the strategy is one of the known strategies.
func (r RebuildStrategy) Valid() bool {
	switch r {
	case RebuildAll, RebuildChangedAndAfter, RebuildOnlyChanged:
		return true
	default:
		return false
	}
}

// TaskState is the state of a task inside the external builder.
type TaskState string

const (
	// TaskActive matches tasks that are queued or running in the builder.
	TaskActive TaskState = "active"
	// TaskClosed matches tasks that finished in the builder.
	TaskClosed TaskState = "closed"
)
