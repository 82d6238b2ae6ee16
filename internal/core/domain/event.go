package domain

// Event is a follow-up message produced by the scheduler for the driving event loop.
type Event interface {
	// EventName returns a stable name for logging.
	EventName() string
}

// RepoRegenerated signals that the buildroot for a batch is ready. The scheduler
// emits a synthetic one when a whole batch was satisfied by reuse, so the driver
// proceeds as if a real batch had just finished.
type RepoRegenerated struct {
	ModuleID  ModuleID
	Batch     int
	Synthetic bool
}

// EventName implements Event.
func (RepoRegenerated) EventName() string { return "repo_regenerated" }

// ComponentStateChanged is emitted by the driver when a builder task finishes.
type ComponentStateChanged struct {
	ModuleID    ModuleID
	ComponentID ComponentID
	State       ComponentState
}

// EventName implements Event.
func (ComponentStateChanged) EventName() string { return "component_state_changed" }
