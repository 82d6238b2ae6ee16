package domain

import "go.trai.ch/zerr"

var (
	// ErrModuleNotFound is returned when a module build is not present in the store.
	ErrModuleNotFound = zerr.New("module build not found")

	// ErrComponentNotFound is returned when a component build cannot be resolved by its identifier.
	ErrComponentNotFound = zerr.New("component build not found")

	// ErrInvalidConfig is returned when the configuration contains unusable values.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrInvalidModule is returned when a module definition cannot be turned into a module build.
	ErrInvalidModule = zerr.New("invalid module definition")

	// ErrMissingTaskID is returned when the builder reports a building component without a task handle.
	ErrMissingTaskID = zerr.New("builder returned no task id")

	// ErrModuleBuildFailed is returned when a driven module build ends in the failed state.
	ErrModuleBuildFailed = zerr.New("module build failed")

	// ErrUnknownSystem is returned when the configured builder backend does not exist.
	ErrUnknownSystem = zerr.New("unknown builder system")

	// ErrSubmissionPanicked is returned when a submission worker panicked.
	ErrSubmissionPanicked = zerr.New("component submission panicked")
)
