// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/mbs/internal/core/domain"
)

// Builder is the external build system components are submitted to.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Build submits one component. It returns an error when the submission itself
	// could not be made, which callers treat as an infrastructure failure.
	Build(ctx context.Context, name, source string) (domain.BuildResult, error)

	// RecoverOrphanedArtifact attaches a builder task that exists for the component
	// but is not tracked by it yet. It reports whether the component was changed.
	RecoverOrphanedArtifact(ctx context.Context, component *domain.ComponentBuild) (bool, error)

	// ListTasksForComponents returns the builder tasks in the given state that
	// belong to any of the components.
	ListTasksForComponents(
		ctx context.Context,
		components []*domain.ComponentBuild,
		state domain.TaskState,
	) ([]domain.Task, error)

	// BuildrootReady reports whether the buildroot contains every given NVR.
	BuildrootReady(ctx context.Context, nvrs []string) (bool, error)

	// Completions delivers finished tasks for builders that build asynchronously.
	// Synchronous builders return a nil channel.
	Completions() <-chan domain.TaskCompletion
}
