package ports

import (
	"context"

	"go.trai.ch/mbs/internal/core/domain"
)

// ModuleStore persists module builds together with their components.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ModuleStore interface {
	// Commit atomically persists the module build and all of its components.
	Commit(ctx context.Context, module *domain.ModuleBuild) error

	// Get returns a copy of the stored module build.
	// Returns domain.ErrModuleNotFound if it does not exist.
	Get(ctx context.Context, id domain.ModuleID) (*domain.ModuleBuild, error)

	// List returns copies of all stored module builds, oldest first.
	List(ctx context.Context) ([]*domain.ModuleBuild, error)

	// CountBuilding counts building components without a reuse reference across
	// all stored module builds except the excluded one.
	CountBuilding(ctx context.Context, exclude domain.ModuleID) (int, error)

	// Component resolves a component build by identifier.
	// Returns domain.ErrComponentNotFound if it does not exist.
	Component(ctx context.Context, id domain.ComponentID) (*domain.ComponentBuild, error)
}
