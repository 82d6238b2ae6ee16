package ports

import (
	"context"

	"go.trai.ch/mbs/internal/core/domain"
)

// ReuseResolver finds prior component builds that can satisfy new ones.
//
//go:generate go run go.uber.org/mock/mockgen -source=reuse.go -destination=mocks/mock_reuse.go -package=mocks
type ReuseResolver interface {
	// GetReusableComponents returns a slice parallel to packages. Each entry is
	// either a reusable prior component build or nil.
	GetReusableComponents(
		ctx context.Context,
		module *domain.ModuleBuild,
		packages []string,
	) ([]*domain.ComponentBuild, error)

	// ReuseComponent marks component as satisfied by reusedFrom.
	ReuseComponent(component, reusedFrom *domain.ComponentBuild)
}
