package builder

import (
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// New returns the builder backend named by cfg.System. history is only used by
// the local backend.
func New(cfg *domain.Config, logger ports.Logger, history History) (ports.Builder, error) {
	switch cfg.System {
	case domain.SystemMock:
		return NewMock(cfg.BuildCommand, logger), nil
	case domain.SystemLocal:
		return NewLocal(cfg.BuildCommand, logger, history), nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownSystem, "failed to create builder"), "system", cfg.System)
	}
}
