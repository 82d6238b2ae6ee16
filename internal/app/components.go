package app

import (
	"errors"
	"io"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Config    *domain.Config
	Builder   ports.Builder
	Telemetry ports.Telemetry
}

// Close releases the builder and flushes telemetry.
func (c *Components) Close() error {
	var errs []error
	if closer, ok := c.Builder.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	if c.Telemetry != nil {
		errs = append(errs, c.Telemetry.Close())
	}
	return errors.Join(errs...)
}
