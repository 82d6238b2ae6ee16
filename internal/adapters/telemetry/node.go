package telemetry

import (
	"context"
	"io"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/mbs/internal/adapters/config"
	"go.trai.ch/mbs/internal/adapters/telemetry/progrock"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// NodeID is the unique identifier for the telemetry adapter node.
const NodeID graft.ID = "adapter.telemetry"

// Telemetry backends accepted in the configuration.
const (
	BackendNone     = "none"
	BackendProgrock = "progrock"
)

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Telemetry, os.Stderr), nil
		},
	})
}

// New returns the recorder for the given backend name, rendering progress to w.
// Unknown names record nothing.
func New(backend string, w io.Writer) ports.Telemetry {
	if backend == BackendProgrock {
		return progrock.New(w)
	}
	return NewNoop()
}
