package scheduler

import (
	"context"
	"fmt"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Submitter submits single components to the builder.
type Submitter struct {
	builder   ports.Builder
	logger    ports.Logger
	telemetry ports.Telemetry
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(builder ports.Builder, logger ports.Logger, telemetry ports.Telemetry) *Submitter {
	return &Submitter{
		builder:   builder,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Submit builds a component the caller already moved to the building state and
// copies the outcome back onto it. Submit is safe to call concurrently for
// distinct components of the same module build.
//
// A builder error, or a building component without a task handle, fails the
// whole module build as an infrastructure failure. A build cut short because
// ctx was cancelled puts the component back into the wait state instead, so
// the next run submits it again.
func (s *Submitter) Submit(ctx context.Context, module *domain.ModuleBuild, component *domain.ComponentBuild) {
	ctx, vertex := s.telemetry.Record(ctx, "submit "+component.Package)

	res, err := s.builder.Build(ctx, component.Package, component.SCMURL)
	if ctx.Err() != nil && (err != nil || res.State != domain.ComponentBuilding) {
		component.State = domain.ComponentWait
		component.StateReason = ""
		component.TaskID = 0
		component.NVR = ""
		s.logger.Warn("component submission interrupted",
			"module", module.ID.String(),
			"package", component.Package,
		)
		vertex.Complete(ctx.Err())
		return
	}
	if err != nil {
		reason := fmt.Sprintf("Failed to build artifact %s: %s", component.Package, err)
		s.failInfra(module, component, reason)
		s.logger.Error(zerr.With(zerr.With(zerr.Wrap(err, "component submission failed"),
			"package", component.Package), "module", module.ID.String()))
		vertex.Complete(err)
		return
	}

	component.Apply(res)

	if component.IsBuilding() && !component.HasTask() {
		reason := fmt.Sprintf("Failed to build artifact %s: builder did not return a task ID", component.Package)
		s.failInfra(module, component, reason)
		s.logger.Error(zerr.With(zerr.Wrap(domain.ErrMissingTaskID, "component submission failed"), "package", component.Package))
		vertex.Complete(domain.ErrMissingTaskID)
		return
	}

	s.logger.Info("component submitted",
		"module", module.ID.String(),
		"package", component.Package,
		"task_id", component.TaskID,
		"state", string(component.State),
	)

	if component.State == domain.ComponentFailed {
		vertex.Complete(zerr.New(component.StateReason))
		return
	}
	vertex.Complete(nil)
}

func (s *Submitter) failInfra(module *domain.ModuleBuild, component *domain.ComponentBuild, reason string) {
	component.State = domain.ComponentFailed
	component.StateReason = reason
	module.Fail(domain.FailureInfra, reason)
}
