package builder

import (
	"context"
	"sync/atomic"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
)

// Mock builds every component synchronously inside Build. It keeps no task
// table, so there is nothing to recover and the buildroot is always ready.
type Mock struct {
	cmd    command
	nextID atomic.Int64
}

// NewMock creates a Mock builder running argv for every component.
func NewMock(argv []string, logger ports.Logger) *Mock {
	return &Mock{cmd: command{argv: argv, logger: logger}}
}

// Build runs the build command to completion. A non-zero exit is reported as a
// failed component, not as an error.
func (m *Mock) Build(ctx context.Context, name, source string) (domain.BuildResult, error) {
	cmd, err := m.cmd.start(ctx, name, source)
	if err != nil {
		return domain.BuildResult{}, err
	}
	done := outcome(m.nextID.Add(1), name, source, cmd.Wait())
	return domain.BuildResult(done), nil
}

// RecoverOrphanedArtifact never finds anything.
func (*Mock) RecoverOrphanedArtifact(context.Context, *domain.ComponentBuild) (bool, error) {
	return false, nil
}

// ListTasksForComponents returns no tasks; Mock never leaves one running.
func (*Mock) ListTasksForComponents(context.Context, []*domain.ComponentBuild, domain.TaskState) ([]domain.Task, error) {
	return nil, nil
}

// BuildrootReady always reports true.
func (*Mock) BuildrootReady(context.Context, []string) (bool, error) {
	return true, nil
}

// Completions returns nil; results are final when Build returns.
func (*Mock) Completions() <-chan domain.TaskCompletion {
	return nil
}
