package builder

import (
	"context"
	"sync"

	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// completionBuffer bounds how many finished tasks may wait for the driver.
const completionBuffer = 64

type sourceKey struct {
	name   string
	source string
}

// History lists the module builds recorded so far, including those of earlier
// processes. ports.ModuleStore satisfies it.
type History interface {
	List(ctx context.Context) ([]*domain.ModuleBuild, error)
}

// Local starts every build command in the background and reports the result on
// Completions. It remembers running and finished tasks for orphan recovery.
// Its buildroot holds the NVRs of successful builds, both its own and the
// completed components found in the history.
type Local struct {
	cmd     command
	logger  ports.Logger
	history History

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	completions chan domain.TaskCompletion

	mu       sync.Mutex
	seeded   bool
	nextID   int64
	running  map[int64]domain.Task
	finished map[sourceKey]domain.TaskCompletion
	repo     map[string]struct{}
}

// NewLocal creates a Local builder running argv for every component.
// history may be nil, in which case only builds of this process count.
func NewLocal(argv []string, logger ports.Logger, history History) *Local {
	ctx, cancel := context.WithCancel(context.Background())
	return &Local{
		cmd:         command{argv: argv, logger: logger},
		logger:      logger,
		history:     history,
		ctx:         ctx,
		cancel:      cancel,
		completions: make(chan domain.TaskCompletion, completionBuffer),
		running:     make(map[int64]domain.Task),
		finished:    make(map[sourceKey]domain.TaskCompletion),
		repo:        make(map[string]struct{}),
	}
}

// Build starts the build command and returns a building result with the new task id.
// The task is not bound to ctx; it stops only when the builder is closed.
// Task ids continue after the highest one found in the history.
func (l *Local) Build(ctx context.Context, name, source string) (domain.BuildResult, error) {
	if err := l.seed(ctx); err != nil {
		return domain.BuildResult{}, err
	}

	cmd, err := l.cmd.start(l.ctx, name, source)
	if err != nil {
		return domain.BuildResult{}, err
	}

	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.running[id] = domain.Task{ID: id, Package: name, Source: source, State: domain.TaskActive}
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.finish(id, name, source, cmd.Wait())
	}()

	return domain.BuildResult{
		TaskID: id,
		State:  domain.ComponentBuilding,
		Reason: "Submitted to local builder",
	}, nil
}

func (l *Local) seed(ctx context.Context) error {
	l.mu.Lock()
	seeded := l.seeded
	l.mu.Unlock()
	if seeded || l.history == nil {
		return nil
	}

	modules, err := l.history.List(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to read task history")
	}
	var highest int64
	for _, module := range modules {
		for _, c := range module.Components {
			highest = max(highest, c.TaskID)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.seeded {
		l.nextID = max(l.nextID, highest)
		l.seeded = true
	}
	return nil
}

func (l *Local) finish(id int64, name, source string, err error) {
	done := outcome(id, name, source, err)

	l.mu.Lock()
	delete(l.running, id)
	l.finished[sourceKey{name, source}] = done
	if done.State == domain.ComponentComplete {
		l.repo[done.NVR] = struct{}{}
	}
	l.mu.Unlock()

	select {
	case l.completions <- done:
	case <-l.ctx.Done():
	}
}

// RecoverOrphanedArtifact attaches a running or finished task built from the
// component's source to a component that has no task id yet.
func (l *Local) RecoverOrphanedArtifact(_ context.Context, component *domain.ComponentBuild) (bool, error) {
	if component.HasTask() {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, task := range l.running {
		if task.Package == component.Package && task.Source == component.SCMURL {
			component.TaskID = task.ID
			component.State = domain.ComponentBuilding
			component.StateReason = "Recovered running task"
			return true, nil
		}
	}

	if done, ok := l.finished[sourceKey{component.Package, component.SCMURL}]; ok {
		component.TaskID = done.TaskID
		component.State = done.State
		component.StateReason = done.Reason
		component.NVR = done.NVR
		return true, nil
	}
	return false, nil
}

// ListTasksForComponents returns the tasks in state built from any of the components' sources.
// It reads the task history first, so ids of earlier processes are never reused
// even after the components holding them were reset.
func (l *Local) ListTasksForComponents(
	ctx context.Context,
	components []*domain.ComponentBuild,
	state domain.TaskState,
) ([]domain.Task, error) {
	if err := l.seed(ctx); err != nil {
		return nil, err
	}

	wanted := make(map[sourceKey]struct{}, len(components))
	for _, c := range components {
		wanted[sourceKey{c.Package, c.SCMURL}] = struct{}{}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var out []domain.Task
	switch state {
	case domain.TaskActive:
		for _, task := range l.running {
			if _, ok := wanted[sourceKey{task.Package, task.Source}]; ok {
				out = append(out, task)
			}
		}
	case domain.TaskClosed:
		for key, done := range l.finished {
			if _, ok := wanted[key]; ok {
				out = append(out, domain.Task{ID: done.TaskID, Package: key.name, Source: key.source, State: domain.TaskClosed})
			}
		}
	}
	return out, nil
}

// BuildrootReady reports whether every NVR was produced by a successful build.
// NVRs this process has not built are looked up among the completed components
// in the history.
func (l *Local) BuildrootReady(ctx context.Context, nvrs []string) (bool, error) {
	if l.inRepo(nvrs) {
		return true, nil
	}
	if l.history == nil {
		return false, nil
	}

	modules, err := l.history.List(ctx)
	if err != nil {
		return false, zerr.Wrap(err, "failed to read buildroot history")
	}
	l.mu.Lock()
	for _, module := range modules {
		for _, c := range module.Components {
			if c.State == domain.ComponentComplete && c.NVR != "" {
				l.repo[c.NVR] = struct{}{}
			}
		}
	}
	l.mu.Unlock()

	return l.inRepo(nvrs), nil
}

func (l *Local) inRepo(nvrs []string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, nvr := range nvrs {
		if _, ok := l.repo[nvr]; !ok {
			return false
		}
	}
	return true
}

// Completions delivers every finished task exactly once.
func (l *Local) Completions() <-chan domain.TaskCompletion {
	return l.completions
}

// Close stops running tasks and waits for them to exit.
func (l *Local) Close() error {
	l.cancel()
	l.wg.Wait()
	return nil
}
