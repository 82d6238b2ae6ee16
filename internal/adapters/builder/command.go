// Package builder provides the shell-backed builder backends.
package builder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/mbs/internal/core/domain"
	"go.trai.ch/mbs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Environment variables passed to the build command.
const (
	EnvPackage = "MBS_PACKAGE"
	EnvSource  = "MBS_SOURCE"
)

// NVR returns the artifact name of a build of source. The release is derived
// from the source, so rebuilding the same source yields the same NVR.
func NVR(name, source string) string {
	return fmt.Sprintf("%s-0-%016x", name, xxhash.Sum64String(source))
}

// command starts the configured build command for one component.
type command struct {
	argv   []string
	logger ports.Logger
}

// start launches the build command. An error means the process never ran.
func (c *command) start(ctx context.Context, name, source string) (*exec.Cmd, error) {
	if len(c.argv) == 0 {
		return nil, zerr.New("no build command configured")
	}

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...) //nolint:gosec // user provided command
	cmd.Env = append(os.Environ(), EnvPackage+"="+name, EnvSource+"="+source)

	out := &logWriter{logger: c.logger, pkg: name}
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = io.MultiWriter(out, vertex.Stdout())
	} else {
		cmd.Stdout = out
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start build command"), "command", c.argv[0])
	}
	return cmd, nil
}

// outcome turns the result of cmd.Wait into a task completion.
func outcome(taskID int64, name, source string, err error) domain.TaskCompletion {
	if err == nil {
		return domain.TaskCompletion{
			TaskID: taskID,
			State:  domain.ComponentComplete,
			Reason: "Built successfully",
			NVR:    NVR(name, source),
		}
	}

	reason := fmt.Sprintf("Build command failed: %s", err)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		reason = fmt.Sprintf("Build command exited with code %d", exitErr.ExitCode())
	}
	return domain.TaskCompletion{
		TaskID: taskID,
		State:  domain.ComponentFailed,
		Reason: reason,
	}
}

// logWriter forwards complete lines of build output to the logger.
type logWriter struct {
	logger ports.Logger
	pkg    string

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Keep the partial line for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.logger.Info(line[:len(line)-1], "package", w.pkg)
	}
	return len(p), nil
}
