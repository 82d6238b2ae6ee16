// Package progrock records component submissions as progrock vertices and
// renders them as a linear progress log with a closing summary.
package progrock

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/mbs/internal/core/ports"
)

// Recorder implements ports.Telemetry. Every update goes to a tape, which
// keeps the counts for the summary, and to a Linear renderer.
type Recorder struct {
	out  io.Writer
	tape *progrock.Tape
	rec  *progrock.Recorder
	seq  atomic.Int64
}

// New creates a Recorder rendering to w.
func New(w io.Writer) *Recorder {
	tape := progrock.NewTape()
	return &Recorder{
		out:  w,
		tape: tape,
		rec:  progrock.NewRecorder(progrock.MultiWriter{tape, NewLinear(w)}),
	}
}

// Record starts a vertex for one unit of work. Resubmitting the same component
// gets a fresh vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	id := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	vertex := &Vertex{vertex: r.rec.Vertex(id, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close ends the recording and, if anything was recorded, prints how many
// units of work finished.
func (r *Recorder) Close() error {
	if err := r.rec.Close(); err != nil {
		return err
	}
	if r.tape.TotalCount() == 0 {
		return nil
	}
	_, err := fmt.Fprintf(r.out, "%d recorded, %d reused, %d failed in %v\n",
		r.tape.TotalCount(), r.tape.CachedCount(), r.tape.ErroredCount(), r.tape.Duration().Round(time.Millisecond))
	return err
}
