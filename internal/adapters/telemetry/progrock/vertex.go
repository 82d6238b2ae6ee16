package progrock

import (
	"io"

	"github.com/vito/progrock"
)

// Vertex is one recorded component submission or reuse.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout receives the build command output of the component.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Complete finishes the vertex; a non-nil err marks it failed.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached finishes the vertex as satisfied by a reused component build.
func (v *Vertex) Cached() {
	v.vertex.Cached()
	v.vertex.Complete()
}
