package progrock

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
)

// Linear is a progrock.Writer that prints vertex transitions and output as
// chronological, name-prefixed lines. It never redraws, so it suits CI logs.
type Linear struct {
	out *termenv.Output

	mu       sync.Mutex
	vertices map[string]*vertexLine
}

type vertexLine struct {
	name    string
	started time.Time
	done    bool
	partial bytes.Buffer
}

// NewLinear creates a Linear writing to w. Colors are dropped when NO_COLOR is set.
func NewLinear(w io.Writer) *Linear {
	profile := termenv.ANSI
	if os.Getenv("NO_COLOR") != "" {
		profile = termenv.Ascii
	}
	return &Linear{
		out:      termenv.NewOutput(w, termenv.WithProfile(profile)),
		vertices: make(map[string]*vertexLine),
	}
}

// WriteStatus renders the vertex and log changes of one update.
func (l *Linear) WriteStatus(update *progrock.StatusUpdate) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, v := range update.Vertexes {
		l.vertex(v)
	}
	for _, log := range update.Logs {
		l.log(log)
	}
	return nil
}

func (l *Linear) vertex(v *progrock.Vertex) {
	line, ok := l.vertices[v.Id]
	if !ok {
		line = &vertexLine{name: v.Name, started: time.Now()}
		if v.Started != nil {
			line.started = v.Started.AsTime()
		}
		l.vertices[v.Id] = line
		l.printf(line, "Starting...")
	}
	if line.done {
		return
	}

	switch {
	case v.Cached:
		line.done = true
		l.printf(line, "%s Reused", l.out.String("↺").Foreground(termenv.ANSICyan))
	case v.Completed != nil:
		line.done = true
		l.flush(line)
		took := v.Completed.AsTime().Sub(line.started).Round(time.Millisecond)
		if v.Canceled {
			l.printf(line, "%s Interrupted after %v", l.out.String("✗").Foreground(termenv.ANSIYellow), took)
			return
		}
		if v.Error != nil {
			l.printf(line, "%s Failed after %v: %s", l.out.String("✗").Foreground(termenv.ANSIRed), took, *v.Error)
			return
		}
		l.printf(line, "%s Completed in %v", l.out.String("✓").Foreground(termenv.ANSIGreen), took)
	}
}

func (l *Linear) log(log *progrock.VertexLog) {
	line, ok := l.vertices[log.Vertex]
	if !ok {
		return
	}
	line.partial.Write(log.Data)
	for {
		text, err := line.partial.ReadBytes('\n')
		if err != nil {
			// keep the incomplete tail for the next chunk
			rest := append([]byte(nil), text...)
			line.partial.Reset()
			line.partial.Write(rest)
			return
		}
		l.printLine(line, text)
	}
}

func (l *Linear) flush(line *vertexLine) {
	if line.partial.Len() > 0 {
		l.printLine(line, line.partial.Bytes())
		line.partial.Reset()
	}
}

func (l *Linear) printLine(line *vertexLine, text []byte) {
	text = bytes.TrimRight(text, "\r\n")
	if len(text) == 0 {
		return
	}
	l.printf(line, "%s", text)
}

func (l *Linear) printf(line *vertexLine, format string, args ...any) {
	prefix := l.out.String("[" + line.name + "]").Faint()
	_, _ = fmt.Fprintf(l.out, "%s "+format+"\n", append([]any{prefix}, args...)...)
}

// Close prints any output still buffered for unfinished vertices.
func (l *Linear) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.vertices {
		l.flush(line)
	}
	return nil
}
