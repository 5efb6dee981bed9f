package builtins

import (
	"fmt"
	"strings"
)

// Frame is one active builtin invocation.
type Frame struct {
	Name string
	Args int
}

// Trace is the stack of builtin invocations currently in progress. Builtins
// that call guest callables (constructors, require) nest frames.
type Trace struct {
	frames []Frame
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

func (t *Trace) push(f Frame) {
	t.frames = append(t.frames, f)
}

func (t *Trace) pop() {
	if len(t.frames) > 0 {
		t.frames = t.frames[:len(t.frames)-1]
	}
}

// Depth returns the number of active frames.
func (t *Trace) Depth() int {
	return len(t.frames)
}

// Frames returns the active frames, innermost first.
func (t *Trace) Frames() []Frame {
	out := make([]Frame, len(t.frames))
	for i, f := range t.frames {
		out[len(t.frames)-1-i] = f
	}
	return out
}

// String renders the trace innermost first, one frame per line.
func (t *Trace) String() string {
	var sb strings.Builder
	for i, f := range t.Frames() {
		fmt.Fprintf(&sb, "#%d: %s (%d args)\n", i, f.Name, f.Args)
	}
	return sb.String()
}
