// Package eval is the single-pass recursive evaluator for STQL formulas:
// Evaluate walks an ast.Expr against a Context and returns a boolean
// verdict; EvaluateSpatial walks an ast.SpatialExpr and returns a
// region.Region. Quantifier and freeze scoping is implemented by deriving
// a new, extended Context and recursing with it — Go's value semantics
// mean the caller's Context is left untouched on return, which is the
// same net effect as original_source/include/percemon/evaluation.hpp's
// explicit save-then-restore on its EvaluationContext, without needing
// the explicit restore step.
package eval

import (
	"errors"
	"fmt"

	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

// ErrUnboundVariable is the error wrapped by the panic Evaluate raises
// when a formula references an object variable that was never bound by
// an enclosing Exists/Forall — a programmer error per §7, not a normal
// evaluation outcome.
var ErrUnboundVariable = errors.New("eval: unbound object variable")

// Context is the evaluation environment at one point in a frame stream:
// the full buffered window of frames, which position within it is
// "current", and the frozen/bound variable scopes accumulated by
// enclosing Freeze/Exists/Forall nodes.
//
// Context is immutable from the caller's perspective: With* methods
// return a new Context rather than mutating the receiver.
type Context struct {
	Frames       []stream.Frame
	Current      int
	FrozenTimes  map[string]float64
	FrozenFrames map[string]int
	BoundObjects map[string]string
}

// NewContext builds a Context over frames, positioned at current, with
// empty variable scopes.
func NewContext(frames []stream.Frame, current int) Context {
	return Context{Frames: frames, Current: current}
}

// CurrentFrame returns the frame at the context's current position.
func (c Context) CurrentFrame() stream.Frame { return c.Frames[c.Current] }

// HasHistory reports whether at least n frames of history precede the
// current frame.
func (c Context) HasHistory(n int) bool { return c.Current-n >= 0 }

// HasHorizon reports whether at least n frames of horizon follow the
// current frame.
func (c Context) HasHorizon(n int) bool { return c.Current+n < len(c.Frames) }

// At returns a copy of c repositioned to index idx (used by Previous/Next
// and the temporal window operators to evaluate a subformula at a
// different frame without losing the frozen/bound scopes).
func (c Context) At(idx int) Context {
	c.Current = idx
	return c
}

// WithFrozenTime returns a copy of c with timeVar bound to value.
func (c Context) WithFrozenTime(timeVar string, value float64) Context {
	next := make(map[string]float64, len(c.FrozenTimes)+1)
	for k, v := range c.FrozenTimes {
		next[k] = v
	}
	next[timeVar] = value
	c.FrozenTimes = next
	return c
}

// WithFrozenFrame returns a copy of c with frameVar bound to value.
func (c Context) WithFrozenFrame(frameVar string, value int) Context {
	next := make(map[string]int, len(c.FrozenFrames)+1)
	for k, v := range c.FrozenFrames {
		next[k] = v
	}
	next[frameVar] = value
	c.FrozenFrames = next
	return c
}

// WithBoundObject returns a copy of c with objVar bound to objID.
func (c Context) WithBoundObject(objVar, objID string) Context {
	next := make(map[string]string, len(c.BoundObjects)+1)
	for k, v := range c.BoundObjects {
		next[k] = v
	}
	next[objVar] = objID
	c.BoundObjects = next
	return c
}

// resolveObject looks up a bound object variable's id, then that id in
// the current frame. It panics (wrapping ErrUnboundVariable) if the
// variable itself was never bound; a bound-but-absent object id is not an
// error here, since "object missing from the frame" is a data-missing
// condition the caller (a primitive) must handle by returning false.
func (c Context) resolveObject(objVar string) (stream.Object, bool) {
	id, ok := c.BoundObjects[objVar]
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnboundVariable, objVar))
	}
	return c.CurrentFrame().Object(id)
}
