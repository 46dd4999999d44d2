package ast

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// SpatialExpr is a region-valued expression, evaluated at a frame against
// a Region (see internal/region and internal/eval). The concrete variants
// below are the only types satisfying it.
type SpatialExpr interface {
	isSpatialExpr()
}

type emptySetExpr struct{}

func (emptySetExpr) isSpatialExpr() {}

type universeSetExpr struct{}

func (universeSetExpr) isSpatialExpr() {}

// EmptySet is the canonical empty spatial region (∅).
var EmptySet SpatialExpr = emptySetExpr{}

// UniverseSet is the canonical universal spatial region (the frame's
// entire extent).
var UniverseSet SpatialExpr = universeSetExpr{}

// BBoxOf is the bounding box of a bound object in the current frame.
type BBoxOf struct{ ObjVar string }

func (BBoxOf) isSpatialExpr() {}

// NewBBoxOf builds a BBoxOf node.
func NewBBoxOf(objVar string) SpatialExpr { return BBoxOf{ObjVar: objVar} }

// Complement is the set complement of Arg with respect to the frame's
// universe rectangle, normalized at construction: Complement(EmptySet) =
// UniverseSet, Complement(UniverseSet) = EmptySet, Complement(Complement(x))
// = x.
type Complement struct{ Arg SpatialExpr }

func (Complement) isSpatialExpr() {}

// NewComplement builds a Complement node, applying the Empty/Universe and
// double-complement normalization.
func NewComplement(arg SpatialExpr) SpatialExpr {
	switch v := arg.(type) {
	case emptySetExpr:
		return UniverseSet
	case universeSetExpr:
		return EmptySet
	case Complement:
		return v.Arg
	default:
		return Complement{Arg: arg}
	}
}

// Intersect is an n-ary (n>=2) set intersection, flattened and folded
// against the UniverseSet identity / EmptySet annihilator at construction.
type Intersect struct{ Args []SpatialExpr }

func (Intersect) isSpatialExpr() {}

// NewIntersect builds an Intersect node from args.
func NewIntersect(args ...SpatialExpr) (SpatialExpr, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: Intersect requires >= 2 args, got %d", ErrConstruction, len(args))
	}
	flat := flattenSpatial(args, func(e SpatialExpr) ([]SpatialExpr, bool) {
		if v, ok := e.(Intersect); ok {
			return v.Args, true
		}
		return nil, false
	})

	out := make([]SpatialExpr, 0, len(flat))
	for _, e := range flat {
		switch e.(type) {
		case emptySetExpr:
			return EmptySet, nil
		case universeSetExpr:
			continue // drop identity
		default:
			out = append(out, e)
		}
	}
	out = dedupSpatial(out)

	switch len(out) {
	case 0:
		return UniverseSet, nil
	case 1:
		return out[0], nil
	default:
		return Intersect{Args: out}, nil
	}
}

// Union is an n-ary (n>=2) set union, dual to Intersect.
type Union struct{ Args []SpatialExpr }

func (Union) isSpatialExpr() {}

// NewUnion builds a Union node from args.
func NewUnion(args ...SpatialExpr) (SpatialExpr, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: Union requires >= 2 args, got %d", ErrConstruction, len(args))
	}
	flat := flattenSpatial(args, func(e SpatialExpr) ([]SpatialExpr, bool) {
		if v, ok := e.(Union); ok {
			return v.Args, true
		}
		return nil, false
	})

	out := make([]SpatialExpr, 0, len(flat))
	for _, e := range flat {
		switch e.(type) {
		case universeSetExpr:
			return UniverseSet, nil
		case emptySetExpr:
			continue // drop identity
		default:
			out = append(out, e)
		}
	}
	out = dedupSpatial(out)

	switch len(out) {
	case 0:
		return EmptySet, nil
	case 1:
		return out[0], nil
	default:
		return Union{Args: out}, nil
	}
}

func flattenSpatial(args []SpatialExpr, unwrap func(SpatialExpr) ([]SpatialExpr, bool)) []SpatialExpr {
	out := make([]SpatialExpr, 0, len(args))
	for _, a := range args {
		if children, ok := unwrap(a); ok {
			out = append(out, flattenSpatial(children, unwrap)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// dedupSpatial drops structurally-equal repeats, the spatial-algebra
// counterpart of dedupExprs: Union(Ω,Ω)=Ω / Intersect(Ω,Ω)=Ω (§8).
func dedupSpatial(args []SpatialExpr) []SpatialExpr {
	out := make([]SpatialExpr, 0, len(args))
	for _, e := range args {
		dup := false
		for _, seen := range out {
			if cmp.Equal(seen, e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

// Interior opens every boundary of Arg's region.
type Interior struct{ Arg SpatialExpr }

func (Interior) isSpatialExpr() {}

// NewInterior builds an Interior node.
func NewInterior(arg SpatialExpr) SpatialExpr { return Interior{Arg: arg} }

// Closure closes every boundary of Arg's region.
type Closure struct{ Arg SpatialExpr }

func (Closure) isSpatialExpr() {}

// NewClosure builds a Closure node.
func NewClosure(arg SpatialExpr) SpatialExpr { return Closure{Arg: arg} }

// FrameBoundKind names which endpoints of a FrameInterval are open.
// Ported from csrc/monitoring/horizon.cc's Bound enum.
type FrameBoundKind int

const (
	BoundOpen FrameBoundKind = iota
	BoundLeftOpen
	BoundRightOpen
	BoundClosed
)

// FrameInterval is an optional [Lo, Hi] frame-count window qualifying a
// spatial temporal lift (SpAlways, SpSometimes, SpSince, SpBackTo).
type FrameInterval struct {
	Lo, Hi int
	Kind   FrameBoundKind
}

// SpPrevious delays Arg by one frame into the past, optionally restricted
// to an explicit FrameInterval window.
type SpPrevious struct {
	Arg      SpatialExpr
	Interval *FrameInterval
}

func (SpPrevious) isSpatialExpr() {}

// NewSpPrevious builds a SpPrevious node. interval may be nil.
func NewSpPrevious(arg SpatialExpr, interval *FrameInterval) SpatialExpr {
	return SpPrevious{Arg: arg, Interval: interval}
}

// SpAlways is the spatial analogue of Always: the intersection of Arg's
// region over the qualifying past/future window (see internal/eval),
// optionally restricted to an explicit FrameInterval.
type SpAlways struct {
	Arg      SpatialExpr
	Interval *FrameInterval
}

func (SpAlways) isSpatialExpr() {}

// NewSpAlways builds a SpAlways node. interval may be nil.
func NewSpAlways(arg SpatialExpr, interval *FrameInterval) SpatialExpr {
	return SpAlways{Arg: arg, Interval: interval}
}

// SpSometimes is the spatial analogue of Eventually/SometimesPast: the
// union of Arg's region over the qualifying window.
type SpSometimes struct {
	Arg      SpatialExpr
	Interval *FrameInterval
}

func (SpSometimes) isSpatialExpr() {}

// NewSpSometimes builds a SpSometimes node. interval may be nil.
func NewSpSometimes(arg SpatialExpr, interval *FrameInterval) SpatialExpr {
	return SpSometimes{Arg: arg, Interval: interval}
}

// SpSince is the spatial analogue of Since.
type SpSince struct {
	A, B     SpatialExpr
	Interval *FrameInterval
}

func (SpSince) isSpatialExpr() {}

// NewSpSince builds a SpSince node. interval may be nil.
func NewSpSince(a, b SpatialExpr, interval *FrameInterval) SpatialExpr {
	return SpSince{A: a, B: b, Interval: interval}
}

// SpBackTo is the spatial analogue of BackTo.
type SpBackTo struct {
	A, B     SpatialExpr
	Interval *FrameInterval
}

func (SpBackTo) isSpatialExpr() {}

// NewSpBackTo builds a SpBackTo node. interval may be nil.
func NewSpBackTo(a, b SpatialExpr, interval *FrameInterval) SpatialExpr {
	return SpBackTo{A: a, B: b, Interval: interval}
}
