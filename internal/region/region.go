// Package region implements the set-theoretic and topological operations
// on 2-D regions described in spec.md §3.2/§4.B: Empty, Universe, an
// axis-aligned rectangle with open/closed boundary flags, and a Union of
// rectangles.
//
// Ported from original_source/src/topo.cc's intersection_of/union_of/
// complement_of/TopoSimplify algorithms, replacing std::variant +
// std::visit with a closed Region interface and a type switch.
package region

import (
	"fmt"
	"math"
)

// Region is a 2-D point set: Empty, Universe, a BBox, or a Union of BBoxes.
// The four concrete implementations are the only types satisfying this
// interface; it is not meant to be implemented outside this package.
type Region interface {
	isRegion()
}

type emptyRegion struct{}

func (emptyRegion) isRegion() {}

type universeRegion struct{}

func (universeRegion) isRegion() {}

// Empty is the canonical empty region (∅).
var Empty Region = emptyRegion{}

// Universe is the canonical universal region (the entire plane).
var Universe Region = universeRegion{}

// BBox is a rectangle with independent openness flags on each side.
// A closed side includes its edge; an open side excludes it.
type BBox struct {
	Xmin, Xmax, Ymin, Ymax float64
	LOpen, ROpen, TOpen, BOpen bool
}

func (BBox) isRegion() {}

// Union is an ordered, not-necessarily-disjoint collection of BBoxes.
// A zero-member Union is equivalent to Empty and a one-member Union to
// its sole member; factories below collapse both cases rather than
// returning degenerate Unions.
type Union struct {
	Members []BBox
}

func (Union) isRegion() {}

// NewUnion builds a Region from a member list, collapsing the 0- and
// 1-member degenerate cases per §3.2.
func NewUnion(members []BBox) Region {
	switch len(members) {
	case 0:
		return Empty
	case 1:
		return members[0]
	default:
		cp := make([]BBox, len(members))
		copy(cp, members)
		return Union{Members: cp}
	}
}

// FromClosedRect builds a fully-closed BBox — the §4.B "lift from a stream
// BoundingBox" helper, which is closed by default.
func FromClosedRect(xmin, xmax, ymin, ymax float64) BBox {
	return BBox{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
}

// FrameUniverse builds the closed (0,width) x (0,height) universe rectangle
// for a frame of the given size, per §4.B.
func FrameUniverse(width, height float64) BBox {
	return FromClosedRect(0, width, 0, height)
}

// Area returns 0 for Empty, +Inf for Universe, width*height for a BBox
// (openness does not affect area), and the sum over members for a Union —
// after normalizing overlapping members via Simplify, so overlapping area
// is not double-counted.
func Area(r Region) float64 {
	switch v := Simplify(r).(type) {
	case emptyRegion:
		return 0
	case universeRegion:
		return math.Inf(1)
	case BBox:
		return bboxArea(v)
	case Union:
		total := 0.0
		for _, b := range v.Members {
			total += bboxArea(b)
		}
		return total
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}

func bboxArea(b BBox) float64 {
	return math.Abs((b.Xmax - b.Xmin) * (b.Ymax - b.Ymin))
}

// IsClosed reports whether every boundary of r is closed. Empty and
// Universe are closed (and open) under both predicates.
func IsClosed(r Region) bool {
	switch v := r.(type) {
	case emptyRegion, universeRegion:
		return true
	case BBox:
		return !(v.LOpen || v.ROpen || v.TOpen || v.BOpen)
	case Union:
		for _, b := range v.Members {
			if b.LOpen || b.ROpen || b.TOpen || b.BOpen {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}

// IsOpen reports whether any boundary of r is open. Empty and Universe are
// open (and closed) under both predicates.
func IsOpen(r Region) bool {
	switch v := r.(type) {
	case emptyRegion, universeRegion:
		return true
	case BBox:
		return v.LOpen || v.ROpen || v.TOpen || v.BOpen
	case Union:
		for _, b := range v.Members {
			if b.LOpen || b.ROpen || b.TOpen || b.BOpen {
				return true
			}
		}
		return false
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}

// Interior opens every boundary of every BBox in r. Empty/Universe pass
// through unchanged.
func Interior(r Region) Region {
	switch v := r.(type) {
	case emptyRegion, universeRegion:
		return r
	case BBox:
		v.LOpen, v.ROpen, v.TOpen, v.BOpen = true, true, true, true
		return v
	case Union:
		out := make([]BBox, len(v.Members))
		for i, b := range v.Members {
			b.LOpen, b.ROpen, b.TOpen, b.BOpen = true, true, true, true
			out[i] = b
		}
		return Union{Members: out}
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}

// Closure closes every boundary of every BBox in r. Empty/Universe pass
// through unchanged.
func Closure(r Region) Region {
	switch v := r.(type) {
	case emptyRegion, universeRegion:
		return r
	case BBox:
		v.LOpen, v.ROpen, v.TOpen, v.BOpen = false, false, false, false
		return v
	case Union:
		out := make([]BBox, len(v.Members))
		for i, b := range v.Members {
			b.LOpen, b.ROpen, b.TOpen, b.BOpen = false, false, false, false
			out[i] = b
		}
		return Union{Members: out}
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}
