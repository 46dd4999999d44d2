// Package requirements computes how many past frames (history) and future
// frames (horizon) a formula needs buffered before it can be evaluated,
// and whether that need is finite (monitorable online at all).
//
// Ported from original_source/csrc/monitoring/horizon.cc's HorizonCompute
// visitor, which works over std::optional<size_t> with three helpers:
// add_horizons (sum, with an absent side acting as the other side's
// identity), and interval_intersection/interval_union (both literally the
// same "take the finite max, absent is +Inf" computation — the source
// comments admit this isn't true interval math, just a conservative
// over-approximation, and this port preserves that rather than guessing
// at a "fix").
package requirements

import "fmt"

// Bound is either Unbounded or a finite, non-negative frame count.
type Bound struct {
	finite bool
	frames int
}

// UnboundedBound is the "no finite limit" value.
func UnboundedBound() Bound { return Bound{} }

// Of builds a finite Bound of n frames. n must be >= 0.
func Of(n int) Bound {
	if n < 0 {
		panic(fmt.Sprintf("requirements: negative frame count %d", n))
	}
	return Bound{finite: true, frames: n}
}

// IsFinite reports whether b has a finite frame count.
func (b Bound) IsFinite() bool { return b.finite }

// Frames returns b's frame count. It panics if b is unbounded; callers
// must check IsFinite first.
func (b Bound) Frames() int {
	if !b.finite {
		panic("requirements: Frames() called on an unbounded Bound")
	}
	return b.frames
}

func (b Bound) String() string {
	if !b.finite {
		return "unbounded"
	}
	return fmt.Sprintf("%d", b.frames)
}

// Add combines two independently-derived horizon/history contributions.
// If both are finite, the result is their sum. If exactly one is finite,
// the result is that one — an absent (unbounded) contribution acts as an
// additive identity rather than infecting the result, which is precisely
// the "an outer finite bound tightens an otherwise-unbounded body" rule
// used throughout Always/Eventually nested under a bounding And. Ported
// from horizon.cc's add_horizons.
func Add(a, b Bound) Bound {
	switch {
	case a.finite && b.finite:
		return Of(a.frames + b.frames)
	case a.finite:
		return a
	case b.finite:
		return b
	default:
		return UnboundedBound()
	}
}

// Max takes the larger of two finite bounds, or Unbounded if either is
// unbounded. This single function implements both "interval_intersection"
// and "interval_union" from horizon.cc — the source computes both the
// same way, which this port preserves rather than diverging from.
func Max(a, b Bound) Bound {
	if !a.finite || !b.finite {
		return UnboundedBound()
	}
	if a.frames >= b.frames {
		return a
	}
	return b
}

// FoldMax reduces bounds via Max, treating an empty slice as Unbounded —
// the identity for Add (a Max-fold over zero "tightening" bound children
// must not artificially tighten the result it's later Add-ed with).
func FoldMax(bounds []Bound) Bound {
	if len(bounds) == 0 {
		return UnboundedBound()
	}
	out := bounds[0]
	for _, b := range bounds[1:] {
		out = Max(out, b)
	}
	return out
}

// FoldAdd reduces bounds via Add, treating an empty slice as Unbounded —
// the identity for Add.
func FoldAdd(bounds []Bound) Bound {
	if len(bounds) == 0 {
		return UnboundedBound()
	}
	out := bounds[0]
	for _, b := range bounds[1:] {
		out = Add(out, b)
	}
	return out
}

// Requirements is the finished analysis of a formula: how many history
// frames and horizon frames the online monitor must buffer.
type Requirements struct {
	History Bound
	Horizon Bound
}
