package region

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewUnionCollapsesDegenerateCases(t *testing.T) {
	if got := NewUnion(nil); got != Empty {
		t.Errorf("NewUnion(nil) = %v, want Empty", got)
	}
	b := FromClosedRect(0, 1, 0, 1)
	if got := NewUnion([]BBox{b}); got != Region(b) {
		t.Errorf("NewUnion([b]) = %v, want %v", got, b)
	}
	two := NewUnion([]BBox{b, FromClosedRect(2, 3, 2, 3)})
	if _, ok := two.(Union); !ok {
		t.Errorf("NewUnion with 2 members did not produce a Union: %T", two)
	}
}

func TestAreaEmptyUniverseBBox(t *testing.T) {
	if Area(Empty) != 0 {
		t.Errorf("Area(Empty) = %v, want 0", Area(Empty))
	}
	if !math.IsInf(Area(Universe), 1) {
		t.Errorf("Area(Universe) = %v, want +Inf", Area(Universe))
	}
	b := FromClosedRect(0, 4, 0, 3)
	if got := Area(b); got != 12 {
		t.Errorf("Area(b) = %v, want 12", got)
	}
}

func TestIsClosedIsOpen(t *testing.T) {
	closed := FromClosedRect(0, 1, 0, 1)
	if !IsClosed(closed) || IsOpen(closed) {
		t.Errorf("closed rect: IsClosed=%v IsOpen=%v, want true/false", IsClosed(closed), IsOpen(closed))
	}
	open := Interior(closed)
	if IsClosed(open) || !IsOpen(open) {
		t.Errorf("interior rect: IsClosed=%v IsOpen=%v, want false/true", IsClosed(open), IsOpen(open))
	}
	if !IsClosed(Empty) || !IsOpen(Empty) {
		t.Errorf("Empty must be both closed and open")
	}
	if !IsClosed(Universe) || !IsOpen(Universe) {
		t.Errorf("Universe must be both closed and open")
	}
}

func TestInteriorClosureAreaPreserving(t *testing.T) {
	b := FromClosedRect(0, 4, 0, 3)
	if Area(Interior(b)) != Area(b) {
		t.Errorf("Area(Interior(b)) = %v, want %v", Area(Interior(b)), Area(b))
	}
	if Area(Closure(Interior(b))) != Area(b) {
		t.Errorf("Area(Closure(Interior(b))) = %v, want %v", Area(Closure(Interior(b))), Area(b))
	}
}

func TestIntersectDisjointIsEmpty(t *testing.T) {
	a := FromClosedRect(0, 1, 0, 1)
	b := FromClosedRect(5, 6, 5, 6)
	if got := Intersect(a, b); got != Empty {
		t.Errorf("Intersect(disjoint) = %v, want Empty", got)
	}
}

func TestIntersectSharedEdgeOpenWins(t *testing.T) {
	a := BBox{Xmin: 0, Xmax: 2, Ymin: 0, Ymax: 2} // closed all sides
	b := BBox{Xmin: 2, Xmax: 4, Ymin: 0, Ymax: 2, LOpen: true}
	got := Intersect(a, b)
	box, ok := got.(BBox)
	if !ok {
		t.Fatalf("Intersect(a,b) = %v (%T), want BBox", got, got)
	}
	if box.Xmin != 2 || box.Xmax != 2 {
		t.Errorf("expected degenerate x-range at shared edge, got [%v,%v]", box.Xmin, box.Xmax)
	}
	if !box.LOpen {
		t.Errorf("expected open left edge (open wins at shared boundary), got closed")
	}
}

func TestIntersectUniverseIdentity(t *testing.T) {
	b := FromClosedRect(0, 1, 0, 1)
	if got := Intersect(Universe, b); got != Region(b) {
		t.Errorf("Intersect(Universe,b) = %v, want b", got)
	}
	if got := Intersect(b, Universe); got != Region(b) {
		t.Errorf("Intersect(b,Universe) = %v, want b", got)
	}
}

func TestIntersectEmptyAnnihilates(t *testing.T) {
	b := FromClosedRect(0, 1, 0, 1)
	if got := Intersect(Empty, b); got != Empty {
		t.Errorf("Intersect(Empty,b) = %v, want Empty", got)
	}
}

func TestUnionOfContainedCollapses(t *testing.T) {
	outer := FromClosedRect(0, 10, 0, 10)
	inner := FromClosedRect(2, 3, 2, 3)
	got := UnionOf(outer, inner)
	box, ok := got.(BBox)
	if !ok {
		t.Fatalf("UnionOf(outer,inner) = %v (%T), want collapsed BBox", got, got)
	}
	if box != outer {
		t.Errorf("UnionOf(outer,inner) = %v, want %v", box, outer)
	}
}

func TestUnionOfOverlappingStaysUnion(t *testing.T) {
	a := FromClosedRect(0, 2, 0, 2)
	b := FromClosedRect(1, 3, 1, 3)
	got := UnionOf(a, b)
	if _, ok := got.(Union); !ok {
		t.Errorf("UnionOf(overlapping) = %v (%T), want Union", got, got)
	}
}

func TestIntersectAllEmptyIsUniverse(t *testing.T) {
	if got := IntersectAll(nil); got != Universe {
		t.Errorf("IntersectAll(nil) = %v, want Universe", got)
	}
}

func TestUnionAllEmptyIsEmpty(t *testing.T) {
	if got := UnionAll(nil); got != Empty {
		t.Errorf("UnionAll(nil) = %v, want Empty", got)
	}
}

func TestComplementOfUniverseIsEmpty(t *testing.T) {
	universe := FrameUniverse(10, 10)
	if got := Complement(universe, universe); got != Empty {
		t.Errorf("Complement(universe,universe) = %v, want Empty", got)
	}
}

func TestComplementDeMorganUnion(t *testing.T) {
	universe := FrameUniverse(10, 10)
	a := FromClosedRect(1, 3, 1, 3)
	b := FromClosedRect(5, 7, 5, 7)

	lhs := Complement(UnionOf(a, b), universe)
	rhs := Intersect(Complement(a, universe), Complement(b, universe))

	if got, want := Area(lhs), Area(rhs); math.Abs(got-want) > 1e-9 {
		t.Errorf("De Morgan area mismatch: complement(union) area=%v, intersect(complements) area=%v", got, want)
	}
}

func TestComplementRoundTripArea(t *testing.T) {
	universe := FrameUniverse(10, 8)
	hole := FromClosedRect(2, 5, 1, 4)
	comp := Complement(hole, universe)

	wantArea := Area(universe) - Area(hole)
	if got := Area(comp); math.Abs(got-wantArea) > 1e-9 {
		t.Errorf("Area(complement) = %v, want %v", got, wantArea)
	}
}

func TestSimplifyMergesDisjointSlabs(t *testing.T) {
	// Two rectangles sharing an x-range, stacked vertically with touching
	// y-edges: should simplify into fewer, disjoint rectangles covering the
	// same total area.
	a := FromClosedRect(0, 2, 0, 1)
	b := FromClosedRect(0, 2, 1, 2)
	u := NewUnion([]BBox{a, b})

	simplified := Simplify(u)
	if got, want := Area(simplified), Area(u); math.Abs(got-want) > 1e-9 {
		t.Errorf("Simplify area mismatch: got %v, want %v", got, want)
	}
}

func TestSimplifyPassesNonUnionThrough(t *testing.T) {
	if Simplify(Empty) != Empty {
		t.Errorf("Simplify(Empty) changed value")
	}
	if Simplify(Universe) != Universe {
		t.Errorf("Simplify(Universe) changed value")
	}
	b := FromClosedRect(0, 1, 0, 1)
	if diff := cmp.Diff(Region(b), Simplify(b)); diff != "" {
		t.Errorf("Simplify(BBox) changed value (-want +got):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	if Format(Empty) != "empty" {
		t.Errorf("Format(Empty) = %q", Format(Empty))
	}
	if Format(Universe) != "universe" {
		t.Errorf("Format(Universe) = %q", Format(Universe))
	}
	b := FromClosedRect(0, 1, 0, 1)
	if got, want := Format(b), "[0,1] x [0,1]"; got != want {
		t.Errorf("Format(b) = %q, want %q", got, want)
	}
}
