package region

import "sort"

// intersectBBox intersects two rectangles axis-wise, with open/closed
// handling: at a shared endpoint the resulting side is open iff either
// input's side at that endpoint is open. Ported from topo.cc's
// intersection_of(BoundingBox, BoundingBox).
func intersectBBox(a, b BBox) Region {
	var xmin, xmax, ymin, ymax float64
	var lopen, ropen, topen, bopen bool

	switch {
	case a.Xmin <= b.Xmin && b.Xmin <= a.Xmax:
		xmin, lopen = b.Xmin, b.LOpen
		switch {
		case a.Xmin <= b.Xmax && b.Xmax <= a.Xmax:
			xmax, ropen = b.Xmax, b.ROpen
		case b.Xmin <= a.Xmax && a.Xmax <= b.Xmax:
			xmax, ropen = a.Xmax, a.ROpen
		default:
			return Empty
		}
	case b.Xmin <= a.Xmin && a.Xmin <= b.Xmax:
		xmin, lopen = a.Xmin, a.LOpen
		switch {
		case b.Xmin <= a.Xmax && a.Xmax <= b.Xmax:
			xmax, ropen = a.Xmax, a.ROpen
		case a.Xmin <= b.Xmax && b.Xmax <= a.Xmax:
			xmax, ropen = b.Xmax, b.ROpen
		default:
			return Empty
		}
	default:
		return Empty
	}

	switch {
	case a.Ymin <= b.Ymin && b.Ymin <= a.Ymax:
		ymin, topen = b.Ymin, b.TOpen
		switch {
		case a.Ymin <= b.Ymax && b.Ymax <= a.Ymax:
			ymax, bopen = b.Ymax, b.BOpen
		case b.Ymin <= a.Ymax && a.Ymax <= b.Ymax:
			ymax, bopen = a.Ymax, a.BOpen
		default:
			return Empty
		}
	case b.Ymin <= a.Ymin && a.Ymin <= b.Ymax:
		ymin, topen = a.Ymin, a.TOpen
		switch {
		case b.Ymin <= a.Ymax && a.Ymax <= b.Ymax:
			ymax, bopen = a.Ymax, a.BOpen
		case a.Ymin <= b.Ymax && b.Ymax <= a.Ymax:
			ymax, bopen = b.Ymax, b.BOpen
		default:
			return Empty
		}
	default:
		return Empty
	}

	if a.Xmin == b.Xmin {
		lopen = a.LOpen || b.LOpen
	}
	if a.Xmax == b.Xmax {
		ropen = a.ROpen || b.ROpen
	}
	if a.Ymin == b.Ymin {
		topen = a.TOpen || b.TOpen
	}
	if a.Ymax == b.Ymax {
		bopen = a.BOpen || b.BOpen
	}

	return BBox{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax, LOpen: lopen, ROpen: ropen, TOpen: topen, BOpen: bopen}
}

// unionBBox collapses a union of two rectangles when one contains the other
// (sides may coincide); otherwise returns a 2-member Union. At coinciding sides the
// union's openness is closed-wins (logical AND), per §9's modeling choice.
// Ported from topo.cc's union_of(BoundingBox, BoundingBox).
func unionBBox(a, b BBox) Region {
	if a.Xmin <= b.Xmin && b.Xmin <= a.Xmax && a.Xmin <= b.Xmax && b.Xmax <= a.Xmax {
		lopen := a.LOpen
		if a.Xmin == b.Xmin {
			lopen = a.LOpen && b.LOpen
		}
		ropen := a.ROpen
		if a.Xmax == b.Xmax {
			ropen = a.ROpen && b.ROpen
		}
		if a.Ymin <= b.Ymin && b.Ymin <= a.Ymax && a.Ymin <= b.Ymax && b.Ymax <= a.Ymax {
			topen := a.TOpen
			if a.Ymin == b.Ymin {
				topen = a.TOpen && b.TOpen
			}
			bopen := a.BOpen
			if a.Ymax == b.Ymax {
				bopen = a.BOpen && b.BOpen
			}
			return BBox{Xmin: a.Xmin, Xmax: a.Xmax, Ymin: a.Ymin, Ymax: a.Ymax, LOpen: lopen, ROpen: ropen, TOpen: topen, BOpen: bopen}
		}
	}
	if b.Xmin <= a.Xmin && a.Xmin <= b.Xmax && b.Xmin <= a.Xmax && a.Xmax <= b.Xmax {
		lopen := b.LOpen
		if b.Xmin == a.Xmin {
			lopen = b.LOpen && a.LOpen
		}
		ropen := b.ROpen
		if b.Xmax == a.Xmax {
			ropen = b.ROpen && a.ROpen
		}
		if b.Ymin <= a.Ymin && a.Ymin <= b.Ymax && b.Ymin <= a.Ymax && a.Ymax <= b.Ymax {
			topen := b.TOpen
			if b.Ymin == a.Ymin {
				topen = b.TOpen && a.TOpen
			}
			bopen := b.BOpen
			if b.Ymax == a.Ymax {
				bopen = b.BOpen && a.BOpen
			}
			return BBox{Xmin: b.Xmin, Xmax: b.Xmax, Ymin: b.Ymin, Ymax: b.Ymax, LOpen: lopen, ROpen: ropen, TOpen: topen, BOpen: bopen}
		}
	}
	return Union{Members: []BBox{a, b}}
}

// Complement carves universe \ r as a Union of up to four rectangles
// (left, right, top, bottom), with boundary openness flipped from the
// excluded region's sides. Ported from topo.cc's complement_of.
func Complement(r Region, universe BBox) Region {
	switch v := r.(type) {
	case emptyRegion:
		return Universe
	case universeRegion:
		return Empty
	case BBox:
		return complementBBox(v, universe)
	case Union:
		out := Region(Union{})
		for i, b := range v.Members {
			comp := complementBBox(b, universe)
			if i == 0 {
				out = comp
				continue
			}
			out = Intersect(out, comp)
		}
		if len(v.Members) == 0 {
			return Universe
		}
		return out
	default:
		panic("region: unhandled Region type in Complement")
	}
}

func complementBBox(bbox, universe BBox) Region {
	// If bbox covers (or exceeds) the universe, nothing is left outside it.
	if bbox.Xmin <= universe.Xmin && bbox.Xmax >= universe.Xmax &&
		bbox.Ymin <= universe.Ymin && bbox.Ymax >= universe.Ymax {
		return Empty
	}
	// Clip bbox to the universe first.
	clipped := intersectBBox(bbox, universe)
	b, ok := clipped.(BBox)
	if !ok {
		// bbox doesn't intersect the universe at all.
		return Universe
	}

	var fragments []BBox

	if b.Xmin > universe.Xmin || (b.Xmin == universe.Xmin && b.LOpen) {
		fragments = append(fragments, BBox{
			Xmin: universe.Xmin, Xmax: b.Xmin, Ymin: b.Ymin, Ymax: b.Ymax,
			LOpen: false, ROpen: !b.LOpen, TOpen: b.TOpen, BOpen: b.BOpen,
		})
	}
	if b.Xmax < universe.Xmax || (b.Xmax == universe.Xmax && b.ROpen) {
		fragments = append(fragments, BBox{
			Xmin: b.Xmax, Xmax: universe.Xmax, Ymin: b.Ymin, Ymax: b.Ymax,
			LOpen: !b.ROpen, ROpen: false, TOpen: b.TOpen, BOpen: b.BOpen,
		})
	}
	if b.Ymin > universe.Ymin || (b.Ymin == universe.Ymin && b.TOpen) {
		fragments = append(fragments, BBox{
			Xmin: universe.Xmin, Xmax: universe.Xmax, Ymin: universe.Ymin, Ymax: b.Ymin,
			LOpen: false, ROpen: false, TOpen: false, BOpen: !b.TOpen,
		})
	}
	if b.Ymax < universe.Ymax || (b.Ymax == universe.Ymax && b.BOpen) {
		fragments = append(fragments, BBox{
			Xmin: universe.Xmin, Xmax: universe.Xmax, Ymin: b.Ymax, Ymax: universe.Ymax,
			LOpen: false, ROpen: false, TOpen: !b.BOpen, BOpen: false,
		})
	}

	return NewUnion(fragments)
}

// Intersect computes the set intersection of two regions, distributing
// over Union members. Ported from topo.cc's spatial_intersect.
func Intersect(a, b Region) Region {
	if _, ok := a.(emptyRegion); ok {
		return Empty
	}
	if _, ok := b.(emptyRegion); ok {
		return Empty
	}
	if _, ok := a.(universeRegion); ok {
		return b
	}
	if _, ok := b.(universeRegion); ok {
		return a
	}

	aBox, aIsBox := a.(BBox)
	bBox, bIsBox := b.(BBox)
	if aIsBox && bIsBox {
		return intersectBBox(aBox, bBox)
	}

	aUnion, aIsUnion := a.(Union)
	bUnion, bIsUnion := b.(Union)

	switch {
	case aIsUnion && bIsBox:
		return intersectUnionBBox(aUnion, bBox)
	case aIsBox && bIsUnion:
		return intersectUnionBBox(bUnion, aBox)
	case aIsUnion && bIsUnion:
		return intersectUnionUnion(aUnion, bUnion)
	default:
		panic("region: unhandled Region combination in Intersect")
	}
}

func intersectUnionBBox(u Union, b BBox) Region {
	var hits []BBox
	for _, m := range u.Members {
		if box, ok := intersectBBox(m, b).(BBox); ok {
			hits = append(hits, box)
		}
	}
	return NewUnion(hits)
}

func intersectUnionUnion(a, b Union) Region {
	var hits []BBox
	for _, x := range a.Members {
		for _, y := range b.Members {
			if box, ok := intersectBBox(x, y).(BBox); ok {
				hits = append(hits, box)
			}
		}
	}
	return NewUnion(hits)
}

// IntersectAll intersects a slice of regions; the intersection of zero
// regions is Universe (the identity for Intersect).
func IntersectAll(rs []Region) Region {
	out := Universe
	for _, r := range rs {
		out = Intersect(out, r)
	}
	return out
}

// UnionOf computes the set union of two regions. Ported from topo.cc's
// spatial_union.
func UnionOf(a, b Region) Region {
	if _, ok := a.(universeRegion); ok {
		return Universe
	}
	if _, ok := b.(universeRegion); ok {
		return Universe
	}
	if _, ok := a.(emptyRegion); ok {
		return b
	}
	if _, ok := b.(emptyRegion); ok {
		return a
	}

	aBox, aIsBox := a.(BBox)
	bBox, bIsBox := b.(BBox)
	if aIsBox && bIsBox {
		return unionBBox(aBox, bBox)
	}

	aUnion, aIsUnion := a.(Union)
	bUnion, bIsUnion := b.(Union)

	switch {
	case aIsUnion && bIsBox:
		return NewUnion(append(append([]BBox{}, aUnion.Members...), bBox))
	case aIsBox && bIsUnion:
		return NewUnion(append(append([]BBox{}, bUnion.Members...), aBox))
	case aIsUnion && bIsUnion:
		return NewUnion(append(append([]BBox{}, aUnion.Members...), bUnion.Members...))
	default:
		panic("region: unhandled Region combination in UnionOf")
	}
}

// UnionAll unions a slice of regions; the union of zero regions is Empty
// (the identity for UnionOf).
func UnionAll(rs []Region) Region {
	out := Empty
	for _, r := range rs {
		out = UnionOf(out, r)
	}
	return out
}

// interval is a 1-D [low, high] range used by Simplify's sweep.
type interval struct{ low, high float64 }

func (iv interval) overlaps(other interval) bool {
	return !(iv.low > other.high || other.low > iv.high)
}

func (iv interval) merge(other interval) interval {
	return interval{low: min(iv.low, other.low), high: max(iv.high, other.high)}
}

// Simplify re-expresses a Union as a set of pairwise-disjoint rectangles.
// Algorithm (ported from topo.cc's TopoSimplify): collect all distinct
// x-coordinates; for each consecutive x-slab, compute the set of
// y-intervals covered by originals overlapping the slab, merge those
// intervals, and emit one rectangle per merged y-interval.
func Simplify(r Region) Region {
	u, ok := r.(Union)
	if !ok {
		return r
	}
	members := u.Members
	if len(members) == 0 {
		return Empty
	}

	xs := make(map[float64]struct{}, len(members)*2)
	for _, b := range members {
		xs[b.Xmin] = struct{}{}
		xs[b.Xmax] = struct{}{}
	}
	xMargins := make([]float64, 0, len(xs))
	for x := range xs {
		xMargins = append(xMargins, x)
	}
	sort.Float64s(xMargins)

	var out []BBox
	for i := 0; i+1 < len(xMargins); i++ {
		x1, x2 := xMargins[i], xMargins[i+1]
		if x1 == x2 {
			continue
		}
		var yIntervals []interval
		for _, b := range members {
			if x1 < b.Xmax && x2 > b.Xmin {
				y := interval{low: b.Ymin, high: b.Ymax}
				merged := false
				for j, existing := range yIntervals {
					if y.overlaps(existing) {
						yIntervals[j] = existing.merge(y)
						merged = true
						break
					}
				}
				if !merged {
					yIntervals = append(yIntervals, y)
				}
			}
		}
		// A single pass of pairwise merges above is not transitively closed;
		// repeat until stable (slab rectangle counts are small in practice).
		yIntervals = mergeIntervals(yIntervals)
		for _, y := range yIntervals {
			out = append(out, FromClosedRect(x1, x2, y.low, y.high))
		}
	}

	return NewUnion(out)
}

func mergeIntervals(ivs []interval) []interval {
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(ivs); i++ {
			for j := i + 1; j < len(ivs); j++ {
				if ivs[i].overlaps(ivs[j]) {
					ivs[i] = ivs[i].merge(ivs[j])
					ivs = append(ivs[:j], ivs[j+1:]...)
					changed = true
					break
				}
			}
			if changed {
				break
			}
		}
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].low < ivs[j].low })
	return ivs
}
