package eval

import (
	"fmt"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
	"github.com/fenwick-robotics/stqlmon/internal/region"
)

// EvaluateSpatial walks e against ctx and returns the region it denotes
// at the current frame, per §4.B/§4.E. The boolean connectives (Intersect/
// Union/Complement) map onto the same region algebra §3.3 normalizes
// And/Or/Not against, so the spatial-temporal lifts below (SpAlways,
// SpSince, ...) are built by literally substituting region.IntersectAll/
// region.UnionAll for the boolean fold used by their Expr counterparts.
func EvaluateSpatial(e ast.SpatialExpr, ctx Context) region.Region {
	switch v := e.(type) {
	case ast.BBoxOf:
		obj, ok := ctx.resolveObject(v.ObjVar)
		if !ok {
			return region.Empty
		}
		return region.FromClosedRect(obj.BBox.Xmin, obj.BBox.Xmax, obj.BBox.Ymin, obj.BBox.Ymax)

	case ast.Complement:
		return region.Complement(EvaluateSpatial(v.Arg, ctx), ctx.CurrentFrame().Universe())

	case ast.Intersect:
		parts := make([]region.Region, len(v.Args))
		for i, a := range v.Args {
			parts[i] = EvaluateSpatial(a, ctx)
		}
		return region.IntersectAll(parts)

	case ast.Union:
		parts := make([]region.Region, len(v.Args))
		for i, a := range v.Args {
			parts[i] = EvaluateSpatial(a, ctx)
		}
		return region.UnionAll(parts)

	case ast.Interior:
		return region.Interior(EvaluateSpatial(v.Arg, ctx))

	case ast.Closure:
		return region.Closure(EvaluateSpatial(v.Arg, ctx))

	case ast.SpPrevious:
		step := 1
		if v.Interval != nil {
			step = v.Interval.Hi
		}
		if !ctx.HasHistory(step) {
			return region.Empty
		}
		return EvaluateSpatial(v.Arg, ctx.At(ctx.Current-step))

	case ast.SpAlways:
		lo, hi := qualifyingWindow(ctx, v.Interval, true)
		return region.IntersectAll(spatialWindow(v.Arg, ctx, lo, hi))

	case ast.SpSometimes:
		lo, hi := qualifyingWindow(ctx, v.Interval, true)
		return region.UnionAll(spatialWindow(v.Arg, ctx, lo, hi))

	case ast.SpSince:
		return evalSpSince(v.A, v.B, v.Interval, ctx)

	case ast.SpBackTo:
		return evalSpBackTo(v.A, v.B, v.Interval, ctx)

	default:
		switch e {
		case ast.EmptySet:
			return region.Empty
		case ast.UniverseSet:
			return ctx.CurrentFrame().Universe()
		default:
			panic(fmt.Sprintf("eval: unhandled SpatialExpr type %T", e))
		}
	}
}

// qualifyingWindow computes the inclusive [lo, hi] frame index window a
// spatial temporal-lift operator folds over. With no explicit interval it
// defaults to the full future (defaultFuture true, mirroring Always'
// unbounded-future default) or the full past (mirroring Historically).
// With an explicit interval, the window is ctx.Current+[Lo,Hi], clamped to
// the buffered frames — allowing an interval to reach into either
// direction from a single operator, since the spatial lifts don't carry
// separate past/future variant names the way the boolean operators do.
func qualifyingWindow(ctx Context, interval *ast.FrameInterval, defaultFuture bool) (lo, hi int) {
	if interval == nil {
		if defaultFuture {
			return ctx.Current, len(ctx.Frames) - 1
		}
		return 0, ctx.Current
	}
	lo = ctx.Current + interval.Lo
	hi = ctx.Current + interval.Hi
	if lo < 0 {
		lo = 0
	}
	if hi > len(ctx.Frames)-1 {
		hi = len(ctx.Frames) - 1
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi
}

func spatialWindow(arg ast.SpatialExpr, ctx Context, lo, hi int) []region.Region {
	var out []region.Region
	for i := lo; i <= hi; i++ {
		out = append(out, EvaluateSpatial(arg, ctx.At(i)))
	}
	return out
}

func evalSpSince(a, b ast.SpatialExpr, interval *ast.FrameInterval, ctx Context) region.Region {
	lo, hi := qualifyingWindow(ctx, interval, false)
	var parts []region.Region
	for i := lo; i <= hi; i++ {
		bi := EvaluateSpatial(b, ctx.At(i))
		var aParts []region.Region
		for j := i + 1; j <= hi; j++ {
			aParts = append(aParts, EvaluateSpatial(a, ctx.At(j)))
		}
		parts = append(parts, region.Intersect(bi, region.IntersectAll(aParts)))
	}
	return region.UnionAll(parts)
}

func evalSpBackTo(a, b ast.SpatialExpr, interval *ast.FrameInterval, ctx Context) region.Region {
	lo, hi := qualifyingWindow(ctx, interval, false)
	var bParts []region.Region
	for k := lo; k <= hi; k++ {
		bParts = append(bParts, EvaluateSpatial(b, ctx.At(k)))
	}
	allB := region.IntersectAll(bParts)

	var witnessParts []region.Region
	for j := lo; j <= hi; j++ {
		aj := EvaluateSpatial(a, ctx.At(j))
		var tailParts []region.Region
		for k := j; k <= hi; k++ {
			tailParts = append(tailParts, EvaluateSpatial(b, ctx.At(k)))
		}
		witnessParts = append(witnessParts, region.Intersect(aj, region.IntersectAll(tailParts)))
	}
	return region.UnionOf(allB, region.UnionAll(witnessParts))
}
