package requirements

import (
	"errors"
	"fmt"
	"math"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
)

// ErrFPSRequired is returned when a formula contains a TimeBoundExpr but
// no positive frames-per-second was supplied to translate its seconds
// bound into a frame count.
var ErrFPSRequired = errors.New("requirements: fps > 0 required to analyze a TimeBoundExpr")

// Analyze computes the history/horizon requirements of e, given the
// stream's frames-per-second (used only to translate TimeBoundExpr's
// second-denominated bound into a frame count; pass 0 if e contains no
// TimeBoundExpr).
func Analyze(e ast.Expr, fps float64) (Requirements, error) {
	a := &analyzer{fps: fps}
	horizon, history, err := a.expr(e)
	if err != nil {
		return Requirements{}, err
	}
	return Requirements{History: history, Horizon: horizon}, nil
}

// IsMonitorable reports whether r's horizon is finite — the precondition
// for handing a formula to the online monitor (§4.E/§7).
func IsMonitorable(r Requirements) bool { return r.Horizon.IsFinite() }

type analyzer struct{ fps float64 }

func framesFor(seconds, fps float64, inclusive bool) (int, error) {
	if fps <= 0 {
		return 0, ErrFPSRequired
	}
	n := int(math.Ceil(seconds * fps))
	if inclusive {
		n++
	}
	return n, nil
}

// leafBound returns the Bound a TimeBoundExpr/FrameBoundExpr leaf
// contributes, per §4.D: a finite bound for the "bounded into the future
// by less than this much" operators (<, <=), Unbounded for (>, >=), which
// are only satisfiable arbitrarily far away.
func (a *analyzer) leafBound(e ast.Expr) (Bound, error) {
	switch v := e.(type) {
	case ast.TimeBoundExpr:
		switch v.Op {
		case ast.LT:
			n, err := framesFor(v.Value, a.fps, false)
			if err != nil {
				return Bound{}, err
			}
			return Of(n), nil
		case ast.LE:
			n, err := framesFor(v.Value, a.fps, true)
			if err != nil {
				return Bound{}, err
			}
			return Of(n), nil
		default: // GT, GE
			return UnboundedBound(), nil
		}
	case ast.FrameBoundExpr:
		switch v.Op {
		case ast.LT:
			return Of(v.Value), nil
		case ast.LE:
			return Of(v.Value + 1), nil
		default:
			return UnboundedBound(), nil
		}
	default:
		panic(fmt.Sprintf("requirements: leafBound called on non-bound-leaf %T", e))
	}
}

func isBoundLeaf(e ast.Expr) bool {
	switch e.(type) {
	case ast.TimeBoundExpr, ast.FrameBoundExpr:
		return true
	default:
		return false
	}
}

// expr computes (horizon, history) for e.
func (a *analyzer) expr(e ast.Expr) (horizon, history Bound, err error) {
	switch v := e.(type) {
	case ast.Const, ast.IdCompare, ast.ClassCmp, ast.ProbCmp, ast.AreaCmp,
		ast.EuclideanDistCmp, ast.AxisDistCmp:
		return Of(0), Of(0), nil

	case ast.SpAreaCmp:
		return a.spatial(v.LHS.Region)

	case ast.TimeBoundExpr, ast.FrameBoundExpr:
		b, err := a.leafBound(v)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return b, b, nil

	case ast.Not:
		return a.expr(v.Arg)

	case ast.And:
		return a.combine(v.Args, FoldMax, FoldMax)

	case ast.Or:
		return a.combine(v.Args, FoldAdd, FoldMax)

	case ast.Previous:
		hrz, hist, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return hrz, Add(Of(v.Steps), hist), nil

	case ast.Next:
		hrz, hist, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return Add(Of(v.Steps), hrz), hist, nil

	case ast.Historically:
		hrz, _, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return hrz, UnboundedBound(), nil

	case ast.SometimesPast:
		hrz, _, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return hrz, UnboundedBound(), nil

	case ast.Since:
		return a.maxBoth(v.A, v.B)

	case ast.BackTo:
		return a.maxBoth(v.A, v.B)

	case ast.Always:
		_, hist, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return UnboundedBound(), hist, nil

	case ast.Eventually:
		_, hist, err := a.expr(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		return UnboundedBound(), hist, nil

	case ast.Until:
		return a.maxBoth(v.A, v.B)

	case ast.Release:
		return a.maxBoth(v.A, v.B)

	case ast.Freeze:
		return a.expr(v.Body)

	case ast.Exists:
		return a.expr(v.Body)

	case ast.Forall:
		return a.expr(v.Body)

	default:
		return Bound{}, Bound{}, fmt.Errorf("requirements: unhandled Expr type %T", e)
	}
}

func (a *analyzer) maxBoth(lhs, rhs ast.Expr) (Bound, Bound, error) {
	lh, lhist, err := a.expr(lhs)
	if err != nil {
		return Bound{}, Bound{}, err
	}
	rh, rhist, err := a.expr(rhs)
	if err != nil {
		return Bound{}, Bound{}, err
	}
	return Max(lh, rh), Max(lhist, rhist), nil
}

// combine implements the And/Or rule: partition args into bound leaves
// (TimeBoundExpr/FrameBoundExpr) and everything else, fold each group's
// horizon (and, separately, history) with the supplied fold functions,
// then Add the two folded results together.
func (a *analyzer) combine(args []ast.Expr, foldNonBound, foldBound func([]Bound) Bound) (horizon, history Bound, err error) {
	var nonBoundHrz, nonBoundHist, boundHrz, boundHist []Bound
	for _, c := range args {
		hrz, hist, err := a.expr(c)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		if isBoundLeaf(c) {
			boundHrz = append(boundHrz, hrz)
			boundHist = append(boundHist, hist)
		} else {
			nonBoundHrz = append(nonBoundHrz, hrz)
			nonBoundHist = append(nonBoundHist, hist)
		}
	}
	horizon = Add(foldNonBound(nonBoundHrz), foldBound(boundHrz))
	history = Add(foldNonBound(nonBoundHist), foldBound(boundHist))
	return horizon, history, nil
}

// spatial computes (horizon, history) for a SpatialExpr. Sp* operators
// qualified by an explicit FrameInterval contribute their interval's span
// additively to whichever side they extend: SpPrevious and a negative-Lo
// interval extend into history, everything else's positive Hi extends
// horizon — both sides are populated for SpAlways/SpSometimes/SpSince/
// SpBackTo since, unlike the boolean Expr operators, a single spatial
// operator's interval can span past and future simultaneously (this
// resolves an ambiguity original_source leaves implicit in its single
// combined horizon computation; see DESIGN.md).
func (a *analyzer) spatial(e ast.SpatialExpr) (horizon, history Bound, err error) {
	switch v := e.(type) {
	case ast.BBoxOf:
		return Of(0), Of(0), nil

	case ast.Complement:
		return a.spatial(v.Arg)
	case ast.Interior:
		return a.spatial(v.Arg)
	case ast.Closure:
		return a.spatial(v.Arg)

	case ast.Intersect:
		return a.spatialNaryMax(v.Args)
	case ast.Union:
		return a.spatialNaryMax(v.Args)

	case ast.SpPrevious:
		hrz, hist, err := a.spatial(v.Arg)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		step := 1
		if v.Interval != nil {
			step = v.Interval.Hi
		}
		return hrz, Add(Of(step), hist), nil

	case ast.SpAlways:
		return a.spatialIntervalOp(v.Arg, v.Interval)
	case ast.SpSometimes:
		return a.spatialIntervalOp(v.Arg, v.Interval)

	case ast.SpSince:
		return a.spatialIntervalBinOp(v.A, v.B, v.Interval)
	case ast.SpBackTo:
		return a.spatialIntervalBinOp(v.A, v.B, v.Interval)

	default:
		// emptySetExpr / universeSetExpr: no temporal footprint.
		return Of(0), Of(0), nil
	}
}

func (a *analyzer) spatialNaryMax(args []ast.SpatialExpr) (Bound, Bound, error) {
	var hrzs, hists []Bound
	for _, c := range args {
		h, hi, err := a.spatial(c)
		if err != nil {
			return Bound{}, Bound{}, err
		}
		hrzs = append(hrzs, h)
		hists = append(hists, hi)
	}
	return FoldMax(hrzs), FoldMax(hists), nil
}

func (a *analyzer) spatialIntervalOp(arg ast.SpatialExpr, interval *ast.FrameInterval) (Bound, Bound, error) {
	hrz, hist, err := a.spatial(arg)
	if err != nil {
		return Bound{}, Bound{}, err
	}
	if interval == nil {
		return hrz, hist, nil
	}
	if interval.Hi > 0 {
		hrz = Add(Of(interval.Hi), hrz)
	}
	if interval.Lo < 0 {
		hist = Add(Of(-interval.Lo), hist)
	}
	return hrz, hist, nil
}

func (a *analyzer) spatialIntervalBinOp(lhs, rhs ast.SpatialExpr, interval *ast.FrameInterval) (Bound, Bound, error) {
	lh, lhist, err := a.spatial(lhs)
	if err != nil {
		return Bound{}, Bound{}, err
	}
	rh, rhist, err := a.spatial(rhs)
	if err != nil {
		return Bound{}, Bound{}, err
	}
	hrz, hist := Max(lh, rh), Max(lhist, rhist)
	if interval == nil {
		return hrz, hist, nil
	}
	if interval.Hi > 0 {
		hrz = Add(Of(interval.Hi), hrz)
	}
	if interval.Lo < 0 {
		hist = Add(Of(-interval.Lo), hist)
	}
	return hrz, hist, nil
}
