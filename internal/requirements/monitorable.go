package requirements

import "github.com/fenwick-robotics/stqlmon/internal/ast"

// IsPastTime reports whether e contains no future-looking operator
// anywhere in its tree (Next, Always, Eventually, Until, Release, or a
// spatial lift whose explicit interval reaches into the future). A host
// that wants strictly-past-time monitoring can reject a formula outright
// even when its horizon happens to already be finite (§6).
func IsPastTime(e ast.Expr) bool { return !hasFutureOperator(e) }

func hasFutureOperator(e ast.Expr) bool {
	switch v := e.(type) {
	case ast.Const, ast.IdCompare, ast.ClassCmp, ast.ProbCmp, ast.AreaCmp,
		ast.EuclideanDistCmp, ast.AxisDistCmp, ast.TimeBoundExpr, ast.FrameBoundExpr:
		return false
	case ast.SpAreaCmp:
		return spatialHasFutureOperator(v.LHS.Region)
	case ast.Not:
		return hasFutureOperator(v.Arg)
	case ast.And:
		return anyFuture(v.Args)
	case ast.Or:
		return anyFuture(v.Args)
	case ast.Previous:
		return hasFutureOperator(v.Arg)
	case ast.Next:
		return true
	case ast.Historically:
		return hasFutureOperator(v.Arg)
	case ast.SometimesPast:
		return hasFutureOperator(v.Arg)
	case ast.Since:
		return hasFutureOperator(v.A) || hasFutureOperator(v.B)
	case ast.BackTo:
		return hasFutureOperator(v.A) || hasFutureOperator(v.B)
	case ast.Always:
		return true
	case ast.Eventually:
		return true
	case ast.Until:
		return true
	case ast.Release:
		return true
	case ast.Freeze:
		return hasFutureOperator(v.Body)
	case ast.Exists:
		return hasFutureOperator(v.Body)
	case ast.Forall:
		return hasFutureOperator(v.Body)
	default:
		return false
	}
}

func anyFuture(args []ast.Expr) bool {
	for _, a := range args {
		if hasFutureOperator(a) {
			return true
		}
	}
	return false
}

func spatialHasFutureOperator(e ast.SpatialExpr) bool {
	switch v := e.(type) {
	case ast.BBoxOf:
		return false
	case ast.Complement:
		return spatialHasFutureOperator(v.Arg)
	case ast.Interior:
		return spatialHasFutureOperator(v.Arg)
	case ast.Closure:
		return spatialHasFutureOperator(v.Arg)
	case ast.Intersect:
		return anySpatialFuture(v.Args)
	case ast.Union:
		return anySpatialFuture(v.Args)
	case ast.SpPrevious:
		return spatialHasFutureOperator(v.Arg)
	case ast.SpAlways:
		return intervalReachesFuture(v.Interval) || spatialHasFutureOperator(v.Arg)
	case ast.SpSometimes:
		return intervalReachesFuture(v.Interval) || spatialHasFutureOperator(v.Arg)
	case ast.SpSince:
		return intervalReachesFuture(v.Interval) || spatialHasFutureOperator(v.A) || spatialHasFutureOperator(v.B)
	case ast.SpBackTo:
		return intervalReachesFuture(v.Interval) || spatialHasFutureOperator(v.A) || spatialHasFutureOperator(v.B)
	default:
		return false
	}
}

func anySpatialFuture(args []ast.SpatialExpr) bool {
	for _, a := range args {
		if spatialHasFutureOperator(a) {
			return true
		}
	}
	return false
}

func intervalReachesFuture(iv *ast.FrameInterval) bool {
	return iv != nil && iv.Hi > 0
}
