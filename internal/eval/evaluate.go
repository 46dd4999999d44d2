package eval

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
	"github.com/fenwick-robotics/stqlmon/internal/iterutil"
	"github.com/fenwick-robotics/stqlmon/internal/region"
	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

// Evaluate walks e against ctx and returns its boolean verdict, per
// §4.E's semantics table. It panics (wrapping ErrUnboundVariable) if e
// references an object variable with no enclosing binding — use Run at
// a host boundary to turn that into an error instead of a panic.
func Evaluate(e ast.Expr, ctx Context) bool {
	switch v := e.(type) {
	case ast.Const:
		return v.Value

	case ast.TimeBoundExpr:
		frozen, ok := ctx.FrozenTimes[v.TimeVar]
		if !ok {
			return false
		}
		return compareValues(frozen-ctx.CurrentFrame().Timestamp, v.Op, v.Value)

	case ast.FrameBoundExpr:
		frozen, ok := ctx.FrozenFrames[v.FrameVar]
		if !ok {
			return false
		}
		return compareValues(float64(frozen-ctx.CurrentFrame().FrameNum), v.Op, float64(v.Value))

	case ast.IdCompare:
		idA, okA := ctx.BoundObjects[v.A]
		if !okA {
			panic(fmt.Errorf("%w: %q", ErrUnboundVariable, v.A))
		}
		idB, okB := ctx.BoundObjects[v.B]
		if !okB {
			panic(fmt.Errorf("%w: %q", ErrUnboundVariable, v.B))
		}
		if v.Op == ast.EQ {
			return idA == idB
		}
		return idA != idB

	case ast.ClassCmp:
		obj, ok := ctx.resolveObject(v.ObjVar)
		if !ok {
			return false
		}
		rhs := v.RHS.Literal
		if v.RHS.IsVar {
			rhsObj, ok := ctx.resolveObject(v.RHS.ObjVar)
			if !ok {
				return false
			}
			rhs = rhsObj.Class
		}
		if v.Op == ast.EQ {
			return obj.Class == rhs
		}
		return obj.Class != rhs

	case ast.ProbCmp:
		lhsObj, ok := ctx.resolveObject(v.LHS.ObjVar)
		if !ok {
			return false
		}
		lhsVal := lhsObj.Probability * v.LHS.Scale
		rhsVal, ok := resolveProbRHS(v.RHS, ctx)
		if !ok {
			return false
		}
		return compareValues(lhsVal, v.Op, rhsVal)

	case ast.AreaCmp:
		lhsObj, ok := ctx.resolveObject(v.LHS.ObjVar)
		if !ok {
			return false
		}
		lhsVal := lhsObj.BBox.Area() * v.LHS.Scale
		rhsVal, ok := resolveAreaRHS(v.RHS, ctx)
		if !ok {
			return false
		}
		return compareValues(lhsVal, v.Op, rhsVal)

	case ast.EuclideanDistCmp:
		lhsVal, ok := computeEuclideanDist(v.LHS, ctx)
		if !ok {
			return false
		}
		rhsVal, ok := resolveEuclideanRHS(v.RHS, ctx)
		if !ok {
			return false
		}
		return compareValues(lhsVal, v.Op, rhsVal)

	case ast.AxisDistCmp:
		lhsVal, ok := computeAxisDist(v.LHS, ctx)
		if !ok {
			return false
		}
		rhsVal, ok := resolveAxisRHS(v.RHS, ctx)
		if !ok {
			return false
		}
		return compareValues(lhsVal, v.Op, rhsVal)

	case ast.SpAreaCmp:
		lhsVal := region.Area(EvaluateSpatial(v.LHS.Region, ctx)) * v.LHS.Scale
		rhsVal := v.RHS.Literal
		if v.RHS.IsTerm {
			rhsVal = region.Area(EvaluateSpatial(v.RHS.Term.Region, ctx)) * v.RHS.Term.Scale
		}
		return compareValues(lhsVal, v.Op, rhsVal)

	case ast.Not:
		return !Evaluate(v.Arg, ctx)

	case ast.And:
		for _, a := range v.Args {
			if !Evaluate(a, ctx) {
				return false
			}
		}
		return true

	case ast.Or:
		for _, a := range v.Args {
			if Evaluate(a, ctx) {
				return true
			}
		}
		return false

	case ast.Exists:
		ids := quantifierIDs(ctx, v.PinnedAt)
		for tuple := range iterutil.Product(len(ids), len(v.Vars)) {
			if Evaluate(v.Body, bindVars(ctx, v.Vars, ids, tuple)) {
				return true
			}
		}
		return false

	case ast.Forall:
		ids := quantifierIDs(ctx, v.PinnedAt)
		for tuple := range iterutil.Product(len(ids), len(v.Vars)) {
			if !Evaluate(v.Body, bindVars(ctx, v.Vars, ids, tuple)) {
				return false
			}
		}
		return true

	case ast.Freeze:
		next := ctx
		if v.TimeVar != "" {
			next = next.WithFrozenTime(v.TimeVar, ctx.CurrentFrame().Timestamp)
		}
		if v.FrameVar != "" {
			next = next.WithFrozenFrame(v.FrameVar, ctx.CurrentFrame().FrameNum)
		}
		return Evaluate(v.Body, next)

	case ast.Previous:
		if !ctx.HasHistory(v.Steps) {
			return false
		}
		return Evaluate(v.Arg, ctx.At(ctx.Current-v.Steps))

	case ast.Next:
		if !ctx.HasHorizon(v.Steps) {
			return false
		}
		return Evaluate(v.Arg, ctx.At(ctx.Current+v.Steps))

	case ast.Historically:
		for i := 0; i <= ctx.Current; i++ {
			if !Evaluate(v.Arg, ctx.At(i)) {
				return false
			}
		}
		return true

	case ast.SometimesPast:
		for i := 0; i <= ctx.Current; i++ {
			if Evaluate(v.Arg, ctx.At(i)) {
				return true
			}
		}
		return false

	case ast.Since:
		return evalSince(v.A, v.B, ctx)

	case ast.BackTo:
		return evalBackTo(v.A, v.B, ctx)

	case ast.Always:
		for i := ctx.Current; i < len(ctx.Frames); i++ {
			if !Evaluate(v.Arg, ctx.At(i)) {
				return false
			}
		}
		return true

	case ast.Eventually:
		for i := ctx.Current; i < len(ctx.Frames); i++ {
			if Evaluate(v.Arg, ctx.At(i)) {
				return true
			}
		}
		return false

	case ast.Until:
		return evalUntil(v.A, v.B, ctx)

	case ast.Release:
		return evalRelease(v.A, v.B, ctx)

	default:
		panic(fmt.Sprintf("eval: unhandled Expr type %T", e))
	}
}

// Run evaluates e and turns a programmer-error panic (an unbound
// variable) into a returned error instead of propagating the panic. Any
// other panic is re-raised: only ErrUnboundVariable is a "handled" failure
// mode here.
func Run(e ast.Expr, ctx Context) (result bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok && errors.Is(asErr, ErrUnboundVariable) {
				err = asErr
				return
			}
			panic(r)
		}
	}()
	return Evaluate(e, ctx), nil
}

func compareValues(lhs float64, op ast.CompareOp, rhs float64) bool {
	switch op {
	case ast.LT:
		return lhs < rhs
	case ast.LE:
		return lhs <= rhs
	case ast.GT:
		return lhs > rhs
	case ast.GE:
		return lhs >= rhs
	case ast.EQ:
		return lhs == rhs
	case ast.NE:
		return lhs != rhs
	default:
		panic(fmt.Sprintf("eval: unhandled CompareOp %v", op))
	}
}

func resolveProbRHS(rhs ast.ProbRHS, ctx Context) (float64, bool) {
	if !rhs.IsTerm {
		return rhs.Literal, true
	}
	obj, ok := ctx.resolveObject(rhs.Term.ObjVar)
	if !ok {
		return 0, false
	}
	return obj.Probability * rhs.Term.Scale, true
}

func resolveAreaRHS(rhs ast.AreaRHS, ctx Context) (float64, bool) {
	if !rhs.IsTerm {
		return rhs.Literal, true
	}
	obj, ok := ctx.resolveObject(rhs.Term.ObjVar)
	if !ok {
		return 0, false
	}
	return obj.BBox.Area() * rhs.Term.Scale, true
}

func computeEuclideanDist(t ast.EuclideanDistTerm, ctx Context) (float64, bool) {
	obj1, ok := ctx.resolveObject(t.Obj1)
	if !ok {
		return 0, false
	}
	obj2, ok := ctx.resolveObject(t.Obj2)
	if !ok {
		return 0, false
	}
	x1, y1 := t.Ref1.Point(obj1.BBox)
	x2, y2 := t.Ref2.Point(obj2.BBox)
	return math.Hypot(x2-x1, y2-y1) * t.Scale, true
}

func resolveEuclideanRHS(rhs ast.EuclideanDistRHS, ctx Context) (float64, bool) {
	if !rhs.IsTerm {
		return rhs.Literal, true
	}
	return computeEuclideanDist(rhs.Term, ctx)
}

func computeAxisDist(t ast.AxisDistTerm, ctx Context) (float64, bool) {
	obj1, ok := ctx.resolveObject(t.Obj1)
	if !ok {
		return 0, false
	}
	obj2, ok := ctx.resolveObject(t.Obj2)
	if !ok {
		return 0, false
	}
	x1, y1 := t.Ref1.Point(obj1.BBox)
	x2, y2 := t.Ref2.Point(obj2.BBox)
	if t.Axis == ast.AxisLon {
		return math.Abs(x2-x1) * t.Scale, true
	}
	return math.Abs(y2-y1) * t.Scale, true
}

func resolveAxisRHS(rhs ast.AxisDistRHS, ctx Context) (float64, bool) {
	if !rhs.IsTerm {
		return rhs.Literal, true
	}
	return computeAxisDist(rhs.Term, ctx)
}

// quantifierIDs returns the sorted object ids a quantifier should range
// over: the current frame's, or the frame pinned to pinnedAt if set. A
// pinned frame variable that was never frozen is a programmer error; a
// pinned frame number absent from the buffered window yields an empty id
// set (the quantifier's base case handles that: Exists false, Forall
// true), since that's a data-availability gap rather than malformed input.
func quantifierIDs(ctx Context, pinnedAt string) []string {
	frame := ctx.CurrentFrame()
	if pinnedAt != "" {
		frameNum, ok := ctx.FrozenFrames[pinnedAt]
		if !ok {
			panic(fmt.Errorf("%w: %q", ErrUnboundVariable, pinnedAt))
		}
		found, ok := findFrameByNum(ctx.Frames, frameNum)
		if !ok {
			return nil
		}
		frame = found
	}
	ids := frame.ObjectIDs()
	sort.Strings(ids)
	return ids
}

func findFrameByNum(frames []stream.Frame, num int) (stream.Frame, bool) {
	for _, f := range frames {
		if f.FrameNum == num {
			return f, true
		}
	}
	return stream.Frame{}, false
}

func bindVars(ctx Context, vars []string, ids []string, tuple []int) Context {
	next := ctx
	for i, v := range vars {
		next = next.WithBoundObject(v, ids[tuple[i]])
	}
	return next
}

func evalSince(a, b ast.Expr, ctx Context) bool {
	for i := ctx.Current; i >= 0; i-- {
		if !Evaluate(b, ctx.At(i)) {
			continue
		}
		ok := true
		for j := i + 1; j <= ctx.Current; j++ {
			if !Evaluate(a, ctx.At(j)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func evalBackTo(a, b ast.Expr, ctx Context) bool {
	allB := true
	for k := 0; k <= ctx.Current; k++ {
		if !Evaluate(b, ctx.At(k)) {
			allB = false
			break
		}
	}
	if allB {
		return true
	}
	for j := 0; j <= ctx.Current; j++ {
		if !Evaluate(a, ctx.At(j)) {
			continue
		}
		ok := true
		for k := j; k <= ctx.Current; k++ {
			if !Evaluate(b, ctx.At(k)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func evalUntil(a, b ast.Expr, ctx Context) bool {
	for i := ctx.Current; i < len(ctx.Frames); i++ {
		if !Evaluate(b, ctx.At(i)) {
			continue
		}
		ok := true
		for j := ctx.Current; j < i; j++ {
			if !Evaluate(a, ctx.At(j)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func evalRelease(a, b ast.Expr, ctx Context) bool {
	allB := true
	for k := ctx.Current; k < len(ctx.Frames); k++ {
		if !Evaluate(b, ctx.At(k)) {
			allB = false
			break
		}
	}
	if allB {
		return true
	}
	for i := ctx.Current; i < len(ctx.Frames); i++ {
		if !Evaluate(a, ctx.At(i)) {
			continue
		}
		ok := true
		for k := ctx.Current; k <= i; k++ {
			if !Evaluate(b, ctx.At(k)) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}
