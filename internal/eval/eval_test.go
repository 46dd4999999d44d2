package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
	"github.com/fenwick-robotics/stqlmon/internal/region"
	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

func mustFrame(t *testing.T, ts float64, num int, objs map[string]stream.Object) stream.Frame {
	t.Helper()
	f, err := stream.NewFrame(ts, num, 100, 100, objs)
	require.NoError(t, err)
	return f
}

func mustObject(t *testing.T, class int, prob float64, xmin, xmax, ymin, ymax float64) stream.Object {
	t.Helper()
	bbox, err := stream.NewBoundingBox(xmin, xmax, ymin, ymax)
	require.NoError(t, err)
	obj, err := stream.NewObject(class, prob, bbox)
	require.NoError(t, err)
	return obj
}

func TestExistsFindsObjectOfSameClass(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, map[string]stream.Object{
		"a": mustObject(t, 1, 0.9, 0, 10, 0, 10),
		"b": mustObject(t, 1, 0.8, 20, 30, 20, 30),
	})
	ctx := NewContext([]stream.Frame{f}, 0)

	// "exists x, y. x != y and class[x] = class[y]"
	body, err := ast.NewAnd(
		ast.NewIdNe("x", "y"),
		mustClassEq(t, "x", "y"),
	)
	require.NoError(t, err)
	formula, err := ast.NewExists([]string{"x", "y"}, body)
	require.NoError(t, err)

	assert.True(t, Evaluate(formula, ctx))
}

func mustClassEq(t *testing.T, objVar, otherVar string) ast.Expr {
	t.Helper()
	e, err := ast.NewClassCmp(objVar, ast.EQ, ast.ClassOf(otherVar))
	require.NoError(t, err)
	return e
}

func TestExistsAndForallDualityOnEmptyFrame(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, nil)
	ctx := NewContext([]stream.Frame{f}, 0)

	exists, err := ast.NewExists([]string{"x"}, ast.ConstTrue)
	require.NoError(t, err)
	assert.False(t, Evaluate(exists, ctx), "exists over an empty frame must be false")

	forall, err := ast.NewForall([]string{"x"}, ast.ConstFalse)
	require.NoError(t, err)
	assert.True(t, Evaluate(forall, ctx), "forall over an empty frame must be vacuously true")
}

func TestQuantifierDuality(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, map[string]stream.Object{
		"a": mustObject(t, 1, 0.9, 0, 10, 0, 10),
		"b": mustObject(t, 2, 0.9, 0, 10, 0, 10),
	})
	ctx := NewContext([]stream.Frame{f}, 0)

	body, err := ast.NewClassCmp("x", ast.EQ, ast.ClassLiteral(1))
	require.NoError(t, err)

	forall, err := ast.NewForall([]string{"x"}, body)
	require.NoError(t, err)

	notBody := ast.NewNot(body)
	innerExists, err := ast.NewExists([]string{"x"}, notBody)
	require.NoError(t, err)
	negatedExists := ast.NewNot(innerExists)

	assert.Equal(t, Evaluate(forall, ctx), Evaluate(negatedExists, ctx))
}

func TestPreviousRespectsHistoryWindow(t *testing.T) {
	t.Parallel()
	f0 := mustFrame(t, 0, 0, map[string]stream.Object{"a": mustObject(t, 1, 0.9, 0, 10, 0, 10)})
	f1 := mustFrame(t, 1, 1, nil)
	ctx := NewContext([]stream.Frame{f0, f1}, 1)

	exists, err := ast.NewExists([]string{"x"}, ast.ConstTrue)
	require.NoError(t, err)
	prev, err := ast.NewPrevious(exists, 1)
	require.NoError(t, err)
	assert.True(t, Evaluate(prev, ctx))

	prevTwo, err := ast.NewPrevious(exists, 2)
	require.NoError(t, err)
	assert.False(t, Evaluate(prevTwo, ctx), "insufficient history must be false, not a panic")
}

func TestHistoricallyOverBoundedWindow(t *testing.T) {
	t.Parallel()
	frames := []stream.Frame{
		mustFrame(t, 0, 0, map[string]stream.Object{"a": mustObject(t, 1, 0.9, 0, 10, 0, 10)}),
		mustFrame(t, 1, 1, map[string]stream.Object{"a": mustObject(t, 1, 0.9, 0, 10, 0, 10)}),
		mustFrame(t, 2, 2, nil),
	}

	exists, err := ast.NewExists([]string{"x"}, ast.ConstTrue)
	require.NoError(t, err)
	historically := ast.NewHistorically(exists)

	assert.True(t, Evaluate(historically, NewContext(frames, 1)))
	assert.False(t, Evaluate(historically, NewContext(frames, 2)))
}

func TestSpatialDisjointnessViaComplement(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, map[string]stream.Object{
		"a": mustObject(t, 1, 0.9, 0, 10, 0, 10),
		"b": mustObject(t, 1, 0.9, 50, 60, 50, 60),
	})
	ctx := NewContext([]stream.Frame{f}, 0).WithBoundObject("a", "a").WithBoundObject("b", "b")

	bboxA := ast.NewBBoxOf("a")
	notA := ast.NewComplement(bboxA)
	intersection, err := ast.NewIntersect(notA, ast.NewBBoxOf("b"))
	require.NoError(t, err)

	got := EvaluateSpatial(intersection, ctx)
	assert.InDelta(t, 100.0, region.Area(got), 1e-9, "disjoint boxes: intersecting b with not-a should leave all of b")
}

func TestDistanceThresholdStrictVsNonStrict(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, map[string]stream.Object{
		"a": mustObject(t, 1, 0.9, 0, 10, 0, 10),
		"b": mustObject(t, 1, 0.9, 10, 20, 0, 10),
	})
	ctx := NewContext([]stream.Frame{f}, 0).WithBoundObject("a", "a").WithBoundObject("b", "b")

	term := ast.NewEuclideanDistTerm("a", stream.RightMargin, "b", stream.LeftMargin)

	strict, err := ast.NewEuclideanDistCmp(term, ast.LT, ast.EuclideanDistLiteral(0))
	require.NoError(t, err)
	assert.False(t, Evaluate(strict, ctx), "coincident margins: strict < 0 must be false")

	nonStrict, err := ast.NewEuclideanDistCmp(term, ast.LE, ast.EuclideanDistLiteral(0))
	require.NoError(t, err)
	assert.True(t, Evaluate(nonStrict, ctx), "coincident margins: <= 0 must be true")
}

func TestUnboundObjectVariablePanicsAndRunRecovers(t *testing.T) {
	t.Parallel()
	f := mustFrame(t, 0, 0, nil)
	ctx := NewContext([]stream.Frame{f}, 0)

	leaf, err := ast.NewClassCmp("x", ast.EQ, ast.ClassLiteral(1))
	require.NoError(t, err)

	assert.Panics(t, func() { Evaluate(leaf, ctx) })

	_, runErr := Run(leaf, ctx)
	require.Error(t, runErr)
	assert.ErrorIs(t, runErr, ErrUnboundVariable)
}
