package ast

import (
	"fmt"

	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

// TimeBoundExpr compares frozenTime(TimeVar) - currentTime against Value.
// Equality is rejected at construction; a negative Value is normalized by
// negating it and flipping the operator, so Value is always >= 0 once
// constructed (ported from ast/functions.hpp's TimeBound sign-flip).
type TimeBoundExpr struct {
	TimeVar string
	Op      CompareOp
	Value   float64
}

func (TimeBoundExpr) isExpr() {}

// NewTimeBound builds a TimeBoundExpr, rejecting equality operators and
// normalizing a negative value by negation-and-flip.
func NewTimeBound(timeVar string, op CompareOp, value float64) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: TimeBoundExpr rejects equality operators", ErrConstruction)
	}
	if value < 0 {
		value = -value
		op = op.flip()
	}
	return TimeBoundExpr{TimeVar: timeVar, Op: op, Value: value}, nil
}

// FrameBoundExpr compares frozenFrame(FrameVar) - currentFrameNum against
// Value, an integer >= 0. Equality is rejected at construction; unlike
// TimeBoundExpr, negative values are a construction error rather than
// normalized, since frame counts are never negative by definition.
type FrameBoundExpr struct {
	FrameVar string
	Op       CompareOp
	Value    int
}

func (FrameBoundExpr) isExpr() {}

// NewFrameBound builds a FrameBoundExpr.
func NewFrameBound(frameVar string, op CompareOp, value int) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: FrameBoundExpr rejects equality operators", ErrConstruction)
	}
	if value < 0 {
		return nil, fmt.Errorf("%w: FrameBoundExpr value must be >= 0, got %d", ErrConstruction, value)
	}
	return FrameBoundExpr{FrameVar: frameVar, Op: op, Value: value}, nil
}

// ClassRHS is the right-hand side of a ClassCmp: either an integer
// literal or the class of another bound object variable.
type ClassRHS struct {
	IsVar   bool
	ObjVar  string
	Literal int
}

// ClassLiteral builds a ClassRHS holding an integer literal.
func ClassLiteral(class int) ClassRHS { return ClassRHS{Literal: class} }

// ClassOf builds a ClassRHS referring to another object variable's class.
func ClassOf(objVar string) ClassRHS { return ClassRHS{IsVar: true, ObjVar: objVar} }

// ClassCmp compares a bound object's class against a literal or another
// object's class. Only EQ/NE are permitted (class is a discrete quantity).
type ClassCmp struct {
	ObjVar string
	Op     CompareOp
	RHS    ClassRHS
}

func (ClassCmp) isExpr() {}

// NewClassCmp builds a ClassCmp. op must be EQ or NE.
func NewClassCmp(objVar string, op CompareOp, rhs ClassRHS) (Expr, error) {
	if op != EQ && op != NE {
		return nil, fmt.Errorf("%w: ClassCmp only accepts = or !=, got %s", ErrConstruction, op)
	}
	return ClassCmp{ObjVar: objVar, Op: op, RHS: rhs}, nil
}

// ProbTerm is an object's detection probability, optionally scaled.
// Scale composes: t.Scaled(2).Scaled(3) has the same effect as
// t.Scaled(6), mirroring ast/functions.hpp's Prob::operator*=.
type ProbTerm struct {
	ObjVar string
	Scale  float64
}

// NewProbTerm builds an unscaled ProbTerm (scale 1).
func NewProbTerm(objVar string) ProbTerm { return ProbTerm{ObjVar: objVar, Scale: 1} }

// Scaled returns a copy of t with its scale multiplied by factor.
func (t ProbTerm) Scaled(factor float64) ProbTerm {
	t.Scale *= factor
	return t
}

// ProbRHS is the right-hand side of a ProbCmp: a literal or another term.
type ProbRHS struct {
	IsTerm  bool
	Term    ProbTerm
	Literal float64
}

// ProbLiteral builds a ProbRHS holding a literal.
func ProbLiteral(v float64) ProbRHS { return ProbRHS{Literal: v} }

// ProbOf builds a ProbRHS holding another probability term.
func ProbOf(t ProbTerm) ProbRHS { return ProbRHS{IsTerm: true, Term: t} }

// ProbCmp compares an object's (scaled) detection probability against a
// literal or another (scaled) probability term. Equality is rejected:
// probability is a continuous quantity.
type ProbCmp struct {
	LHS ProbTerm
	Op  CompareOp
	RHS ProbRHS
}

func (ProbCmp) isExpr() {}

// NewProbCmp builds a ProbCmp, rejecting equality operators.
func NewProbCmp(lhs ProbTerm, op CompareOp, rhs ProbRHS) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: ProbCmp rejects equality operators", ErrConstruction)
	}
	return ProbCmp{LHS: lhs, Op: op, RHS: rhs}, nil
}

// AreaTerm is the bounding-box area of a bound object, optionally scaled.
type AreaTerm struct {
	ObjVar string
	Scale  float64
}

// NewAreaTerm builds an unscaled AreaTerm (scale 1).
func NewAreaTerm(objVar string) AreaTerm { return AreaTerm{ObjVar: objVar, Scale: 1} }

// Scaled returns a copy of t with its scale multiplied by factor.
func (t AreaTerm) Scaled(factor float64) AreaTerm {
	t.Scale *= factor
	return t
}

// AreaRHS is the right-hand side of an AreaCmp.
type AreaRHS struct {
	IsTerm  bool
	Term    AreaTerm
	Literal float64
}

// AreaLiteral builds an AreaRHS holding a literal.
func AreaLiteral(v float64) AreaRHS { return AreaRHS{Literal: v} }

// AreaOf builds an AreaRHS holding another area term.
func AreaOf(t AreaTerm) AreaRHS { return AreaRHS{IsTerm: true, Term: t} }

// AreaCmp compares an object's (scaled) bounding-box area against a
// literal or another (scaled) area term. Equality is rejected.
type AreaCmp struct {
	LHS AreaTerm
	Op  CompareOp
	RHS AreaRHS
}

func (AreaCmp) isExpr() {}

// NewAreaCmp builds an AreaCmp, rejecting equality operators.
func NewAreaCmp(lhs AreaTerm, op CompareOp, rhs AreaRHS) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: AreaCmp rejects equality operators", ErrConstruction)
	}
	return AreaCmp{LHS: lhs, Op: op, RHS: rhs}, nil
}

// EuclideanDistTerm is the Euclidean distance between a reference point
// on one object and a reference point on another, optionally scaled.
type EuclideanDistTerm struct {
	Obj1, Obj2 string
	Ref1, Ref2 stream.ReferencePoint
	Scale      float64
}

// NewEuclideanDistTerm builds an unscaled EuclideanDistTerm.
func NewEuclideanDistTerm(obj1 string, ref1 stream.ReferencePoint, obj2 string, ref2 stream.ReferencePoint) EuclideanDistTerm {
	return EuclideanDistTerm{Obj1: obj1, Ref1: ref1, Obj2: obj2, Ref2: ref2, Scale: 1}
}

// Scaled returns a copy of t with its scale multiplied by factor.
func (t EuclideanDistTerm) Scaled(factor float64) EuclideanDistTerm {
	t.Scale *= factor
	return t
}

// EuclideanDistRHS is the right-hand side of an EuclideanDistCmp.
type EuclideanDistRHS struct {
	IsTerm  bool
	Term    EuclideanDistTerm
	Literal float64
}

// EuclideanDistLiteral builds an EuclideanDistRHS holding a literal.
func EuclideanDistLiteral(v float64) EuclideanDistRHS { return EuclideanDistRHS{Literal: v} }

// EuclideanDistOf builds an EuclideanDistRHS holding another distance term.
func EuclideanDistOf(t EuclideanDistTerm) EuclideanDistRHS {
	return EuclideanDistRHS{IsTerm: true, Term: t}
}

// EuclideanDistCmp compares a Euclidean distance term against a literal
// or another distance term. Equality is rejected.
type EuclideanDistCmp struct {
	LHS EuclideanDistTerm
	Op  CompareOp
	RHS EuclideanDistRHS
}

func (EuclideanDistCmp) isExpr() {}

// NewEuclideanDistCmp builds an EuclideanDistCmp, rejecting equality.
func NewEuclideanDistCmp(lhs EuclideanDistTerm, op CompareOp, rhs EuclideanDistRHS) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: EuclideanDistCmp rejects equality operators", ErrConstruction)
	}
	return EuclideanDistCmp{LHS: lhs, Op: op, RHS: rhs}, nil
}

// Axis names which coordinate an AxisDistTerm projects onto.
type Axis int

const (
	AxisLat Axis = iota // y-projection
	AxisLon             // x-projection
)

func (a Axis) String() string {
	if a == AxisLon {
		return "lon"
	}
	return "lat"
}

// AxisDistTerm is the axis-projected distance between reference points on
// two objects, optionally scaled. LatCmp and LonCmp share this shape; a
// LatCmp's term may be compared against a LonCmp's term (§9 allows
// cross-axis comparison since both reduce to a plain scalar distance).
type AxisDistTerm struct {
	Obj1, Obj2 string
	Ref1, Ref2 stream.ReferencePoint
	Axis       Axis
	Scale      float64
}

// NewLatTerm builds an unscaled lat-axis (y-projected) distance term.
func NewLatTerm(obj1 string, ref1 stream.ReferencePoint, obj2 string, ref2 stream.ReferencePoint) AxisDistTerm {
	return AxisDistTerm{Obj1: obj1, Ref1: ref1, Obj2: obj2, Ref2: ref2, Axis: AxisLat, Scale: 1}
}

// NewLonTerm builds an unscaled lon-axis (x-projected) distance term.
func NewLonTerm(obj1 string, ref1 stream.ReferencePoint, obj2 string, ref2 stream.ReferencePoint) AxisDistTerm {
	return AxisDistTerm{Obj1: obj1, Ref1: ref1, Obj2: obj2, Ref2: ref2, Axis: AxisLon, Scale: 1}
}

// Scaled returns a copy of t with its scale multiplied by factor.
func (t AxisDistTerm) Scaled(factor float64) AxisDistTerm {
	t.Scale *= factor
	return t
}

// AxisDistRHS is the right-hand side of an AxisDistCmp (LatCmp/LonCmp).
type AxisDistRHS struct {
	IsTerm  bool
	Term    AxisDistTerm
	Literal float64
}

// AxisDistLiteral builds an AxisDistRHS holding a literal.
func AxisDistLiteral(v float64) AxisDistRHS { return AxisDistRHS{Literal: v} }

// AxisDistOf builds an AxisDistRHS holding another axis-distance term.
func AxisDistOf(t AxisDistTerm) AxisDistRHS { return AxisDistRHS{IsTerm: true, Term: t} }

// AxisDistCmp is the shared representation of LatCmp and LonCmp: compares
// an axis-projected distance term against a literal or another term on
// either axis. Equality is rejected.
type AxisDistCmp struct {
	LHS AxisDistTerm
	Op  CompareOp
	RHS AxisDistRHS
}

func (AxisDistCmp) isExpr() {}

// NewLatCmp builds an AxisDistCmp with a lat-axis left-hand term.
func NewLatCmp(lhs AxisDistTerm, op CompareOp, rhs AxisDistRHS) (Expr, error) {
	return newAxisDistCmp(lhs, op, rhs)
}

// NewLonCmp builds an AxisDistCmp with a lon-axis left-hand term.
func NewLonCmp(lhs AxisDistTerm, op CompareOp, rhs AxisDistRHS) (Expr, error) {
	return newAxisDistCmp(lhs, op, rhs)
}

func newAxisDistCmp(lhs AxisDistTerm, op CompareOp, rhs AxisDistRHS) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: LatCmp/LonCmp reject equality operators", ErrConstruction)
	}
	return AxisDistCmp{LHS: lhs, Op: op, RHS: rhs}, nil
}

// SpAreaRHS is the right-hand side of a SpAreaCmp.
type SpAreaRHS struct {
	IsTerm  bool
	Term    SpAreaTerm
	Literal float64
}

// SpAreaLiteral builds a SpAreaRHS holding a literal.
func SpAreaLiteral(v float64) SpAreaRHS { return SpAreaRHS{Literal: v} }

// SpAreaOf builds a SpAreaRHS holding another spatial-area term.
func SpAreaOf(t SpAreaTerm) SpAreaRHS { return SpAreaRHS{IsTerm: true, Term: t} }

// SpAreaTerm is the area of a spatial region, optionally scaled.
type SpAreaTerm struct {
	Region SpatialExpr
	Scale  float64
}

// NewSpAreaTerm builds an unscaled SpAreaTerm.
func NewSpAreaTerm(region SpatialExpr) SpAreaTerm { return SpAreaTerm{Region: region, Scale: 1} }

// Scaled returns a copy of t with its scale multiplied by factor.
func (t SpAreaTerm) Scaled(factor float64) SpAreaTerm {
	t.Scale *= factor
	return t
}

// SpAreaCmp compares the area of a spatial region against a literal or
// another spatial-area term. Equality is rejected.
type SpAreaCmp struct {
	LHS SpAreaTerm
	Op  CompareOp
	RHS SpAreaRHS
}

func (SpAreaCmp) isExpr() {}

// NewSpAreaCmp builds a SpAreaCmp, rejecting equality operators.
func NewSpAreaCmp(lhs SpAreaTerm, op CompareOp, rhs SpAreaRHS) (Expr, error) {
	if isEqualityOp(op) {
		return nil, fmt.Errorf("%w: SpAreaCmp rejects equality operators", ErrConstruction)
	}
	return SpAreaCmp{LHS: lhs, Op: op, RHS: rhs}, nil
}
