package ast

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAndFlattensNested(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}
	b := ClassCmp{ObjVar: "y", Op: EQ, RHS: ClassLiteral(2)}
	c := ClassCmp{ObjVar: "z", Op: EQ, RHS: ClassLiteral(3)}

	inner, err := NewAnd(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nested, err := NewAnd(inner, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	flat, err := NewAnd(a, b, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(flat, nested); diff != "" {
		t.Errorf("flatten(And(And(a,b),c)) != And(a,b,c) (-want +got):\n%s", diff)
	}
}

func TestNewAndIdentityAndAnnihilator(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}

	got, err := NewAnd(ConstTrue, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Expr(a), got); diff != "" {
		t.Errorf("And(true,a) != a (-want +got):\n%s", diff)
	}

	got, err = NewAnd(ConstFalse, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ConstFalse {
		t.Errorf("And(false,a) = %v, want ConstFalse", got)
	}
}

func TestNewOrIdentityAndAnnihilator(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}

	got, err := NewOr(ConstFalse, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Expr(a), got); diff != "" {
		t.Errorf("Or(false,a) != a (-want +got):\n%s", diff)
	}

	got, err = NewOr(ConstTrue, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ConstTrue {
		t.Errorf("Or(true,a) = %v, want ConstTrue", got)
	}
}

func TestNewAndIdempotence(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}
	got, err := NewAnd(a, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Expr(a), got); diff != "" {
		t.Errorf("And(a,a) != a (-want +got):\n%s", diff)
	}
}

func TestNewAndRejectsTooFewArgs(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}
	if _, err := NewAnd(a); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestNewNotDoubleNegationAndConstants(t *testing.T) {
	a := ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)}
	if diff := cmp.Diff(Expr(a), NewNot(NewNot(a))); diff != "" {
		t.Errorf("Not(Not(a)) != a (-want +got):\n%s", diff)
	}
	if NewNot(ConstTrue) != ConstFalse {
		t.Errorf("Not(true) != false")
	}
	if NewNot(ConstFalse) != ConstTrue {
		t.Errorf("Not(false) != true")
	}
}

func TestNewTimeBoundNormalizesNegativeValue(t *testing.T) {
	e, err := NewTimeBound("tau", LT, -3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tb, ok := e.(TimeBoundExpr)
	if !ok {
		t.Fatalf("got %T, want TimeBoundExpr", e)
	}
	if tb.Value != 3.0 || tb.Op != GT {
		t.Errorf("got value=%v op=%v, want value=3 op=>", tb.Value, tb.Op)
	}
}

func TestNewTimeBoundRejectsEquality(t *testing.T) {
	if _, err := NewTimeBound("tau", EQ, 1.0); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestNewFrameBoundRejectsNegative(t *testing.T) {
	if _, err := NewFrameBound("f", LT, -1); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestProbTermScaleComposes(t *testing.T) {
	a := NewProbTerm("x").Scaled(2).Scaled(3)
	b := NewProbTerm("x").Scaled(6)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("Scaled(2).Scaled(3) != Scaled(6) (-want +got):\n%s", diff)
	}
}

func TestNewProbCmpRejectsEquality(t *testing.T) {
	if _, err := NewProbCmp(NewProbTerm("x"), EQ, ProbLiteral(0.5)); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestNewExistsRejectsEmptyVars(t *testing.T) {
	if _, err := NewExists(nil, ConstTrue); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestNewFreezeRejectsNoVars(t *testing.T) {
	if _, err := NewFreeze("", "", ConstTrue); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestNewPreviousRejectsNonPositiveSteps(t *testing.T) {
	if _, err := NewPrevious(ConstTrue, 0); !errors.Is(err, ErrConstruction) {
		t.Errorf("err = %v, want ErrConstruction", err)
	}
}

func TestComplementNormalizesEmptyUniverse(t *testing.T) {
	if NewComplement(EmptySet) != UniverseSet {
		t.Errorf("Complement(EmptySet) != UniverseSet")
	}
	if NewComplement(UniverseSet) != EmptySet {
		t.Errorf("Complement(UniverseSet) != EmptySet")
	}
}

func TestComplementDoubleComplement(t *testing.T) {
	box := NewBBoxOf("x")
	if got := NewComplement(NewComplement(box)); got != box {
		t.Errorf("Complement(Complement(box)) != box, got %v", got)
	}
}

func TestNewIntersectIdentityAndAnnihilator(t *testing.T) {
	box := NewBBoxOf("x")
	got, err := NewIntersect(UniverseSet, box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != box {
		t.Errorf("Intersect(Universe,box) != box, got %v", got)
	}

	got, err = NewIntersect(EmptySet, box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != EmptySet {
		t.Errorf("Intersect(Empty,box) != Empty, got %v", got)
	}
}

func TestNewUnionSpatialIdempotence(t *testing.T) {
	box := NewBBoxOf("x")
	got, err := NewUnion(box, box)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != box {
		t.Errorf("Union(box,box) != box, got %v", got)
	}
}

func TestFormatRendersExpr(t *testing.T) {
	e, err := NewAnd(
		ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)},
		ClassCmp{ObjVar: "y", Op: NE, RHS: ClassLiteral(2)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := Format(e)
	if got == "" {
		t.Errorf("Format returned empty string")
	}
}

func TestFormatIsDeterministic(t *testing.T) {
	e, err := NewAnd(
		ClassCmp{ObjVar: "x", Op: EQ, RHS: ClassLiteral(1)},
		ClassCmp{ObjVar: "y", Op: NE, RHS: ClassLiteral(2)},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Format(e) != Format(e) {
		t.Errorf("Format is not deterministic across repeated calls")
	}
}
