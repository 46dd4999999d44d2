// Package ast defines the Spatio-Temporal Quality Logic formula tree: a
// closed set of boolean-valued Expr variants and region-valued SpatialExpr
// variants, built exclusively through factory functions that enforce
// §3.3's construction rules (variadic arity, equality rejection on
// continuous comparisons, bound-sign normalization) at construction time.
//
// Nodes are immutable once built. A compound node holds its children by
// value, so copying an Expr is cheap and two Exprs built the same way are
// structurally equal — ported from original_source/include/percemon/ast's
// shared_ptr<const Node> graph, replacing reference counting with Go's
// garbage collector and std::visit with a type switch (see eval.Evaluate).
package ast

import (
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// ErrConstruction is wrapped by every error a factory function returns
// when its arguments violate a well-formedness rule in §3.3/§7.
var ErrConstruction = errors.New("ast: ill-formed construction")

// Expr is a boolean-valued formula node. The concrete variants below are
// the only types satisfying it; it is not meant to be implemented outside
// this package.
type Expr interface {
	isExpr()
}

// CompareOp is a comparison operator used by metric and object-primitive
// leaves. Equality/inequality are rejected by factories for continuous
// quantities (probability, area, distance); they are permitted for
// discrete quantities (class, object identity).
type CompareOp int

const (
	LT CompareOp = iota
	LE
	GT
	GE
	EQ
	NE
)

func (op CompareOp) String() string {
	switch op {
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ:
		return "="
	case NE:
		return "!="
	default:
		return fmt.Sprintf("op(%d)", int(op))
	}
}

func (op CompareOp) flip() CompareOp {
	switch op {
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	default:
		return op
	}
}

func isEqualityOp(op CompareOp) bool { return op == EQ || op == NE }

// Const is a boolean literal leaf.
type Const struct{ Value bool }

func (Const) isExpr() {}

// ConstTrue is the canonical true leaf (⊤).
var ConstTrue Expr = Const{Value: true}

// ConstFalse is the canonical false leaf (⊥).
var ConstFalse Expr = Const{Value: false}

// Not negates arg, with construction-time normalization: Not(Not(x)) = x,
// Not(ConstTrue) = ConstFalse, Not(ConstFalse) = ConstTrue.
type Not struct{ Arg Expr }

func (Not) isExpr() {}

// NewNot builds a Not node, applying double-negation and constant
// normalization per §3.3.
func NewNot(arg Expr) Expr {
	switch v := arg.(type) {
	case Not:
		return v.Arg
	case Const:
		return Const{Value: !v.Value}
	default:
		return Not{Arg: arg}
	}
}

// And is an n-ary (n>=2) conjunction. Nested And nodes are flattened and
// ConstTrue/ConstFalse children are folded at construction time.
type And struct{ Args []Expr }

func (And) isExpr() {}

// NewAnd builds an And node from args, applying §3.3's normalization:
// flatten nested And, drop ConstTrue members, short-circuit to ConstFalse
// if any member is ConstFalse, and collapse a single remaining member to
// itself rather than wrapping it. Returns an error if fewer than two args
// are passed; once normalized, a single remaining member (or none, giving
// ConstTrue) is not an error.
func NewAnd(args ...Expr) (Expr, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: And requires >= 2 args, got %d", ErrConstruction, len(args))
	}
	flat := flattenBool(args, func(e Expr) ([]Expr, bool) {
		if a, ok := e.(And); ok {
			return a.Args, true
		}
		return nil, false
	})

	out := make([]Expr, 0, len(flat))
	for _, e := range flat {
		if c, ok := e.(Const); ok {
			if !c.Value {
				return ConstFalse, nil
			}
			continue // drop ConstTrue
		}
		out = append(out, e)
	}
	out = dedupExprs(out)

	switch len(out) {
	case 0:
		return ConstTrue, nil
	case 1:
		return out[0], nil
	default:
		return And{Args: out}, nil
	}
}

// Or is an n-ary (n>=2) disjunction, with the dual normalization of And.
type Or struct{ Args []Expr }

func (Or) isExpr() {}

// NewOr builds an Or node with §3.3's normalization: flatten nested Or,
// drop ConstFalse members, short-circuit to ConstTrue if any member is
// ConstTrue, collapse a sole remaining member.
func NewOr(args ...Expr) (Expr, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: Or requires >= 2 args, got %d", ErrConstruction, len(args))
	}
	flat := flattenBool(args, func(e Expr) ([]Expr, bool) {
		if o, ok := e.(Or); ok {
			return o.Args, true
		}
		return nil, false
	})

	out := make([]Expr, 0, len(flat))
	for _, e := range flat {
		if c, ok := e.(Const); ok {
			if c.Value {
				return ConstTrue, nil
			}
			continue // drop ConstFalse
		}
		out = append(out, e)
	}
	out = dedupExprs(out)

	switch len(out) {
	case 0:
		return ConstFalse, nil
	case 1:
		return out[0], nil
	default:
		return Or{Args: out}, nil
	}
}

func flattenBool(args []Expr, unwrap func(Expr) ([]Expr, bool)) []Expr {
	out := make([]Expr, 0, len(args))
	for _, a := range args {
		if children, ok := unwrap(a); ok {
			out = append(out, flattenBool(children, unwrap)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// dedupExprs drops structurally-equal repeats, preserving the first
// occurrence's position — the construction-time idempotence And(φ,φ)=φ /
// Or(φ,φ)=φ requires (§8), on top of the flattening and constant-folding
// already applied by callers. Quadratic in len(args), which is always a
// single formula's argument list, never stream-sized data.
func dedupExprs(args []Expr) []Expr {
	out := make([]Expr, 0, len(args))
	for _, e := range args {
		dup := false
		for _, seen := range out {
			if cmp.Equal(seen, e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

// Exists existentially quantifies vars over the object ids present in a
// frame: the current frame by default, or the frame pinned by PinnedAt
// when set (supplemented feature: quantifier pinning).
type Exists struct {
	Vars     []string
	Body     Expr
	PinnedAt string // frame variable name; "" means the current frame
}

func (Exists) isExpr() {}

// Forall universally quantifies vars, dual to Exists.
type Forall struct {
	Vars     []string
	Body     Expr
	PinnedAt string
}

func (Forall) isExpr() {}

// NewExists builds an Exists node. vars must be non-empty.
func NewExists(vars []string, body Expr) (Expr, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: Exists requires a non-empty variable list", ErrConstruction)
	}
	return Exists{Vars: append([]string(nil), vars...), Body: body}, nil
}

// At re-binds the quantifier to range over the object ids of the frame
// pinned to frameVar instead of the current frame.
func (e Exists) At(frameVar string) Exists {
	e.PinnedAt = frameVar
	return e
}

// NewForall builds a Forall node. vars must be non-empty.
func NewForall(vars []string, body Expr) (Expr, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: Forall requires a non-empty variable list", ErrConstruction)
	}
	return Forall{Vars: append([]string(nil), vars...), Body: body}, nil
}

// At re-binds the quantifier to range over the object ids of the frame
// pinned to frameVar instead of the current frame.
func (f Forall) At(frameVar string) Forall {
	f.PinnedAt = frameVar
	return f
}

// Freeze captures the current frame's timestamp and/or frame number into
// named variables visible within Body. At least one of TimeVar/FrameVar
// must be set.
type Freeze struct {
	TimeVar  string // "" if not captured
	FrameVar string // "" if not captured
	Body     Expr
}

func (Freeze) isExpr() {}

// NewFreeze builds a Freeze node. At least one of timeVar/frameVar must be
// non-empty.
func NewFreeze(timeVar, frameVar string, body Expr) (Expr, error) {
	if timeVar == "" && frameVar == "" {
		return nil, fmt.Errorf("%w: Freeze requires at least one of timeVar/frameVar", ErrConstruction)
	}
	return Freeze{TimeVar: timeVar, FrameVar: frameVar, Body: body}, nil
}

// IdCompare compares two bound object identifiers for equality.
type IdCompare struct {
	A, B string
	Op   CompareOp // EQ or NE only
}

func (IdCompare) isExpr() {}

// NewIdEq builds IdCompare(a,b,EQ).
func NewIdEq(a, b string) Expr { return IdCompare{A: a, B: b, Op: EQ} }

// NewIdNe builds IdCompare(a,b,NE).
func NewIdNe(a, b string) Expr { return IdCompare{A: a, B: b, Op: NE} }
