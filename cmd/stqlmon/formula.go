package main

import (
	"fmt"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
)

// buildDemoFormula builds, in Go code, the formula §6 says a surface
// parser — not present in this module — would otherwise produce:
//
//	freeze t, f in
//	  frame[f] - current <= withinFrames and
//	  eventually (exists x. class[x] = targetClass)
//
// "within withinFrames frames from now, an object of targetClass
// eventually appears" — a bounded-future formula, so it stays
// online-monitorable despite using Eventually (a bare Eventually's
// horizon is Unbounded; wrapping it in a FrameBound-bearing And under a
// Freeze is what tightens it back down, per internal/requirements).
func buildDemoFormula(targetClass, withinFrames int) (ast.Expr, error) {
	exists, err := ast.NewExists([]string{"x"}, mustClassEqLiteral(targetClass))
	if err != nil {
		return nil, fmt.Errorf("build demo formula: %w", err)
	}
	eventually := ast.NewEventually(exists)

	bound, err := ast.NewFrameBound("f", ast.LE, withinFrames)
	if err != nil {
		return nil, fmt.Errorf("build demo formula: %w", err)
	}

	body, err := ast.NewAnd(bound, eventually)
	if err != nil {
		return nil, fmt.Errorf("build demo formula: %w", err)
	}

	frozen, err := ast.NewFreeze("t", "f", body)
	if err != nil {
		return nil, fmt.Errorf("build demo formula: %w", err)
	}
	return frozen, nil
}

func mustClassEqLiteral(class int) ast.Expr {
	e, err := ast.NewClassCmp("x", ast.EQ, ast.ClassLiteral(class))
	if err != nil {
		panic(err) // EQ is always accepted by NewClassCmp
	}
	return e
}
