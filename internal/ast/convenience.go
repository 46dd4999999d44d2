package ast

// TimeBoundBuilder chains a frozen time variable to a comparison operator
// and bound, producing a TimeBoundExpr — the §4.C "TimeVar − C_TIME"
// convenience.
type TimeBoundBuilder struct{ timeVar string }

// TimeVar starts a TimeBoundBuilder for the named frozen time variable.
func TimeVar(name string) TimeBoundBuilder { return TimeBoundBuilder{timeVar: name} }

// Lt builds `timeVar - C_TIME < bound`.
func (b TimeBoundBuilder) Lt(bound float64) (Expr, error) { return NewTimeBound(b.timeVar, LT, bound) }

// Le builds `timeVar - C_TIME <= bound`.
func (b TimeBoundBuilder) Le(bound float64) (Expr, error) { return NewTimeBound(b.timeVar, LE, bound) }

// Gt builds `timeVar - C_TIME > bound`.
func (b TimeBoundBuilder) Gt(bound float64) (Expr, error) { return NewTimeBound(b.timeVar, GT, bound) }

// Ge builds `timeVar - C_TIME >= bound`.
func (b TimeBoundBuilder) Ge(bound float64) (Expr, error) { return NewTimeBound(b.timeVar, GE, bound) }

// FrameBoundBuilder is the frame-number analogue of TimeBoundBuilder.
type FrameBoundBuilder struct{ frameVar string }

// FrameVar starts a FrameBoundBuilder for the named frozen frame variable.
func FrameVar(name string) FrameBoundBuilder { return FrameBoundBuilder{frameVar: name} }

// Lt builds `frameVar - C_FRAME < bound`.
func (b FrameBoundBuilder) Lt(bound int) (Expr, error) { return NewFrameBound(b.frameVar, LT, bound) }

// Le builds `frameVar - C_FRAME <= bound`.
func (b FrameBoundBuilder) Le(bound int) (Expr, error) { return NewFrameBound(b.frameVar, LE, bound) }

// Gt builds `frameVar - C_FRAME > bound`.
func (b FrameBoundBuilder) Gt(bound int) (Expr, error) { return NewFrameBound(b.frameVar, GT, bound) }

// Ge builds `frameVar - C_FRAME >= bound`.
func (b FrameBoundBuilder) Ge(bound int) (Expr, error) { return NewFrameBound(b.frameVar, GE, bound) }

// PinBuilder chains a time and/or frame variable name to Dot, producing a
// Freeze node — the §4.C "Pin(timeVar?, frameVar?).dot(body)" convenience.
type PinBuilder struct{ timeVar, frameVar string }

// Pin starts a PinBuilder. Either argument may be "" but not both.
func Pin(timeVar, frameVar string) PinBuilder {
	return PinBuilder{timeVar: timeVar, frameVar: frameVar}
}

// Dot builds the Freeze node capturing this builder's variables around body.
func (p PinBuilder) Dot(body Expr) (Expr, error) {
	return NewFreeze(p.timeVar, p.frameVar, body)
}
