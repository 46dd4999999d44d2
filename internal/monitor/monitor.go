// Package monitor implements §4.F's online monitor: a single-threaded,
// per-frame evaluation loop over a compiled formula, buffering exactly as
// much history and horizon as internal/requirements says the formula needs.
package monitor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fenwick-robotics/stqlmon/internal/ast"
	"github.com/fenwick-robotics/stqlmon/internal/eval"
	"github.com/fenwick-robotics/stqlmon/internal/obslog"
	"github.com/fenwick-robotics/stqlmon/internal/requirements"
	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

// ErrUnmonitorable is returned by NewMonitor when a formula's horizon is
// unbounded (§7).
var ErrUnmonitorable = errors.New("monitor: formula is not online-monitorable")

// ErrOutOfOrder is the panic payload raised when a host offers a frame
// that violates stream.ValidateSuccessor — a usage error by the caller,
// not a normal evaluation outcome, per §5's ordering requirement.
var ErrOutOfOrder = errors.New("monitor: frame supplied out of order")

// WarmupPolicy selects how a Monitor reports its verdict before enough
// history/horizon has been buffered to evaluate for real.
type WarmupPolicy int

const (
	// WarmupFalse reports ViolatedForSure (and false on the boolean
	// surface) during warm-up.
	WarmupFalse WarmupPolicy = iota
	// WarmupUnknown reports Unknown during warm-up.
	WarmupUnknown
)

// Config configures a Monitor. It is the STQL analogue of the teacher's
// internal/config tuning parameters: one plain struct, no JSON-pointer
// optionality, since a monitor only has these two knobs.
type Config struct {
	FPS          float64
	WarmupPolicy WarmupPolicy
}

// DefaultConfig returns a Config with WarmupPolicy set to WarmupFalse and
// FPS set to fps (there is no default frame rate; callers supply it).
func DefaultConfig(fps float64) Config {
	return Config{FPS: fps, WarmupPolicy: WarmupFalse}
}

// Verdict is the tri-state evaluation outcome per §4.F.
type Verdict int

const (
	Unknown Verdict = iota
	SatisfiedForSure
	ViolatedForSure
)

func (v Verdict) String() string {
	switch v {
	case SatisfiedForSure:
		return "satisfied"
	case ViolatedForSure:
		return "violated"
	default:
		return "unknown"
	}
}

// Monitor evaluates one compiled formula over a stream of frames offered
// one at a time, buffering exactly requirements.Requirements.History past
// frames and requirements.Requirements.Horizon future frames.
type Monitor struct {
	id           uuid.UUID
	formula      ast.Expr
	requirements requirements.Requirements
	cfg          Config

	history    historyBuffer
	horizon    *frameQueue
	lastFrame  *stream.Frame
	framesSeen int
	stats      *Stats
}

// NewMonitor compiles formula against cfg.FPS and builds a Monitor,
// rejecting formulas with an unbounded horizon (§7).
func NewMonitor(formula ast.Expr, cfg Config) (*Monitor, error) {
	reqs, err := requirements.Analyze(formula, cfg.FPS)
	if err != nil {
		return nil, err
	}
	if !requirements.IsMonitorable(reqs) {
		return nil, fmt.Errorf("%w: horizon is unbounded", ErrUnmonitorable)
	}

	var hist historyBuffer
	if reqs.History.IsFinite() {
		hist = newBoundedHistory(reqs.History.Frames())
	} else {
		hist = newUnboundedHistory()
	}

	m := &Monitor{
		id:           uuid.New(),
		formula:      formula,
		requirements: reqs,
		cfg:          cfg,
		history:      hist,
		horizon:      newFrameQueue(reqs.Horizon.Frames() + 1),
		stats:        NewStats(),
	}
	obslog.Logf("monitor %s: constructed, history=%s horizon=%s", m.id, reqs.History, reqs.Horizon)
	return m, nil
}

// ID returns the monitor's run identifier, for log correlation across the
// frames it evaluates.
func (m *Monitor) ID() uuid.UUID { return m.id }

// Requirements returns the buffering requirements this Monitor was built
// from.
func (m *Monitor) Requirements() requirements.Requirements { return m.requirements }

// Stats returns the monitor's running evaluation-latency diagnostics.
func (m *Monitor) Stats() *Stats { return m.stats }

// EvaluateVerdict offers f to the monitor and returns its tri-state
// verdict, per §4.F's per-frame protocol. It panics (wrapping
// ErrOutOfOrder) if f violates stream.ValidateSuccessor against the
// previously offered frame — a usage error, not a normal outcome.
func (m *Monitor) EvaluateVerdict(f stream.Frame) Verdict {
	if m.lastFrame != nil {
		if err := stream.ValidateSuccessor(*m.lastFrame, f); err != nil {
			panic(fmt.Errorf("%w: %v", ErrOutOfOrder, err))
		}
	}
	m.lastFrame = &f
	m.framesSeen++

	m.horizon.PushBack(f)
	if !m.horizon.Full() {
		obslog.Logf("monitor %s: warm-up, horizon %d/%d", m.id, m.horizon.Size(), m.requirements.Horizon.Frames()+1)
		return m.warmupVerdict()
	}

	candidate := m.horizon.PopFront()
	if !m.history.Full() {
		m.history.Add(candidate)
		obslog.Logf("monitor %s: warm-up, history %d", m.id, m.history.Size())
		return m.warmupVerdict()
	}

	window := make([]stream.Frame, 0, m.history.Size()+1+m.horizon.Size())
	window = append(window, m.history.All()...)
	current := len(window)
	window = append(window, candidate)
	window = append(window, m.horizon.All()...)

	ctx := eval.NewContext(window, current)
	start := time.Now()
	satisfied := eval.Evaluate(m.formula, ctx)
	m.stats.RecordEvaluation(time.Since(start), candidate.NumObjects())
	m.history.Add(candidate)

	if satisfied {
		return SatisfiedForSure
	}
	return ViolatedForSure
}

// Evaluate is the primary boolean surface (§6): true iff the verdict is
// SatisfiedForSure. Both Unknown and ViolatedForSure collapse to false,
// regardless of Config.WarmupPolicy — WarmupPolicy only changes what
// EvaluateVerdict reports during warm-up, not this boolean projection.
func (m *Monitor) Evaluate(f stream.Frame) bool {
	return m.EvaluateVerdict(f) == SatisfiedForSure
}

// Run offers f and recovers an ErrOutOfOrder panic into a returned error,
// mirroring eval.Run's boundary convention. Any other panic is re-raised.
func (m *Monitor) Run(f stream.Frame) (verdict Verdict, err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok && errors.Is(asErr, ErrOutOfOrder) {
				err = asErr
				return
			}
			panic(r)
		}
	}()
	return m.EvaluateVerdict(f), nil
}

func (m *Monitor) warmupVerdict() Verdict {
	if m.cfg.WarmupPolicy == WarmupUnknown {
		return Unknown
	}
	return ViolatedForSure
}
