package monitor

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats accumulates per-frame evaluation diagnostics for a Monitor run:
// evaluation latency and quantifier-instantiation counts, mirroring the
// teacher's PacketStats (thread-safe counters with a GetAndReset/snapshot
// style), retargeted at monitor diagnostics instead of packet throughput.
type Stats struct {
	mu          sync.Mutex
	latenciesNs []float64
	instCounts  []float64
}

// NewStats builds an empty Stats accumulator.
func NewStats() *Stats { return &Stats{} }

// RecordEvaluation appends one frame's observed evaluation latency and
// quantifier-instantiation count.
func (s *Stats) RecordEvaluation(latency time.Duration, instantiations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latenciesNs = append(s.latenciesNs, float64(latency.Nanoseconds()))
	s.instCounts = append(s.instCounts, float64(instantiations))
}

// Snapshot is a point-in-time summary of a Stats accumulator.
//
// InstantiationsP95 is a proxy, not an exact count: the 95th percentile of
// the evaluated frame's live object count, the size of the set any
// top-level quantifier ranges over. Counting the fully-expanded
// instantiation tuples Exists/Forall actually walk would mean threading a
// counter through every eval.Evaluate call; this proxy is cheap to record
// from the monitor loop alone and tracks fan-out closely enough for
// diagnostics.
type Snapshot struct {
	Count             int
	LatencyP50Ns      float64
	LatencyP95Ns      float64
	LatencyP99Ns      float64
	InstantiationsP95 float64
}

// Snapshot computes percentile summaries over every observation recorded
// so far. gonum's stat.Quantile requires its input sorted ascending.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.latenciesNs)
	if n == 0 {
		return Snapshot{}
	}

	latencies := append([]float64(nil), s.latenciesNs...)
	sort.Float64s(latencies)
	insts := append([]float64(nil), s.instCounts...)
	sort.Float64s(insts)

	return Snapshot{
		Count:             n,
		LatencyP50Ns:      stat.Quantile(0.50, stat.Empirical, latencies, nil),
		LatencyP95Ns:      stat.Quantile(0.95, stat.Empirical, latencies, nil),
		LatencyP99Ns:      stat.Quantile(0.99, stat.Empirical, latencies, nil),
		InstantiationsP95: stat.Quantile(0.95, stat.Empirical, insts, nil),
	}
}
