// Package report renders a finished monitor run as a verdict-over-frames
// timeline, in both a static PNG (gonum/plot) and an interactive HTML
// chart (go-echarts), mirroring the teacher's two parallel visualization
// surfaces for the same underlying data (internal/lidar/monitor's
// GridPlotter PNGs and echarts_handlers.go's HTML charts).
package report

import "fmt"

// Sample is one frame's recorded verdict, keyed by frame number so gaps
// from out-of-order or skipped frames are still plottable on a numeric
// x-axis.
type Sample struct {
	FrameNumber int
	Timestamp   float64
	Verdict     int // mirrors monitor.Verdict's int values; see verdictLabel
}

// Verdict labels, duplicated from internal/monitor.Verdict's values
// rather than importing internal/monitor, so report stays usable against
// any int-coded tri-state without a hard package dependency.
const (
	VerdictUnknown = iota
	VerdictSatisfied
	VerdictViolated
)

// Timeline is an ordered sequence of verdict samples from one monitor
// run, plus the label it should be reported under (e.g. the formula's
// string form or a run ID).
type Timeline struct {
	Label   string
	Samples []Sample
}

// NewTimeline builds an empty Timeline under the given label.
func NewTimeline(label string) *Timeline {
	return &Timeline{Label: label}
}

// Record appends one frame's verdict to the timeline.
func (tl *Timeline) Record(frameNumber int, timestamp float64, verdict int) {
	tl.Samples = append(tl.Samples, Sample{FrameNumber: frameNumber, Timestamp: timestamp, Verdict: verdict})
}

func verdictLabel(v int) string {
	switch v {
	case VerdictSatisfied:
		return "satisfied"
	case VerdictViolated:
		return "violated"
	default:
		return "unknown"
	}
}

func verdictColorHex(v int) string {
	switch v {
	case VerdictSatisfied:
		return "#35b779"
	case VerdictViolated:
		return "#ff5252"
	default:
		return "#9e9e9e"
	}
}

func (tl *Timeline) subtitle() string {
	counts := map[int]int{}
	for _, s := range tl.Samples {
		counts[s.Verdict]++
	}
	return fmt.Sprintf("frames=%d satisfied=%d violated=%d unknown=%d",
		len(tl.Samples), counts[VerdictSatisfied], counts[VerdictViolated], counts[VerdictUnknown])
}
