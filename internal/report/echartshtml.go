package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive verdict-over-frame-number chart for tl
// to w: one colored scatter series per Verdict category sharing a single
// numeric axis pair, the same multi-series-one-axis-pair structure as
// handleForegroundFrameChart's background/foreground overlay (there two
// categories, here three).
func RenderHTML(tl *Timeline, w io.Writer) error {
	if len(tl.Samples) == 0 {
		return fmt.Errorf("report: timeline %q has no samples", tl.Label)
	}

	minFrame, maxFrame := math.Inf(1), math.Inf(-1)
	byVerdict := map[int][]opts.ScatterData{}
	for _, s := range tl.Samples {
		x := float64(s.FrameNumber)
		if x < minFrame {
			minFrame = x
		}
		if x > maxFrame {
			maxFrame = x
		}
		byVerdict[s.Verdict] = append(byVerdict[s.Verdict], opts.ScatterData{Value: []interface{}{x, float64(s.Verdict)}})
	}
	pad := (maxFrame - minFrame) * 0.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: tl.Label, Theme: "dark", Width: "1200px", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s — verdict timeline", tl.Label), Subtitle: tl.subtitle()}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: minFrame - pad, Max: maxFrame + pad, Name: "Frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -0.5, Max: 2.5, Name: "Verdict", NameLocation: "middle", NameGap: 30}),
	)

	for _, v := range []int{VerdictUnknown, VerdictSatisfied, VerdictViolated} {
		pts, ok := byVerdict[v]
		if !ok || len(pts) == 0 {
			continue
		}
		scatter.AddSeries(verdictLabel(v), pts,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: verdictColorHex(v)}),
		)
	}

	return scatter.Render(w)
}
