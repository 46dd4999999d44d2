package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// verdictColor mirrors gridplotter.go's generateColors palette approach,
// but with fixed semantic colors instead of a generated hue spread: a
// verdict timeline has exactly three categories, not an arbitrary count
// of azimuth bins.
func verdictColor(v int) color.Color {
	switch v {
	case VerdictSatisfied:
		return color.RGBA{R: 0x35, G: 0xb7, B: 0x79, A: 255}
	case VerdictViolated:
		return color.RGBA{R: 0xff, G: 0x52, B: 0x52, A: 255}
	default:
		return color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 255}
	}
}

// PlotPNG renders tl as a step line of verdict-over-frame-number, with
// category scatter overlays, to a PNG at path. Adapted from
// generateRingPlot's line-per-category-plus-legend structure: here the
// "categories" are the three Verdict values rather than azimuth bins.
func PlotPNG(tl *Timeline, path string) error {
	if len(tl.Samples) == 0 {
		return fmt.Errorf("report: timeline %q has no samples", tl.Label)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s — verdict timeline", tl.Label)
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Verdict"

	stepPts := make(plotter.XYs, len(tl.Samples))
	for i, s := range tl.Samples {
		stepPts[i] = plotter.XY{X: float64(s.FrameNumber), Y: float64(s.Verdict)}
	}
	line, err := plotter.NewLine(stepPts)
	if err != nil {
		return fmt.Errorf("report: build step line: %w", err)
	}
	line.StepStyle = plotter.PostStep
	line.Color = color.Gray{Y: 160}
	line.Width = vg.Points(1)
	p.Add(line)

	byVerdict := map[int]plotter.XYs{}
	for _, s := range tl.Samples {
		byVerdict[s.Verdict] = append(byVerdict[s.Verdict], plotter.XY{X: float64(s.FrameNumber), Y: float64(s.Verdict)})
	}
	for _, v := range []int{VerdictUnknown, VerdictSatisfied, VerdictViolated} {
		pts, ok := byVerdict[v]
		if !ok || len(pts) == 0 {
			continue
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("report: build %s scatter: %w", verdictLabel(v), err)
		}
		scatter.Color = verdictColor(v)
		scatter.Radius = vg.Points(2.5)
		p.Add(scatter)
		p.Legend.Add(verdictLabel(v), scatter)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save timeline png: %w", err)
	}
	return nil
}
