// Command stqlmon replays a JSON-encoded frame stream through a formula
// built directly from internal/ast factories — §6 draws the line at no
// surface grammar in the core, and this demo honors it by never parsing
// formula text — and reports the resulting verdict timeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fenwick-robotics/stqlmon/internal/monitor"
	"github.com/fenwick-robotics/stqlmon/internal/report"
)

func main() {
	framesPath := flag.String("frames", "", "path to a JSON array of frames (required)")
	fps := flag.Float64("fps", 30, "stream frame rate, used to translate any TimeBound seconds into frames")
	targetClass := flag.Int("class", 1, "object class the demo formula watches for")
	withinFrames := flag.Int("within", 5, "demo formula's bounded-future window, in frames")
	warmupUnknown := flag.Bool("warmup-unknown", false, "report Unknown instead of false/violated during warm-up")
	pngOut := flag.String("png", "", "optional path to write a PNG verdict timeline")
	htmlOut := flag.String("html", "", "optional path to write an HTML verdict timeline")
	flag.Parse()

	if *framesPath == "" {
		log.Fatal("stqlmon: -frames is required")
	}

	f, err := os.Open(*framesPath)
	if err != nil {
		log.Fatalf("stqlmon: open frames file: %v", err)
	}
	frames, err := decodeFrames(f)
	f.Close()
	if err != nil {
		log.Fatalf("stqlmon: %v", err)
	}

	formula, err := buildDemoFormula(*targetClass, *withinFrames)
	if err != nil {
		log.Fatalf("stqlmon: %v", err)
	}

	cfg := monitor.DefaultConfig(*fps)
	if *warmupUnknown {
		cfg.WarmupPolicy = monitor.WarmupUnknown
	}
	m, err := monitor.NewMonitor(formula, cfg)
	if err != nil {
		log.Fatalf("stqlmon: %v", err)
	}
	log.Printf("stqlmon: monitor %s ready, history=%s horizon=%s", m.ID(), m.Requirements().History, m.Requirements().Horizon)

	tl := report.NewTimeline(fmt.Sprintf("class=%d within=%d frames", *targetClass, *withinFrames))
	for _, frame := range frames {
		verdict, err := m.Run(frame)
		if err != nil {
			log.Fatalf("stqlmon: frame %d: %v", frame.FrameNum, err)
		}
		fmt.Printf("frame %d: %s\n", frame.FrameNum, verdict)
		tl.Record(frame.FrameNum, frame.Timestamp, int(verdict))
	}

	snap := m.Stats().Snapshot()
	log.Printf("stqlmon: %d evaluations, latency p50=%.0fns p95=%.0fns p99=%.0fns, instantiations p95=%.1f",
		snap.Count, snap.LatencyP50Ns, snap.LatencyP95Ns, snap.LatencyP99Ns, snap.InstantiationsP95)

	if *pngOut != "" {
		if err := report.PlotPNG(tl, *pngOut); err != nil {
			log.Fatalf("stqlmon: %v", err)
		}
	}
	if *htmlOut != "" {
		out, err := os.Create(*htmlOut)
		if err != nil {
			log.Fatalf("stqlmon: %v", err)
		}
		err = report.RenderHTML(tl, out)
		out.Close()
		if err != nil {
			log.Fatalf("stqlmon: %v", err)
		}
	}
}
