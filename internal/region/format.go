package region

import (
	"fmt"
	"strings"
)

// Format renders a Region as a canonical, human-readable string: "empty",
// "universe", a single bracketed rectangle, or a "union(...)" of
// rectangles. Brackets indicate side openness: "(" / ")" for open, "["
// / "]" for closed, matching interval notation.
//
// This is a supplemental diagnostic rendering, not a wire format; nothing
// in this package parses it back.
func Format(r Region) string {
	switch v := r.(type) {
	case emptyRegion:
		return "empty"
	case universeRegion:
		return "universe"
	case BBox:
		return formatBBox(v)
	case Union:
		parts := make([]string, len(v.Members))
		for i, b := range v.Members {
			parts[i] = formatBBox(b)
		}
		return "union(" + strings.Join(parts, ", ") + ")"
	default:
		panic(fmt.Sprintf("region: unhandled Region type %T", r))
	}
}

func formatBBox(b BBox) string {
	lb, rb := "[", "]"
	if b.LOpen {
		lb = "("
	}
	if b.ROpen {
		rb = ")"
	}
	tb, bb := "[", "]"
	if b.TOpen {
		tb = "("
	}
	if b.BOpen {
		bb = ")"
	}
	return fmt.Sprintf("%s%g,%g%s x %s%g,%g%s", lb, b.Xmin, b.Xmax, rb, tb, b.Ymin, b.Ymax, bb)
}
