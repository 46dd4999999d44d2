// Package stream defines the typed shape of a perception stream: frames,
// detected objects, bounding boxes, and reference points on a box.
//
// Origin is the top-left of the frame; y increases downward.
package stream

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBoundingBox is returned when a BoundingBox's coordinates are
// out of order or non-finite.
var ErrInvalidBoundingBox = errors.New("stream: invalid bounding box")

// BoundingBox is an axis-aligned rectangle: (xmin, xmax, ymin, ymax).
type BoundingBox struct {
	Xmin, Xmax, Ymin, Ymax float64
}

// NewBoundingBox validates and constructs a BoundingBox.
func NewBoundingBox(xmin, xmax, ymin, ymax float64) (BoundingBox, error) {
	b := BoundingBox{Xmin: xmin, Xmax: xmax, Ymin: ymin, Ymax: ymax}
	if err := b.Validate(); err != nil {
		return BoundingBox{}, err
	}
	return b, nil
}

// Validate reports whether the box's coordinates are well-formed: finite,
// and xmin<=xmax, ymin<=ymax.
func (b BoundingBox) Validate() error {
	for _, v := range [...]float64{b.Xmin, b.Xmax, b.Ymin, b.Ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate", ErrInvalidBoundingBox)
		}
	}
	if b.Xmin > b.Xmax {
		return fmt.Errorf("%w: xmin %v > xmax %v", ErrInvalidBoundingBox, b.Xmin, b.Xmax)
	}
	if b.Ymin > b.Ymax {
		return fmt.Errorf("%w: ymin %v > ymax %v", ErrInvalidBoundingBox, b.Ymin, b.Ymax)
	}
	return nil
}

// Width returns xmax - xmin.
func (b BoundingBox) Width() float64 { return b.Xmax - b.Xmin }

// Height returns ymax - ymin.
func (b BoundingBox) Height() float64 { return b.Ymax - b.Ymin }

// Area returns width * height. Openness of the box's boundary (tracked
// separately by internal/region) does not affect area.
func (b BoundingBox) Area() float64 { return b.Width() * b.Height() }

// Center returns the box's centroid (cx, cy).
func (b BoundingBox) Center() (cx, cy float64) {
	return (b.Xmin + b.Xmax) / 2, (b.Ymin + b.Ymax) / 2
}

// ReferencePoint names a canonical point on a bounding box.
type ReferencePoint int

const (
	Center ReferencePoint = iota
	LeftMargin
	RightMargin
	TopMargin
	BottomMargin
)

// String renders the reference point kind for debugging.
func (r ReferencePoint) String() string {
	switch r {
	case Center:
		return "center"
	case LeftMargin:
		return "left_margin"
	case RightMargin:
		return "right_margin"
	case TopMargin:
		return "top_margin"
	case BottomMargin:
		return "bottom_margin"
	default:
		return fmt.Sprintf("reference_point(%d)", int(r))
	}
}

// Point evaluates the reference point on bbox, per §3.1:
//
//	Center       = (cx, cy)
//	LeftMargin   = (xmin, cy)
//	RightMargin  = (xmax, cy)
//	TopMargin    = (cx, ymin)
//	BottomMargin = (cx, ymax)
func (r ReferencePoint) Point(bbox BoundingBox) (x, y float64) {
	cx, cy := bbox.Center()
	switch r {
	case LeftMargin:
		return bbox.Xmin, cy
	case RightMargin:
		return bbox.Xmax, cy
	case TopMargin:
		return cx, bbox.Ymin
	case BottomMargin:
		return cx, bbox.Ymax
	default:
		return cx, cy
	}
}
