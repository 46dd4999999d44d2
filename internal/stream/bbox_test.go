package stream

import (
	"errors"
	"math"
	"testing"
)

func TestNewBoundingBoxValid(t *testing.T) {
	b, err := NewBoundingBox(0, 10, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Width() != 10 || b.Height() != 5 {
		t.Errorf("Width/Height = %v/%v, want 10/5", b.Width(), b.Height())
	}
	if b.Area() != 50 {
		t.Errorf("Area = %v, want 50", b.Area())
	}
}

func TestNewBoundingBoxRejectsInverted(t *testing.T) {
	if _, err := NewBoundingBox(10, 0, 0, 5); !errors.Is(err, ErrInvalidBoundingBox) {
		t.Errorf("err = %v, want ErrInvalidBoundingBox", err)
	}
}

func TestNewBoundingBoxRejectsNonFinite(t *testing.T) {
	if _, err := NewBoundingBox(0, math.Inf(1), 0, 5); !errors.Is(err, ErrInvalidBoundingBox) {
		t.Errorf("err = %v, want ErrInvalidBoundingBox", err)
	}
	if _, err := NewBoundingBox(0, math.NaN(), 0, 5); !errors.Is(err, ErrInvalidBoundingBox) {
		t.Errorf("err = %v, want ErrInvalidBoundingBox", err)
	}
}

func TestCenter(t *testing.T) {
	b, _ := NewBoundingBox(0, 10, 0, 4)
	cx, cy := b.Center()
	if cx != 5 || cy != 2 {
		t.Errorf("Center() = (%v,%v), want (5,2)", cx, cy)
	}
}

func TestReferencePointPoints(t *testing.T) {
	b, _ := NewBoundingBox(0, 10, 0, 4)
	cases := []struct {
		rp   ReferencePoint
		x, y float64
	}{
		{Center, 5, 2},
		{LeftMargin, 0, 2},
		{RightMargin, 10, 2},
		{TopMargin, 5, 0},
		{BottomMargin, 5, 4},
	}
	for _, c := range cases {
		x, y := c.rp.Point(b)
		if x != c.x || y != c.y {
			t.Errorf("%s.Point(b) = (%v,%v), want (%v,%v)", c.rp, x, y, c.x, c.y)
		}
	}
}

func TestReferencePointString(t *testing.T) {
	if got := Center.String(); got != "center" {
		t.Errorf("Center.String() = %q, want center", got)
	}
	if got := ReferencePoint(99).String(); got == "" {
		t.Errorf("unknown reference point should still render a non-empty string")
	}
}
