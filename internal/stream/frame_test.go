package stream

import (
	"errors"
	"testing"
)

func TestNewObjectRejectsBadProbability(t *testing.T) {
	bbox, _ := NewBoundingBox(0, 1, 0, 1)
	if _, err := NewObject(0, 1.5, bbox); !errors.Is(err, ErrInvalidObject) {
		t.Errorf("err = %v, want ErrInvalidObject", err)
	}
	if _, err := NewObject(0, -0.1, bbox); !errors.Is(err, ErrInvalidObject) {
		t.Errorf("err = %v, want ErrInvalidObject", err)
	}
}

func TestNewFrameDefensiveCopy(t *testing.T) {
	bbox, _ := NewBoundingBox(0, 1, 0, 1)
	obj, _ := NewObject(2, 0.9, bbox)
	objs := map[string]Object{"car-1": obj}

	f, err := NewFrame(0.1, 1, 640, 480, objs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	objs["car-2"] = obj // mutate caller's map after construction
	if f.NumObjects() != 1 {
		t.Errorf("NumObjects() = %d, want 1 (frame should not see later caller mutation)", f.NumObjects())
	}
	if _, ok := f.Object("car-2"); ok {
		t.Errorf("frame should not contain car-2")
	}
	got, ok := f.Object("car-1")
	if !ok || got != obj {
		t.Errorf("Object(car-1) = (%v,%v), want (%v,true)", got, ok, obj)
	}
}

func TestNewFrameRejectsInvalidFields(t *testing.T) {
	if _, err := NewFrame(0, -1, 640, 480, nil); err == nil {
		t.Errorf("expected error for negative frame_num")
	}
	if _, err := NewFrame(0, 0, 0, 480, nil); err == nil {
		t.Errorf("expected error for non-positive width")
	}
}

func TestFrameUniverse(t *testing.T) {
	f, err := NewFrame(0, 0, 640, 480, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u := f.Universe()
	if u.Xmin != 0 || u.Xmax != 640 || u.Ymin != 0 || u.Ymax != 480 {
		t.Errorf("Universe() = %+v, want [0,640]x[0,480]", u)
	}
	if u.LOpen || u.ROpen || u.TOpen || u.BOpen {
		t.Errorf("Universe() should be fully closed")
	}
}

func TestValidateSuccessor(t *testing.T) {
	f0, _ := NewFrame(0.0, 0, 640, 480, nil)
	f1, _ := NewFrame(0.1, 1, 640, 480, nil)
	if err := ValidateSuccessor(f0, f1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	fBack, _ := NewFrame(0.05, 0, 640, 480, nil)
	if err := ValidateSuccessor(f1, fBack); err == nil {
		t.Errorf("expected error for decreasing frame_num")
	}

	fSame, _ := NewFrame(0.2, 1, 640, 480, nil)
	if err := ValidateSuccessor(f1, fSame); err == nil {
		t.Errorf("expected error for resubmitted frame_num")
	}

	fTimeBack, _ := NewFrame(0.0, 2, 640, 480, nil)
	if err := ValidateSuccessor(f1, fTimeBack); err == nil {
		t.Errorf("expected error for decreasing timestamp")
	}
}
