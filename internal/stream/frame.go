package stream

import (
	"errors"
	"fmt"

	"github.com/fenwick-robotics/stqlmon/internal/region"
)

// ErrInvalidObject is returned when an Object's fields are out of range.
var ErrInvalidObject = errors.New("stream: invalid object")

// Object is a single detection within a frame.
type Object struct {
	Class       int
	Probability float64
	BBox        BoundingBox
}

// NewObject validates and constructs an Object. Probability must be in [0,1].
func NewObject(class int, probability float64, bbox BoundingBox) (Object, error) {
	if probability < 0 || probability > 1 {
		return Object{}, fmt.Errorf("%w: probability %v not in [0,1]", ErrInvalidObject, probability)
	}
	if err := bbox.Validate(); err != nil {
		return Object{}, err
	}
	return Object{Class: class, Probability: probability, BBox: bbox}, nil
}

// Frame is one sample of a perception stream: a timestamp, frame number,
// frame dimensions, and the objects detected in it, keyed by object id.
//
// A Frame is immutable after construction: NewFrame copies the supplied
// objects map, so later mutation of the caller's map has no effect.
type Frame struct {
	Timestamp float64
	FrameNum  int
	Width     float64
	Height    float64
	objects   map[string]Object
}

// NewFrame constructs a Frame, copying objects defensively. FrameNum must
// be non-negative and Width/Height must be positive.
func NewFrame(timestamp float64, frameNum int, width, height float64, objects map[string]Object) (Frame, error) {
	if frameNum < 0 {
		return Frame{}, fmt.Errorf("stream: frame_num must be >= 0, got %d", frameNum)
	}
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("stream: frame size must be positive, got %vx%v", width, height)
	}
	cp := make(map[string]Object, len(objects))
	for id, obj := range objects {
		cp[id] = obj
	}
	return Frame{Timestamp: timestamp, FrameNum: frameNum, Width: width, Height: height, objects: cp}, nil
}

// Object looks up an object by id. The bool reports whether it was present.
func (f Frame) Object(id string) (Object, bool) {
	obj, ok := f.objects[id]
	return obj, ok
}

// ObjectIDs returns the ids of every object present in the frame, in no
// particular order. Callers that need a stable order (e.g. quantifier
// instantiation) should sort the result themselves.
func (f Frame) ObjectIDs() []string {
	ids := make([]string, 0, len(f.objects))
	for id := range f.objects {
		ids = append(ids, id)
	}
	return ids
}

// NumObjects returns the number of objects present in the frame.
func (f Frame) NumObjects() int { return len(f.objects) }

// Universe returns the closed (0,Width) x (0,Height) rectangle covering
// the whole frame, per §4.B — the default domain for spatial expressions
// that don't bound themselves to a smaller region.
func (f Frame) Universe() region.BBox {
	return region.FrameUniverse(f.Width, f.Height)
}

// ValidateSuccessor checks that next may legally follow prev in a stream:
// frame numbers and timestamps must be non-decreasing, and a frame number
// equal to prev's (re-submission of the same frame) is rejected.
func ValidateSuccessor(prev, next Frame) error {
	if next.FrameNum < prev.FrameNum {
		return fmt.Errorf("stream: frame_num went backwards: %d after %d", next.FrameNum, prev.FrameNum)
	}
	if next.FrameNum == prev.FrameNum {
		return fmt.Errorf("stream: frame_num %d resubmitted", next.FrameNum)
	}
	if next.Timestamp < prev.Timestamp {
		return fmt.Errorf("stream: timestamp went backwards: %v after %v", next.Timestamp, prev.Timestamp)
	}
	return nil
}
