package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fenwick-robotics/stqlmon/internal/stream"
)

// objectDTO is the on-disk shape of one detected object. No wire format is
// defined by internal/stream itself (its Frame/Object fields are
// unexported or intentionally minimal); this is the demo's own decoding
// boundary, same spirit as the teacher's own JSON DTOs in cmd/sweep.
type objectDTO struct {
	Class       int     `json:"class"`
	Probability float64 `json:"probability"`
	Xmin        float64 `json:"xmin"`
	Xmax        float64 `json:"xmax"`
	Ymin        float64 `json:"ymin"`
	Ymax        float64 `json:"ymax"`
}

type frameDTO struct {
	Timestamp float64              `json:"timestamp"`
	FrameNum  int                  `json:"frame_num"`
	Width     float64              `json:"width"`
	Height    float64              `json:"height"`
	Objects   map[string]objectDTO `json:"objects"`
}

// decodeFrames reads a JSON array of frameDTO from r and converts each one
// into a validated stream.Frame via NewFrame/NewObject.
func decodeFrames(r io.Reader) ([]stream.Frame, error) {
	var dtos []frameDTO
	if err := json.NewDecoder(r).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decode frame stream: %w", err)
	}

	frames := make([]stream.Frame, 0, len(dtos))
	for i, d := range dtos {
		objects := make(map[string]stream.Object, len(d.Objects))
		for id, o := range d.Objects {
			bbox, err := stream.NewBoundingBox(o.Xmin, o.Xmax, o.Ymin, o.Ymax)
			if err != nil {
				return nil, fmt.Errorf("frame %d, object %q: %w", i, id, err)
			}
			obj, err := stream.NewObject(o.Class, o.Probability, bbox)
			if err != nil {
				return nil, fmt.Errorf("frame %d, object %q: %w", i, id, err)
			}
			objects[id] = obj
		}
		f, err := stream.NewFrame(d.Timestamp, d.FrameNum, d.Width, d.Height, objects)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}
