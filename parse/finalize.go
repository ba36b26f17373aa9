package parse

import (
	"image"

	"github.com/nvr-ai/go-yolo/boxes"
)

// finalize converts surviving candidates from center-size to top-left
// corner form and clamps them to the network input frame.
//
// Left and top are clamped to [0, W-1] and [0, H-1]; width and height to
// [1, W-left] and [1, H-top], so every emitted box covers at least one
// pixel and never extends past the frame edge. Confidence and class pass
// through unchanged.
func finalize(candidates []Candidate, network image.Point) []Object {
	w := float32(network.X)
	h := float32(network.Y)

	objects := make([]Object, len(candidates))
	for i, c := range candidates {
		left := boxes.Clamp(c.CenterX-c.Width/2, 0, w-1)
		top := boxes.Clamp(c.CenterY-c.Height/2, 0, h-1)
		objects[i] = Object{
			Left:       left,
			Top:        top,
			Width:      boxes.Clamp(c.Width, 1, w-left),
			Height:     boxes.Clamp(c.Height, 1, h-top),
			Confidence: c.Confidence,
			ClassID:    c.ClassID,
		}
	}
	return objects
}
