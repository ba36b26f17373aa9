package parse

import "github.com/nvr-ai/go-yolo/boxes"

// Candidate is a decoded prediction before suppression, in center-size form
// and network-input pixel space.
type Candidate struct {
	// CenterX, CenterY locate the box center.
	CenterX, CenterY float32
	// Width, Height are the box extents.
	Width, Height float32
	// Confidence is in [0, 1].
	Confidence float32
	// ClassID is the index of the best-scoring class.
	ClassID int
}

// Rect converts the candidate to corner form for overlap computation.
func (c Candidate) Rect() boxes.Rect {
	return boxes.Rect{
		X1: c.CenterX - c.Width/2,
		Y1: c.CenterY - c.Height/2,
		X2: c.CenterX + c.Width/2,
		Y2: c.CenterY + c.Height/2,
	}
}

// Object is a final detection in top-left corner form, clamped to the
// network input frame. This is the only type that crosses the output
// boundary.
type Object struct {
	// Left is the clamped x coordinate of the top-left corner.
	Left float32 `json:"left" yaml:"left"`
	// Top is the clamped y coordinate of the top-left corner.
	Top float32 `json:"top" yaml:"top"`
	// Width is at least one pixel and never past the frame edge.
	Width float32 `json:"width" yaml:"width"`
	// Height is at least one pixel and never past the frame edge.
	Height float32 `json:"height" yaml:"height"`
	// Confidence is the decoded confidence, passed through unchanged.
	Confidence float32 `json:"confidence" yaml:"confidence"`
	// ClassID is the predicted class index, passed through unchanged.
	ClassID int `json:"class_id" yaml:"class_id"`
}
