// Package layers - Named output tensors handed from an inference engine to
// the detection parser.
//
// The parser never runs a network; it only reads the float buffers an engine
// has already produced. Layer is the neutral hand-off shape, and the adapter
// constructors in this package build one from the tensor types of the
// supported runtimes without copying the underlying buffer.
package layers

import "github.com/pkg/errors"

// Layer describes one named output tensor of a detection model.
//
// Data is a contiguous row-major float32 buffer owned by the caller; it must
// stay alive for the duration of the parse call. Shape has rank 2 or 3, with
// an optional leading batch dimension of size 1.
type Layer struct {
	// Name of the output as exported in the model graph.
	Name string `json:"name" yaml:"name"`
	// Data is the raw tensor buffer.
	Data []float32 `json:"-" yaml:"-"`
	// Shape is the dimension array of the tensor.
	Shape []int `json:"shape" yaml:"shape"`
}

// Elements returns the number of scalars implied by the shape.
func (l Layer) Elements() int {
	if len(l.Shape) == 0 {
		return 0
	}
	n := 1
	for _, d := range l.Shape {
		n *= d
	}
	return n
}

// Validate checks that the buffer length matches the shape so downstream
// index arithmetic cannot run past the end of Data.
func (l Layer) Validate() error {
	for _, d := range l.Shape {
		if d <= 0 {
			return errors.Errorf("layer %q has non-positive dimension in shape %v", l.Name, l.Shape)
		}
	}
	if got, want := len(l.Data), l.Elements(); got != want {
		return errors.Errorf("layer %q has %d elements, shape %v implies %d", l.Name, got, l.Shape, want)
	}
	return nil
}
