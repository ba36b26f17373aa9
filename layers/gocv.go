package layers

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FromMat wraps a gocv DNN forward output as a Layer.
//
// The Mat must be a contiguous CV_32F blob, which is what gocv.Net.Forward
// returns for detection heads. The Layer aliases the Mat's data, so the Mat
// must not be closed until parsing has finished.
//
// Arguments:
//   - name: The output layer name.
//   - m: The forward-pass output Mat.
//
// Returns:
//   - Layer: A view over the Mat's shape and data.
//   - error: An error if the Mat is not float32 or its data is inaccessible.
func FromMat(name string, m gocv.Mat) (Layer, error) {
	if m.Type() != gocv.MatTypeCV32F {
		return Layer{}, errors.Errorf("mat %q has type %v, want CV_32F", name, m.Type())
	}
	data, err := m.DataPtrFloat32()
	if err != nil {
		return Layer{}, errors.Wrapf(err, "mat %q data", name)
	}
	shape := make([]int, 0, len(m.Size()))
	shape = append(shape, m.Size()...)
	return Layer{Name: name, Data: data, Shape: shape}, nil
}
