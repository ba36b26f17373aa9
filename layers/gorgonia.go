package layers

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// FromDense wraps a gorgonia dense tensor as a Layer.
//
// Only float32 tensors are accepted; detection heads are exported in float32
// and converting other dtypes here would hide a model-export problem.
//
// Arguments:
//   - name: The output name as declared in the model graph.
//   - d: The dense tensor holding the model output.
//
// Returns:
//   - Layer: A view over the tensor's shape and data.
//   - error: An error if the tensor does not hold float32 data.
func FromDense(name string, d *tensor.Dense) (Layer, error) {
	data, ok := d.Data().([]float32)
	if !ok {
		return Layer{}, errors.Errorf("tensor %q holds %v, want float32", name, d.Dtype())
	}
	shape := make([]int, len(d.Shape()))
	copy(shape, d.Shape())
	return Layer{Name: name, Data: data, Shape: shape}, nil
}
