package layers

import (
	ort "github.com/yalue/onnxruntime_go"
)

// FromTensor wraps an ONNX Runtime output tensor as a Layer.
//
// The returned Layer aliases the tensor's backing slice, so the tensor must
// not be destroyed until parsing has finished.
//
// Arguments:
//   - name: The output name as declared in the model graph.
//   - t: The tensor filled by Session.Run.
//
// Returns:
//   - Layer: A view over the tensor's shape and data.
func FromTensor(name string, t *ort.Tensor[float32]) Layer {
	shape := t.GetShape()
	dims := make([]int, len(shape))
	for i, d := range shape {
		dims[i] = int(d)
	}
	return Layer{Name: name, Data: t.GetData(), Shape: dims}
}
