package parse

import (
	"image"

	"github.com/nvr-ai/go-yolo/layers"
	"github.com/pkg/errors"
)

// Detections parses the output of an Ultralytics-family detector,
// auto-detecting the tensor layout.
//
// With Params.NumClasses set, the layout is matched deterministically
// against the expected channel counts, including the transposed
// no-objectness fallback. With NumClasses zero, layout and class count are
// inferred from the tensor shape alone.
//
// Only the first output layer is consumed; single-output detection heads
// are the norm and additional layers are ignored.
//
// Arguments:
//   - outputs: Named output tensors from the inference engine.
//   - network: The network input resolution in pixels.
//   - params: Decode and suppression parameters; zero fields use defaults.
//
// Returns:
//   - []Object: Final boxes in descending-confidence order.
//   - error: ErrNoOutputLayers, ErrRank or ErrLayout on unusable input.
func Detections(outputs []layers.Layer, network image.Point, params Params) ([]Object, error) {
	return parseWith(outputs, network, params, func(d0, d1 int, p Params) (plan, error) {
		return resolveLayout(d0, d1, p.NumClasses)
	})
}

// RowMajorDetections parses a detector whose output rows are
// [cx, cy, w, h, objectness, class scores...], e.g. YOLOv5 exports. The
// class count is taken from the row width.
func RowMajorDetections(outputs []layers.Layer, network image.Point, params Params) ([]Object, error) {
	return parseWith(outputs, network, params, func(d0, d1 int, _ Params) (plan, error) {
		classes := d1 - 5
		if classes <= 0 {
			return plan{}, errors.Wrapf(ErrLayout, "row width %d leaves no class channels", d1)
		}
		return plan{layout: rowMajor, channels: d1, predictions: d0, classes: classes}, nil
	})
}

// ChannelMajorDetections parses a detector whose output is strided channel
// planes [cx, cy, w, h, class scores...] x predictions, e.g. YOLOv8
// exports. The class count is taken from the channel dimension.
func ChannelMajorDetections(outputs []layers.Layer, network image.Point, params Params) ([]Object, error) {
	return parseWith(outputs, network, params, func(d0, d1 int, _ Params) (plan, error) {
		classes := d0 - 4
		if classes <= 0 {
			return plan{}, errors.Wrapf(ErrLayout, "channel dimension %d leaves no class channels", d0)
		}
		return plan{layout: channelMajor, channels: d0, predictions: d1, classes: classes}, nil
	})
}

// YOLO11Detections parses a YOLO11 detector. YOLO11 exports the same
// channel-major tensor as YOLOv8, so this is an alias kept for callers that
// select the parser by model name.
func YOLO11Detections(outputs []layers.Layer, network image.Point, params Params) ([]Object, error) {
	return ChannelMajorDetections(outputs, network, params)
}

// parseWith runs the shared pipeline: validate the first layer, resolve a
// decode plan for its shape, decode, suppress, finalize.
func parseWith(outputs []layers.Layer, network image.Point, params Params,
	resolve func(d0, d1 int, params Params) (plan, error),
) ([]Object, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputLayers
	}
	params = params.withDefaults()

	layer := outputs[0]
	if err := layer.Validate(); err != nil {
		return nil, err
	}

	d0, d1, err := planeDims(layer.Shape)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", layer.Name)
	}

	p, err := resolve(d0, d1, params)
	if err != nil {
		return nil, errors.Wrapf(err, "layer %q", layer.Name)
	}

	data := layer.Data
	if len(layer.Shape) == 3 {
		// Batch dimension is ignored; decode the first (only) image.
		data = data[:d0*d1]
	}
	if p.scratch {
		data = transposed(data, p.predictions, p.channels)
	}

	candidates := decode(data, p, params.ConfidenceThreshold)
	return finalize(suppress(candidates, params.IoUThreshold, params.MaxDetections), network), nil
}
