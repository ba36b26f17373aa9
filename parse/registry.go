package parse

import (
	"image"
	"sort"

	"github.com/nvr-ai/go-yolo/layers"
	"github.com/pkg/errors"
)

// Func is the signature shared by every parse entry point, so hosts can
// select one by configured model name.
type Func func(outputs []layers.Layer, network image.Point, params Params) ([]Object, error)

// registry maps model names to their parse entry points. "yolo" is the
// auto-detecting parser for callers that do not know their model's export
// format.
var registry = map[string]Func{
	"yolo":   Detections,
	"yolov5": RowMajorDetections,
	"yolov8": ChannelMajorDetections,
	"yolo11": YOLO11Detections,
}

// Lookup returns the parse function registered under name.
//
// Arguments:
//   - name: The configured model name, e.g. "yolov8".
//
// Returns:
//   - Func: The matching parse function.
//   - error: An error naming the unknown model if no parser is registered.
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("no parser registered for model %q (have %v)", name, Names())
	}
	return fn, nil
}

// Names returns the registered model names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
