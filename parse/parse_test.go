package parse

import (
	"image"
	"testing"

	"github.com/nvr-ai/go-yolo/layers"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var network640 = image.Point{X: 640, Y: 640}

// TestDetectionsChannelMajorSingleBox runs the full pipeline over a minimal
// channel-major tensor: one prediction, two classes.
func TestDetectionsChannelMajorSingleBox(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  []float32{100, 100, 50, 50, 0.1, 0.9},
		Shape: []int{6, 1},
	}
	want := Object{Left: 75, Top: 75, Width: 50, Height: 50, Confidence: 0.9, ClassID: 1}

	// Heuristic mode: layout and class count inferred from the shape.
	got, err := Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])

	// Deterministic mode: the configured class count pins the same layout.
	got, err = Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25, NumClasses: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

// TestDetectionsRowMajorObjectnessGate verifies that a row-major prediction
// whose objectness is below threshold produces no output.
func TestDetectionsRowMajorObjectnessGate(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  []float32{50, 50, 20, 20, 0.2, 0.9},
		Shape: []int{1, 6},
	}

	got, err := RowMajorDetections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25})
	require.NoError(t, err)
	assert.Empty(t, got)

	// The auto path resolves the same layout from the configured class count.
	got, err = Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25, NumClasses: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestDetectionsSuppressesOverlap verifies end-to-end NMS: two same-class
// candidates with heavy overlap collapse to the higher-confidence box.
func TestDetectionsSuppressesOverlap(t *testing.T) {
	layer := layers.Layer{
		Name: "output0",
		// Channel planes for two predictions.
		Data: []float32{
			100, 105, // cx
			100, 100, // cy
			50, 50, // w
			50, 50, // h
			0.9, 0.8, // class 0
			0.0, 0.0, // class 1
		},
		Shape: []int{6, 2},
	}

	got, err := ChannelMajorDetections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25, IoUThreshold: 0.45})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, float32(0.9), got[0].Confidence)
	assert.Equal(t, float32(75), got[0].Left)
}

// TestDetectionsTransposedFallback verifies the deterministic-mode fallback
// for prediction-first exports without an objectness channel.
func TestDetectionsTransposedFallback(t *testing.T) {
	// One prediction of 4+2 values: [cx, cy, w, h, class0, class1].
	layer := layers.Layer{
		Name:  "output0",
		Data:  []float32{100, 100, 50, 50, 0.1, 0.9},
		Shape: []int{1, 6},
	}

	got, err := Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25, NumClasses: 2})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, Object{Left: 75, Top: 75, Width: 50, Height: 50, Confidence: 0.9, ClassID: 1}, got[0])
}

// TestDetectionsSquareShapeResolves verifies the fixed heuristic tie-break:
// a square tensor resolves channel-major and parses cleanly.
func TestDetectionsSquareShapeResolves(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  make([]float32, 300*300),
		Shape: []int{300, 300},
	}

	got, err := Detections([]layers.Layer{layer}, network640, Params{})
	require.NoError(t, err, "square shape should resolve, not fail")
	assert.Empty(t, got, "all-zero scores produce no detections")
}

// TestDetectionsRankFailure verifies that an unsupported rank fails cleanly
// with no partial output.
func TestDetectionsRankFailure(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  make([]float32, 16),
		Shape: []int{2, 2, 2, 2},
	}

	got, err := Detections([]layers.Layer{layer}, network640, Params{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRank))
	assert.Empty(t, got)
}

// TestDetectionsNoOutputLayers verifies the empty-input failure.
func TestDetectionsNoOutputLayers(t *testing.T) {
	for name, fn := range map[string]Func{
		"auto":          Detections,
		"row-major":     RowMajorDetections,
		"channel-major": ChannelMajorDetections,
		"yolo11":        YOLO11Detections,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := fn(nil, network640, Params{})
			assert.True(t, errors.Is(err, ErrNoOutputLayers))
			assert.Empty(t, got)
		})
	}
}

// TestDetectionsRejectsMismatchedBuffer verifies that a buffer shorter than
// its shape fails before any decoding touches it.
func TestDetectionsRejectsMismatchedBuffer(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  make([]float32, 5),
		Shape: []int{6, 1},
	}

	_, err := Detections([]layers.Layer{layer}, network640, Params{})
	assert.Error(t, err)
}

// TestDetectionsConsumesFirstLayerOnly verifies that additional output
// tensors are ignored.
func TestDetectionsConsumesFirstLayerOnly(t *testing.T) {
	first := layers.Layer{
		Name:  "output0",
		Data:  []float32{100, 100, 50, 50, 0.1, 0.9},
		Shape: []int{6, 1},
	}
	second := layers.Layer{
		Name:  "aux",
		Data:  make([]float32, 16),
		Shape: []int{2, 2, 2, 2}, // would fail if consumed
	}

	got, err := Detections([]layers.Layer{first, second}, network640, Params{ConfidenceThreshold: 0.25})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// TestDetectionsBatchDimension verifies that a size-1 leading batch
// dimension is dropped.
func TestDetectionsBatchDimension(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  []float32{100, 100, 50, 50, 0.1, 0.9},
		Shape: []int{1, 6, 1},
	}

	got, err := Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: 0.25, NumClasses: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ClassID)
}

// TestDetectionsMonotonicThreshold verifies that raising the confidence
// threshold never increases the number of detections.
func TestDetectionsMonotonicThreshold(t *testing.T) {
	const (
		channels    = 9 // 4 box + 5 classes
		predictions = 200
	)

	// Deterministic pseudo-random tensor: spread-out boxes, mixed scores.
	data := make([]float32, channels*predictions)
	for i := 0; i < predictions; i++ {
		data[0*predictions+i] = float32((i * 29) % 640)
		data[1*predictions+i] = float32((i * 53) % 640)
		data[2*predictions+i] = float32(10 + (i*7)%40)
		data[3*predictions+i] = float32(10 + (i*11)%40)
		for c := 0; c < channels-4; c++ {
			data[(4+c)*predictions+i] = float32((i*31+c*17)%100) / 100
		}
	}
	layer := layers.Layer{Name: "output0", Data: data, Shape: []int{channels, predictions}}

	prev := -1
	for _, threshold := range []float32{0.05, 0.25, 0.45, 0.65, 0.85, 0.99} {
		got, err := Detections([]layers.Layer{layer}, network640, Params{ConfidenceThreshold: threshold})
		require.NoError(t, err)
		if prev >= 0 {
			assert.LessOrEqual(t, len(got), prev,
				"raising the threshold to %v grew the output", threshold)
		}
		prev = len(got)
	}
}

// TestYOLO11AliasMatchesChannelMajor verifies the alias entry point decodes
// identically to the channel-major parser.
func TestYOLO11AliasMatchesChannelMajor(t *testing.T) {
	layer := layers.Layer{
		Name:  "output0",
		Data:  []float32{100, 100, 50, 50, 0.1, 0.9},
		Shape: []int{6, 1},
	}

	want, err := ChannelMajorDetections([]layers.Layer{layer}, network640, Params{})
	require.NoError(t, err)
	got, err := YOLO11Detections([]layers.Layer{layer}, network640, Params{})
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

// TestLookup verifies parser selection by model name.
func TestLookup(t *testing.T) {
	for _, name := range []string{"yolo", "yolov5", "yolov8", "yolo11"} {
		fn, err := Lookup(name)
		require.NoError(t, err, "model %q should have a parser", name)
		require.NotNil(t, fn)
	}

	_, err := Lookup("frcnn")
	assert.Error(t, err)

	assert.Equal(t, []string{"yolo", "yolo11", "yolov5", "yolov8"}, Names())
}

// TestClassName verifies COCO label lookup and the fallback for custom
// label sets.
func TestClassName(t *testing.T) {
	assert.Equal(t, "person", ClassName(0))
	assert.Equal(t, "toothbrush", ClassName(79))
	assert.Equal(t, "class_80", ClassName(80))
	assert.Equal(t, "class_-1", ClassName(-1))
}

// TestDefaultParams verifies the documented defaults and zero-value
// backfill.
func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, float32(0.25), p.ConfidenceThreshold)
	assert.Equal(t, float32(0.45), p.IoUThreshold)
	assert.Equal(t, 300, p.MaxDetections)
	assert.Equal(t, 0, p.NumClasses)

	filled := Params{ConfidenceThreshold: 0.5}.withDefaults()
	assert.Equal(t, float32(0.5), filled.ConfidenceThreshold)
	assert.Equal(t, float32(0.45), filled.IoUThreshold)
	assert.Equal(t, 300, filled.MaxDetections)
}
