package parse

import "github.com/pkg/errors"

// layout names the two tensor arrangements detection heads export.
type layout int

const (
	// channelMajor is [channels, predictions]: every channel is a strided
	// plane across all predictions, channels are cx, cy, w, h followed by
	// one score per class. No objectness term.
	channelMajor layout = iota
	// rowMajor is [predictions, channels]: every prediction is a contiguous
	// row of cx, cy, w, h, objectness followed by one score per class.
	rowMajor
)

const (
	// channelDimThreshold separates "channel-sized" dimensions from
	// "prediction-sized" ones in heuristic resolution. Channel counts stay
	// well under a few hundred even for large label sets, while prediction
	// counts for common input resolutions are in the thousands (8400 at
	// 640x640 channel-major, 25200 row-major). Exports with very few
	// predictions or enormous class counts can defeat this split; such
	// models should set Params.NumClasses instead.
	channelDimThreshold = 500

	// maxPlausibleClasses bounds the class count a heuristically chosen
	// layout may imply before the resolver flips to the other layout.
	maxPlausibleClasses = 1000
)

// plan is a resolved decode strategy for one tensor.
type plan struct {
	layout      layout
	channels    int
	predictions int
	classes     int
	// scratch means the buffer must be transposed into channel-major form
	// before decoding. The copy is call-scoped and freed on return.
	scratch bool
}

// planeDims drops an optional leading batch dimension and returns the two
// dimensions that carry the detection layout. Rank outside 2..3 fails.
func planeDims(shape []int) (d0, d1 int, err error) {
	switch len(shape) {
	case 2:
		return shape[0], shape[1], nil
	case 3:
		// Dimension 0 is the batch, always 1 for detection output.
		return shape[1], shape[2], nil
	default:
		return 0, 0, errors.Wrapf(ErrRank, "got rank %d shape %v", len(shape), shape)
	}
}

// resolveLayout decides which decode strategy applies to a [d0, d1] tensor.
// It inspects only the shape, never the data buffer.
func resolveLayout(d0, d1, numClasses int) (plan, error) {
	if numClasses > 0 {
		return resolveKnown(d0, d1, numClasses)
	}
	return resolveHeuristic(d0, d1)
}

// resolveKnown matches the shape against the layouts a model with a known
// class count can export.
func resolveKnown(d0, d1, numClasses int) (plan, error) {
	switch {
	case d0 == 4+numClasses:
		// [4+classes, predictions]
		return plan{layout: channelMajor, channels: d0, predictions: d1, classes: numClasses}, nil
	case d1 == 5+numClasses:
		// [predictions, 5+classes]
		return plan{layout: rowMajor, channels: d1, predictions: d0, classes: numClasses}, nil
	case d1 == 4+numClasses:
		// [predictions, 4+classes]: per-class scores but no objectness, laid
		// out prediction-first. Decoded channel-major after a transpose.
		return plan{layout: channelMajor, channels: d1, predictions: d0, classes: numClasses, scratch: true}, nil
	default:
		return plan{}, errors.Wrapf(ErrLayout,
			"shape [%d, %d] matches neither %d channels nor %d row width for %d classes",
			d0, d1, 4+numClasses, 5+numClasses, numClasses)
	}
}

// resolveHeuristic infers the layout and class count from the shape alone.
//
// Each dimension is classified as channel-sized or prediction-sized against
// channelDimThreshold. If exactly one side is channel-sized it is the
// channel axis; if both sides land on the same side of the threshold, the
// smaller dimension is taken as channels (the first on a tie). The tentative
// choice is then validated: the implied class count must land in
// (0, maxPlausibleClasses], otherwise the resolver flips to the other layout
// and rechecks.
func resolveHeuristic(d0, d1 int) (plan, error) {
	small0 := d0 < channelDimThreshold
	small1 := d1 < channelDimThreshold

	var chosen layout
	switch {
	case small0 && !small1:
		chosen = channelMajor
	case !small0 && small1:
		chosen = rowMajor
	case d0 <= d1:
		chosen = channelMajor
	default:
		chosen = rowMajor
	}

	if p, ok := heuristicPlan(chosen, d0, d1); ok {
		return p, nil
	}
	// Implausible class count; the other layout may still fit.
	if chosen == channelMajor {
		chosen = rowMajor
	} else {
		chosen = channelMajor
	}
	if p, ok := heuristicPlan(chosen, d0, d1); ok {
		return p, nil
	}
	return plan{}, errors.Wrapf(ErrLayout,
		"shape [%d, %d] implies no plausible class count under either layout", d0, d1)
}

// heuristicPlan builds the plan a layout would imply for [d0, d1] and
// reports whether its class count is plausible.
func heuristicPlan(l layout, d0, d1 int) (plan, bool) {
	var p plan
	switch l {
	case channelMajor:
		p = plan{layout: channelMajor, channels: d0, predictions: d1, classes: d0 - 4}
	case rowMajor:
		p = plan{layout: rowMajor, channels: d1, predictions: d0, classes: d1 - 5}
	}
	if p.classes <= 0 || p.classes > maxPlausibleClasses {
		return plan{}, false
	}
	return p, true
}

// transposed materializes a channel-major copy of a [predictions, channels]
// buffer. The result is a bounded, call-scoped scratch allocation; it is
// never cached so calls stay stateless.
func transposed(data []float32, predictions, channels int) []float32 {
	out := make([]float32, len(data))
	for i := 0; i < predictions; i++ {
		row := data[i*channels : (i+1)*channels]
		for j, v := range row {
			out[j*predictions+i] = v
		}
	}
	return out
}
