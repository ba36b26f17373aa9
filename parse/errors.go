package parse

import "github.com/pkg/errors"

// Every failure in this package is a pure function of its inputs: retrying
// the same call yields the same error, no partial output is produced, and
// the package remains usable for subsequent calls. The sentinels below let
// hosts distinguish the failure classes with errors.Is.
var (
	// ErrNoOutputLayers is returned when the caller supplies no output
	// tensors.
	ErrNoOutputLayers = errors.New("no output layers")

	// ErrRank is returned when the output tensor rank is neither 2 nor 3.
	ErrRank = errors.New("unsupported tensor rank")

	// ErrLayout is returned when neither supported layout matches the
	// tensor shape, or neither yields a plausible class count.
	ErrLayout = errors.New("unresolvable output layout")
)
