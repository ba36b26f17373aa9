// Package parse - Decodes raw detection-model output tensors into clamped,
// suppressed bounding boxes.
//
// The package is a pure post-processing stage: it sits between an inference
// engine (which owns the model and produces the tensors) and the application
// (which wants final boxes). Every call is stateless and synchronous, so
// concurrent calls are safe as long as each uses its own buffers.
package parse

// Default thresholds. These live in one place so host configuration layers
// only need to override what they care about.
const (
	// DefaultConfidenceThreshold is the minimum confidence for a candidate
	// to survive decoding.
	DefaultConfidenceThreshold float32 = 0.25
	// DefaultIoUThreshold is the overlap above which same-class boxes are
	// suppressed.
	DefaultIoUThreshold float32 = 0.45
	// DefaultMaxDetections bounds the number of boxes returned per call.
	DefaultMaxDetections = 300
)

// Params controls decoding and suppression.
//
// Values arrive already parsed from whatever configuration layer the host
// uses; zero-valued thresholds fall back to the defaults above.
type Params struct {
	// ConfidenceThreshold is the minimum confidence for emitting a box.
	ConfidenceThreshold float32 `json:"confidence_threshold" yaml:"confidence_threshold"`
	// IoUThreshold is the NMS overlap threshold.
	IoUThreshold float32 `json:"iou_threshold" yaml:"iou_threshold"`
	// MaxDetections caps the number of boxes returned.
	MaxDetections int `json:"max_detections" yaml:"max_detections"`
	// NumClasses is the class count of the model. When set, tensor layout is
	// resolved deterministically against it; when 0, layout and class count
	// are inferred from the tensor shape alone.
	NumClasses int `json:"num_classes" yaml:"num_classes"`
}

// DefaultParams returns Params populated with the package defaults and an
// inferred class count.
func DefaultParams() Params {
	return Params{
		ConfidenceThreshold: DefaultConfidenceThreshold,
		IoUThreshold:        DefaultIoUThreshold,
		MaxDetections:       DefaultMaxDetections,
	}
}

// withDefaults fills zero-valued thresholds so a partially populated Params
// behaves like DefaultParams for the fields the host left unset.
func (p Params) withDefaults() Params {
	if p.ConfidenceThreshold == 0 {
		p.ConfidenceThreshold = DefaultConfidenceThreshold
	}
	if p.IoUThreshold == 0 {
		p.IoUThreshold = DefaultIoUThreshold
	}
	if p.MaxDetections <= 0 {
		p.MaxDetections = DefaultMaxDetections
	}
	return p
}
