package m

import "errors"

var (
	// ErrTopology reports a layer-width sequence that cannot form a network.
	ErrTopology = errors.New("invalid topology")
	// ErrResource reports a failed allocation while building a network.
	ErrResource = errors.New("allocation failed")
	// ErrShapeMismatch reports vectors whose lengths do not line up.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDomain reports a value outside the domain of a numeric primitive.
	ErrDomain = errors.New("value out of domain")
)
