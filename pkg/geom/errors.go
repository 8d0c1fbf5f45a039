package geom

import "errors"

// Sentinel errors for the three failure kinds the entity contract can
// produce. Callers discriminate with errors.Is; every returned error wraps
// exactly one of these.
var (
	// ErrInvalidArgument reports absent input or a coefficient/point slice
	// whose length does not match the entity's requirement.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports a distance query on an entity whose
	// directional coefficients are all within Epsilon of zero.
	ErrInvalidState = errors.New("invalid state")

	// ErrDisposed reports any operation other than Dispose on an entity
	// that has already been disposed.
	ErrDisposed = errors.New("entity disposed")
)
