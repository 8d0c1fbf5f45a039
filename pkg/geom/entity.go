package geom

import (
	"math"
	"sync/atomic"
)

// Epsilon is the absolute tolerance used for every near-zero and
// ratio-equality comparison in this package.
const Epsilon = 1e-10

// Entity is the contract shared by every implicit-equation primitive.
// All operations except Dispose and Disposed fail with ErrDisposed once the
// entity has been disposed.
type Entity interface {
	// ID returns the identity assigned at construction. IDs are unique per
	// Counter for the life of the process and are never reused.
	ID() uint64

	// Dimension returns the coordinate space dimension (2 for Line,
	// 4 for Hyperplane). Fixed at construction.
	Dimension() int

	// SetCoefficients replaces all stored coefficients atomically. The slice
	// length must equal Dimension()+1, ordered (a0, a1, ..., an). A wrong
	// length or nil slice fails with ErrInvalidArgument and leaves the prior
	// coefficients unchanged. Assigning coefficients that leave the entity
	// invalid is not an error; callers observe it through IsValid.
	SetCoefficients(coeffs []float64) error

	// Coefficients returns a copy of the coefficients in (a0, a1, ..., an)
	// order. The returned slice never aliases internal storage.
	Coefficients() ([]float64, error)

	// ContainsPoint reports whether the implicit equation evaluates to a
	// value within Epsilon of zero at the given point. The point length must
	// equal Dimension(). Defined even for an invalid entity.
	ContainsPoint(point []float64) (bool, error)

	// DistanceToPoint returns the unsigned Euclidean distance from the point
	// to the primitive. Fails with ErrInvalidState if the entity is invalid
	// (the denominator would be degenerate).
	DistanceToPoint(point []float64) (float64, error)

	// IsValid reports whether at least one directional coefficient exceeds
	// Epsilon in magnitude.
	IsValid() (bool, error)

	// ValidationMessage returns the human-readable classification matching
	// IsValid: one fixed message per variant for each of the two states.
	ValidationMessage() (string, error)

	// Clone returns a new entity with identical coefficients and dimension
	// but a fresh identity drawn from the same Counter. The copy is deep.
	Clone() (Entity, error)

	// IsSimilar reports whether other is the same concrete variant and the
	// two coefficient vectors are proportional by a single non-zero scalar.
	IsSimilar(other Entity) (bool, error)

	// Dispose transitions the entity to the disposed state. Idempotent.
	Dispose()

	// Disposed reports the lifecycle flag without any guard.
	Disposed() bool
}

// Counter issues entity identities and tracks the total number of entities
// constructed through it. The zero value is ready to use. Safe for
// concurrent use; identities are never reused and the total never decreases
// (disposal does not decrement).
type Counter struct {
	n uint64
}

// next returns the identity for a new entity and bumps the creation total.
func (c *Counter) next() uint64 {
	return atomic.AddUint64(&c.n, 1)
}

// Total returns the number of entities constructed through this counter.
func (c *Counter) Total() uint64 {
	return atomic.LoadUint64(&c.n)
}

// nearZero reports whether v is within Epsilon of zero.
func nearZero(v float64) bool {
	return math.Abs(v) <= Epsilon
}

// proportional reports whether a and b are scalar multiples of one another.
// The scan walks coefficients pairwise: an index where exactly one side is
// near-zero breaks proportionality immediately; an index where both are
// near-zero contributes nothing; the first index where both are non-zero
// fixes the reference ratio, which every later non-zero pair must match
// within Epsilon. With no non-zero pair ever found the result is false, so
// two all-zero vectors are not proportional.
func proportional(a, b []float64) bool {
	var ratio float64
	found := false
	for i := range a {
		az, bz := nearZero(a[i]), nearZero(b[i])
		if az != bz {
			return false
		}
		if az {
			continue
		}
		r := a[i] / b[i]
		if !found {
			ratio = r
			found = true
			continue
		}
		if math.Abs(r-ratio) > Epsilon {
			return false
		}
	}
	return found
}

// anyDirectional reports whether any of the directional coefficients
// (everything past the constant term) exceeds Epsilon in magnitude.
func anyDirectional(coeffs []float64) bool {
	for _, c := range coeffs[1:] {
		if !nearZero(c) {
			return true
		}
	}
	return false
}

// sumSquares returns the sum of squares of the directional coefficients.
func sumSquares(coeffs []float64) float64 {
	var s float64
	for _, c := range coeffs[1:] {
		s += c * c
	}
	return s
}
