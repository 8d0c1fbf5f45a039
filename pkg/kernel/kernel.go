// Package kernel defines the abstract 2-D distance-field kernel interface.
// Implementations provide signed-distance evaluation, field combination and
// grid sampling behind this interface. The kernel abstraction keeps the
// geom entity model free of any geometry-library dependency.
package kernel

// Field is an opaque handle to a signed distance field over the plane.
// Negative values are on one side of the primitive, positive on the other,
// zero on it.
type Field interface {
	// Evaluate returns the signed distance at (x, y).
	Evaluate(x, y float64) float64

	// Bounds returns the axis-aligned region of interest for sampling.
	Bounds() (min, max [2]float64)
}

// Kernel is the abstract distance-field kernel interface.
type Kernel interface {
	// Halfplane returns the signed distance field of the implicit line
	// a1*x + a2*y + a0 = 0, normalized so Evaluate returns true Euclidean
	// distance. Fails if both directional coefficients are near zero.
	Halfplane(a0, a1, a2 float64) (Field, error)

	// Field combination
	Union(a, b Field) Field
	Intersection(a, b Field) Field

	// Translate shifts a field by (x, y).
	Translate(f Field, x, y float64) Field

	// Sample evaluates f on an nx-by-ny grid over its bounds.
	Sample(f Field, nx, ny int) (*Grid, error)
}
