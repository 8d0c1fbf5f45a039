// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. A line's implicit equation
// is lifted into an sdf.SDF2 so that sdfx combinators (union, intersection,
// affine transforms) apply to it directly.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/implicit/pkg/geom"
	"github.com/chazu/implicit/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Compile-time interface checks.
var (
	_ kernel.Kernel = (*SdfxKernel)(nil)
	_ kernel.Field  = (*sdfxField)(nil)
	_ sdf.SDF2      = (*halfplaneSDF)(nil)
)

// fieldExtent is the half-width of the sampling window centered on the
// line's closest approach to the origin.
const fieldExtent = 100.0

// halfplaneSDF is the signed distance field of a1*x + a2*y + a0 = 0.
// The coefficients are pre-divided by the directional norm so Evaluate
// returns true Euclidean distance.
type halfplaneSDF struct {
	a0, a1, a2 float64
	bb         sdf.Box2
}

func (s *halfplaneSDF) Evaluate(p v2.Vec) float64 {
	return s.a1*p.X + s.a2*p.Y + s.a0
}

func (s *halfplaneSDF) BoundingBox() sdf.Box2 {
	return s.bb
}

// sdfxField wraps an sdf.SDF2 to implement kernel.Field.
type sdfxField struct {
	s sdf.SDF2
}

func (f *sdfxField) Evaluate(x, y float64) float64 {
	return f.s.Evaluate(v2.Vec{X: x, Y: y})
}

func (f *sdfxField) Bounds() (min, max [2]float64) {
	bb := f.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

// unwrap extracts the underlying sdf.SDF2 from a kernel.Field.
func unwrap(f kernel.Field) sdf.SDF2 {
	return f.(*sdfxField).s
}

// wrap creates a kernel.Field from an sdf.SDF2.
func wrap(s sdf.SDF2) kernel.Field {
	return &sdfxField{s: s}
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// Halfplane lifts the implicit line a1*x + a2*y + a0 = 0 into a normalized
// signed distance field. The bounding box is centered on the foot of the
// perpendicular from the origin.
func (k *SdfxKernel) Halfplane(a0, a1, a2 float64) (kernel.Field, error) {
	n2 := a1*a1 + a2*a2
	if math.Sqrt(n2) <= geom.Epsilon {
		return nil, fmt.Errorf("sdfx: degenerate line (%g, %g, %g)", a0, a1, a2)
	}
	norm := math.Sqrt(n2)

	// Closest point on the line to the origin.
	fx := -a0 * a1 / n2
	fy := -a0 * a2 / n2

	return wrap(&halfplaneSDF{
		a0: a0 / norm,
		a1: a1 / norm,
		a2: a2 / norm,
		bb: sdf.Box2{
			Min: v2.Vec{X: fx - fieldExtent, Y: fy - fieldExtent},
			Max: v2.Vec{X: fx + fieldExtent, Y: fy + fieldExtent},
		},
	}), nil
}

// FromLine lifts a live, valid Line entity into a distance field.
func (k *SdfxKernel) FromLine(l *geom.Line) (kernel.Field, error) {
	coeffs, err := l.Coefficients()
	if err != nil {
		return nil, err
	}
	return k.Halfplane(coeffs[0], coeffs[1], coeffs[2])
}

// Union returns the union (pointwise minimum) of two fields.
func (k *SdfxKernel) Union(a, b kernel.Field) kernel.Field {
	return wrap(sdf.Union2D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection (pointwise maximum) of two fields.
func (k *SdfxKernel) Intersection(a, b kernel.Field) kernel.Field {
	return wrap(sdf.Intersect2D(unwrap(a), unwrap(b)))
}

// Translate shifts a field by (x, y).
func (k *SdfxKernel) Translate(f kernel.Field, x, y float64) kernel.Field {
	m := sdf.Translate2d(v2.Vec{X: x, Y: y})
	return wrap(sdf.Transform2D(unwrap(f), m))
}

// Sample evaluates f on an nx-by-ny grid spanning its bounding box.
func (k *SdfxKernel) Sample(f kernel.Field, nx, ny int) (*kernel.Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, fmt.Errorf("sdfx: grid must be at least 2x2, got %dx%d", nx, ny)
	}

	min, max := f.Bounds()
	dx := (max[0] - min[0]) / float64(nx-1)
	dy := (max[1] - min[1]) / float64(ny-1)

	values := make([]float64, 0, nx*ny)
	for j := 0; j < ny; j++ {
		y := min[1] + float64(j)*dy
		for i := 0; i < nx; i++ {
			x := min[0] + float64(i)*dx
			values = append(values, f.Evaluate(x, y))
		}
	}

	return &kernel.Grid{
		Values: values,
		Nx:     nx,
		Ny:     ny,
		Min:    min,
		Max:    max,
	}, nil
}
