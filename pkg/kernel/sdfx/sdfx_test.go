package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/implicit/pkg/geom"
)

const tol = 1e-9

func TestHalfplane(t *testing.T) {
	k := New()

	// x = 0: distance 5 at (5, 0), -5 at (-5, 0), 0 on the line.
	f, err := k.Halfplane(0, 1, 0)
	if err != nil {
		t.Fatalf("Halfplane failed: %v", err)
	}
	if d := f.Evaluate(5, 0); math.Abs(d-5) > tol {
		t.Errorf("Evaluate(5,0) = %f, expected 5", d)
	}
	if d := f.Evaluate(-5, 3); math.Abs(d+5) > tol {
		t.Errorf("Evaluate(-5,3) = %f, expected -5", d)
	}
	if d := f.Evaluate(0, 100); math.Abs(d) > tol {
		t.Errorf("Evaluate(0,100) = %f, expected 0", d)
	}
}

func TestHalfplaneNormalization(t *testing.T) {
	k := New()

	// 3x + 4y - 10 = 0 has norm 5; Evaluate must return true distance.
	f, err := k.Halfplane(-10, 3, 4)
	if err != nil {
		t.Fatalf("Halfplane failed: %v", err)
	}
	if d := f.Evaluate(2, 1); math.Abs(d) > tol {
		t.Errorf("Evaluate(2,1) = %f, expected 0 (point on line)", d)
	}
	// (2+3, 1+4) is one normal vector (length 5) away from the line.
	if d := f.Evaluate(5, 5); math.Abs(d-5) > tol {
		t.Errorf("Evaluate(5,5) = %f, expected 5", d)
	}
}

func TestHalfplaneDegenerate(t *testing.T) {
	k := New()
	if _, err := k.Halfplane(7, 0, 0); err == nil {
		t.Fatal("degenerate coefficients should fail")
	}
}

func TestFromLine(t *testing.T) {
	var ids geom.Counter
	k := New()

	l := geom.NewLineWith(&ids, 0, 1, 1)
	f, err := k.FromLine(l)
	if err != nil {
		t.Fatalf("FromLine failed: %v", err)
	}
	if d := f.Evaluate(1, -1); math.Abs(d) > tol {
		t.Errorf("Evaluate(1,-1) = %f, expected 0", d)
	}

	// A disposed line cannot be lifted.
	l.Dispose()
	if _, err := k.FromLine(l); err == nil {
		t.Fatal("FromLine on a disposed line should fail")
	}
}

func TestUnion(t *testing.T) {
	k := New()
	a, _ := k.Halfplane(0, 1, 0)  // x = 0
	b, _ := k.Halfplane(-10, 1, 0) // x = 10

	u := k.Union(a, b)
	// At (4, 0): 4 from the first line, -6 from the second; union takes the min.
	if d := u.Evaluate(4, 0); math.Abs(d+6) > tol {
		t.Errorf("union Evaluate(4,0) = %f, expected -6", d)
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	a, _ := k.Halfplane(0, 1, 0)
	b, _ := k.Halfplane(-10, 1, 0)

	in := k.Intersection(a, b)
	// Intersection takes the max: 4 beats -6 at (4, 0).
	if d := in.Evaluate(4, 0); math.Abs(d-4) > tol {
		t.Errorf("intersection Evaluate(4,0) = %f, expected 4", d)
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	f, _ := k.Halfplane(0, 1, 0) // x = 0

	// Shifting the field +10 in x moves the zero set to x = 10.
	shifted := k.Translate(f, 10, 0)
	if d := shifted.Evaluate(10, 0); math.Abs(d) > tol {
		t.Errorf("shifted Evaluate(10,0) = %f, expected 0", d)
	}
	if d := shifted.Evaluate(15, 0); math.Abs(d-5) > tol {
		t.Errorf("shifted Evaluate(15,0) = %f, expected 5", d)
	}
}

func TestSample(t *testing.T) {
	k := New()
	f, _ := k.Halfplane(0, 0, 1) // y = 0

	grid, err := k.Sample(f, 11, 11)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if grid.IsEmpty() {
		t.Fatal("grid is empty")
	}
	if len(grid.Values) != 121 {
		t.Fatalf("sample count = %d, expected 121", len(grid.Values))
	}

	// The window is symmetric around the line, so the extremes match the
	// field extent on either side.
	if v := grid.MinValue(); math.Abs(v+fieldExtent) > tol {
		t.Errorf("MinValue = %f, expected %f", v, -fieldExtent)
	}
	if v := grid.MaxValue(); math.Abs(v-fieldExtent) > tol {
		t.Errorf("MaxValue = %f, expected %f", v, fieldExtent)
	}

	// Middle row sits on the line.
	if v := grid.At(5, 5); math.Abs(v) > tol {
		t.Errorf("At(5,5) = %f, expected 0", v)
	}

	if _, err := k.Sample(f, 1, 10); err == nil {
		t.Fatal("degenerate grid should fail")
	}
}
