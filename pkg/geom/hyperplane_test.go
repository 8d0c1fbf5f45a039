package geom

import (
	"errors"
	"math"
	"testing"
)

func TestNewHyperplaneDefaults(t *testing.T) {
	var ids Counter
	h := NewHyperplane(&ids)

	if h.Dimension() != 4 {
		t.Errorf("dimension = %d, want 4", h.Dimension())
	}
	coeffs, err := h.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients: %v", err)
	}
	if len(coeffs) != 5 {
		t.Fatalf("coefficient count = %d, want 5", len(coeffs))
	}
	valid, _ := h.IsValid()
	if valid {
		t.Error("default hyperplane should be invalid")
	}
	msg, _ := h.ValidationMessage()
	if msg != hyperplaneInvalidMsg {
		t.Errorf("message = %q, want %q", msg, hyperplaneInvalidMsg)
	}
}

func TestHyperplaneContainsPoint(t *testing.T) {
	var ids Counter

	// x1 + x2 + x3 + x4 = 0 is satisfied at (1, -1, 0, 0).
	h := NewHyperplaneWith(&ids, 0, 1, 1, 1, 1)
	contains, err := h.ContainsPoint([]float64{1, -1, 0, 0})
	if err != nil {
		t.Fatalf("ContainsPoint: %v", err)
	}
	if !contains {
		t.Error("(1,-1,0,0) should satisfy x1+x2+x3+x4=0")
	}
	contains, err = h.ContainsPoint([]float64{1, 1, 1, 1})
	if err != nil {
		t.Fatalf("ContainsPoint: %v", err)
	}
	if contains {
		t.Error("(1,1,1,1) should not satisfy x1+x2+x3+x4=0")
	}
}

func TestHyperplaneDistance(t *testing.T) {
	var ids Counter

	// x1 = 0. Distance from (3, 0, 0, 0) is exactly 3.
	h := NewHyperplaneWith(&ids, 0, 1, 0, 0, 0)
	d, err := h.DistanceToPoint([]float64{3, 0, 0, 0})
	if err != nil {
		t.Fatalf("DistanceToPoint: %v", err)
	}
	if math.Abs(d-3) > Epsilon {
		t.Errorf("distance = %f, want 3", d)
	}

	// x1 + x2 + x3 + x4 + 2 = 0, distance from origin is 2/sqrt(4) = 1.
	h = NewHyperplaneWith(&ids, 2, 1, 1, 1, 1)
	d, err = h.DistanceToPoint([]float64{0, 0, 0, 0})
	if err != nil {
		t.Fatalf("DistanceToPoint: %v", err)
	}
	if math.Abs(d-1) > Epsilon {
		t.Errorf("distance = %f, want 1", d)
	}
}

func TestHyperplaneDistanceInvalidState(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 5, 0, 0, 0, 0)

	_, err := h.DistanceToPoint([]float64{0, 0, 0, 0})
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("distance on invalid hyperplane: err = %v, want ErrInvalidState", err)
	}
}

func TestHyperplanePointDimensionMismatch(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 0, 1, 0, 0, 0)

	if _, err := h.ContainsPoint([]float64{1, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("2-coordinate point: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := h.DistanceToPoint(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil point: err = %v, want ErrInvalidArgument", err)
	}
}

func TestHyperplaneSetCoefficients(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 1, 2, 3, 4, 5)

	if err := h.SetCoefficients([]float64{5, 4, 3, 2, 1}); err != nil {
		t.Fatalf("SetCoefficients: %v", err)
	}
	coeffs, _ := h.Coefficients()
	if coeffs[0] != 5 || coeffs[4] != 1 {
		t.Errorf("coeffs = %v, want [5 4 3 2 1]", coeffs)
	}

	// A line-sized slice is a length mismatch for a hyperplane.
	if err := h.SetCoefficients([]float64{1, 2, 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("3-coefficient slice: err = %v, want ErrInvalidArgument", err)
	}
	coeffs, _ = h.Coefficients()
	if coeffs[0] != 5 || coeffs[4] != 1 {
		t.Errorf("coeffs after failed set = %v, want [5 4 3 2 1]", coeffs)
	}
}

func TestHyperplaneClone(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 1, 2, 3, 4, 5)

	clone, err := h.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if clone.ID() == h.ID() {
		t.Error("clone must get a fresh identity")
	}
	if clone.Dimension() != 4 {
		t.Errorf("clone dimension = %d, want 4", clone.Dimension())
	}
	if err := clone.SetCoefficients([]float64{9, 9, 9, 9, 9}); err != nil {
		t.Fatalf("SetCoefficients on clone: %v", err)
	}
	hc, _ := h.Coefficients()
	if hc[0] != 1 || hc[4] != 5 {
		t.Errorf("source coeffs after clone mutation = %v, want [1 2 3 4 5]", hc)
	}
}

func TestCopyHyperplaneNilSource(t *testing.T) {
	var ids Counter
	if _, err := CopyHyperplane(&ids, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil source: err = %v, want ErrInvalidArgument", err)
	}
}

func TestHyperplaneSimilar(t *testing.T) {
	var ids Counter

	a := NewHyperplaneWith(&ids, 1, 2, 3, 4, 5)
	b := NewHyperplaneWith(&ids, 2, 4, 6, 8, 10)
	similar, err := a.IsSimilar(b)
	if err != nil {
		t.Fatalf("IsSimilar: %v", err)
	}
	if !similar {
		t.Error("(1,2,3,4,5) and (2,4,6,8,10) are proportional")
	}

	c := NewHyperplaneWith(&ids, 1, 2, 3, 4, 6)
	similar, err = a.IsSimilar(c)
	if err != nil {
		t.Fatalf("IsSimilar: %v", err)
	}
	if similar {
		t.Error("last ratio differs, must not be similar")
	}

	// All four directional coefficients participate in the scan.
	d := NewHyperplaneWith(&ids, 0, 1, 0, 2, 0)
	e := NewHyperplaneWith(&ids, 0, 3, 0, 6, 0)
	similar, err = d.IsSimilar(e)
	if err != nil {
		t.Fatalf("IsSimilar: %v", err)
	}
	if !similar {
		t.Error("(0,1,0,2,0) and (0,3,0,6,0) are proportional")
	}

	f := NewHyperplaneWith(&ids, 0, 1, 5, 2, 0)
	similar, err = d.IsSimilar(f)
	if err != nil {
		t.Fatalf("IsSimilar: %v", err)
	}
	if similar {
		t.Error("zero paired with non-zero must not be similar")
	}
}

func TestHyperplaneSimilarLine(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 1, 2, 3, 0, 0)
	l := NewLineWith(&ids, 1, 2, 3)

	similar, err := h.IsSimilar(l)
	if err != nil {
		t.Fatalf("IsSimilar: %v", err)
	}
	if similar {
		t.Error("a line is never similar to a hyperplane")
	}
}

func TestHyperplaneDisposal(t *testing.T) {
	var ids Counter
	h := NewHyperplaneWith(&ids, 1, 2, 3, 4, 5)

	h.Dispose()
	h.Dispose()
	if !h.Disposed() {
		t.Fatal("Dispose must be idempotent and sticky")
	}
	if _, err := h.Coefficients(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Coefficients: err = %v, want ErrDisposed", err)
	}
	if _, err := h.DistanceToPoint([]float64{0, 0, 0, 0}); !errors.Is(err, ErrDisposed) {
		t.Errorf("DistanceToPoint: err = %v, want ErrDisposed", err)
	}
	if _, err := h.Clone(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Clone: err = %v, want ErrDisposed", err)
	}
}
