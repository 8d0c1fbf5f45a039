package geom

import (
	"fmt"
	"math"
)

const (
	hyperplaneValidMsg   = "valid hyperplane: at least one directional coefficient is non-zero"
	hyperplaneInvalidMsg = "invalid hyperplane: coefficients a1 through a4 are all within epsilon of zero"
)

var _ Entity = (*Hyperplane)(nil)

// Hyperplane is the 4-D primitive a1*x1 + a2*x2 + a3*x3 + a4*x4 + a0 = 0.
// It behaves like a Line with two extra terms but owns its own 5-element
// coefficient vector rather than extending Line's storage.
type Hyperplane struct {
	id       uint64
	ids      *Counter
	coeffs   [5]float64 // a0, a1, a2, a3, a4
	disposed bool
}

// NewHyperplane constructs a hyperplane with all coefficients zero.
func NewHyperplane(ids *Counter) *Hyperplane {
	return &Hyperplane{id: ids.next(), ids: ids}
}

// NewHyperplaneWith constructs a hyperplane from the given coefficients.
func NewHyperplaneWith(ids *Counter, a0, a1, a2, a3, a4 float64) *Hyperplane {
	h := NewHyperplane(ids)
	h.coeffs = [5]float64{a0, a1, a2, a3, a4}
	return h
}

// CopyHyperplane constructs a deep copy of src with a fresh identity.
func CopyHyperplane(ids *Counter, src *Hyperplane) (*Hyperplane, error) {
	if src == nil {
		return nil, fmt.Errorf("geom: copy hyperplane: nil source: %w", ErrInvalidArgument)
	}
	if src.disposed {
		return nil, fmt.Errorf("geom: copy hyperplane %d: %w", src.id, ErrDisposed)
	}
	h := NewHyperplane(ids)
	h.coeffs = src.coeffs
	return h, nil
}

func (h *Hyperplane) guard() error {
	if h.disposed {
		return fmt.Errorf("geom: hyperplane %d: %w", h.id, ErrDisposed)
	}
	return nil
}

func (h *Hyperplane) checkPoint(point []float64) error {
	if point == nil {
		return fmt.Errorf("geom: hyperplane %d: nil point: %w", h.id, ErrInvalidArgument)
	}
	if len(point) != 4 {
		return fmt.Errorf("geom: hyperplane %d: point has %d coordinates, want 4: %w",
			h.id, len(point), ErrInvalidArgument)
	}
	return nil
}

func (h *Hyperplane) evaluate(point []float64) float64 {
	sum := h.coeffs[0]
	for i := 0; i < 4; i++ {
		sum += h.coeffs[i+1] * point[i]
	}
	return sum
}

// ID implements Entity.
func (h *Hyperplane) ID() uint64 { return h.id }

// Dimension implements Entity. Always 4.
func (h *Hyperplane) Dimension() int { return 4 }

// Disposed implements Entity.
func (h *Hyperplane) Disposed() bool { return h.disposed }

// Dispose implements Entity. Idempotent.
func (h *Hyperplane) Dispose() { h.disposed = true }

// SetCoefficients implements Entity. Expects (a0, a1, a2, a3, a4).
func (h *Hyperplane) SetCoefficients(coeffs []float64) error {
	if err := h.guard(); err != nil {
		return err
	}
	if coeffs == nil {
		return fmt.Errorf("geom: hyperplane %d: nil coefficients: %w", h.id, ErrInvalidArgument)
	}
	if len(coeffs) != 5 {
		return fmt.Errorf("geom: hyperplane %d: got %d coefficients, want 5: %w",
			h.id, len(coeffs), ErrInvalidArgument)
	}
	copy(h.coeffs[:], coeffs)
	return nil
}

// Coefficients implements Entity.
func (h *Hyperplane) Coefficients() ([]float64, error) {
	if err := h.guard(); err != nil {
		return nil, err
	}
	out := make([]float64, 5)
	copy(out, h.coeffs[:])
	return out, nil
}

// ContainsPoint implements Entity.
func (h *Hyperplane) ContainsPoint(point []float64) (bool, error) {
	if err := h.guard(); err != nil {
		return false, err
	}
	if err := h.checkPoint(point); err != nil {
		return false, err
	}
	return math.Abs(h.evaluate(point)) < Epsilon, nil
}

// DistanceToPoint implements Entity.
func (h *Hyperplane) DistanceToPoint(point []float64) (float64, error) {
	if err := h.guard(); err != nil {
		return 0, err
	}
	if err := h.checkPoint(point); err != nil {
		return 0, err
	}
	if !anyDirectional(h.coeffs[:]) {
		return 0, fmt.Errorf("geom: hyperplane %d: degenerate coefficients: %w", h.id, ErrInvalidState)
	}
	return math.Abs(h.evaluate(point)) / math.Sqrt(sumSquares(h.coeffs[:])), nil
}

// IsValid implements Entity.
func (h *Hyperplane) IsValid() (bool, error) {
	if err := h.guard(); err != nil {
		return false, err
	}
	return anyDirectional(h.coeffs[:]), nil
}

// ValidationMessage implements Entity.
func (h *Hyperplane) ValidationMessage() (string, error) {
	valid, err := h.IsValid()
	if err != nil {
		return "", err
	}
	if valid {
		return hyperplaneValidMsg, nil
	}
	return hyperplaneInvalidMsg, nil
}

// Clone implements Entity.
func (h *Hyperplane) Clone() (Entity, error) {
	if err := h.guard(); err != nil {
		return nil, err
	}
	return CopyHyperplane(h.ids, h)
}

// IsSimilar implements Entity. A Line is never similar to a Hyperplane.
func (h *Hyperplane) IsSimilar(other Entity) (bool, error) {
	if err := h.guard(); err != nil {
		return false, err
	}
	if other == nil {
		return false, fmt.Errorf("geom: hyperplane %d: nil comparand: %w", h.id, ErrInvalidArgument)
	}
	o, ok := other.(*Hyperplane)
	if !ok {
		return false, nil
	}
	if o == nil {
		return false, fmt.Errorf("geom: hyperplane %d: nil comparand: %w", h.id, ErrInvalidArgument)
	}
	if o.disposed {
		return false, fmt.Errorf("geom: hyperplane %d: %w", o.id, ErrDisposed)
	}
	return proportional(h.coeffs[:], o.coeffs[:]), nil
}
