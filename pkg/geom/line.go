package geom

import (
	"fmt"
	"math"
)

// Fixed validation classifications, one pair per variant.
const (
	lineValidMsg   = "valid line: at least one directional coefficient is non-zero"
	lineInvalidMsg = "invalid line: coefficients a1 and a2 are both within epsilon of zero"
)

// Compile-time contract check.
var _ Entity = (*Line)(nil)

// Line is the 2-D primitive a1*x + a2*y + a0 = 0.
type Line struct {
	id       uint64
	ids      *Counter
	coeffs   [3]float64 // a0, a1, a2
	disposed bool
}

// NewLine constructs a line with all coefficients zero. The result reports
// invalid until coefficients are set.
func NewLine(ids *Counter) *Line {
	return &Line{id: ids.next(), ids: ids}
}

// NewLineWith constructs a line from the given coefficients. Invalid
// coefficients are accepted; callers observe validity through IsValid.
func NewLineWith(ids *Counter, a0, a1, a2 float64) *Line {
	l := NewLine(ids)
	l.coeffs = [3]float64{a0, a1, a2}
	return l
}

// CopyLine constructs a deep copy of src with a fresh identity.
func CopyLine(ids *Counter, src *Line) (*Line, error) {
	if src == nil {
		return nil, fmt.Errorf("geom: copy line: nil source: %w", ErrInvalidArgument)
	}
	if src.disposed {
		return nil, fmt.Errorf("geom: copy line %d: %w", src.id, ErrDisposed)
	}
	l := NewLine(ids)
	l.coeffs = src.coeffs
	return l, nil
}

func (l *Line) guard() error {
	if l.disposed {
		return fmt.Errorf("geom: line %d: %w", l.id, ErrDisposed)
	}
	return nil
}

func (l *Line) checkPoint(point []float64) error {
	if point == nil {
		return fmt.Errorf("geom: line %d: nil point: %w", l.id, ErrInvalidArgument)
	}
	if len(point) != 2 {
		return fmt.Errorf("geom: line %d: point has %d coordinates, want 2: %w",
			l.id, len(point), ErrInvalidArgument)
	}
	return nil
}

// evaluate computes a1*x + a2*y + a0 at the point.
func (l *Line) evaluate(point []float64) float64 {
	return l.coeffs[1]*point[0] + l.coeffs[2]*point[1] + l.coeffs[0]
}

// ID implements Entity.
func (l *Line) ID() uint64 { return l.id }

// Dimension implements Entity. Always 2.
func (l *Line) Dimension() int { return 2 }

// Disposed implements Entity.
func (l *Line) Disposed() bool { return l.disposed }

// Dispose implements Entity. Idempotent.
func (l *Line) Dispose() { l.disposed = true }

// SetCoefficients implements Entity. Expects (a0, a1, a2).
func (l *Line) SetCoefficients(coeffs []float64) error {
	if err := l.guard(); err != nil {
		return err
	}
	if coeffs == nil {
		return fmt.Errorf("geom: line %d: nil coefficients: %w", l.id, ErrInvalidArgument)
	}
	if len(coeffs) != 3 {
		return fmt.Errorf("geom: line %d: got %d coefficients, want 3: %w",
			l.id, len(coeffs), ErrInvalidArgument)
	}
	copy(l.coeffs[:], coeffs)
	return nil
}

// Coefficients implements Entity.
func (l *Line) Coefficients() ([]float64, error) {
	if err := l.guard(); err != nil {
		return nil, err
	}
	out := make([]float64, 3)
	copy(out, l.coeffs[:])
	return out, nil
}

// ContainsPoint implements Entity.
func (l *Line) ContainsPoint(point []float64) (bool, error) {
	if err := l.guard(); err != nil {
		return false, err
	}
	if err := l.checkPoint(point); err != nil {
		return false, err
	}
	return math.Abs(l.evaluate(point)) < Epsilon, nil
}

// DistanceToPoint implements Entity.
func (l *Line) DistanceToPoint(point []float64) (float64, error) {
	if err := l.guard(); err != nil {
		return 0, err
	}
	if err := l.checkPoint(point); err != nil {
		return 0, err
	}
	if !anyDirectional(l.coeffs[:]) {
		return 0, fmt.Errorf("geom: line %d: degenerate coefficients: %w", l.id, ErrInvalidState)
	}
	return math.Abs(l.evaluate(point)) / math.Sqrt(sumSquares(l.coeffs[:])), nil
}

// IsValid implements Entity.
func (l *Line) IsValid() (bool, error) {
	if err := l.guard(); err != nil {
		return false, err
	}
	return anyDirectional(l.coeffs[:]), nil
}

// ValidationMessage implements Entity.
func (l *Line) ValidationMessage() (string, error) {
	valid, err := l.IsValid()
	if err != nil {
		return "", err
	}
	if valid {
		return lineValidMsg, nil
	}
	return lineInvalidMsg, nil
}

// Clone implements Entity.
func (l *Line) Clone() (Entity, error) {
	if err := l.guard(); err != nil {
		return nil, err
	}
	return CopyLine(l.ids, l)
}

// IsSimilar implements Entity. A Hyperplane is never similar to a Line.
func (l *Line) IsSimilar(other Entity) (bool, error) {
	if err := l.guard(); err != nil {
		return false, err
	}
	if other == nil {
		return false, fmt.Errorf("geom: line %d: nil comparand: %w", l.id, ErrInvalidArgument)
	}
	o, ok := other.(*Line)
	if !ok {
		return false, nil
	}
	if o == nil {
		return false, fmt.Errorf("geom: line %d: nil comparand: %w", l.id, ErrInvalidArgument)
	}
	if o.disposed {
		return false, fmt.Errorf("geom: line %d: %w", o.id, ErrDisposed)
	}
	return proportional(l.coeffs[:], o.coeffs[:]), nil
}
