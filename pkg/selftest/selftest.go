// Package selftest runs a scripted exercise of the geometry core and
// reports pass/fail counts. It exists so a deployment can verify the
// primitives without a Go toolchain present.
package selftest

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/implicit/pkg/geom"
)

// Report holds the outcome of a self-test run.
type Report struct {
	Pass     int
	Fail     int
	Failures []string
}

// Failed reports whether any check failed.
func (r *Report) Failed() bool { return r.Fail > 0 }

func (r *Report) check(name string, ok bool) {
	if ok {
		r.Pass++
		return
	}
	r.Fail++
	r.Failures = append(r.Failures, name)
}

func (r *Report) checkf(ok bool, format string, args ...interface{}) {
	r.check(fmt.Sprintf(format, args...), ok)
}

// Run exercises the geometry contract and returns the tally. Every check
// runs regardless of earlier failures.
func Run() *Report {
	r := &Report{}
	var ids geom.Counter

	// Distance and containment on an on-line point.
	l := geom.NewLineWith(&ids, -2, 1, 1) // x + y = 2, contains (1, 1)
	d, err := l.DistanceToPoint([]float64{1, 1})
	r.checkf(err == nil && d < geom.Epsilon, "on-line distance ~ 0 (got %v, err %v)", d, err)
	on, err := l.ContainsPoint([]float64{1, 1})
	r.checkf(err == nil && on, "on-line containment")

	// Exact vertical-line distance.
	v := geom.NewLineWith(&ids, 0, 1, 0)
	d, err = v.DistanceToPoint([]float64{5, 0})
	r.checkf(err == nil && math.Abs(d-5) < geom.Epsilon, "x=0 distance to (5,0) is 5 (got %v)", d)

	// x + y = 0 contains (1, -1).
	s := geom.NewLineWith(&ids, 0, 1, 1)
	on, err = s.ContainsPoint([]float64{1, -1})
	r.checkf(err == nil && on, "x+y=0 contains (1,-1)")

	// Proportional similarity, including the shared-zero case.
	similar := func(a, b geom.Entity) bool {
		ok, err := a.IsSimilar(b)
		return err == nil && ok
	}
	r.check("scaled coefficients are similar",
		similar(geom.NewLineWith(&ids, 1, 2, 3), geom.NewLineWith(&ids, 2, 4, 6)))
	r.check("unrelated coefficients are not similar",
		!similar(geom.NewLineWith(&ids, 1, 2, 3), geom.NewLineWith(&ids, 1, 1, 1)))
	r.check("shared zero positions are similar",
		similar(geom.NewLineWith(&ids, 0, 1, 0), geom.NewLineWith(&ids, 0, 2, 0)))

	// Hyperplane containment.
	h := geom.NewHyperplaneWith(&ids, 0, 1, 1, 1, 1)
	on, err = h.ContainsPoint([]float64{1, -1, 0, 0})
	r.checkf(err == nil && on, "hyperplane contains (1,-1,0,0)")

	// Deep clone with fresh identity.
	src := geom.NewLineWith(&ids, 1, 2, 3)
	cl, err := src.Clone()
	if err != nil {
		r.checkf(false, "clone failed: %v", err)
	} else {
		r.check("clone has a fresh id", cl.ID() != src.ID())
		_ = cl.SetCoefficients([]float64{9, 9, 9})
		orig, _ := src.Coefficients()
		r.check("mutating the clone leaves the source intact",
			len(orig) == 3 && orig[0] == 1 && orig[1] == 2 && orig[2] == 3)
	}

	// Idempotent disposal and the disposed-access guard.
	g := geom.NewLineWith(&ids, 0, 1, 0)
	g.Dispose()
	g.Dispose()
	r.check("double dispose leaves entity disposed", g.Disposed())
	_, err = g.Coefficients()
	r.check("disposed access fails", errors.Is(err, geom.ErrDisposed))

	// Distance on a degenerate entity is an invalid-state failure.
	bad := geom.NewLineWith(&ids, 5, 0, 0)
	_, err = bad.DistanceToPoint([]float64{0, 0})
	r.check("degenerate distance fails", errors.Is(err, geom.ErrInvalidState))

	// Wrong-length coefficients are rejected and leave state untouched.
	w := geom.NewLineWith(&ids, 1, 2, 3)
	err = w.SetCoefficients([]float64{1, 2})
	prior, _ := w.Coefficients()
	r.check("wrong-length coefficients fail",
		errors.Is(err, geom.ErrInvalidArgument) &&
			prior[0] == 1 && prior[1] == 2 && prior[2] == 3)

	// Collection rejection leaves the count unchanged.
	col := geom.NewCollection()
	col.Add(geom.NewLineWith(&ids, 0, 1, 0))
	before := col.Count()
	r.check("nil add rejected", !col.Add(nil) && col.Count() == before)
	dead := geom.NewLineWith(&ids, 0, 1, 0)
	dead.Dispose()
	r.check("disposed add rejected", !col.Add(dead) && col.Count() == before)
	col.Close()

	// The creation counter only ever grows.
	total := ids.Total()
	geom.NewHyperplane(&ids)
	r.check("construction increments the total by one", ids.Total() == total+1)

	return r
}
