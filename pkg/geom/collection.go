package geom

// PointCheck is the per-entity result of Collection.CheckPoint.
// A dimension mismatch marks the entity Skipped rather than failing the
// sweep; an arithmetic failure (for example distance on an invalid entity)
// is captured in Err.
type PointCheck struct {
	ID        uint64
	Dimension int
	Skipped   bool // dimension mismatch or already disposed
	Contains  bool
	Distance  float64
	Err       error
}

// Demo is the per-entity result of Collection.Demonstrate: the full contract
// exercised once, with the distance probed at the origin of the entity's
// space. The clone created during the demo is disposed before returning, so
// only its identity survives.
type Demo struct {
	ID           uint64
	Dimension    int
	Skipped      bool // already disposed
	Valid        bool
	Message      string
	Coefficients []float64
	Distance     float64
	DistanceErr  error
	CloneID      uint64
	CloneErr     error
}

// Collection owns an ordered sequence of entities. Ownership transfers at
// Add; Close disposes every owned entity exactly once and clears the
// sequence. Insertion order is preserved and duplicates are not rejected.
type Collection struct {
	entities []Entity
	closed   bool
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Add appends e and takes ownership. It reports false, without error, when
// e is nil, already disposed, or the collection is closed; the count is
// unchanged in all three cases.
func (c *Collection) Add(e Entity) bool {
	if c.closed || e == nil || e.Disposed() {
		return false
	}
	c.entities = append(c.entities, e)
	return true
}

// Count returns the number of owned entities.
func (c *Collection) Count() int {
	return len(c.entities)
}

// CheckPoint evaluates containment and distance at point for every owned
// entity. Disposed entities and entities whose dimension does not match the
// point length are skipped; per-entity failures land in the result's Err and
// never abort the sweep.
func (c *Collection) CheckPoint(point []float64) []PointCheck {
	results := make([]PointCheck, 0, len(c.entities))
	for _, e := range c.entities {
		r := PointCheck{ID: e.ID(), Dimension: e.Dimension()}
		if e.Disposed() || e.Dimension() != len(point) {
			r.Skipped = true
			results = append(results, r)
			continue
		}
		contains, err := e.ContainsPoint(point)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		r.Contains = contains
		dist, err := e.DistanceToPoint(point)
		if err != nil {
			r.Err = err
		} else {
			r.Distance = dist
		}
		results = append(results, r)
	}
	return results
}

// Demonstrate exercises the full contract on every owned entity: validity,
// coefficients, distance to the origin, and a clone (disposed again before
// the demo returns). Disposed entities are skipped.
func (c *Collection) Demonstrate() []Demo {
	results := make([]Demo, 0, len(c.entities))
	for _, e := range c.entities {
		d := Demo{ID: e.ID(), Dimension: e.Dimension()}
		if e.Disposed() {
			d.Skipped = true
			results = append(results, d)
			continue
		}
		d.Valid, _ = e.IsValid()
		d.Message, _ = e.ValidationMessage()
		d.Coefficients, _ = e.Coefficients()

		origin := make([]float64, e.Dimension())
		dist, err := e.DistanceToPoint(origin)
		if err != nil {
			d.DistanceErr = err
		} else {
			d.Distance = dist
		}

		clone, err := e.Clone()
		if err != nil {
			d.CloneErr = err
		} else {
			d.CloneID = clone.ID()
			clone.Dispose()
		}
		results = append(results, d)
	}
	return results
}

// Close disposes every owned entity and clears the collection. Entities the
// caller disposed earlier are left alone (Dispose is idempotent anyway).
// Closing an already-closed collection is a no-op.
func (c *Collection) Close() {
	if c.closed {
		return
	}
	for _, e := range c.entities {
		if !e.Disposed() {
			e.Dispose()
		}
	}
	c.entities = nil
	c.closed = true
}
