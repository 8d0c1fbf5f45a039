package kernel

// Grid is a sampled distance field. Values are stored row-major: the value
// at column i, row j is Values[j*Nx+i], with (Min[0], Min[1]) at i=0, j=0.
type Grid struct {
	Values []float64
	Nx, Ny int
	Min    [2]float64
	Max    [2]float64
}

// At returns the sample at column i, row j.
func (g *Grid) At(i, j int) float64 {
	return g.Values[j*g.Nx+i]
}

// MinValue returns the smallest sample.
func (g *Grid) MinValue() float64 {
	min := g.Values[0]
	for _, v := range g.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// MaxValue returns the largest sample.
func (g *Grid) MaxValue() float64 {
	max := g.Values[0]
	for _, v := range g.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// IsEmpty returns true if the grid has no samples.
func (g *Grid) IsEmpty() bool {
	return len(g.Values) == 0
}
