package pes

// Result is the immutable outcome of one sweep: points in evaluation order,
// the parallel total energies, and the raw per-point results. It is
// assembled once after the last point and never recomputed.
type Result struct {
	Points   []float64
	Energies []float64
	Raw      *ResultSet
}

// aggregate packages the accumulated raw results into a Result. The point
// order is the result set's insertion order; energies are the first-listed
// total energy of each raw result.
func (s *Sampler) aggregate() *Result {
	points := s.results.Points()
	energies := make([]float64, len(points))
	for i, p := range points {
		res, _ := s.results.Get(p)
		energies[i] = res.TotalEnergies[0]
	}
	return &Result{Points: points, Energies: energies, Raw: s.results}
}

// MinEnergy returns the lowest energy in the sweep and its point. Returns
// zeros for an empty result.
func (r *Result) MinEnergy() (point, energy float64) {
	if len(r.Energies) == 0 {
		return 0, 0
	}
	point, energy = r.Points[0], r.Energies[0]
	for i := 1; i < len(r.Energies); i++ {
		if r.Energies[i] < energy {
			point, energy = r.Points[i], r.Energies[i]
		}
	}
	return point, energy
}
