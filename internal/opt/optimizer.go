package opt

// Optimizer defines an optimization algorithm interface
type Optimizer interface {
	// Run executes the optimization
	// eval: objective function to minimize
	// lower, upper: parameter bounds
	// dim: dimensionality of parameter space
	// initial: optional warm-start point (nil to search cold)
	// Returns: best parameters and best cost
	Run(eval func([]float64) float64, lower, upper []float64, dim int, initial []float64) ([]float64, float64)
}
