package opt

import (
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MayflyAdapter wraps the external Mayfly library to conform to our Optimizer interface
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new Mayfly optimizer adapter
func NewMayfly(maxIters, popSize int, seed int64) Optimizer {
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}
}

// Run executes the Mayfly optimization using the external library.
//
// When a warm-start point is supplied the search is confined to a trust
// region around it: mayfly v0.1.0 has no population seeding hook, so
// narrowing the bounds is how prior optima steer the search. The initial
// point itself is always evaluated, and is returned whenever the search
// fails to beat it, so warm starting never regresses.
func (m *MayflyAdapter) Run(eval func([]float64) float64, lower, upper []float64, dim int, initial []float64) ([]float64, float64) {
	// Create config for external Mayfly library
	config := mayfly.NewDefaultConfig()

	// Configure the optimizer
	config.ObjectiveFunc = eval
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize

	// Set bounds (external library uses scalar bounds)
	// Assumes all dimensions have same bounds - use first dimension
	lo, hi := lower[0], upper[0]
	if len(initial) == dim {
		lo, hi = trustRegion(initial, lower[0], upper[0])
	}
	config.LowerBound = lo
	config.UpperBound = hi

	// Set random seed for reproducibility
	config.Rand = rand.New(rand.NewSource(m.seed))

	// Run optimization
	result, err := mayfly.Optimize(config)
	if err != nil {
		if len(initial) == dim {
			return append([]float64{}, initial...), eval(initial)
		}
		return make([]float64, dim), eval(make([]float64, dim))
	}

	best := result.GlobalBest.Position
	bestCost := result.GlobalBest.Cost

	if len(initial) == dim {
		if initialCost := eval(initial); initialCost < bestCost {
			return append([]float64{}, initial...), initialCost
		}
	}
	return best, bestCost
}

// trustRegion returns scalar bounds spanning the initial point with a margin
// of a quarter of the full search range, clamped to the original bounds.
func trustRegion(initial []float64, lo, hi float64) (float64, float64) {
	minP, maxP := initial[0], initial[0]
	for _, v := range initial[1:] {
		minP = math.Min(minP, v)
		maxP = math.Max(maxP, v)
	}
	margin := 0.25 * (hi - lo)
	return math.Max(lo, minP-margin), math.Min(hi, maxP+margin)
}
