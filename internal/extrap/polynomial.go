// Package extrap provides the extrapolation capabilities used to warm-start
// variational solvers from the parameter history of a sweep.
package extrap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/pesweep/internal/pes"
)

// PolynomialExtrapolator fits an independent least-squares polynomial in the
// sweep point to every parameter component of the history, then evaluates
// the fits at the requested points.
type PolynomialExtrapolator struct {
	degree int
}

// NewPolynomialExtrapolator creates an extrapolator of the given degree.
// Degrees below 1 are raised to 1 (linear).
func NewPolynomialExtrapolator(degree int) *PolynomialExtrapolator {
	if degree < 1 {
		degree = 1
	}
	return &PolynomialExtrapolator{degree: degree}
}

// Degree returns the configured polynomial degree.
func (e *PolynomialExtrapolator) Degree() int {
	return e.degree
}

// Extrapolate fits the history and predicts parameters for each point.
func (e *PolynomialExtrapolator) Extrapolate(points []float64, history *pes.ParamHistory) (map[float64][]float64, error) {
	n := history.Len()
	if n < 2 {
		return nil, fmt.Errorf("polynomial extrapolation needs at least 2 history points, have %d", n)
	}

	// Clamp the degree so the fit stays determined.
	degree := e.degree
	if degree > n-1 {
		degree = n - 1
	}

	_, first := history.At(0)
	dim := len(first)

	// Vandermonde matrix over the history points, one row per point.
	a := mat.NewDense(n, degree+1, nil)
	b := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		x, params := history.At(i)
		if len(params) != dim {
			return nil, fmt.Errorf("inconsistent parameter dimension in history: %d vs %d", len(params), dim)
		}
		for d := 0; d <= degree; d++ {
			a.Set(i, d, math.Pow(x, float64(d)))
		}
		for j, v := range params {
			b.Set(i, j, v)
		}
	}

	var qr mat.QR
	qr.Factorize(a)
	var coef mat.Dense
	if err := qr.SolveTo(&coef, false, b); err != nil {
		return nil, fmt.Errorf("solving polynomial fit: %w", err)
	}

	out := make(map[float64][]float64, len(points))
	for _, p := range points {
		params := make([]float64, dim)
		for j := 0; j < dim; j++ {
			v := 0.0
			for d := 0; d <= degree; d++ {
				v += coef.At(d, j) * math.Pow(p, float64(d))
			}
			params[j] = v
		}
		out[p] = params
	}
	return out, nil
}
