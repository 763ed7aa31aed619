package extrap

import (
	"fmt"

	"github.com/cwbudde/pesweep/internal/pes"
)

// WindowExtrapolator restricts the fit of an inner extrapolator to the most
// recent entries of the history. The window size is not stored here: the
// sampler owns it and passes it per call, so a misordered configuration
// change can never skew a prediction.
type WindowExtrapolator struct {
	inner pes.Extrapolator
}

// NewWindowExtrapolator wraps an inner extrapolator. A nil inner defaults to
// a linear polynomial fit.
func NewWindowExtrapolator(inner pes.Extrapolator) *WindowExtrapolator {
	if inner == nil {
		inner = NewPolynomialExtrapolator(1)
	}
	return &WindowExtrapolator{inner: inner}
}

// Extrapolate fits over the full history.
func (e *WindowExtrapolator) Extrapolate(points []float64, history *pes.ParamHistory) (map[float64][]float64, error) {
	return e.inner.Extrapolate(points, history)
}

// ExtrapolateWindowed fits over only the most recent window entries.
func (e *WindowExtrapolator) ExtrapolateWindowed(window int, points []float64, history *pes.ParamHistory) (map[float64][]float64, error) {
	if window < 2 {
		return nil, fmt.Errorf("extrapolation window must be at least 2, got %d", window)
	}
	return e.inner.Extrapolate(points, history.Tail(window))
}
