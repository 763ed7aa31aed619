package pes

import (
	"fmt"
	"log/slog"
	"math"
)

// initialPoint produces the warm-start guess for a point, or nil when the
// history is empty and the solver should keep its own starting point.
//
// Two regimes: while the history holds at most the bootstrap window of
// points, the nearest previously evaluated point donates its parameters;
// past that threshold the extrapolation capability predicts them from the
// accumulated trend. With no extrapolator configured the window equals the
// history size, so nearest-neighbor reuse applies throughout.
func (s *Sampler) initialPoint(point float64) ([]float64, error) {
	n := s.history.Len()
	if n == 0 {
		return nil, nil
	}

	window := n
	if s.opts.Extrapolator != nil {
		window = s.window
	}

	if n <= window {
		params := nearestParams(point, s.history)
		slog.Debug("Warm start from nearest neighbor", "point", point, "history", n)
		return params, nil
	}

	var (
		sets map[float64][]float64
		err  error
	)
	if wex, ok := s.opts.Extrapolator.(WindowedExtrapolator); ok {
		sets, err = wex.ExtrapolateWindowed(s.window, []float64{point}, s.history)
	} else {
		sets, err = s.opts.Extrapolator.Extrapolate([]float64{point}, s.history)
	}
	if err != nil {
		return nil, fmt.Errorf("extrapolating initial point for %v: %w", point, err)
	}
	slog.Debug("Warm start from extrapolation", "point", point, "history", n, "window", s.window)
	return sets[point], nil
}

// nearestParams returns a copy of the parameters stored for the history
// point with minimum Euclidean distance to the target. Ties resolve to the
// earliest-inserted point, keeping the lookup deterministic.
func nearestParams(point float64, history *ParamHistory) []float64 {
	bestIdx := 0
	bestDist := math.Inf(1)
	for i := 0; i < history.Len(); i++ {
		key, _ := history.At(i)
		if d := math.Abs(point - key); d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	_, params := history.At(bestIdx)
	return append([]float64{}, params...)
}
