package pes

import "github.com/cwbudde/pesweep/internal/chem"

// ParamHistory maps sweep points to the optimal parameter vectors found at
// them, in evaluation order. Overwriting an existing point keeps its original
// position; iteration order is therefore deterministic and matches first
// insertion.
type ParamHistory struct {
	keys   []float64
	index  map[float64]int
	params [][]float64
}

// NewParamHistory creates an empty history.
func NewParamHistory() *ParamHistory {
	return &ParamHistory{index: make(map[float64]int)}
}

// Len returns the number of recorded points.
func (h *ParamHistory) Len() int {
	return len(h.keys)
}

// Set records parameters for a point, overwriting in place if the point was
// already recorded.
func (h *ParamHistory) Set(point float64, params []float64) {
	if i, ok := h.index[point]; ok {
		h.params[i] = params
		return
	}
	h.index[point] = len(h.keys)
	h.keys = append(h.keys, point)
	h.params = append(h.params, params)
}

// Get returns the parameters recorded for a point.
func (h *ParamHistory) Get(point float64) ([]float64, bool) {
	i, ok := h.index[point]
	if !ok {
		return nil, false
	}
	return h.params[i], true
}

// At returns the i-th recorded point and its parameters, in insertion order.
func (h *ParamHistory) At(i int) (float64, []float64) {
	return h.keys[i], h.params[i]
}

// Points returns the recorded points in insertion order.
func (h *ParamHistory) Points() []float64 {
	return append([]float64{}, h.keys...)
}

// Tail returns a new history holding only the most recent n entries. It
// shares parameter slices with the receiver but not its bookkeeping.
func (h *ParamHistory) Tail(n int) *ParamHistory {
	if n >= h.Len() {
		n = h.Len()
	}
	tail := NewParamHistory()
	for i := h.Len() - n; i < h.Len(); i++ {
		tail.Set(h.keys[i], h.params[i])
	}
	return tail
}

// ResultSet maps sweep points to their raw per-point results, in evaluation
// order with the same overwrite-in-place semantics as ParamHistory.
type ResultSet struct {
	keys    []float64
	index   map[float64]int
	results []*chem.EigenstateResult
}

// NewResultSet creates an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{index: make(map[float64]int)}
}

// Len returns the number of recorded points.
func (r *ResultSet) Len() int {
	return len(r.keys)
}

// Set records a result for a point; duplicate points overwrite in place
// (last write wins).
func (r *ResultSet) Set(point float64, res *chem.EigenstateResult) {
	if i, ok := r.index[point]; ok {
		r.results[i] = res
		return
	}
	r.index[point] = len(r.keys)
	r.keys = append(r.keys, point)
	r.results = append(r.results, res)
}

// Get returns the result recorded for a point.
func (r *ResultSet) Get(point float64) (*chem.EigenstateResult, bool) {
	i, ok := r.index[point]
	if !ok {
		return nil, false
	}
	return r.results[i], true
}

// Points returns the recorded points in insertion order.
func (r *ResultSet) Points() []float64 {
	return append([]float64{}, r.keys...)
}
