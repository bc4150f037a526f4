package corpus

import (
	"fmt"
	"math"

	"tdmfilter/internal/matrix"
	"tdmfilter/internal/types"
)

// SparseFilter removes rarely occurring terms through Reducer. A threshold
// of 1 disables it.
type SparseFilter struct {
	Sparse  float64
	Reducer types.SparsityReducer
}

func (SparseFilter) Name() string {
	return "sparse"
}

func (f SparseFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	if err := ValidSparsity(f.Sparse); err != nil {
		return nil, err
	}
	if f.Sparse == 1 {
		return m, nil
	}
	reducer := f.Reducer
	if reducer == nil {
		reducer = SparseTermReducer{}
	}
	return reducer.Reduce(m, f.Sparse)
}

func ValidSparsity(s float64) error {
	if math.IsNaN(s) || s < 0 || s > 1 {
		return fmt.Errorf("%w: %v", types.ErrInvalidSparsity, s)
	}
	return nil
}

// SparseTermReducer keeps a term when it occurs in more than
// nDocs*(1-sparse) documents, i.e. its share of empty cells is below sparse.
type SparseTermReducer struct{}

func (SparseTermReducer) Reduce(m *matrix.TDM, sparse float64) (*matrix.TDM, error) {
	if err := ValidSparsity(sparse); err != nil {
		return nil, err
	}
	_, nd := m.Dims()
	limit := float64(nd) * (1 - sparse)
	df := m.DocFreqs()

	rows := make([]int, 0, len(df))
	for t, n := range df {
		if float64(n) > limit {
			rows = append(rows, t)
		}
	}
	return m.SelectTerms(rows)
}
