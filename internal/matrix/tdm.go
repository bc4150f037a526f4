package matrix

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidMatrix = errors.New("invalid term-document matrix")
)

type nonZeroDoer interface {
	DoNonZero(func(i, j int, v float64))
}

// TDM is an immutable term-document matrix. Rows are terms, columns are
// documents. Every selection returns a new TDM.
type TDM struct {
	terms  []string
	docs   []string
	counts *sparse.CSR // nil when either dimension is empty
}

// New wraps counts (rows = terms, cols = docs) into a TDM. Counts must be
// non-negative integers and term labels unique.
func New(terms, docs []string, counts mat.Matrix) (*TDM, error) {
	if counts == nil {
		if len(terms) != 0 && len(docs) != 0 {
			return nil, fmt.Errorf("%w: nil counts for %dx%d labels", ErrInvalidMatrix, len(terms), len(docs))
		}
		return build(terms, docs, nil)
	}
	r, c := counts.Dims()
	if r != len(terms) || c != len(docs) {
		return nil, fmt.Errorf("%w: counts are %dx%d, labels are %dx%d", ErrInvalidMatrix, r, c, len(terms), len(docs))
	}

	return build(terms, docs, func(set func(i, j int, v float64) error) error {
		if nz, ok := counts.(nonZeroDoer); ok {
			var err error
			nz.DoNonZero(func(i, j int, v float64) {
				if err == nil {
					err = set(i, j, v)
				}
			})
			return err
		}
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				if err := set(i, j, counts.At(i, j)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// FromTriplets builds a TDM from 0-based simple triplets. Repeated (i, j)
// pairs are summed.
func FromTriplets(terms, docs []string, i, j []int, v []float64) (*TDM, error) {
	if len(i) != len(j) || len(i) != len(v) {
		return nil, fmt.Errorf("%w: triplet lengths %d/%d/%d", ErrInvalidMatrix, len(i), len(j), len(v))
	}
	for k := range i {
		if i[k] < 0 || i[k] >= len(terms) || j[k] < 0 || j[k] >= len(docs) {
			return nil, fmt.Errorf("%w: triplet %d (%d,%d) out of range %dx%d", ErrInvalidMatrix, k, i[k], j[k], len(terms), len(docs))
		}
	}
	if len(terms) == 0 || len(docs) == 0 {
		return build(terms, docs, nil)
	}

	sums := make(map[[2]int]float64, len(v))
	for k := range v {
		sums[[2]int{i[k], j[k]}] += v[k]
	}
	return build(terms, docs, func(set func(i, j int, v float64) error) error {
		for key, val := range sums {
			if err := set(key[0], key[1], val); err != nil {
				return err
			}
		}
		return nil
	})
}

func build(terms, docs []string, fill func(set func(i, j int, v float64) error) error) (*TDM, error) {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrInvalidMatrix, t)
		}
		seen[t] = struct{}{}
	}

	m := &TDM{
		terms: append([]string(nil), terms...),
		docs:  append([]string(nil), docs...),
	}
	if len(terms) == 0 || len(docs) == 0 || fill == nil {
		return m, nil
	}

	type cell struct {
		i, j int
		v    float64
	}
	var cells []cell
	err := fill(func(i, j int, v float64) error {
		if v == 0 {
			return nil
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return fmt.Errorf("%w: count %v at (%d,%d) is not a non-negative integer", ErrInvalidMatrix, v, i, j)
		}
		cells = append(cells, cell{i, j, v})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// CSR rows in order, columns ascending within a row
	sort.Slice(cells, func(a, b int) bool {
		if cells[a].i != cells[b].i {
			return cells[a].i < cells[b].i
		}
		return cells[a].j < cells[b].j
	})
	ia := make([]int, len(terms)+1)
	ja := make([]int, 0, len(cells))
	data := make([]float64, 0, len(cells))
	for k, c := range cells {
		if k > 0 && cells[k-1].i == c.i && cells[k-1].j == c.j {
			return nil, fmt.Errorf("%w: cell (%d,%d) set twice", ErrInvalidMatrix, c.i, c.j)
		}
		ia[c.i+1]++
		ja = append(ja, c.j)
		data = append(data, c.v)
	}
	for r := 1; r < len(ia); r++ {
		ia[r] += ia[r-1]
	}
	m.counts = sparse.NewCSR(len(terms), len(docs), ia, ja, data)
	return m, nil
}

func (m *TDM) Terms() []string {
	return append([]string(nil), m.terms...)
}

func (m *TDM) Docs() []string {
	return append([]string(nil), m.docs...)
}

// Dims returns the number of terms and documents.
func (m *TDM) Dims() (int, int) {
	return len(m.terms), len(m.docs)
}

func (m *TDM) Term(t int) string {
	return m.terms[t]
}

func (m *TDM) Count(t, d int) int {
	if m.counts == nil {
		return 0
	}
	return int(m.counts.At(t, d))
}

// TermIndex returns the row of term, or -1.
func (m *TDM) TermIndex(term string) int {
	for i, t := range m.terms {
		if t == term {
			return i
		}
	}
	return -1
}

// DocsWith returns the columns where term row t has a count >= least.
func (m *TDM) DocsWith(t int, least int) []int {
	var r []int
	for d := range m.docs {
		if m.Count(t, d) >= least {
			r = append(r, d)
		}
	}
	return r
}

// DocFreqs returns, per term, the number of documents with a non-zero count.
func (m *TDM) DocFreqs() []int {
	df := make([]int, len(m.terms))
	m.doNonZero(func(i, j int, v float64) {
		df[i]++
	})
	return df
}

// TermTotals returns, per term, the sum of its counts over all documents.
func (m *TDM) TermTotals() []int {
	tt := make([]int, len(m.terms))
	m.doNonZero(func(i, j int, v float64) {
		tt[i] += int(v)
	})
	return tt
}

func (m *TDM) NNZ() int {
	if m.counts == nil {
		return 0
	}
	return m.counts.NNZ()
}

// Sparsity is the fraction of zero cells; an empty matrix is fully sparse.
func (m *TDM) Sparsity() float64 {
	cells := len(m.terms) * len(m.docs)
	if cells == 0 {
		return 1
	}
	return 1 - float64(m.NNZ())/float64(cells)
}

// Matrix exposes the counts; nil when either dimension is empty.
func (m *TDM) Matrix() mat.Matrix {
	if m.counts == nil {
		return nil
	}
	return m.counts
}

// Triplets returns the non-zero cells in row-major order.
func (m *TDM) Triplets() (i, j []int, v []float64) {
	m.doNonZero(func(r, c int, x float64) {
		i = append(i, r)
		j = append(j, c)
		v = append(v, x)
	})
	return
}

func (m *TDM) doNonZero(fn func(i, j int, v float64)) {
	if m.counts == nil {
		return
	}
	m.counts.DoNonZero(fn)
}
