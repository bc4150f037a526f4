package matrix

import (
	"fmt"
)

// SelectTerms keeps the given rows, in the given order.
func (m *TDM) SelectTerms(rows []int) (*TDM, error) {
	remap, err := remapIndex(rows, len(m.terms), "term")
	if err != nil {
		return nil, err
	}
	terms := make([]string, len(rows))
	for n, o := range rows {
		terms[n] = m.terms[o]
	}
	return m.project(terms, m.docs, func(i, j int) (int, int, bool) {
		ni := remap[i]
		return ni, j, ni >= 0
	})
}

// SelectDocs keeps the given columns, in the given order.
func (m *TDM) SelectDocs(cols []int) (*TDM, error) {
	remap, err := remapIndex(cols, len(m.docs), "doc")
	if err != nil {
		return nil, err
	}
	docs := make([]string, len(cols))
	for n, o := range cols {
		docs[n] = m.docs[o]
	}
	return m.project(m.terms, docs, func(i, j int) (int, int, bool) {
		nj := remap[j]
		return i, nj, nj >= 0
	})
}

// FilterTerms keeps the terms for which keep returns true, preserving order.
func (m *TDM) FilterTerms(keep func(term string) bool) (*TDM, error) {
	rows := make([]int, 0, len(m.terms))
	for i, t := range m.terms {
		if keep(t) {
			rows = append(rows, i)
		}
	}
	if len(rows) == len(m.terms) {
		return m, nil
	}
	return m.SelectTerms(rows)
}

// WithDocs relabels the documents without touching the counts.
func (m *TDM) WithDocs(docs []string) (*TDM, error) {
	if len(docs) != len(m.docs) {
		return nil, fmt.Errorf("%w: %d labels for %d docs", ErrInvalidMatrix, len(docs), len(m.docs))
	}
	return &TDM{
		terms:  m.terms,
		docs:   append([]string(nil), docs...),
		counts: m.counts,
	}, nil
}

func (m *TDM) project(terms, docs []string, mapping func(i, j int) (int, int, bool)) (*TDM, error) {
	if m.counts == nil || len(terms) == 0 || len(docs) == 0 {
		return build(terms, docs, nil)
	}
	return build(terms, docs, func(set func(i, j int, v float64) error) error {
		var err error
		m.counts.DoNonZero(func(i, j int, v float64) {
			if err != nil {
				return
			}
			if ni, nj, ok := mapping(i, j); ok {
				err = set(ni, nj, v)
			}
		})
		return err
	})
}

func remapIndex(idx []int, n int, what string) ([]int, error) {
	remap := make([]int, n)
	for i := range remap {
		remap[i] = -1
	}
	for pos, o := range idx {
		if o < 0 || o >= n {
			return nil, fmt.Errorf("%w: %s index %d out of range [0,%d)", ErrInvalidMatrix, what, o, n)
		}
		if remap[o] >= 0 {
			return nil, fmt.Errorf("%w: %s index %d selected twice", ErrInvalidMatrix, what, o)
		}
		remap[o] = pos
	}
	return remap, nil
}
