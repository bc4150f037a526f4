package corpus

import (
	"fmt"

	"tdmfilter/internal/matrix"
	"tdmfilter/internal/types"
)

// WordFilter restricts the corpus to documents containing Word at least once.
// All terms of those documents are kept.
type WordFilter struct {
	Word string
}

func (WordFilter) Name() string {
	return "subset"
}

func (f WordFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	if f.Word == "" {
		return m, nil
	}
	t := m.TermIndex(f.Word)
	if t < 0 {
		return nil, fmt.Errorf("%w: %q", types.ErrTermNotFound, f.Word)
	}
	docs := m.DocsWith(t, 1)
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: %q occurs in no document", types.ErrTermNotFound, f.Word)
	}
	return m.SelectDocs(docs)
}
