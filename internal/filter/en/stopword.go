package en

import (
	"tdmfilter/internal/matrix"
	"tdmfilter/internal/types"
)

// StopWordFilter drops terms found in the stopword dictionary (exact match).
type StopWordFilter struct {
	Dic types.StopWords
}

func (StopWordFilter) Name() string {
	return "stopwords"
}

func (f StopWordFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	return m.FilterTerms(func(term string) bool {
		return !f.Dic.TestWords(term)
	})
}
