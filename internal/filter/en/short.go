package en

import (
	"unicode/utf8"

	"tdmfilter/internal/matrix"
)

const DefaultMaxShortLength = 3

// ShortWordFilter drops terms of MaxLength characters or fewer; most of them
// are OCR debris.
type ShortWordFilter struct {
	MaxLength int
}

func (ShortWordFilter) Name() string {
	return "short"
}

func (f ShortWordFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	limit := f.MaxLength
	if limit <= 0 {
		limit = DefaultMaxShortLength
	}
	return m.FilterTerms(func(term string) bool {
		return utf8.RuneCountInString(term) > limit
	})
}
