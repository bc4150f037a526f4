package en

import (
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"tdmfilter/internal/matrix"
)

// NonASCIIFilter keeps a term only when reading its bytes as Latin-1 and
// dropping everything outside ASCII gives the term back unchanged.
type NonASCIIFilter struct{}

func (NonASCIIFilter) Name() string {
	return "nonascii"
}

func (NonASCIIFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	t := latin1ToASCII()
	return m.FilterTerms(func(term string) bool {
		return asciiClean(t, term)
	})
}

func latin1ToASCII() transform.Transformer {
	return transform.Chain(
		charmap.ISO8859_1.NewDecoder(),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return r > unicode.MaxASCII
		})),
	)
}

func asciiClean(t transform.Transformer, term string) bool {
	out, _, err := transform.String(t, term)
	return err == nil && out == term
}

// ASCIIClean is the single-term form of NonASCIIFilter.
func ASCIIClean(term string) bool {
	return asciiClean(latin1ToASCII(), term)
}
