package tokenizer

import (
	"strings"
	"unicode"
)

// Clean strips every rune that is neither a letter nor a number.
func Clean(term string) string {
	var b strings.Builder
	b.Grow(len(term))
	for _, r := range term {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
