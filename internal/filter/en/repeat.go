package en

import (
	"fmt"
	"sync"

	"github.com/dlclark/regexp2"

	"tdmfilter/internal/matrix"
)

const DefaultRepeatRun = 3

// RepeatedCharFilter drops terms where one character repeats Run or more
// times in a row ("seeee", "aaaa1").
type RepeatedCharFilter struct {
	Run int
}

func (RepeatedCharFilter) Name() string {
	return "repeated"
}

func (f RepeatedCharFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	run := f.Run
	if run <= 1 {
		run = DefaultRepeatRun
	}
	return m.FilterTerms(func(term string) bool {
		return !HasRun(term, run)
	})
}

var runPatterns sync.Map // run length -> *regexp2.Regexp

// runPattern compiles `(.)\1{n-1,}` once per run length.
func runPattern(n int) *regexp2.Regexp {
	if re, ok := runPatterns.Load(n); ok {
		return re.(*regexp2.Regexp)
	}
	re := regexp2.MustCompile(fmt.Sprintf(`(.)\1{%d,}`, n-1), regexp2.Singleline)
	runPatterns.Store(n, re)
	return re
}

// HasRun reports whether s contains n consecutive identical characters.
func HasRun(s string, n int) bool {
	if n < 1 {
		n = 1
	}
	ok, err := runPattern(n).MatchString(s)
	return err == nil && ok
}
