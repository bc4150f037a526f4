package types

import (
	"time"

	"tdmfilter/internal/matrix"
)

// Filter is one narrowing pass over a term-document matrix.
type Filter interface {
	Name() string
	Gen(*matrix.TDM) (*matrix.TDM, error)
}

type StopWords interface {
	TestWords(string) bool
	Words() []string
}

type SparsityReducer interface {
	Reduce(m *matrix.TDM, sparse float64) (*matrix.TDM, error)
}

type TaggedToken struct {
	Text string
	Tag  string
}

// Tagger segments text into sentences, tokenizes and tags every token.
type Tagger interface {
	Tag(text string) ([]TaggedToken, error)
}

type StageReport struct {
	Stage       string
	TermsBefore int
	TermsAfter  int
	DocsBefore  int
	DocsAfter   int
	Elapsed     time.Duration
}

func (sr StageReport) TermsRemoved() int {
	return sr.TermsBefore - sr.TermsAfter
}

func (sr StageReport) DocsRemoved() int {
	return sr.DocsBefore - sr.DocsAfter
}

// Observer receives a report after every completed stage.
type Observer interface {
	ObserveStage(StageReport)
}
