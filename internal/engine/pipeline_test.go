package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdmfilter/internal/filter/dic"
	"tdmfilter/internal/matrix"
	"tdmfilter/internal/types"
)

// 8 terms x 4 docs; the last document repeats label "1":
//
//	        1  2  3  1
//	cat     1  0  2  5
//	the     3  1  1  0
//	ox      1  0  0  0
//	seeee   0  0  1  0
//	café    1  0  0  0
//	forest  2  0  1  0
//	river   0  4  0  0
//	runs    0  0  1  0
func fixture(t *testing.T) *matrix.TDM {
	m, err := matrix.FromTriplets(
		[]string{"cat", "the", "ox", "seeee", "café", "forest", "river", "runs"},
		[]string{"1", "2", "3", "1"},
		[]int{0, 0, 0, 1, 1, 1, 2, 3, 4, 5, 5, 6, 7},
		[]int{0, 2, 3, 0, 1, 2, 0, 2, 0, 0, 2, 1, 2},
		[]float64{1, 2, 5, 3, 1, 1, 1, 1, 1, 2, 1, 4, 1},
	)
	require.NoError(t, err)
	return m
}

type wordTagger map[string]string

func (w wordTagger) Tag(text string) ([]types.TaggedToken, error) {
	var r []types.TaggedToken
	for _, f := range strings.Fields(text) {
		r = append(r, types.TaggedToken{Text: f, Tag: w[f]})
	}
	return r, nil
}

type growingReducer struct{}

func (growingReducer) Reduce(m *matrix.TDM, _ float64) (*matrix.TDM, error) {
	return matrix.FromTriplets(append(m.Terms(), "extra"), m.Docs(), nil, nil, nil)
}

type collector struct {
	stages []types.StageReport
}

func (c *collector) ObserveStage(sr types.StageReport) {
	c.stages = append(c.stages, sr)
}

func noTagging() Options {
	opts := DefaultOptions()
	opts.POSTag = false
	return opts
}

func TestStageOrder(t *testing.T) {
	p, err := NewPipeline(noTagging(), Deps{})
	require.NoError(t, err)
	assert.Equal(t, []string{"subset", "dedup", "sparse", "stopwords", "short", "repeated", "nonascii"}, p.Stages())

	p, err = NewPipeline(DefaultOptions(), Deps{Tagger: wordTagger{}})
	require.NoError(t, err)
	assert.Equal(t, "nouns", p.Stages()[len(p.Stages())-1])
}

func TestFilterSubset(t *testing.T) {
	opts := noTagging()
	opts.Word = "cat"

	r, err := Filter(fixture(t), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, r.Docs())
	assert.Equal(t, []string{"forest", "river", "runs"}, r.Terms())
	assert.Equal(t, 2, r.Count(0, 0))
	assert.Equal(t, 0, r.Count(1, 0))
	assert.Equal(t, 1, r.Count(2, 1))
}

func TestFilterSparse(t *testing.T) {
	opts := noTagging()
	opts.Sparse = 0.5

	r, err := Filter(fixture(t), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, r.Docs())
	assert.Equal(t, []string{"forest"}, r.Terms())
}

func TestFilterNouns(t *testing.T) {
	opts := DefaultOptions()
	tg := wordTagger{"forest": "NN", "river": "NN", "runs": "VBZ"}

	p, err := NewPipeline(opts, Deps{Tagger: tg})
	require.NoError(t, err)
	r, _, err := p.Run(fixture(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"forest", "river"}, r.Terms())
}

func TestOutputIsSubsetOfInput(t *testing.T) {
	in := fixture(t)
	opts := noTagging()
	opts.Word = "cat"

	r, err := Filter(in, opts)
	require.NoError(t, err)
	for ti, term := range r.Terms() {
		it := in.TermIndex(term)
		require.GreaterOrEqual(t, it, 0, term)
		for di, doc := range r.Docs() {
			// first occurrence of a label survives dedup
			id := indexOf(in.Docs(), doc)
			require.GreaterOrEqual(t, id, 0, doc)
			assert.Equal(t, in.Count(it, id), r.Count(ti, di), "%s/%s", term, doc)
		}
	}
}

func TestReportShrinksMonotonically(t *testing.T) {
	c := &collector{}
	opts := noTagging()
	opts.Word = "cat"
	opts.Sparse = 0.9

	p, err := NewPipeline(opts, Deps{Observers: []types.Observer{c}})
	require.NoError(t, err)
	_, report, err := p.Run(fixture(t))
	require.NoError(t, err)

	assert.NotEmpty(t, report.Run)
	assert.Equal(t, report.Stages, c.stages)
	require.Len(t, report.Stages, len(p.Stages()))
	for k, sr := range report.Stages {
		assert.LessOrEqual(t, sr.TermsAfter, sr.TermsBefore, sr.Stage)
		assert.LessOrEqual(t, sr.DocsAfter, sr.DocsBefore, sr.Stage)
		if k > 0 {
			prev := report.Stages[k-1]
			assert.Equal(t, prev.TermsAfter, sr.TermsBefore)
			assert.Equal(t, prev.DocsAfter, sr.DocsBefore)
		}
	}
	assert.Equal(t, 1, report.Stages[0].DocsRemoved())
	assert.Equal(t, 1, report.Stages[1].DocsRemoved())
}

func TestNotMonotonic(t *testing.T) {
	opts := noTagging()
	opts.Sparse = 0.5

	p, err := NewPipeline(opts, Deps{Reducer: growingReducer{}})
	require.NoError(t, err)
	_, _, err = p.Run(fixture(t))
	assert.ErrorIs(t, err, types.ErrNotMonotonic)
}

func TestMissingWord(t *testing.T) {
	opts := noTagging()
	opts.Word = "whale"

	_, err := Filter(fixture(t), opts)
	assert.ErrorIs(t, err, types.ErrTermNotFound)
}

func TestInvalidSparsity(t *testing.T) {
	opts := noTagging()
	opts.Sparse = 1.5

	_, err := NewPipeline(opts, Deps{})
	assert.ErrorIs(t, err, types.ErrInvalidSparsity)
}

func TestCustomStopWords(t *testing.T) {
	en, err := dic.LoadDic("en")
	require.NoError(t, err)

	p, err := NewPipeline(noTagging(), Deps{StopWords: en.With("forest")})
	require.NoError(t, err)
	r, _, err := p.Run(fixture(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"river", "runs"}, r.Terms())
}

func TestEmptyResult(t *testing.T) {
	m, err := matrix.FromTriplets([]string{"the", "ox"}, []string{"1"}, []int{0, 1}, []int{0, 0}, []float64{1, 1})
	require.NoError(t, err)

	r, err := Filter(m, noTagging())
	require.NoError(t, err)
	nt, nd := r.Dims()
	assert.Equal(t, 0, nt)
	assert.Equal(t, 1, nd)
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
