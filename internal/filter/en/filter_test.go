package en

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tdmfilter/internal/filter/dic"
	"tdmfilter/internal/matrix"
	"tdmfilter/internal/types"
)

// termsOnly builds a one-document matrix where every term occurs once.
func termsOnly(t *testing.T, terms ...string) *matrix.TDM {
	i := make([]int, len(terms))
	j := make([]int, len(terms))
	v := make([]float64, len(terms))
	for k := range terms {
		i[k] = k
		v[k] = 1
	}
	m, err := matrix.FromTriplets(terms, []string{"d1"}, i, j, v)
	require.NoError(t, err)
	return m
}

// fakeTagger tags by dictionary lookup, "XX" for unknown words, and splits
// words listed in split the way a treebank tokenizer splits "gonna".
type fakeTagger struct {
	tags  map[string]string
	split map[string][]string
	calls []string
	err   error
}

func (f *fakeTagger) Tag(text string) ([]types.TaggedToken, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	var r []types.TaggedToken
	for _, w := range strings.Fields(text) {
		parts, ok := f.split[w]
		if !ok {
			parts = []string{w}
		}
		for _, p := range parts {
			tag, ok := f.tags[p]
			if !ok {
				tag = "XX"
			}
			r = append(r, types.TaggedToken{Text: p, Tag: tag})
		}
	}
	return r, nil
}

func TestStopWord(t *testing.T) {
	en, err := dic.LoadDic("en")
	require.NoError(t, err)

	m := termsOnly(t, "i", "am", "the", "cat", "forest")
	r, err := StopWordFilter{Dic: en}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "forest"}, r.Terms())
}

func TestShortWord(t *testing.T) {
	m := termsOnly(t, "ox", "cat", "tree", "forest")
	r, err := ShortWordFilter{}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"tree", "forest"}, r.Terms())

	// characters, not bytes
	m = termsOnly(t, "été", "arbre")
	r, err = ShortWordFilter{}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"arbre"}, r.Terms())
}

func TestRepeatedChar(t *testing.T) {
	m := termsOnly(t, "seeee", "normal", "aaaa1")
	r, err := RepeatedCharFilter{}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"normal"}, r.Terms())
}

func TestHasRun(t *testing.T) {
	assert.True(t, HasRun("aaa", 3))
	assert.True(t, HasRun("xx111", 3))
	assert.False(t, HasRun("aabbaa", 3))
	assert.False(t, HasRun("", 3))
	assert.True(t, HasRun("ééé", 3))
	assert.True(t, HasRun("zzzzz", 5))
	assert.False(t, HasRun("zzzz", 5))
	assert.True(t, HasRun("x", 1))
}

func TestNonASCII(t *testing.T) {
	m := termsOnly(t, "café", "hello", "naïve")
	r, err := NonASCIIFilter{}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, r.Terms())

	assert.True(t, ASCIIClean("plain-text_1"))
	assert.False(t, ASCIIClean("日本"))
}

func TestLexicalFiltersIdempotent(t *testing.T) {
	en, err := dic.LoadDic("en")
	require.NoError(t, err)

	m := termsOnly(t, "the", "ox", "forest", "seeee", "café", "river", "between", "zzzzz")
	for _, f := range []types.Filter{
		StopWordFilter{Dic: en},
		ShortWordFilter{},
		RepeatedCharFilter{},
		NonASCIIFilter{},
	} {
		once, err := f.Gen(m)
		require.NoError(t, err)
		twice, err := f.Gen(once)
		require.NoError(t, err)
		assert.Equal(t, once.Terms(), twice.Terms(), f.Name())
	}
}

func TestNouns(t *testing.T) {
	tg := &fakeTagger{tags: map[string]string{
		"dog": "NN", "runs": "VBZ", "quickly": "RB",
	}}
	m := termsOnly(t, "dog", "runs", "quickly")

	r, err := NounsFilter{Tagger: tg}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"dog"}, r.Terms())
	assert.Equal(t, []string{"dog runs quickly"}, tg.calls)
}

func TestNounsOnlySingularCommon(t *testing.T) {
	tg := &fakeTagger{tags: map[string]string{
		"forest": "NN", "rivers": "NNS", "london": "NNP", "mountain": "NN",
	}}
	m := termsOnly(t, "forest", "rivers", "london", "mountain")

	r, err := NounsFilter{Tagger: tg}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"forest", "mountain"}, r.Terms())

	r, err = NounsFilter{Tagger: tg, Tags: []string{"NN", "NNS"}}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"forest", "rivers", "mountain"}, r.Terms())
}

func TestNounsChunks(t *testing.T) {
	tg := &fakeTagger{tags: map[string]string{"alpha": "NN", "delta": "NN", "gamma": "NN"}}
	m := termsOnly(t, "alpha", "beta", "gamma", "delta", "epsilon")

	r, err := NounsFilter{Tagger: tg, ChunkSize: 2}.Gen(m)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "gamma", "delta"}, r.Terms())
	assert.Equal(t, []string{"alpha beta", "gamma delta", "epsilon"}, tg.calls)
}

func TestNounsCleansTerms(t *testing.T) {
	tg := &fakeTagger{tags: map[string]string{"email": "NN"}}
	m := termsOnly(t, "e-mail", "----")

	r, err := NounsFilter{Tagger: tg}.Gen(m)
	require.NoError(t, err)
	// "----" has nothing to tag and never reaches the tagger
	assert.Equal(t, []string{"e-mail"}, r.Terms())
	assert.Equal(t, []string{"email"}, tg.calls)
}

// A tokenizer that turns one word into two tokens misaligns every later
// word in the chunk; the filter refuses to guess. The prose treebank
// tokenizer does this to gonna, gotta, wanna, gimme and lemme ("wanna" ->
// "wan" "na"), so one such term fails the whole noun stage.
func TestNounsAlignmentFailure(t *testing.T) {
	tg := &fakeTagger{
		tags:  map[string]string{"forest": "NN"},
		split: map[string][]string{"gonna": {"gon", "na"}},
	}
	m := termsOnly(t, "gonna", "forest")

	_, err := NounsFilter{Tagger: tg}.Gen(m)
	assert.ErrorIs(t, err, types.ErrTagAlignment)
}

func TestNounsTaggerFailure(t *testing.T) {
	tg := &fakeTagger{err: errors.New("model unavailable")}
	m := termsOnly(t, "forest")

	_, err := NounsFilter{Tagger: tg}.Gen(m)
	assert.ErrorIs(t, err, types.ErrTagging)
}

func TestPair(t *testing.T) {
	tags, err := Pair([]string{"dog", "runs"}, []types.TaggedToken{{Text: "dog", Tag: "NN"}, {Text: "runs", Tag: "VBZ"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"NN", "VBZ"}, tags)

	_, err = Pair([]string{"dog", "runs"}, []types.TaggedToken{{Text: "runs", Tag: "VBZ"}, {Text: "dog", Tag: "NN"}})
	assert.ErrorIs(t, err, types.ErrTagAlignment)
}
