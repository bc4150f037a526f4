package dic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnglish(t *testing.T) {
	en, err := LoadDic("en")
	require.NoError(t, err)
	assert.Equal(t, 174, en.Len())

	for _, w := range []string{"the", "and", "i'm", "ourselves", "very"} {
		assert.True(t, en.TestWords(w), w)
	}
	for _, w := range []string{"forest", "The", "cat", ""} {
		assert.False(t, en.TestWords(w), w)
	}

	again, err := LoadDic("en")
	require.NoError(t, err)
	assert.Same(t, en, again)
}

func TestLoadUnknown(t *testing.T) {
	_, err := LoadDic("xx")
	assert.ErrorIs(t, err, ErrUnknownDic)
}

func TestWith(t *testing.T) {
	en, err := LoadDic("en")
	require.NoError(t, err)

	ext := en.With("figure", "table")
	assert.True(t, ext.TestWords("figure"))
	assert.True(t, ext.TestWords("the"))
	assert.False(t, en.TestWords("figure"))
}

func TestReadDic(t *testing.T) {
	words, err := ReadDic(strings.NewReader("// 3\nalpha\n\n  beta \n// note\ngamma\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, words)
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "extra_stopwords.txt")
	require.NoError(t, os.WriteFile(p, []byte("// 2\nfigure\ntable\n"), 0o644))

	sd, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"figure", "table"}, sd.Words())
}

func TestBloomNoFalseNegative(t *testing.T) {
	f := NewFilter(2048, 4)
	words := []string{"alpha", "beta", "gamma", "delta"}
	for _, w := range words {
		f.AddString(w)
	}
	for _, w := range words {
		assert.True(t, f.TestString(w))
	}
	assert.Equal(t, uint64(4), f.KeySize())
}
