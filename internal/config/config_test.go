package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefault(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, "", opts.Word)
	assert.Equal(t, 1.0, opts.Sparse)
	assert.True(t, opts.POSTag)
	assert.Equal(t, 3, opts.MaxShortLength)
	assert.Equal(t, 3, opts.RepeatRun)
	assert.Equal(t, 1000, opts.ChunkSize)
	assert.Equal(t, []string{"NN"}, opts.NounTags)
	assert.Equal(t, 1, cfg.Workers)
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "tdmfilter.yaml", `
filter:
  word: cat
  sparse: 0.95
  postag: false
  nounTags: [NN, NNS]
  extraStopwords: [forest]
logging:
  level: debug
  format: json
workers: 4
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "cat", cfg.Filter.Word)
	assert.Equal(t, 0.95, cfg.Filter.Sparse)
	assert.False(t, cfg.Filter.POSTag)
	assert.Equal(t, []string{"NN", "NNS"}, cfg.Filter.NounTags)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Workers)
	// untouched keys keep their defaults
	assert.Equal(t, 1000, cfg.Filter.ChunkSize)
}

func TestLoadTOML(t *testing.T) {
	p := writeFile(t, "tdmfilter.toml", `
workers = 2

[filter]
word = "river"
chunk_size = 500

[metrics]
textfile = "/tmp/tdmfilter.prom"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "river", cfg.Filter.Word)
	assert.Equal(t, 500, cfg.Filter.ChunkSize)
	assert.Equal(t, "/tmp/tdmfilter.prom", cfg.Metrics.Textfile)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadUnknownExtension(t *testing.T) {
	p := writeFile(t, "tdmfilter.ini", "workers=2")
	_, err := Load(p)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TDMFILTER_WORD", "whale")
	t.Setenv("TDMFILTER_SPARSE", "0.5")
	t.Setenv("TDMFILTER_POSTAG", "false")
	t.Setenv("TDMFILTER_WORKERS", "3")
	t.Setenv("TDMFILTER_STOPWORDS", "forest, river,")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "whale", cfg.Filter.Word)
	assert.Equal(t, 0.5, cfg.Filter.Sparse)
	assert.False(t, cfg.Filter.POSTag)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, []string{"forest", "river"}, cfg.Filter.ExtraStopwords)
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv("TDMFILTER_SPARSE", "lots")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadEnvFile(t *testing.T) {
	p := writeFile(t, ".env", "TDMFILTER_CHUNK_SIZE=250\n")
	t.Setenv("TDMFILTER_CHUNK_SIZE", "")
	os.Unsetenv("TDMFILTER_CHUNK_SIZE")

	require.NoError(t, LoadEnvFile(p, true))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Filter.ChunkSize)

	missing := filepath.Join(t.TempDir(), ".env")
	assert.NoError(t, LoadEnvFile(missing, false))
	assert.Error(t, LoadEnvFile(missing, true))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Filter.Sparse = 2
	cfg.Workers = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "filter.sparse")
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "logging.format")

	assert.NoError(t, Default().Validate())
}

func TestStopWords(t *testing.T) {
	p := writeFile(t, "extra.txt", "// 2\nriver\nmountain\n")
	cfg := Default()
	cfg.Filter.StopwordsFile = p
	cfg.Filter.ExtraStopwords = []string{"forest"}

	sd, err := cfg.StopWords()
	require.NoError(t, err)
	assert.True(t, sd.TestWords("the"))
	assert.True(t, sd.TestWords("river"))
	assert.True(t, sd.TestWords("mountain"))
	assert.True(t, sd.TestWords("forest"))
	assert.False(t, sd.TestWords("tree"))
}
