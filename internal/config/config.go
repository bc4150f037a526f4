// Package config loads tdmfilter settings from YAML or TOML files with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"tdmfilter/internal/engine"
	"tdmfilter/internal/filter/dic"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	Filter  FilterConfig  `yaml:"filter" toml:"filter"`
	Tagger  TaggerConfig  `yaml:"tagger" toml:"tagger"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
	Workers int           `yaml:"workers" toml:"workers"`
}

// FilterConfig mirrors engine.Options plus the stopword sources.
type FilterConfig struct {
	Word           string   `yaml:"word" toml:"word"`
	Sparse         float64  `yaml:"sparse" toml:"sparse"`
	POSTag         bool     `yaml:"postag" toml:"postag"`
	MaxShortLength int      `yaml:"maxShortLength" toml:"max_short_length"`
	RepeatRun      int      `yaml:"repeatRun" toml:"repeat_run"`
	ChunkSize      int      `yaml:"chunkSize" toml:"chunk_size"`
	NounTags       []string `yaml:"nounTags" toml:"noun_tags"`
	ExtraStopwords []string `yaml:"extraStopwords" toml:"extra_stopwords"`
	StopwordsFile  string   `yaml:"stopwordsFile" toml:"stopwords_file"`
}

// TaggerConfig sizes the tag cache shared by all files of one invocation.
// CacheSize 0 disables caching.
type TaggerConfig struct {
	CacheSize int64 `yaml:"cacheSize" toml:"cache_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig names the node_exporter textfile the registry is dumped to.
// Empty disables the dump.
type MetricsConfig struct {
	Textfile string `yaml:"textfile" toml:"textfile"`
}

func Default() *Config {
	opts := engine.DefaultOptions()
	return &Config{
		Filter: FilterConfig{
			Word:           opts.Word,
			Sparse:         opts.Sparse,
			POSTag:         opts.POSTag,
			MaxShortLength: opts.MaxShortLength,
			RepeatRun:      opts.RepeatRun,
			ChunkSize:      opts.ChunkSize,
			NounTags:       opts.NounTags,
		},
		Tagger: TaggerConfig{
			CacheSize: 256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Workers: 1,
	}
}

// Load reads path (if non-empty) on top of the defaults, applies TDMFILTER_*
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	}
	return fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, filepath.Ext(path))
}

func (c *Config) Options() engine.Options {
	f := c.Filter
	return engine.Options{
		Word:           f.Word,
		Sparse:         f.Sparse,
		POSTag:         f.POSTag,
		MaxShortLength: f.MaxShortLength,
		RepeatRun:      f.RepeatRun,
		ChunkSize:      f.ChunkSize,
		NounTags:       append([]string(nil), f.NounTags...),
	}
}

// StopWords is the builtin English dictionary extended by StopwordsFile and
// ExtraStopwords.
func (c *Config) StopWords() (*dic.StopWordsDic, error) {
	sd, err := dic.LoadDic("en")
	if err != nil {
		return nil, err
	}
	extra := c.Filter.ExtraStopwords
	if c.Filter.StopwordsFile != "" {
		fd, err := dic.LoadFile(c.Filter.StopwordsFile)
		if err != nil {
			return nil, err
		}
		extra = append(fd.Words(), extra...)
	}
	if len(extra) == 0 {
		return sd, nil
	}
	return sd.With(extra...), nil
}
