package config

import (
	"errors"
	"fmt"
	"strings"

	"tdmfilter/internal/filter/corpus"
)

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if err := corpus.ValidSparsity(c.Filter.Sparse); err != nil {
		add("filter.sparse: %v", err)
	}
	if c.Filter.MaxShortLength < 1 {
		add("filter.maxShortLength must be >= 1, got %d", c.Filter.MaxShortLength)
	}
	if c.Filter.RepeatRun < 2 {
		add("filter.repeatRun must be >= 2, got %d", c.Filter.RepeatRun)
	}
	if c.Filter.ChunkSize < 1 {
		add("filter.chunkSize must be >= 1, got %d", c.Filter.ChunkSize)
	}
	if c.Filter.POSTag && len(c.Filter.NounTags) == 0 {
		add("filter.nounTags is empty while postag is on")
	}
	if c.Tagger.CacheSize < 0 {
		add("tagger.cacheSize must be >= 0, got %d", c.Tagger.CacheSize)
	}
	if c.Workers < 1 {
		add("workers must be >= 1, got %d", c.Workers)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format %q", c.Logging.Format)
	}
	return errors.Join(errs...)
}
