package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "TDMFILTER_"

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing default .env
// is not an error; a missing explicit path is.
func LoadEnvFile(path string, explicit bool) error {
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides reads TDMFILTER_* variables. Unparsable values are
// reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	if v, ok := lookup("WORD"); ok {
		cfg.Filter.Word = v
	}
	if v, ok := lookup("SPARSE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return envError("SPARSE", v, err)
		}
		cfg.Filter.Sparse = f
	}
	if v, ok := lookup("POSTAG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError("POSTAG", v, err)
		}
		cfg.Filter.POSTag = b
	}
	if v, ok := lookup("CHUNK_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("CHUNK_SIZE", v, err)
		}
		cfg.Filter.ChunkSize = n
	}
	if v, ok := lookup("STOPWORDS"); ok {
		cfg.Filter.ExtraStopwords = splitList(v)
	}
	if v, ok := lookup("STOPWORDS_FILE"); ok {
		cfg.Filter.StopwordsFile = v
	}
	if v, ok := lookup("TAG_CACHE_SIZE"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return envError("TAG_CACHE_SIZE", v, err)
		}
		cfg.Tagger.CacheSize = n
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		cfg.Logging.Format = v
	}
	if v, ok := lookup("METRICS_FILE"); ok {
		cfg.Metrics.Textfile = v
	}
	if v, ok := lookup("WORKERS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError("WORKERS", v, err)
		}
		cfg.Workers = n
	}
	return nil
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func envError(key, v string, err error) error {
	return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, envPrefix, key, v, err)
}

func splitList(v string) []string {
	var r []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			r = append(r, s)
		}
	}
	return r
}
