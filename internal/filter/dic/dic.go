package dic

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"tdmfilter/internal/common"
)

//go:embed en_stopwords.txt
var enStopwords string

var (
	ErrUnknownDic = errors.New("unknown stopword dictionary")
)

var (
	mu          sync.Mutex
	stopWordDic = make(map[string]*StopWordsDic)
	builtin     = map[string]*string{
		"en": &enStopwords,
	}
)

// StopWordsDic answers exact membership. The bloom filter rejects most
// non-stopwords before the map lookup.
type StopWordsDic struct {
	bloom *Filter
	words map[string]struct{}
}

func NewStopWordsDic(words []string) *StopWordsDic {
	size := uint64(len(words)) * 16
	if size < 1024 {
		size = 1024
	}
	sd := &StopWordsDic{
		bloom: NewFilter(size, 4),
		words: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		sd.AddWords(w)
	}
	return sd
}

func (sd *StopWordsDic) AddWords(s string) {
	if _, ok := sd.words[s]; ok {
		return
	}
	sd.bloom.AddString(s)
	sd.words[s] = struct{}{}
}

func (sd *StopWordsDic) TestWords(s string) bool {
	if !sd.bloom.TestString(s) {
		return false
	}
	_, ok := sd.words[s]
	return ok
}

func (sd *StopWordsDic) Len() int {
	return len(sd.words)
}

// Words returns the dictionary sorted.
func (sd *StopWordsDic) Words() []string {
	r := make([]string, 0, len(sd.words))
	for w := range sd.words {
		r = append(r, w)
	}
	sort.Strings(r)
	return r
}

// With returns a copy extended by extra words; sd is left untouched.
func (sd *StopWordsDic) With(extra ...string) *StopWordsDic {
	words := sd.Words()
	words = append(words, extra...)
	return NewStopWordsDic(words)
}

// LoadDic returns the shared builtin dictionary for a language prefix.
func LoadDic(pre string) (*StopWordsDic, error) {
	mu.Lock()
	defer mu.Unlock()
	if sd, ok := stopWordDic[pre]; ok {
		return sd, nil
	}
	src, ok := builtin[pre]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDic, pre)
	}

	t := time.Now()
	words, err := ReadDic(strings.NewReader(*src))
	if err != nil {
		return nil, err
	}
	sd := NewStopWordsDic(words)
	stopWordDic[pre] = sd
	common.DINFO("Complete Loading Dictionary %v in %v,size: %v", pre, time.Since(t), sd.Len())
	return sd, nil
}

// LoadFile reads a dictionary file in the same format as the builtin ones.
func LoadFile(path string) (*StopWordsDic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ReadDic(f)
	if err != nil {
		return nil, fmt.Errorf("read %v: %w", path, err)
	}
	return NewStopWordsDic(words), nil
}

// ReadDic parses one word per line. An optional first line "// N" declares
// the word count; other "//" lines and blank lines are skipped.
func ReadDic(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
