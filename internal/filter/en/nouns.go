package en

import (
	"errors"
	"fmt"
	"strings"

	"tdmfilter/internal/common"
	"tdmfilter/internal/matrix"
	"tdmfilter/internal/tokenizer"
	"tdmfilter/internal/types"
)

const DefaultChunkSize = 1000

var DefaultNounTags = []string{"NN"}

// NounsFilter keeps the terms the tagger labels with one of Tags. Terms are
// tagged ChunkSize at a time, each chunk joined into one pseudo-sentence.
type NounsFilter struct {
	Tagger    types.Tagger
	ChunkSize int
	Tags      []string
}

func (NounsFilter) Name() string {
	return "nouns"
}

func (f NounsFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	wanted := f.Tags
	if len(wanted) == 0 {
		wanted = DefaultNounTags
	}
	allow := make(map[string]struct{}, len(wanted))
	for _, t := range wanted {
		allow[t] = struct{}{}
	}

	tags, err := TagTerms(f.Tagger, m.Terms(), f.ChunkSize)
	if err != nil {
		return nil, err
	}

	rows := make([]int, 0, len(tags))
	for i, tag := range tags {
		if _, ok := allow[tag]; ok {
			rows = append(rows, i)
		}
	}
	return m.SelectTerms(rows)
}

// TagTerms returns one tag per term, in term order. Terms with nothing left
// after cleaning get the empty tag and are never sent to the tagger.
func TagTerms(tagger types.Tagger, terms []string, chunkSize int) ([]string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	tags := make([]string, len(terms))

	for ci, lo := 0, 0; lo < len(terms); ci, lo = ci+1, lo+chunkSize {
		hi := common.Min(lo+chunkSize, len(terms))

		pos := make([]int, 0, hi-lo)
		words := make([]string, 0, hi-lo)
		for i := lo; i < hi; i++ {
			w := tokenizer.Clean(terms[i])
			if w == "" {
				common.DWARN("term %q has no letters or digits, not tagged", terms[i])
				continue
			}
			pos = append(pos, i)
			words = append(words, w)
		}
		if len(words) == 0 {
			continue
		}

		common.DINFO("tagging chunk %v: %v terms", ci, len(words))
		tokens, err := tagger.Tag(strings.Join(words, " "))
		if err != nil {
			if !errors.Is(err, types.ErrTagging) {
				err = fmt.Errorf("%w: %w", types.ErrTagging, err)
			}
			return nil, fmt.Errorf("chunk %d: %w", ci, err)
		}
		paired, err := Pair(words, tokens)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", ci, err)
		}
		for k, i := range pos {
			tags[i] = paired[k]
		}
	}
	return tags, nil
}

// Pair matches tagger tokens to words one to one. A tokenizer that splits or
// merges a word breaks the pairing and is reported, never guessed around.
func Pair(words []string, tokens []types.TaggedToken) ([]string, error) {
	if len(tokens) != len(words) {
		return nil, fmt.Errorf("%w: %d words, %d tokens", types.ErrTagAlignment, len(words), len(tokens))
	}
	tags := make([]string, len(words))
	for i, tok := range tokens {
		if tok.Text != words[i] {
			return nil, fmt.Errorf("%w: word %d is %q, token is %q", types.ErrTagAlignment, i, words[i], tok.Text)
		}
		tags[i] = tok.Tag
	}
	return tags, nil
}
