package tokenizer

import (
	"tdmfilter/internal/cache"
	"tdmfilter/internal/common"
	"tdmfilter/internal/types"
)

type cachedTags struct {
	text   string
	tokens []types.TaggedToken
}

// CachedTagger memoises whole-chunk tagging results. Repeated vocabularies
// across files in one batch produce identical chunks.
type CachedTagger struct {
	inner types.Tagger
	cache *cache.LruCache
}

func NewCachedTagger(inner types.Tagger, capacity int64) *CachedTagger {
	return &CachedTagger{
		inner: inner,
		cache: cache.NewLruCache(capacity, func(key string, _ interface{}) {
			common.DINFO("tag cache evicted chunk %s", key)
		}),
	}
}

func (ct *CachedTagger) Tag(text string) ([]types.TaggedToken, error) {
	key := common.HashString(text)
	if v, ok := ct.cache.Get(key); ok {
		if c := v.(cachedTags); c.text == text {
			return append([]types.TaggedToken(nil), c.tokens...), nil
		}
	}

	tokens, err := ct.inner.Tag(text)
	if err != nil {
		return nil, err
	}
	ct.cache.Put(key, cachedTags{
		text:   text,
		tokens: append([]types.TaggedToken(nil), tokens...),
	})
	return tokens, nil
}

func (ct *CachedTagger) Stats() (hits, misses int64) {
	return ct.cache.Stats()
}
