package tokenizer

import (
	"fmt"
	"sync"

	"github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"

	"tdmfilter/internal/common"
	"tdmfilter/internal/types"
)

var (
	modelOnce sync.Once
	model     *tag.PerceptronTagger
)

// sharedModel loads the averaged perceptron weights once per process.
func sharedModel() *tag.PerceptronTagger {
	modelOnce.Do(func() {
		common.DINFO("Loading perceptron tagger model")
		model = tag.NewPerceptronTagger()
	})
	return model
}

// PosTagTokenizer splits text into sentences (punkt), sentences into words
// (treebank) and tags each word with the perceptron model. Calls to Tag are
// serialised.
type PosTagTokenizer struct {
	mu        sync.Mutex
	sentences *tokenize.PunktSentenceTokenizer
	words     *tokenize.TreebankWordTokenizer
	tagger    *tag.PerceptronTagger
}

func NewPosTagTokenizer() *PosTagTokenizer {
	return &PosTagTokenizer{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
		tagger:    sharedModel(),
	}
}

func (ptz *PosTagTokenizer) Tag(text string) (res []types.TaggedToken, err error) {
	ptz.mu.Lock()
	defer ptz.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			res = nil
			err = fmt.Errorf("%w: %v", types.ErrTagging, p)
		}
	}()

	for _, s := range ptz.sentences.Tokenize(text) {
		words := ptz.words.Tokenize(s)
		if len(words) == 0 {
			continue
		}
		for _, tok := range ptz.tagger.Tag(words) {
			res = append(res, types.TaggedToken{
				Text: tok.Text,
				Tag:  tok.Tag,
			})
		}
	}
	return res, nil
}
