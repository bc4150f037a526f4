package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tdmfilter/internal/common"
	"tdmfilter/internal/filter/corpus"
	"tdmfilter/internal/filter/dic"
	"tdmfilter/internal/filter/en"
	"tdmfilter/internal/matrix"
	"tdmfilter/internal/tokenizer"
	"tdmfilter/internal/types"
)

type Options struct {
	Word   string  // restrict to documents containing Word; "" keeps all
	Sparse float64 // 1 disables sparse term removal
	POSTag bool    // keep only nouns

	MaxShortLength int
	RepeatRun      int
	ChunkSize      int
	NounTags       []string
}

func DefaultOptions() Options {
	return Options{
		Sparse:         1,
		POSTag:         true,
		MaxShortLength: en.DefaultMaxShortLength,
		RepeatRun:      en.DefaultRepeatRun,
		ChunkSize:      en.DefaultChunkSize,
		NounTags:       append([]string(nil), en.DefaultNounTags...),
	}
}

// Deps are the external collaborators. Nil fields get the builtin
// implementation.
type Deps struct {
	StopWords types.StopWords
	Reducer   types.SparsityReducer
	Tagger    types.Tagger
	Observers []types.Observer
}

type Report struct {
	Run     string
	Stages  []types.StageReport
	Elapsed time.Duration
}

// Pipeline runs the filter stages in a fixed order:
// subset, dedup, sparse, stopwords, short, repeated, nonascii, nouns.
type Pipeline struct {
	stages    []types.Filter
	observers []types.Observer
}

func NewPipeline(opts Options, deps Deps) (*Pipeline, error) {
	if err := corpus.ValidSparsity(opts.Sparse); err != nil {
		return nil, err
	}
	if deps.StopWords == nil {
		sd, err := dic.LoadDic("en")
		if err != nil {
			return nil, err
		}
		deps.StopWords = sd
	}
	if deps.Reducer == nil {
		deps.Reducer = corpus.SparseTermReducer{}
	}

	stages := []types.Filter{
		corpus.WordFilter{Word: opts.Word},
		corpus.DedupFilter{},
		corpus.SparseFilter{Sparse: opts.Sparse, Reducer: deps.Reducer},
		en.StopWordFilter{Dic: deps.StopWords},
		en.ShortWordFilter{MaxLength: opts.MaxShortLength},
		en.RepeatedCharFilter{Run: opts.RepeatRun},
		en.NonASCIIFilter{},
	}
	if opts.POSTag {
		if deps.Tagger == nil {
			deps.Tagger = tokenizer.NewPosTagTokenizer()
		}
		stages = append(stages, en.NounsFilter{
			Tagger:    deps.Tagger,
			ChunkSize: opts.ChunkSize,
			Tags:      opts.NounTags,
		})
	}

	return &Pipeline{
		stages:    stages,
		observers: deps.Observers,
	}, nil
}

// Stages lists stage names in execution order.
func (p *Pipeline) Stages() []string {
	r := make([]string, len(p.stages))
	for i, s := range p.stages {
		r[i] = s.Name()
	}
	return r
}

func (p *Pipeline) Run(m *matrix.TDM) (*matrix.TDM, Report, error) {
	report := Report{Run: uuid.NewString()}
	log := common.WithRun(report.Run)
	start := time.Now()

	for _, stage := range p.stages {
		next, sr, err := p.runStage(log, stage, m)
		if err != nil {
			report.Elapsed = time.Since(start)
			return nil, report, err
		}
		report.Stages = append(report.Stages, sr)
		for _, o := range p.observers {
			o.ObserveStage(sr)
		}
		m = next
	}

	report.Elapsed = time.Since(start)
	nt, nd := m.Dims()
	log.Info("filter complete", "terms", nt, "docs", nd, "elapsed", report.Elapsed)
	return m, report, nil
}

func (p *Pipeline) runStage(log *slog.Logger, stage types.Filter, m *matrix.TDM) (*matrix.TDM, types.StageReport, error) {
	name := stage.Name()
	nt, nd := m.Dims()
	sr := types.StageReport{Stage: name, TermsBefore: nt, DocsBefore: nd}

	log.Info("stage start", "stage", name, "terms", nt, "docs", nd)
	t := time.Now()
	next, err := stage.Gen(m)
	sr.Elapsed = time.Since(t)
	if err != nil {
		log.Error("stage failed", "stage", name, "error", err)
		return nil, sr, fmt.Errorf("stage %s: %w", name, err)
	}

	sr.TermsAfter, sr.DocsAfter = next.Dims()
	if sr.TermsAfter > sr.TermsBefore || sr.DocsAfter > sr.DocsBefore {
		return nil, sr, fmt.Errorf("stage %s: %w: %dx%d -> %dx%d", name, types.ErrNotMonotonic,
			sr.TermsBefore, sr.DocsBefore, sr.TermsAfter, sr.DocsAfter)
	}
	log.Info("stage done", "stage", name, "terms", sr.TermsAfter, "docs", sr.DocsAfter,
		"removed", sr.TermsRemoved(), "elapsed", sr.Elapsed)
	return next, sr, nil
}

// Filter runs the whole pipeline with the builtin collaborators.
func Filter(m *matrix.TDM, opts Options) (*matrix.TDM, error) {
	p, err := NewPipeline(opts, Deps{})
	if err != nil {
		return nil, err
	}
	r, _, err := p.Run(m)
	return r, err
}
