// Package metrics records filter runs in a per-process Prometheus registry
// that is dumped to a node_exporter textfile when the batch ends.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tdmfilter/internal/types"
)

type Recorder struct {
	registry *prometheus.Registry

	TermsRemoved   *prometheus.CounterVec
	DocsRemoved    *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	TaggerChunks   prometheus.Counter
	FilesProcessed *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		TermsRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tdmfilter_stage_terms_removed_total",
				Help: "Terms removed by each filter stage.",
			},
			[]string{"stage"},
		),
		DocsRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tdmfilter_stage_docs_removed_total",
				Help: "Documents removed by each filter stage.",
			},
			[]string{"stage"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tdmfilter_stage_duration_seconds",
				Help:    "Filter stage latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
			},
			[]string{"stage"},
		),
		TaggerChunks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tdmfilter_tagger_chunks_total",
				Help: "Pseudo-sentences sent to the POS tagger.",
			},
		),
		FilesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tdmfilter_files_processed_total",
				Help: "Input files by result (ok, error).",
			},
			[]string{"result"},
		),
	}

	r.registry.MustRegister(
		r.TermsRemoved,
		r.DocsRemoved,
		r.StageDuration,
		r.TaggerChunks,
		r.FilesProcessed,
	)
	return r
}

// ObserveStage makes the Recorder a pipeline observer.
func (r *Recorder) ObserveStage(sr types.StageReport) {
	r.TermsRemoved.WithLabelValues(sr.Stage).Add(float64(sr.TermsRemoved()))
	r.DocsRemoved.WithLabelValues(sr.Stage).Add(float64(sr.DocsRemoved()))
	r.StageDuration.WithLabelValues(sr.Stage).Observe(sr.Elapsed.Seconds())
}

func (r *Recorder) FileDone(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.FilesProcessed.WithLabelValues(result).Inc()
}

// TrackTagCache exports the cumulative hit/miss counts of a tag cache.
func (r *Recorder) TrackTagCache(stats func() (hits, misses int64)) {
	r.registry.MustRegister(
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "tdmfilter_tag_cache_hits_total",
				Help: "Tag cache hits.",
			},
			func() float64 {
				h, _ := stats()
				return float64(h)
			},
		),
		prometheus.NewCounterFunc(
			prometheus.CounterOpts{
				Name: "tdmfilter_tag_cache_misses_total",
				Help: "Tag cache misses.",
			},
			func() float64 {
				_, m := stats()
				return float64(m)
			},
		),
	)
}

// InstrumentTagger counts every chunk handed to t.
func (r *Recorder) InstrumentTagger(t types.Tagger) types.Tagger {
	return countingTagger{inner: t, chunks: r.TaggerChunks}
}

type countingTagger struct {
	inner  types.Tagger
	chunks prometheus.Counter
}

func (ct countingTagger) Tag(text string) ([]types.TaggedToken, error) {
	ct.chunks.Inc()
	return ct.inner.Tag(text)
}

// WriteTextfile dumps the registry in the text exposition format. The file
// is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
