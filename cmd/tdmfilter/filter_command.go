package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"tdmfilter/internal/codec"
	"tdmfilter/internal/common"
	"tdmfilter/internal/config"
	"tdmfilter/internal/engine"
	"tdmfilter/internal/metrics"
	"tdmfilter/internal/tokenizer"
	"tdmfilter/internal/types"
)

type filterFlags struct {
	word        string
	sparse      float64
	postag      bool
	out         string
	workers     int
	metricsFile string
	format      string
}

type fileResult struct {
	in, out  string
	report   engine.Report
	termsIn  int
	docsIn   int
	termsOut int
	docsOut  int
	err      error
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "filter [flags] FILE...",
		Short: "Filter term-document matrix files",
		Long: "Filter each term-document matrix file and write <base>.filtered.<ext> next to it\n" +
			"(or into --out). Supported files: .tdm.gz, .json, .json.gz.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyFilterFlags(cmd, cfg, flags)
			if err := cfg.Validate(); err != nil {
				return err
			}
			var format *codec.Format
			if flags.format != "" {
				f, err := codec.ParseFormat(flags.format)
				if err != nil {
					return err
				}
				format = &f
			}
			return runFilter(cmd.Context(), cmd.OutOrStdout(), cfg, args, flags.out, format)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.word, "word", "", "Keep only documents containing this term")
	f.Float64Var(&flags.sparse, "sparse", 1, "Sparsity threshold in [0,1]; 1 keeps every term")
	f.BoolVar(&flags.postag, "postag", true, "Keep only nouns (POS tagging)")
	f.StringVar(&flags.out, "out", "", "Output directory (default: next to each input)")
	f.IntVar(&flags.workers, "workers", 1, "Files filtered concurrently")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile")
	f.StringVar(&flags.format, "format", "", "Output format: tdm, json or json.gz (default: input format)")
	return cmd
}

// applyFilterFlags lets explicitly set flags win over config and env.
func applyFilterFlags(cmd *cobra.Command, cfg *config.Config, flags filterFlags) {
	changed := cmd.Flags().Changed
	if changed("word") {
		cfg.Filter.Word = flags.word
	}
	if changed("sparse") {
		cfg.Filter.Sparse = flags.sparse
	}
	if changed("postag") {
		cfg.Filter.POSTag = flags.postag
	}
	if changed("workers") {
		cfg.Workers = flags.workers
	}
	if changed("metrics-file") {
		cfg.Metrics.Textfile = flags.metricsFile
	}
}

func runFilter(ctx context.Context, w io.Writer, cfg *config.Config, files []string, outDir string, format *codec.Format) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outputs, err := planOutputs(files, outDir, format)
	if err != nil {
		return err
	}
	rec := metrics.New()
	pipeline, err := newPipeline(cfg, rec)
	if err != nil {
		return err
	}

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, in := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = fileResult{in: in, err: err}
				return err
			}
			results[i] = filterFile(pipeline, in, outputs[i])
			rec.FileDone(results[i].err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if res.err != nil {
			common.FAIL("%s: %v", res.in, res.err)
			errs = append(errs, res.err)
			continue
		}
		printReport(w, res)
	}
	printSummary(w, results)

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	return errors.Join(errs...)
}

// newPipeline builds the one pipeline shared by every worker. The tagger and
// its cache are shared too, so a vocabulary repeated across files is tagged
// once.
func newPipeline(cfg *config.Config, rec *metrics.Recorder) (*engine.Pipeline, error) {
	sd, err := cfg.StopWords()
	if err != nil {
		return nil, err
	}
	deps := engine.Deps{
		StopWords: sd,
		Observers: []types.Observer{rec},
	}
	if cfg.Filter.POSTag {
		var tg types.Tagger = tokenizer.NewPosTagTokenizer()
		if cfg.Tagger.CacheSize > 0 {
			cached := tokenizer.NewCachedTagger(tg, cfg.Tagger.CacheSize)
			rec.TrackTagCache(cached.Stats)
			tg = cached
		}
		deps.Tagger = rec.InstrumentTagger(tg)
	}
	return engine.NewPipeline(cfg.Options(), deps)
}

// planOutputs resolves every output path before any file is filtered. Two
// inputs that would write the same file fail the whole batch.
func planOutputs(files []string, outDir string, format *codec.Format) ([]string, error) {
	outputs := make([]string, len(files))
	owner := make(map[string]string, len(files))
	for i, in := range files {
		f, err := codec.DetectFormat(in)
		if err != nil {
			return nil, err
		}
		if format != nil {
			f = *format
		}
		out, err := codec.OutputPath(in, outDir, f)
		if err != nil {
			return nil, err
		}
		key := filepath.Clean(out)
		if abs, err := filepath.Abs(out); err == nil {
			key = abs
		}
		if prev, ok := owner[key]; ok {
			return nil, fmt.Errorf("%s and %s would both write %s; rename one or filter them separately", prev, in, out)
		}
		owner[key] = in
		outputs[i] = out
	}
	return outputs, nil
}

func filterFile(p *engine.Pipeline, in, out string) fileResult {
	res := fileResult{in: in, out: out}
	if common.IsExist(res.out) {
		common.WARN("overwriting %s", res.out)
	}

	m, err := codec.ReadFile(in)
	if err != nil {
		res.err = err
		return res
	}
	res.termsIn, res.docsIn = m.Dims()

	r, report, err := p.Run(m)
	res.report = report
	if err != nil {
		res.err = fmt.Errorf("%s: %w", in, err)
		return res
	}
	res.termsOut, res.docsOut = r.Dims()

	if err := codec.WriteFile(res.out, r); err != nil {
		res.err = err
		return res
	}
	common.INFO("filtered %s -> %s (%d/%d terms, %d/%d docs)", in, res.out,
		res.termsOut, res.termsIn, res.docsOut, res.docsIn)
	return res
}

func printReport(w io.Writer, res fileResult) {
	fmt.Fprintf(w, "%s -> %s\n", res.in, res.out)
	rows := make([][]string, 0, len(res.report.Stages))
	for _, sr := range res.report.Stages {
		rows = append(rows, []string{
			sr.Stage,
			strconv.Itoa(sr.TermsAfter),
			strconv.Itoa(sr.DocsAfter),
			strconv.Itoa(sr.TermsRemoved()),
			strconv.Itoa(sr.DocsRemoved()),
			sr.Elapsed.String(),
		})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"Stage", "Terms", "Docs", "-Terms", "-Docs", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
}

func printSummary(w io.Writer, results []fileResult) {
	if len(results) < 2 {
		return
	}
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		status := "ok"
		if res.err != nil {
			status = "error"
		}
		rows = append(rows, []string{
			res.in,
			status,
			fmt.Sprintf("%d -> %d", res.termsIn, res.termsOut),
			fmt.Sprintf("%d -> %d", res.docsIn, res.docsOut),
			res.report.Elapsed.String(),
		})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"File", "Result", "Terms", "Docs", "Elapsed"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
}
