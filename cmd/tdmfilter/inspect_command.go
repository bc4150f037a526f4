package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"tdmfilter/internal/codec"
	"tdmfilter/internal/matrix"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "inspect [--top N] FILE",
		Short: "Show dimensions, sparsity and the most frequent terms of a matrix file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			m, err := codec.ReadFile(args[0])
			if err != nil {
				return err
			}
			printInspect(cmd.OutOrStdout(), args[0], m, top)
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", 10, "Number of terms to list by document frequency")
	return cmd
}

type termStat struct {
	term  string
	df    int
	total int
}

// topTerms ranks by document frequency, then total count, then term.
func topTerms(m *matrix.TDM, n int) []termStat {
	df := m.DocFreqs()
	tt := m.TermTotals()
	stats := make([]termStat, len(df))
	for i := range df {
		stats[i] = termStat{term: m.Term(i), df: df[i], total: tt[i]}
	}
	sort.Slice(stats, func(a, b int) bool {
		if stats[a].df != stats[b].df {
			return stats[a].df > stats[b].df
		}
		if stats[a].total != stats[b].total {
			return stats[a].total > stats[b].total
		}
		return stats[a].term < stats[b].term
	})
	if n >= 0 && n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

func printInspect(w io.Writer, name string, m *matrix.TDM, top int) {
	nt, nd := m.Dims()
	fmt.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "terms: %d  docs: %d  non-zero: %d  sparsity: %.2f%%\n",
		nt, nd, m.NNZ(), m.Sparsity()*100)

	stats := topTerms(m, top)
	if len(stats) == 0 {
		return
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{s.term, strconv.Itoa(s.df), strconv.Itoa(s.total)})
	}
	fmt.Fprintln(w, renderTable(w,
		[]string{"Term", "Docs", "Count"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))
}
