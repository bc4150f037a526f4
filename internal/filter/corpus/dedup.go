package corpus

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"tdmfilter/internal/matrix"
)

// DedupFilter normalises document labels (NFC, trimmed) and keeps the first
// column of every label. Counts of later duplicates are discarded, not merged.
type DedupFilter struct{}

func (DedupFilter) Name() string {
	return "dedup"
}

func (DedupFilter) Gen(m *matrix.TDM) (*matrix.TDM, error) {
	docs := m.Docs()
	labels := make([]string, len(docs))
	changed := false
	for i, d := range docs {
		labels[i] = NormalizeLabel(d)
		changed = changed || labels[i] != d
	}

	seen := make(map[string]struct{}, len(labels))
	cols := make([]int, 0, len(labels))
	for i, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		cols = append(cols, i)
	}

	if changed {
		var err error
		if m, err = m.WithDocs(labels); err != nil {
			return nil, err
		}
	}
	if len(cols) == len(labels) {
		return m, nil
	}
	return m.SelectDocs(cols)
}

func NormalizeLabel(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
