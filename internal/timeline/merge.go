// Package timeline merges parsed utterance sequences into one time-ordered
// timeline and renders it to the tabular output contract.
package timeline

import (
	"sort"

	"github.com/classpulse/classpulse/internal/model"
)

// Merge concatenates the caption and chat sequences and orders them by
// StartSeconds. Records with absent timing sort as 0. The sort is stable:
// among equal or absent keys the original per-source arrival order is the
// tie-break, which keeps output reproducible across runs.
func Merge(captions, chat []model.Utterance) []model.Utterance {
	merged := make([]model.Utterance, 0, len(captions)+len(chat))
	merged = append(merged, captions...)
	merged = append(merged, chat...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Seconds() < merged[j].Seconds()
	})

	return merged
}
