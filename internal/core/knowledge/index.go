// Package knowledge holds the curated question/answer index and the fuzzy
// lookup used to answer donor questions without calling an LLM.
package knowledge

import (
	"github.com/agenthands/zomra/internal/core/dedupe"
	"github.com/agenthands/zomra/internal/core/fuzzy"
	"github.com/agenthands/zomra/internal/core/model"
	"github.com/agenthands/zomra/internal/core/textnorm"
)

const (
	PartialRatioThreshold   = 85
	TokenSortRatioThreshold = 80

	ScorerPartialRatio   = "partial_ratio"
	ScorerTokenSortRatio = "token_sort_ratio"
)

// Index is immutable once built. Keys are kept in build order, which is the
// tie-break order for equal scores.
type Index struct {
	entries []model.KnowledgeEntry
	keys    []string
	// cleaned holds keys stripped of punctuation for the partial pass.
	cleaned []string
	owners  []int
}

type BuildReport struct {
	Source     string               `json:"source"`
	Defaulted  bool                 `json:"defaulted"`
	Entries    int                  `json:"entries"`
	Keys       int                  `json:"keys"`
	Skipped    int                  `json:"skipped"`
	Collisions []model.KeyCollision `json:"collisions,omitempty"`
}

func NewIndex(entries []model.KnowledgeEntry) (*Index, BuildReport) {
	var report BuildReport

	kept := make([]model.KnowledgeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Answer == "" || len(e.Questions) == 0 {
			report.Skipped++
			continue
		}
		if e.Source == "" {
			e.Source = "KB"
		}
		kept = append(kept, e)
	}

	keys, collisions := dedupe.NewKeyDeduplicator(textnorm.Normalize).ResolveKeys(kept)

	ix := &Index{
		entries: kept,
		keys:    make([]string, len(keys)),
		cleaned: make([]string, len(keys)),
		owners:  make([]int, len(keys)),
	}
	for i, k := range keys {
		ix.keys[i] = k.Normalized
		ix.cleaned[i] = fuzzy.Clean(k.Normalized)
		ix.owners[i] = k.EntryIndex
	}

	report.Entries = len(kept)
	report.Keys = len(keys)
	report.Collisions = collisions
	return ix, report
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Lookup runs the partial-ratio pass and, only if it misses, the token-sort
// pass. The passes are independent attempts, never a blended score. Both
// passes ignore punctuation, so a query with no letters or digits misses.
func (ix *Index) Lookup(query string) (model.KnowledgeMatch, bool) {
	if ix == nil || len(ix.keys) == 0 {
		return model.KnowledgeMatch{}, false
	}
	nq := textnorm.Normalize(query)
	cq := fuzzy.Clean(nq)
	if cq == "" {
		return model.KnowledgeMatch{}, false
	}

	if m, ok := ix.best(cq, ix.cleaned, fuzzy.PartialRatio, PartialRatioThreshold, ScorerPartialRatio); ok {
		return m, true
	}
	return ix.best(nq, ix.keys, fuzzy.TokenSortRatio, TokenSortRatioThreshold, ScorerTokenSortRatio)
}

func (ix *Index) best(q string, choices []string, scorer fuzzy.Scorer, threshold int, name string) (model.KnowledgeMatch, bool) {
	idx, score := fuzzy.ExtractOne(q, choices, scorer)
	if idx < 0 || score < threshold {
		return model.KnowledgeMatch{}, false
	}
	return model.KnowledgeMatch{
		Entry:  ix.entries[ix.owners[idx]],
		Key:    ix.keys[idx],
		Score:  score,
		Scorer: name,
	}, true
}
