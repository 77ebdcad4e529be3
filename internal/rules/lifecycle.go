package rules

import (
	"github.com/agnivade/levenshtein"

	"github.com/jask/jaskfin/internal/model"
)

// Dedupe keeps the first rule for each (flow, pattern) pair and for each id.
// It returns the kept rules and how many were dropped.
func Dedupe(rs []model.Rule) ([]model.Rule, int) {
	type key struct {
		flow    model.Flow
		pattern string
	}
	seenKey := make(map[key]struct{}, len(rs))
	seenID := make(map[string]struct{}, len(rs))
	out := make([]model.Rule, 0, len(rs))
	for _, r := range rs {
		k := key{r.Flow, r.Pattern}
		if _, dup := seenKey[k]; dup {
			continue
		}
		if _, dup := seenID[r.ID]; dup {
			continue
		}
		seenKey[k] = struct{}{}
		seenID[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out, len(rs) - len(out)
}

// DropOrphans removes rules whose category id is not in categories.
func DropOrphans(rs []model.Rule, categories model.Index[model.Category]) ([]model.Rule, int) {
	out := make([]model.Rule, 0, len(rs))
	for _, r := range rs {
		if _, ok := categories[r.Category.ID()]; ok {
			out = append(out, r)
		}
	}
	return out, len(rs) - len(out)
}

// DropUnused keeps rules that are the origin rule of at least one
// categorized transaction, deduplicating the survivors again.
func DropUnused(rs []model.Rule, categorized []model.Transaction) ([]model.Rule, int) {
	used := make(map[string]struct{}, len(categorized))
	for _, t := range categorized {
		if id := t.OriginRule.ID(); id != "" {
			used[id] = struct{}{}
		}
	}
	kept := make([]model.Rule, 0, len(rs))
	for _, r := range rs {
		if _, ok := used[r.ID]; ok {
			kept = append(kept, r)
		}
	}
	kept, _ = Dedupe(kept)
	return kept, len(rs) - len(kept)
}

// Pair is two same-flow rules with near-identical patterns.
type Pair struct {
	A, B     model.Rule
	Distance int
}

// Similar lists same-flow rule pairs whose patterns differ by at most
// maxDistance edits. Identical patterns are left to Dedupe.
func Similar(rs []model.Rule, maxDistance int) []Pair {
	var out []Pair
	for i := 0; i < len(rs); i++ {
		for j := i + 1; j < len(rs); j++ {
			a, b := rs[i], rs[j]
			if a.Flow != b.Flow || a.Pattern == b.Pattern {
				continue
			}
			if d := levenshtein.ComputeDistance(a.Pattern, b.Pattern); d <= maxDistance {
				out = append(out, Pair{A: a, B: b, Distance: d})
			}
		}
	}
	return out
}
