// Package rules holds the substring rule matcher and the pure cleanup passes
// that keep the rule catalog small and ordered.
package rules

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jask/jaskfin/internal/model"
)

// Match returns the first rule, in the given order, whose flow equals flow and
// whose pattern is contained in description. description is expected to be
// lower-cased already. Rules must be ordered with SortBySpecificity beforehand
// so longer patterns win over shorter ones.
func Match(description string, flow model.Flow, rules []model.Rule) (model.Rule, bool) {
	for _, r := range rules {
		if r.Flow == flow && strings.Contains(description, r.Pattern) {
			return r, true
		}
	}
	return model.Rule{}, false
}

// MatchTransaction runs Match for tx using its lower-cased description and
// its flow.
func MatchTransaction(tx model.Transaction, rules []model.Rule) (model.Rule, bool) {
	return Match(strings.ToLower(tx.Description), tx.Flow(), rules)
}

// SortBySpecificity returns a copy ordered by descending pattern length
// (in characters). Equal lengths keep their relative order.
func SortBySpecificity(rs []model.Rule) []model.Rule {
	out := append([]model.Rule(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool {
		return utf8.RuneCountInString(out[i].Pattern) > utf8.RuneCountInString(out[j].Pattern)
	})
	return out
}
