package rules

import "github.com/jask/jaskfin/internal/model"

// Report counts the rules removed by each cleanup pass.
type Report struct {
	Before     int
	Duplicates int
	Orphans    int
	Unused     int
	After      int
}

// Removed is the total number of rules dropped.
func (r Report) Removed() int { return r.Duplicates + r.Orphans + r.Unused }

// Expurgo runs Dedupe, DropOrphans and DropUnused in that order and returns
// the survivors sorted by specificity with category references reduced to ids.
// Running it again on its own output changes nothing.
func Expurgo(rs []model.Rule, categories model.Index[model.Category], categorized []model.Transaction) ([]model.Rule, Report) {
	rep := Report{Before: len(rs)}
	rs, rep.Duplicates = Dedupe(rs)
	rs, rep.Orphans = DropOrphans(rs, categories)
	rs, rep.Unused = DropUnused(rs, categorized)
	rs = SortBySpecificity(rs)
	for i := range rs {
		rs[i].Category = rs[i].Category.Unresolved()
	}
	rep.After = len(rs)
	return rs, rep
}
