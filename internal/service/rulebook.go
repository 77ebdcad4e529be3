package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/rules"
)

// similarDistance is the largest edit distance reported as a near-duplicate
// pattern during expurgo.
const similarDistance = 2

// RuleBook owns the rule catalog: authoring, ordering and cleanup.
type RuleBook struct {
	Rules      *repository.RuleRepo
	Categories *repository.CategoryRepo
	Ledger     *repository.TransactionRepo
	Log        zerolog.Logger
}

// List returns the rules most specific first, with categories hydrated.
func (b *RuleBook) List(ctx context.Context) ([]model.Rule, error) {
	rs, err := b.Rules.List(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := b.Categories.Index(ctx)
	if err != nil {
		return nil, err
	}
	for i := range rs {
		rs[i].Category.Resolve(idx)
	}
	return rules.SortBySpecificity(rs), nil
}

// Add stores r, replacing the category of an identical pattern and flow,
// and returns the stored rule.
func (b *RuleBook) Add(ctx context.Context, r model.Rule) (model.Rule, error) {
	r = model.NewRule(r.Pattern, r.Flow, r.Category)
	if r.Pattern == "" {
		return model.Rule{}, ErrEmptyPattern
	}
	if _, err := b.Adopt(ctx, []model.Rule{r}); err != nil {
		return model.Rule{}, err
	}
	return r, nil
}

// Adopt stores the given rules, replacing the category of any identical
// pattern and flow. Rules already stored as given and empty patterns are
// ignored. It returns how many rules changed; nothing is written when none
// did.
func (b *RuleBook) Adopt(ctx context.Context, in []model.Rule) (int, error) {
	rs, err := b.Rules.List(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, r := range in {
		r = model.NewRule(r.Pattern, r.Flow, r.Category)
		if r.Pattern == "" {
			continue
		}
		replaced := false
		for i := range rs {
			if rs[i].ID != r.ID {
				continue
			}
			replaced = true
			if rs[i].Category.ID() != r.Category.ID() {
				rs[i] = r
				changed++
				b.Log.Info().Str("pattern", r.Pattern).Str("flow", string(r.Flow)).Msg("rule category replaced")
			}
		}
		if !replaced {
			rs = append(rs, r)
			changed++
			b.Log.Info().Str("pattern", r.Pattern).Str("flow", string(r.Flow)).Msg("rule stored")
		}
	}
	if changed == 0 {
		return 0, nil
	}
	rs, _ = rules.Dedupe(rs)
	if err := b.Rules.Save(ctx, rules.SortBySpecificity(rs)); err != nil {
		b.Log.Error().Err(err).Msg("save rules")
		return 0, err
	}
	return changed, nil
}

// Repoint moves every rule of category from to category to. Rule ids
// derive from pattern and flow, so they survive the move.
func (b *RuleBook) Repoint(ctx context.Context, from, to string) (int, error) {
	rs, err := b.Rules.List(ctx)
	if err != nil {
		return 0, err
	}
	moved := 0
	for i := range rs {
		if rs[i].Category.ID() == from {
			rs[i].Category = model.RefID[model.Category](to)
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	if err := b.Rules.Save(ctx, rs); err != nil {
		b.Log.Error().Err(err).Msg("save rules")
		return 0, err
	}
	return moved, nil
}

// DropOrphans removes rules whose category no longer exists.
func (b *RuleBook) DropOrphans(ctx context.Context) (int, error) {
	rs, err := b.Rules.List(ctx)
	if err != nil {
		return 0, err
	}
	idx, err := b.Categories.Index(ctx)
	if err != nil {
		return 0, err
	}
	kept, removed := rules.DropOrphans(rs, idx)
	if removed == 0 {
		return 0, nil
	}
	if err := b.Rules.Save(ctx, kept); err != nil {
		b.Log.Error().Err(err).Msg("save rules")
		return 0, err
	}
	return removed, nil
}

// Expurgo runs dedupe, orphan and unused pruning and re-sorts the catalog.
// Near-identical patterns are logged, never removed.
func (b *RuleBook) Expurgo(ctx context.Context) (rules.Report, error) {
	rs, err := b.Rules.List(ctx)
	if err != nil {
		return rules.Report{}, err
	}
	idx, err := b.Categories.Index(ctx)
	if err != nil {
		return rules.Report{}, err
	}
	categorized, err := b.Ledger.List(ctx)
	if err != nil {
		return rules.Report{}, err
	}

	kept, rep := rules.Expurgo(rs, idx, categorized)
	for _, p := range rules.Similar(kept, similarDistance) {
		b.Log.Info().
			Str("a", p.A.Pattern).
			Str("b", p.B.Pattern).
			Int("distance", p.Distance).
			Msg("similar rule patterns")
	}
	if err := b.Rules.Save(ctx, kept); err != nil {
		b.Log.Error().Err(err).Msg("save rules")
		return rules.Report{}, err
	}
	b.Log.Info().
		Int("before", rep.Before).
		Int("duplicates", rep.Duplicates).
		Int("orphans", rep.Orphans).
		Int("unused", rep.Unused).
		Int("after", rep.After).
		Msg("expurgo done")
	return rep, nil
}
