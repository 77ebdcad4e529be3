package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/rules"
)

// MatchResult splits the pending queue by whether a rule applied.
type MatchResult struct {
	Matched   model.Transactions
	Unmatched model.Transactions
}

// All returns matched then unmatched transactions.
func (m MatchResult) All() model.Transactions {
	out := make(model.Transactions, 0, len(m.Matched)+len(m.Unmatched))
	out = append(out, m.Matched...)
	return append(out, m.Unmatched...)
}

// Categorizer moves transactions between the pending queue and the
// categorized ledger. A transaction lives in at most one of the two.
type Categorizer struct {
	Pending    *repository.TransactionRepo
	Ledger     *repository.TransactionRepo
	Categories *repository.CategoryRepo
	Rules      *RuleBook
	Log        zerolog.Logger
}

// Enqueue adds imported transactions to the pending queue. Zero amounts and
// ids already pending or categorized are dropped. It returns how many were
// added.
func (c *Categorizer) Enqueue(ctx context.Context, txs []model.Transaction) (int, error) {
	categorized, err := c.Ledger.List(ctx)
	if err != nil {
		c.Log.Error().Err(err).Msg("load categorized")
		return 0, err
	}
	known := categorized.IDs()
	fresh := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Amount.IsZero() {
			continue
		}
		if _, ok := known[t.ID]; ok {
			continue
		}
		t.Uncategorize()
		fresh = append(fresh, t)
	}
	added, err := c.Pending.Append(ctx, fresh)
	if err != nil {
		c.Log.Error().Err(err).Msg("save pending")
		return 0, err
	}
	c.Log.Info().Int("count", added).Msgf("%d new transactions imported", added)
	return added, nil
}

// Match runs the rules over every pending transaction. Matched transactions
// carry hydrated category and origin rule and are sorted by date; nothing is
// persisted.
func (c *Categorizer) Match(ctx context.Context) (MatchResult, error) {
	pending, err := c.Pending.List(ctx)
	if err != nil {
		return MatchResult{}, err
	}
	categorized, err := c.Ledger.List(ctx)
	if err != nil {
		return MatchResult{}, err
	}
	rs, err := c.Rules.List(ctx)
	if err != nil {
		return MatchResult{}, err
	}
	idx, err := c.Categories.Index(ctx)
	if err != nil {
		return MatchResult{}, err
	}

	done := categorized.IDs()
	res := MatchResult{Matched: model.Transactions{}, Unmatched: model.Transactions{}}
	for _, t := range pending {
		if _, ok := done[t.ID]; ok {
			c.Log.Warn().Str("id", t.ID).Msg("pending transaction already categorized, dropping")
			continue
		}
		r, ok := rules.MatchTransaction(t, rs)
		if !ok {
			t.Category.Resolve(idx)
			res.Unmatched = append(res.Unmatched, t)
			continue
		}
		t.Category = r.Category
		t.Category.Resolve(idx)
		t.OriginRule = model.RefTo(r)
		res.Matched = append(res.Matched, t)
	}
	sort.SliceStable(res.Matched, func(i, j int) bool { return res.Matched[i].Date.Before(res.Matched[j].Date) })
	c.Log.Info().Int("matched", len(res.Matched)).Int("unmatched", len(res.Unmatched)).Msg("rules applied")
	return res, nil
}

// Override assigns cat to t by hand. When pattern, normalized, differs from
// the description a rule is drafted from it and becomes t's origin rule;
// otherwise the origin rule is cleared. Drafted rules are stored by Confirm,
// so abandoning the batch leaves the rule catalog untouched.
func (c *Categorizer) Override(ctx context.Context, t model.Transaction, cat model.Category, pattern string) (model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return t, err
	}
	if !cat.Kind.Allows(t.Flow()) {
		return t, ErrFlowMismatch
	}
	t.Category = model.RefTo(cat)
	t.OriginRule = model.Ref[model.Rule]{}

	p := strings.ToLower(strings.TrimSpace(pattern))
	if p == "" || p == strings.ToLower(strings.TrimSpace(t.Description)) {
		return t, nil
	}
	t.OriginRule = model.RefTo(model.NewRule(p, t.Flow(), model.RefTo(cat)))
	return t, nil
}

// Confirm appends the categorized transactions in confirmed to the ledger,
// then rewrites the pending queue with remaining, then stores the rules
// drafted by Override. Confirmed transactions without a category stay
// pending. When the pending rewrite fails the ledger is restored; a crash in
// between leaves rows in both stores, and Match drops the pending copies.
func (c *Categorizer) Confirm(ctx context.Context, confirmed, remaining []model.Transaction) (int, error) {
	var (
		ready  []model.Transaction
		drafts []model.Rule
	)
	keep := make([]model.Transaction, 0, len(remaining))
	for _, t := range confirmed {
		if t.Category.IsZero() {
			t.Uncategorize()
			keep = append(keep, t)
			continue
		}
		if r, ok := t.OriginRule.Value(); ok {
			drafts = append(drafts, r)
		}
		ready = append(ready, t)
	}
	before, err := c.Ledger.List(ctx)
	if err != nil {
		return 0, err
	}
	added, err := c.Ledger.Append(ctx, ready)
	if err != nil {
		c.Log.Error().Err(err).Msg("save categorized")
		return 0, err
	}

	done := model.Transactions(ready).IDs()
	for _, t := range remaining {
		if _, ok := done[t.ID]; ok {
			continue
		}
		keep = append(keep, t)
	}
	if err := c.Pending.Save(ctx, keep); err != nil {
		c.Log.Error().Err(err).Msg("save pending")
		if added > 0 {
			if undoErr := c.Ledger.Save(ctx, before); undoErr != nil {
				c.Log.Error().Err(undoErr).Msg("confirmed rows left in both stores")
			}
		}
		return 0, err
	}
	if len(drafts) > 0 {
		if _, err := c.Rules.Adopt(ctx, drafts); err != nil {
			return added, err
		}
	}
	c.Log.Info().Int("confirmed", added).Int("pending", len(keep)).Msg("categorization confirmed")
	return added, nil
}

// Recategorize moves the categorized transaction with id back to the pending
// queue with its category and origin rule cleared.
func (c *Categorizer) Recategorize(ctx context.Context, id string) (model.Transaction, error) {
	categorized, err := c.Ledger.List(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	var (
		t    model.Transaction
		rest = make([]model.Transaction, 0, len(categorized))
	)
	found := false
	for _, x := range categorized {
		if x.ID == id && !found {
			t, found = x, true
			continue
		}
		rest = append(rest, x)
	}
	if !found {
		return model.Transaction{}, repository.ErrNotFound
	}
	t.Uncategorize()
	// pending first: a crash in between leaves a duplicate Match drops, never
	// a transaction in neither store
	added, err := c.Pending.Append(ctx, []model.Transaction{t})
	if err != nil {
		c.Log.Error().Err(err).Msg("save pending")
		return model.Transaction{}, err
	}
	if err := c.Ledger.Save(ctx, rest); err != nil {
		c.Log.Error().Err(err).Msg("save categorized")
		if added > 0 {
			if _, undoErr := c.Pending.Take(ctx, id); undoErr != nil {
				c.Log.Error().Err(undoErr).Str("id", id).Msg("pending copy left behind")
			}
		}
		return model.Transaction{}, err
	}
	c.Log.Info().Str("id", id).Msg("transaction recategorized")
	return t, nil
}

// RecategorizeCategory moves every categorized transaction of category id
// back to pending and returns how many moved.
func (c *Categorizer) RecategorizeCategory(ctx context.Context, id string) (int, error) {
	categorized, err := c.Ledger.List(ctx)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, t := range categorized.InCategory(id) {
		if _, err := c.Recategorize(ctx, t.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return moved, err
		}
		moved++
	}
	return moved, nil
}
