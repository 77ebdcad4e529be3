package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
)

// DeleteReport describes the fallout of deleting a category.
type DeleteReport struct {
	Recategorized int
	RulesRemoved  int
}

// Catalog manages the category list.
type Catalog struct {
	Categories  *repository.CategoryRepo
	Categorizer *Categorizer
	Rules       *RuleBook
	Log         zerolog.Logger
}

// List returns the categories ordered by label.
func (c *Catalog) List(ctx context.Context) ([]model.Category, error) {
	cats, err := c.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].Label() < cats[j].Label() })
	return cats, nil
}

// minPrefix is the shortest id prefix Find accepts.
const minPrefix = 6

// Find resolves ref to one category: an exact id, a unique id prefix of at
// least minPrefix characters, or a unique case-insensitive name.
func (c *Catalog) Find(ctx context.Context, ref string) (model.Category, error) {
	ref = strings.TrimSpace(ref)
	cats, err := c.Categories.List(ctx)
	if err != nil {
		return model.Category{}, err
	}
	var hits []model.Category
	for _, cat := range cats {
		if cat.ID == ref {
			return cat, nil
		}
		byPrefix := len(ref) >= minPrefix && strings.HasPrefix(cat.ID, strings.ToLower(ref))
		if byPrefix || strings.EqualFold(cat.Name, ref) {
			hits = append(hits, cat)
		}
	}
	switch len(hits) {
	case 0:
		return model.Category{}, repository.ErrNotFound
	case 1:
		return hits[0], nil
	default:
		return model.Category{}, fmt.Errorf("%w: %q matches %d categories", ErrAmbiguous, ref, len(hits))
	}
}

// Save stores cat under the id derived from its name and kind. Saving a
// known category under another name stores a second category; Rename moves
// the references instead.
func (c *Catalog) Save(ctx context.Context, cat model.Category) (model.Category, error) {
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return model.Category{}, ErrEmptyName
	}
	cat.Identify()
	if err := c.Categories.Upsert(ctx, cat); err != nil {
		c.Log.Error().Err(err).Msg("save category")
		return model.Category{}, err
	}
	return cat, nil
}

// Rename gives the category with id a new name. Since the id derives from
// the name, the renamed category gets a new id: rules, categorized and
// pending transactions are pointed at it before the old one is removed.
// A failure midway keeps the old category, so nothing is left dangling.
func (c *Catalog) Rename(ctx context.Context, id, name string) (model.Category, error) {
	idx, err := c.Categories.Index(ctx)
	if err != nil {
		return model.Category{}, err
	}
	old, ok := idx[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	renamed, err := c.Save(ctx, model.Category{Name: name, Kind: old.Kind})
	if err != nil {
		return model.Category{}, err
	}
	if renamed.ID == old.ID {
		return renamed, nil
	}

	rulesMoved, err := c.Rules.Repoint(ctx, old.ID, renamed.ID)
	if err != nil {
		return model.Category{}, err
	}
	ledgerMoved, err := repoint(ctx, c.Categorizer.Ledger, old.ID, renamed.ID)
	if err != nil {
		return model.Category{}, err
	}
	pendingMoved, err := repoint(ctx, c.Categorizer.Pending, old.ID, renamed.ID)
	if err != nil {
		return model.Category{}, err
	}
	if err := c.Categories.Delete(ctx, old.ID); err != nil {
		return model.Category{}, err
	}
	c.Log.Info().
		Str("from", old.Name).
		Str("to", renamed.Name).
		Int("rules", rulesMoved).
		Int("categorized", ledgerMoved).
		Int("pending", pendingMoved).
		Msg("category renamed")
	return renamed, nil
}

func repoint(ctx context.Context, repo *repository.TransactionRepo, from, to string) (int, error) {
	txs, err := repo.List(ctx)
	if err != nil {
		return 0, err
	}
	moved := 0
	for i := range txs {
		if txs[i].Category.ID() == from {
			txs[i].Category = model.RefID[model.Category](to)
			moved++
		}
	}
	if moved == 0 {
		return 0, nil
	}
	return moved, repo.Save(ctx, txs)
}

// Delete sends the category's categorized transactions back to pending,
// removes the category and drops the rules left pointing at nothing.
func (c *Catalog) Delete(ctx context.Context, id string) (DeleteReport, error) {
	idx, err := c.Categories.Index(ctx)
	if err != nil {
		return DeleteReport{}, err
	}
	if _, ok := idx[id]; !ok {
		return DeleteReport{}, repository.ErrNotFound
	}

	var rep DeleteReport
	if rep.Recategorized, err = c.Categorizer.RecategorizeCategory(ctx, id); err != nil {
		return rep, err
	}
	if err := c.Categories.Delete(ctx, id); err != nil {
		return rep, err
	}
	if rep.RulesRemoved, err = c.Rules.DropOrphans(ctx); err != nil {
		return rep, err
	}
	c.Log.Info().
		Str("category", idx[id].Name).
		Int("recategorized", rep.Recategorized).
		Int("rules_removed", rep.RulesRemoved).
		Msg("category deleted")
	return rep, nil
}

// Split partitions cats into the pick lists offered for credits and for
// debits. Transfer and uncategorized buckets appear in both.
func Split(cats []model.Category) (credit, debit []model.Category) {
	for _, c := range cats {
		if c.Kind.Allows(model.FlowCredit) {
			credit = append(credit, c)
		}
		if c.Kind.Allows(model.FlowDebit) {
			debit = append(debit, c)
		}
	}
	return credit, debit
}

// ForFlow returns the categories that accept flow.
func ForFlow(cats []model.Category, flow model.Flow) []model.Category {
	credit, debit := Split(cats)
	if flow == model.FlowCredit {
		return credit
	}
	return debit
}
