package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
)

func TestCatalogSaveDerivesID(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEnv(t)

	saved, err := e.catalog.Save(ctx, model.Category{Name: " Pets ", Kind: model.Expense("Casa", model.ExpenseVariable)})
	require.NoError(t, err)
	require.Equal(t, model.NewCategory("Pets", model.Expense("Casa", model.ExpenseVariable)).ID, saved.ID)

	_, err = e.catalog.Save(ctx, saved)
	require.NoError(t, err)
	cats, err := e.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
}

func TestCatalogDelete(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEnv(t)
	rideRule := rule("uber", model.FlowDebit, catRide)
	foodRule := rule("ifood", model.FlowDebit, catFood)
	e.seed(t, []model.Category{catFood, catRide}, rideRule, foodRule)

	a := tx("uber trip", "-18", 3)
	a.Category = model.RefID[model.Category](catRide.ID)
	a.OriginRule = model.RefID[model.Rule](rideRule.ID)
	b := tx("ifood", "-30", 4)
	b.Category = model.RefID[model.Category](catFood.ID)
	c := tx("uber trip back", "-20", 3)
	c.Category = model.RefID[model.Category](catRide.ID)
	require.NoError(t, e.repos.Ledger.Save(ctx, []model.Transaction{a, b, c}))

	rep, err := e.catalog.Delete(ctx, catRide.ID)
	require.NoError(t, err)
	require.Equal(t, DeleteReport{Recategorized: 2, RulesRemoved: 1}, rep)

	ledger, err := e.repos.Ledger.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{b.ID}, ids(ledger))
	pending, err := e.repos.Pending.List(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{a.ID, c.ID}, ids(pending))

	rs, err := e.repos.Rules.List(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 1)
	require.Equal(t, foodRule.ID, rs[0].ID)

	_, err = e.catalog.Delete(ctx, catRide.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogRenameMovesReferences(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEnv(t)
	rideRule := rule("uber", model.FlowDebit, catRide)
	foodRule := rule("ifood", model.FlowDebit, catFood)
	e.seed(t, []model.Category{catFood, catRide}, rideRule, foodRule)
	a := tx("uber trip", "-18", 3)
	a.Category = model.RefID[model.Category](catRide.ID)
	a.OriginRule = model.RefID[model.Rule](rideRule.ID)
	b := tx("ifood", "-30", 4)
	b.Category = model.RefID[model.Category](catFood.ID)
	require.NoError(t, e.repos.Ledger.Save(ctx, []model.Transaction{a, b}))

	renamed, err := e.catalog.Rename(ctx, catRide.ID, " Táxi ")
	require.NoError(t, err)
	require.Equal(t, "Táxi", renamed.Name)
	require.Equal(t, catRide.Kind, renamed.Kind)
	require.NotEqual(t, catRide.ID, renamed.ID)

	idx, err := e.repos.Categories.Index(ctx)
	require.NoError(t, err)
	require.Len(t, idx, 2)
	require.NotContains(t, idx, catRide.ID)
	require.Contains(t, idx, renamed.ID)

	rs, err := e.repos.Rules.List(ctx)
	require.NoError(t, err)
	byID := model.IndexOf(rs)
	require.Equal(t, renamed.ID, byID[rideRule.ID].Category.ID())
	require.Equal(t, catFood.ID, byID[foodRule.ID].Category.ID())

	ledger, err := e.repos.Ledger.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{a.ID, b.ID}, ids(ledger))
	require.Equal(t, renamed.ID, ledger[0].Category.ID())
	require.Equal(t, rideRule.ID, ledger[0].OriginRule.ID())

	// expurgo sees no orphan after the move
	rep, err := e.rulebook.Expurgo(ctx)
	require.NoError(t, err)
	require.Zero(t, rep.Orphans)

	_, err = e.catalog.Rename(ctx, catRide.ID, "Outro")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = e.catalog.Rename(ctx, renamed.ID, "  ")
	require.ErrorIs(t, err, ErrEmptyName)

	same, err := e.catalog.Rename(ctx, renamed.ID, "Táxi")
	require.NoError(t, err)
	require.Equal(t, renamed.ID, same.ID)
}

func TestCatalogRenameFailureKeepsOldCategory(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEnv(t)
	rideRule := rule("uber", model.FlowDebit, catRide)
	e.seed(t, []model.Category{catRide}, rideRule)
	a := tx("uber trip", "-18", 3)
	a.Category = model.RefID[model.Category](catRide.ID)
	require.NoError(t, e.repos.Ledger.Save(ctx, []model.Transaction{a}))

	e.docs.fail(repository.CategorizedDoc)
	_, err := e.catalog.Rename(ctx, catRide.ID, "Táxi")
	require.ErrorIs(t, err, errDiskFull)

	idx, err := e.repos.Categories.Index(ctx)
	require.NoError(t, err)
	require.Contains(t, idx, catRide.ID)
	ledger, err := e.repos.Ledger.List(ctx)
	require.NoError(t, err)
	require.Equal(t, catRide.ID, ledger[0].Category.ID())
}

func TestCatalogFind(t *testing.T) {
	t.Parallel()
	ctx := testCtx(t)
	e := newEnv(t)
	otherFood := model.NewCategory("restaurante", model.Expense("Viagem", model.ExpenseVariable))
	e.seed(t, []model.Category{catFood, catRide, otherFood})

	got, err := e.catalog.Find(ctx, catRide.ID)
	require.NoError(t, err)
	require.Equal(t, catRide.ID, got.ID)

	got, err = e.catalog.Find(ctx, strings.ToUpper(catRide.ID[:8]))
	require.NoError(t, err)
	require.Equal(t, catRide.ID, got.ID)

	got, err = e.catalog.Find(ctx, " aplicativo ")
	require.NoError(t, err)
	require.Equal(t, catRide.ID, got.ID)

	_, err = e.catalog.Find(ctx, "Restaurante")
	require.ErrorIs(t, err, ErrAmbiguous)

	_, err = e.catalog.Find(ctx, catRide.ID[:3])
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSplitByFlow(t *testing.T) {
	t.Parallel()
	transfer := model.NewCategory("Entre contas", model.Transfer())
	none := model.NewCategory("Sem categoria", model.Uncategorized())
	invest := model.NewCategory("Aplicação", model.Investment())
	ret := model.NewCategory("Resgate", model.Return())
	cats := []model.Category{catFood, catPay, transfer, none, invest, ret}

	credit, debit := Split(cats)
	require.Equal(t, []model.Category{catPay, transfer, none, ret}, credit)
	require.Equal(t, []model.Category{catFood, transfer, none, invest}, debit)
	require.Equal(t, credit, ForFlow(cats, model.FlowCredit))
	require.Equal(t, debit, ForFlow(cats, model.FlowDebit))
}
