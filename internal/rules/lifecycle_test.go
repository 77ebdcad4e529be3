package rules

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskfin/internal/model"
)

func day() time.Time { return time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC) }

func categorizedBy(r model.Rule, desc string) model.Transaction {
	tx := model.NewTransaction(desc, decimal.MustParse("-10"), day(), nil)
	tx.Category = r.Category
	tx.OriginRule = model.RefTo(r)
	return tx
}

func TestDedupeKeepsFirst(t *testing.T) {
	t.Parallel()

	first := rule("ifood", model.FlowDebit, "food")
	second := rule("ifood", model.FlowDebit, "other")
	credit := rule("ifood", model.FlowCredit, "refund")

	got, removed := Dedupe([]model.Rule{first, second, credit})
	require.Equal(t, 1, removed)
	require.Len(t, got, 2)
	require.Equal(t, "food", got[0].Category.ID())
	require.Equal(t, model.FlowCredit, got[1].Flow)
}

func TestDedupeByID(t *testing.T) {
	t.Parallel()

	a := rule("netflix", model.FlowDebit, "subs")
	b := a
	b.Pattern = "netflix.com"

	got, removed := Dedupe([]model.Rule{a, b})
	require.Equal(t, 1, removed)
	require.Equal(t, []model.Rule{a}, got)
}

func TestDropOrphans(t *testing.T) {
	t.Parallel()

	food := model.NewCategory("Restaurantes", model.Expense("Lazer", model.ExpenseVariable))
	idx := model.IndexOf([]model.Category{food})

	kept := rule("ifood", model.FlowDebit, food.ID)
	orphan := rule("blockbuster", model.FlowDebit, "deleted-category")

	got, removed := DropOrphans([]model.Rule{kept, orphan}, idx)
	require.Equal(t, 1, removed)
	require.Equal(t, []model.Rule{kept}, got)
}

func TestDropUnused(t *testing.T) {
	t.Parallel()

	used := rule("padaria", model.FlowDebit, "bakery")
	unused := rule("açougue", model.FlowDebit, "butcher")
	ledger := []model.Transaction{
		categorizedBy(used, "padaria do bairro"),
		categorizedBy(used, "padaria central"),
		model.NewTransaction("manual", decimal.MustParse("-1"), day(), nil),
	}

	got, removed := DropUnused([]model.Rule{used, unused, used}, ledger)
	require.Equal(t, 2, removed)
	require.Equal(t, []model.Rule{used}, got)
}

func TestExpurgoConverges(t *testing.T) {
	t.Parallel()

	food := model.NewCategory("Restaurantes", model.Expense("Lazer", model.ExpenseVariable))
	fuel := model.NewCategory("Combustível", model.Expense("Transporte", model.ExpenseVariable))
	idx := model.IndexOf([]model.Category{food, fuel})

	short := rule("uber", model.FlowDebit, fuel.ID)
	long := rule("uber eats", model.FlowDebit, food.ID)
	dup := rule("uber", model.FlowDebit, food.ID)
	orphan := rule("locadora", model.FlowDebit, "gone")
	idle := rule("posto", model.FlowDebit, fuel.ID)
	ledger := []model.Transaction{
		categorizedBy(short, "uber trip"),
		categorizedBy(long, "uber eats order"),
		categorizedBy(orphan, "locadora centro"),
	}

	once, rep := Expurgo([]model.Rule{short, long, dup, orphan, idle}, idx, ledger)
	require.Equal(t, Report{Before: 5, Duplicates: 1, Orphans: 1, Unused: 1, After: 2}, rep)
	require.Equal(t, 3, rep.Removed())
	require.Equal(t, []string{"uber eats", "uber"}, patterns(once))
	for _, r := range once {
		require.False(t, r.Category.Hydrated())
	}

	twice, rep2 := Expurgo(once, idx, ledger)
	require.Equal(t, once, twice)
	require.Zero(t, rep2.Removed())
}

func TestSimilarReportsNearPatterns(t *testing.T) {
	t.Parallel()

	a := rule("drogasil", model.FlowDebit, "c")
	b := rule("drogasill", model.FlowDebit, "c")
	c := rule("drogasil", model.FlowCredit, "c")
	d := rule("mercado", model.FlowDebit, "c")

	got := Similar([]model.Rule{a, b, c, d}, 1)
	require.Len(t, got, 1)
	require.Equal(t, a.ID, got[0].A.ID)
	require.Equal(t, b.ID, got[0].B.ID)
	require.Equal(t, 1, got[0].Distance)
}
