package repository

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskfin/internal/model"
)

func newRepos(t *testing.T) (Repos, *MemDocuments, *bytes.Buffer) {
	t.Helper()
	docs := NewMemDocuments()
	var buf bytes.Buffer
	return New(docs, ".financeiro", zerolog.New(&buf)), docs, &buf
}

func tx(desc string, amount string, day int) model.Transaction {
	return model.NewTransaction(desc, decimal.MustParse(amount), time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC), nil)
}

func TestMissingDocumentsReadEmpty(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)

	banks, err := repos.Banks.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, banks)
	require.Empty(t, banks)

	pending, err := repos.Pending.List(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	settings, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), settings)
}

func TestMalformedDocumentReadsEmptyAndLogs(t *testing.T) {
	ctx := context.Background()
	repos, docs, logs := newRepos(t)
	require.NoError(t, docs.Save(ctx, ".financeiro", RulesDoc, []byte("{not json")))

	rules, err := repos.Rules.List(ctx)
	require.NoError(t, err)
	require.Empty(t, rules)
	require.Contains(t, logs.String(), "malformed document")
	require.Contains(t, logs.String(), RulesDoc)
}

func TestRulesStoreCategoryIDOnly(t *testing.T) {
	ctx := context.Background()
	repos, docs, _ := newRepos(t)
	cat := model.NewCategory("Mercado", model.Expense("Casa", model.ExpenseVariable))
	rule := model.NewRule("Market", model.FlowDebit, model.RefTo(cat))

	require.NoError(t, repos.Rules.Save(ctx, []model.Rule{rule}))

	raw, err := docs.Load(ctx, ".financeiro", RulesDoc)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"category": "`+cat.ID+`"`)
	require.NotContains(t, string(raw), "Mercado")

	got, err := repos.Rules.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "market", got[0].Pattern)
	require.Equal(t, cat.ID, got[0].Category.ID())
	require.False(t, got[0].Category.Hydrated())
}

func TestTransactionsAppendSkipsKnownIDs(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)
	a := tx("padaria", "-12.50", 1)
	b := tx("salario", "5000", 5)

	added, err := repos.Pending.Append(ctx, []model.Transaction{a, b})
	require.NoError(t, err)
	require.Equal(t, 2, added)

	added, err = repos.Pending.Append(ctx, []model.Transaction{b, a})
	require.NoError(t, err)
	require.Zero(t, added)

	got, err := repos.Pending.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{a.ID, b.ID}, []string{got[0].ID, got[1].ID})
	require.True(t, got[0].Amount.Equal(a.Amount))
	require.True(t, got[0].Date.Equal(a.Date))
}

func TestTransactionsTake(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)
	a := tx("padaria", "-12.50", 1)
	b := tx("salario", "5000", 5)
	require.NoError(t, repos.Ledger.Save(ctx, []model.Transaction{a, b}))

	got, err := repos.Ledger.Take(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)

	rest, err := repos.Ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, b.ID, rest[0].ID)

	_, err = repos.Ledger.Take(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPendingAndLedgerAreSeparateDocuments(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)
	require.NoError(t, repos.Pending.Save(ctx, []model.Transaction{tx("a", "-1", 1)}))

	ledger, err := repos.Ledger.List(ctx)
	require.NoError(t, err)
	require.Empty(t, ledger)
}

func TestCategoryUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)
	food := model.NewCategory("Mercado", model.Expense("Casa", model.ExpenseVariable))
	pay := model.NewCategory("Salário", model.Income("Trabalho"))

	require.NoError(t, repos.Categories.Upsert(ctx, food))
	require.NoError(t, repos.Categories.Upsert(ctx, pay))
	require.NoError(t, repos.Categories.Upsert(ctx, food))

	idx, err := repos.Categories.Index(ctx)
	require.NoError(t, err)
	require.Len(t, idx, 2)

	require.NoError(t, repos.Categories.Delete(ctx, food.ID))
	require.ErrorIs(t, repos.Categories.Delete(ctx, food.ID), ErrNotFound)

	cats, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Category{pay}, cats)
}

func TestSettingsRoundTrip(t *testing.T) {
	ctx := context.Background()
	repos, _, _ := newRepos(t)
	in := Settings{
		Salary:            decimal.MustParse("8500.00"),
		MaxDebtRatio:      decimal.MustParse("0.35"),
		PayslipEmployer:   "ACME",
		PayslipEarnings:   []string{"Salário", "Bônus"},
		PayslipDeductions: []string{"INSS"},
	}
	require.NoError(t, repos.Settings.Save(ctx, in))

	out, err := repos.Settings.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, in.PayslipEmployer, out.PayslipEmployer)
	require.Equal(t, in.PayslipEarnings, out.PayslipEarnings)
	require.Equal(t, in.PayslipDeductions, out.PayslipDeductions)
	require.True(t, in.Salary.Equal(out.Salary))
	require.True(t, in.MaxDebtRatio.Equal(out.MaxDebtRatio))
}
