package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
)

type env struct {
	repos       repository.Repos
	docs        *faultyDocs
	logs        *bytes.Buffer
	reconciler  *Reconciler
	rulebook    *RuleBook
	categorizer *Categorizer
	catalog     *Catalog
	payroll     *Payroll
}

func newEnv(t *testing.T) *env {
	t.Helper()
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	docs := &faultyDocs{MemDocuments: repository.NewMemDocuments(), failing: map[string]bool{}}
	repos := repository.New(docs, ".financeiro", log)

	e := &env{repos: repos, docs: docs, logs: &logs}
	e.reconciler = &Reconciler{Banks: repos.Banks, Log: log}
	e.rulebook = &RuleBook{Rules: repos.Rules, Categories: repos.Categories, Ledger: repos.Ledger, Log: log}
	e.categorizer = &Categorizer{
		Pending:    repos.Pending,
		Ledger:     repos.Ledger,
		Categories: repos.Categories,
		Rules:      e.rulebook,
		Log:        log,
	}
	e.catalog = &Catalog{Categories: repos.Categories, Categorizer: e.categorizer, Rules: e.rulebook, Log: log}
	e.payroll = &Payroll{
		Reconciler:  e.reconciler,
		Categorizer: e.categorizer,
		Settings:    repos.Settings,
		Currency:    "BRL",
		Log:         log,
	}
	return e
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func day(d int) time.Time { return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC) }

func tx(desc, amount string, d int) model.Transaction {
	return model.NewTransaction(desc, decimal.MustParse(amount), day(d), nil)
}

var (
	catFood = model.NewCategory("Restaurante", model.Expense("Alimentação", model.ExpenseVariable))
	catRide = model.NewCategory("Aplicativo", model.Expense("Transporte", model.ExpenseVariable))
	catPay  = model.NewCategory("Salário", model.Income("Trabalho"))
)

// seed stores the categories and rules.
func (e *env) seed(t *testing.T, cats []model.Category, rs ...model.Rule) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.repos.Categories.Save(ctx, cats))
	require.NoError(t, e.repos.Rules.Save(ctx, rs))
}

func rule(pattern string, flow model.Flow, cat model.Category) model.Rule {
	return model.NewRule(pattern, flow, model.RefID[model.Category](cat.ID))
}

func ids(ts []model.Transaction) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}

var errDiskFull = errors.New("disk full")

// faultyDocs fails Save for the document names marked as failing.
type faultyDocs struct {
	*repository.MemDocuments
	mu      sync.Mutex
	failing map[string]bool
}

func (d *faultyDocs) Save(ctx context.Context, dir, name string, data []byte) error {
	d.mu.Lock()
	fail := d.failing[name]
	d.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return d.MemDocuments.Save(ctx, dir, name, data)
}

func (d *faultyDocs) fail(names ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range names {
		d.failing[n] = true
	}
}

func (d *faultyDocs) heal() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failing = map[string]bool{}
}

// requireDisjoint asserts no id is both pending and categorized.
func (e *env) requireDisjoint(t *testing.T) (pending, ledger model.Transactions) {
	t.Helper()
	ctx := context.Background()
	pending, err := e.repos.Pending.List(ctx)
	require.NoError(t, err)
	ledger, err = e.repos.Ledger.List(ctx)
	require.NoError(t, err)
	for id := range ledger.IDs() {
		require.False(t, pending.Contains(id), "id %s pending and categorized", id)
	}
	return pending, ledger
}
