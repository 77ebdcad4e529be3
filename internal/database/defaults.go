package database

import (
	"context"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
	"github.com/jask/jaskfin/internal/rules"
)

// DefaultCategories is the starter catalog for an empty store.
func DefaultCategories() []model.Category {
	return []model.Category{
		model.NewCategory("Salário", model.Income("Trabalho")),
		model.NewCategory("Freelance", model.Income("Trabalho")),
		model.NewCategory("Aluguel", model.Expense("Moradia", model.ExpenseFixed)),
		model.NewCategory("Condomínio", model.Expense("Moradia", model.ExpenseFixed)),
		model.NewCategory("Energia", model.Expense("Moradia", model.ExpenseFixed)),
		model.NewCategory("Internet", model.Expense("Moradia", model.ExpenseFixed)),
		model.NewCategory("Mercado", model.Expense("Alimentação", model.ExpenseVariable)),
		model.NewCategory("Restaurante", model.Expense("Alimentação", model.ExpenseVariable)),
		model.NewCategory("Combustível", model.Expense("Transporte", model.ExpenseVariable)),
		model.NewCategory("Aplicativo", model.Expense("Transporte", model.ExpenseVariable)),
		model.NewCategory("Farmácia", model.Expense("Saúde", model.ExpenseVariable)),
		model.NewCategory("Assinaturas", model.Expense("Lazer", model.ExpenseFixed)),
		model.NewCategory("Tarifas", model.Expense("Banco", model.ExpenseLoss)),
		model.NewCategory("Aplicação", model.Investment()),
		model.NewCategory("Resgate", model.Return()),
		model.NewCategory("Transferência", model.Transfer()),
		model.NewCategory("Sem categoria", model.Uncategorized()),
	}
}

type defaultRule struct {
	pattern  string
	flow     model.Flow
	category string
}

var defaultRules = []defaultRule{
	{"salario", model.FlowCredit, "Salário"},
	{"aluguel", model.FlowDebit, "Aluguel"},
	{"condominio", model.FlowDebit, "Condomínio"},
	{"supermercado", model.FlowDebit, "Mercado"},
	{"ifood", model.FlowDebit, "Restaurante"},
	{"uber", model.FlowDebit, "Aplicativo"},
	{"posto", model.FlowDebit, "Combustível"},
	{"drogaria", model.FlowDebit, "Farmácia"},
	{"netflix", model.FlowDebit, "Assinaturas"},
	{"spotify", model.FlowDebit, "Assinaturas"},
	{"tarifa", model.FlowDebit, "Tarifas"},
	{"aplicacao", model.FlowDebit, "Aplicação"},
	{"resgate", model.FlowCredit, "Resgate"},
}

// DefaultRules returns the starter rules bound to cats by category name.
func DefaultRules(cats []model.Category) []model.Rule {
	byName := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	var out []model.Rule
	for _, d := range defaultRules {
		c, ok := byName[d.category]
		if !ok {
			continue
		}
		out = append(out, model.NewRule(d.pattern, d.flow, model.RefID[model.Category](c.ID)))
	}
	return rules.SortBySpecificity(out)
}

// SeedDefaults fills the category and rule catalogs when they are empty.
// It is idempotent and safe to run on every startup.
func SeedDefaults(ctx context.Context, repos repository.Repos) error {
	cats, err := repos.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(cats) == 0 {
		cats = DefaultCategories()
		if err := repos.Categories.Save(ctx, cats); err != nil {
			return err
		}
	}
	rs, err := repos.Rules.List(ctx)
	if err != nil {
		return err
	}
	if len(rs) > 0 {
		return nil
	}
	return repos.Rules.Save(ctx, DefaultRules(cats))
}
