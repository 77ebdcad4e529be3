package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/model"
)

// RuleRepo handles the rule catalog. Rules are stored with category ids only.
type RuleRepo struct {
	doc list[model.Rule]
}

func NewRuleRepo(docs Documents, dir string, log zerolog.Logger) *RuleRepo {
	return &RuleRepo{doc: list[model.Rule]{docs: docs, dir: dir, name: RulesDoc, log: log}}
}

func (r *RuleRepo) List(ctx context.Context) ([]model.Rule, error) { return r.doc.load(ctx) }

func (r *RuleRepo) Save(ctx context.Context, rs []model.Rule) error {
	out := make([]model.Rule, len(rs))
	for i, rule := range rs {
		rule.Category = rule.Category.Unresolved()
		out[i] = rule
	}
	return r.doc.save(ctx, out)
}
