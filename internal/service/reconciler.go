package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
)

// Reconciler folds banks and accounts seen in statements into the catalog.
type Reconciler struct {
	Banks *repository.BankRepo
	Log   zerolog.Logger
}

// Merge unions incoming into the stored catalog, keeps it sorted by bank
// name and returns what was saved.
func (r *Reconciler) Merge(ctx context.Context, incoming []model.Bank) ([]model.Bank, error) {
	current, err := r.Banks.List(ctx)
	if err != nil {
		r.Log.Error().Err(err).Msg("load banks")
		return nil, err
	}
	merged := model.MergeBanks(current, incoming)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	if err := r.Banks.Save(ctx, merged); err != nil {
		r.Log.Error().Err(err).Msg("save banks")
		return nil, err
	}
	r.Log.Debug().Int("banks", len(merged)).Int("incoming", len(incoming)).Msg("banks reconciled")
	return merged, nil
}
