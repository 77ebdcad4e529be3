package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
)

// MaintenanceService houses destructive actions.
type MaintenanceService struct {
	Repos repository.Repos
	Log   zerolog.Logger
}

// Reset empties the transaction queues and the bank catalog. Categories,
// rules and settings are kept so the next import categorizes as before.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{repository.PendingDoc, func(ctx context.Context) error { return s.Repos.Pending.Save(ctx, nil) }},
		{repository.CategorizedDoc, func(ctx context.Context) error { return s.Repos.Ledger.Save(ctx, nil) }},
		{repository.BanksDoc, func(ctx context.Context) error { return s.Repos.Banks.Save(ctx, nil) }},
	}
	for _, st := range steps {
		if err := st.run(ctx); err != nil {
			return fmt.Errorf("reset %s: %w", st.name, err)
		}
	}
	s.Log.Warn().Msg("transactions and banks reset")
	return nil
}
