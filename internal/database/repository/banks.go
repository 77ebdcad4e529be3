package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/model"
)

// BankRepo handles the bank catalog.
type BankRepo struct {
	doc list[model.Bank]
}

func NewBankRepo(docs Documents, dir string, log zerolog.Logger) *BankRepo {
	return &BankRepo{doc: list[model.Bank]{docs: docs, dir: dir, name: BanksDoc, log: log}}
}

func (r *BankRepo) List(ctx context.Context) ([]model.Bank, error) { return r.doc.load(ctx) }

func (r *BankRepo) Save(ctx context.Context, banks []model.Bank) error {
	return r.doc.save(ctx, banks)
}
