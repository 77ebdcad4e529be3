package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/model"
)

// TransactionRepo handles one transaction document: the pending queue or the
// categorized ledger.
type TransactionRepo struct {
	doc list[model.Transaction]
}

// NewPendingRepo returns the repo of transactions awaiting categorization.
func NewPendingRepo(docs Documents, dir string, log zerolog.Logger) *TransactionRepo {
	return &TransactionRepo{doc: list[model.Transaction]{docs: docs, dir: dir, name: PendingDoc, log: log}}
}

// NewLedgerRepo returns the repo of categorized transactions.
func NewLedgerRepo(docs Documents, dir string, log zerolog.Logger) *TransactionRepo {
	return &TransactionRepo{doc: list[model.Transaction]{docs: docs, dir: dir, name: CategorizedDoc, log: log}}
}

func (r *TransactionRepo) List(ctx context.Context) (model.Transactions, error) {
	txs, err := r.doc.load(ctx)
	if err != nil {
		return nil, err
	}
	return model.Transactions(txs), nil
}

// Save rewrites the whole document.
func (r *TransactionRepo) Save(ctx context.Context, txs []model.Transaction) error {
	out := make([]model.Transaction, len(txs))
	for i, t := range txs {
		out[i] = t.Dehydrated()
	}
	return r.doc.save(ctx, out)
}

// Append adds the transactions whose id is not stored yet and returns how
// many were added.
func (r *TransactionRepo) Append(ctx context.Context, txs []model.Transaction) (int, error) {
	current, err := r.List(ctx)
	if err != nil {
		return 0, err
	}
	seen := current.IDs()
	added := 0
	for _, t := range txs {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		current = append(current, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, r.Save(ctx, current)
}

// Take removes the transaction with id and returns it.
func (r *TransactionRepo) Take(ctx context.Context, id string) (model.Transaction, error) {
	current, err := r.List(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	for i, t := range current {
		if t.ID != id {
			continue
		}
		rest := append(current[:i:i], current[i+1:]...)
		if err := r.Save(ctx, rest); err != nil {
			return model.Transaction{}, err
		}
		return t, nil
	}
	return model.Transaction{}, ErrNotFound
}
