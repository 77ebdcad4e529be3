package repository

import "github.com/rs/zerolog"

// Repos bundles every repository over one document store and directory.
type Repos struct {
	Banks      *BankRepo
	Categories *CategoryRepo
	Rules      *RuleRepo
	Pending    *TransactionRepo
	Ledger     *TransactionRepo
	Settings   *SettingsRepo
}

func New(docs Documents, dir string, log zerolog.Logger) Repos {
	return Repos{
		Banks:      NewBankRepo(docs, dir, log),
		Categories: NewCategoryRepo(docs, dir, log),
		Rules:      NewRuleRepo(docs, dir, log),
		Pending:    NewPendingRepo(docs, dir, log),
		Ledger:     NewLedgerRepo(docs, dir, log),
		Settings:   NewSettingsRepo(docs, dir, log),
	}
}
