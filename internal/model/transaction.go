package model

import (
	"time"

	"github.com/govalues/decimal"

	"github.com/jask/jaskfin/internal/ident"
)

// DateLayout is the compact date form used in transaction identities.
const DateLayout = "20060102"

// Transaction is one real-world movement on an account.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Category    Ref[Category]   `json:"category"`
	Account     *string         `json:"account,omitempty"`
	OriginRule  Ref[Rule]       `json:"origin_rule"`
}

// NewTransaction builds an uncategorized transaction with its id.
func NewTransaction(description string, amount decimal.Decimal, date time.Time, account *string) Transaction {
	t := Transaction{Description: description, Amount: amount, Date: date, Account: account}
	t.Identify()
	return t
}

// Identify derives the id from description, amount and date. Amounts are
// rendered without trailing zeros so -42.50 and -42.5 agree.
func (t *Transaction) Identify() {
	t.ID = ident.ID(t.Description, t.Amount.Trim(0).String(), t.Date.Format(DateLayout))
}

func (t Transaction) Key() string { return t.ID }

// Flow reports whether the transaction is a credit or a debit.
func (t Transaction) Flow() Flow { return FlowOf(t.Amount) }

// Uncategorize clears category and origin rule.
func (t *Transaction) Uncategorize() {
	t.Category = Ref[Category]{}
	t.OriginRule = Ref[Rule]{}
}

// Dehydrated returns a copy whose references carry ids only.
func (t Transaction) Dehydrated() Transaction {
	t.Category = t.Category.Unresolved()
	t.OriginRule = t.OriginRule.Unresolved()
	return t
}

// AccountName returns the account id or a placeholder.
func (t Transaction) AccountName() string {
	if t.Account == nil || *t.Account == "" {
		return "unidentified"
	}
	return *t.Account
}
