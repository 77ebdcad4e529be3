package model

import (
	"time"

	"github.com/govalues/decimal"
)

// Transactions is a list of transactions with the filters reporting screens
// read through.
type Transactions []Transaction

// Contains reports whether a transaction with id is present.
func (ts Transactions) Contains(id string) bool {
	for _, t := range ts {
		if t.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the set of ids present.
func (ts Transactions) IDs() map[string]struct{} {
	out := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		out[t.ID] = struct{}{}
	}
	return out
}

// LastDays keeps transactions dated on or after now minus days, compared by
// calendar day.
func (ts Transactions) LastDays(now time.Time, days int) Transactions {
	y, m, d := now.Date()
	limit := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	var out Transactions
	for _, t := range ts {
		ty, tm, td := t.Date.Date()
		if !time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Before(limit) {
			out = append(out, t)
		}
	}
	return out
}

// ByMonth groups transactions by year and month.
func (ts Transactions) ByMonth() map[int]map[time.Month]Transactions {
	out := make(map[int]map[time.Month]Transactions)
	for _, t := range ts {
		y, m := t.Date.Year(), t.Date.Month()
		if out[y] == nil {
			out[y] = make(map[time.Month]Transactions)
		}
		out[y][m] = append(out[y][m], t)
	}
	return out
}

// Credits keeps positive movements.
func (ts Transactions) Credits() Transactions {
	return ts.filter(func(t Transaction) bool { return t.Flow() == FlowCredit })
}

// Debits keeps zero and negative movements.
func (ts Transactions) Debits() Transactions {
	return ts.filter(func(t Transaction) bool { return t.Flow() == FlowDebit })
}

// InCategory keeps transactions referencing category id.
func (ts Transactions) InCategory(id string) Transactions {
	return ts.filter(func(t Transaction) bool { return t.Category.ID() == id })
}

// Total sums the amounts.
func (ts Transactions) Total() (decimal.Decimal, error) {
	var sum decimal.Decimal
	for _, t := range ts {
		var err error
		sum, err = sum.Add(t.Amount)
		if err != nil {
			return decimal.Decimal{}, err
		}
	}
	return sum, nil
}

func (ts Transactions) filter(keep func(Transaction) bool) Transactions {
	var out Transactions
	for _, t := range ts {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
