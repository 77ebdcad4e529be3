package model

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/require"
)

func sample() Transactions {
	return Transactions{
		NewTransaction("salario", decimal.MustParse("5000"), day(2024, time.February, 5), nil),
		NewTransaction("mercado", decimal.MustParse("-250.40"), day(2024, time.February, 28), nil),
		NewTransaction("posto", decimal.MustParse("-180"), day(2024, time.March, 1), nil),
		NewTransaction("cashback", decimal.MustParse("12.35"), day(2023, time.December, 30), nil),
	}
}

func TestTransactionsLastDays(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 2, 15, 30, 0, 0, time.UTC)
	got := sample().LastDays(now, 3)
	require.Len(t, got, 2)
	require.Equal(t, "mercado", got[0].Description)
	require.Equal(t, "posto", got[1].Description)
}

func TestTransactionsByMonth(t *testing.T) {
	t.Parallel()

	got := sample().ByMonth()
	require.Len(t, got, 2)
	require.Len(t, got[2024][time.February], 2)
	require.Len(t, got[2024][time.March], 1)
	require.Len(t, got[2023][time.December], 1)
}

func TestTransactionsFlowsAndTotal(t *testing.T) {
	t.Parallel()

	ts := sample()
	require.Len(t, ts.Credits(), 2)
	require.Len(t, ts.Debits(), 2)

	total, err := ts.Total()
	require.NoError(t, err)
	require.Equal(t, "4581.95", total.String())

	require.True(t, ts.Contains(ts[2].ID))
	require.False(t, ts.Contains("missing"))
	require.Len(t, ts.IDs(), 4)
}

func TestTransactionsInCategory(t *testing.T) {
	t.Parallel()

	cat := NewCategory("Combustível", Expense("Transporte", ExpenseVariable))
	ts := sample()
	ts[2].Category = RefID[Category](cat.ID)
	got := ts.InCategory(cat.ID)
	require.Len(t, got, 1)
	require.Equal(t, "posto", got[0].Description)
}
