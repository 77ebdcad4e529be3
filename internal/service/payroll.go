package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/govalues/money"
	"github.com/rs/zerolog"

	"github.com/jask/jaskfin/internal/database/repository"
	"github.com/jask/jaskfin/internal/model"
)

// PayrollBank is the bank id holding one account per employer.
const PayrollBank = "PAYROLL"

const netTransferDescription = "transferencia de salário liquido"

// PayLine is one named amount on a payslip. Amounts are positive.
type PayLine struct {
	Name   string
	Amount decimal.Decimal
}

// Payslip is a manually entered pay statement.
type Payslip struct {
	Employer   string
	Date       time.Time
	Earnings   []PayLine
	Deductions []PayLine
}

// PayrollResult summarizes a recorded payslip.
type PayrollResult struct {
	Gross        money.Amount
	Deductions   money.Amount
	Net          money.Amount
	Transactions []model.Transaction
	Enqueued     int
}

// Payroll turns payslips into transactions on the employer's payroll
// account. Earnings are credits, deductions debits, and the net pay leaves
// as a transfer debit so the account balances to zero.
type Payroll struct {
	Reconciler  *Reconciler
	Categorizer *Categorizer
	Settings    *repository.SettingsRepo
	Currency    string
	Log         zerolog.Logger
}

// Summarize totals a payslip without recording it.
func (p *Payroll) Summarize(slip Payslip) (gross, deductions, net money.Amount, err error) {
	curr, err := money.ParseCurr(p.Currency)
	if err != nil {
		return gross, deductions, net, fmt.Errorf("payroll currency: %w", err)
	}
	if gross, err = total(curr, slip.Earnings); err != nil {
		return gross, deductions, net, err
	}
	if deductions, err = total(curr, slip.Deductions); err != nil {
		return gross, deductions, net, err
	}
	net, err = gross.Sub(deductions)
	return gross, deductions, net, err
}

func total(curr money.Currency, lines []PayLine) (money.Amount, error) {
	sum, err := money.NewAmountFromDecimal(curr, decimal.Decimal{})
	if err != nil {
		return money.Amount{}, err
	}
	for _, l := range lines {
		if !countable(l) {
			continue
		}
		a, err := money.NewAmountFromDecimal(curr, l.Amount.Abs())
		if err != nil {
			return money.Amount{}, err
		}
		if sum, err = sum.Add(a); err != nil {
			return money.Amount{}, err
		}
	}
	return sum, nil
}

func countable(l PayLine) bool {
	return strings.TrimSpace(l.Name) != "" && !l.Amount.IsZero()
}

// Record reconciles the employer account, builds the payslip transactions
// and enqueues them for categorization. Line names are remembered in the
// settings for the next payslip.
func (p *Payroll) Record(ctx context.Context, slip Payslip) (PayrollResult, error) {
	employer := strings.TrimSpace(slip.Employer)
	if employer == "" {
		return PayrollResult{}, fmt.Errorf("payroll: employer is required")
	}
	gross, deductions, net, err := p.Summarize(slip)
	if err != nil {
		return PayrollResult{}, err
	}
	if gross.IsZero() && deductions.IsZero() {
		return PayrollResult{}, ErrEmptyPayslip
	}

	account := model.Account{ID: strings.ToLower(employer), Name: employer}
	if _, err := p.Reconciler.Merge(ctx, []model.Bank{model.NewBank(PayrollBank, account)}); err != nil {
		return PayrollResult{}, err
	}

	var txs []model.Transaction
	add := func(desc string, amount decimal.Decimal) {
		id := account.ID
		txs = append(txs, model.NewTransaction(strings.ToLower(strings.TrimSpace(desc)), amount, slip.Date, &id))
	}
	for _, l := range slip.Earnings {
		if countable(l) {
			add(l.Name, l.Amount.Abs())
		}
	}
	for _, l := range slip.Deductions {
		if countable(l) {
			add(l.Name, l.Amount.Abs().Neg())
		}
	}
	if !net.IsZero() {
		add(netTransferDescription, net.Decimal().Neg())
	}

	n, err := p.Categorizer.Enqueue(ctx, txs)
	if err != nil {
		return PayrollResult{}, err
	}
	if err := p.remember(ctx, employer, slip); err != nil {
		p.Log.Warn().Err(err).Msg("payslip names not saved")
	}
	p.Log.Info().
		Str("employer", employer).
		Str("gross", gross.String()).
		Str("net", net.String()).
		Int("enqueued", n).
		Msg("payslip recorded")
	return PayrollResult{Gross: gross, Deductions: deductions, Net: net, Transactions: txs, Enqueued: n}, nil
}

func (p *Payroll) remember(ctx context.Context, employer string, slip Payslip) error {
	s, err := p.Settings.Get(ctx)
	if err != nil {
		return err
	}
	s.PayslipEmployer = employer
	s.PayslipEarnings = lineNames(slip.Earnings)
	s.PayslipDeductions = lineNames(slip.Deductions)
	return p.Settings.Save(ctx, s)
}

func lineNames(lines []PayLine) []string {
	out := []string{}
	for _, l := range lines {
		if name := strings.TrimSpace(l.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
