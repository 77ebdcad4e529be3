package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/govalues/decimal"

	"github.com/jask/jaskfin/internal/service"
)

// payslipFile is the TOML layout accepted by the payslip command:
//
//	employer = "ACME"
//	date = "2024-03-05"
//
//	[[earnings]]
//	name = "Salário"
//	amount = "5000.00"
//
//	[[deductions]]
//	name = "INSS"
//	amount = "550.00"
type payslipFile struct {
	Employer   string        `toml:"employer"`
	Date       string        `toml:"date"`
	Earnings   []payslipLine `toml:"earnings"`
	Deductions []payslipLine `toml:"deductions"`
}

type payslipLine struct {
	Name   string `toml:"name"`
	Amount string `toml:"amount"`
}

// readPayslip decodes a payslip. A missing date means today.
func readPayslip(r io.Reader, now time.Time) (service.Payslip, error) {
	var f payslipFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return service.Payslip{}, fmt.Errorf("parse payslip: %w", err)
	}
	slip := service.Payslip{Employer: strings.TrimSpace(f.Employer)}
	if f.Date == "" {
		slip.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		d, err := time.Parse("2006-01-02", f.Date)
		if err != nil {
			return service.Payslip{}, fmt.Errorf("payslip date: %w", err)
		}
		slip.Date = d
	}
	var err error
	if slip.Earnings, err = payLines(f.Earnings); err != nil {
		return service.Payslip{}, err
	}
	if slip.Deductions, err = payLines(f.Deductions); err != nil {
		return service.Payslip{}, err
	}
	return slip, nil
}

func payLines(in []payslipLine) ([]service.PayLine, error) {
	out := make([]service.PayLine, 0, len(in))
	for _, l := range in {
		raw := strings.ReplaceAll(strings.TrimSpace(l.Amount), ",", ".")
		if raw == "" {
			continue
		}
		amt, err := decimal.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("payslip line %q: %w", l.Name, err)
		}
		out = append(out, service.PayLine{Name: l.Name, Amount: amt})
	}
	return out, nil
}
