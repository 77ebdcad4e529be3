package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
	"github.com/rs/zerolog"
)

// Settings is the user's personal configuration record.
type Settings struct {
	Salary            decimal.Decimal `json:"salary"`
	MaxDebtRatio      decimal.Decimal `json:"max_debt_ratio"`
	PayslipEmployer   string          `json:"payslip_employer"`
	PayslipEarnings   []string        `json:"payslip_earnings"`
	PayslipDeductions []string        `json:"payslip_deductions"`
}

// DefaultSettings is used when nothing was saved yet.
func DefaultSettings() Settings {
	return Settings{
		MaxDebtRatio:      decimal.MustNew(30, 2),
		PayslipEarnings:   []string{"Salário"},
		PayslipDeductions: []string{"INSS", "IRRF"},
	}
}

// SettingsRepo handles the settings document.
type SettingsRepo struct {
	docs Documents
	dir  string
	log  zerolog.Logger
}

func NewSettingsRepo(docs Documents, dir string, log zerolog.Logger) *SettingsRepo {
	return &SettingsRepo{docs: docs, dir: dir, log: log}
}

// Get returns the stored settings, or the defaults when absent or malformed.
func (r *SettingsRepo) Get(ctx context.Context) (Settings, error) {
	data, err := r.docs.Load(ctx, r.dir, SettingsDoc)
	if errors.Is(err, ErrNotFound) || (err == nil && len(bytes.TrimSpace(data)) == 0) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load %s: %w", SettingsDoc, err)
	}
	s := DefaultSettings()
	if err := json.Unmarshal(data, &s); err != nil {
		r.log.Error().Err(err).Str("document", SettingsDoc).Msg("malformed settings, using defaults")
		return DefaultSettings(), nil
	}
	return s, nil
}

func (r *SettingsRepo) Save(ctx context.Context, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", SettingsDoc, err)
	}
	if err := r.docs.Save(ctx, r.dir, SettingsDoc, data); err != nil {
		return fmt.Errorf("save %s: %w", SettingsDoc, err)
	}
	return nil
}
