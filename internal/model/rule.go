package model

import (
	"strings"

	"github.com/govalues/decimal"

	"github.com/jask/jaskfin/internal/ident"
)

// Flow is the direction of a movement.
type Flow string

const (
	FlowCredit Flow = "credit"
	FlowDebit  Flow = "debit"
)

// FlowOf classifies an amount: positive amounts are credits, everything else
// is a debit.
func FlowOf(amount decimal.Decimal) Flow {
	if amount.Sign() > 0 {
		return FlowCredit
	}
	return FlowDebit
}

// Rule assigns Category to movements in Flow whose description contains
// Pattern.
type Rule struct {
	ID       string        `json:"id"`
	Pattern  string        `json:"pattern"`
	Flow     Flow          `json:"flow"`
	Category Ref[Category] `json:"category"`
}

// NewRule normalizes pattern to trimmed lower case and derives the id from
// pattern and flow, so identical rules collapse.
func NewRule(pattern string, flow Flow, category Ref[Category]) Rule {
	r := Rule{
		Pattern:  strings.ToLower(strings.TrimSpace(pattern)),
		Flow:     flow,
		Category: category,
	}
	r.ID = ident.ID(r.Pattern, string(r.Flow))
	return r
}

func (r Rule) Key() string { return r.ID }
