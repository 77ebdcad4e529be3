package model

import (
	"fmt"

	"github.com/jask/jaskfin/internal/ident"
)

// KindType is the top-level classification of a category.
type KindType string

const (
	KindIncome        KindType = "income"
	KindExpense       KindType = "expense"
	KindInvestment    KindType = "investment"
	KindReturn        KindType = "return"
	KindTransfer      KindType = "transfer"
	KindUncategorized KindType = "uncategorized"
)

// ExpenseType refines an expense category.
type ExpenseType string

const (
	ExpenseFixed       ExpenseType = "fixed"
	ExpenseVariable    ExpenseType = "variable"
	ExpenseLoss        ExpenseType = "loss"
	ExpenseUnspecified ExpenseType = "unspecified"
)

// Kind describes what a category represents. Group is set for income and
// expense kinds, Expense only for expense kinds.
type Kind struct {
	Type    KindType    `json:"type"`
	Group   string      `json:"group,omitempty"`
	Expense ExpenseType `json:"expense,omitempty"`
}

func Income(group string) Kind { return Kind{Type: KindIncome, Group: group} }

func Expense(group string, t ExpenseType) Kind {
	switch t {
	case ExpenseFixed, ExpenseVariable, ExpenseLoss:
	default:
		t = ExpenseUnspecified
	}
	return Kind{Type: KindExpense, Group: group, Expense: t}
}

func Investment() Kind    { return Kind{Type: KindInvestment} }
func Return() Kind        { return Kind{Type: KindReturn} }
func Transfer() Kind      { return Kind{Type: KindTransfer} }
func Uncategorized() Kind { return Kind{Type: KindUncategorized} }

// String is the canonical form used for category ids.
func (k Kind) String() string {
	switch k.Type {
	case KindIncome:
		return "income/" + k.Group
	case KindExpense:
		return "expense/" + string(k.Expense) + "/" + k.Group
	case KindInvestment, KindReturn, KindTransfer:
		return string(k.Type)
	default:
		return string(KindUncategorized)
	}
}

// Allows reports whether a category of this kind may be assigned to a
// movement in the given flow.
func (k Kind) Allows(f Flow) bool {
	switch k.Type {
	case KindIncome, KindReturn:
		return f == FlowCredit
	case KindExpense, KindInvestment:
		return f == FlowDebit
	default:
		return true
	}
}

// Category is a user-facing classification bucket.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// NewCategory builds a category with its content-derived id.
func NewCategory(name string, kind Kind) Category {
	c := Category{Name: name, Kind: kind}
	c.ID = c.identity()
	return c
}

func (c Category) identity() string { return ident.ID(c.Name, c.Kind.String()) }

// Identify recomputes the id from the current name and kind.
func (c *Category) Identify() { c.ID = c.identity() }

func (c Category) Key() string { return c.ID }

// Label renders the category for pick lists.
func (c Category) Label() string {
	switch c.Kind.Type {
	case KindIncome:
		return fmt.Sprintf("Income: %s - %s", c.Kind.Group, c.Name)
	case KindExpense:
		return fmt.Sprintf("Expense %s; %s - %s", c.Kind.Expense, c.Kind.Group, c.Name)
	case KindInvestment:
		return "Investment: " + c.Name
	case KindReturn:
		return "Return: " + c.Name
	case KindTransfer:
		return "Transfer: " + c.Name
	default:
		return "Uncategorized"
	}
}
