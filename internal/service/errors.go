package service

import "errors"

var (
	// ErrEmptyPattern is returned when a rule would match every description.
	ErrEmptyPattern = errors.New("empty rule pattern")
	// ErrFlowMismatch is returned when a category cannot hold a movement of
	// the transaction's flow.
	ErrFlowMismatch = errors.New("category does not accept this flow")
	// ErrEmptyName is returned when a category would have no name.
	ErrEmptyName = errors.New("empty category name")
	// ErrAmbiguous is returned when a reference names more than one category.
	ErrAmbiguous = errors.New("ambiguous category reference")
	// ErrEmptyPayslip is returned for a payslip without any amount.
	ErrEmptyPayslip = errors.New("payslip has no amounts")
)
