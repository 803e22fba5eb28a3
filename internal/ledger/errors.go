package ledger

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidTransaction  = errors.New("invalid transaction")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidAccount      = errors.New("invalid account")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrInvalidBudgetMode   = errors.New("budget mode must be smart or custom")
)
