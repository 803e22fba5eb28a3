package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/ledger"
)

// toConnectError maps domain errors to Connect codes. Anything unknown, storage
// failures included, becomes CodeInternal.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrCategoryNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingField),
		errors.Is(err, ledger.ErrInvalidTransaction),
		errors.Is(err, ledger.ErrInvalidAccount),
		errors.Is(err, ledger.ErrInvalidBudgetMode):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrDuplicateCategory):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
