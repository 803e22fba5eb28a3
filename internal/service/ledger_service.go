package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/budgetbuddy/internal/auth"
	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/middleware"
	"github.com/mmynk/budgetbuddy/internal/models"
	api "github.com/mmynk/budgetbuddy/pkg/api"
	"github.com/mmynk/budgetbuddy/pkg/api/apiconnect"
)

// LedgerService implements the LedgerService RPC interface on top of the
// per-user ledgers.
type LedgerService struct {
	ledgers *ledger.Manager
	logger  *slog.Logger
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService.
func NewLedgerService(ledgers *ledger.Manager, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledgers: ledgers, logger: logger}
}

// ledgerFor returns the ledger of the authenticated caller.
func (s *LedgerService) ledgerFor(ctx context.Context) (*ledger.Ledger, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	l, err := s.ledgers.Get(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to open ledger", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return l, nil
}

// GetDashboard returns the stored data together with every derived figure.
func (s *LedgerService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	view := l.View()
	data := view.Data
	resp := &api.GetDashboardResponse{
		Transactions:     make([]api.Transaction, 0, len(data.Transactions)),
		Accounts:         make([]api.Account, 0, len(data.Accounts)),
		Categories:       data.Categories,
		SelectedCategory: view.Selected,
		CategoryLimits:   data.CategoryLimits,
		BudgetMode:       string(data.BudgetMode),
		CustomLimit:      data.CustomLimit,
		Summary:          toAPISummary(view.Snapshot),
	}
	for _, tx := range data.Transactions {
		resp.Transactions = append(resp.Transactions, toAPITransaction(tx))
	}
	for _, acc := range data.Accounts {
		resp.Accounts = append(resp.Accounts, toAPIAccount(acc))
	}
	return connect.NewResponse(resp), nil
}

// AddTransaction records a transaction. Incomplete input is not an error: the
// response reports Added == false.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	res, err := l.AddTransaction(ctx, ledger.Draft{
		Description: req.Msg.Description,
		Amount:      req.Msg.Amount,
		Date:        req.Msg.Date,
		Category:    req.Msg.Category,
		Type:        req.Msg.Type,
	})
	if err != nil {
		s.logger.Error("Failed to add transaction", "user_id", l.UserID(), "error", err)
		return nil, toConnectError(err)
	}
	if !res.Added {
		s.logger.Info("Transaction rejected", "user_id", l.UserID())
		return connect.NewResponse(&api.AddTransactionResponse{}), nil
	}

	tx := toAPITransaction(res.Transaction)
	s.logger.Info("Transaction added", "user_id", l.UserID(), "transaction_id", tx.Id, "type", tx.Type)
	return connect.NewResponse(&api.AddTransactionResponse{
		Added:                  true,
		Transaction:            &tx,
		GlobalBudgetExceeded:   res.Breach.Global,
		CategoryBudgetExceeded: res.Breach.Category,
	}), nil
}

// UpdateTransaction replaces a transaction in place.
func (s *LedgerService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Transaction == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, ledger.ErrInvalidTransaction)
	}

	if err := l.UpdateTransaction(ctx, fromAPITransaction(req.Msg.Transaction)); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateTransactionResponse{}), nil
}

// DeleteTransaction removes a transaction; unknown ids succeed.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.DeleteTransaction(ctx, req.Msg.Id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

func (s *LedgerService) AddAccount(ctx context.Context, req *connect.Request[api.AddAccountRequest]) (*connect.Response[api.AddAccountResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := l.AddAccount(ctx, ledger.AccountDraft{Name: req.Msg.Name, Type: req.Msg.Type, Balance: req.Msg.Balance})
	if err != nil {
		return nil, toConnectError(err)
	}
	out := toAPIAccount(acc)
	return connect.NewResponse(&api.AddAccountResponse{Account: &out}), nil
}

func (s *LedgerService) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Account == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, ledger.ErrInvalidAccount)
	}

	if err := l.UpdateAccount(ctx, fromAPIAccount(req.Msg.Account)); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.UpdateAccountResponse{}), nil
}

func (s *LedgerService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.DeleteAccount(ctx, req.Msg.Id); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeleteAccountResponse{}), nil
}

func (s *LedgerService) AddCategory(ctx context.Context, req *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return s.categoryCall(ctx, func(l *ledger.Ledger) error {
		return l.AddCategory(ctx, req.Msg.Name)
	})
}

func (s *LedgerService) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return s.categoryCall(ctx, func(l *ledger.Ledger) error {
		return l.RenameCategory(ctx, req.Msg.Index, req.Msg.NewName)
	})
}

func (s *LedgerService) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return s.categoryCall(ctx, func(l *ledger.Ledger) error {
		return l.DeleteCategory(ctx, req.Msg.Index)
	})
}

func (s *LedgerService) SelectCategory(ctx context.Context, req *connect.Request[api.SelectCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return s.categoryCall(ctx, func(l *ledger.Ledger) error {
		return l.SelectCategory(req.Msg.Name)
	})
}

// categoryCall runs a registry mutation and returns the resulting registry.
func (s *LedgerService) categoryCall(ctx context.Context, mutate func(*ledger.Ledger) error) (*connect.Response[api.CategoriesResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := mutate(l); err != nil {
		return nil, toConnectError(err)
	}
	view := l.View()
	return connect.NewResponse(&api.CategoriesResponse{
		Categories:       view.Data.Categories,
		SelectedCategory: view.Selected,
	}), nil
}

func (s *LedgerService) SetCategoryLimit(ctx context.Context, req *connect.Request[api.SetCategoryLimitRequest]) (*connect.Response[api.SetCategoryLimitResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.SetCategoryLimit(ctx, req.Msg.Category, req.Msg.Limit); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SetCategoryLimitResponse{
		Limit: l.Data().CategoryLimits[req.Msg.Category],
	}), nil
}

func (s *LedgerService) SetBudgetMode(ctx context.Context, req *connect.Request[api.SetBudgetModeRequest]) (*connect.Response[api.BudgetResponse], error) {
	return s.budgetCall(ctx, func(l *ledger.Ledger) error {
		return l.SetBudgetMode(ctx, models.BudgetMode(req.Msg.Mode))
	})
}

func (s *LedgerService) SetCustomLimit(ctx context.Context, req *connect.Request[api.SetCustomLimitRequest]) (*connect.Response[api.BudgetResponse], error) {
	return s.budgetCall(ctx, func(l *ledger.Ledger) error {
		return l.SetCustomLimit(ctx, req.Msg.CustomLimit)
	})
}

func (s *LedgerService) budgetCall(ctx context.Context, mutate func(*ledger.Ledger) error) (*connect.Response[api.BudgetResponse], error) {
	l, err := s.ledgerFor(ctx)
	if err != nil {
		return nil, err
	}
	if err := mutate(l); err != nil {
		return nil, toConnectError(err)
	}
	data := l.Data()
	return connect.NewResponse(&api.BudgetResponse{
		BudgetMode:     string(data.BudgetMode),
		CustomLimit:    data.CustomLimit,
		EffectiveLimit: l.Snapshot().EffectiveLimit.String(),
	}), nil
}
