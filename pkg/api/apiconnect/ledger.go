package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	api "github.com/mmynk/budgetbuddy/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService.
const LedgerServiceName = "budgetbuddy.v1.LedgerService"

// Procedure names, as they appear in the URL path.
const (
	LedgerServiceGetDashboardProcedure      = "/budgetbuddy.v1.LedgerService/GetDashboard"
	LedgerServiceAddTransactionProcedure    = "/budgetbuddy.v1.LedgerService/AddTransaction"
	LedgerServiceUpdateTransactionProcedure = "/budgetbuddy.v1.LedgerService/UpdateTransaction"
	LedgerServiceDeleteTransactionProcedure = "/budgetbuddy.v1.LedgerService/DeleteTransaction"
	LedgerServiceAddAccountProcedure        = "/budgetbuddy.v1.LedgerService/AddAccount"
	LedgerServiceUpdateAccountProcedure     = "/budgetbuddy.v1.LedgerService/UpdateAccount"
	LedgerServiceDeleteAccountProcedure     = "/budgetbuddy.v1.LedgerService/DeleteAccount"
	LedgerServiceAddCategoryProcedure       = "/budgetbuddy.v1.LedgerService/AddCategory"
	LedgerServiceRenameCategoryProcedure    = "/budgetbuddy.v1.LedgerService/RenameCategory"
	LedgerServiceDeleteCategoryProcedure    = "/budgetbuddy.v1.LedgerService/DeleteCategory"
	LedgerServiceSelectCategoryProcedure    = "/budgetbuddy.v1.LedgerService/SelectCategory"
	LedgerServiceSetCategoryLimitProcedure  = "/budgetbuddy.v1.LedgerService/SetCategoryLimit"
	LedgerServiceSetBudgetModeProcedure     = "/budgetbuddy.v1.LedgerService/SetBudgetMode"
	LedgerServiceSetCustomLimitProcedure    = "/budgetbuddy.v1.LedgerService/SetCustomLimit"
)

// LedgerServiceHandler is implemented by the server side of the LedgerService.
type LedgerServiceHandler interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	AddAccount(context.Context, *connect.Request[api.AddAccountRequest]) (*connect.Response[api.AddAccountResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	AddCategory(context.Context, *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	SelectCategory(context.Context, *connect.Request[api.SelectCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	SetCategoryLimit(context.Context, *connect.Request[api.SetCategoryLimitRequest]) (*connect.Response[api.SetCategoryLimitResponse], error)
	SetBudgetMode(context.Context, *connect.Request[api.SetBudgetModeRequest]) (*connect.Response[api.BudgetResponse], error)
	SetCustomLimit(context.Context, *connect.Request[api.SetCustomLimitRequest]) (*connect.Response[api.BudgetResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
// The JSON codec is always installed; opts are applied after it.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	ledgerServiceGetDashboardHandler := connect.NewUnaryHandler(LedgerServiceGetDashboardProcedure, svc.GetDashboard, opts...)
	ledgerServiceAddTransactionHandler := connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...)
	ledgerServiceUpdateTransactionHandler := connect.NewUnaryHandler(LedgerServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...)
	ledgerServiceDeleteTransactionHandler := connect.NewUnaryHandler(LedgerServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...)
	ledgerServiceAddAccountHandler := connect.NewUnaryHandler(LedgerServiceAddAccountProcedure, svc.AddAccount, opts...)
	ledgerServiceUpdateAccountHandler := connect.NewUnaryHandler(LedgerServiceUpdateAccountProcedure, svc.UpdateAccount, opts...)
	ledgerServiceDeleteAccountHandler := connect.NewUnaryHandler(LedgerServiceDeleteAccountProcedure, svc.DeleteAccount, opts...)
	ledgerServiceAddCategoryHandler := connect.NewUnaryHandler(LedgerServiceAddCategoryProcedure, svc.AddCategory, opts...)
	ledgerServiceRenameCategoryHandler := connect.NewUnaryHandler(LedgerServiceRenameCategoryProcedure, svc.RenameCategory, opts...)
	ledgerServiceDeleteCategoryHandler := connect.NewUnaryHandler(LedgerServiceDeleteCategoryProcedure, svc.DeleteCategory, opts...)
	ledgerServiceSelectCategoryHandler := connect.NewUnaryHandler(LedgerServiceSelectCategoryProcedure, svc.SelectCategory, opts...)
	ledgerServiceSetCategoryLimitHandler := connect.NewUnaryHandler(LedgerServiceSetCategoryLimitProcedure, svc.SetCategoryLimit, opts...)
	ledgerServiceSetBudgetModeHandler := connect.NewUnaryHandler(LedgerServiceSetBudgetModeProcedure, svc.SetBudgetMode, opts...)
	ledgerServiceSetCustomLimitHandler := connect.NewUnaryHandler(LedgerServiceSetCustomLimitProcedure, svc.SetCustomLimit, opts...)
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceGetDashboardProcedure:
			ledgerServiceGetDashboardHandler.ServeHTTP(w, r)
		case LedgerServiceAddTransactionProcedure:
			ledgerServiceAddTransactionHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateTransactionProcedure:
			ledgerServiceUpdateTransactionHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteTransactionProcedure:
			ledgerServiceDeleteTransactionHandler.ServeHTTP(w, r)
		case LedgerServiceAddAccountProcedure:
			ledgerServiceAddAccountHandler.ServeHTTP(w, r)
		case LedgerServiceUpdateAccountProcedure:
			ledgerServiceUpdateAccountHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteAccountProcedure:
			ledgerServiceDeleteAccountHandler.ServeHTTP(w, r)
		case LedgerServiceAddCategoryProcedure:
			ledgerServiceAddCategoryHandler.ServeHTTP(w, r)
		case LedgerServiceRenameCategoryProcedure:
			ledgerServiceRenameCategoryHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteCategoryProcedure:
			ledgerServiceDeleteCategoryHandler.ServeHTTP(w, r)
		case LedgerServiceSelectCategoryProcedure:
			ledgerServiceSelectCategoryHandler.ServeHTTP(w, r)
		case LedgerServiceSetCategoryLimitProcedure:
			ledgerServiceSetCategoryLimitHandler.ServeHTTP(w, r)
		case LedgerServiceSetBudgetModeProcedure:
			ledgerServiceSetBudgetModeHandler.ServeHTTP(w, r)
		case LedgerServiceSetCustomLimitProcedure:
			ledgerServiceSetCustomLimitHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient interface {
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	AddAccount(context.Context, *connect.Request[api.AddAccountRequest]) (*connect.Response[api.AddAccountResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
	AddCategory(context.Context, *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	RenameCategory(context.Context, *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	DeleteCategory(context.Context, *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	SelectCategory(context.Context, *connect.Request[api.SelectCategoryRequest]) (*connect.Response[api.CategoriesResponse], error)
	SetCategoryLimit(context.Context, *connect.Request[api.SetCategoryLimitRequest]) (*connect.Response[api.SetCategoryLimitResponse], error)
	SetBudgetMode(context.Context, *connect.Request[api.SetBudgetModeRequest]) (*connect.Response[api.BudgetResponse], error)
	SetCustomLimit(context.Context, *connect.Request[api.SetCustomLimitRequest]) (*connect.Response[api.BudgetResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (for example, http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	opts = withClientCodec(opts)
	return &ledgerServiceClient{
		getDashboard:      connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](httpClient, baseURL+LedgerServiceGetDashboardProcedure, opts...),
		addTransaction:    connect.NewClient[api.AddTransactionRequest, api.AddTransactionResponse](httpClient, baseURL+LedgerServiceAddTransactionProcedure, opts...),
		updateTransaction: connect.NewClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL+LedgerServiceUpdateTransactionProcedure, opts...),
		deleteTransaction: connect.NewClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL+LedgerServiceDeleteTransactionProcedure, opts...),
		addAccount:        connect.NewClient[api.AddAccountRequest, api.AddAccountResponse](httpClient, baseURL+LedgerServiceAddAccountProcedure, opts...),
		updateAccount:     connect.NewClient[api.UpdateAccountRequest, api.UpdateAccountResponse](httpClient, baseURL+LedgerServiceUpdateAccountProcedure, opts...),
		deleteAccount:     connect.NewClient[api.DeleteAccountRequest, api.DeleteAccountResponse](httpClient, baseURL+LedgerServiceDeleteAccountProcedure, opts...),
		addCategory:       connect.NewClient[api.AddCategoryRequest, api.CategoriesResponse](httpClient, baseURL+LedgerServiceAddCategoryProcedure, opts...),
		renameCategory:    connect.NewClient[api.RenameCategoryRequest, api.CategoriesResponse](httpClient, baseURL+LedgerServiceRenameCategoryProcedure, opts...),
		deleteCategory:    connect.NewClient[api.DeleteCategoryRequest, api.CategoriesResponse](httpClient, baseURL+LedgerServiceDeleteCategoryProcedure, opts...),
		selectCategory:    connect.NewClient[api.SelectCategoryRequest, api.CategoriesResponse](httpClient, baseURL+LedgerServiceSelectCategoryProcedure, opts...),
		setCategoryLimit:  connect.NewClient[api.SetCategoryLimitRequest, api.SetCategoryLimitResponse](httpClient, baseURL+LedgerServiceSetCategoryLimitProcedure, opts...),
		setBudgetMode:     connect.NewClient[api.SetBudgetModeRequest, api.BudgetResponse](httpClient, baseURL+LedgerServiceSetBudgetModeProcedure, opts...),
		setCustomLimit:    connect.NewClient[api.SetCustomLimitRequest, api.BudgetResponse](httpClient, baseURL+LedgerServiceSetCustomLimitProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	getDashboard      *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	addTransaction    *connect.Client[api.AddTransactionRequest, api.AddTransactionResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	addAccount        *connect.Client[api.AddAccountRequest, api.AddAccountResponse]
	updateAccount     *connect.Client[api.UpdateAccountRequest, api.UpdateAccountResponse]
	deleteAccount     *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
	addCategory       *connect.Client[api.AddCategoryRequest, api.CategoriesResponse]
	renameCategory    *connect.Client[api.RenameCategoryRequest, api.CategoriesResponse]
	deleteCategory    *connect.Client[api.DeleteCategoryRequest, api.CategoriesResponse]
	selectCategory    *connect.Client[api.SelectCategoryRequest, api.CategoriesResponse]
	setCategoryLimit  *connect.Client[api.SetCategoryLimitRequest, api.SetCategoryLimitResponse]
	setBudgetMode     *connect.Client[api.SetBudgetModeRequest, api.BudgetResponse]
	setCustomLimit    *connect.Client[api.SetCustomLimitRequest, api.BudgetResponse]
}

func (c *ledgerServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddAccount(ctx context.Context, req *connect.Request[api.AddAccountRequest]) (*connect.Response[api.AddAccountResponse], error) {
	return c.addAccount.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	return c.updateAccount.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddCategory(ctx context.Context, req *connect.Request[api.AddCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return c.addCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RenameCategory(ctx context.Context, req *connect.Request[api.RenameCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return c.renameCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteCategory(ctx context.Context, req *connect.Request[api.DeleteCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return c.deleteCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SelectCategory(ctx context.Context, req *connect.Request[api.SelectCategoryRequest]) (*connect.Response[api.CategoriesResponse], error) {
	return c.selectCategory.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetCategoryLimit(ctx context.Context, req *connect.Request[api.SetCategoryLimitRequest]) (*connect.Response[api.SetCategoryLimitResponse], error) {
	return c.setCategoryLimit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetBudgetMode(ctx context.Context, req *connect.Request[api.SetBudgetModeRequest]) (*connect.Response[api.BudgetResponse], error) {
	return c.setBudgetMode.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetCustomLimit(ctx context.Context, req *connect.Request[api.SetCustomLimitRequest]) (*connect.Response[api.BudgetResponse], error) {
	return c.setCustomLimit.CallUnary(ctx, req)
}
