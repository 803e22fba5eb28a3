package api

type Transaction struct {
	Id          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
}

type Account struct {
	Id      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Balance float64 `json:"balance"`
	Color   string  `json:"color"`
}

// Money values in the summary are decimal strings.
type CategoryAmount struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type DailyStat struct {
	Date    string `json:"date"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

type CategoryStat struct {
	Category string  `json:"category"`
	Spent    string  `json:"spent"`
	Limit    string  `json:"limit"`
	Progress float64 `json:"progress"`
	IsOver   bool    `json:"isOver"`
}

type Summary struct {
	TotalIncome        string           `json:"totalIncome"`
	TotalExpense       string           `json:"totalExpense"`
	CurrentBalance     string           `json:"currentBalance"`
	EffectiveLimit     string           `json:"effectiveLimit"`
	IsOverBudget       bool             `json:"isOverBudget"`
	BudgetUsagePercent float64          `json:"budgetUsagePercent"`
	ExpensesByCategory []CategoryAmount `json:"expensesByCategory"`
	DailyStats         []DailyStat      `json:"dailyStats"`
	CategoryStats      []CategoryStat   `json:"categoryStats"`
	CategoryStatus     map[string]bool  `json:"categoryStatus"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Transactions     []Transaction      `json:"transactions"`
	Accounts         []Account          `json:"accounts"`
	Categories       []string           `json:"categories"`
	SelectedCategory string             `json:"selectedCategory"`
	CategoryLimits   map[string]float64 `json:"categoryLimits"`
	BudgetMode       string             `json:"budgetMode"`
	CustomLimit      string             `json:"customLimit"`
	Summary          *Summary           `json:"summary"`
}

// AddTransactionRequest carries the form values as typed by the user.
type AddTransactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	Type        string `json:"type"`
}

type AddTransactionResponse struct {
	// Added is false when the input was incomplete; nothing was stored.
	Added                  bool         `json:"added"`
	Transaction            *Transaction `json:"transaction,omitempty"`
	GlobalBudgetExceeded   bool         `json:"globalBudgetExceeded"`
	CategoryBudgetExceeded string       `json:"categoryBudgetExceeded,omitempty"`
}

type UpdateTransactionRequest struct {
	Transaction *Transaction `json:"transaction"`
}

type UpdateTransactionResponse struct{}

type DeleteTransactionRequest struct {
	Id string `json:"id"`
}

type DeleteTransactionResponse struct{}

type AddAccountRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Balance string `json:"balance"`
}

type AddAccountResponse struct {
	Account *Account `json:"account"`
}

type UpdateAccountRequest struct {
	Account *Account `json:"account"`
}

type UpdateAccountResponse struct{}

type DeleteAccountRequest struct {
	Id string `json:"id"`
}

type DeleteAccountResponse struct{}

type AddCategoryRequest struct {
	Name string `json:"name"`
}

type RenameCategoryRequest struct {
	Index   int    `json:"index"`
	NewName string `json:"newName"`
}

type DeleteCategoryRequest struct {
	Index int `json:"index"`
}

type SelectCategoryRequest struct {
	Name string `json:"name"`
}

// CategoriesResponse is returned by every category registry call.
type CategoriesResponse struct {
	Categories       []string `json:"categories"`
	SelectedCategory string   `json:"selectedCategory"`
}

type SetCategoryLimitRequest struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
}

type SetCategoryLimitResponse struct {
	Limit float64 `json:"limit"`
}

type SetBudgetModeRequest struct {
	Mode string `json:"mode"`
}

type SetCustomLimitRequest struct {
	CustomLimit string `json:"customLimit"`
}

// BudgetResponse is returned by the budget configuration calls.
type BudgetResponse struct {
	BudgetMode     string `json:"budgetMode"`
	CustomLimit    string `json:"customLimit"`
	EffectiveLimit string `json:"effectiveLimit"`
}
