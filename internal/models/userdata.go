package models

// BudgetMode selects which ceiling applies to total spending.
type BudgetMode string

const (
	// BudgetSmart uses total recorded income as the ceiling.
	BudgetSmart BudgetMode = "smart"
	// BudgetCustom uses the user-entered CustomLimit.
	BudgetCustom BudgetMode = "custom"
)

// Valid reports whether m is a known budget mode.
func (m BudgetMode) Valid() bool {
	return m == BudgetSmart || m == BudgetCustom
}

// IncomeCategory is excluded from per-category budgeting.
const IncomeCategory = "Income"

// UserData is the whole dashboard state of one user, persisted as a single record.
type UserData struct {
	// Transactions are ordered most recent first (insertion order matters).
	Transactions []Transaction `json:"transactions"`

	Accounts []Account `json:"accounts"`

	// Categories is an ordered set; the order is the display and default-selection order.
	Categories []string `json:"categories"`

	// CategoryLimits maps a category name to a cumulative spend ceiling.
	// Absent or zero means no limit. Keys may outlive the category itself.
	CategoryLimits map[string]float64 `json:"categoryLimits"`

	BudgetMode BudgetMode `json:"budgetMode"`

	// CustomLimit is kept as the raw user input and parsed leniently when evaluated.
	CustomLimit string `json:"customLimit"`
}

// DefaultUserData returns a fresh copy of the template every new user starts with.
func DefaultUserData() UserData {
	return UserData{
		Transactions: []Transaction{},
		Accounts: []Account{
			{ID: "1", Name: "Main Savings", Type: "Savings", Balance: 0, Color: "from-blue-600 to-blue-400"},
			{ID: "2", Name: "Wallet Cash", Type: "Cash", Balance: 0, Color: "from-emerald-600 to-emerald-400"},
		},
		Categories: []string{
			"Food", "Utilities", "Entertainment", "Transport",
			"Healthcare", "Shopping", "Personal", IncomeCategory,
		},
		CategoryLimits: map[string]float64{},
		BudgetMode:     BudgetSmart,
		CustomLimit:    "10000",
	}
}

// Normalize replaces nil collections with empty ones and an unknown budget mode with
// the default, so records written by older versions read back consistently.
func (d *UserData) Normalize() {
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Accounts == nil {
		d.Accounts = []Account{}
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
	if d.CategoryLimits == nil {
		d.CategoryLimits = map[string]float64{}
	}
	if !d.BudgetMode.Valid() {
		d.BudgetMode = BudgetSmart
	}
}

// Clone returns a deep copy of d.
func (d UserData) Clone() UserData {
	out := d
	out.Transactions = append([]Transaction(nil), d.Transactions...)
	out.Accounts = append([]Account(nil), d.Accounts...)
	out.Categories = append([]string(nil), d.Categories...)
	out.CategoryLimits = make(map[string]float64, len(d.CategoryLimits))
	for k, v := range d.CategoryLimits {
		out.CategoryLimits[k] = v
	}
	out.Normalize()
	return out
}
