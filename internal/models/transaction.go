package models

// TransactionType tells whether a transaction adds or removes money.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a single dated monetary event in a user's log.
type Transaction struct {
	// ID is generated from the clock when the transaction is added and is unique
	// within one user's log.
	ID string `json:"id"`

	// Description is the free-text label (e.g., "Lunch", "Salary").
	Description string `json:"description"`

	// Amount is always positive; the sign is carried by Type.
	Amount float64 `json:"amount"`

	// Date is a calendar date string, normally "2006-01-02". It is kept verbatim.
	Date string `json:"date"`

	// Category names an entry of UserData.Categories. Not enforced: deleting a
	// category leaves existing transactions pointing at the old name.
	Category string `json:"category"`

	// Type is income or expense.
	Type TransactionType `json:"type"`
}
