package models

// Account is a named source of money (bank account, wallet, card).
type Account struct {
	// ID is unique within the user's accounts.
	ID string `json:"id"`

	// Name is the display name (e.g., "Main Savings").
	Name string `json:"name"`

	// Type is a free-form label such as "Savings" or "Cash".
	Type string `json:"type"`

	// Balance is the opening balance. It is static: transactions never change it.
	// The running balance is derived by the calculator package.
	Balance float64 `json:"balance"`

	// Color is a presentation tag for clients.
	Color string `json:"color"`
}
