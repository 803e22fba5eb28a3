// Package models defines the core domain models for BudgetBuddy.
//
// # Models
//
//   - User: a registered account's profile (credentials live elsewhere)
//   - UserData: the single per-user record holding everything the dashboard shows
//   - Transaction: one dated income or expense event
//   - Account: a named money source with a static opening balance
//
// # Design Principles
//
// 1. **One record per user**: UserData is read and written as a whole; there are no
// per-field transactions.
// 2. **Sign lives in Type**: amounts and balances are never negative.
// 3. **Loose references**: Transaction.Category is a plain string that usually, but not
// necessarily, names an entry of UserData.Categories.
// 4. **JSON is the storage format**: field tags match the persisted shape exactly.
package models
