package amqp

import (
	"encoding/json"
	"time"

	"github.com/mmynk/budgetbuddy/internal/ledger"
)

// BudgetAlertMessage announces that an expense crossed a budget ceiling.
type BudgetAlertMessage struct {
	UserID         string    `json:"user_id"`
	TransactionID  string    `json:"transaction_id"`
	Category       string    `json:"category,omitempty"`
	Amount         float64   `json:"amount"`
	GlobalBudget   bool      `json:"global_budget"`
	CategoryBudget bool      `json:"category_budget"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewBudgetAlertMessage converts a ledger alert into its wire form.
func NewBudgetAlertMessage(alert ledger.BreachAlert) *BudgetAlertMessage {
	ts := alert.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return &BudgetAlertMessage{
		UserID:         alert.UserID,
		TransactionID:  alert.TransactionID,
		Category:       alert.Category,
		Amount:         alert.Amount,
		GlobalBudget:   alert.Global,
		CategoryBudget: alert.Category != "",
		Timestamp:      ts.UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON decodes a message body.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
