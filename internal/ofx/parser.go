// Package ofx turns OFX/QFX bank statements into ledger transaction drafts.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/ledger"
	"github.com/mmynk/budgetbuddy/internal/models"
)

// DateLayout is the date format written into drafts.
const DateLayout = "2006-01-02"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML files sometimes drop the closing bracket of a bare tag line.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Entry is one statement line converted to a draft.
type Entry struct {
	// FITID is the bank's transaction id, unique per account.
	FITID   string
	Account string
	Draft   ledger.Draft
}

// Key identifies an entry across files for de-duplication.
func (e Entry) Key() string {
	return e.Account + "/" + e.FITID
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Parse reads an OFX/QFX document and returns its bank and credit card lines
// in statement order. Lines with a zero amount are skipped.
func (p *Parser) Parse(ctx context.Context, r io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		entries = p.appendLines(entries, string(stmt.BankAcctFrom.AcctID), stmt.BankTranList.Transactions)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		entries = p.appendLines(entries, string(stmt.CCAcctFrom.AcctID), stmt.BankTranList.Transactions)
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) appendLines(entries []Entry, account string, txs []ofxgo.Transaction) []Entry {
	for _, tx := range txs {
		entry, ok := p.convert(tx, account)
		if !ok {
			slog.Debug("Skipping zero-amount OFX line", "fitid", tx.FiTID, "account", account)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// convert maps an OFX line to a draft. OFX signs debits negative; the draft
// carries the magnitude and the sign becomes the transaction type. Credits go
// to the income category; debits keep the ledger's selected category.
func (p *Parser) convert(tx ofxgo.Transaction, account string) (Entry, bool) {
	f, _ := tx.TrnAmt.Float64()
	amount := decimal.NewFromFloat(f)
	if amount.IsZero() {
		return Entry{}, false
	}

	typ, category := models.Expense, ""
	if amount.IsPositive() {
		typ, category = models.Income, models.IncomeCategory
	}

	return Entry{
		FITID:   string(tx.FiTID),
		Account: account,
		Draft: ledger.Draft{
			Description: description(tx),
			Amount:      amount.Abs().StringFixed(2),
			Date:        tx.DtPosted.Time.Format(DateLayout),
			Category:    category,
			Type:        string(typ),
		},
	}, true
}

// description prefers the payee, then the name, then the memo when the name is generic.
func description(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range purchasePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}
	return name
}

var purchasePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"DEBIT PURCHASE ",
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
