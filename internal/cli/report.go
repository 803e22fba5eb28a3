package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/mmynk/budgetbuddy/internal/calculator"
	"github.com/mmynk/budgetbuddy/internal/models"
)

// DefaultRecent is the number of transactions listed when Report.Recent is zero.
const DefaultRecent = 10

const labelWidth = 18

var columnWidths = []int{16, 28, 16, 16}

// Report renders a user's dashboard for the terminal.
type Report struct {
	Symbol string
	// Recent caps the transaction list; zero means DefaultRecent.
	Recent int
}

// Render returns the summary box, the category table and the most recent
// transactions of data, separated by blank lines.
func (r Report) Render(data models.UserData, snap calculator.Snapshot) string {
	sections := []string{
		r.summary(data, snap),
		r.categories(snap),
		r.transactions(data.Transactions),
	}
	return strings.Join(sections, "\n\n") + "\n"
}

func (r Report) money(d decimal.Decimal) string {
	return r.Symbol + d.StringFixed(2)
}

func (r Report) summary(data models.UserData, snap calculator.Snapshot) string {
	status := SuccessStyle.Render("within budget")
	if snap.IsOverBudget {
		status = ErrorStyle.Render("over budget")
	} else if snap.BudgetUsagePercent >= 80 {
		status = WarningStyle.Render("close to limit")
	}

	rows := [][2]string{
		{"Income", SuccessStyle.Render(r.money(snap.TotalIncome))},
		{"Expenses", ErrorStyle.Render(r.money(snap.TotalExpense))},
		{"Balance", BoldStyle.Render(r.money(snap.CurrentBalance))},
		{"Budget (" + string(data.BudgetMode) + ")", r.money(snap.EffectiveLimit)},
		{"Used", fmt.Sprintf("%.1f%% %s", snap.BudgetUsagePercent, status)},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			cell(TableHeaderStyle, labelWidth, row[0]),
			row[1],
		))
	}
	return RenderBox("Summary", strings.Join(lines, "\n"))
}

func (r Report) categories(snap calculator.Snapshot) string {
	var b strings.Builder
	b.WriteString(TitleStyle.UnsetMargins().Render("Categories"))
	b.WriteString("\n")
	b.WriteString(r.row(TableHeaderStyle, "Category", "Spent", "Limit", "Progress"))

	for _, stat := range snap.CategoryStats {
		limit := SubtleStyle.Render("none")
		progress := SubtleStyle.Render("-")
		if stat.Limit.IsPositive() {
			limit = r.money(stat.Limit)
			progress = fmt.Sprintf("%.0f%%", stat.Progress)
			if stat.IsOver {
				progress = ErrorStyle.Render(progress + " over")
			}
		}
		b.WriteString("\n")
		b.WriteString(r.row(TableCellStyle, stat.Category, r.money(stat.Spent), limit, progress))
	}
	return b.String()
}

func (r Report) transactions(txs []models.Transaction) string {
	n := r.Recent
	if n <= 0 {
		n = DefaultRecent
	}

	var b strings.Builder
	b.WriteString(TitleStyle.UnsetMargins().Render("Recent transactions"))
	if len(txs) == 0 {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("No transactions yet."))
		return b.String()
	}

	for i, tx := range txs {
		if i == n {
			b.WriteString("\n")
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("... and %d more", len(txs)-n)))
			break
		}
		amount := r.money(decimal.NewFromFloat(tx.Amount))
		if tx.Type == models.Income {
			amount = SuccessStyle.Render("+" + amount)
		} else {
			amount = ErrorStyle.Render("-" + amount)
		}
		b.WriteString("\n")
		b.WriteString(r.row(TableCellStyle, tx.Date, tx.Description, tx.Category, amount))
	}
	return b.String()
}

func (r Report) row(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = cell(style, columnWidths[i%len(columnWidths)], c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// cell renders s in a column w wide. Width counts the padding, so text longer
// than what is left is cut with an ellipsis instead of wrapping.
func cell(style lipgloss.Style, w int, s string) string {
	if room := w - style.GetHorizontalPadding(); ansi.StringWidth(s) > room {
		s = ansi.Truncate(s, room, "…")
	}
	return style.Width(w).Render(s)
}
