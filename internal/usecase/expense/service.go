package expense

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

const (
	// summaryWindowDays is the period the daily average is spread over
	summaryWindowDays = 30

	// trendDays is how many most recent spending days the trend keeps
	trendDays = 14
)

// CategoryTotal represents the outflow attributed to one category
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// DailyTotal represents the outflow on one calendar day
type DailyTotal struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary represents the spending overview of a transaction list
type Summary struct {
	TotalSpent    decimal.Decimal         `json:"totalSpent"`
	TotalReceived decimal.Decimal         `json:"totalReceived"`
	DailyAverage  decimal.Decimal         `json:"dailyAverage"`
	TopCategory   *CategoryTotal          `json:"topCategory,omitempty"`
	Categories    []CategoryTotal         `json:"categories"`
	Trend         []DailyTotal            `json:"trend"`
	Largest       *domain.BankTransaction `json:"largest,omitempty"`
	Count         int                     `json:"count"`
}

// Report bundles the display-only transaction list with its summary
type Report struct {
	Transactions []domain.BankTransaction `json:"transactions"`
	Summary      Summary                  `json:"summary"`
}

// ExpenseService handles the display-only bank transaction view.
// Transactions are never persisted and never feed the net-worth metrics.
type ExpenseService struct {
	Source domain.TransactionSource // nil when no bank feed is configured
}

// NewExpenseService creates a new ExpenseService instance
func NewExpenseService(source domain.TransactionSource) *ExpenseService {
	return &ExpenseService{
		Source: source,
	}
}

// GetReport lists the user's transactions newest first and summarizes them
func (s *ExpenseService) GetReport(ctx context.Context, userID string) (*Report, error) {
	if s.Source == nil || userID == "" {
		return &Report{Transactions: []domain.BankTransaction{}, Summary: Summarize(nil)}, nil
	}

	txs, err := s.Source.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date > txs[j].Date
	})

	return &Report{Transactions: txs, Summary: Summarize(txs)}, nil
}

// Summarize computes spending totals
// Logic:
//   - Positive amounts are outflows, negative amounts inflows
//   - Categories and the daily trend only count outflows
//   - The daily average spreads the total outflow over 30 days
func Summarize(txs []domain.BankTransaction) Summary {
	summary := Summary{
		TotalSpent:    decimal.Zero,
		TotalReceived: decimal.Zero,
		DailyAverage:  decimal.Zero,
		Categories:    []CategoryTotal{},
		Trend:         []DailyTotal{},
		Count:         len(txs),
	}

	byCategory := make(map[string]decimal.Decimal)
	byDay := make(map[string]decimal.Decimal)

	for i := range txs {
		tx := txs[i]
		if !tx.IsOutflow() {
			summary.TotalReceived = summary.TotalReceived.Add(tx.Amount.Neg())
			continue
		}

		summary.TotalSpent = summary.TotalSpent.Add(tx.Amount)

		category := domain.DisplayCategory(tx.Category)
		byCategory[category] = byCategory[category].Add(tx.Amount)
		byDay[tx.Date] = byDay[tx.Date].Add(tx.Amount)

		if summary.Largest == nil || tx.Amount.GreaterThan(summary.Largest.Amount) {
			summary.Largest = &tx
		}
	}

	if len(txs) > 0 {
		summary.DailyAverage = summary.TotalSpent.Div(decimal.NewFromInt(summaryWindowDays))
	}

	for category, amount := range byCategory {
		percent := decimal.Zero
		if !summary.TotalSpent.IsZero() {
			percent = amount.Div(summary.TotalSpent).Mul(decimal.NewFromInt(100))
		}
		summary.Categories = append(summary.Categories, CategoryTotal{Category: category, Amount: amount, Percent: percent})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		a, b := summary.Categories[i], summary.Categories[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	if len(summary.Categories) > 0 {
		top := summary.Categories[0]
		summary.TopCategory = &top
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > trendDays {
		days = days[len(days)-trendDays:]
	}
	for _, day := range days {
		summary.Trend = append(summary.Trend, DailyTotal{Date: day, Amount: byDay[day]})
	}

	return summary
}
