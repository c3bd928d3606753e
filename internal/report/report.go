// Package report renders the dashboard as a terminal document.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/format"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
)

// recentSnapshots is how many history rows the report lists
const recentSnapshots = 5

var hundred = decimal.NewFromInt(100)

// Markdown builds the report document
func Markdown(d *dashboard.Dashboard) string {
	m := d.Metrics
	cur := m.Currency
	money := func(v decimal.Decimal) string { return format.Money(v, cur) }

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Net Worth: %s\n\n", money(m.OverallNet))

	sb.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Total assets | %s |\n", money(m.TotalAssets))
	fmt.Fprintf(&sb, "| Total debt | %s |\n", money(m.TotalDebt))
	fmt.Fprintf(&sb, "| Card net | %s |\n", money(m.CCNet))
	fmt.Fprintf(&sb, "| Card limits | %s |\n", money(m.TotalLimit))
	fmt.Fprintf(&sb, "| Asset coverage | %s%% |\n", m.AssetCoverage.StringFixed(1))
	sb.WriteString("\n")

	sb.WriteString("## Gold\n\n")
	if m.GoldPricePerGram.IsZero() {
		fmt.Fprintf(&sb, "%s held, no market data.\n\n", format.Grams(m.GoldGrams))
	} else {
		fmt.Fprintf(&sb, "%s at %s/g = **%s** (%s%% of assets)\n\n",
			format.Grams(m.GoldGrams), money(m.GoldPricePerGram), money(m.GoldValue),
			m.PortfolioWeight.Mul(hundred).StringFixed(1))
		fmt.Fprintf(&sb, "1D %s · 1W %s · 1M %s · 1Y %s\n\n",
			money(m.GoldPerformance.D1), money(m.GoldPerformance.W1),
			money(m.GoldPerformance.M1), money(m.GoldPerformance.Y1))
	}

	sb.WriteString("## Trend\n\n")
	if m.SnapshotCount == 0 {
		sb.WriteString("No snapshots yet.\n\n")
	} else {
		fmt.Fprintf(&sb, "- Velocity: %s/day since last snapshot\n", money(m.Velocity))
		fmt.Fprintf(&sb, "- Momentum: %s/day since first snapshot\n", money(m.Momentum))
		fmt.Fprintf(&sb, "- All-time high: %s\n", money(m.AllTimeHigh))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "## Next milestone: %s\n\n%s%% reached\n\n", money(m.NextMilestone), m.MilestoneProgress.StringFixed(1))

	if recent := recentHistory(d.State.History); len(recent) > 0 {
		sb.WriteString("## Recent snapshots\n\n| Date | Net | Assets | Debt |\n|---|---|---|---|\n")
		for _, s := range recent {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				s.Date.Format("2006-01-02 15:04"),
				format.Money(s.OverallNet.Decimal, s.Currency),
				format.Money(s.TotalAssets.Decimal, s.Currency),
				format.Money(s.TotalDebt.Decimal, s.Currency))
		}
	}

	return sb.String()
}

// Render turns markdown into styled terminal output. style is a glamour standard style
// ("dark", "light", "notty", "ascii"); empty picks from the environment.
func Render(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithEnvironmentConfig())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return out, nil
}

// recentHistory returns the newest snapshots first
func recentHistory(history []domain.Snapshot) []domain.Snapshot {
	sorted := domain.SortedByDate(history)
	n := len(sorted)
	if n > recentSnapshots {
		n = recentSnapshots
	}
	out := make([]domain.Snapshot, 0, n)
	for i := len(sorted) - 1; i >= len(sorted)-n; i-- {
		out = append(out, sorted[i])
	}
	return out
}
