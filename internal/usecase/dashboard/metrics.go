package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
)

var (
	hundred       = decimal.NewFromInt(100)
	minDaysSince  = decimal.RequireFromString("0.01")
	msPerDay      = decimal.NewFromInt(24 * 60 * 60 * 1000)
	milestoneGrow = decimal.RequireFromString("1.2")

	// milestoneLadder is the ascending set of round net-worth targets
	milestoneLadder = []decimal.Decimal{
		decimal.NewFromInt(1_000),
		decimal.NewFromInt(5_000),
		decimal.NewFromInt(10_000),
		decimal.NewFromInt(25_000),
		decimal.NewFromInt(50_000),
		decimal.NewFromInt(100_000),
		decimal.NewFromInt(250_000),
		decimal.NewFromInt(500_000),
		decimal.NewFromInt(1_000_000),
	}
)

// Input is everything the metrics are derived from
type Input struct {
	State  domain.State
	Market *domain.MarketSnapshot // nil when no market data was ever fetched
	Now    time.Time
}

// GoldPerformance is the money moved by the gold holding over each window
type GoldPerformance struct {
	D1 decimal.Decimal `json:"d1"`
	W1 decimal.Decimal `json:"w1"`
	M1 decimal.Decimal `json:"m1"`
	Y1 decimal.Decimal `json:"y1"`
}

// Bundle represents the full set of derived metrics at one point in time
type Bundle struct {
	Currency          domain.Currency `json:"currency"`
	TotalLimit        decimal.Decimal `json:"totalLimit"`
	TotalDebt         decimal.Decimal `json:"totalDebt"`
	TotalAssets       decimal.Decimal `json:"totalAssets"`
	OverallNet        decimal.Decimal `json:"overallNet"`
	CCNet             decimal.Decimal `json:"ccNet"`
	GoldGrams         decimal.Decimal `json:"goldGrams"`
	GoldPricePerGram  decimal.Decimal `json:"goldPricePerGram"`
	GoldValue         decimal.Decimal `json:"goldValue"`
	PortfolioWeight   decimal.Decimal `json:"portfolioWeight"`
	GoldPerformance   GoldPerformance `json:"goldPerformance"`
	AssetCoverage     decimal.Decimal `json:"assetCoverage"`
	Velocity          decimal.Decimal `json:"velocity"`
	Momentum          decimal.Decimal `json:"momentum"`
	AllTimeHigh       decimal.Decimal `json:"allTimeHigh"`
	NextMilestone     decimal.Decimal `json:"nextMilestone"`
	MilestoneProgress decimal.Decimal `json:"milestoneProgress"`
	SnapshotCount     int             `json:"snapshotCount"`
}

// Compute derives the metrics bundle. It is a pure function of its input and never fails:
// missing market data, empty collections and empty history all yield zeros.
func Compute(in Input) Bundle {
	st := in.State
	b := Bundle{
		Currency:      st.Currency,
		TotalLimit:    decimal.Zero,
		TotalDebt:     decimal.Zero,
		TotalAssets:   decimal.Zero,
		CCNet:         decimal.Zero,
		GoldGrams:     st.GoldGrams.Decimal,
		SnapshotCount: len(st.History),
	}

	// 1. Entity reductions
	for _, c := range st.Cards {
		b.TotalLimit = b.TotalLimit.Add(c.Limit.Decimal)
		b.TotalDebt = b.TotalDebt.Add(c.Debt.Decimal)
		b.TotalAssets = b.TotalAssets.Add(c.Money.Decimal)
		b.CCNet = b.CCNet.Add(c.Money.Sub(c.Debt.Decimal))
	}
	for _, o := range st.Others {
		b.TotalDebt = b.TotalDebt.Add(o.Amount.Decimal)
	}
	for _, f := range st.Funds {
		b.TotalAssets = b.TotalAssets.Add(f.Amount.Decimal)
	}
	b.OverallNet = b.TotalAssets.Sub(b.TotalDebt)

	// 2. Gold valuation in the selected currency
	rate := in.Market.RateFor(st.Currency)
	price := decimal.Zero
	if in.Market != nil {
		price = in.Market.PricePerGram
	}
	b.GoldPricePerGram = price.Mul(rate)
	b.GoldValue = st.GoldGrams.Mul(b.GoldPricePerGram)
	b.PortfolioWeight = safeDiv(b.GoldValue, b.TotalAssets.Add(b.GoldValue))
	if in.Market != nil {
		b.GoldPerformance = GoldPerformance{
			D1: b.GoldValue.Mul(in.Market.ChangePercent.D1).Div(hundred),
			W1: b.GoldValue.Mul(in.Market.ChangePercent.W1).Div(hundred),
			M1: b.GoldValue.Mul(in.Market.ChangePercent.M1).Div(hundred),
			Y1: b.GoldValue.Mul(in.Market.ChangePercent.Y1).Div(hundred),
		}
	} else {
		b.GoldPerformance = GoldPerformance{D1: decimal.Zero, W1: decimal.Zero, M1: decimal.Zero, Y1: decimal.Zero}
	}

	debtBase := b.TotalDebt
	if debtBase.IsZero() {
		debtBase = decimal.NewFromInt(1)
	}
	b.AssetCoverage = clampPercent(b.TotalAssets.Div(debtBase).Mul(hundred))

	// 3. History trends, always on a date-sorted copy
	history := domain.SortedByDate(st.History)
	b.Velocity = decimal.Zero
	b.Momentum = decimal.Zero
	b.AllTimeHigh = b.OverallNet
	if len(history) > 0 {
		latest := history[len(history)-1]
		earliest := history[0]
		b.Velocity = b.OverallNet.Sub(latest.OverallNet.Decimal).Div(daysSince(latest.Date, in.Now))
		b.Momentum = b.OverallNet.Sub(earliest.OverallNet.Decimal).Div(daysSince(earliest.Date, in.Now))
		for _, s := range history {
			b.AllTimeHigh = decimal.Max(b.AllTimeHigh, s.OverallNet.Decimal)
		}
	}

	// 4. Milestone
	b.NextMilestone = NextMilestone(b.OverallNet)
	b.MilestoneProgress = clampPercent(b.OverallNet.Div(b.NextMilestone).Mul(hundred))

	return b
}

// NextMilestone returns the smallest ladder rung above net.
// Non-positive net targets the first rung; beyond the top rung the target is net x 1.2.
func NextMilestone(net decimal.Decimal) decimal.Decimal {
	if !net.IsPositive() {
		return milestoneLadder[0]
	}
	for _, rung := range milestoneLadder {
		if rung.GreaterThan(net) {
			return rung
		}
	}
	return net.Mul(milestoneGrow)
}

// daysSince returns fractional days between then and now, floored at 0.01
func daysSince(then, now time.Time) decimal.Decimal {
	days := decimal.NewFromInt(now.Sub(then).Milliseconds()).Div(msPerDay)
	return decimal.Max(days, minDaysSince)
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

func clampPercent(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(hundred) {
		return hundred
	}
	return v
}
