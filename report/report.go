// Package report renders recommendation records and backtest comparison
// tables as text. All rounding for display happens here and nowhere else;
// the core hands over unrounded values. No file I/O: callers decide where
// the text goes.
package report

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/fxhedge/backtest"
	"github.com/rustyeddy/fxhedge/hedge"
)

const rule = "============================================================"

// Recommendation renders one advisor record.
func Recommendation(r hedge.Recommendation) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("FX HEDGING RECOMMENDATION\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "ID:           %s\n", r.ID)
	fmt.Fprintf(&b, "Date:         %s\n", r.Time.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Current Rate: %.4f\n\n", r.CurrentRate)

	fmt.Fprintf(&b, "Hedge Ratio:  %.1f%%\n", r.HedgeRatio*100)
	fmt.Fprintf(&b, "Action:       %s\n\n", r.Tier)

	b.WriteString("Signals:\n")
	fmt.Fprintf(&b, "  Carry:      %.3f\n", r.Signals.Carry)
	fmt.Fprintf(&b, "  Momentum:   %.3f\n", r.Signals.Momentum)
	fmt.Fprintf(&b, "  Value:      %.3f\n\n", r.Signals.Value)

	b.WriteString("Market Data:\n")
	fmt.Fprintf(&b, "  Domestic Rate: %.2f%%\n", r.Rates.Domestic)
	fmt.Fprintf(&b, "  Foreign Rate:  %.2f%%\n", r.Rates.Foreign)
	fmt.Fprintf(&b, "  Differential:  %+.2f%%\n", r.Rates.Differential())
	fmt.Fprintf(&b, "  Observations:  %d\n\n", r.Observations)

	b.WriteString("Data Sources:\n")
	fmt.Fprintf(&b, "  Spot:    %s\n", r.Sources.Spot)
	fmt.Fprintf(&b, "  History: %s\n", r.Sources.History)
	fmt.Fprintf(&b, "  Rates:   %s\n", r.Sources.Rates)
	fmt.Fprintf(&b, "  PPP:     %s\n", r.Sources.PPP)

	return b.String()
}

// Comparison renders the ranked scenario table of one backtest run.
func Comparison(table *backtest.ComparisonTable, annualPurchase float64, horizonDays int) string {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("FX HEDGING BACKTEST ANALYSIS\n")
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Annual Purchase: %s\n", money(annualPurchase))
	fmt.Fprintf(&b, "Horizon:         %d days\n", horizonDays)
	if len(table.Rows) > 0 && table.Rows[0].Horizon != horizonDays {
		fmt.Fprintf(&b, "NOTE: horizon narrowed to %d days (short series)\n", table.Rows[0].Horizon)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-22s %16s %12s %12s %10s\n",
		"Scenario", "Total Cost", "vs Baseline", "Volatility", "Score")
	b.WriteString(strings.Repeat("-", 76) + "\n")

	for _, row := range table.Ranked() {
		fmt.Fprintf(&b, "%-22s %16s %11.1f%% %12s %10.3f\n",
			row.Label,
			money(row.TotalCost),
			row.CostVsBaselinePct,
			money(row.Volatility),
			row.RiskAdjustedScore,
		)
	}

	best := table.Ranked()[0]
	fmt.Fprintf(&b, "\nBest risk-adjusted scenario: %s (score %.3f)\n", best.Label, best.RiskAdjustedScore)

	return b.String()
}

// money renders an amount with thousands separators, no currency symbol:
// the domestic currency is whatever the purchase amount was supplied in.
func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := int64(v)
	s := fmt.Sprintf("%d", whole)

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return sign + strings.Join(parts, ",")
}
