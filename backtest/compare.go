package backtest

import (
	"fmt"
	"sort"

	"github.com/rustyeddy/fxhedge/market"
)

// Scenario pairs a label with a fixed hedge ratio.
type Scenario struct {
	Label string
	Ratio float64
}

// DefaultScenarios is the fixed comparison menu. The 40% entry stands in
// for the algorithm's recommended ratio; during backtesting it is a fixed
// reference point, not a dynamically computed value.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Label: "No Hedge (0%)", Ratio: 0.0},
		{Label: "Conservative (25%)", Ratio: 0.25},
		{Label: "Algorithm (40%)", Ratio: 0.40},
		{Label: "Moderate (50%)", Ratio: 0.50},
		{Label: "Aggressive (75%)", Ratio: 0.75},
		{Label: "Full Hedge (100%)", Ratio: 1.0},
	}
}

// Comparison augments a scenario result with its performance relative to
// the no-hedge baseline.
type Comparison struct {
	ScenarioResult
	Label             string
	CostVsBaseline    float64
	CostVsBaselinePct float64
	RiskAdjustedScore float64
}

// ComparisonTable holds one comparison per scenario, in menu order.
type ComparisonTable struct {
	Rows []Comparison
}

// Baseline returns the zero-hedge row.
func (t *ComparisonTable) Baseline() Comparison {
	for _, row := range t.Rows {
		if row.HedgeRatio == 0 {
			return row
		}
	}
	// Compare guarantees a baseline exists.
	return Comparison{}
}

// Ranked returns the rows sorted descending by risk-adjusted score. The
// sort is stable, so ties keep the menu's insertion order; this ordering is
// part of the report contract.
func (t *ComparisonTable) Ranked() []Comparison {
	ranked := make([]Comparison, len(t.Rows))
	copy(ranked, t.Rows)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RiskAdjustedScore > ranked[j].RiskAdjustedScore
	})
	return ranked
}

// Compare simulates every scenario in the menu over the same series window
// and scores each against the zero-hedge baseline. The menu must contain a
// zero-ratio entry, and the baseline's total cost must be nonzero; both
// violations are configuration errors raised before any scoring.
func (e *Engine) Compare(series market.RateSeries, scenarios []Scenario) (*ComparisonTable, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	table := &ComparisonTable{Rows: make([]Comparison, 0, len(scenarios))}

	baselineIdx := -1
	for _, sc := range scenarios {
		result, err := e.Simulate(series, sc.Ratio)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Label, err)
		}
		if sc.Ratio == 0 && baselineIdx == -1 {
			baselineIdx = len(table.Rows)
		}
		table.Rows = append(table.Rows, Comparison{ScenarioResult: result, Label: sc.Label})
	}

	if baselineIdx == -1 {
		return nil, fmt.Errorf("scenario menu has no zero-hedge baseline")
	}

	baseline := table.Rows[baselineIdx].TotalCost
	if baseline == 0 {
		return nil, fmt.Errorf("baseline total cost is zero; cannot compare scenarios")
	}

	for i := range table.Rows {
		row := &table.Rows[i]
		row.CostVsBaseline = row.TotalCost - baseline
		row.CostVsBaselinePct = (row.TotalCost/baseline - 1) * 100

		// A perfectly flat cost series scores 0 exactly, never Inf or NaN.
		if row.Volatility > 0 {
			row.RiskAdjustedScore = -row.CostVsBaseline / row.Volatility
		} else {
			row.RiskAdjustedScore = 0
		}
	}

	return table, nil
}
