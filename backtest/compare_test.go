package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/market"
)

func TestDefaultScenarios(t *testing.T) {
	t.Parallel()

	menu := DefaultScenarios()
	require.Len(t, menu, 6)

	ratios := make([]float64, len(menu))
	for i, sc := range menu {
		ratios[i] = sc.Ratio
	}
	assert.Equal(t, []float64{0, 0.25, 0.40, 0.50, 0.75, 1.0}, ratios)
	assert.Equal(t, "No Hedge (0%)", menu[0].Label)
	assert.Equal(t, "Algorithm (40%)", menu[2].Label)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(1_000_000, 100, DefaultFeeRate)
	require.NoError(t, err)

	// Rising rate path: hedging locks the cheap initial rate, so hedged
	// scenarios should beat the baseline on cost.
	rates := make([]float64, 150)
	for i := range rates {
		rates[i] = 4.00 + float64(i)*0.004
	}
	series := seriesFrom(rates...)

	table, err := e.Compare(series, DefaultScenarios())
	require.NoError(t, err)
	require.Len(t, table.Rows, 6)

	baseline := table.Baseline()
	assert.Equal(t, "No Hedge (0%)", baseline.Label)
	assert.Zero(t, baseline.CostVsBaseline)
	assert.Zero(t, baseline.CostVsBaselinePct)

	full := table.Rows[5]
	assert.Less(t, full.TotalCost, baseline.TotalCost)
	assert.Negative(t, full.CostVsBaseline)
	assert.Negative(t, full.CostVsBaselinePct)
	assert.Positive(t, full.RiskAdjustedScore)

	// Rows stay in menu order regardless of scores.
	for i, sc := range DefaultScenarios() {
		assert.Equal(t, sc.Label, table.Rows[i].Label)
		assert.Equal(t, sc.Ratio, table.Rows[i].HedgeRatio)
	}
}

func TestCompareRequiresBaseline(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(1_000_000, 30, DefaultFeeRate)
	require.NoError(t, err)

	_, err = e.Compare(flatSeries(40, 4.5), []Scenario{{Label: "Half", Ratio: 0.5}})
	assert.ErrorContains(t, err, "baseline")

	_, err = e.Compare(flatSeries(40, 4.5), nil)
	assert.Error(t, err)
}

func TestCompareZeroBaselineCost(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(1_000_000, 365, DefaultFeeRate)
	require.NoError(t, err)

	// One observation narrows the window to zero days: baseline cost 0.
	_, err = e.Compare(flatSeries(1, 4.5), DefaultScenarios())
	assert.ErrorContains(t, err, "baseline total cost is zero")
}

func TestCompareFlatSeriesScoresZero(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(1_000_000, 100, DefaultFeeRate)
	require.NoError(t, err)

	table, err := e.Compare(flatSeries(120, 4.50), DefaultScenarios())
	require.NoError(t, err)

	for _, row := range table.Rows {
		assert.Zero(t, row.Volatility, row.Label)
		assert.Zero(t, row.RiskAdjustedScore, row.Label)
	}
}

func TestRankedStableOrder(t *testing.T) {
	t.Parallel()

	table := &ComparisonTable{Rows: []Comparison{
		{Label: "A", RiskAdjustedScore: 0.2},
		{Label: "B", RiskAdjustedScore: -0.1},
		{Label: "C", RiskAdjustedScore: 0.2},
		{Label: "D", RiskAdjustedScore: 0.5},
	}}

	ranked := table.Ranked()
	labels := make([]string, len(ranked))
	for i, row := range ranked {
		labels[i] = row.Label
	}

	// Ties keep insertion order: A before C.
	assert.Equal(t, []string{"D", "A", "C", "B"}, labels)

	// Ranked must not reorder the underlying table.
	assert.Equal(t, "A", table.Rows[0].Label)
}

func TestCompareIndependentScenarioRuns(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(1_000_000, 50, DefaultFeeRate)
	require.NoError(t, err)

	series := market.Synthetic(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 80, 4.50, 0.005, 42)

	a, err := e.Compare(series, DefaultScenarios())
	require.NoError(t, err)
	b, err := e.Compare(series, DefaultScenarios())
	require.NoError(t, err)
	assert.Equal(t, a, b, "comparisons over identical inputs must be identical")
}
