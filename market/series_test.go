package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestRateSeriesValidate(t *testing.T) {
	t.Parallel()

	valid := RateSeries{
		{Time: day(0), Rate: 4.50},
		{Time: day(1), Rate: 4.52},
		{Time: day(2), Rate: 4.48},
	}
	assert.NoError(t, valid.Validate())

	nonPositive := RateSeries{
		{Time: day(0), Rate: 4.50},
		{Time: day(1), Rate: 0},
	}
	assert.Error(t, nonPositive.Validate())

	duplicate := RateSeries{
		{Time: day(0), Rate: 4.50},
		{Time: day(0), Rate: 4.51},
	}
	assert.Error(t, duplicate.Validate())

	backwards := RateSeries{
		{Time: day(1), Rate: 4.50},
		{Time: day(0), Rate: 4.51},
	}
	assert.Error(t, backwards.Validate())

	assert.NoError(t, RateSeries{}.Validate())
}

func TestRateSeriesTail(t *testing.T) {
	t.Parallel()

	s := RateSeries{
		{Time: day(0), Rate: 1},
		{Time: day(1), Rate: 2},
		{Time: day(2), Rate: 3},
	}

	assert.Equal(t, RateSeries{{Time: day(2), Rate: 3}}, s.Tail(1))
	assert.Len(t, s.Tail(2), 2)
	assert.Equal(t, s, s.Tail(3))
	assert.Equal(t, s, s.Tail(10))
}

func TestRateSeriesAccessors(t *testing.T) {
	t.Parallel()

	s := RateSeries{
		{Time: day(0), Rate: 4.40},
		{Time: day(1), Rate: 4.60},
	}
	assert.Equal(t, 4.40, s.First().Rate)
	assert.Equal(t, 4.60, s.Last().Rate)
	assert.Equal(t, []float64{4.40, 4.60}, s.Rates())
}

func TestQuoteString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "live", Live(4.5).String())
	assert.Equal(t, "fallback (api timeout)", Fallback(4.5, "api timeout").String())
	assert.Equal(t, "fallback", Quote{Value: 1, Source: SourceFallback}.String())
}

func TestSyntheticDeterministic(t *testing.T) {
	t.Parallel()

	end := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := Synthetic(end, 200, 4.50, 0.005, 42)
	b := Synthetic(end, 200, 4.50, 0.005, 42)
	require.Len(t, a, 200)
	assert.Equal(t, a, b)

	c := Synthetic(end, 200, 4.50, 0.005, 43)
	assert.NotEqual(t, a, c)
}

func TestSyntheticIsValidSeries(t *testing.T) {
	t.Parallel()

	s := Synthetic(time.Now(), 365, 4.50, 0.005, 42)
	require.Len(t, s, 365)
	assert.NoError(t, s.Validate())
	assert.Equal(t, 4.50, s.First().Rate)
}

func TestSyntheticDegenerate(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Synthetic(time.Now(), 0, 4.5, 0.005, 42))
	one := Synthetic(time.Now(), 1, 4.5, 0.005, 42)
	require.Len(t, one, 1)
	assert.Equal(t, 4.5, one[0].Rate)
}
