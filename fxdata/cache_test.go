package fxdata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxhedge/market"
)

func TestSeriesCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache, err := NewSeriesCache(t.TempDir())
	require.NoError(t, err)

	series := market.RateSeries{
		{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Rate: 4.5012},
		{Time: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Rate: 4.5234},
		{Time: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Rate: 4.4998},
	}

	require.NoError(t, cache.Put("MYR=X", series))

	got, mod, err := cache.Get("MYR=X")
	require.NoError(t, err)
	assert.Equal(t, series, got)
	assert.WithinDuration(t, time.Now(), mod, time.Minute)
}

func TestSeriesCachePutReplaces(t *testing.T) {
	t.Parallel()

	cache, err := NewSeriesCache(t.TempDir())
	require.NoError(t, err)

	first := market.RateSeries{{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Rate: 4.0}}
	second := market.RateSeries{{Time: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Rate: 4.6}}

	require.NoError(t, cache.Put("MYR=X", first))
	require.NoError(t, cache.Put("MYR=X", second))

	got, _, err := cache.Get("MYR=X")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSeriesCacheMiss(t *testing.T) {
	t.Parallel()

	cache, err := NewSeriesCache(t.TempDir())
	require.NoError(t, err)

	_, _, err = cache.Get("NOPE=X")
	assert.Error(t, err)
}

func TestSeriesCacheRejectsEmptySeries(t *testing.T) {
	t.Parallel()

	cache, err := NewSeriesCache(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, cache.Put("MYR=X", nil))
}

func TestSeriesCacheSanitizesSymbol(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := NewSeriesCache(dir)
	require.NoError(t, err)

	series := market.RateSeries{{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Rate: 4.5}}
	require.NoError(t, cache.Put("MYR=X", series))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "MYR_X.csv.xz", entries[0].Name())
	assert.Equal(t, ".xz", filepath.Ext(entries[0].Name()))
}

func TestSeriesCacheCorruptEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cache, err := NewSeriesCache(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "MYR_X.csv.xz"), []byte("not xz data"), 0644))

	_, _, err = cache.Get("MYR=X")
	assert.Error(t, err)
}
