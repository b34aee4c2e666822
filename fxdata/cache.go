package fxdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/rustyeddy/fxhedge/market"
)

// SeriesCache persists fetched rate series on disk as xz-compressed CSV,
// one file per symbol, so repeated runs on the same day skip the network.
type SeriesCache struct {
	dir string
}

func NewSeriesCache(dir string) (*SeriesCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &SeriesCache{dir: dir}, nil
}

func (c *SeriesCache) path(symbol string) string {
	// Symbols like "MYR=X" need sanitizing before use as a filename.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, symbol)
	return filepath.Join(c.dir, safe+".csv.xz")
}

// Put writes the series for the symbol, replacing any previous entry. The
// write goes through a temp file so a crash never leaves a torn cache entry.
func (c *SeriesCache) Put(symbol string, series market.RateSeries) error {
	if len(series) == 0 {
		return fmt.Errorf("refusing to cache an empty series")
	}

	tmp, err := os.CreateTemp(c.dir, "series-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	xw, err := xz.NewWriter(tmp)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("create xz writer: %w", err)
	}

	w := csv.NewWriter(xw)
	if err := w.Write([]string{"time", "rate"}); err != nil {
		tmp.Close()
		return err
	}
	for _, p := range series {
		if err := w.Write([]string{
			p.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Rate, 'f', -1, 64),
		}); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := xw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("close xz writer: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), c.path(symbol))
}

// Get reads the cached series for the symbol and reports when it was
// written, so callers can judge freshness.
func (c *SeriesCache) Get(symbol string) (market.RateSeries, time.Time, error) {
	path := c.path(symbol)

	info, err := os.Stat(path)
	if err != nil {
		return nil, time.Time{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("open xz reader: %w", err)
	}

	r := csv.NewReader(xr)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("read cache entry: %w", err)
	}
	if len(rows) < 2 {
		return nil, time.Time{}, fmt.Errorf("cache entry for %s is empty", symbol)
	}

	series := make(market.RateSeries, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		if len(row) != 2 {
			return nil, time.Time{}, fmt.Errorf("bad cache row: %v", row)
		}
		ts, err := time.Parse(time.RFC3339, row[0])
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("bad cache time %q: %w", row[0], err)
		}
		rate, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("bad cache rate %q: %w", row[1], err)
		}
		series = append(series, market.RatePoint{Time: ts, Rate: rate})
	}

	if err := series.Validate(); err != nil {
		return nil, time.Time{}, fmt.Errorf("cache entry invalid: %w", err)
	}
	return series, info.ModTime(), nil
}
