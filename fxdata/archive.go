package fxdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xyproto/unzip"

	"github.com/rustyeddy/fxhedge/market"
)

// LoadReferenceArchive reads a rate series from a zip archive holding a
// reference-rate history CSV, the format the ECB publishes as a bulk
// download: a Date column followed by one column per currency, newest row
// first, "N/A" for missing values. It is an offline data source for
// backtests; no network involved.
func LoadReferenceArchive(zipPath, currency string) (market.RateSeries, error) {
	tmp, err := os.MkdirTemp("", "fxhedge-archive-*")
	if err != nil {
		return nil, fmt.Errorf("create extract dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := unzip.Extract(zipPath, tmp); err != nil {
		return nil, fmt.Errorf("extract %s: %w", zipPath, err)
	}

	csvPath, err := findCSV(tmp)
	if err != nil {
		return nil, err
	}
	return parseReferenceCSV(csvPath, currency)
}

func findCSV(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") && found == "" {
			found = path
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan archive contents: %w", err)
	}
	if found == "" {
		return "", fmt.Errorf("archive contains no CSV file")
	}
	return found, nil
}

func parseReferenceCSV(path, currency string) (market.RateSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ECB rows carry a trailing empty column

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read archive header: %w", err)
	}

	col := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), currency) {
			col = i
			break
		}
	}
	if col <= 0 {
		return nil, fmt.Errorf("currency %q not found in archive columns", currency)
	}

	var series market.RateSeries
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if len(row) <= col {
			continue
		}

		day, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}

		raw := strings.TrimSpace(row[col])
		if raw == "" || strings.EqualFold(raw, "N/A") {
			continue
		}
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			continue
		}

		series = append(series, market.RatePoint{Time: day.UTC(), Rate: rate})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no observations for %s in archive", currency)
	}

	// The published history runs newest-first; the core wants oldest-first.
	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("archive series invalid: %w", err)
	}
	return series, nil
}
