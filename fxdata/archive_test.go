package fxdata

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArchive builds a zip holding one reference-rate CSV, newest row
// first, the way the published bulk download is laid out.
func writeArchive(t *testing.T, csvBody string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rates.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("eurofxref-hist.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte(csvBody))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

func TestLoadReferenceArchive(t *testing.T) {
	path := writeArchive(t, "Date,USD,MYR,JPY,\n"+
		"2025-01-03,1.03,4.52,157.2,\n"+
		"2025-01-02,1.04,4.48,156.8,\n"+
		"2025-01-01,1.05,N/A,156.1,\n")

	series, err := LoadReferenceArchive(path, "MYR")
	require.NoError(t, err)

	// N/A rows are skipped and the series comes back oldest-first.
	require.Len(t, series, 2)
	assert.Equal(t, 4.48, series[0].Rate)
	assert.Equal(t, 4.52, series[1].Rate)
	assert.True(t, series[0].Time.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, series.Validate())
}

func TestLoadReferenceArchiveCaseInsensitiveColumn(t *testing.T) {
	path := writeArchive(t, "Date,usd,myr,\n2025-01-02,1.04,4.48,\n")

	series, err := LoadReferenceArchive(path, "MYR")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 4.48, series[0].Rate)
}

func TestLoadReferenceArchiveUnknownCurrency(t *testing.T) {
	path := writeArchive(t, "Date,USD,\n2025-01-02,1.04,\n")

	_, err := LoadReferenceArchive(path, "MYR")
	assert.ErrorContains(t, err, "not found")
}

func TestLoadReferenceArchiveNoObservations(t *testing.T) {
	path := writeArchive(t, "Date,USD,MYR,\n2025-01-02,1.04,N/A,\n")

	_, err := LoadReferenceArchive(path, "MYR")
	assert.ErrorContains(t, err, "no observations")
}

func TestLoadReferenceArchiveMissingFile(t *testing.T) {
	_, err := LoadReferenceArchive(filepath.Join(t.TempDir(), "nope.zip"), "MYR")
	assert.Error(t, err)
}
