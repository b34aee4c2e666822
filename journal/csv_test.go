package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCSV(t *testing.T) (*CSVJournal, string, string) {
	t.Helper()
	dir := t.TempDir()
	recsPath := filepath.Join(dir, "recommendations.csv")
	backtestsPath := filepath.Join(dir, "backtests.csv")

	j, err := NewCSV(recsPath, backtestsPath)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })

	return j, recsPath, backtestsPath
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVRecordRecommendation(t *testing.T) {
	j, recsPath, _ := newTestCSV(t)

	at := time.Date(2025, 8, 26, 9, 30, 0, 0, time.UTC)
	rec := FromRecommendation(sampleRecommendation("rec-csv", at))
	require.NoError(t, j.RecordRecommendation(rec))

	rows := readCSV(t, recsPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "rec_id", rows[0][0])
	assert.Equal(t, "rec-csv", rows[1][0])
	assert.Equal(t, "2025-08-26T09:30:00Z", rows[1][1])
	assert.Equal(t, "0.42", rows[1][2])
	assert.Equal(t, "489", rows[1][10])
}

func TestCSVRecordBacktest(t *testing.T) {
	j, _, backtestsPath := newTestCSV(t)

	require.NoError(t, j.RecordBacktest(sampleRun("run-csv")))

	rows := readCSV(t, backtestsPath)
	require.Len(t, rows, 3) // header + 2 scenarios
	assert.Equal(t, "run_id", rows[0][0])
	assert.Equal(t, "run-csv", rows[1][0])
	assert.Equal(t, "1", rows[1][2]) // rank
	assert.Equal(t, "Full Hedge (100%)", rows[1][3])
	assert.Equal(t, "2", rows[2][2])
	assert.Equal(t, "No Hedge (0%)", rows[2][3])
}

func TestCSVReopenKeepsHistory(t *testing.T) {
	dir := t.TempDir()
	recsPath := filepath.Join(dir, "recommendations.csv")
	backtestsPath := filepath.Join(dir, "backtests.csv")

	at := time.Date(2025, 8, 26, 9, 30, 0, 0, time.UTC)

	j, err := NewCSV(recsPath, backtestsPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordRecommendation(FromRecommendation(sampleRecommendation("first-run", at))))
	require.NoError(t, j.Close())

	// A second process run must append, not start over.
	j, err = NewCSV(recsPath, backtestsPath)
	require.NoError(t, err)
	require.NoError(t, j.RecordRecommendation(FromRecommendation(sampleRecommendation("second-run", at.Add(time.Hour)))))
	require.NoError(t, j.Close())

	rows := readCSV(t, recsPath)
	require.Len(t, rows, 3, "header + one record per run")
	assert.Equal(t, "rec_id", rows[0][0])
	assert.Equal(t, "first-run", rows[1][0])
	assert.Equal(t, "second-run", rows[2][0])

	// Only one header, even after the reopen.
	headers := 0
	for _, row := range rows {
		if row[0] == "rec_id" {
			headers++
		}
	}
	assert.Equal(t, 1, headers)
}

func TestCSVHeadersWrittenOnCreate(t *testing.T) {
	_, recsPath, backtestsPath := newTestCSV(t)

	assert.Len(t, readCSV(t, recsPath), 1)
	assert.Len(t, readCSV(t, backtestsPath), 1)
}
