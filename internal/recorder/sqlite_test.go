package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IssuanceSentinel/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sentinel.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestSQLiteRecorder_Blocks(t *testing.T) {
	rec := openTestRecorder(t)

	reports := []model.BlockReport{
		{Height: 929929, Base: 5_000_000, Multiplier: 1, Issuance: 5_000_000, TotalMinted: 5_000_000},
		{Height: 929930, Base: 5_000_000, WindowSpend: 50_000_000, SmoothedSpend: 5e7, Multiplier: 0.75, Issuance: 3_750_000, TotalMinted: 8_750_000},
	}
	for i := range reports {
		require.NoError(t, rec.RecordBlock("default", &reports[i]))
	}
	require.NoError(t, rec.RecordBlock("beta-0.25", &reports[0]))

	n, err := rec.BlockCount("default")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	total, err := rec.LastTotalMinted("default")
	require.NoError(t, err)
	assert.Equal(t, uint64(8_750_000), total)
}

func TestSQLiteRecorder_MismatchAndRun(t *testing.T) {
	rec := openTestRecorder(t)

	require.NoError(t, rec.RecordMismatch("default", &model.Mismatch{Height: 1, Expected: 2, Observed: 3}))
	require.NoError(t, rec.RecordRun(&model.RunSummary{
		Label:      "default",
		FromHeight: 929929,
		ToHeight:   930028,
		Blocks:     100,
		Issued:     140_058_400,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}))

	var mismatches, runs int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM issuance_mismatches`).Scan(&mismatches))
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	assert.Equal(t, 1, mismatches)
	assert.Equal(t, 1, runs)
}

func TestSQLiteRecorder_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentinel.db")
	rec, err := NewSQLiteRecorder(path)
	require.NoError(t, err)
	require.NoError(t, rec.RecordBlock("default", &model.BlockReport{Height: 1, TotalMinted: 10}))
	require.NoError(t, rec.Close())

	rec, err = NewSQLiteRecorder(path)
	require.NoError(t, err)
	defer rec.Close()
	n, err := rec.BlockCount("default")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordBlock("x", &model.BlockReport{}))
	assert.NoError(t, rec.RecordMismatch("x", &model.Mismatch{}))
	assert.NoError(t, rec.RecordRun(&model.RunSummary{}))
	assert.NoError(t, rec.Close())
}
