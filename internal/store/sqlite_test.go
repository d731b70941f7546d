package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleResult(code string) *model.AnalysisResult {
	return &model.AnalysisResult{
		Success:     true,
		Code:        code,
		Name:        "Single-Family Detached Housing",
		Category:    "Residential",
		Size:        100,
		Unit:        "Dwelling Units",
		GeneratedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Periods: map[model.Period]model.PeriodResult{
			model.PeriodWeekday: {
				Trips:  model.Int(1072),
				Method: model.MethodFittedCurve,
			},
		},
		Thresholds: &model.ThresholdVerdict{OverallStatus: model.StatusWarning},
	}
}

func TestSQLiteSaveAndGet(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	saved, err := s.SaveAnalysis(ctx, "phase one", sampleResult("210"))
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	assert.Equal(t, "210", saved.Code)

	got, err := s.GetAnalysis(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "phase one", got.Label)
	assert.Equal(t, 1072, got.Result.Periods[model.PeriodWeekday].Trips.Value)
	require.NotNil(t, got.Result.Thresholds)
	assert.Equal(t, model.StatusWarning, got.Result.Thresholds.OverallStatus)
}

func TestSQLiteSaveNilResult(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.SaveAnalysis(context.Background(), "x", nil)
	assert.Error(t, err)
}

func TestSQLiteGetMissing(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.GetAnalysis(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteList(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	for _, code := range []string{"210", "210", "710"} {
		_, err := s.SaveAnalysis(ctx, "", sampleResult(code))
		require.NoError(t, err)
	}

	t.Run("all", func(t *testing.T) {
		analyses, err := s.ListAnalyses(ctx, AnalysisFilter{})
		require.NoError(t, err)
		assert.Len(t, analyses, 3)
	})

	t.Run("filter by code", func(t *testing.T) {
		analyses, err := s.ListAnalyses(ctx, AnalysisFilter{Code: "210"})
		require.NoError(t, err)
		assert.Len(t, analyses, 2)
	})

	t.Run("limit and offset", func(t *testing.T) {
		analyses, err := s.ListAnalyses(ctx, AnalysisFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, analyses, 2)

		analyses, err = s.ListAnalyses(ctx, AnalysisFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, analyses, 1)
	})
}

func TestSQLiteDelete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	saved, err := s.SaveAnalysis(ctx, "", sampleResult("210"))
	require.NoError(t, err)

	require.NoError(t, s.DeleteAnalysis(ctx, saved.ID))

	_, err = s.GetAnalysis(ctx, saved.ID)
	assert.Error(t, err)

	err = s.DeleteAnalysis(ctx, saved.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
