package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewPostgresWithPool(mock), mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveAnalysis(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(pgxmock.AnyArg(), "phase one", "210", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	saved, err := s.SaveAnalysis(context.Background(), "phase one", sampleResult("210"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "210", saved.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAnalysis(t *testing.T) {
	s, mock := newMockStore(t)

	result := sampleResult("210")
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, label, code, result, created_at FROM analyses").
			WithArgs("abc-123").
			WillReturnRows(pgxmock.NewRows([]string{"id", "label", "code", "result", "created_at"}).
				AddRow("abc-123", "phase one", "210", resultJSON, created))

		a, err := s.GetAnalysis(context.Background(), "abc-123")
		require.NoError(t, err)
		assert.Equal(t, "abc-123", a.ID)
		assert.Equal(t, 1072, a.Result.Periods[model.PeriodWeekday].Trips.Value)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, label, code, result, created_at FROM analyses").
			WithArgs("nope").
			WillReturnRows(pgxmock.NewRows([]string{"id", "label", "code", "result", "created_at"}))

		_, err := s.GetAnalysis(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAnalyses(t *testing.T) {
	s, mock := newMockStore(t)

	result := sampleResult("210")
	resultJSON, err := json.Marshal(result)
	require.NoError(t, err)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, label, code, result, created_at FROM analyses").
		WithArgs("210", 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "label", "code", "result", "created_at"}).
			AddRow("a1", "", "210", resultJSON, created).
			AddRow("a2", "", "210", resultJSON, created))

	analyses, err := s.ListAnalyses(context.Background(), AnalysisFilter{Code: "210", Limit: 50})
	require.NoError(t, err)
	assert.Len(t, analyses, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteAnalysis(t *testing.T) {
	s, mock := newMockStore(t)

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM analyses").
			WithArgs("abc-123").
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, s.DeleteAnalysis(context.Background(), "abc-123"))
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM analyses").
			WithArgs("nope").
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := s.DeleteAnalysis(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
