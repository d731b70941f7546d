package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

const yamlDataset = `
- code: "210"
  name: Single-Family Detached Housing
  category: Residential
  unit: Dwelling Units
  weekday:
    rate: 9.43
    equation: {type: linear, a: 8.07, b: 265.45}
    r_squared: 0.95
    sample_size: 174
    study_range: {min: 21, max: 2067}
  am_peak:
    rate: 0.7
    entering: 25
    exiting: 75
  pm_peak:
    rate: 0.94
`

func TestLoadRecordsFromFile(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "landuse.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlDataset), 0o644))

		records, err := LoadRecordsFromFile(path)
		require.NoError(t, err)
		require.Len(t, records, 1)

		rec := records[0]
		assert.Equal(t, "210", rec.Code)
		require.NotNil(t, rec.Weekday.Equation)
		assert.Equal(t, model.EquationLinear, rec.Weekday.Equation.Type)
		assert.InDelta(t, 0.95, rec.Weekday.RSquared.Value, 0.001)
		assert.False(t, rec.PMPeak.RSquared.Valid)
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "landuse.json")
		data := `[{"code":"100","name":"Test","category":"Testing","unit":"Units","weekday":{"rate":5}}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		records, err := LoadRecordsFromFile(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.InDelta(t, 5, records[0].Weekday.Rate.Value, 0.001)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "landuse.csv")
		require.NoError(t, os.WriteFile(path, []byte("code\n"), 0o644))

		_, err := LoadRecordsFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported file extension")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRecordsFromFile(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestOpen(t *testing.T) {
	t.Run("defaults when paths empty", func(t *testing.T) {
		reg, modal, err := Open("", "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, reg.Len(), 9)
		_, _, ok := modal.Lookup("710", model.ModePerson)
		assert.True(t, ok)
	})

	t.Run("override file wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "landuse.yaml")
		require.NoError(t, os.WriteFile(path, []byte(yamlDataset), 0o644))

		reg, _, err := Open(path, "")
		require.NoError(t, err)
		assert.Equal(t, 1, reg.Len())
	})
}
