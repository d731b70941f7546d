package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/tripgen-cli/internal/model"
)

func TestModalRegistryLookup(t *testing.T) {
	modal, err := DefaultModal()
	require.NoError(t, err)

	t.Run("direct hit", func(t *testing.T) {
		rec, fallback, ok := modal.Lookup("710", model.ModePerson)
		require.True(t, ok)
		assert.False(t, fallback)
		assert.Equal(t, model.ModePerson, rec.Mode)
		assert.InDelta(t, 13.07, rec.Weekday.Rate.Value, 0.001)
	})

	t.Run("walk falls back to aggregate", func(t *testing.T) {
		rec, fallback, ok := modal.Lookup("710", model.ModeWalk)
		require.True(t, ok)
		assert.True(t, fallback)
		assert.Equal(t, model.ModeWalkBikeTransit, rec.Mode)
	})

	t.Run("specific mode beats aggregate", func(t *testing.T) {
		rec, fallback, ok := modal.Lookup("820", model.ModeTransit)
		require.True(t, ok)
		assert.False(t, fallback)
		assert.Equal(t, model.ModeTransit, rec.Mode)
	})

	t.Run("person never falls back", func(t *testing.T) {
		_, _, ok := modal.Lookup("932", model.ModePerson)
		assert.False(t, ok)
	})

	t.Run("no data at all", func(t *testing.T) {
		_, _, ok := modal.Lookup("210", model.ModeWalk)
		assert.False(t, ok)
	})
}

func TestNewModalRegistry_Validation(t *testing.T) {
	t.Run("missing mode", func(t *testing.T) {
		_, err := NewModalRegistry([]model.ModalRecord{{Code: "210"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing code or mode")
	})

	t.Run("duplicate", func(t *testing.T) {
		recs := []model.ModalRecord{
			{Code: "210", Mode: model.ModePerson},
			{Code: "210", Mode: model.ModePerson},
		}
		_, err := NewModalRegistry(recs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate modal record")
	})
}
