package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompatibilityCheck(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	svc := NewCompatibilityService(db)

	t.Run("connected pair is compatible", func(t *testing.T) {
		result, err := svc.Check([]uint{f.Shade.ID, f.Base.ID})
		require.NoError(t, err)
		assert.True(t, result.IsCompatible)
		assert.Empty(t, result.Conflicts)
	})

	t.Run("edge direction does not matter", func(t *testing.T) {
		result, err := svc.Check([]uint{f.Base.ID, f.Shade.ID})
		require.NoError(t, err)
		assert.True(t, result.IsCompatible)
	})

	t.Run("no transitive closure", func(t *testing.T) {
		// shade-base and base-stem exist, shade-stem does not.
		result, err := svc.Check([]uint{f.Shade.ID, f.Stem.ID})
		require.NoError(t, err)
		assert.False(t, result.IsCompatible)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, f.Shade.ID, result.Conflicts[0].ComponentA)
		assert.Equal(t, f.Stem.ID, result.Conflicts[0].ComponentB)
	})

	t.Run("triple reports only the missing pair", func(t *testing.T) {
		result, err := svc.Check([]uint{f.Shade.ID, f.Base.ID, f.Stem.ID})
		require.NoError(t, err)
		assert.False(t, result.IsCompatible)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, ConflictPair{ComponentA: f.Shade.ID, ComponentB: f.Stem.ID}, result.Conflicts[0])
	})

	t.Run("fewer than two ids is trivially compatible", func(t *testing.T) {
		result, err := svc.Check([]uint{f.Shade.ID})
		require.NoError(t, err)
		assert.True(t, result.IsCompatible)

		result, err = svc.Check([]uint{})
		require.NoError(t, err)
		assert.True(t, result.IsCompatible)
		assert.NotNil(t, result.Conflicts)
	})
}
