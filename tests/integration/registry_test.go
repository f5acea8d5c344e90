package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablekeep/storygraph/internal/domain/entities"
)

// TestTypeRegistry covers the seeded registry, duplicate rejection and
// custom inverse wiring against a real database.
func TestTypeRegistry(t *testing.T) {
	ctx := context.Background()
	e, _ := newEnv(t)

	t.Run("defaults are seeded once", func(t *testing.T) {
		count, err := e.repo.CountRelationshipTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(entities.DefaultTypes), count)

		require.NoError(t, e.types.SeedDefaults(ctx))
		after, err := e.repo.CountRelationshipTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, count, after, "reseeding must not duplicate types")
	})

	t.Run("gendered inverse resolution", func(t *testing.T) {
		father := mustType(t, e, "Father")

		inverse, err := e.types.PickDefaultInverse(ctx, father.ID, entities.GenderFemale)
		require.NoError(t, err)
		require.NotNil(t, inverse)
		assert.Equal(t, "Daughter", inverse.Name)

		inverse, err = e.types.PickDefaultInverse(ctx, father.ID, entities.GenderMale)
		require.NoError(t, err)
		require.NotNil(t, inverse)
		assert.Equal(t, "Son", inverse.Name)

		inverse, err = e.types.PickDefaultInverse(ctx, father.ID, entities.GenderNotSpecified)
		require.NoError(t, err)
		require.NotNil(t, inverse)
		assert.Equal(t, "Child", inverse.Name)
	})

	t.Run("duplicate name in category is rejected", func(t *testing.T) {
		categories, err := e.types.Categories(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, categories)
		other := categories[len(categories)-1]

		_, err = e.types.CreateType(ctx, "Liege", "", entities.ContextNeutral, other.ID)
		require.NoError(t, err)

		before, err := e.repo.CountRelationshipTypes(ctx)
		require.NoError(t, err)

		_, err = e.types.CreateType(ctx, "Liege", "", entities.ContextNeutral, other.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrDuplicateTypeName)

		after, err := e.repo.CountRelationshipTypes(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("custom inverse wiring drives resolution", func(t *testing.T) {
		categories, err := e.types.Categories(ctx)
		require.NoError(t, err)
		other := categories[len(categories)-1]

		liege := mustType(t, e, "Liege")
		vassalID, err := e.types.CreateType(ctx, "Vassal", "", entities.ContextNeutral, other.ID)
		require.NoError(t, err)

		require.NoError(t, e.types.SetInverses(ctx, liege.ID, []string{vassalID}))
		require.NoError(t, e.types.SetInverses(ctx, vassalID, []string{liege.ID}))

		inverse, err := e.types.PickDefaultInverse(ctx, liege.ID, entities.GenderFemale)
		require.NoError(t, err)
		require.NotNil(t, inverse)
		assert.Equal(t, "Vassal", inverse.Name)
	})
}
