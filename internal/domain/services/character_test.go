package services

import (
	"context"
	"testing"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewCharacterService(db)

		c, err := svc.Create(ctx, "story-1", "John", entities.GenderMale)
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "John", c.Name)
		assert.Equal(t, "john", c.NormalizedName)
		assert.Equal(t, entities.GenderMale, c.Gender)
	})

	t.Run("name trimmed", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewCharacterService(db)

		c, err := svc.Create(ctx, "story-1", "  Jane  ", entities.GenderFemale)
		require.NoError(t, err)
		assert.Equal(t, "Jane", c.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		svc := NewCharacterService(mocks.NewRelationalDB())

		_, err := svc.Create(ctx, "story-1", "   ", entities.GenderNotSpecified)
		require.Error(t, err)
	})

	t.Run("duplicate name rejected case-insensitively", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewCharacterService(db)

		_, err := svc.Create(ctx, "story-1", "John", entities.GenderMale)
		require.NoError(t, err)

		_, err = svc.Create(ctx, "story-1", "JOHN", entities.GenderMale)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("same name allowed in another story", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewCharacterService(db)

		_, err := svc.Create(ctx, "story-1", "John", entities.GenderMale)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "story-2", "John", entities.GenderMale)
		require.NoError(t, err)
	})
}

func TestCharacterService_Delete(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	svc := NewCharacterService(db)

	c, err := svc.Create(ctx, "story-1", "John", entities.GenderMale)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, c.ID))

	err = svc.Delete(ctx, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrCharacterNotFound)
}

func TestCharacterService_Lookups(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewRelationalDB()
	svc := NewCharacterService(db)

	created, err := svc.Create(ctx, "story-1", "John", entities.GenderMale)
	require.NoError(t, err)

	t.Run("get by id", func(t *testing.T) {
		found, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "John", found.Name)
	})

	t.Run("get by name", func(t *testing.T) {
		found, err := svc.GetByName(ctx, "story-1", "john")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("missing returns nil", func(t *testing.T) {
		found, err := svc.Get(ctx, "nonexistent")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("list and count", func(t *testing.T) {
		_, err := svc.Create(ctx, "story-1", "Alice", entities.GenderFemale)
		require.NoError(t, err)

		list, err := svc.ListByStory(ctx, "story-1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Alice", list[0].Name)

		count, err := svc.Count(ctx, "story-1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
