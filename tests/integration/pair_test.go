package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// TestPairLifecycle walks a pair from creation through persistence to
// the tolerated single left behind after deleting one side.
func TestPairLifecycle(t *testing.T) {
	ctx := context.Background()
	e, dbPath := newEnv(t)

	john := mustCharacter(t, e, "John", entities.GenderMale)
	jane := mustCharacter(t, e, "Jane", entities.GenderFemale)
	father := mustType(t, e, "Father")

	forward, backward, err := e.relationships.CreatePair(ctx, john.ID, jane.ID, father.ID, "", services.RelationshipOptions{})
	require.NoError(t, err)

	t.Run("backward type resolved from target gender", func(t *testing.T) {
		rt, err := e.repo.FindRelationshipType(ctx, backward.TypeID)
		require.NoError(t, err)
		require.NotNil(t, rt)
		assert.Equal(t, "Daughter", rt.Name)
	})

	t.Run("edges are cross-linked", func(t *testing.T) {
		assert.Equal(t, backward.ID, forward.InverseRelationshipID)
		assert.Equal(t, forward.ID, backward.InverseRelationshipID)
	})

	t.Run("pair description", func(t *testing.T) {
		descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
		require.NoError(t, err)
		require.Len(t, descriptors, 1)
		assert.True(t, descriptors[0].Paired)
		assert.Equal(t, "John (Father) ↔ Jane (Daughter)", descriptors[0].Description)
	})

	// Reopen at the parent level so the cleanup registered by openEnv
	// outlives the remaining subtests.
	require.NoError(t, e.repo.Close())
	e = openEnv(t, dbPath)

	t.Run("survives reopening the database", func(t *testing.T) {
		descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
		require.NoError(t, err)
		require.Len(t, descriptors, 1)
		assert.Equal(t, "John (Father) ↔ Jane (Daughter)", descriptors[0].Description)
	})

	t.Run("deleting one side leaves a single", func(t *testing.T) {
		deleted, err := e.relationships.Delete(ctx, backward.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
		require.NoError(t, err)
		require.Len(t, descriptors, 1)
		assert.False(t, descriptors[0].Paired)
		assert.Equal(t, "John (Father)", descriptors[0].Description)

		remaining, err := e.relationships.Get(ctx, forward.ID)
		require.NoError(t, err)
		require.NotNil(t, remaining)
		assert.Empty(t, remaining.InverseRelationshipID)
	})
}

// TestCharacterCascade verifies that removing a character takes its
// relationship edges with it.
func TestCharacterCascade(t *testing.T) {
	ctx := context.Background()
	e, _ := newEnv(t)

	john := mustCharacter(t, e, "John", entities.GenderMale)
	jane := mustCharacter(t, e, "Jane", entities.GenderFemale)
	friend := mustType(t, e, "Friend")

	_, _, err := e.relationships.CreatePair(ctx, john.ID, jane.ID, friend.ID, "", services.RelationshipOptions{})
	require.NoError(t, err)

	require.NoError(t, e.characters.Delete(ctx, jane.ID))

	count, err := e.relationships.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
