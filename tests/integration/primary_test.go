package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// TestBatchPrimaryConstraint exercises the primary invariant over whole
// batches: ambiguous batches persist nothing and conflicting batches
// are rejected outright.
func TestBatchPrimaryConstraint(t *testing.T) {
	ctx := context.Background()
	e, _ := newEnv(t)

	john := mustCharacter(t, e, "John", entities.GenderMale)
	jane := mustCharacter(t, e, "Jane", entities.GenderFemale)
	friend := mustType(t, e, "Friend")
	mentor := mustType(t, e, "Mentor")
	student := mustType(t, e, "Student")

	t.Run("two unflagged pairs need disambiguation", func(t *testing.T) {
		ops := []entities.BatchOp{
			newPairOp(john, jane, friend.ID, friend.ID, false),
			newPairOp(john, jane, mentor.ID, student.ID, false),
		}

		check, err := e.relationships.ApplyBatch(ctx, john.ID, jane.ID, ops)
		require.NoError(t, err)
		assert.Equal(t, services.PrimaryNeedsDisambiguation, check.Status)
		assert.Len(t, check.Candidates, 2)

		count, err := e.relationships.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count, "an ambiguous batch must not persist anything")
	})

	t.Run("two flagged pairs conflict", func(t *testing.T) {
		ops := []entities.BatchOp{
			newPairOp(john, jane, friend.ID, friend.ID, true),
			newPairOp(john, jane, mentor.ID, student.ID, true),
		}

		check, err := e.relationships.ApplyBatch(ctx, john.ID, jane.ID, ops)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrPrimaryConflict)
		assert.Equal(t, services.PrimaryConflict, check.Status)

		count, err := e.relationships.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("one flagged pair commits", func(t *testing.T) {
		ops := []entities.BatchOp{
			newPairOp(john, jane, friend.ID, friend.ID, true),
			newPairOp(john, jane, mentor.ID, student.ID, false),
		}

		check, err := e.relationships.ApplyBatch(ctx, john.ID, jane.ID, ops)
		require.NoError(t, err)
		assert.Equal(t, services.PrimaryOK, check.Status)

		count, err := e.relationships.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
		require.NoError(t, err)
		require.Len(t, descriptors, 2)

		primaries := 0
		for _, d := range descriptors {
			if d.IsPrimary {
				primaries++
			}
		}
		assert.Equal(t, 1, primaries)
	})
}

// TestFlaggedPendingResolvesExisting verifies that adding one flagged
// pair on top of unflagged existing pairs satisfies the constraint:
// exactly one primary among many groups is a valid state.
func TestFlaggedPendingResolvesExisting(t *testing.T) {
	ctx := context.Background()
	e, _ := newEnv(t)

	john := mustCharacter(t, e, "John", entities.GenderMale)
	jane := mustCharacter(t, e, "Jane", entities.GenderFemale)
	friend := mustType(t, e, "Friend")
	rival := mustType(t, e, "Rival")
	ally := mustType(t, e, "Ally")

	_, _, err := e.relationships.CreatePair(ctx, john.ID, jane.ID, friend.ID, "", services.RelationshipOptions{})
	require.NoError(t, err)
	_, _, err = e.relationships.CreatePair(ctx, john.ID, jane.ID, rival.ID, "", services.RelationshipOptions{})
	require.NoError(t, err)

	check, err := e.relationships.ApplyBatch(ctx, john.ID, jane.ID, []entities.BatchOp{
		newPairOp(john, jane, ally.ID, ally.ID, true),
	})
	require.NoError(t, err)
	assert.Equal(t, services.PrimaryOK, check.Status)

	descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	primaries := 0
	for _, d := range descriptors {
		if d.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}

// TestPrimaryDemotion verifies that flagging a new pair as primary
// clears the flag on the previous primary between the same characters.
func TestPrimaryDemotion(t *testing.T) {
	ctx := context.Background()
	e, _ := newEnv(t)

	john := mustCharacter(t, e, "John", entities.GenderMale)
	jane := mustCharacter(t, e, "Jane", entities.GenderFemale)
	friend := mustType(t, e, "Friend")
	rival := mustType(t, e, "Rival")

	first, _, err := e.relationships.CreatePair(ctx, john.ID, jane.ID, friend.ID, "", services.RelationshipOptions{IsPrimary: true})
	require.NoError(t, err)

	_, _, err = e.relationships.CreatePair(ctx, john.ID, jane.ID, rival.ID, "", services.RelationshipOptions{IsPrimary: true})
	require.NoError(t, err)

	demoted, err := e.relationships.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, demoted)
	assert.False(t, demoted.IsPrimary)

	descriptors, err := e.relationships.ListBetween(ctx, john.ID, jane.ID)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	primaries := 0
	for _, d := range descriptors {
		if d.IsPrimary {
			primaries++
		}
	}
	assert.Equal(t, 1, primaries)
}
