package services

import (
	"context"
	"testing"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/mocks"
	"github.com/fablekeep/storygraph/internal/infrastructure/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid characters", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewImportService(db)

		result, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John", Gender: "male", LineNum: 1},
			{Name: "Jane", Gender: "female", LineNum: 2},
		}, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)

		john, err := db.FindCharacterByName(ctx, "story-1", "John")
		require.NoError(t, err)
		require.NotNil(t, john)
		assert.Equal(t, entities.GenderMale, john.Gender)
	})

	t.Run("missing name reported with line number", func(t *testing.T) {
		svc := NewImportService(mocks.NewRelationalDB())

		result, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John", LineNum: 1},
			{Name: "   ", LineNum: 2},
		}, ImportOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 2, result.Errors[0].Line)
		assert.Equal(t, "name", result.Errors[0].Field)
	})

	t.Run("dry run saves nothing", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewImportService(db)

		result, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John"},
		}, ImportOptions{DryRun: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)

		count, err := db.CountCharacters(ctx, "story-1")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("skip strategy leaves existing untouched", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewImportService(db)

		_, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John", Gender: "male"},
		}, ImportOptions{})
		require.NoError(t, err)

		result, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "john", Gender: "female"},
		}, ImportOptions{OnConflict: ConflictSkip})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, 1, result.Skipped)

		existing, err := db.FindCharacterByName(ctx, "story-1", "John")
		require.NoError(t, err)
		assert.Equal(t, entities.GenderMale, existing.Gender)
	})

	t.Run("overwrite keeps identity and creation time", func(t *testing.T) {
		db := mocks.NewRelationalDB()
		svc := NewImportService(db)

		_, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John", Gender: "male"},
		}, ImportOptions{})
		require.NoError(t, err)
		original, err := db.FindCharacterByName(ctx, "story-1", "John")
		require.NoError(t, err)

		result, err := svc.Import(ctx, "story-1", []parsers.RawCharacter{
			{Name: "John", Gender: "other"},
		}, ImportOptions{OnConflict: ConflictOverwrite})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)

		updated, err := db.FindCharacterByName(ctx, "story-1", "John")
		require.NoError(t, err)
		assert.Equal(t, original.ID, updated.ID)
		assert.Equal(t, original.CreatedAt, updated.CreatedAt)
		assert.Equal(t, entities.GenderOther, updated.Gender)
	})
}
