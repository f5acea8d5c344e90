package handlers

import (
	"context"
	"testing"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/mocks"
	"github.com/fablekeep/storygraph/internal/domain/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db            *mocks.RelationalDB
	characters    *CharacterHandler
	relationships *RelationshipHandler
	types         *TypeHandler
}

func setupHandlers(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db := mocks.NewRelationalDB()
	typeSvc := services.NewRelationshipTypeService(db)
	require.NoError(t, typeSvc.SeedDefaults(ctx))
	characterSvc := services.NewCharacterService(db)
	relationshipSvc := services.NewRelationshipService(db, typeSvc)

	return &fixture{
		db:            db,
		characters:    NewCharacterHandler(characterSvc, relationshipSvc),
		relationships: NewRelationshipHandler(characterSvc, typeSvc, relationshipSvc),
		types:         NewTypeHandler(typeSvc),
	}
}

func TestRelationshipHandler_HandleRelate(t *testing.T) {
	ctx := context.Background()

	t.Run("pair with auto-resolved inverse", func(t *testing.T) {
		f := setupHandlers(t)
		_, err := f.characters.HandleAdd(ctx, "story-1", "John", "male")
		require.NoError(t, err)
		_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "female")
		require.NoError(t, err)

		result, err := f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "Father", RelateOptions{})
		require.NoError(t, err)
		require.NotNil(t, result.Backward)
		assert.Equal(t, "John (Father) ↔ Jane (Daughter)", result.Description)
	})

	t.Run("single edge", func(t *testing.T) {
		f := setupHandlers(t)
		_, err := f.characters.HandleAdd(ctx, "story-1", "John", "male")
		require.NoError(t, err)
		_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "female")
		require.NoError(t, err)

		result, err := f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "Mentor", RelateOptions{Single: true})
		require.NoError(t, err)
		assert.Nil(t, result.Backward)
		assert.Equal(t, "John (Mentor)", result.Description)
	})

	t.Run("custom label wins in description", func(t *testing.T) {
		f := setupHandlers(t)
		_, err := f.characters.HandleAdd(ctx, "story-1", "John", "male")
		require.NoError(t, err)
		_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "female")
		require.NoError(t, err)

		result, err := f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "", RelateOptions{
			Single:      true,
			CustomLabel: "childhood nemesis",
		})
		require.NoError(t, err)
		assert.Equal(t, "John (childhood nemesis)", result.Description)
	})

	t.Run("unknown character", func(t *testing.T) {
		f := setupHandlers(t)
		_, err := f.relationships.HandleRelate(ctx, "story-1", "Nobody", "Jane", "Friend", RelateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrCharacterNotFound)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := setupHandlers(t)
		_, err := f.characters.HandleAdd(ctx, "story-1", "John", "male")
		require.NoError(t, err)
		_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "female")
		require.NoError(t, err)

		_, err = f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "Nonexistent", RelateOptions{})
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTypeNotFound)
	})
}

func TestRelationshipHandler_HandleBetween(t *testing.T) {
	ctx := context.Background()
	f := setupHandlers(t)

	_, err := f.characters.HandleAdd(ctx, "story-1", "John", "male")
	require.NoError(t, err)
	_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "female")
	require.NoError(t, err)

	_, err = f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "Father", RelateOptions{})
	require.NoError(t, err)

	descriptors, err := f.relationships.HandleBetween(ctx, "story-1", "Jane", "John")
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.True(t, descriptors[0].Paired)
}

func TestCharacterHandler(t *testing.T) {
	ctx := context.Background()
	f := setupHandlers(t)

	_, err := f.characters.HandleAdd(ctx, "story-1", "John", "m")
	require.NoError(t, err)
	_, err = f.characters.HandleAdd(ctx, "story-1", "Jane", "f")
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		list, err := f.characters.HandleList(ctx, "story-1")
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("show includes relations", func(t *testing.T) {
		_, err := f.relationships.HandleRelate(ctx, "story-1", "John", "Jane", "Friend", RelateOptions{})
		require.NoError(t, err)

		detail, err := f.characters.HandleShow(ctx, "story-1", "john")
		require.NoError(t, err)
		assert.Equal(t, "John", detail.Character.Name)
		assert.Equal(t, entities.GenderMale, detail.Character.Gender)
		require.Len(t, detail.Relations, 2)
	})

	t.Run("remove cascades", func(t *testing.T) {
		require.NoError(t, f.characters.HandleRemove(ctx, "story-1", "Jane"))

		count, err := f.relationships.HandleCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("remove unknown", func(t *testing.T) {
		err := f.characters.HandleRemove(ctx, "story-1", "Ghost")
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrCharacterNotFound)
	})
}

func TestTypeHandler(t *testing.T) {
	ctx := context.Background()
	f := setupHandlers(t)

	t.Run("list groups by category", func(t *testing.T) {
		listings, err := f.types.HandleList(ctx, "", "")
		require.NoError(t, err)
		require.NotEmpty(t, listings)
		assert.Equal(t, "Family", listings[0].Category.Name)
		assert.NotEmpty(t, listings[0].Types)
	})

	t.Run("list filtered by category name", func(t *testing.T) {
		listings, err := f.types.HandleList(ctx, "Romantic", "")
		require.NoError(t, err)
		require.Len(t, listings, 1)
		assert.Equal(t, "Romantic", listings[0].Category.Name)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := f.types.HandleList(ctx, "Nope", "")
		require.Error(t, err)
	})

	t.Run("show resolves inverses", func(t *testing.T) {
		detail, err := f.types.HandleShow(ctx, "Father")
		require.NoError(t, err)
		assert.Equal(t, "Family", detail.Category.Name)
		require.NotEmpty(t, detail.Inverses)
		assert.Equal(t, "Son", detail.Inverses[0].Name)
	})

	t.Run("add and wire inverses by name", func(t *testing.T) {
		_, err := f.types.HandleAdd(ctx, "Nemesis", "Nemesis", "neutral", "Other")
		require.NoError(t, err)
		require.NoError(t, f.types.HandleSetInverses(ctx, "Nemesis", []string{"Nemesis"}))

		detail, err := f.types.HandleShow(ctx, "Nemesis")
		require.NoError(t, err)
		require.Len(t, detail.Inverses, 1)
		assert.Equal(t, "Nemesis", detail.Inverses[0].Name)
	})
}
