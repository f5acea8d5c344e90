package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
	"github.com/fablekeep/storygraph/internal/infrastructure/config"
	"github.com/fablekeep/storygraph/internal/infrastructure/relationaldb/sqlite"
)

const testStoryID = "story-integration"

// env wires the full service stack against a real file-backed database,
// the same way the CLI does.
type env struct {
	repo          *sqlite.Repository
	characters    *services.CharacterService
	types         *services.RelationshipTypeService
	relationships *services.RelationshipService
}

func newEnv(t *testing.T) (*env, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "story.db")
	return openEnv(t, dbPath), dbPath
}

// openEnv opens (or reopens) the database at dbPath and seeds the
// default relationship types when the registry is empty.
func openEnv(t *testing.T, dbPath string) *env {
	t.Helper()
	ctx := context.Background()

	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.EnsureSchema(ctx))

	types := services.NewRelationshipTypeService(repo)
	require.NoError(t, types.SeedDefaults(ctx))

	return &env{
		repo:          repo,
		characters:    services.NewCharacterService(repo),
		types:         types,
		relationships: services.NewRelationshipService(repo, types),
	}
}

func mustCharacter(t *testing.T, e *env, name string, gender entities.Gender) *entities.Character {
	t.Helper()
	c, err := e.characters.Create(context.Background(), testStoryID, name, gender)
	require.NoError(t, err)
	return c
}

func mustType(t *testing.T, e *env, name string) *entities.RelationshipType {
	t.Helper()
	rt, err := e.types.GetTypeByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, rt, "relationship type %q should be seeded", name)
	return rt
}

// newEdge builds a relationship edge for batch operations with the
// display defaults filled in.
func newEdge(sourceID, targetID, typeID string, primary bool) *entities.Relationship {
	now := time.Now()
	return &entities.Relationship{
		ID:        uuid.New().String(),
		SourceID:  sourceID,
		TargetID:  targetID,
		TypeID:    typeID,
		Strength:  entities.DefaultStrength,
		Color:     entities.DefaultColor,
		Width:     entities.DefaultWidth,
		IsPrimary: primary,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newPairOp(a, b *entities.Character, typeID, inverseTypeID string, primary bool) entities.BatchOp {
	return entities.BatchOp{
		Action:   entities.BatchAddPair,
		Forward:  newEdge(a.ID, b.ID, typeID, primary),
		Backward: newEdge(b.ID, a.ID, inverseTypeID, false),
	}
}
