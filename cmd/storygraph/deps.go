package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fablekeep/storygraph/internal/application/handlers"
	"github.com/fablekeep/storygraph/internal/domain/ports"
	"github.com/fablekeep/storygraph/internal/domain/services"
	"github.com/fablekeep/storygraph/internal/infrastructure/config"
	"github.com/fablekeep/storygraph/internal/infrastructure/relationaldb/sqlite"
)

// Deps bundles everything a story-scoped command needs.
type Deps struct {
	StoryName string
	StoryID   string

	DB ports.RelationalDB

	Characters    *handlers.CharacterHandler
	Relationships *handlers.RelationshipHandler
	Types         *handlers.TypeHandler
	Import        *handlers.ImportHandler
}

// withDeps resolves the --story flag, opens the story database, makes
// sure the schema and the default relationship types exist, runs fn, and
// closes the database afterwards.
func withDeps(ctx context.Context, fn func(ctx context.Context, deps *Deps) error) error {
	if globalStory == "" {
		return fmt.Errorf("story is required (use --story flag)")
	}

	basePath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return err
	}

	stories, err := config.LoadStories(basePath)
	if err != nil {
		return err
	}
	entry, err := stories.Get(globalStory)
	if err != nil {
		return err
	}

	sqliteCfg := cfg.SQLite
	if sqliteCfg.Path == "" {
		sqliteCfg.Path = config.SQLitePathForStory(basePath, globalStory)
	}

	db, err := sqlite.NewRepository(sqliteCfg)
	if err != nil {
		return fmt.Errorf("opening story database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	typeSvc := services.NewRelationshipTypeService(db)
	if err := typeSvc.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seeding default relationship types: %w", err)
	}

	characterSvc := services.NewCharacterService(db)
	relationshipSvc := services.NewRelationshipService(db, typeSvc)

	deps := &Deps{
		StoryName:     globalStory,
		StoryID:       entry.ID,
		DB:            db,
		Characters:    handlers.NewCharacterHandler(characterSvc, relationshipSvc),
		Relationships: handlers.NewRelationshipHandler(characterSvc, typeSvc, relationshipSvc),
		Types:         handlers.NewTypeHandler(typeSvc),
		Import:        handlers.NewImportHandler(services.NewImportService(db)),
	}

	return fn(ctx, deps)
}
