package ports

import (
	"context"

	"github.com/fablekeep/storygraph/internal/domain/entities"
)

// RelationalDB defines the storage interface for the relationship core.
// All operations run against a single embedded database connection;
// multi-row writes (pairs, batches) are transactional inside the
// implementation so a partial failure never persists anything.
type RelationalDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Character operations

	// SaveCharacter saves or updates a character.
	SaveCharacter(ctx context.Context, c *entities.Character) error

	// FindCharacterByID finds a character by id. Returns nil if not found.
	FindCharacterByID(ctx context.Context, id string) (*entities.Character, error)

	// FindCharacterByName finds a character by normalized name within a story.
	FindCharacterByName(ctx context.Context, storyID, name string) (*entities.Character, error)

	// ListCharacters lists all characters for a story ordered by name.
	ListCharacters(ctx context.Context, storyID string) ([]*entities.Character, error)

	// DeleteCharacter deletes a character by id. Relationships involving
	// the character are removed by cascade.
	DeleteCharacter(ctx context.Context, id string) error

	// CountCharacters returns the number of characters in a story.
	CountCharacters(ctx context.Context, storyID string) (int, error)

	// Relationship type registry

	// SaveCategory saves a relationship category.
	SaveCategory(ctx context.Context, cat *entities.RelationshipCategory) error

	// ListCategories lists all categories ordered by display order then name.
	ListCategories(ctx context.Context) ([]entities.RelationshipCategory, error)

	// FindCategoryByName finds a category by name. Returns nil if not found.
	FindCategoryByName(ctx context.Context, name string) (*entities.RelationshipCategory, error)

	// SaveRelationshipType inserts a relationship type. Returns
	// entities.ErrDuplicateTypeName when (category, name) already exists.
	SaveRelationshipType(ctx context.Context, rt *entities.RelationshipType) error

	// FindRelationshipType finds a type by id. Returns nil if not found.
	FindRelationshipType(ctx context.Context, id string) (*entities.RelationshipType, error)

	// FindRelationshipTypeByName finds the first type with the given name
	// across categories, preferring lower category display order.
	FindRelationshipTypeByName(ctx context.Context, name string) (*entities.RelationshipType, error)

	// ListRelationshipTypes lists types matching the filter, ordered by
	// category display order then type name.
	ListRelationshipTypes(ctx context.Context, filter entities.TypeFilter) ([]entities.RelationshipType, error)

	// CountRelationshipTypes returns the total number of relationship types.
	CountRelationshipTypes(ctx context.Context) (int, error)

	// ReplaceTypeInverses replaces the full inverse set for a type.
	// Idempotent: clears existing rows and re-inserts in slice order.
	ReplaceTypeInverses(ctx context.Context, typeID string, inverseTypeIDs []string) error

	// FindInverseTypes returns the registered inverse candidates for a
	// type in insertion order; empty when none are configured.
	FindInverseTypes(ctx context.Context, typeID string) ([]entities.RelationshipType, error)

	// Relationship instances

	// SaveRelationship inserts a relationship edge.
	SaveRelationship(ctx context.Context, rel *entities.Relationship) error

	// SaveRelationshipPair inserts both directions atomically and
	// cross-links their inverse ids. When either side is flagged primary,
	// existing primary flags between the two characters are cleared in
	// the same transaction.
	SaveRelationshipPair(ctx context.Context, forward, backward *entities.Relationship) error

	// FindRelationship finds an edge by id. Returns nil if not found.
	FindRelationship(ctx context.Context, id string) (*entities.Relationship, error)

	// UpdateRelationship applies a partial update. Returns false (no
	// error) when the id does not exist.
	UpdateRelationship(ctx context.Context, id string, update *entities.RelationshipUpdate) (bool, error)

	// DeleteRelationship removes an edge. The paired inverse edge is not
	// touched; bendpoints cascade. Returns false when the id is unknown.
	DeleteRelationship(ctx context.Context, id string) (bool, error)

	// FindRelationshipsByCharacter unions outgoing and incoming edges for
	// a character, annotated for display and sorted by strength
	// descending then updated_at descending.
	FindRelationshipsByCharacter(ctx context.Context, characterID string) ([]entities.CharacterRelation, error)

	// FindRelationshipsBetween returns all edges between two characters
	// (either direction) joined with type and character names.
	FindRelationshipsBetween(ctx context.Context, a, b string) ([]entities.RelationshipView, error)

	// ClearPrimaryBetween clears is_primary on every edge between the two
	// characters, both directions.
	ClearPrimaryBetween(ctx context.Context, a, b string) error

	// ApplyRelationshipBatch applies all operations in one transaction;
	// any failure rolls back the whole batch.
	ApplyRelationshipBatch(ctx context.Context, ops []entities.BatchOp) error

	// CountRelationships returns the total number of relationship edges.
	CountRelationships(ctx context.Context) (int, error)

	// Layout metadata

	// SaveBendpoint saves a bendpoint row for a relationship.
	SaveBendpoint(ctx context.Context, bp *entities.Bendpoint) error

	// FindBendpoints returns bendpoints for a relationship ordered by position.
	FindBendpoints(ctx context.Context, relationshipID string) ([]entities.Bendpoint, error)
}
