// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/infrastructure/config"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity (bendpoint cascade
	// and character cascade depend on this)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Characters (owned by the story layer; relationship logic reads id, name, gender)
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		story_id TEXT NOT NULL,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT 'NOT_SPECIFIED',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(story_id, normalized_name)
	);
	CREATE INDEX IF NOT EXISTS idx_characters_story ON characters(story_id);
	CREATE INDEX IF NOT EXISTS idx_characters_normalized ON characters(story_id, normalized_name);

	-- Relationship categories (reference data, seeded once)
	CREATE TABLE IF NOT EXISTS relationship_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		display_order INTEGER NOT NULL DEFAULT 0
	);

	-- Relationship types, unique by name within a category.
	-- male_variant/female_variant name the gendered inverse types.
	CREATE TABLE IF NOT EXISTS relationship_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		label TEXT NOT NULL,
		gender_context TEXT NOT NULL DEFAULT 'neutral',
		category_id TEXT NOT NULL REFERENCES relationship_categories(id),
		is_common INTEGER NOT NULL DEFAULT 1,
		male_variant TEXT,
		female_variant TEXT,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(category_id, name)
	);
	CREATE INDEX IF NOT EXISTS idx_relationship_types_category ON relationship_types(category_id);

	-- Candidate inverses per type, insertion-ordered via position
	CREATE TABLE IF NOT EXISTS relationship_type_inverses (
		type_id TEXT NOT NULL REFERENCES relationship_types(id) ON DELETE CASCADE,
		inverse_type_id TEXT NOT NULL REFERENCES relationship_types(id) ON DELETE CASCADE,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (type_id, inverse_type_id)
	);

	-- Relationship edges (directed)
	CREATE TABLE IF NOT EXISTS relationships (
		id TEXT PRIMARY KEY,
		source_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		target_id TEXT NOT NULL REFERENCES characters(id) ON DELETE CASCADE,
		relationship_type_id TEXT REFERENCES relationship_types(id),
		strength INTEGER NOT NULL DEFAULT 3,
		color TEXT NOT NULL DEFAULT '#FF0000',
		width REAL NOT NULL DEFAULT 1.0,
		is_custom INTEGER NOT NULL DEFAULT 0,
		custom_label TEXT,
		inverse_relationship_id TEXT REFERENCES relationships(id),
		is_primary INTEGER NOT NULL DEFAULT 0,
		description TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		CHECK (source_id != target_id)
	);
	CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(source_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships(relationship_type_id);

	-- Line layout metadata, removed with its relationship
	CREATE TABLE IF NOT EXISTS relationship_bendpoints (
		id TEXT PRIMARY KEY,
		relationship_id TEXT NOT NULL REFERENCES relationships(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		x_offset REAL NOT NULL DEFAULT 0,
		y_offset REAL NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_bendpoints_relationship ON relationship_bendpoints(relationship_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveCharacter saves or updates a character.
func (r *Repository) SaveCharacter(ctx context.Context, c *entities.Character) error {
	query := `
		INSERT INTO characters (id, story_id, name, normalized_name, gender, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(story_id, normalized_name) DO UPDATE SET
			name = excluded.name,
			gender = excluded.gender
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.StoryID,
		c.Name,
		c.NormalizedName,
		string(c.Gender),
		c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving character: %w", err)
	}
	return nil
}

// FindCharacterByID finds a character by its ID.
func (r *Repository) FindCharacterByID(ctx context.Context, id string) (*entities.Character, error) {
	query := `
		SELECT id, story_id, name, normalized_name, gender, created_at
		FROM characters
		WHERE id = ?
	`
	return r.scanCharacterRow(r.db.QueryRowContext(ctx, query, id))
}

// FindCharacterByName finds a character by its normalized name (case-insensitive).
func (r *Repository) FindCharacterByName(ctx context.Context, storyID, name string) (*entities.Character, error) {
	query := `
		SELECT id, story_id, name, normalized_name, gender, created_at
		FROM characters
		WHERE story_id = ? AND normalized_name = ?
	`
	return r.scanCharacterRow(r.db.QueryRowContext(ctx, query, storyID, entities.NormalizeName(name)))
}

// ListCharacters lists all characters for a story ordered by name.
func (r *Repository) ListCharacters(ctx context.Context, storyID string) ([]*entities.Character, error) {
	query := `
		SELECT id, story_id, name, normalized_name, gender, created_at
		FROM characters
		WHERE story_id = ?
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.Character, 0, 16)
	for rows.Next() {
		var c entities.Character
		var gender string
		if err := rows.Scan(&c.ID, &c.StoryID, &c.Name, &c.NormalizedName, &gender, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		c.Gender = entities.Gender(gender)
		result = append(result, &c)
	}
	return result, rows.Err()
}

// DeleteCharacter deletes a character by ID. Edges cascade via foreign keys.
func (r *Repository) DeleteCharacter(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("character not found: %s", id)
	}
	return nil
}

// CountCharacters returns the number of characters in a story.
func (r *Repository) CountCharacters(ctx context.Context, storyID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM characters WHERE story_id = ?`, storyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting characters: %w", err)
	}
	return count, nil
}

func (r *Repository) scanCharacterRow(row *sql.Row) (*entities.Character, error) {
	var c entities.Character
	var gender string
	err := row.Scan(&c.ID, &c.StoryID, &c.Name, &c.NormalizedName, &gender, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning character: %w", err)
	}
	c.Gender = entities.Gender(gender)
	return &c, nil
}

// SaveCategory saves or updates a relationship category.
func (r *Repository) SaveCategory(ctx context.Context, cat *entities.RelationshipCategory) error {
	query := `
		INSERT INTO relationship_categories (id, name, description, display_order)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			display_order = excluded.display_order
	`
	_, err := r.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Description, cat.DisplayOrder)
	if err != nil {
		return fmt.Errorf("saving category: %w", err)
	}
	return nil
}

// ListCategories lists all categories ordered by display order then name.
func (r *Repository) ListCategories(ctx context.Context) ([]entities.RelationshipCategory, error) {
	query := `
		SELECT id, name, description, display_order
		FROM relationship_categories
		ORDER BY display_order ASC, name ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RelationshipCategory, 0, 8)
	for rows.Next() {
		var cat entities.RelationshipCategory
		var description sql.NullString
		if err := rows.Scan(&cat.ID, &cat.Name, &description, &cat.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cat.Description = description.String
		result = append(result, cat)
	}
	return result, rows.Err()
}

// FindCategoryByName finds a category by name.
func (r *Repository) FindCategoryByName(ctx context.Context, name string) (*entities.RelationshipCategory, error) {
	query := `
		SELECT id, name, description, display_order
		FROM relationship_categories
		WHERE name = ?
	`
	var cat entities.RelationshipCategory
	var description sql.NullString
	err := r.db.QueryRowContext(ctx, query, name).Scan(&cat.ID, &cat.Name, &description, &cat.DisplayOrder)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	cat.Description = description.String
	return &cat, nil
}

const relationshipTypeColumns = `id, name, label, gender_context, category_id, is_common, male_variant, female_variant, description, created_at`

// SaveRelationshipType inserts a relationship type. The (category, name)
// pair must be unique.
func (r *Repository) SaveRelationshipType(ctx context.Context, rt *entities.RelationshipType) error {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM relationship_types WHERE category_id = ? AND name = ?`,
		rt.CategoryID, rt.Name,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking type name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("type %q in category %s: %w", rt.Name, rt.CategoryID, entities.ErrDuplicateTypeName)
	}

	query := `
		INSERT INTO relationship_types (` + relationshipTypeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		rt.ID,
		rt.Name,
		rt.Label,
		string(rt.GenderContext),
		rt.CategoryID,
		rt.IsCommon,
		nullString(rt.MaleVariant),
		nullString(rt.FemaleVariant),
		nullString(rt.Description),
		rt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving relationship type: %w", err)
	}
	return nil
}

// FindRelationshipType finds a type by ID.
func (r *Repository) FindRelationshipType(ctx context.Context, id string) (*entities.RelationshipType, error) {
	query := `SELECT ` + relationshipTypeColumns + ` FROM relationship_types WHERE id = ?`
	return r.scanTypeRow(r.db.QueryRowContext(ctx, query, id))
}

// FindRelationshipTypeByName finds the first type with the given name,
// preferring lower category display order.
func (r *Repository) FindRelationshipTypeByName(ctx context.Context, name string) (*entities.RelationshipType, error) {
	query := `
		SELECT rt.id, rt.name, rt.label, rt.gender_context, rt.category_id, rt.is_common,
		       rt.male_variant, rt.female_variant, rt.description, rt.created_at
		FROM relationship_types rt
		JOIN relationship_categories rc ON rt.category_id = rc.id
		WHERE rt.name = ?
		ORDER BY rc.display_order ASC
		LIMIT 1
	`
	return r.scanTypeRow(r.db.QueryRowContext(ctx, query, name))
}

// ListRelationshipTypes lists types matching the filter, ordered by
// category display order then type name.
func (r *Repository) ListRelationshipTypes(ctx context.Context, filter entities.TypeFilter) ([]entities.RelationshipType, error) {
	query := `
		SELECT rt.id, rt.name, rt.label, rt.gender_context, rt.category_id, rt.is_common,
		       rt.male_variant, rt.female_variant, rt.description, rt.created_at
		FROM relationship_types rt
		JOIN relationship_categories rc ON rt.category_id = rc.id
	`
	var conditions []string
	var args []any
	if filter.CategoryID != "" {
		conditions = append(conditions, "rt.category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.GenderContext != "" {
		conditions = append(conditions, "rt.gender_context = ?")
		args = append(args, string(filter.GenderContext))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY rc.display_order ASC, rt.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying relationship types: %w", err)
	}
	defer rows.Close()
	return r.collectTypes(rows)
}

// CountRelationshipTypes returns the total number of relationship types.
func (r *Repository) CountRelationshipTypes(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationship_types`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting relationship types: %w", err)
	}
	return count, nil
}

// ReplaceTypeInverses replaces the full inverse set for a type.
func (r *Repository) ReplaceTypeInverses(ctx context.Context, typeID string, inverseTypeIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM relationship_type_inverses WHERE type_id = ?`, typeID); err != nil {
		return fmt.Errorf("clearing inverses: %w", err)
	}
	for i, invID := range inverseTypeIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO relationship_type_inverses (type_id, inverse_type_id, position) VALUES (?, ?, ?)`,
			typeID, invID, i,
		)
		if err != nil {
			return fmt.Errorf("inserting inverse: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing inverses: %w", err)
	}
	return nil
}

// FindInverseTypes returns the registered inverse candidates for a type
// in insertion order.
func (r *Repository) FindInverseTypes(ctx context.Context, typeID string) ([]entities.RelationshipType, error) {
	query := `
		SELECT rt.id, rt.name, rt.label, rt.gender_context, rt.category_id, rt.is_common,
		       rt.male_variant, rt.female_variant, rt.description, rt.created_at
		FROM relationship_type_inverses i
		JOIN relationship_types rt ON i.inverse_type_id = rt.id
		WHERE i.type_id = ?
		ORDER BY i.position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, typeID)
	if err != nil {
		return nil, fmt.Errorf("querying inverse types: %w", err)
	}
	defer rows.Close()
	return r.collectTypes(rows)
}

func (r *Repository) scanTypeRow(row *sql.Row) (*entities.RelationshipType, error) {
	var rt entities.RelationshipType
	var genderContext string
	var maleVariant, femaleVariant, description sql.NullString
	err := row.Scan(
		&rt.ID, &rt.Name, &rt.Label, &genderContext, &rt.CategoryID, &rt.IsCommon,
		&maleVariant, &femaleVariant, &description, &rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship type: %w", err)
	}
	rt.GenderContext = entities.GenderContext(genderContext)
	rt.MaleVariant = maleVariant.String
	rt.FemaleVariant = femaleVariant.String
	rt.Description = description.String
	return &rt, nil
}

func (r *Repository) collectTypes(rows *sql.Rows) ([]entities.RelationshipType, error) {
	result := make([]entities.RelationshipType, 0, 16)
	for rows.Next() {
		var rt entities.RelationshipType
		var genderContext string
		var maleVariant, femaleVariant, description sql.NullString
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Label, &genderContext, &rt.CategoryID, &rt.IsCommon,
			&maleVariant, &femaleVariant, &description, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning relationship type: %w", err)
		}
		rt.GenderContext = entities.GenderContext(genderContext)
		rt.MaleVariant = maleVariant.String
		rt.FemaleVariant = femaleVariant.String
		rt.Description = description.String
		result = append(result, rt)
	}
	return result, rows.Err()
}

// SaveRelationship inserts a relationship edge.
func (r *Repository) SaveRelationship(ctx context.Context, rel *entities.Relationship) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if rel.IsPrimary {
		if err := clearPrimaryTx(ctx, tx, rel.SourceID, rel.TargetID); err != nil {
			return err
		}
	}
	if err := insertRelationshipTx(ctx, tx, rel); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing relationship: %w", err)
	}
	return nil
}

// SaveRelationshipPair inserts both directions atomically and cross-links
// their inverse ids.
func (r *Repository) SaveRelationshipPair(ctx context.Context, forward, backward *entities.Relationship) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if forward.IsPrimary || backward.IsPrimary {
		if err := clearPrimaryTx(ctx, tx, forward.SourceID, forward.TargetID); err != nil {
			return err
		}
	}

	// Insert without inverse ids first; the self-referencing FK needs
	// both rows to exist before linking.
	forward.InverseRelationshipID = ""
	backward.InverseRelationshipID = ""
	if err := insertRelationshipTx(ctx, tx, forward); err != nil {
		return err
	}
	if err := insertRelationshipTx(ctx, tx, backward); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE relationships SET inverse_relationship_id = ? WHERE id = ?`,
		backward.ID, forward.ID,
	); err != nil {
		return fmt.Errorf("linking forward edge: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE relationships SET inverse_relationship_id = ? WHERE id = ?`,
		forward.ID, backward.ID,
	); err != nil {
		return fmt.Errorf("linking backward edge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing relationship pair: %w", err)
	}
	forward.InverseRelationshipID = backward.ID
	backward.InverseRelationshipID = forward.ID
	return nil
}

// FindRelationship finds an edge by id.
func (r *Repository) FindRelationship(ctx context.Context, id string) (*entities.Relationship, error) {
	query := `
		SELECT id, source_id, target_id, relationship_type_id, strength, color, width,
		       is_custom, custom_label, inverse_relationship_id, is_primary, description,
		       created_at, updated_at
		FROM relationships
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var rel entities.Relationship
	var typeID, customLabel, inverseID, description sql.NullString
	err := row.Scan(
		&rel.ID, &rel.SourceID, &rel.TargetID, &typeID, &rel.Strength, &rel.Color, &rel.Width,
		&rel.IsCustom, &customLabel, &inverseID, &rel.IsPrimary, &description,
		&rel.CreatedAt, &rel.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning relationship: %w", err)
	}
	rel.TypeID = typeID.String
	rel.CustomLabel = customLabel.String
	rel.InverseRelationshipID = inverseID.String
	rel.Description = description.String
	return &rel, nil
}

// UpdateRelationship applies a partial update. Returns false when the id
// does not exist.
func (r *Repository) UpdateRelationship(ctx context.Context, id string, update *entities.RelationshipUpdate) (bool, error) {
	rows, err := updateRelationship(ctx, r.db, id, update)
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// DeleteRelationship removes an edge. Bendpoints cascade; the paired
// inverse edge is left in place as a single.
func (r *Repository) DeleteRelationship(ctx context.Context, id string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := deleteRelationshipTx(ctx, tx, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing delete: %w", err)
	}
	return rows > 0, nil
}

// FindRelationshipsByCharacter unions outgoing and incoming edges,
// annotated with the other character and display fields, strongest and
// most recently touched first.
func (r *Repository) FindRelationshipsByCharacter(ctx context.Context, characterID string) ([]entities.CharacterRelation, error) {
	query := `
		SELECT r.id, c.id, c.name, r.is_custom, r.custom_label,
		       rt.label, rt.name, rc.name, 'outgoing', r.strength, r.updated_at
		FROM relationships r
		JOIN characters c ON r.target_id = c.id
		LEFT JOIN relationship_types rt ON r.relationship_type_id = rt.id
		LEFT JOIN relationship_categories rc ON rt.category_id = rc.id
		WHERE r.source_id = ?
		UNION ALL
		SELECT r.id, c.id, c.name, r.is_custom, r.custom_label,
		       rt.label, rt.name, rc.name, 'incoming', r.strength, r.updated_at
		FROM relationships r
		JOIN characters c ON r.source_id = c.id
		LEFT JOIN relationship_types rt ON r.relationship_type_id = rt.id
		LEFT JOIN relationship_categories rc ON rt.category_id = rc.id
		WHERE r.target_id = ?
		ORDER BY strength DESC, updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, characterID, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying character relationships: %w", err)
	}
	defer rows.Close()

	result := make([]entities.CharacterRelation, 0, 16)
	for rows.Next() {
		var cr entities.CharacterRelation
		var customLabel, typeLabel, typeName, category sql.NullString
		if err := rows.Scan(
			&cr.RelationshipID, &cr.OtherCharacterID, &cr.OtherName, &cr.IsCustom, &customLabel,
			&typeLabel, &typeName, &category, &cr.Direction, &cr.Strength, &cr.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning character relationship: %w", err)
		}
		cr.Category = category.String
		cr.Label = resolveLabel(cr.IsCustom, customLabel.String, typeLabel.String, typeName.String)
		result = append(result, cr)
	}
	return result, rows.Err()
}

// FindRelationshipsBetween returns all edges between two characters in
// either direction, joined with type and character names.
func (r *Repository) FindRelationshipsBetween(ctx context.Context, a, b string) ([]entities.RelationshipView, error) {
	query := `
		SELECT r.id, r.source_id, r.target_id, r.relationship_type_id, r.strength, r.color,
		       r.width, r.is_custom, r.custom_label, r.inverse_relationship_id, r.is_primary,
		       r.description, r.created_at, r.updated_at,
		       s.name, t.name, rt.name, rt.label
		FROM relationships r
		JOIN characters s ON r.source_id = s.id
		JOIN characters t ON r.target_id = t.id
		LEFT JOIN relationship_types rt ON r.relationship_type_id = rt.id
		WHERE (r.source_id = ? AND r.target_id = ?)
		   OR (r.source_id = ? AND r.target_id = ?)
		ORDER BY r.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, a, b, b, a)
	if err != nil {
		return nil, fmt.Errorf("querying relationships between characters: %w", err)
	}
	defer rows.Close()

	result := make([]entities.RelationshipView, 0, 4)
	for rows.Next() {
		var v entities.RelationshipView
		var typeID, customLabel, inverseID, description, typeName, typeLabel sql.NullString
		if err := rows.Scan(
			&v.ID, &v.SourceID, &v.TargetID, &typeID, &v.Strength, &v.Color,
			&v.Width, &v.IsCustom, &customLabel, &inverseID, &v.IsPrimary,
			&description, &v.CreatedAt, &v.UpdatedAt,
			&v.SourceName, &v.TargetName, &typeName, &typeLabel,
		); err != nil {
			return nil, fmt.Errorf("scanning relationship view: %w", err)
		}
		v.TypeID = typeID.String
		v.CustomLabel = customLabel.String
		v.InverseRelationshipID = inverseID.String
		v.Description = description.String
		v.TypeName = typeName.String
		v.TypeLabel = typeLabel.String
		result = append(result, v)
	}
	return result, rows.Err()
}

// ClearPrimaryBetween clears is_primary on every edge between the two
// characters, both directions.
func (r *Repository) ClearPrimaryBetween(ctx context.Context, a, b string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := clearPrimaryTx(ctx, tx, a, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing primary clear: %w", err)
	}
	return nil
}

// ApplyRelationshipBatch applies all operations in one transaction; any
// failure rolls back the whole batch.
func (r *Repository) ApplyRelationshipBatch(ctx context.Context, ops []entities.BatchOp) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range ops {
		if err := applyBatchOpTx(ctx, tx, &ops[i]); err != nil {
			return fmt.Errorf("batch operation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// CountRelationships returns the total number of relationship edges.
func (r *Repository) CountRelationships(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relationships`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting relationships: %w", err)
	}
	return count, nil
}

// SaveBendpoint saves a bendpoint row for a relationship.
func (r *Repository) SaveBendpoint(ctx context.Context, bp *entities.Bendpoint) error {
	if bp.ID == "" {
		bp.ID = generateUUID()
	}
	query := `
		INSERT INTO relationship_bendpoints (id, relationship_id, position, x_offset, y_offset)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			x_offset = excluded.x_offset,
			y_offset = excluded.y_offset
	`
	_, err := r.db.ExecContext(ctx, query, bp.ID, bp.RelationshipID, bp.Position, bp.XOffset, bp.YOffset)
	if err != nil {
		return fmt.Errorf("saving bendpoint: %w", err)
	}
	return nil
}

// FindBendpoints returns bendpoints for a relationship ordered by position.
func (r *Repository) FindBendpoints(ctx context.Context, relationshipID string) ([]entities.Bendpoint, error) {
	query := `
		SELECT id, relationship_id, position, x_offset, y_offset
		FROM relationship_bendpoints
		WHERE relationship_id = ?
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, relationshipID)
	if err != nil {
		return nil, fmt.Errorf("querying bendpoints: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Bendpoint, 0, 4)
	for rows.Next() {
		var bp entities.Bendpoint
		if err := rows.Scan(&bp.ID, &bp.RelationshipID, &bp.Position, &bp.XOffset, &bp.YOffset); err != nil {
			return nil, fmt.Errorf("scanning bendpoint: %w", err)
		}
		result = append(result, bp)
	}
	return result, rows.Err()
}

// execer covers both *sql.DB and *sql.Tx for shared write helpers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRelationshipTx(ctx context.Context, e execer, rel *entities.Relationship) error {
	if rel.ID == "" {
		rel.ID = generateUUID()
	}
	now := timeNow()
	if rel.CreatedAt.IsZero() {
		rel.CreatedAt = now
	}
	if rel.UpdatedAt.IsZero() {
		rel.UpdatedAt = now
	}
	query := `
		INSERT INTO relationships (
			id, source_id, target_id, relationship_type_id, strength, color, width,
			is_custom, custom_label, inverse_relationship_id, is_primary, description,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := e.ExecContext(ctx, query,
		rel.ID, rel.SourceID, rel.TargetID, nullString(rel.TypeID), rel.Strength, rel.Color,
		rel.Width, rel.IsCustom, nullString(rel.CustomLabel), nullString(rel.InverseRelationshipID),
		rel.IsPrimary, nullString(rel.Description), rel.CreatedAt, rel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting relationship: %w", err)
	}
	return nil
}

func clearPrimaryTx(ctx context.Context, e execer, a, b string) error {
	query := `
		UPDATE relationships SET is_primary = 0, updated_at = ?
		WHERE is_primary = 1
		  AND ((source_id = ? AND target_id = ?) OR (source_id = ? AND target_id = ?))
	`
	if _, err := e.ExecContext(ctx, query, timeNow(), a, b, b, a); err != nil {
		return fmt.Errorf("clearing primary flags: %w", err)
	}
	return nil
}

func deleteRelationshipTx(ctx context.Context, e execer, id string) (int64, error) {
	// Unlink any edge that points at the one being removed so the
	// remaining edge reads back as a single.
	if _, err := e.ExecContext(ctx,
		`UPDATE relationships SET inverse_relationship_id = NULL WHERE inverse_relationship_id = ?`, id,
	); err != nil {
		return 0, fmt.Errorf("unlinking inverse references: %w", err)
	}
	result, err := e.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting relationship: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func updateRelationship(ctx context.Context, e execer, id string, update *entities.RelationshipUpdate) (int64, error) {
	var sets []string
	var args []any

	if update.TypeID != nil {
		sets = append(sets, "relationship_type_id = ?")
		args = append(args, nullString(*update.TypeID))
	}
	if update.Strength != nil {
		sets = append(sets, "strength = ?")
		args = append(args, *update.Strength)
	}
	if update.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *update.Color)
	}
	if update.Width != nil {
		sets = append(sets, "width = ?")
		args = append(args, *update.Width)
	}
	if update.IsCustom != nil {
		sets = append(sets, "is_custom = ?")
		args = append(args, *update.IsCustom)
	}
	if update.CustomLabel != nil {
		sets = append(sets, "custom_label = ?")
		args = append(args, nullString(*update.CustomLabel))
	}
	if update.IsPrimary != nil {
		sets = append(sets, "is_primary = ?")
		args = append(args, *update.IsPrimary)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*update.Description))
	}

	// Timestamp always moves, even for no-op updates with a valid id.
	sets = append(sets, "updated_at = ?")
	args = append(args, timeNow())
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE relationships SET %s WHERE id = ?`, strings.Join(sets, ", "))
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("updating relationship: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func applyBatchOpTx(ctx context.Context, tx *sql.Tx, op *entities.BatchOp) error {
	switch op.Action {
	case entities.BatchAddPair:
		if op.Forward.IsPrimary || op.Backward.IsPrimary {
			if err := clearPrimaryTx(ctx, tx, op.Forward.SourceID, op.Forward.TargetID); err != nil {
				return err
			}
		}
		op.Forward.InverseRelationshipID = ""
		op.Backward.InverseRelationshipID = ""
		if err := insertRelationshipTx(ctx, tx, op.Forward); err != nil {
			return err
		}
		if err := insertRelationshipTx(ctx, tx, op.Backward); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE relationships SET inverse_relationship_id = ? WHERE id = ?`,
			op.Backward.ID, op.Forward.ID,
		); err != nil {
			return fmt.Errorf("linking forward edge: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE relationships SET inverse_relationship_id = ? WHERE id = ?`,
			op.Forward.ID, op.Backward.ID,
		); err != nil {
			return fmt.Errorf("linking backward edge: %w", err)
		}
		return nil

	case entities.BatchAddSingle:
		if op.Forward.IsPrimary {
			if err := clearPrimaryTx(ctx, tx, op.Forward.SourceID, op.Forward.TargetID); err != nil {
				return err
			}
		}
		return insertRelationshipTx(ctx, tx, op.Forward)

	case entities.BatchUpdate:
		rows, err := updateRelationship(ctx, tx, op.UpdateID, op.Update)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("relationship not found: %s", op.UpdateID)
		}
		return nil

	case entities.BatchDelete:
		rows, err := deleteRelationshipTx(ctx, tx, op.DeleteID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("relationship not found: %s", op.DeleteID)
		}
		return nil

	default:
		return fmt.Errorf("unknown batch action: %s", op.Action)
	}
}

func resolveLabel(isCustom bool, customLabel, typeLabel, typeName string) string {
	if isCustom && customLabel != "" {
		return customLabel
	}
	if typeLabel != "" {
		return typeLabel
	}
	return typeName
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
