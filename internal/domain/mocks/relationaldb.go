// Package mocks provides hand-written in-memory mocks of the domain ports.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fablekeep/storygraph/internal/domain/entities"
)

// RelationalDB is an in-memory mock implementation of ports.RelationalDB.
// Setting Err makes every call fail with it.
type RelationalDB struct {
	Characters    map[string]*entities.Character
	Categories    map[string]*entities.RelationshipCategory
	Types         map[string]*entities.RelationshipType
	Inverses      map[string][]string // type id -> inverse type ids, in order
	Relationships map[string]*entities.Relationship
	Bendpoints    map[string][]entities.Bendpoint
	Err           error
}

// NewRelationalDB creates a new mock RelationalDB.
func NewRelationalDB() *RelationalDB {
	return &RelationalDB{
		Characters:    make(map[string]*entities.Character),
		Categories:    make(map[string]*entities.RelationshipCategory),
		Types:         make(map[string]*entities.RelationshipType),
		Inverses:      make(map[string][]string),
		Relationships: make(map[string]*entities.Relationship),
		Bendpoints:    make(map[string][]entities.Bendpoint),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// Character methods.

// SaveCharacter saves or updates a character.
func (m *RelationalDB) SaveCharacter(_ context.Context, c *entities.Character) error {
	if m.Err != nil {
		return m.Err
	}
	m.Characters[c.ID] = c
	return nil
}

// FindCharacterByID finds a character by id.
func (m *RelationalDB) FindCharacterByID(_ context.Context, id string) (*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Characters[id], nil
}

// FindCharacterByName finds a character by normalized name within a story.
func (m *RelationalDB) FindCharacterByName(_ context.Context, storyID, name string) (*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	normalized := entities.NormalizeName(name)
	for _, c := range m.Characters {
		if c.StoryID == storyID && c.NormalizedName == normalized {
			return c, nil
		}
	}
	return nil, nil
}

// ListCharacters lists all characters for a story ordered by name.
func (m *RelationalDB) ListCharacters(_ context.Context, storyID string) ([]*entities.Character, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.Character, 0, len(m.Characters))
	for _, c := range m.Characters {
		if c.StoryID == storyID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// DeleteCharacter deletes a character and cascades its relationships.
func (m *RelationalDB) DeleteCharacter(_ context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Characters[id]; !ok {
		return fmt.Errorf("character not found: %s", id)
	}
	delete(m.Characters, id)
	for relID, rel := range m.Relationships {
		if rel.SourceID == id || rel.TargetID == id {
			delete(m.Relationships, relID)
			delete(m.Bendpoints, relID)
		}
	}
	return nil
}

// CountCharacters returns the number of characters in a story.
func (m *RelationalDB) CountCharacters(_ context.Context, storyID string) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	count := 0
	for _, c := range m.Characters {
		if c.StoryID == storyID {
			count++
		}
	}
	return count, nil
}

// Relationship type registry methods.

// SaveCategory saves a relationship category.
func (m *RelationalDB) SaveCategory(_ context.Context, cat *entities.RelationshipCategory) error {
	if m.Err != nil {
		return m.Err
	}
	m.Categories[cat.ID] = cat
	return nil
}

// ListCategories lists all categories ordered by display order then name.
func (m *RelationalDB) ListCategories(_ context.Context) ([]entities.RelationshipCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.RelationshipCategory, 0, len(m.Categories))
	for _, cat := range m.Categories {
		result = append(result, *cat)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// FindCategoryByName finds a category by name.
func (m *RelationalDB) FindCategoryByName(_ context.Context, name string) (*entities.RelationshipCategory, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, cat := range m.Categories {
		if cat.Name == name {
			return cat, nil
		}
	}
	return nil, nil
}

// SaveRelationshipType inserts a relationship type.
func (m *RelationalDB) SaveRelationshipType(_ context.Context, rt *entities.RelationshipType) error {
	if m.Err != nil {
		return m.Err
	}
	for _, existing := range m.Types {
		if existing.CategoryID == rt.CategoryID && existing.Name == rt.Name {
			return fmt.Errorf("type %q: %w", rt.Name, entities.ErrDuplicateTypeName)
		}
	}
	m.Types[rt.ID] = rt
	return nil
}

// FindRelationshipType finds a type by id.
func (m *RelationalDB) FindRelationshipType(_ context.Context, id string) (*entities.RelationshipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Types[id], nil
}

// FindRelationshipTypeByName finds the first type with the given name,
// preferring lower category display order.
func (m *RelationalDB) FindRelationshipTypeByName(_ context.Context, name string) (*entities.RelationshipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var best *entities.RelationshipType
	bestOrder := 0
	for _, rt := range m.Types {
		if rt.Name != name {
			continue
		}
		order := 0
		if cat, ok := m.Categories[rt.CategoryID]; ok {
			order = cat.DisplayOrder
		}
		if best == nil || order < bestOrder {
			best = rt
			bestOrder = order
		}
	}
	return best, nil
}

// ListRelationshipTypes lists types matching the filter.
func (m *RelationalDB) ListRelationshipTypes(_ context.Context, filter entities.TypeFilter) ([]entities.RelationshipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.RelationshipType, 0, len(m.Types))
	for _, rt := range m.Types {
		if filter.CategoryID != "" && rt.CategoryID != filter.CategoryID {
			continue
		}
		if filter.GenderContext != "" && rt.GenderContext != filter.GenderContext {
			continue
		}
		result = append(result, *rt)
	}
	sort.Slice(result, func(i, j int) bool {
		oi, oj := 0, 0
		if cat, ok := m.Categories[result[i].CategoryID]; ok {
			oi = cat.DisplayOrder
		}
		if cat, ok := m.Categories[result[j].CategoryID]; ok {
			oj = cat.DisplayOrder
		}
		if oi != oj {
			return oi < oj
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// CountRelationshipTypes returns the total number of relationship types.
func (m *RelationalDB) CountRelationshipTypes(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Types), nil
}

// ReplaceTypeInverses replaces the full inverse set for a type.
func (m *RelationalDB) ReplaceTypeInverses(_ context.Context, typeID string, inverseTypeIDs []string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Inverses[typeID] = append([]string(nil), inverseTypeIDs...)
	return nil
}

// FindInverseTypes returns inverse candidates in insertion order.
func (m *RelationalDB) FindInverseTypes(_ context.Context, typeID string) ([]entities.RelationshipType, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	ids := m.Inverses[typeID]
	result := make([]entities.RelationshipType, 0, len(ids))
	for _, id := range ids {
		if rt, ok := m.Types[id]; ok {
			result = append(result, *rt)
		}
	}
	return result, nil
}

// Relationship instance methods.

// SaveRelationship inserts a relationship edge.
func (m *RelationalDB) SaveRelationship(_ context.Context, rel *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	if rel.SourceID == rel.TargetID {
		return errors.New("check constraint failed: source_id != target_id")
	}
	if rel.IsPrimary {
		m.clearPrimary(rel.SourceID, rel.TargetID)
	}
	m.Relationships[rel.ID] = rel
	return nil
}

// SaveRelationshipPair inserts both directions and cross-links them.
func (m *RelationalDB) SaveRelationshipPair(_ context.Context, forward, backward *entities.Relationship) error {
	if m.Err != nil {
		return m.Err
	}
	if forward.IsPrimary || backward.IsPrimary {
		m.clearPrimary(forward.SourceID, forward.TargetID)
	}
	forward.InverseRelationshipID = backward.ID
	backward.InverseRelationshipID = forward.ID
	m.Relationships[forward.ID] = forward
	m.Relationships[backward.ID] = backward
	return nil
}

// FindRelationship finds an edge by id.
func (m *RelationalDB) FindRelationship(_ context.Context, id string) (*entities.Relationship, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Relationships[id], nil
}

// UpdateRelationship applies a partial update.
func (m *RelationalDB) UpdateRelationship(_ context.Context, id string, update *entities.RelationshipUpdate) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	rel, ok := m.Relationships[id]
	if !ok {
		return false, nil
	}
	applyUpdate(rel, update)
	return true, nil
}

// DeleteRelationship removes an edge, leaving its inverse as a single.
func (m *RelationalDB) DeleteRelationship(_ context.Context, id string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.Relationships[id]; !ok {
		return false, nil
	}
	delete(m.Relationships, id)
	delete(m.Bendpoints, id)
	for _, rel := range m.Relationships {
		if rel.InverseRelationshipID == id {
			rel.InverseRelationshipID = ""
		}
	}
	return true, nil
}

// FindRelationshipsByCharacter unions outgoing and incoming edges.
func (m *RelationalDB) FindRelationshipsByCharacter(_ context.Context, characterID string) ([]entities.CharacterRelation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.CharacterRelation
	for _, rel := range m.Relationships {
		var otherID, direction string
		switch characterID {
		case rel.SourceID:
			otherID, direction = rel.TargetID, "outgoing"
		case rel.TargetID:
			otherID, direction = rel.SourceID, "incoming"
		default:
			continue
		}
		cr := entities.CharacterRelation{
			RelationshipID:   rel.ID,
			OtherCharacterID: otherID,
			Direction:        direction,
			Strength:         rel.Strength,
			IsCustom:         rel.IsCustom,
			UpdatedAt:        rel.UpdatedAt,
		}
		if other, ok := m.Characters[otherID]; ok {
			cr.OtherName = other.Name
		}
		cr.Label = m.displayLabel(rel)
		if rt, ok := m.Types[rel.TypeID]; ok {
			if cat, ok := m.Categories[rt.CategoryID]; ok {
				cr.Category = cat.Name
			}
		}
		result = append(result, cr)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Strength != result[j].Strength {
			return result[i].Strength > result[j].Strength
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

// FindRelationshipsBetween returns all edges between two characters.
func (m *RelationalDB) FindRelationshipsBetween(_ context.Context, a, b string) ([]entities.RelationshipView, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var result []entities.RelationshipView
	for _, rel := range m.Relationships {
		if !betweenPair(rel, a, b) {
			continue
		}
		v := entities.RelationshipView{Relationship: *rel}
		if c, ok := m.Characters[rel.SourceID]; ok {
			v.SourceName = c.Name
		}
		if c, ok := m.Characters[rel.TargetID]; ok {
			v.TargetName = c.Name
		}
		if rt, ok := m.Types[rel.TypeID]; ok {
			v.TypeName = rt.Name
			v.TypeLabel = rt.Label
		}
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// ClearPrimaryBetween clears is_primary on every edge between two characters.
func (m *RelationalDB) ClearPrimaryBetween(_ context.Context, a, b string) error {
	if m.Err != nil {
		return m.Err
	}
	m.clearPrimary(a, b)
	return nil
}

// ApplyRelationshipBatch applies all operations; the mock is all-or-nothing
// by snapshotting and restoring on failure.
func (m *RelationalDB) ApplyRelationshipBatch(ctx context.Context, ops []entities.BatchOp) error {
	if m.Err != nil {
		return m.Err
	}

	snapshot := make(map[string]*entities.Relationship, len(m.Relationships))
	for id, rel := range m.Relationships {
		relCopy := *rel
		snapshot[id] = &relCopy
	}

	for i := range ops {
		if err := m.applyOp(ctx, &ops[i]); err != nil {
			m.Relationships = snapshot
			return fmt.Errorf("batch operation %d: %w", i, err)
		}
	}
	return nil
}

func (m *RelationalDB) applyOp(ctx context.Context, op *entities.BatchOp) error {
	switch op.Action {
	case entities.BatchAddPair:
		return m.SaveRelationshipPair(ctx, op.Forward, op.Backward)
	case entities.BatchAddSingle:
		return m.SaveRelationship(ctx, op.Forward)
	case entities.BatchUpdate:
		rel, ok := m.Relationships[op.UpdateID]
		if !ok {
			return fmt.Errorf("relationship not found: %s", op.UpdateID)
		}
		applyUpdate(rel, op.Update)
		return nil
	case entities.BatchDelete:
		if _, ok := m.Relationships[op.DeleteID]; !ok {
			return fmt.Errorf("relationship not found: %s", op.DeleteID)
		}
		delete(m.Relationships, op.DeleteID)
		for _, rel := range m.Relationships {
			if rel.InverseRelationshipID == op.DeleteID {
				rel.InverseRelationshipID = ""
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown batch action: %s", op.Action)
	}
}

// CountRelationships returns the total number of relationship edges.
func (m *RelationalDB) CountRelationships(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Relationships), nil
}

// Layout metadata methods.

// SaveBendpoint saves a bendpoint row.
func (m *RelationalDB) SaveBendpoint(_ context.Context, bp *entities.Bendpoint) error {
	if m.Err != nil {
		return m.Err
	}
	m.Bendpoints[bp.RelationshipID] = append(m.Bendpoints[bp.RelationshipID], *bp)
	return nil
}

// FindBendpoints returns bendpoints ordered by position.
func (m *RelationalDB) FindBendpoints(_ context.Context, relationshipID string) ([]entities.Bendpoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := append([]entities.Bendpoint(nil), m.Bendpoints[relationshipID]...)
	sort.Slice(result, func(i, j int) bool { return result[i].Position < result[j].Position })
	return result, nil
}

func (m *RelationalDB) clearPrimary(a, b string) {
	for _, rel := range m.Relationships {
		if betweenPair(rel, a, b) {
			rel.IsPrimary = false
		}
	}
}

func (m *RelationalDB) displayLabel(rel *entities.Relationship) string {
	if rel.IsCustom && rel.CustomLabel != "" {
		return rel.CustomLabel
	}
	if rt, ok := m.Types[rel.TypeID]; ok {
		if rt.Label != "" {
			return rt.Label
		}
		return rt.Name
	}
	return ""
}

func betweenPair(rel *entities.Relationship, a, b string) bool {
	return (rel.SourceID == a && rel.TargetID == b) || (rel.SourceID == b && rel.TargetID == a)
}

func applyUpdate(rel *entities.Relationship, update *entities.RelationshipUpdate) {
	if update.TypeID != nil {
		rel.TypeID = *update.TypeID
	}
	if update.Strength != nil {
		rel.Strength = *update.Strength
	}
	if update.Color != nil {
		rel.Color = *update.Color
	}
	if update.Width != nil {
		rel.Width = *update.Width
	}
	if update.IsCustom != nil {
		rel.IsCustom = *update.IsCustom
	}
	if update.CustomLabel != nil {
		rel.CustomLabel = *update.CustomLabel
	}
	if update.IsPrimary != nil {
		rel.IsPrimary = *update.IsPrimary
	}
	if update.Description != nil {
		rel.Description = *update.Description
	}
	rel.UpdatedAt = time.Now()
}
