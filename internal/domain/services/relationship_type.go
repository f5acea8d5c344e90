package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/ports"
	"github.com/google/uuid"
)

// RelationshipTypeService manages the relationship type registry and
// resolves inverse types for pair creation.
type RelationshipTypeService struct {
	relationalDB ports.RelationalDB
}

// NewRelationshipTypeService creates a new RelationshipTypeService.
func NewRelationshipTypeService(relationalDB ports.RelationalDB) *RelationshipTypeService {
	return &RelationshipTypeService{relationalDB: relationalDB}
}

// SeedDefaults seeds the built-in categories and relationship types with
// their inverse wiring. A registry that already has types is left alone.
func (s *RelationshipTypeService) SeedDefaults(ctx context.Context) error {
	count, err := s.relationalDB.CountRelationshipTypes(ctx)
	if err != nil {
		return fmt.Errorf("counting relationship types: %w", err)
	}
	if count > 0 {
		return nil
	}

	categoryIDs := make(map[string]string, len(entities.DefaultCategories))
	for _, dc := range entities.DefaultCategories {
		existing, err := s.relationalDB.FindCategoryByName(ctx, dc.Name)
		if err != nil {
			return fmt.Errorf("checking category %s: %w", dc.Name, err)
		}
		if existing != nil {
			categoryIDs[dc.Name] = existing.ID
			continue
		}
		cat := &entities.RelationshipCategory{
			ID:           uuid.New().String(),
			Name:         dc.Name,
			Description:  dc.Description,
			DisplayOrder: dc.DisplayOrder,
		}
		if err := s.relationalDB.SaveCategory(ctx, cat); err != nil {
			return fmt.Errorf("seeding category %s: %w", dc.Name, err)
		}
		categoryIDs[dc.Name] = cat.ID
	}

	// First pass: insert every type. The first type seeded under a name
	// wins the name-to-id slot used for inverse wiring (categories are
	// seeded in display order, matching name lookups later).
	typeIDs := make(map[string]string, len(entities.DefaultTypes))
	for _, dt := range entities.DefaultTypes {
		rt := &entities.RelationshipType{
			ID:            uuid.New().String(),
			Name:          dt.Name,
			Label:         dt.Name,
			GenderContext: dt.Context,
			CategoryID:    categoryIDs[dt.Category],
			IsCommon:      dt.Common,
			MaleVariant:   dt.MaleInverse,
			FemaleVariant: dt.FemaleInverse,
			Description:   dt.Description,
			CreatedAt:     time.Now(),
		}
		if err := s.relationalDB.SaveRelationshipType(ctx, rt); err != nil {
			return fmt.Errorf("seeding relationship type %s: %w", dt.Name, err)
		}
		if _, ok := typeIDs[dt.Name]; !ok {
			typeIDs[dt.Name] = rt.ID
		}
	}

	// Second pass: wire inverse candidates now that every id exists.
	for _, dt := range entities.DefaultTypes {
		inverseIDs := inverseIDsFor(dt, typeIDs)
		if len(inverseIDs) == 0 {
			continue
		}
		if err := s.relationalDB.ReplaceTypeInverses(ctx, typeIDs[dt.Name], inverseIDs); err != nil {
			return fmt.Errorf("wiring inverses for %s: %w", dt.Name, err)
		}
	}

	return nil
}

// inverseIDsFor resolves a default type's inverse names to ids, in
// male/female/neutral order, skipping unknown names and duplicates.
func inverseIDsFor(dt entities.DefaultType, typeIDs map[string]string) []string {
	names := []string{dt.MaleInverse, dt.FemaleInverse, dt.NeutralInverse}
	ids := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		id, ok := typeIDs[name]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// Categories returns all relationship categories in display order.
func (s *RelationshipTypeService) Categories(ctx context.Context) ([]entities.RelationshipCategory, error) {
	return s.relationalDB.ListCategories(ctx)
}

// GetTypes returns types matching the filter, ordered by category
// display order then name. Empty slice when nothing matches.
func (s *RelationshipTypeService) GetTypes(ctx context.Context, filter entities.TypeFilter) ([]entities.RelationshipType, error) {
	return s.relationalDB.ListRelationshipTypes(ctx, filter)
}

// GetType returns a type by id, or nil if not found.
func (s *RelationshipTypeService) GetType(ctx context.Context, id string) (*entities.RelationshipType, error) {
	return s.relationalDB.FindRelationshipType(ctx, id)
}

// GetTypeByName returns the first type with the given name across
// categories, or nil if not found.
func (s *RelationshipTypeService) GetTypeByName(ctx context.Context, name string) (*entities.RelationshipType, error) {
	return s.relationalDB.FindRelationshipTypeByName(ctx, name)
}

// CreateType adds a custom relationship type to a category. Returns
// entities.ErrDuplicateTypeName when the (name, category) pair exists.
func (s *RelationshipTypeService) CreateType(ctx context.Context, name, label string, genderContext entities.GenderContext, categoryID string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("type name is required")
	}
	if label == "" {
		label = name
	}
	if genderContext == "" {
		genderContext = entities.ContextNeutral
	}

	category, err := s.relationalDB.ListCategories(ctx)
	if err != nil {
		return "", fmt.Errorf("listing categories: %w", err)
	}
	known := false
	for i := range category {
		if category[i].ID == categoryID {
			known = true
			break
		}
	}
	if !known {
		return "", fmt.Errorf("category not found: %s", categoryID)
	}

	rt := &entities.RelationshipType{
		ID:            uuid.New().String(),
		Name:          name,
		Label:         label,
		GenderContext: genderContext,
		CategoryID:    categoryID,
		IsCommon:      false,
		CreatedAt:     time.Now(),
	}
	if err := s.relationalDB.SaveRelationshipType(ctx, rt); err != nil {
		return "", err
	}
	return rt.ID, nil
}

// SetInverses replaces the inverse candidate set for a type.
func (s *RelationshipTypeService) SetInverses(ctx context.Context, typeID string, inverseTypeIDs []string) error {
	rt, err := s.relationalDB.FindRelationshipType(ctx, typeID)
	if err != nil {
		return fmt.Errorf("checking relationship type: %w", err)
	}
	if rt == nil {
		return fmt.Errorf("type %s: %w", typeID, entities.ErrTypeNotFound)
	}
	for _, invID := range inverseTypeIDs {
		inv, err := s.relationalDB.FindRelationshipType(ctx, invID)
		if err != nil {
			return fmt.Errorf("checking inverse type: %w", err)
		}
		if inv == nil {
			return fmt.Errorf("inverse type %s: %w", invID, entities.ErrTypeNotFound)
		}
	}
	return s.relationalDB.ReplaceTypeInverses(ctx, typeID, inverseTypeIDs)
}

// ResolveInverseCandidates returns the inverse candidates for a type in
// insertion order; empty when none are configured.
func (s *RelationshipTypeService) ResolveInverseCandidates(ctx context.Context, typeID string) ([]entities.RelationshipType, error) {
	return s.relationalDB.FindInverseTypes(ctx, typeID)
}

// PickDefaultInverse picks the inverse type for a forward type given the
// gender of the character on the receiving end. Resolution order: the
// type's gendered variant when the gender matches, then the candidate
// whose gender context matches, then the first neutral candidate, then
// the first candidate. Nil when nothing resolves. Deterministic for
// identical registry state.
func (s *RelationshipTypeService) PickDefaultInverse(ctx context.Context, typeID string, targetGender entities.Gender) (*entities.RelationshipType, error) {
	rt, err := s.relationalDB.FindRelationshipType(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("finding relationship type: %w", err)
	}
	if rt == nil {
		return nil, fmt.Errorf("type %s: %w", typeID, entities.ErrTypeNotFound)
	}

	// Migrated gendered variants take precedence.
	var variant string
	switch targetGender {
	case entities.GenderMale:
		variant = rt.MaleVariant
	case entities.GenderFemale:
		variant = rt.FemaleVariant
	}
	if variant != "" {
		inv, err := s.relationalDB.FindRelationshipTypeByName(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("finding variant type: %w", err)
		}
		if inv != nil {
			return inv, nil
		}
	}

	candidates, err := s.relationalDB.FindInverseTypes(ctx, typeID)
	if err != nil {
		return nil, fmt.Errorf("finding inverse candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	wanted := entities.ContextForGender(targetGender)
	for i := range candidates {
		if candidates[i].GenderContext == wanted {
			return &candidates[i], nil
		}
	}
	for i := range candidates {
		if candidates[i].GenderContext == entities.ContextNeutral {
			return &candidates[i], nil
		}
	}
	return &candidates[0], nil
}
