package handlers

import (
	"context"
	"fmt"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// TypeHandler handles relationship type registry operations.
type TypeHandler struct {
	types *services.RelationshipTypeService
}

// NewTypeHandler creates a new TypeHandler.
func NewTypeHandler(types *services.RelationshipTypeService) *TypeHandler {
	return &TypeHandler{types: types}
}

// TypeListing is a category with its types, for display.
type TypeListing struct {
	Category entities.RelationshipCategory `json:"category"`
	Types    []entities.RelationshipType   `json:"types"`
}

// TypeDetail is a type with its resolved inverse candidates.
type TypeDetail struct {
	Type     *entities.RelationshipType    `json:"type"`
	Inverses []entities.RelationshipType   `json:"inverses"`
	Category entities.RelationshipCategory `json:"category"`
}

// HandleList returns all types grouped by category, optionally filtered
// by category name and gender context.
func (h *TypeHandler) HandleList(ctx context.Context, categoryName string, genderContext string) ([]TypeListing, error) {
	filter := entities.TypeFilter{}
	if categoryName != "" {
		cat, err := h.resolveCategory(ctx, categoryName)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = cat.ID
	}
	if genderContext != "" {
		filter.GenderContext = entities.GenderContext(genderContext)
	}

	types, err := h.types.GetTypes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing types: %w", err)
	}
	categories, err := h.types.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	byCategory := make(map[string][]entities.RelationshipType)
	for _, rt := range types {
		byCategory[rt.CategoryID] = append(byCategory[rt.CategoryID], rt)
	}

	listings := make([]TypeListing, 0, len(categories))
	for _, cat := range categories {
		if len(byCategory[cat.ID]) == 0 {
			continue
		}
		listings = append(listings, TypeListing{Category: cat, Types: byCategory[cat.ID]})
	}
	return listings, nil
}

// HandleAdd creates a custom relationship type under a category by name.
func (h *TypeHandler) HandleAdd(ctx context.Context, name, label, genderContext, categoryName string) (string, error) {
	cat, err := h.resolveCategory(ctx, categoryName)
	if err != nil {
		return "", err
	}
	return h.types.CreateType(ctx, name, label, entities.GenderContext(genderContext), cat.ID)
}

// HandleShow returns a type by name with its inverse candidates.
func (h *TypeHandler) HandleShow(ctx context.Context, typeName string) (*TypeDetail, error) {
	rt, err := h.resolveType(ctx, typeName)
	if err != nil {
		return nil, err
	}

	inverses, err := h.types.ResolveInverseCandidates(ctx, rt.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving inverses: %w", err)
	}

	detail := &TypeDetail{Type: rt, Inverses: inverses}
	categories, err := h.types.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	for _, cat := range categories {
		if cat.ID == rt.CategoryID {
			detail.Category = cat
			break
		}
	}
	return detail, nil
}

// HandleSetInverses replaces a type's inverse candidates, all by name.
func (h *TypeHandler) HandleSetInverses(ctx context.Context, typeName string, inverseNames []string) error {
	rt, err := h.resolveType(ctx, typeName)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(inverseNames))
	for _, name := range inverseNames {
		inv, err := h.resolveType(ctx, name)
		if err != nil {
			return err
		}
		ids = append(ids, inv.ID)
	}
	return h.types.SetInverses(ctx, rt.ID, ids)
}

func (h *TypeHandler) resolveCategory(ctx context.Context, name string) (*entities.RelationshipCategory, error) {
	categories, err := h.types.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	for i := range categories {
		if categories[i].Name == name {
			return &categories[i], nil
		}
	}
	return nil, fmt.Errorf("category not found: %s", name)
}

func (h *TypeHandler) resolveType(ctx context.Context, name string) (*entities.RelationshipType, error) {
	rt, err := h.types.GetTypeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding relationship type: %w", err)
	}
	if rt == nil {
		return nil, fmt.Errorf("relationship type %q: %w", name, entities.ErrTypeNotFound)
	}
	return rt, nil
}
