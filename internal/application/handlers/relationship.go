package handlers

import (
	"context"
	"fmt"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// RelationshipHandler handles relationship operations.
type RelationshipHandler struct {
	characters    *services.CharacterService
	types         *services.RelationshipTypeService
	relationships *services.RelationshipService
}

// NewRelationshipHandler creates a new RelationshipHandler.
func NewRelationshipHandler(
	characters *services.CharacterService,
	types *services.RelationshipTypeService,
	relationships *services.RelationshipService,
) *RelationshipHandler {
	return &RelationshipHandler{
		characters:    characters,
		types:         types,
		relationships: relationships,
	}
}

// RelateOptions configures relationship creation from the CLI.
type RelateOptions struct {
	BackwardType string // Backward type name; empty resolves the inverse
	Single       bool   // Create one directed edge instead of a pair
	Primary      bool   // Flag the new relationship as primary
	CustomLabel  string // Custom display label (implies is_custom)
	Strength     int    // 0 uses the default
	Description  string
}

// RelateResult describes what was created.
type RelateResult struct {
	Forward     *entities.Relationship `json:"forward"`
	Backward    *entities.Relationship `json:"backward,omitempty"`
	Description string                 `json:"description"`
}

// HandleRelate creates a relationship between two characters by name.
// A pair is created by default; opts.Single creates one directed edge.
func (h *RelationshipHandler) HandleRelate(ctx context.Context, storyID, sourceName, targetName, typeName string, opts RelateOptions) (*RelateResult, error) {
	source, err := h.resolveCharacter(ctx, storyID, sourceName)
	if err != nil {
		return nil, err
	}
	target, err := h.resolveCharacter(ctx, storyID, targetName)
	if err != nil {
		return nil, err
	}

	var typeID string
	if typeName != "" {
		rt, err := h.resolveTypeName(ctx, typeName)
		if err != nil {
			return nil, err
		}
		typeID = rt.ID
	}

	relOpts := services.RelationshipOptions{
		Strength:    opts.Strength,
		IsPrimary:   opts.Primary,
		CustomLabel: opts.CustomLabel,
		IsCustom:    opts.CustomLabel != "",
		Description: opts.Description,
	}

	if opts.Single {
		rel, err := h.relationships.Create(ctx, source.ID, target.ID, typeID, relOpts)
		if err != nil {
			return nil, err
		}
		label, err := h.labelFor(ctx, rel)
		if err != nil {
			return nil, err
		}
		return &RelateResult{
			Forward:     rel,
			Description: services.ComposeSingleDescription(source.Name, label),
		}, nil
	}

	var backwardTypeID string
	if opts.BackwardType != "" {
		rt, err := h.resolveTypeName(ctx, opts.BackwardType)
		if err != nil {
			return nil, err
		}
		backwardTypeID = rt.ID
	}

	forward, backward, err := h.relationships.CreatePair(ctx, source.ID, target.ID, typeID, backwardTypeID, relOpts)
	if err != nil {
		return nil, err
	}

	forwardLabel, err := h.labelFor(ctx, forward)
	if err != nil {
		return nil, err
	}
	backwardLabel, err := h.labelFor(ctx, backward)
	if err != nil {
		return nil, err
	}

	return &RelateResult{
		Forward:     forward,
		Backward:    backward,
		Description: services.ComposePairDescription(source.Name, forwardLabel, target.Name, backwardLabel),
	}, nil
}

// HandleDelete removes a relationship edge by id. Returns false when unknown.
func (h *RelationshipHandler) HandleDelete(ctx context.Context, id string) (bool, error) {
	return h.relationships.Delete(ctx, id)
}

// HandleRelations lists all relationships of a character by name.
func (h *RelationshipHandler) HandleRelations(ctx context.Context, storyID, name string) ([]entities.CharacterRelation, error) {
	c, err := h.resolveCharacter(ctx, storyID, name)
	if err != nil {
		return nil, err
	}
	return h.relationships.ListForCharacter(ctx, c.ID)
}

// HandleBetween lists the relationship groups between two characters by name.
func (h *RelationshipHandler) HandleBetween(ctx context.Context, storyID, aName, bName string) ([]entities.PairDescriptor, error) {
	a, err := h.resolveCharacter(ctx, storyID, aName)
	if err != nil {
		return nil, err
	}
	b, err := h.resolveCharacter(ctx, storyID, bName)
	if err != nil {
		return nil, err
	}
	return h.relationships.ListBetween(ctx, a.ID, b.ID)
}

// HandleCount returns the total number of relationship edges.
func (h *RelationshipHandler) HandleCount(ctx context.Context) (int, error) {
	return h.relationships.Count(ctx)
}

func (h *RelationshipHandler) resolveCharacter(ctx context.Context, storyID, name string) (*entities.Character, error) {
	c, err := h.characters.GetByName(ctx, storyID, name)
	if err != nil {
		return nil, fmt.Errorf("finding character: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("character %q: %w", name, entities.ErrCharacterNotFound)
	}
	return c, nil
}

// labelFor resolves the display label of a freshly created edge.
func (h *RelationshipHandler) labelFor(ctx context.Context, rel *entities.Relationship) (string, error) {
	if rel.IsCustom && rel.CustomLabel != "" {
		return rel.CustomLabel, nil
	}
	if rel.TypeID == "" {
		return "", nil
	}
	rt, err := h.types.GetType(ctx, rel.TypeID)
	if err != nil {
		return "", fmt.Errorf("finding relationship type: %w", err)
	}
	if rt == nil {
		return "", nil
	}
	if rt.Label != "" {
		return rt.Label, nil
	}
	return rt.Name, nil
}
