// Package handlers bridges CLI input to the domain services: name
// resolution, input validation, and presentation structs.
package handlers

import (
	"context"
	"fmt"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// CharacterHandler handles character operations.
type CharacterHandler struct {
	characters    *services.CharacterService
	relationships *services.RelationshipService
}

// NewCharacterHandler creates a new CharacterHandler.
func NewCharacterHandler(characters *services.CharacterService, relationships *services.RelationshipService) *CharacterHandler {
	return &CharacterHandler{
		characters:    characters,
		relationships: relationships,
	}
}

// CharacterDetail is a character together with its relationship listing.
type CharacterDetail struct {
	Character *entities.Character          `json:"character"`
	Relations []entities.CharacterRelation `json:"relations"`
}

// HandleAdd creates a character from CLI input. The gender string is
// parsed leniently ("male", "m", "female", "f", "other", anything else
// is not specified).
func (h *CharacterHandler) HandleAdd(ctx context.Context, storyID, name, gender string) (*entities.Character, error) {
	return h.characters.Create(ctx, storyID, name, entities.ParseGender(gender))
}

// HandleList returns all characters of a story.
func (h *CharacterHandler) HandleList(ctx context.Context, storyID string) ([]*entities.Character, error) {
	return h.characters.ListByStory(ctx, storyID)
}

// HandleShow resolves a character by name and returns it with its
// relationships.
func (h *CharacterHandler) HandleShow(ctx context.Context, storyID, name string) (*CharacterDetail, error) {
	c, err := h.resolve(ctx, storyID, name)
	if err != nil {
		return nil, err
	}

	relations, err := h.relationships.ListForCharacter(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("listing relationships: %w", err)
	}

	return &CharacterDetail{Character: c, Relations: relations}, nil
}

// HandleRemove deletes a character by name; its relationships cascade.
func (h *CharacterHandler) HandleRemove(ctx context.Context, storyID, name string) error {
	c, err := h.resolve(ctx, storyID, name)
	if err != nil {
		return err
	}
	return h.characters.Delete(ctx, c.ID)
}

func (h *CharacterHandler) resolve(ctx context.Context, storyID, name string) (*entities.Character, error) {
	c, err := h.characters.GetByName(ctx, storyID, name)
	if err != nil {
		return nil, fmt.Errorf("finding character: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("character %q: %w", name, entities.ErrCharacterNotFound)
	}
	return c, nil
}
