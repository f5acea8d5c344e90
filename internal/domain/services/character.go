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

// CharacterService manages the characters relationships attach to.
type CharacterService struct {
	relationalDB ports.RelationalDB
}

// NewCharacterService creates a new CharacterService.
func NewCharacterService(relationalDB ports.RelationalDB) *CharacterService {
	return &CharacterService{relationalDB: relationalDB}
}

// Create adds a character to a story. Names are unique per story after
// normalization (case-insensitive).
func (s *CharacterService) Create(ctx context.Context, storyID, name string, gender entities.Gender) (*entities.Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("character name is required")
	}

	existing, err := s.relationalDB.FindCharacterByName(ctx, storyID, name)
	if err != nil {
		return nil, fmt.Errorf("checking character name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("character %q already exists (id: %s)", name, existing.ID)
	}

	c := &entities.Character{
		ID:             uuid.New().String(),
		StoryID:        storyID,
		Name:           name,
		NormalizedName: entities.NormalizeName(name),
		Gender:         gender,
		CreatedAt:      time.Now(),
	}
	if err := s.relationalDB.SaveCharacter(ctx, c); err != nil {
		return nil, fmt.Errorf("saving character: %w", err)
	}
	return c, nil
}

// Get returns a character by id, or nil if not found.
func (s *CharacterService) Get(ctx context.Context, id string) (*entities.Character, error) {
	return s.relationalDB.FindCharacterByID(ctx, id)
}

// GetByName returns a character by name within a story, or nil if not found.
func (s *CharacterService) GetByName(ctx context.Context, storyID, name string) (*entities.Character, error) {
	return s.relationalDB.FindCharacterByName(ctx, storyID, name)
}

// ListByStory returns all characters of a story ordered by name.
func (s *CharacterService) ListByStory(ctx context.Context, storyID string) ([]*entities.Character, error) {
	return s.relationalDB.ListCharacters(ctx, storyID)
}

// Delete removes a character and, by cascade, all its relationships.
func (s *CharacterService) Delete(ctx context.Context, id string) error {
	existing, err := s.relationalDB.FindCharacterByID(ctx, id)
	if err != nil {
		return fmt.Errorf("checking character: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("character %s: %w", id, entities.ErrCharacterNotFound)
	}
	return s.relationalDB.DeleteCharacter(ctx, id)
}

// Count returns the number of characters in a story.
func (s *CharacterService) Count(ctx context.Context, storyID string) (int, error) {
	return s.relationalDB.CountCharacters(ctx, storyID)
}
