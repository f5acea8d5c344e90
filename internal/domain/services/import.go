package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/ports"
	"github.com/fablekeep/storygraph/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing characters during import.
type ConflictStrategy string

const (
	// ConflictSkip skips characters that already exist (by name).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing characters with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing characters
}

// ImportError represents an error for a specific row during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// ImportService imports characters from external files into a story.
type ImportService struct {
	relationalDB ports.RelationalDB
}

// NewImportService creates a new import service.
func NewImportService(relationalDB ports.RelationalDB) *ImportService {
	return &ImportService{relationalDB: relationalDB}
}

// Import validates and imports raw characters into a story.
func (s *ImportService) Import(ctx context.Context, storyID string, raws []parsers.RawCharacter, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	valid, validationErrors := validateRawCharacters(raws)
	result.Errors = validationErrors

	if len(valid) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(valid)
		return result, nil
	}

	for i := range valid {
		raw := &valid[i]

		existing, err := s.relationalDB.FindCharacterByName(ctx, storyID, raw.Name)
		if err != nil {
			return nil, fmt.Errorf("checking character %q: %w", raw.Name, err)
		}
		if existing != nil && opts.OnConflict != ConflictOverwrite {
			result.Skipped++
			continue
		}

		c := &entities.Character{
			ID:             raw.ID,
			StoryID:        storyID,
			Name:           strings.TrimSpace(raw.Name),
			NormalizedName: entities.NormalizeName(raw.Name),
			Gender:         entities.ParseGender(raw.Gender),
			CreatedAt:      time.Now(),
		}
		if existing != nil {
			// Overwrite keeps the original identity and creation time.
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}

		if err := s.relationalDB.SaveCharacter(ctx, c); err != nil {
			return nil, fmt.Errorf("saving character %q: %w", raw.Name, err)
		}
		result.Imported++
	}

	return result, nil
}

// validateRawCharacters validates rows and returns valid ones with any errors.
func validateRawCharacters(raws []parsers.RawCharacter) ([]parsers.RawCharacter, []ImportError) {
	valid := make([]parsers.RawCharacter, 0, len(raws))
	var errors []ImportError

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if strings.TrimSpace(raw.Name) == "" {
			errors = append(errors, ImportError{
				Line:    lineNum,
				Field:   "name",
				Message: "missing required field: name",
			})
			continue
		}

		valid = append(valid, *raw)
	}

	return valid, errors
}
