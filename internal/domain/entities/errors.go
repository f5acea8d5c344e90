package entities

import "errors"

// Domain errors surfaced by the relationship core. Write paths return
// these (possibly wrapped); read paths prefer nil results over errors so
// callers stay responsive with partially-missing reference data.
var (
	// ErrSelfRelationship is returned when source and target are the
	// same character.
	ErrSelfRelationship = errors.New("a character cannot have a relationship with itself")

	// ErrDuplicateTypeName is returned when a relationship type name
	// collides within its category.
	ErrDuplicateTypeName = errors.New("relationship type name already exists in category")

	// ErrPrimaryConflict is returned when more than one relationship
	// pair between the same two characters would be flagged primary.
	ErrPrimaryConflict = errors.New("more than one primary relationship between the same characters")

	// ErrCharacterNotFound is returned by write paths that require an
	// existing character.
	ErrCharacterNotFound = errors.New("character not found")

	// ErrTypeNotFound is returned by write paths that require an
	// existing relationship type.
	ErrTypeNotFound = errors.New("relationship type not found")
)
