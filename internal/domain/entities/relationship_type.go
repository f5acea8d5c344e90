package entities

import "time"

// GenderContext marks a relationship type as gendered or neutral.
type GenderContext string

const (
	ContextMasculine GenderContext = "masculine"
	ContextFeminine  GenderContext = "feminine"
	ContextNeutral   GenderContext = "neutral"
)

// ContextForGender maps a character's gender to the context a gendered
// relationship type would need to match it.
func ContextForGender(g Gender) GenderContext {
	switch g {
	case GenderMale:
		return ContextMasculine
	case GenderFemale:
		return ContextFeminine
	default:
		return ContextNeutral
	}
}

// RelationshipCategory groups relationship types for presentation.
// Reference data, seeded once and never mutated afterwards.
type RelationshipCategory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"display_order"`
}

// RelationshipType is a named kind of relationship (e.g. "Father").
// Name is the internal key, unique within its category; Label is what
// gets displayed. MaleVariant and FemaleVariant carry the names of the
// gendered inverse types (e.g. Father -> Son / Daughter) and take
// precedence during inverse resolution.
type RelationshipType struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Label         string        `json:"label"`
	GenderContext GenderContext `json:"gender_context"`
	CategoryID    string        `json:"category_id"`
	IsCommon      bool          `json:"is_common"`
	MaleVariant   string        `json:"male_variant,omitempty"`
	FemaleVariant string        `json:"female_variant,omitempty"`
	Description   string        `json:"description,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// TypeFilter narrows a relationship type listing. Zero values mean "any".
type TypeFilter struct {
	CategoryID    string
	GenderContext GenderContext
}
