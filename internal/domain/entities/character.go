package entities

import (
	"strings"
	"time"
)

// Gender classifies a character for gendered relationship resolution.
type Gender string

const (
	GenderMale         Gender = "MALE"
	GenderFemale       Gender = "FEMALE"
	GenderNotSpecified Gender = "NOT_SPECIFIED"
	GenderOther        Gender = "OTHER"
)

// ParseGender converts user input to a Gender, defaulting to NOT_SPECIFIED.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	case "other", "futa":
		return GenderOther
	default:
		return GenderNotSpecified
	}
}

// Character represents a story character that can participate in
// relationships. The relationship logic only reads id, name and gender;
// everything else about a character is owned by the story layer.
type Character struct {
	ID             string    `json:"id"`
	StoryID        string    `json:"story_id"`
	Name           string    `json:"name"`            // Original name (e.g., "Jane")
	NormalizedName string    `json:"normalized_name"` // Lowercase for matching (e.g., "jane")
	Gender         Gender    `json:"gender"`
	CreatedAt      time.Time `json:"created_at"`
}

// NormalizeName converts a name to lowercase for case-insensitive matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
