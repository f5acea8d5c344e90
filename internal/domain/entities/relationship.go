package entities

import "time"

// Display defaults for newly created relationships.
const (
	DefaultStrength = 3
	DefaultColor    = "#FF0000"
	DefaultWidth    = 1.0
)

// Relationship is a directed edge between two characters referencing a
// relationship type. A pair is two edges between the same characters
// that reference each other through InverseRelationshipID; an edge whose
// link does not round-trip is treated as a single, never as an error.
type Relationship struct {
	ID                    string    `json:"id"`
	SourceID              string    `json:"source_id"`
	TargetID              string    `json:"target_id"`
	TypeID                string    `json:"relationship_type_id,omitempty"`
	Strength              int       `json:"strength"`
	Color                 string    `json:"color"`
	Width                 float64   `json:"width"`
	IsCustom              bool      `json:"is_custom"`
	CustomLabel           string    `json:"custom_label,omitempty"`
	InverseRelationshipID string    `json:"inverse_relationship_id,omitempty"`
	IsPrimary             bool      `json:"is_primary"`
	Description           string    `json:"description,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// RelationshipUpdate is a partial update; nil fields are left unchanged.
type RelationshipUpdate struct {
	TypeID      *string
	Strength    *int
	Color       *string
	Width       *float64
	IsCustom    *bool
	CustomLabel *string
	IsPrimary   *bool
	Description *string
}

// IsEmpty reports whether the update would change nothing.
func (u *RelationshipUpdate) IsEmpty() bool {
	return u.TypeID == nil && u.Strength == nil && u.Color == nil &&
		u.Width == nil && u.IsCustom == nil && u.CustomLabel == nil &&
		u.IsPrimary == nil && u.Description == nil
}

// RelationshipView is an edge joined with its type and both character
// names, as read back for display.
type RelationshipView struct {
	Relationship
	SourceName string `json:"source_name"`
	TargetName string `json:"target_name"`
	TypeName   string `json:"type_name,omitempty"`
	TypeLabel  string `json:"type_label,omitempty"`
}

// DisplayLabel resolves the label shown for this edge: the custom label
// when the edge is custom, else the type's label, else the type name.
func (v *RelationshipView) DisplayLabel() string {
	if v.IsCustom && v.CustomLabel != "" {
		return v.CustomLabel
	}
	if v.TypeLabel != "" {
		return v.TypeLabel
	}
	return v.TypeName
}

// CharacterRelation is one row of a character's relationship listing,
// annotated with the other character and a resolved display label.
type CharacterRelation struct {
	RelationshipID   string    `json:"id"`
	OtherCharacterID string    `json:"character_id"`
	OtherName        string    `json:"name"`
	Label            string    `json:"type"`
	Direction        string    `json:"direction"` // "outgoing" or "incoming"
	Strength         int       `json:"strength"`
	Category         string    `json:"category,omitempty"`
	IsCustom         bool      `json:"is_custom"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PairDescriptor groups one or two edges between the same two characters
// for display: a pair when the inverse links round-trip, otherwise a
// single unpaired edge.
type PairDescriptor struct {
	Forward     *RelationshipView `json:"forward"`
	Backward    *RelationshipView `json:"backward,omitempty"`
	Paired      bool              `json:"paired"`
	IsPrimary   bool              `json:"is_primary"` // true when either side is flagged
	Description string            `json:"description"`
}

// Bendpoint is layout metadata for drawing a relationship line. Rows are
// keyed by relationship id and removed by cascade when the edge goes.
type Bendpoint struct {
	ID             string  `json:"id"`
	RelationshipID string  `json:"relationship_id"`
	Position       int     `json:"position"`
	XOffset        float64 `json:"x_offset"`
	YOffset        float64 `json:"y_offset"`
}

// BatchAction identifies one operation inside a relationship batch.
type BatchAction string

const (
	BatchAddPair   BatchAction = "add_pair"
	BatchAddSingle BatchAction = "add_single"
	BatchUpdate    BatchAction = "update"
	BatchDelete    BatchAction = "delete"
)

// BatchOp is one pending change applied as part of a single-transaction
// batch. Exactly the fields for its action are set.
type BatchOp struct {
	Action   BatchAction
	Forward  *Relationship // add_pair, add_single
	Backward *Relationship // add_pair
	UpdateID string        // update
	Update   *RelationshipUpdate
	DeleteID string // delete
}
