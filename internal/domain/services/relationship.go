package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/ports"
	"github.com/google/uuid"
)

// RelationshipOptions carries the optional attributes of a new edge.
// Zero values fall back to the display defaults.
type RelationshipOptions struct {
	Strength    int
	Color       string
	Width       float64
	IsCustom    bool
	CustomLabel string
	IsPrimary   bool
	Description string
}

// RelationshipService manages relationship edges between characters:
// creation (single and paired), updates, deletion, listings, and the
// batched apply used by editing flows.
type RelationshipService struct {
	relationalDB ports.RelationalDB
	types        *RelationshipTypeService
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(relationalDB ports.RelationalDB, types *RelationshipTypeService) *RelationshipService {
	return &RelationshipService{
		relationalDB: relationalDB,
		types:        types,
	}
}

// Create adds a single directed edge. Returns ErrSelfRelationship when
// source and target are the same character.
func (s *RelationshipService) Create(ctx context.Context, sourceID, targetID, typeID string, opts RelationshipOptions) (*entities.Relationship, error) {
	if err := s.validateEndpoints(ctx, sourceID, targetID); err != nil {
		return nil, err
	}
	if err := s.validateType(ctx, typeID); err != nil {
		return nil, err
	}

	rel := buildRelationship(sourceID, targetID, typeID, opts)
	if err := s.relationalDB.SaveRelationship(ctx, rel); err != nil {
		return nil, fmt.Errorf("saving relationship: %w", err)
	}
	return rel, nil
}

// CreatePair adds both directions atomically with cross-linked inverse
// ids. When backwardTypeID is empty the inverse type is resolved from
// the forward type and the receiving character's gender; an unresolvable
// inverse leaves the backward edge untyped rather than failing.
func (s *RelationshipService) CreatePair(ctx context.Context, sourceID, targetID, forwardTypeID, backwardTypeID string, opts RelationshipOptions) (*entities.Relationship, *entities.Relationship, error) {
	if err := s.validateEndpoints(ctx, sourceID, targetID); err != nil {
		return nil, nil, err
	}
	if err := s.validateType(ctx, forwardTypeID); err != nil {
		return nil, nil, err
	}

	if backwardTypeID == "" && forwardTypeID != "" {
		target, err := s.relationalDB.FindCharacterByID(ctx, targetID)
		if err != nil {
			return nil, nil, fmt.Errorf("finding target character: %w", err)
		}
		// The backward edge describes the forward target (Father from
		// John to Jane inverts to Jane's Daughter), so resolution keys
		// on the target's gender.
		inverse, err := s.types.PickDefaultInverse(ctx, forwardTypeID, target.Gender)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving inverse type: %w", err)
		}
		if inverse != nil {
			backwardTypeID = inverse.ID
		}
	} else if err := s.validateType(ctx, backwardTypeID); err != nil {
		return nil, nil, err
	}

	forward := buildRelationship(sourceID, targetID, forwardTypeID, opts)
	backward := buildRelationship(targetID, sourceID, backwardTypeID, opts)

	if err := s.relationalDB.SaveRelationshipPair(ctx, forward, backward); err != nil {
		return nil, nil, fmt.Errorf("saving relationship pair: %w", err)
	}
	return forward, backward, nil
}

// Update applies a partial update. Returns false (no error) when the id
// is unknown.
func (s *RelationshipService) Update(ctx context.Context, id string, update *entities.RelationshipUpdate) (bool, error) {
	if update == nil || update.IsEmpty() {
		return false, fmt.Errorf("update has no fields set")
	}
	return s.relationalDB.UpdateRelationship(ctx, id, update)
}

// Delete removes a single edge. The paired inverse stays; callers that
// want both sides gone delete both ids. Returns false when unknown.
func (s *RelationshipService) Delete(ctx context.Context, id string) (bool, error) {
	return s.relationalDB.DeleteRelationship(ctx, id)
}

// Get returns an edge by id, or nil if not found.
func (s *RelationshipService) Get(ctx context.Context, id string) (*entities.Relationship, error) {
	return s.relationalDB.FindRelationship(ctx, id)
}

// ListForCharacter returns all edges touching a character, annotated for
// display and sorted strongest then most recently updated first.
func (s *RelationshipService) ListForCharacter(ctx context.Context, characterID string) ([]entities.CharacterRelation, error) {
	return s.relationalDB.FindRelationshipsByCharacter(ctx, characterID)
}

// ListBetween groups all edges between two characters into pair
// descriptors: paired when the inverse links round-trip, otherwise
// singles. Each descriptor carries a composed description and the
// effective primary flag (true when either side is flagged).
func (s *RelationshipService) ListBetween(ctx context.Context, a, b string) ([]entities.PairDescriptor, error) {
	views, err := s.relationalDB.FindRelationshipsBetween(ctx, a, b)
	if err != nil {
		return nil, fmt.Errorf("listing relationships between characters: %w", err)
	}
	return groupIntoPairs(views), nil
}

// groupIntoPairs walks edges in creation order and matches round-trip
// inverse links; anything unmatched becomes a single.
func groupIntoPairs(views []entities.RelationshipView) []entities.PairDescriptor {
	byID := make(map[string]*entities.RelationshipView, len(views))
	for i := range views {
		byID[views[i].ID] = &views[i]
	}

	used := make(map[string]bool, len(views))
	descriptors := make([]entities.PairDescriptor, 0, len(views))
	for i := range views {
		v := &views[i]
		if used[v.ID] {
			continue
		}
		used[v.ID] = true

		w := byID[v.InverseRelationshipID]
		if w != nil && !used[w.ID] && w.InverseRelationshipID == v.ID {
			used[w.ID] = true
			descriptors = append(descriptors, entities.PairDescriptor{
				Forward:     v,
				Backward:    w,
				Paired:      true,
				IsPrimary:   v.IsPrimary || w.IsPrimary,
				Description: ComposePairDescription(v.SourceName, v.DisplayLabel(), w.SourceName, w.DisplayLabel()),
			})
			continue
		}

		descriptors = append(descriptors, entities.PairDescriptor{
			Forward:     v,
			Paired:      false,
			IsPrimary:   v.IsPrimary,
			Description: ComposeSingleDescription(v.SourceName, v.DisplayLabel()),
		})
	}
	return descriptors
}

// ApplyBatch validates the primary constraint over existing and pending
// relationship groups between two characters, then applies every
// operation in one transaction. A non-OK check persists nothing: the
// caller disambiguates (NeedsDisambiguation) or the batch is rejected
// with ErrPrimaryConflict.
func (s *RelationshipService) ApplyBatch(ctx context.Context, a, b string, ops []entities.BatchOp) (PrimaryCheck, error) {
	existing, err := s.ListBetween(ctx, a, b)
	if err != nil {
		return PrimaryCheck{}, err
	}

	// Pre-assign ids so pending groups are addressable in check results.
	for i := range ops {
		assignBatchIDs(&ops[i])
	}

	check := ValidatePrimaryConstraint(projectFlags(existing, ops))
	switch check.Status {
	case PrimaryConflict:
		return check, fmt.Errorf("batch between %s and %s: %w", a, b, entities.ErrPrimaryConflict)
	case PrimaryNeedsDisambiguation:
		return check, nil
	}

	if err := s.relationalDB.ApplyRelationshipBatch(ctx, ops); err != nil {
		return check, fmt.Errorf("applying relationship batch: %w", err)
	}
	return check, nil
}

func assignBatchIDs(op *entities.BatchOp) {
	if op.Forward != nil && op.Forward.ID == "" {
		op.Forward.ID = uuid.New().String()
	}
	if op.Backward != nil && op.Backward.ID == "" {
		op.Backward.ID = uuid.New().String()
	}
}

// projectFlags derives the primary flags the database would hold after
// the batch: existing groups mutated by pending updates and deletes,
// plus one flag per pending add.
func projectFlags(existing []entities.PairDescriptor, ops []entities.BatchOp) (current, pending []PairFlag) {
	type group struct {
		ids       map[string]bool
		isPrimary bool
		repID     string
	}

	groups := make([]*group, 0, len(existing))
	byEdge := make(map[string]*group)
	for i := range existing {
		g := &group{
			ids:       map[string]bool{existing[i].Forward.ID: true},
			isPrimary: existing[i].IsPrimary,
			repID:     existing[i].Forward.ID,
		}
		byEdge[existing[i].Forward.ID] = g
		if existing[i].Backward != nil {
			g.ids[existing[i].Backward.ID] = true
			byEdge[existing[i].Backward.ID] = g
		}
		groups = append(groups, g)
	}

	for i := range ops {
		op := &ops[i]
		switch op.Action {
		case entities.BatchAddPair:
			pending = append(pending, PairFlag{
				ID:        op.Forward.ID,
				IsPrimary: op.Forward.IsPrimary || op.Backward.IsPrimary,
			})
		case entities.BatchAddSingle:
			pending = append(pending, PairFlag{
				ID:        op.Forward.ID,
				IsPrimary: op.Forward.IsPrimary,
			})
		case entities.BatchUpdate:
			if op.Update != nil && op.Update.IsPrimary != nil {
				if g := byEdge[op.UpdateID]; g != nil {
					g.isPrimary = *op.Update.IsPrimary
				}
			}
		case entities.BatchDelete:
			if g := byEdge[op.DeleteID]; g != nil {
				delete(g.ids, op.DeleteID)
			}
		}
	}

	for _, g := range groups {
		if len(g.ids) == 0 {
			continue
		}
		current = append(current, PairFlag{ID: g.repID, IsPrimary: g.isPrimary})
	}
	return current, pending
}

// Count returns the total number of relationship edges.
func (s *RelationshipService) Count(ctx context.Context) (int, error) {
	return s.relationalDB.CountRelationships(ctx)
}

func (s *RelationshipService) validateEndpoints(ctx context.Context, sourceID, targetID string) error {
	if sourceID == targetID {
		return entities.ErrSelfRelationship
	}
	for _, id := range []string{sourceID, targetID} {
		c, err := s.relationalDB.FindCharacterByID(ctx, id)
		if err != nil {
			return fmt.Errorf("finding character: %w", err)
		}
		if c == nil {
			return fmt.Errorf("character %s: %w", id, entities.ErrCharacterNotFound)
		}
	}
	return nil
}

func (s *RelationshipService) validateType(ctx context.Context, typeID string) error {
	if typeID == "" {
		return nil
	}
	rt, err := s.relationalDB.FindRelationshipType(ctx, typeID)
	if err != nil {
		return fmt.Errorf("finding relationship type: %w", err)
	}
	if rt == nil {
		return fmt.Errorf("type %s: %w", typeID, entities.ErrTypeNotFound)
	}
	return nil
}

func buildRelationship(sourceID, targetID, typeID string, opts RelationshipOptions) *entities.Relationship {
	now := time.Now()
	rel := &entities.Relationship{
		ID:          uuid.New().String(),
		SourceID:    sourceID,
		TargetID:    targetID,
		TypeID:      typeID,
		Strength:    opts.Strength,
		Color:       opts.Color,
		Width:       opts.Width,
		IsCustom:    opts.IsCustom,
		CustomLabel: opts.CustomLabel,
		IsPrimary:   opts.IsPrimary,
		Description: opts.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rel.Strength == 0 {
		rel.Strength = entities.DefaultStrength
	}
	if rel.Color == "" {
		rel.Color = entities.DefaultColor
	}
	if rel.Width == 0 {
		rel.Width = entities.DefaultWidth
	}
	return rel
}
