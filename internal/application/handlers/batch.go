package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/fablekeep/storygraph/internal/domain/services"
)

// BatchItem is one batch operation as decoded from a batch file.
// Characters and types are referenced by name; updates and deletes
// reference an existing edge id.
type BatchItem struct {
	Action       string `json:"action"` // add_pair, add_single, update, delete
	Source       string `json:"source,omitempty"`
	Target       string `json:"target,omitempty"`
	Type         string `json:"type,omitempty"`
	BackwardType string `json:"backward_type,omitempty"`
	Primary      bool   `json:"primary,omitempty"`
	Strength     int    `json:"strength,omitempty"`
	Label        string `json:"label,omitempty"`

	ID          string  `json:"id,omitempty"`
	SetPrimary  *bool   `json:"set_primary,omitempty"`
	SetStrength *int    `json:"set_strength,omitempty"`
	SetLabel    *string `json:"set_label,omitempty"`
}

// HandleApply resolves a batch of named operations between two
// characters and applies them in one transaction. The returned check
// tells the caller whether the batch committed, needs a primary
// disambiguation, or conflicted.
func (h *RelationshipHandler) HandleApply(ctx context.Context, storyID, aName, bName string, items []BatchItem) (services.PrimaryCheck, error) {
	a, err := h.resolveCharacter(ctx, storyID, aName)
	if err != nil {
		return services.PrimaryCheck{}, err
	}
	b, err := h.resolveCharacter(ctx, storyID, bName)
	if err != nil {
		return services.PrimaryCheck{}, err
	}

	ops := make([]entities.BatchOp, 0, len(items))
	for i, item := range items {
		op, err := h.buildBatchOp(ctx, storyID, item)
		if err != nil {
			return services.PrimaryCheck{}, fmt.Errorf("batch item %d: %w", i, err)
		}
		ops = append(ops, op)
	}

	return h.relationships.ApplyBatch(ctx, a.ID, b.ID, ops)
}

func (h *RelationshipHandler) buildBatchOp(ctx context.Context, storyID string, item BatchItem) (entities.BatchOp, error) {
	switch entities.BatchAction(item.Action) {
	case entities.BatchAddPair:
		forward, err := h.buildBatchEdge(ctx, storyID, item)
		if err != nil {
			return entities.BatchOp{}, err
		}

		backwardTypeID := ""
		if item.BackwardType != "" {
			rt, err := h.resolveTypeName(ctx, item.BackwardType)
			if err != nil {
				return entities.BatchOp{}, err
			}
			backwardTypeID = rt.ID
		} else if forward.TypeID != "" {
			target, err := h.resolveCharacter(ctx, storyID, item.Target)
			if err != nil {
				return entities.BatchOp{}, err
			}
			inverse, err := h.types.PickDefaultInverse(ctx, forward.TypeID, target.Gender)
			if err != nil {
				return entities.BatchOp{}, fmt.Errorf("resolving inverse type: %w", err)
			}
			if inverse != nil {
				backwardTypeID = inverse.ID
			}
		}

		backward := newBatchEdge(forward.TargetID, forward.SourceID, backwardTypeID, BatchItem{})
		return entities.BatchOp{Action: entities.BatchAddPair, Forward: forward, Backward: backward}, nil

	case entities.BatchAddSingle:
		forward, err := h.buildBatchEdge(ctx, storyID, item)
		if err != nil {
			return entities.BatchOp{}, err
		}
		return entities.BatchOp{Action: entities.BatchAddSingle, Forward: forward}, nil

	case entities.BatchUpdate:
		if item.ID == "" {
			return entities.BatchOp{}, fmt.Errorf("update requires an id")
		}
		update := &entities.RelationshipUpdate{
			IsPrimary: item.SetPrimary,
			Strength:  item.SetStrength,
		}
		if item.SetLabel != nil {
			custom := *item.SetLabel != ""
			update.CustomLabel = item.SetLabel
			update.IsCustom = &custom
		}
		if update.IsEmpty() {
			return entities.BatchOp{}, fmt.Errorf("update %s has no fields set", item.ID)
		}
		return entities.BatchOp{Action: entities.BatchUpdate, UpdateID: item.ID, Update: update}, nil

	case entities.BatchDelete:
		if item.ID == "" {
			return entities.BatchOp{}, fmt.Errorf("delete requires an id")
		}
		return entities.BatchOp{Action: entities.BatchDelete, DeleteID: item.ID}, nil

	default:
		return entities.BatchOp{}, fmt.Errorf("unknown action %q", item.Action)
	}
}

// buildBatchEdge resolves the named source, target and type of an add
// item into a relationship edge with display defaults filled in.
func (h *RelationshipHandler) buildBatchEdge(ctx context.Context, storyID string, item BatchItem) (*entities.Relationship, error) {
	source, err := h.resolveCharacter(ctx, storyID, item.Source)
	if err != nil {
		return nil, err
	}
	target, err := h.resolveCharacter(ctx, storyID, item.Target)
	if err != nil {
		return nil, err
	}

	typeID := ""
	if item.Type != "" {
		rt, err := h.resolveTypeName(ctx, item.Type)
		if err != nil {
			return nil, err
		}
		typeID = rt.ID
	}
	if typeID == "" && item.Label == "" {
		return nil, fmt.Errorf("add requires a type or a label")
	}

	return newBatchEdge(source.ID, target.ID, typeID, item), nil
}

func newBatchEdge(sourceID, targetID, typeID string, item BatchItem) *entities.Relationship {
	now := time.Now()
	rel := &entities.Relationship{
		SourceID:    sourceID,
		TargetID:    targetID,
		TypeID:      typeID,
		Strength:    item.Strength,
		IsPrimary:   item.Primary,
		IsCustom:    item.Label != "",
		CustomLabel: item.Label,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if rel.Strength == 0 {
		rel.Strength = entities.DefaultStrength
	}
	rel.Color = entities.DefaultColor
	rel.Width = entities.DefaultWidth
	return rel
}

func (h *RelationshipHandler) resolveTypeName(ctx context.Context, name string) (*entities.RelationshipType, error) {
	rt, err := h.types.GetTypeByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("finding relationship type: %w", err)
	}
	if rt == nil {
		return nil, fmt.Errorf("relationship type %q: %w", name, entities.ErrTypeNotFound)
	}
	return rt, nil
}
