package services

import (
	"testing"

	"github.com/fablekeep/storygraph/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func TestComposeLabel(t *testing.T) {
	typed := func(label string) entities.RelationshipView {
		return entities.RelationshipView{TypeLabel: label}
	}

	tests := []struct {
		name     string
		edges    []entities.RelationshipView
		expected string
	}{
		{
			name:     "no edges",
			edges:    nil,
			expected: "",
		},
		{
			name:     "single edge is its own label",
			edges:    []entities.RelationshipView{typed("Friend")},
			expected: "Friend",
		},
		{
			name:     "multiple edges joined in order",
			edges:    []entities.RelationshipView{typed("Boss"), typed("Friend")},
			expected: "Boss / Friend",
		},
		{
			name:     "duplicates kept",
			edges:    []entities.RelationshipView{typed("Friend"), typed("Friend")},
			expected: "Friend / Friend",
		},
		{
			name: "custom label wins over type label",
			edges: []entities.RelationshipView{
				{
					Relationship: entities.Relationship{IsCustom: true, CustomLabel: "sworn rival"},
					TypeLabel:    "Friend",
				},
			},
			expected: "sworn rival",
		},
		{
			name: "type name as last resort",
			edges: []entities.RelationshipView{
				{TypeName: "Mentor"},
			},
			expected: "Mentor",
		},
		{
			name: "unlabeled edges skipped",
			edges: []entities.RelationshipView{
				typed("Friend"),
				{},
				typed("Boss"),
			},
			expected: "Friend / Boss",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComposeLabel(tt.edges))
		})
	}
}

func TestComposePairDescription(t *testing.T) {
	result := ComposePairDescription("John", "Father", "Jane", "Daughter")
	assert.Equal(t, "John (Father) ↔ Jane (Daughter)", result)
}

func TestComposeSingleDescription(t *testing.T) {
	result := ComposeSingleDescription("John", "Mentor")
	assert.Equal(t, "John (Mentor)", result)
}
