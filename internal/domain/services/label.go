package services

import (
	"fmt"
	"strings"

	"github.com/fablekeep/storygraph/internal/domain/entities"
)

// ComposeLabel resolves and joins the display labels of all given edges
// with " / " in the given order. Duplicates are kept on purpose: two
// distinct edges with the same label are still two relationships.
func ComposeLabel(edges []entities.RelationshipView) string {
	labels := make([]string, 0, len(edges))
	for i := range edges {
		if label := edges[i].DisplayLabel(); label != "" {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, " / ")
}

// ComposePairDescription renders a paired relationship for display,
// e.g. "John (Father) ↔ Jane (Daughter)".
func ComposePairDescription(aName, labelAB, bName, labelBA string) string {
	return fmt.Sprintf("%s (%s) ↔ %s (%s)", aName, labelAB, bName, labelBA)
}

// ComposeSingleDescription renders an unpaired relationship for display,
// e.g. "John (Mentor)".
func ComposeSingleDescription(ownerName, label string) string {
	return fmt.Sprintf("%s (%s)", ownerName, label)
}
