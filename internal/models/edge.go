package models

import "fmt"

// RelationshipType classifies a directed edge in the content graph.
type RelationshipType string

// The closed set of relationship types the engine understands.
const (
	RelContains     RelationshipType = "CONTAINS"
	RelDependsOn    RelationshipType = "DEPENDS_ON"
	RelRelatesTo    RelationshipType = "RELATES_TO"
	RelExtends      RelationshipType = "EXTENDS"
	RelPrerequisite RelationshipType = "PREREQUISITE"
	RelFoundation   RelationshipType = "FOUNDATION"
	RelReferences   RelationshipType = "REFERENCES"
	RelDerivedFrom  RelationshipType = "DERIVED_FROM"
)

// RelationshipTypes lists all valid relationship types.
var RelationshipTypes = []RelationshipType{
	RelContains, RelDependsOn, RelRelatesTo, RelExtends,
	RelPrerequisite, RelFoundation, RelReferences, RelDerivedFrom,
}

// ParseRelationshipType validates a relationship type string.
func ParseRelationshipType(s string) (RelationshipType, error) {
	for _, rt := range RelationshipTypes {
		if string(rt) == s {
			return rt, nil
		}
	}

	return "", fmt.Errorf("unknown relationship type %q", s)
}

// Edge represents a directed, typed relationship between two nodes.
// Some relationship types are conventionally treated as bidirectional by
// callers of the graph store; the engine itself follows edge direction.
type Edge struct {
	Source   string           `json:"source"`
	Target   string           `json:"target"`
	Relation RelationshipType `json:"relation"`
	Weight   float64          `json:"weight,omitempty"`
}
