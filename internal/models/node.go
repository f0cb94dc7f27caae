// Package models defines data types for the content graph exploration engine.
package models

import "time"

// Node represents a vertex in the content graph. Nodes are owned by the
// external graph store; the engine never mutates them.
type Node struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Properties map[string]any `json:"properties,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
