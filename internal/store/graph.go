package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/opencurricula/explorer/internal/models"
)

// bounded per-node edge fetch, mirrors the engine's assumption that accessor
// calls are individually cheap.
const maxEdgesPerNode = 1000

const nodeColumns = "id, type, label, properties, created_at, updated_at"

// GraphStore is the Postgres-backed GraphAccessor. All methods are
// read-only. Edge queries carry an ORDER BY so a node's edge list comes back
// in a stable order, which the traversal engine's determinism contract
// requires.
type GraphStore struct {
	Base
}

// NewGraphStore creates a GraphStore.
func NewGraphStore(base Base) *GraphStore {
	return &GraphStore{Base: base}
}

// GetNode fetches a single node by ID. Returns models.ErrNodeNotFound when
// the node does not exist.
func (s *GraphStore) GetNode(ctx context.Context, id string) (*models.Node, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := s.Pool.QueryRow(ctx, "SELECT "+nodeColumns+" FROM content_nodes WHERE id = $1", id)

	node, err := scanNode(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNodeNotFound
		}

		return nil, fmt.Errorf("querying node %s: %w", id, err)
	}

	return node, nil
}

// OutgoingEdges returns the edges leaving a node, oldest first.
func (s *GraphStore) OutgoingEdges(ctx context.Context, id string) ([]models.Edge, error) {
	return s.edges(ctx, id,
		`SELECT source, target, relation, weight FROM content_edges
		 WHERE source = $1 ORDER BY created_at, target, relation LIMIT `+fmt.Sprintf("%d", maxEdgesPerNode))
}

// IncomingEdges returns the edges arriving at a node, oldest first.
func (s *GraphStore) IncomingEdges(ctx context.Context, id string) ([]models.Edge, error) {
	return s.edges(ctx, id,
		`SELECT source, target, relation, weight FROM content_edges
		 WHERE target = $1 ORDER BY created_at, source, relation LIMIT `+fmt.Sprintf("%d", maxEdgesPerNode))
}

func (s *GraphStore) edges(ctx context.Context, id, sql string) ([]models.Edge, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.Pool.Query(ctx, sql, id)
	if err != nil {
		return nil, fmt.Errorf("querying edges of %s: %w", id, err)
	}
	defer rows.Close()

	edges := make([]models.Edge, 0, 8)

	for rows.Next() {
		var (
			e        models.Edge
			relation string
		)

		if err := rows.Scan(&e.Source, &e.Target, &relation, &e.Weight); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}

		e.Relation = models.RelationshipType(relation)
		edges = append(edges, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}

	return edges, nil
}

// scanNode reads one node row, decoding the properties JSONB column.
func scanNode(scan func(dest ...any) error) (*models.Node, error) {
	var (
		n     models.Node
		props []byte
	)

	if err := scan(&n.ID, &n.Type, &n.Label, &props, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}

	if len(props) > 0 {
		if err := json.Unmarshal(props, &n.Properties); err != nil {
			return nil, fmt.Errorf("decoding node properties: %w", err)
		}
	}

	return &n, nil
}
