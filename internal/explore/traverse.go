package explore

import (
	"context"
	"fmt"

	"github.com/opencurricula/explorer/internal/models"
)

// Traverser executes graph traversals over a GraphAccessor. It holds no
// state between calls; all work bounds come from the query.
type Traverser struct {
	graph GraphAccessor
}

// NewTraverser creates a Traverser over the given graph.
func NewTraverser(graph GraphAccessor) *Traverser {
	return &Traverser{graph: graph}
}

// edgeKey dedupes edges collected into a view.
type edgeKey struct {
	source   string
	target   string
	relation models.RelationshipType
}

// Explore performs iterative BFS from the focus node, bounded by the query's
// depth and max_nodes. A node is enqueued only the first time it is
// discovered, so cycles terminate and a node reachable by two paths is
// counted once. Excluded relationship types still count toward
// edges_examined but contribute nothing to the view.
//
// Cancellation is checked at each depth-level boundary; a cancelled
// traversal returns the partial view with metadata reflecting work done,
// not an error.
func (t *Traverser) Explore(ctx context.Context, q models.ExplorationQuery) (*models.GraphView, error) {
	focus, err := t.graph.GetNode(ctx, q.FocusID)
	if err != nil {
		return nil, fmt.Errorf("fetching focus node: %w", err)
	}

	allowed := allowedTypes(q.RelationshipFilter)

	view := &models.GraphView{
		Focus:            *focus,
		NeighborsByDepth: make(map[int][]models.Node),
		Edges:            make([]models.Edge, 0),
	}

	meta := &view.Metadata
	meta.NodesTraversed = 1
	meta.NodesReturned = 1

	visited := map[string]bool{q.FocusID: true}
	frontier := []string{q.FocusID}
	seenEdges := make(map[edgeKey]bool)

levels:
	for depth := 1; depth <= q.Depth && len(frontier) > 0; depth++ {
		if ctx.Err() != nil {
			meta.Truncated = true

			break
		}

		var nextFrontier []string

		for _, id := range frontier {
			edges, err := t.neighborEdges(ctx, id)
			if err != nil {
				return nil, err
			}

			for _, pair := range edges {
				meta.EdgesExamined++

				if !allowed[pair.edge.Relation] {
					continue
				}

				if !visited[pair.neighbor] {
					if q.MaxNodes > 0 && meta.NodesReturned >= q.MaxNodes {
						meta.Truncated = true
						meta.DepthTraversed = depth

						break levels
					}

					node, err := t.graph.GetNode(ctx, pair.neighbor)
					if err != nil {
						return nil, fmt.Errorf("fetching neighbor %s: %w", pair.neighbor, err)
					}

					visited[pair.neighbor] = true
					view.NeighborsByDepth[depth] = append(view.NeighborsByDepth[depth], *node)
					nextFrontier = append(nextFrontier, pair.neighbor)
					meta.NodesTraversed++
					meta.NodesReturned++
				}

				key := edgeKey{pair.edge.Source, pair.edge.Target, pair.edge.Relation}
				if visited[pair.edge.Source] && visited[pair.edge.Target] && !seenEdges[key] {
					seenEdges[key] = true
					view.Edges = append(view.Edges, pair.edge)
				}
			}
		}

		meta.DepthTraversed = depth
		frontier = nextFrontier
	}

	return view, nil
}

// neighborPair carries a followed edge together with its far endpoint.
type neighborPair struct {
	edge     models.Edge
	neighbor string
}

// neighborEdges lists a node's outgoing then incoming edges in the graph
// store's stable order, which fixes BFS discovery order.
func (t *Traverser) neighborEdges(ctx context.Context, id string) ([]neighborPair, error) {
	out, err := t.graph.OutgoingEdges(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching outgoing edges of %s: %w", id, err)
	}

	in, err := t.graph.IncomingEdges(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching incoming edges of %s: %w", id, err)
	}

	pairs := make([]neighborPair, 0, len(out)+len(in))
	for _, e := range out {
		pairs = append(pairs, neighborPair{edge: e, neighbor: e.Target})
	}

	for _, e := range in {
		pairs = append(pairs, neighborPair{edge: e, neighbor: e.Source})
	}

	return pairs, nil
}

// allowedTypes expands a relationship filter into a lookup set; an empty
// filter allows every type.
func allowedTypes(filter []models.RelationshipType) map[models.RelationshipType]bool {
	allowed := make(map[models.RelationshipType]bool, len(models.RelationshipTypes))

	if len(filter) == 0 {
		for _, rt := range models.RelationshipTypes {
			allowed[rt] = true
		}

		return allowed
	}

	for _, rt := range filter {
		allowed[rt] = true
	}

	return allowed
}
