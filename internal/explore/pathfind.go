package explore

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/opencurricula/explorer/internal/models"
)

// Default preference scores for the semantic cost function. Pedagogically
// load-bearing relationships rank above associative ones. Caller-preferred
// types override these with preferredScore.
const (
	preferredScore   = 2.0
	structuralScore  = 1.5 // PREREQUISITE, FOUNDATION, DEPENDS_ON
	extensionScore   = 1.0 // EXTENDS
	associativeScore = 0.5 // RELATES_TO
	baselineScore    = 0.25
)

// FindPath dispatches to the algorithm named by the query. Both algorithms
// follow edge direction and never consider a path longer than max_hops.
func (t *Traverser) FindPath(ctx context.Context, q models.PathfindingQuery) (*models.PathResult, error) {
	if q.Algorithm == models.AlgorithmSemantic {
		return t.semanticPath(ctx, q)
	}

	return t.shortestPath(ctx, q)
}

// parentLink records how a node was first reached, for trail reconstruction.
type parentLink struct {
	prev string
	edge models.Edge
}

// shortestPath is uninformed shortest-path by hop count: BFS with parent
// tracking, equivalent to Dijkstra with unit edge weights. When several
// minimum-length paths exist the first one discovered under the graph
// store's stable edge ordering wins.
func (t *Traverser) shortestPath(ctx context.Context, q models.PathfindingQuery) (*models.PathResult, error) {
	meta := models.ExplorationMetadata{}

	if q.FromID == q.ToID {
		meta.NodesTraversed = 1
		meta.NodesReturned = 1

		return &models.PathResult{Path: []string{q.FromID}, Edges: []models.Edge{}, Metadata: meta}, nil
	}

	visited := map[string]bool{q.FromID: true}
	parents := make(map[string]parentLink)
	frontier := []string{q.FromID}
	meta.NodesTraversed = 1

	found := false

	for hop := 0; hop < q.MaxHops && !found && len(frontier) > 0; hop++ {
		if ctx.Err() != nil {
			meta.Truncated = true

			return &models.PathResult{Edges: []models.Edge{}, Metadata: meta}, nil
		}

		var nextFrontier []string

		for _, id := range frontier {
			edges, err := t.graph.OutgoingEdges(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("fetching outgoing edges of %s: %w", id, err)
			}

			for _, e := range edges {
				meta.EdgesExamined++

				if visited[e.Target] {
					continue
				}

				visited[e.Target] = true
				parents[e.Target] = parentLink{prev: id, edge: e}
				nextFrontier = append(nextFrontier, e.Target)
				meta.NodesTraversed++

				if e.Target == q.ToID {
					found = true
				}
			}

			if found {
				break
			}
		}

		meta.DepthTraversed = hop + 1
		frontier = nextFrontier
	}

	if !found {
		return nil, &models.ExplorationError{
			Code:     models.ErrCodeNoPathExists,
			Message:  fmt.Sprintf("no path from %s to %s within %d hops", q.FromID, q.ToID, q.MaxHops),
			Metadata: &meta,
		}
	}

	path, edges := reconstruct(q.FromID, q.ToID, parents)
	meta.NodesReturned = len(path)

	return &models.PathResult{
		Path:     path,
		Edges:    edges,
		Length:   len(edges),
		Metadata: meta,
	}, nil
}

// semanticPath is Dijkstra over a derived cost function where each edge
// costs 1/(1+preferenceScore(relationshipType)), so preferred relationship
// types are cheaper to cross. SemanticScore is 1/(1+totalCost), in (0,1].
func (t *Traverser) semanticPath(ctx context.Context, q models.PathfindingQuery) (*models.PathResult, error) {
	meta := models.ExplorationMetadata{}
	prefs := preferenceScores(q.PreferredRelationships)

	if q.FromID == q.ToID {
		meta.NodesTraversed = 1
		meta.NodesReturned = 1

		return &models.PathResult{
			Path: []string{q.FromID}, Edges: []models.Edge{}, SemanticScore: 1.0, Metadata: meta,
		}, nil
	}

	dist := map[string]float64{q.FromID: 0}
	hops := map[string]int{q.FromID: 0}
	parents := make(map[string]parentLink)
	settled := make(map[string]bool)

	pq := &costHeap{}
	seq := 0
	push := func(item costItem) {
		item.seq = seq
		seq++
		heap.Push(pq, item)
	}
	push(costItem{id: q.FromID})

	for pq.Len() > 0 {
		if ctx.Err() != nil {
			meta.Truncated = true

			return &models.PathResult{Edges: []models.Edge{}, Metadata: meta}, nil
		}

		item := heap.Pop(pq).(costItem)
		if settled[item.id] {
			continue
		}

		settled[item.id] = true
		meta.NodesTraversed++

		if hops[item.id] > meta.DepthTraversed {
			meta.DepthTraversed = hops[item.id]
		}

		if item.id == q.ToID {
			path, edges := reconstruct(q.FromID, q.ToID, parents)
			meta.NodesReturned = len(path)

			return &models.PathResult{
				Path:          path,
				Edges:         edges,
				Length:        len(edges),
				SemanticScore: 1 / (1 + item.cost),
				Metadata:      meta,
			}, nil
		}

		if hops[item.id] >= q.MaxHops {
			continue
		}

		edges, err := t.graph.OutgoingEdges(ctx, item.id)
		if err != nil {
			return nil, fmt.Errorf("fetching outgoing edges of %s: %w", item.id, err)
		}

		for _, e := range edges {
			meta.EdgesExamined++

			next := item.cost + 1/(1+prefs[e.Relation])
			if d, seen := dist[e.Target]; seen && d <= next {
				continue
			}

			dist[e.Target] = next
			hops[e.Target] = hops[item.id] + 1
			parents[e.Target] = parentLink{prev: item.id, edge: e}
			push(costItem{id: e.Target, cost: next})
		}
	}

	return nil, &models.ExplorationError{
		Code:     models.ErrCodeNoPathExists,
		Message:  fmt.Sprintf("no path from %s to %s within %d hops", q.FromID, q.ToID, q.MaxHops),
		Metadata: &meta,
	}
}

// preferenceScores builds the per-type preference table, elevating the
// caller's preferred relationship types above the defaults.
func preferenceScores(preferred []models.RelationshipType) map[models.RelationshipType]float64 {
	scores := make(map[models.RelationshipType]float64, len(models.RelationshipTypes))

	for _, rt := range models.RelationshipTypes {
		switch rt {
		case models.RelPrerequisite, models.RelFoundation, models.RelDependsOn:
			scores[rt] = structuralScore
		case models.RelExtends:
			scores[rt] = extensionScore
		case models.RelRelatesTo:
			scores[rt] = associativeScore
		default:
			scores[rt] = baselineScore
		}
	}

	for _, rt := range preferred {
		scores[rt] = preferredScore
	}

	return scores
}

// reconstruct walks the parent map from to back to from and reverses the
// trail into path order.
func reconstruct(from, to string, parents map[string]parentLink) ([]string, []models.Edge) {
	path := []string{to}

	var edges []models.Edge

	for current := to; current != from; {
		link, ok := parents[current]
		if !ok {
			break
		}

		path = append(path, link.prev)
		edges = append(edges, link.edge)
		current = link.prev
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return path, edges
}

// costItem is a priority-queue entry. seq breaks cost ties by insertion
// order so results stay deterministic for a fixed edge ordering.
type costItem struct {
	id   string
	cost float64
	seq  int
}

type costHeap []costItem

func (h costHeap) Len() int { return len(h) }

func (h costHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}

	return h[i].seq < h[j].seq
}

func (h costHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *costHeap) Push(x any) { *h = append(*h, x.(costItem)) }

func (h *costHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
