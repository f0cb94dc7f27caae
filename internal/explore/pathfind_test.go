package explore_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/opencurricula/explorer/internal/explore"
	"github.com/opencurricula/explorer/internal/models"
)

func TestFindPath_ShortestPrefersFewerHops(t *testing.T) {
	t.Parallel()

	// a -> b -> c and a -> c directly: the one-hop path wins.
	g := newMemGraph()
	for _, id := range []string{"a", "b", "c"} {
		g.addNode(id, "concept")
	}
	g.addEdge("a", "b", models.RelContains)
	g.addEdge("b", "c", models.RelContains)
	g.addEdge("a", "c", models.RelRelatesTo)

	tr := explore.NewTraverser(g)

	result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID: "a", ToID: "c", Algorithm: models.AlgorithmShortest, MaxHops: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.Path, []string{"a", "c"}) {
		t.Errorf("path = %v, want [a c]", result.Path)
	}

	if result.Length != 1 {
		t.Errorf("length = %d, want 1", result.Length)
	}

	if len(result.Edges) != 1 || result.Edges[0].Relation != models.RelRelatesTo {
		t.Errorf("edges = %v, want the direct RELATES_TO edge", result.Edges)
	}
}

func TestFindPath_SameNode(t *testing.T) {
	t.Parallel()

	g := lineGraph(models.RelContains, "a", "b")
	tr := explore.NewTraverser(g)

	for _, algo := range []models.PathAlgorithm{models.AlgorithmShortest, models.AlgorithmSemantic} {
		result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
			FromID: "a", ToID: "a", Algorithm: algo, MaxHops: 6,
		})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", algo, err)
		}

		if !reflect.DeepEqual(result.Path, []string{"a"}) || result.Length != 0 {
			t.Errorf("%s: path = %v length = %d, want trivial path", algo, result.Path, result.Length)
		}
	}
}

func TestFindPath_DirectedOnly(t *testing.T) {
	t.Parallel()

	// Only b -> a exists; pathfinding from a to b must fail even though
	// exploration would discover b through the incoming edge.
	g := newMemGraph()
	g.addNode("a", "concept")
	g.addNode("b", "concept")
	g.addEdge("b", "a", models.RelContains)

	tr := explore.NewTraverser(g)

	_, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID: "a", ToID: "b", Algorithm: models.AlgorithmShortest, MaxHops: 6,
	})

	var ee *models.ExplorationError
	if !errors.As(err, &ee) || ee.Code != models.ErrCodeNoPathExists {
		t.Fatalf("expected NO_PATH_EXISTS, got %v", err)
	}
}

func TestFindPath_NoPathReportsWorkDone(t *testing.T) {
	t.Parallel()

	// Path of length 2 but max_hops 1: unreachable within the bound, yet the
	// search did real work that must be visible in the error metadata.
	g := lineGraph(models.RelContains, "a", "b", "c")
	tr := explore.NewTraverser(g)

	_, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID: "a", ToID: "c", Algorithm: models.AlgorithmShortest, MaxHops: 1,
	})

	var ee *models.ExplorationError
	if !errors.As(err, &ee) || ee.Code != models.ErrCodeNoPathExists {
		t.Fatalf("expected NO_PATH_EXISTS, got %v", err)
	}

	if ee.Metadata == nil {
		t.Fatal("NO_PATH_EXISTS must carry metadata")
	}

	if ee.Metadata.NodesTraversed < 2 {
		t.Errorf("nodes traversed = %d, want at least from and b", ee.Metadata.NodesTraversed)
	}
}

func TestFindPath_SemanticPrefersStrongerRelationships(t *testing.T) {
	t.Parallel()

	// Two two-hop routes from a to d: one over PREREQUISITE edges, one over
	// RELATES_TO edges. Equal hop count, but prerequisite edges are cheaper
	// under the semantic cost function.
	g := newMemGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.addNode(id, "concept")
	}
	g.addEdge("a", "b", models.RelRelatesTo)
	g.addEdge("b", "d", models.RelRelatesTo)
	g.addEdge("a", "c", models.RelPrerequisite)
	g.addEdge("c", "d", models.RelPrerequisite)

	tr := explore.NewTraverser(g)

	result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID: "a", ToID: "d", Algorithm: models.AlgorithmSemantic, MaxHops: 6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.Path, []string{"a", "c", "d"}) {
		t.Errorf("path = %v, want the prerequisite route [a c d]", result.Path)
	}

	// Two edges at cost 1/(1+1.5) each; score = 1/(1+totalCost).
	wantScore := 1 / (1 + 2*(1/2.5))
	if math.Abs(result.SemanticScore-wantScore) > 1e-9 {
		t.Errorf("semantic score = %f, want %f", result.SemanticScore, wantScore)
	}
}

func TestFindPath_SemanticHonorsCallerPreference(t *testing.T) {
	t.Parallel()

	// Same shape, but the caller prefers RELATES_TO, overriding the default
	// ranking.
	g := newMemGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.addNode(id, "concept")
	}
	g.addEdge("a", "b", models.RelRelatesTo)
	g.addEdge("b", "d", models.RelRelatesTo)
	g.addEdge("a", "c", models.RelPrerequisite)
	g.addEdge("c", "d", models.RelPrerequisite)

	tr := explore.NewTraverser(g)

	result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID:                 "a",
		ToID:                   "d",
		Algorithm:              models.AlgorithmSemantic,
		MaxHops:                6,
		PreferredRelationships: []models.RelationshipType{models.RelRelatesTo},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.Path, []string{"a", "b", "d"}) {
		t.Errorf("path = %v, want the preferred route [a b d]", result.Path)
	}
}

func TestFindPath_SemanticRespectsMaxHops(t *testing.T) {
	t.Parallel()

	// Cheap three-hop route vs expensive one-hop route with max_hops 1: only
	// the direct edge is admissible.
	g := newMemGraph()
	for _, id := range []string{"a", "x", "y", "d"} {
		g.addNode(id, "concept")
	}
	g.addEdge("a", "x", models.RelPrerequisite)
	g.addEdge("x", "y", models.RelPrerequisite)
	g.addEdge("y", "d", models.RelPrerequisite)
	g.addEdge("a", "d", models.RelRelatesTo)

	tr := explore.NewTraverser(g)

	result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
		FromID: "a", ToID: "d", Algorithm: models.AlgorithmSemantic, MaxHops: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(result.Path, []string{"a", "d"}) {
		t.Errorf("path = %v, want the direct route [a d]", result.Path)
	}
}

func TestFindPath_ShortestDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	// Two equal-length routes; the first edge in store order wins.
	g := newMemGraph()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.addNode(id, "concept")
	}
	g.addEdge("a", "b", models.RelContains)
	g.addEdge("a", "c", models.RelContains)
	g.addEdge("b", "d", models.RelContains)
	g.addEdge("c", "d", models.RelContains)

	tr := explore.NewTraverser(g)

	for i := 0; i < 3; i++ {
		result, err := tr.FindPath(context.Background(), models.PathfindingQuery{
			FromID: "a", ToID: "d", Algorithm: models.AlgorithmShortest, MaxHops: 6,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !reflect.DeepEqual(result.Path, []string{"a", "b", "d"}) {
			t.Fatalf("path = %v, want [a b d] on every run", result.Path)
		}
	}
}
