package explore_test

import (
	"context"
	"sync"
	"time"

	"github.com/opencurricula/explorer/internal/models"
)

// memGraph is an in-memory GraphAccessor. Edges are returned in insertion
// order, which fixes traversal discovery order for assertions.
type memGraph struct {
	nodes map[string]models.Node
	out   map[string][]models.Edge
	in    map[string][]models.Edge

	mu    sync.Mutex
	calls int // GetNode + edge-list calls, for probe accounting
}

func newMemGraph() *memGraph {
	return &memGraph{
		nodes: make(map[string]models.Node),
		out:   make(map[string][]models.Edge),
		in:    make(map[string][]models.Edge),
	}
}

func (g *memGraph) addNode(id, nodeType string) {
	g.nodes[id] = models.Node{ID: id, Type: nodeType, Label: id}
}

func (g *memGraph) addEdge(source, target string, rel models.RelationshipType) {
	e := models.Edge{Source: source, Target: target, Relation: rel}
	g.out[source] = append(g.out[source], e)
	g.in[target] = append(g.in[target], e)
}

func (g *memGraph) count() {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
}

func (g *memGraph) GetNode(_ context.Context, id string) (*models.Node, error) {
	g.count()

	n, ok := g.nodes[id]
	if !ok {
		return nil, models.ErrNodeNotFound
	}

	return &n, nil
}

func (g *memGraph) OutgoingEdges(_ context.Context, id string) ([]models.Edge, error) {
	g.count()

	return g.out[id], nil
}

func (g *memGraph) IncomingEdges(_ context.Context, id string) ([]models.Edge, error) {
	g.count()

	return g.in[id], nil
}

// mockChecker implements explore.AttestationChecker from a static grant set.
type mockChecker struct {
	grants map[string][]models.Attestation
	err    error
}

func (m *mockChecker) Holds(_ context.Context, callerID string, att models.Attestation) (bool, error) {
	if m.err != nil {
		return false, m.err
	}

	for _, a := range m.grants[callerID] {
		if a == att {
			return true, nil
		}
	}

	return false, nil
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// grantsFor builds the attestation ladder for a tier, the way the registry
// would: higher tiers imply the lower credentials.
func grantsFor(tier models.Tier) []models.Attestation {
	switch tier {
	case models.TierAuthenticated:
		return []models.Attestation{models.AttestationAuthenticated}
	case models.TierGraphResearcher:
		return []models.Attestation{models.AttestationAuthenticated, models.AttestationGraphResearcher}
	case models.TierAdvancedResearcher:
		return []models.Attestation{
			models.AttestationAuthenticated,
			models.AttestationGraphResearcher,
			models.AttestationAdvancedResearcher,
		}
	case models.TierPathCreator:
		return []models.Attestation{
			models.AttestationAuthenticated,
			models.AttestationGraphResearcher,
			models.AttestationAdvancedResearcher,
			models.AttestationPathCreator,
		}
	default:
		return nil
	}
}

// lineGraph builds a -> b -> c -> ... along the given relationship type.
func lineGraph(rel models.RelationshipType, ids ...string) *memGraph {
	g := newMemGraph()
	for _, id := range ids {
		g.addNode(id, "concept")
	}
	for i := 0; i+1 < len(ids); i++ {
		g.addEdge(ids[i], ids[i+1], rel)
	}

	return g
}
