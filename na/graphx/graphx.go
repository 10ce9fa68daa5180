// Package graphx implements the interaction-graph algorithms of spec.md
// §4.2: maximum independent set selection, partial-order-constrained edge
// coloring, resting-position computation and connected-component grouping.
//
// The graph container, InteractionGraph, wraps lvlath's core.Graph; the
// independent-set/coloring/layout algorithms are new code layered on it,
// grounded on the interaction graph shape of qc/dag's Node adjacency and
// katalvlaran/lvlath/core's Graph API.
package graphx

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvlath/core"
)

// Edge is an undirected pair of qubit indices in canonical (low,high) order.
type Edge struct {
	A, B int
}

func canon(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Other returns the endpoint of e that is not v.
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Touches reports whether v is one of e's endpoints.
func (e Edge) Touches(v int) bool { return e.A == v || e.B == v }

// InteractionGraph is an undirected, simple graph over qubit indices: the
// vertices are qubits, the edges are the pending two-qubit operations
// between them (spec.md §3 "Interaction graph"). It wraps a lvlath
// core.Graph keyed by the string form of the qubit index so the container
// invariants (no duplicate vertices, deterministic edge catalog) come from
// a vetted dependency rather than a hand-rolled set.
type InteractionGraph struct {
	g     *core.Graph
	order []int // vertex insertion order, for deterministic iteration
}

// New returns an empty interaction graph.
func New() *InteractionGraph {
	return &InteractionGraph{g: core.NewGraph(core.WithLoops())}
}

func vid(q int) string { return fmt.Sprintf("q%d", q) }

func (ig *InteractionGraph) ensureVertex(q int) {
	if !ig.g.HasVertex(vid(q)) {
		_ = ig.g.AddVertex(vid(q))
		ig.order = append(ig.order, q)
	}
}

// AddVertex registers q as a vertex even if it has no incident edges yet,
// so isolated vertices still appear in Vertices() (needed by callers such
// as the router that treat every atom as a candidate independent-set
// member regardless of degree).
func (ig *InteractionGraph) AddVertex(q int) { ig.ensureVertex(q) }

// AddEdge records a pending two-qubit interaction between a and b. Adding
// the same pair twice is a no-op (lvlath rejects the duplicate edge; the
// graph is not a multigraph).
func (ig *InteractionGraph) AddEdge(a, b int) error {
	if a == b {
		return fmt.Errorf("graphx: self-loop interaction on qubit %d", a)
	}
	ig.ensureVertex(a)
	ig.ensureVertex(b)
	if ig.g.HasEdge(vid(a), vid(b)) || ig.g.HasEdge(vid(b), vid(a)) {
		return nil
	}
	_, err := ig.g.AddEdge(vid(a), vid(b), 0)
	return err
}

// Vertices returns the qubit indices in insertion order.
func (ig *InteractionGraph) Vertices() []int {
	return append([]int(nil), ig.order...)
}

// Degree returns the number of distinct neighbors of v.
func (ig *InteractionGraph) Degree(v int) int {
	ids, err := ig.g.NeighborIDs(vid(v))
	if err != nil {
		return 0
	}
	return len(ids)
}

// Adjacent reports whether u and v share an edge.
func (ig *InteractionGraph) Adjacent(u, v int) bool {
	return ig.g.HasEdge(vid(u), vid(v)) || ig.g.HasEdge(vid(v), vid(u))
}

// Edges returns all edges in canonical form, sorted for determinism.
func (ig *InteractionGraph) Edges() []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, e := range ig.g.Edges() {
		a, b := idOf(e.From), idOf(e.To)
		c := canon(a, b)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// AdjacentEdges returns all edges incident to v.
func (ig *InteractionGraph) AdjacentEdges(v int) []Edge {
	ids, err := ig.g.NeighborIDs(vid(v))
	if err != nil {
		return nil
	}
	var out []Edge
	for _, id := range ids {
		out = append(out, canon(v, idOf(id)))
	}
	return out
}

// EdgesAdjacent reports whether edges e and f share an endpoint (so, as
// nodes of the line graph, e and f would conflict under a proper edge
// coloring).
func (ig *InteractionGraph) EdgesAdjacent(e, f Edge) bool {
	if e == f {
		return false
	}
	return e.Touches(f.A) || e.Touches(f.B)
}

func idOf(vertexID string) int {
	var q int
	_, _ = fmt.Sscanf(vertexID, "q%d", &q)
	return q
}
