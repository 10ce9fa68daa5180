package graphx_test

import (
	"testing"

	"github.com/kegliz/naqc/na/graphx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func path(t *testing.T, edges [][2]int) *graphx.InteractionGraph {
	t.Helper()
	g := graphx.New()
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

func TestMaxIndependentSetStar(t *testing.T) {
	// hub 0 connected to 1,2,3: greedy degree-descending selection takes
	// the hub first, which removes every leaf.
	g := path(t, [][2]int{{0, 1}, {0, 2}, {0, 3}})
	mis := graphx.MaxIndependentSet(g)
	assert.ElementsMatch(t, []int{0}, mis)
}

func TestCoveredEdges(t *testing.T) {
	g := path(t, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	edges := graphx.CoveredEdges(g, []int{1})
	assert.ElementsMatch(t, []graphx.Edge{{A: 0, B: 1}, {A: 1, B: 2}}, edges)
}

func TestGroupByComponent(t *testing.T) {
	// two disjoint edges: {0,1} and {2,3}.
	g := path(t, [][2]int{{0, 1}, {2, 3}})
	grouped := graphx.GroupByComponent(g, []int{2, 0, 3, 1})
	// components stay contiguous and preserve relative input order.
	assert.Equal(t, []int{2, 3, 0, 1}, grouped)
}

func TestColorEdgesProperColoring(t *testing.T) {
	// 0-1, 0-2 share vertex 0: must receive different colors.
	g := path(t, [][2]int{{0, 1}, {0, 2}})
	edges := graphx.CoveredEdges(g, []int{1, 2})
	coloring, _, err := graphx.ColorEdges(g, edges, []int{1, 2})
	require.NoError(t, err)
	assert.NotEqual(t, coloring[graphx.Edge{A: 0, B: 1}], coloring[graphx.Edge{A: 0, B: 2}])
}

func TestComputeSequenceRuns(t *testing.T) {
	g := path(t, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	moveable, fixed, err := graphx.ComputeSequence(g)
	require.NoError(t, err)
	assert.NotEmpty(t, moveable)
	assert.NotEmpty(t, fixed)
}
