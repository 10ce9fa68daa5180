package router_test

import (
	"testing"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRouteOvertakeSingleGroup: four atoms on the same row, shifting right
// together in lockstep, preserve relative column order end-to-end, so the
// whole set is one legal AOD move group.
func TestRouteOvertakeSingleGroup(t *testing.T) {
	atoms := []int{0, 1, 2, 3}
	start := map[int]arch.Site{
		0: {SLMID: 1, Row: 0, Col: 0},
		1: {SLMID: 1, Row: 0, Col: 1},
		2: {SLMID: 1, Row: 0, Col: 2},
		3: {SLMID: 1, Row: 0, Col: 3},
	}
	end := map[int]arch.Site{
		0: {SLMID: 1, Row: 0, Col: 1},
		1: {SLMID: 1, Row: 0, Col: 2},
		2: {SLMID: 1, Row: 0, Col: 3},
		3: {SLMID: 1, Row: 0, Col: 4},
	}
	step := router.Route(atoms, start, end)
	require.Len(t, step.Groups, 1)
	assert.ElementsMatch(t, atoms, step.Groups[0].Qubits)
}

// TestRouteCrossTwoGroups: two atoms swap column order between start and
// end, violating the AOD relative-order constraint, so they cannot share
// a move group.
func TestRouteCrossTwoGroups(t *testing.T) {
	atoms := []int{0, 1}
	start := map[int]arch.Site{
		0: {SLMID: 1, Row: 0, Col: 0},
		1: {SLMID: 1, Row: 0, Col: 1},
	}
	end := map[int]arch.Site{
		0: {SLMID: 1, Row: 0, Col: 1},
		1: {SLMID: 1, Row: 0, Col: 0},
	}
	step := router.Route(atoms, start, end)
	require.Len(t, step.Groups, 2)
	for _, g := range step.Groups {
		assert.Len(t, g.Qubits, 1)
	}
}
