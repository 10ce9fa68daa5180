package patch_test

import (
	"testing"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/patch"
	"github.com/kegliz/naqc/na/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchitecture(t *testing.T) *arch.Architecture {
	t.Helper()
	a, err := arch.New(
		"patch-test",
		[]arch.SLM{{ID: 1, Rows: 8, Cols: 8, BaseX: 0, BaseY: 0, DX: 1, DY: 1}},
		nil, nil, nil,
		1, 1, 1,
	)
	require.NoError(t, err)
	return a
}

func TestExpandReplicatesEachQubitOverPatchGrid(t *testing.T) {
	a := testArchitecture(t)
	p := placement.Placement{
		{SLMID: 1, Row: 0, Col: 0},
		{SLMID: 1, Row: 0, Col: 4},
	}

	m, err := patch.Expand(a, p, patch.Config{Rows: 2, Cols: 2})
	require.NoError(t, err)
	require.Len(t, m.Physical, 8) // 2 logical qubits * 2*2 patch
	assert.True(t, m.Physical.Disjoint())

	// first 4 replicas belong to qubit 0, next 4 to qubit 1.
	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, m.LogicalOf[i])
	}
	for i := 4; i < 8; i++ {
		assert.Equal(t, 1, m.LogicalOf[i])
	}

	// qubit 0's replicas occupy rows {0,1} and cols {0,1}.
	seenRows, seenCols := map[int]bool{}, map[int]bool{}
	for i := 0; i < 4; i++ {
		seenRows[m.Physical[i].Row] = true
		seenCols[m.Physical[i].Col] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true}, seenRows)
	assert.Equal(t, map[int]bool{0: true, 1: true}, seenCols)
}

func TestExpandRejectsInvalidConfig(t *testing.T) {
	a := testArchitecture(t)
	p := placement.Placement{{SLMID: 1, Row: 0, Col: 0}}
	_, err := patch.Expand(a, p, patch.Config{Rows: 0, Cols: 1})
	assert.Error(t, err)
}

func TestExpandDetectsOverlappingPatches(t *testing.T) {
	a := testArchitecture(t)
	// adjacent qubits one column apart: a 1x2 patch grid makes their
	// replicas collide.
	p := placement.Placement{
		{SLMID: 1, Row: 0, Col: 0},
		{SLMID: 1, Row: 0, Col: 1},
	}
	_, err := patch.Expand(a, p, patch.Config{Rows: 1, Cols: 2})
	assert.Error(t, err)
}

func TestExpandRejectsOutOfBoundsReplica(t *testing.T) {
	a := testArchitecture(t)
	p := placement.Placement{{SLMID: 1, Row: 7, Col: 7}}
	_, err := patch.Expand(a, p, patch.Config{Rows: 2, Cols: 1})
	assert.Error(t, err)
}

func TestExpandSequencePreservesStepOrder(t *testing.T) {
	a := testArchitecture(t)
	var seq placement.Sequence
	require.NoError(t, seq.Append(placement.Step{
		Kind:      placement.Initial,
		Placement: placement.Placement{{SLMID: 1, Row: 0, Col: 0}},
	}))
	require.NoError(t, seq.Append(placement.Step{
		Kind: placement.Execution, Layer: 0,
		Placement: placement.Placement{{SLMID: 1, Row: 1, Col: 0}},
	}))
	require.NoError(t, seq.Append(placement.Step{
		Kind: placement.Storage, Layer: 0,
		Placement: placement.Placement{{SLMID: 1, Row: 0, Col: 0}},
	}))

	mappings, err := patch.ExpandSequence(a, &seq, patch.Config{Rows: 1, Cols: 2})
	require.NoError(t, err)
	require.Len(t, mappings, 3)
	for _, m := range mappings {
		assert.Len(t, m.Physical, 2)
	}
}
