package placement_test

import (
	"testing"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisjoint(t *testing.T) {
	p := placement.Placement{{SLMID: 1, Row: 0, Col: 0}, {SLMID: 1, Row: 0, Col: 1}}
	assert.True(t, p.Disjoint())
	p = append(p, arch.Site{SLMID: 1, Row: 0, Col: 0})
	assert.False(t, p.Disjoint())
}

func TestSequenceOrdering(t *testing.T) {
	var seq placement.Sequence
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Initial, Placement: placement.New(2)}))
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Execution, Layer: 0, Placement: placement.New(2)}))
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Storage, Layer: 0, Placement: placement.New(2)}))

	// storage must directly follow its own layer's execution
	err := seq.Append(placement.Step{Kind: placement.Storage, Layer: 1, Placement: placement.New(2)})
	assert.Error(t, err)

	require.NoError(t, seq.Append(placement.Step{Kind: placement.Execution, Layer: 1, Placement: placement.New(2)}))
	assert.Equal(t, 4, seq.Len())
}

func TestSequenceMustStartInitial(t *testing.T) {
	var seq placement.Sequence
	err := seq.Append(placement.Step{Kind: placement.Execution, Layer: 0, Placement: placement.New(1)})
	assert.Error(t, err)
}
