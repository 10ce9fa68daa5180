package op_test

import (
	"testing"

	"github.com/kegliz/naqc/na/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryAliases(t *testing.T) {
	g, err := op.Factory("cx")
	require.NoError(t, err)
	assert.Equal(t, op.CNOT(), g)

	_, err = op.Factory("nope")
	assert.Error(t, err)
	var unk op.ErrUnknownOp
	assert.ErrorAs(t, err, &unk)
}

func TestSelfInverse(t *testing.T) {
	assert.True(t, op.IsInverseOf(op.X(), op.X()))
	assert.True(t, op.IsInverseOf(op.H(), op.H()))
	assert.False(t, op.IsInverseOf(op.X(), op.Y()))
}

func TestDaggerPairs(t *testing.T) {
	assert.True(t, op.IsInverseOf(op.S(), op.Sdg()))
	assert.True(t, op.IsInverseOf(op.Sdg(), op.S()))
	assert.False(t, op.IsInverseOf(op.S(), op.S()))
}

func TestRotationInverse(t *testing.T) {
	assert.True(t, op.IsInverseOf(op.RZ(0.5), op.RZ(-0.5)))
	assert.False(t, op.IsInverseOf(op.RZ(0.5), op.RZ(0.5)))
	assert.False(t, op.IsInverseOf(op.RZ(0.5), op.RX(-0.5)))
}

func TestCommutesSymmetric(t *testing.T) {
	// control vs. target with diagonal target: commutes regardless of order
	assert.True(t, op.Commutes(op.CZ(), true, op.Z(), false))
	assert.True(t, op.Commutes(op.Z(), false, op.CZ(), true))
	// control vs. non-diagonal target: does not commute
	assert.False(t, op.Commutes(op.CNOT(), true, op.X(), false))
}

func TestCommutesBothTargets(t *testing.T) {
	assert.True(t, op.Commutes(op.Z(), false, op.S(), false))
	assert.True(t, op.Commutes(op.X(), false, op.X(), false))
	assert.False(t, op.Commutes(op.X(), false, op.Z(), false))
}

func TestCompoundChildren(t *testing.T) {
	c := op.NewCompound("CCZ", 3, []int{2}, []int{0, 1}, []op.Op{op.H(), op.CZ(), op.H()})
	require.Equal(t, op.CompoundOp, c.Kind())
	children, ok := c.(op.Children)
	require.True(t, ok)
	assert.Len(t, children.Children(), 3)
}
