package layer_test

import (
	"testing"

	"github.com/kegliz/naqc/na/layer"
	"github.com/kegliz/naqc/na/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInitialExecutableSet(t *testing.T) {
	// H(0); CNOT(0,1); X(1) -- only the H starts executable: the CNOT
	// waits on the H, and the X waits on the CNOT.
	apps := []layer.Application{
		{Op: op.H(), Qubits: []int{0}},
		{Op: op.CNOT(), Qubits: []int{0, 1}},
		{Op: op.X(), Qubits: []int{1}},
	}
	d := layer.Build(2, apps)
	require.NotEmpty(t, d.Vertices)

	exec := d.ExecutableSet()
	require.NotEmpty(t, exec)
	// H(0) has no predecessor on qubit 0 and must be executable immediately.
	assert.Equal(t, "H", exec[0].Op.Name())
}

func TestExecuteAdvancesFrontier(t *testing.T) {
	apps := []layer.Application{
		{Op: op.H(), Qubits: []int{0}},
		{Op: op.CNOT(), Qubits: []int{0, 1}},
	}
	d := layer.Build(2, apps)
	exec := d.ExecutableSet()
	require.Len(t, exec, 1)
	h := exec[0]
	require.NoError(t, d.Execute(h))
	assert.True(t, h.Executed)

	// executing H should make the CNOT executable now.
	exec = d.ExecutableSet()
	require.Len(t, exec, 1)
	assert.Equal(t, "CNOT", exec[0].Op.Name())

	// a second Execute on an already-fired vertex must fail.
	assert.ErrorIs(t, d.Execute(h), layer.ErrNotExecutable)
}

func TestNonAdjacentInversesDoNotCancel(t *testing.T) {
	// X(0); Z(0); X(0): the inverse check only compares an op with the
	// next op on the same qubit, so the two X's do not cancel across the Z
	// and the Z becomes executable as soon as the first X fires.
	apps := []layer.Application{
		{Op: op.X(), Qubits: []int{0}},
		{Op: op.Z(), Qubits: []int{0}},
		{Op: op.X(), Qubits: []int{0}},
	}
	d := layer.Build(1, apps)
	exec := d.ExecutableSet()
	require.Len(t, exec, 1)
	assert.Equal(t, "X", exec[0].Op.Name())
	require.NoError(t, d.Execute(exec[0]))

	// the Z is the only executable vertex now; the second X waits on it.
	exec = d.ExecutableSet()
	require.Len(t, exec, 1)
	assert.Equal(t, "Z", exec[0].Op.Name())
}

// TestCommutationSymmetric checks the universal property of spec.md §8:
// op.Commutes must not depend on argument order.
func TestCommutationSymmetric(t *testing.T) {
	ops := []op.Op{op.X(), op.Z(), op.H(), op.CZ(), op.RZ(0.3), op.RY(0.1)}
	for _, a := range ops {
		for _, b := range ops {
			for _, aCtrl := range []bool{true, false} {
				for _, bCtrl := range []bool{true, false} {
					assert.Equal(t,
						op.Commutes(a, aCtrl, b, bCtrl),
						op.Commutes(b, bCtrl, a, aCtrl),
						"commutation must be symmetric for %s/%s", a.Name(), b.Name())
				}
			}
		}
	}
}

// TestDAGAcyclic checks the universal property of spec.md §8 indirectly:
// repeatedly executing the whole executable set must drain every vertex in
// a bounded number of rounds (len(Vertices)), which is only possible if the
// enabled/disabled successor adjacency is acyclic.
func TestDAGAcyclic(t *testing.T) {
	apps := []layer.Application{
		{Op: op.H(), Qubits: []int{0}},
		{Op: op.CNOT(), Qubits: []int{0, 1}},
		{Op: op.X(), Qubits: []int{1}},
		{Op: op.CZ(), Qubits: []int{1, 0}},
	}
	d := layer.Build(2, apps)

	executed := make(map[*layer.Vertex]bool)
	for round := 0; round < len(d.Vertices)+1 && len(executed) < len(d.Vertices); round++ {
		for _, v := range d.ExecutableSet() {
			require.NoError(t, d.Execute(v))
			executed[v] = true
		}
	}
	assert.Len(t, executed, len(d.Vertices), "DAG failed to drain: a cycle would deadlock it")
}
