package circuitbuilder_test

import (
	"testing"

	"github.com/kegliz/naqc/na/circuitbuilder"
	"github.com/kegliz/naqc/na/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSimpleCircuit(t *testing.T) {
	c, err := circuitbuilder.New(circuitbuilder.Q(3)).
		H(0).
		CNOT(0, 1).
		CZ(1, 2).
		Measure(0).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumQubits)
	require.Len(t, c.Applications, 4)
	assert.Equal(t, "H", c.Applications[0].Op.Name())
	assert.Equal(t, []int{0, 1}, c.Applications[1].Qubits)
}

func TestOutOfRangeQubitBailsOnFirstError(t *testing.T) {
	_, err := circuitbuilder.New(circuitbuilder.Q(2)).
		H(0).
		X(5). // out of range, sets the builder's error
		CNOT(0, 1).
		Build()
	assert.Error(t, err)
}

func TestBuildTwiceErrors(t *testing.T) {
	builder := circuitbuilder.New(circuitbuilder.Q(1)).H(0)
	_, err := builder.Build()
	require.NoError(t, err)
	_, err = builder.Build()
	assert.ErrorIs(t, err, circuitbuilder.ErrBuild)
}

// steaneCode approximates the Steane [[7,1,3]] code's stabilizer circuit
// shape (its three weight-4 X stabilizers, each a chain of three CNOTs
// over the 7 data qubits, with no ancillas) closely enough to drive
// na/layer.Build and na/smt's test fixtures named in spec.md §8 — it is
// not a certified fault-tolerant circuit, just a representative
// two-qubit-gate workload of the right size and connectivity shape.
func steaneCode() circuitbuilder.Builder {
	b := circuitbuilder.New(circuitbuilder.Q(7))
	xStabilizers := [][]int{{0, 1, 2, 3}, {1, 2, 4, 5}, {2, 3, 5, 6}}
	for _, s := range xStabilizers {
		for i := 0; i+1 < len(s); i++ {
			b = b.CNOT(s[i], s[i+1])
		}
	}
	return b
}

// shor7 approximates the Shor 7-qubit code's encoding circuit shape
// (three blocks of CNOT fan-out plus cross-block Hadamards) at the same
// qubit count as steaneCode, for the contrasting SAT/UNSAT scenario
// named in spec.md §8.
func shor7() circuitbuilder.Builder {
	b := circuitbuilder.New(circuitbuilder.Q(7))
	b = b.CNOT(0, 3).CNOT(0, 6).H(0).H(3).H(6)
	for _, block := range [][2]int{{0, 1}, {0, 2}, {3, 4}, {3, 5}, {6, 1}, {6, 2}} {
		b = b.CNOT(block[0], block[1])
	}
	return b
}

func TestSteaneAndShor7FixturesBuildAndLayer(t *testing.T) {
	steane, err := steaneCode().Build()
	require.NoError(t, err)
	d := layer.Build(steane.NumQubits, steane.Applications)
	assert.NotEmpty(t, d.ExecutableSet())

	shor, err := shor7().Build()
	require.NoError(t, err)
	d2 := layer.Build(shor.NumQubits, shor.Applications)
	assert.NotEmpty(t, d2.ExecutableSet())
}
