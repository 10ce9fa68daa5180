package codegen_test

import (
	"fmt"
	"testing"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/codegen"
	"github.com/kegliz/naqc/na/op"
	"github.com/kegliz/naqc/na/placement"
	"github.com/kegliz/naqc/na/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArchitecture(t *testing.T) *arch.Architecture {
	t.Helper()
	storage := []arch.SLM{{ID: 1, Rows: 1, Cols: 4, BaseX: 0, BaseY: 0, DX: 1, DY: 1}}
	ent := []arch.SLM{
		{ID: 2, Rows: 1, Cols: 1, BaseX: 10, BaseY: 0, DX: 1, DY: 1},
		{ID: 3, Rows: 1, Cols: 1, BaseX: 11, BaseY: 0, DX: 1, DY: 1},
	}
	a, err := arch.New("test", storage, ent, nil, nil, 1, 1, 1)
	require.NoError(t, err)
	return a
}

func qubitName(q int) string { return fmt.Sprintf("q%d", q) }

func TestEmitInitialAndLayerRoundTrip(t *testing.T) {
	a := testArchitecture(t)

	var seq placement.Sequence
	initial := placement.New(2)
	initial[0] = arch.Site{SLMID: 1, Row: 0, Col: 0}
	initial[1] = arch.Site{SLMID: 1, Row: 0, Col: 1}
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Initial, Placement: initial}))

	exec := placement.New(2)
	exec[0] = arch.Site{SLMID: 2, Row: 0, Col: 0}
	exec[1] = arch.Site{SLMID: 3, Row: 0, Col: 0}
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Execution, Layer: 0, Placement: exec}))

	storage := placement.New(2)
	storage[0] = arch.Site{SLMID: 1, Row: 0, Col: 0}
	storage[1] = arch.Site{SLMID: 1, Row: 0, Col: 1}
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Storage, Layer: 0, Placement: storage}))

	toExec := routing.Step{Groups: []routing.Group{{
		Qubits: []int{0, 1},
		Start:  map[int]arch.Site{0: initial[0], 1: initial[1]},
		End:    map[int]arch.Site{0: exec[0], 1: exec[1]},
	}}}
	toStorage := routing.Step{Groups: []routing.Group{{
		Qubits: []int{0, 1},
		Start:  map[int]arch.Site{0: exec[0], 1: exec[1]},
		End:    map[int]arch.Site{0: storage[0], 1: storage[1]},
	}}}
	require.True(t, toExec.Groups[0].Legal())
	require.True(t, toStorage.Groups[0].Legal())

	layer := codegen.Layer{
		Index:    0,
		ZoneName: "ent0",
		SingleQubitOps: []codegen.QubitOp{
			{Qubit: 0, Op: op.H()},
			{Qubit: 1, Op: op.RZ(1.5)},
		},
	}

	asm := codegen.New(a, codegen.Config{WarnUnsupportedGates: true}, qubitName)
	lines, err := asm.Emit(&seq, []routing.Step{toExec, toStorage}, []codegen.Layer{layer})
	require.NoError(t, err)
	require.NotEmpty(t, lines)

	assert.Contains(t, lines, "atom (0.000, 0.000) q0")
	assert.Contains(t, lines, "atom (1.000, 0.000) q1")
	assert.Contains(t, lines, "@+ cz ent0")
	assert.Contains(t, lines, "@+ u 1.57080 0.00000 3.14159 q0")
	assert.Contains(t, lines, "@+ rz 1.50000 q1")

	foundLoad, foundStore := false, false
	for _, l := range lines {
		if l == "@+ load [q0, q1]" {
			foundLoad = true
		}
		if l == "@+ store [q0, q1]" {
			foundStore = true
		}
	}
	assert.True(t, foundLoad)
	assert.True(t, foundStore)
	assert.Empty(t, asm.Warnings)
}

func TestUnsupportedGateWarnsWhenConfigured(t *testing.T) {
	a := testArchitecture(t)
	var seq placement.Sequence
	initial := placement.New(1)
	initial[0] = arch.Site{SLMID: 1, Row: 0, Col: 0}
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Initial, Placement: initial}))
	exec := placement.New(1)
	exec[0] = arch.Site{SLMID: 1, Row: 0, Col: 1}
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Execution, Layer: 0, Placement: exec}))
	storage := initial.Clone()
	require.NoError(t, seq.Append(placement.Step{Kind: placement.Storage, Layer: 0, Placement: storage}))

	moveStep := routing.Step{Groups: []routing.Group{{
		Qubits: []int{0},
		Start:  map[int]arch.Site{0: initial[0]},
		End:    map[int]arch.Site{0: exec[0]},
	}}}
	backStep := routing.Step{Groups: []routing.Group{{
		Qubits: []int{0},
		Start:  map[int]arch.Site{0: exec[0]},
		End:    map[int]arch.Site{0: storage[0]},
	}}}

	layer := codegen.Layer{Index: 0, SingleQubitOps: []codegen.QubitOp{{Qubit: 0, Op: op.RX(0.1)}}}
	asm := codegen.New(a, codegen.Config{WarnUnsupportedGates: true}, qubitName)
	lines, err := asm.Emit(&seq, []routing.Step{moveStep, backStep}, []codegen.Layer{layer})
	require.NoError(t, err)
	assert.Contains(t, lines[len(lines)-1], "q0")
	assert.Empty(t, asm.Warnings) // RX has a fixed rewrite, so this is not actually unsupported

	layer2 := codegen.Layer{Index: 0, SingleQubitOps: []codegen.QubitOp{{Qubit: 0, Op: op.Measure()}}}
	asm2 := codegen.New(a, codegen.Config{WarnUnsupportedGates: true}, qubitName)
	_, err = asm2.Emit(&seq, []routing.Step{moveStep, backStep}, []codegen.Layer{layer2})
	require.NoError(t, err)
	assert.Len(t, asm2.Warnings, 1)

	asm3 := codegen.New(a, codegen.Config{WarnUnsupportedGates: false}, qubitName)
	_, err = asm3.Emit(&seq, []routing.Step{moveStep, backStep}, []codegen.Layer{layer2})
	assert.Error(t, err)
	var unsupported codegen.ErrUnsupportedGate
	assert.ErrorAs(t, err, &unsupported)
}
