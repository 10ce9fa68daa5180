package smt_test

import (
	"context"
	"testing"
	"time"

	"github.com/kegliz/naqc/na/smt"
	"github.com/kegliz/naqc/na/smt/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseProblem() smt.Problem {
	return smt.Problem{
		NumQubits:      2,
		NumStages:      2,
		Gates:          []smt.Gate{{Q0: 0, Q1: 1}},
		MaxX:           1,
		MaxY:           3,
		MaxC:           0,
		MaxR:           0,
		MaxOffset:      1,
		MinEntanglingY: 1,
		MaxEntanglingY: 2,

		MaxOffsetDeltaH: 1,
		MaxOffsetDeltaV: 1,
	}
}

// TestEncodeSmallInstanceSatisfiable: a small satisfiable two-qubit,
// two-stage instance (one Rydberg stage, one transfer stage) where the
// entangling y-range overlaps the coordinate grid. Two atoms with equal
// offsets may not share a grid position, so the gate needs the one-step
// offset range to put its operands at one position.
func TestEncodeSmallInstanceSatisfiable(t *testing.T) {
	p := baseProblem()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := smt.Run(ctx, p)
	require.NoError(t, err)
	require.True(t, res.Sat)
	require.Len(t, res.Stages, 2)
	assert.True(t, res.Stages[0].Rydberg)
	assert.False(t, res.Stages[1].Rydberg)

	gateStage := -1
	for _, s := range res.Stages {
		for _, gf := range s.Gates {
			gateStage = gf.Stage
		}
	}
	require.GreaterOrEqual(t, gateStage, 0)
	q0, q1 := res.Stages[gateStage].Qubits[0], res.Stages[gateStage].Qubits[1]
	assert.Equal(t, q0.X, q1.X)
	assert.Equal(t, q0.Y, q1.Y)
	assert.True(t, q0.Y >= p.MinEntanglingY && q0.Y <= p.MaxEntanglingY)
}

// TestEncodeUnsatisfiableWhenEntanglingRangeUnreachable: the configured
// entangling y-range lies entirely outside the coordinate grid, so no
// gate can ever be placed legally.
func TestEncodeUnsatisfiableWhenEntanglingRangeUnreachable(t *testing.T) {
	p := baseProblem()
	p.MinEntanglingY = 10
	p.MaxEntanglingY = 10
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := smt.Run(ctx, p)
	require.NoError(t, err)
	assert.False(t, res.Sat)
	assert.Empty(t, res.Stages)
}

// TestExtractStageZeroRydbergAndGateMembership exercises spec.md §8
// scenario 3's stage-0-Rydberg and gate-membership assertions directly
// against Extract, independent of solver search depth.
func TestExtractStageZeroRydbergAndGateMembership(t *testing.T) {
	p := baseProblem()
	assignment := model.Assignment{
		model.GateVar(0): 0,
	}
	for t := 0; t < p.NumStages; t++ {
		for i := 0; i < p.NumQubits; i++ {
			assignment[model.Coord("x", t, i)] = 0
			assignment[model.Coord("y", t, i)] = 1
			assignment[model.Coord("a", t, i)] = 0
			assignment[model.Coord("c", t, i)] = 0
			assignment[model.Coord("r", t, i)] = 0
			assignment[model.Coord("h", t, i)] = 0
			assignment[model.Coord("v", t, i)] = 0
		}
	}
	res := smt.Extract(p, assignment)
	require.True(t, res.Stages[0].Rydberg)
	require.Len(t, res.Stages[0].Gates, 1)
	gate := res.Stages[0].Gates[0]
	assert.Equal(t, [2]int{p.Gates[0].Q0, p.Gates[0].Q1}, gate.Qubits)
	for _, g := range p.Gates {
		assert.True(t, g.Q0 == gate.Qubits[0] || g.Q0 == gate.Qubits[1])
	}
}

// TestResultRoundTrip: serializing then deserializing a Result produces an
// equal value (spec.md §8 "SMT round-trip").
func TestResultRoundTrip(t *testing.T) {
	p := baseProblem()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := smt.Run(ctx, p)
	require.NoError(t, err)
	require.True(t, res.Sat)

	data, err := res.Marshal()
	require.NoError(t, err)
	back, err := smt.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, res, back)
}
