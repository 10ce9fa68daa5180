package main

import (
	"encoding/json"
	"fmt"

	"github.com/kegliz/naqc/na/layer"
	"github.com/kegliz/naqc/na/op"
)

// circuitFile is the CLI's input circuit format: a flat, ordered list of
// gate applications. spec.md names no on-disk circuit format of its own
// (circuits are built programmatically via na/circuitbuilder in every
// spec.md §8 scenario), so this mirrors na/circuitbuilder's own
// name/qubits/params shape rather than inventing a parallel DSL.
type circuitFile struct {
	NumQubits int             `json:"numQubits"`
	Gates     []circuitFileOp `json:"gates"`
}

type circuitFileOp struct {
	Op     string    `json:"op"`
	Qubits []int     `json:"qubits"`
	Params []float64 `json:"params,omitempty"`
}

func decodeCircuit(data []byte) (int, []layer.Application, error) {
	var cf circuitFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return 0, nil, fmt.Errorf("circuit: decoding: %w", err)
	}
	apps := make([]layer.Application, len(cf.Gates))
	for i, g := range cf.Gates {
		o, err := opFromFile(g)
		if err != nil {
			return 0, nil, fmt.Errorf("circuit: gate %d: %w", i, err)
		}
		apps[i] = layer.Application{Op: o, Qubits: g.Qubits}
	}
	return cf.NumQubits, apps, nil
}

func opFromFile(g circuitFileOp) (op.Op, error) {
	switch g.Op {
	case "RX":
		return requireParam(g, 1, func(p []float64) op.Op { return op.RX(p[0]) })
	case "RY":
		return requireParam(g, 1, func(p []float64) op.Op { return op.RY(p[0]) })
	case "RZ":
		return requireParam(g, 1, func(p []float64) op.Op { return op.RZ(p[0]) })
	case "RZZ":
		return requireParam(g, 1, func(p []float64) op.Op { return op.RZZ(p[0]) })
	case "U":
		return requireParam(g, 3, func(p []float64) op.Op { return op.U(p[0], p[1], p[2]) })
	default:
		return op.Factory(g.Op)
	}
}

func requireParam(g circuitFileOp, n int, build func([]float64) op.Op) (op.Op, error) {
	if len(g.Params) != n {
		return nil, fmt.Errorf("op %s: expected %d parameter(s), got %d", g.Op, n, len(g.Params))
	}
	return build(g.Params), nil
}
