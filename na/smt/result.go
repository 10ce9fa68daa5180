package smt

import (
	"encoding/json"

	"github.com/kegliz/naqc/na/smt/model"
)

// QubitRecord is one qubit's full state variable set at a stage, per
// spec.md §6's SMT result serialization.
type QubitRecord struct {
	X int `json:"x"`
	Y int `json:"y"`
	A int `json:"a"`
	C int `json:"c"`
	R int `json:"r"`
	H int `json:"h"`
	V int `json:"v"`
}

// GateFiring names one gate firing at a stage.
type GateFiring struct {
	Stage  int   `json:"stage"`
	Qubits [2]int `json:"qubits"`
}

// Stage is one entry of a Result's stage list.
type Stage struct {
	Rydberg bool          `json:"rydberg"`
	Qubits  []QubitRecord `json:"qubits"`
	Gates   []GateFiring  `json:"gates"`
}

// Result is the structured solve outcome of spec.md §6: a top-level sat
// flag and, if sat, the per-stage qubit states and firing gate sets.
type Result struct {
	Sat    bool    `json:"sat"`
	Stages []Stage `json:"stages,omitempty"`
}

// Extract reads a satisfying assignment of p's encoding into a Result. It
// must be called with the same Problem that produced m via Encode.
func Extract(p Problem, assignment model.Assignment) Result {
	rydberg := rydbergStages(p.NumStages)
	isRyd := make(map[int]bool, len(rydberg))
	for _, t := range rydberg {
		isRyd[t] = true
	}

	stages := make([]Stage, p.NumStages)
	for t := 0; t < p.NumStages; t++ {
		st := Stage{Rydberg: isRyd[t]}
		st.Qubits = make([]QubitRecord, p.NumQubits)
		for i := 0; i < p.NumQubits; i++ {
			st.Qubits[i] = QubitRecord{
				X: assignment[xVar(t, i)],
				Y: assignment[yVar(t, i)],
				A: assignment[aVar(t, i)],
				C: assignment[cVar(t, i)],
				R: assignment[rVar(t, i)],
				H: assignment[hVar(t, i)],
				V: assignment[vVar(t, i)],
			}
		}
		for g, gate := range p.Gates {
			if assignment[model.GateVar(g)] == t {
				st.Gates = append(st.Gates, GateFiring{Stage: t, Qubits: [2]int{gate.Q0, gate.Q1}})
			}
		}
		stages[t] = st
	}
	return Result{Sat: true, Stages: stages}
}

// Marshal and Unmarshal implement the round-trippable serialization of
// spec.md §6: a plain JSON document with a "sat" boolean and an optional
// "stages" list.
func (r Result) Marshal() ([]byte, error) { return json.Marshal(r) }

func Unmarshal(data []byte) (Result, error) {
	var r Result
	err := json.Unmarshal(data, &r)
	return r, err
}
