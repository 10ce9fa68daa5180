// Package smt encodes a placement-and-routing problem as the bit-vector
// model of spec.md §4.5 and discharges it with a bounded backtracking
// solver (see solver.go for why no Z3/SMT-library binding is wired: no
// example repository in the reference corpus imports one).
package smt

import (
	"github.com/kegliz/naqc/na/smt/model"
)

// Gate is one two-qubit operand pair from the input circuit, in circuit
// order (needed for the mind-ops-order option).
type Gate struct {
	Q0, Q1 int
}

// Problem is the fully discretized instance spec.md §4.5 describes: a
// fixed number of qubits and stages, an entangling y-range, and the
// architecture's coordinate/offset bounds.
type Problem struct {
	NumQubits int
	NumStages int
	Gates     []Gate

	MaxX, MaxY int
	MaxC, MaxR int
	MaxOffset  int // h, v range is [-MaxOffset, MaxOffset]

	MinEntanglingY, MaxEntanglingY int
	MaxOffsetDeltaH, MaxOffsetDeltaV int // configured maxima for |h_i - h_j|, |v_i - v_j| at a gate

	MindOpsOrder    bool
	ShieldIdleAtoms bool
}

// rydbergStages returns every stage index that is a Rydberg stage under
// the fixed alternating-parity mode (stage 0 is always Rydberg, per
// spec.md §8 scenario 3).
func rydbergStages(numStages int) []int {
	var out []int
	for t := 0; t < numStages; t++ {
		if t%2 == 0 {
			out = append(out, t)
		}
	}
	return out
}

func isRydberg(t int) bool { return t%2 == 0 }

// varnames for the per-stage/qubit state variables of spec.md §4.5.
func xVar(t, i int) model.VarID { return model.Coord("x", t, i) }
func yVar(t, i int) model.VarID { return model.Coord("y", t, i) }
func aVar(t, i int) model.VarID { return model.Coord("a", t, i) }
func cVar(t, i int) model.VarID { return model.Coord("c", t, i) }
func rVar(t, i int) model.VarID { return model.Coord("r", t, i) }
func hVar(t, i int) model.VarID { return model.Coord("h", t, i) }
func vVar(t, i int) model.VarID { return model.Coord("v", t, i) }

func loadCol(t, k int) model.VarID  { return model.StageVar("load_col", t, k) }
func loadRow(t, k int) model.VarID  { return model.StageVar("load_row", t, k) }
func storeCol(t, k int) model.VarID { return model.StageVar("store_col", t, k) }
func storeRow(t, k int) model.VarID { return model.StageVar("store_row", t, k) }

// loadVars/storeVars list every load_col/load_row (resp. store_col/
// store_row) variable declared for stage t, so a Func constraint that
// indexes one of them by a data-dependent column/row value still
// declares its full potential read set to the solver.
func loadVars(t int, p Problem) []model.VarID {
	out := make([]model.VarID, 0, p.MaxC+p.MaxR+2)
	for k := 0; k <= p.MaxC; k++ {
		out = append(out, loadCol(t, k))
	}
	for k := 0; k <= p.MaxR; k++ {
		out = append(out, loadRow(t, k))
	}
	return out
}

func storeVars(t int, p Problem) []model.VarID {
	out := make([]model.VarID, 0, p.MaxC+p.MaxR+2)
	for k := 0; k <= p.MaxC; k++ {
		out = append(out, storeCol(t, k))
	}
	for k := 0; k <= p.MaxR; k++ {
		out = append(out, storeRow(t, k))
	}
	return out
}

// Encode builds the declarative model.Model for p.
func Encode(p Problem) *model.Model {
	m := model.New()

	// Gate stage variables are declared first, so the solver fixes each
	// gate's stage before it assigns any coordinates.
	rydberg := rydbergStages(p.NumStages)
	for g := range p.Gates {
		m.AddVar(model.GateVar(g), model.Domain{Lo: 0, Hi: p.NumStages - 1})
		m.Assert(model.OneOf{V: model.GateVar(g), Values: rydberg})
	}

	for t := 0; t < p.NumStages; t++ {
		for i := 0; i < p.NumQubits; i++ {
			m.AddVar(xVar(t, i), model.Domain{Lo: 0, Hi: p.MaxX})
			m.AddVar(yVar(t, i), model.Domain{Lo: 0, Hi: p.MaxY})
			m.AddBoolVar(aVar(t, i))
			m.AddVar(cVar(t, i), model.Domain{Lo: 0, Hi: p.MaxC})
			m.AddVar(rVar(t, i), model.Domain{Lo: 0, Hi: p.MaxR})
			m.AddVar(hVar(t, i), model.Domain{Lo: -p.MaxOffset, Hi: p.MaxOffset})
			m.AddVar(vVar(t, i), model.Domain{Lo: -p.MaxOffset, Hi: p.MaxOffset})
		}
		for k := 0; k <= p.MaxC; k++ {
			m.AddBoolVar(loadCol(t, k))
			m.AddBoolVar(storeCol(t, k))
		}
		for k := 0; k <= p.MaxR; k++ {
			m.AddBoolVar(loadRow(t, k))
			m.AddBoolVar(storeRow(t, k))
		}
	}

	encodeStageValidity(m, p)
	encodeStageTransitions(m, p)
	encodeCircuitExecution(m, p, rydberg)
	if p.MindOpsOrder {
		encodeMindOpsOrder(m, p)
	}
	if p.ShieldIdleAtoms {
		encodeShieldIdleAtoms(m, p, rydberg)
	}

	return m
}

// encodeStageValidity asserts the per-stage rules of spec.md §4.5 that do
// not span a stage transition: SLM-held atoms have zeroed AOD fields, AOD
// ordering within a stage is lexicographic in (x,h)/(y,v) vs (c,r), and
// atoms sharing an offset pair occupy distinct grid sites.
func encodeStageValidity(m *model.Model, p Problem) {
	for t := 0; t < p.NumStages; t++ {
		for i := 0; i < p.NumQubits; i++ {
			i := i
			vars := []model.VarID{aVar(t, i), cVar(t, i), rVar(t, i), hVar(t, i), vVar(t, i)}
			m.Assert(model.Func{
				VarsList: vars,
				Pred: func(a model.Assignment) bool {
					if a[aVar(t, i)] != 0 {
						return true
					}
					return a[cVar(t, i)] == 0 && a[rVar(t, i)] == 0 && a[hVar(t, i)] == 0 && a[vVar(t, i)] == 0
				},
			})
		}
		for i := 0; i < p.NumQubits; i++ {
			for j := i + 1; j < p.NumQubits; j++ {
				i, j := i, j
				m.Assert(model.Func{
					VarsList: []model.VarID{
						aVar(t, i), aVar(t, j),
						xVar(t, i), xVar(t, j), hVar(t, i), hVar(t, j), cVar(t, i), cVar(t, j),
						yVar(t, i), yVar(t, j), vVar(t, i), vVar(t, j), rVar(t, i), rVar(t, j),
					},
					Pred: func(a model.Assignment) bool {
						if a[aVar(t, i)] == 0 || a[aVar(t, j)] == 0 {
							return true
						}
						xhLess := lexLess(a[xVar(t, i)], a[hVar(t, i)], a[xVar(t, j)], a[hVar(t, j)])
						if xhLess != (a[cVar(t, i)] < a[cVar(t, j)]) {
							return false
						}
						yvLess := lexLess(a[yVar(t, i)], a[vVar(t, i)], a[yVar(t, j)], a[vVar(t, j)])
						if yvLess != (a[rVar(t, i)] < a[rVar(t, j)]) {
							return false
						}
						return true
					},
				})
				m.Assert(model.Func{
					VarsList: []model.VarID{
						hVar(t, i), hVar(t, j), vVar(t, i), vVar(t, j),
						xVar(t, i), xVar(t, j), yVar(t, i), yVar(t, j),
					},
					Pred: func(a model.Assignment) bool {
						if a[hVar(t, i)] != a[hVar(t, j)] || a[vVar(t, i)] != a[vVar(t, j)] {
							return true
						}
						return a[xVar(t, i)] != a[xVar(t, j)] || a[yVar(t, i)] != a[yVar(t, j)]
					},
				})
			}
		}
	}
}

func lexLess(a1, a2, b1, b2 int) bool {
	if a1 != b1 {
		return a1 < b1
	}
	return a2 < b2
}

// encodeStageTransitions asserts the Rydberg-stage and transfer-stage
// transition rules between every consecutive pair of stages.
func encodeStageTransitions(m *model.Model, p Problem) {
	for t := 0; t < p.NumStages-1; t++ {
		t := t
		for i := 0; i < p.NumQubits; i++ {
			i := i
			if isRydberg(t) {
				m.Assert(model.EqVar{A: aVar(t, i), B: aVar(t+1, i)})
				m.Assert(model.Func{
					VarsList: []model.VarID{aVar(t, i), cVar(t, i), cVar(t+1, i), rVar(t, i), rVar(t+1, i)},
					Pred: func(a model.Assignment) bool {
						if a[aVar(t, i)] == 0 {
							return true
						}
						return a[cVar(t, i)] == a[cVar(t+1, i)] && a[rVar(t, i)] == a[rVar(t+1, i)]
					},
				})
				m.Assert(model.Func{
					VarsList: []model.VarID{aVar(t, i), xVar(t, i), xVar(t+1, i), yVar(t, i), yVar(t+1, i)},
					Pred: func(a model.Assignment) bool {
						if a[aVar(t, i)] != 0 {
							return true
						}
						return a[xVar(t, i)] == a[xVar(t+1, i)] && a[yVar(t, i)] == a[yVar(t+1, i)]
					},
				})
			} else {
				m.Assert(model.Func{
					VarsList: []model.VarID{aVar(t, i), aVar(t+1, i), xVar(t, i), xVar(t+1, i), yVar(t, i), yVar(t+1, i)},
					Pred: func(a model.Assignment) bool {
						if a[aVar(t, i)] != 0 || a[aVar(t+1, i)] != 0 {
							return true
						}
						return a[xVar(t, i)] == a[xVar(t+1, i)] && a[yVar(t, i)] == a[yVar(t+1, i)]
					},
				})
				m.Assert(model.Func{
					VarsList: []model.VarID{aVar(t, i), aVar(t+1, i), hVar(t, i), vVar(t, i)},
					Pred: func(a model.Assignment) bool {
						if a[aVar(t, i)] == a[aVar(t+1, i)] {
							return true
						}
						return a[hVar(t, i)] == 0 && a[vVar(t, i)] == 0
					},
				})
				m.Assert(model.Func{
					VarsList: append([]model.VarID{aVar(t, i), aVar(t+1, i), cVar(t+1, i), rVar(t+1, i)}, loadVars(t, p)...),
					Pred: func(a model.Assignment) bool {
						if !(a[aVar(t, i)] == 0 && a[aVar(t+1, i)] == 1) {
							return true
						}
						return a[loadCol(t, a[cVar(t+1, i)])] == 1 || a[loadRow(t, a[rVar(t+1, i)])] == 1
					},
				})
				m.Assert(model.Func{
					VarsList: append([]model.VarID{aVar(t, i), aVar(t+1, i), cVar(t, i), rVar(t, i)}, storeVars(t, p)...),
					Pred: func(a model.Assignment) bool {
						if !(a[aVar(t, i)] == 1 && a[aVar(t+1, i)] == 0) {
							return true
						}
						return a[storeCol(t, a[cVar(t, i)])] == 1 || a[storeRow(t, a[rVar(t, i)])] == 1
					},
				})
			}
		}
	}
}

// gateVarsForAllRydbergStages lists every variable a gate-g circuit
// constraint might read: the gate's own stage variable plus the
// coordinate/offset variables of its two operands at every Rydberg stage.
func gateVarsForAllRydbergStages(g int, q0, q1 int, rydberg []int) []model.VarID {
	vars := []model.VarID{model.GateVar(g)}
	for _, t := range rydberg {
		vars = append(vars,
			xVar(t, q0), xVar(t, q1), yVar(t, q0), yVar(t, q1),
			hVar(t, q0), hVar(t, q1), vVar(t, q0), vVar(t, q1),
		)
	}
	return vars
}

// encodeCircuitExecution asserts that, at the stage each gate fires, its
// operands share a position, lie in the entangling y-range, and satisfy
// the configured offset-delta maxima; plus the global rule that every
// entangling-range pair not gated this stage occupies distinct positions.
func encodeCircuitExecution(m *model.Model, p Problem, rydberg []int) {
	for g, gate := range p.Gates {
		g, q0, q1 := g, gate.Q0, gate.Q1
		m.Assert(model.Func{
			VarsList: gateVarsForAllRydbergStages(g, q0, q1, rydberg),
			Pred: func(a model.Assignment) bool {
				t := a[model.GateVar(g)]
				if a[xVar(t, q0)] != a[xVar(t, q1)] || a[yVar(t, q0)] != a[yVar(t, q1)] {
					return false
				}
				if !inRange(a[yVar(t, q0)], p.MinEntanglingY, p.MaxEntanglingY) {
					return false
				}
				if !inRange(a[yVar(t, q1)], p.MinEntanglingY, p.MaxEntanglingY) {
					return false
				}
				if absDiff(a[hVar(t, q0)], a[hVar(t, q1)]) > p.MaxOffsetDeltaH {
					return false
				}
				if absDiff(a[vVar(t, q0)], a[vVar(t, q1)]) > p.MaxOffsetDeltaV {
					return false
				}
				return true
			},
		})
	}

	for _, t := range rydberg {
		t := t
		for i := 0; i < p.NumQubits; i++ {
			for j := i + 1; j < p.NumQubits; j++ {
				i, j := i, j
				vars := []model.VarID{xVar(t, i), xVar(t, j), yVar(t, i), yVar(t, j)}
				for g := range p.Gates {
					vars = append(vars, model.GateVar(g))
				}
				m.Assert(model.Func{
					VarsList: vars,
					Pred: func(a model.Assignment) bool {
						if !inRange(a[yVar(t, i)], p.MinEntanglingY, p.MaxEntanglingY) {
							return true
						}
						if !inRange(a[yVar(t, j)], p.MinEntanglingY, p.MaxEntanglingY) {
							return true
						}
						for g, gate := range p.Gates {
							if a[model.GateVar(g)] != t {
								continue
							}
							if (gate.Q0 == i && gate.Q1 == j) || (gate.Q0 == j && gate.Q1 == i) {
								return true
							}
						}
						return a[xVar(t, i)] != a[xVar(t, j)] || a[yVar(t, i)] != a[yVar(t, j)]
					},
				})
			}
		}
	}
}

func inRange(v, lo, hi int) bool { return v >= lo && v <= hi }

func absDiff(a, b int) int {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// encodeMindOpsOrder asserts that, for any two gates sharing a qubit,
// the one appearing first in circuit order fires at an earlier stage.
func encodeMindOpsOrder(m *model.Model, p Problem) {
	for g1 := 0; g1 < len(p.Gates); g1++ {
		for g2 := g1 + 1; g2 < len(p.Gates); g2++ {
			a, b := p.Gates[g1], p.Gates[g2]
			if a.Q0 == b.Q0 || a.Q0 == b.Q1 || a.Q1 == b.Q0 || a.Q1 == b.Q1 {
				m.Assert(model.LessVar{A: model.GateVar(g1), B: model.GateVar(g2)})
			}
		}
	}
}

// encodeShieldIdleAtoms asserts that, in every Rydberg stage, a qubit
// hosting no gate that stage lies outside the entangling y-range.
func encodeShieldIdleAtoms(m *model.Model, p Problem, rydberg []int) {
	for _, t := range rydberg {
		t := t
		for i := 0; i < p.NumQubits; i++ {
			i := i
			vars := []model.VarID{yVar(t, i)}
			for g := range p.Gates {
				vars = append(vars, model.GateVar(g))
			}
			m.Assert(model.Func{
				VarsList: vars,
				Pred: func(a model.Assignment) bool {
					for g, gate := range p.Gates {
						if a[model.GateVar(g)] != t {
							continue
						}
						if gate.Q0 == i || gate.Q1 == i {
							return true
						}
					}
					return !inRange(a[yVar(t, i)], p.MinEntanglingY, p.MaxEntanglingY)
				},
			})
		}
	}
}
