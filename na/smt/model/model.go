// Package model declares the bit-vector variable/constraint model of
// spec.md §4.5: every state variable is represented as a bounded-integer
// variable (booleans are the {0,1} special case), and constraints are
// small composable predicates evaluated against a complete assignment.
// na/smt compiles a placement-and-routing problem into this model and
// na/smt's own bounded backtracking solver discharges it.
package model

import "fmt"

// VarID names a variable. By convention stage/qubit-indexed variables use
// the "name[t,i]" shape mirroring spec.md §4.5's x[t,i]/y[t,i] notation.
type VarID string

// Coord builds the canonical two-index variable name used throughout
// spec.md §4.5 (e.g. Coord("x", 2, 5) == "x[2,5]").
func Coord(name string, t, i int) VarID {
	return VarID(fmt.Sprintf("%s[%d,%d]", name, t, i))
}

// StageVar builds a single-index, per-stage variable name (e.g.
// "load_col[3,1]").
func StageVar(name string, t, k int) VarID {
	return VarID(fmt.Sprintf("%s[%d,%d]", name, t, k))
}

// GateVar builds the per-gate stage variable name ("gate[7]").
func GateVar(g int) VarID { return VarID(fmt.Sprintf("gate[%d]", g)) }

// Domain is the inclusive integer range [Lo, Hi] a variable may take.
// Booleans are modeled as Domain{0, 1}.
type Domain struct{ Lo, Hi int }

// BoolDomain is the canonical {0,1} domain.
var BoolDomain = Domain{Lo: 0, Hi: 1}

func (d Domain) Size() int { return d.Hi - d.Lo + 1 }

// Var is one declared model variable.
type Var struct {
	ID     VarID
	Domain Domain
}

// Assignment is a complete or partial valuation of model variables.
type Assignment map[VarID]int

// Constraint is a predicate over an assignment. Vars lists the variables it
// reads, used by the solver to decide propagation order.
type Constraint interface {
	Satisfied(a Assignment) bool
	Vars() []VarID
}

// Model is the declarative bit-vector/bool problem: a variable set plus a
// conjunction of constraints (the formula is satisfied iff every
// constraint is satisfied).
type Model struct {
	vars        map[VarID]Var
	order       []VarID
	constraints []Constraint
}

// New returns an empty model.
func New() *Model {
	return &Model{vars: make(map[VarID]Var)}
}

// AddVar declares a new bounded-integer variable. Redeclaring the same ID
// with an identical domain is a no-op; redeclaring with a different domain
// panics, since that indicates a bug in the encoder, not a legitimate user
// input.
func (m *Model) AddVar(id VarID, d Domain) {
	if existing, ok := m.vars[id]; ok {
		if existing.Domain != d {
			panic(fmt.Sprintf("model: variable %s redeclared with a different domain", id))
		}
		return
	}
	m.vars[id] = Var{ID: id, Domain: d}
	m.order = append(m.order, id)
}

// AddBoolVar declares a {0,1}-domain variable.
func (m *Model) AddBoolVar(id VarID) { m.AddVar(id, BoolDomain) }

// Assert adds a constraint to the model's conjunction.
func (m *Model) Assert(c Constraint) { m.constraints = append(m.constraints, c) }

// Vars returns the declared variables in declaration order.
func (m *Model) Vars() []Var {
	out := make([]Var, len(m.order))
	for i, id := range m.order {
		out[i] = m.vars[id]
	}
	return out
}

// Var looks up a declared variable by ID.
func (m *Model) Var(id VarID) (Var, bool) {
	v, ok := m.vars[id]
	return v, ok
}

// Constraints returns the asserted constraints.
func (m *Model) Constraints() []Constraint { return append([]Constraint(nil), m.constraints...) }
