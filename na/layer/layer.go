// Package layer builds the executable-set DAG of spec.md §4.1 from a flat
// operation list: each vertex tracks an executable counter/threshold pair,
// enabled/disabled successor lists, and an executed flag; firing a vertex
// mutates its successors' counters and the shared executable set.
//
// Grounded on qc/dag's Node/DAG shape (NodeID, parents/children adjacency,
// acyclicity) generalized to the executable-set/execute() semantics of
// original_source's na::Layer::DAGVertex, merging the teacher's two DAG
// variants (the method-based qc/dag.DAG and the free-function split across
// topo.go/add.go/validate.go) into the single newer, partial-order-aware
// shape the spec calls for.
package layer

import (
	"errors"

	"github.com/kegliz/naqc/na/graphx"
	"github.com/kegliz/naqc/na/op"
)

// ErrNotExecutable is returned by Execute when called on a vertex whose
// counter has not reached its threshold, or that has already fired.
var ErrNotExecutable = errors.New("layer: vertex is not executable")

// ErrUnsupportedGate is returned by InteractionGraph when asked for a gate
// kind other than CNOT, CZ, RZZ or SWAP, or when a matching executable op
// does not act on exactly two qubits (spec.md §4.1).
var ErrUnsupportedGate = errors.New("layer: unsupported gate for interaction graph")

// Vertex is one DAG node: an operation applied to a fixed qubit tuple.
type Vertex struct {
	ID     int
	Op     op.Op
	Qubits []int

	executableThreshold int
	executableCounter   int
	enabledSuccessors   []*Vertex
	disabledSuccessors  []*Vertex
	Executed            bool
}

func (v *Vertex) isExecutable() bool {
	return !v.Executed && v.executableCounter == v.executableThreshold
}

// DAG is the executable-set DAG produced by Build.
type DAG struct {
	Vertices      []*Vertex
	executableSet map[*Vertex]bool
	nextID        int
}

func newDAG() *DAG {
	return &DAG{executableSet: make(map[*Vertex]bool)}
}

func (d *DAG) addVertex(o op.Op, qubits []int) *Vertex {
	v := &Vertex{ID: d.nextID, Op: o, Qubits: append([]int(nil), qubits...)}
	d.nextID++
	d.Vertices = append(d.Vertices, v)
	d.updateExecutableSet(v)
	return v
}

func (d *DAG) updateExecutableSet(v *Vertex) {
	if v.isExecutable() {
		d.executableSet[v] = true
	} else {
		delete(d.executableSet, v)
	}
}

func (d *DAG) addEnabledSuccessor(v, succ *Vertex) {
	v.enabledSuccessors = append(v.enabledSuccessors, succ)
	succ.executableThreshold++
	d.updateExecutableSet(succ)
}

func (d *DAG) addDisabledSuccessor(v, succ *Vertex) {
	v.disabledSuccessors = append(v.disabledSuccessors, succ)
	succ.executableThreshold--
	d.updateExecutableSet(succ)
}

// Execute fires v: marks it executed, decrements its disabled successors'
// counters, increments its enabled successors' counters, and refreshes
// executable-set membership for v and every successor touched.
func (d *DAG) Execute(v *Vertex) error {
	if !v.isExecutable() {
		return ErrNotExecutable
	}
	v.Executed = true
	for _, s := range v.disabledSuccessors {
		s.executableCounter--
		d.updateExecutableSet(s)
	}
	for _, s := range v.enabledSuccessors {
		s.executableCounter++
		d.updateExecutableSet(s)
	}
	d.updateExecutableSet(v)
	return nil
}

// ExecutableSet returns the current executable vertices in a deterministic
// (ID-ascending) order.
func (d *DAG) ExecutableSet() []*Vertex {
	out := make([]*Vertex, 0, len(d.executableSet))
	for v := range d.executableSet {
		out = append(out, v)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].ID > out[j].ID; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// Application is one operation applied to an ordered qubit tuple, the flat
// input Build consumes.
type Application struct {
	Op     op.Op
	Qubits []int
}

// Build walks apps once and constructs the executable-set DAG, following
// original_source's Layer::constructDAG: a one-operation lookahead buffer
// per qubit, a current group of mutually-commuting vertices, constructive/
// destructive vertex sets from inverse pairs, and a predecessor group.
func Build(nQubits int, apps []Application) *DAG {
	d := newDAG()

	constructive := make([][]*Vertex, nQubits)
	destructive := make([][]*Vertex, nQubits)
	currentGroup := make([][]*Vertex, nQubits)
	lookahead := make([]*Vertex, nQubits)
	predecessorGroup := make([][]*Vertex, nQubits)
	qubitOperations := make([][]*Vertex, nQubits)

	settle := func(qubit int, current *Vertex) {
		for _, c := range constructive[qubit] {
			d.addEnabledSuccessor(c, current)
		}
		for _, ds := range destructive[qubit] {
			d.addDisabledSuccessor(ds, current)
		}
		if len(currentGroup[qubit]) > 0 && !commutesAtQubit(currentGroup[qubit][0], current, qubit) {
			predecessorGroup[qubit] = append([]*Vertex(nil), currentGroup[qubit]...)
			currentGroup[qubit] = nil
		}
		for _, p := range predecessorGroup[qubit] {
			d.addEnabledSuccessor(p, current)
		}
		currentGroup[qubit] = append(currentGroup[qubit], current)
		qubitOperations[qubit] = append(qubitOperations[qubit], current)
	}

	processQubit := func(qubit int, vertex *Vertex) {
		if lookahead[qubit] == nil {
			lookahead[qubit] = vertex
			return
		}
		current := lookahead[qubit]
		lookahead[qubit] = vertex

		if op.IsInverseOf(current.Op, vertex.Op) {
			for _, qo := range qubitOperations[qubit] {
				d.addEnabledSuccessor(vertex, qo)
			}
			for _, qo := range destructive[qubit] {
				d.addEnabledSuccessor(vertex, qo)
			}
			constructive[qubit] = append(constructive[qubit], vertex)

			for _, qo := range qubitOperations[qubit] {
				d.addDisabledSuccessor(current, qo)
			}
			for _, qo := range destructive[qubit] {
				d.addDisabledSuccessor(current, qo)
			}
			d.addEnabledSuccessor(current, vertex)
			destructive[qubit] = append(destructive[qubit], current)

			lookahead[qubit] = nil
			return
		}
		settle(qubit, current)
	}

	for _, app := range apps {
		vertex := d.addVertex(app.Op, app.Qubits)
		for _, q := range app.Qubits {
			processQubit(q, vertex)
		}
	}
	for q := 0; q < nQubits; q++ {
		if lookahead[q] != nil {
			current := lookahead[q]
			lookahead[q] = nil
			settle(q, current)
		}
	}
	return d
}

// isControlAt reports whether v acts as a control on the given (absolute)
// qubit index.
func isControlAt(v *Vertex, qubit int) bool {
	for i, q := range v.Qubits {
		if q != qubit {
			continue
		}
		for _, c := range v.Op.Controls() {
			if c == i {
				return true
			}
		}
	}
	return false
}

func commutesAtQubit(a, b *Vertex, qubit int) bool {
	return op.Commutes(a.Op, isControlAt(a, qubit), b.Op, isControlAt(b, qubit))
}

// InteractionGraph filters the executable set for two-qubit operations
// matching name (e.g. "CNOT", "CZ") and returns the undirected graph of
// qubit pairs they act on (spec.md §4.1). It fails with ErrUnsupportedGate
// if name is not one of CNOT, CZ, RZZ, SWAP, or if a matching executable
// op does not act on exactly two qubits.
func (d *DAG) InteractionGraph(name string, nControls int) (*graphx.InteractionGraph, error) {
	switch name {
	case "CNOT", "CZ", "RZZ", "SWAP":
	default:
		return nil, ErrUnsupportedGate
	}
	g := graphx.New()
	for v := range d.executableSet {
		if v.Op.Name() != name || len(v.Op.Controls()) != nControls {
			continue
		}
		if v.Op.QubitSpan() != 2 {
			return nil, ErrUnsupportedGate
		}
		if len(v.Qubits) != 2 {
			return nil, ErrUnsupportedGate
		}
		if err := g.AddEdge(v.Qubits[0], v.Qubits[1]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
