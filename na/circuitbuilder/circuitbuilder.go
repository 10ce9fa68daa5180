// Package circuitbuilder provides a fluent gate-construction DSL over
// na/op, the input format na/layer.Build consumes. Adapted from
// kegliz/qplay's qc/builder (the same method-chaining Builder interface
// shape and bail-on-first-error pattern), generalized from the teacher's
// fixed gate set to na/op's named gates and its RX/RY/RZ/RZZ rotations;
// na/op's U has no builder method.
package circuitbuilder

import (
	"fmt"

	"github.com/kegliz/naqc/na/layer"
	"github.com/kegliz/naqc/na/op"
)

// ErrBuild is wrapped into the error returned when Build is called more
// than once on the same Builder.
var ErrBuild = fmt.Errorf("circuitbuilder: already built")

// Circuit is the finished, immutable input to na/layer.Build.
type Circuit struct {
	NumQubits    int
	Applications []layer.Application
}

// Builder is a fluent declarative DSL for building the application list
// of a neutral-atom circuit. Every method returns the Builder itself so
// calls chain; once any call fails, every subsequent call is a no-op and
// the first error is surfaced from Build.
type Builder interface {
	H(q int) Builder
	X(q int) Builder
	Y(q int) Builder
	Z(q int) Builder
	I(q int) Builder
	S(q int) Builder
	Sdg(q int) Builder
	T(q int) Builder
	Tdg(q int) Builder
	SX(q int) Builder
	SXdg(q int) Builder
	V(q int) Builder
	RX(theta float64, q int) Builder
	RY(theta float64, q int) Builder
	RZ(theta float64, q int) Builder

	CNOT(ctrl, tgt int) Builder
	CZ(ctrl, tgt int) Builder
	SWAP(q1, q2 int) Builder
	RZZ(theta float64, q1, q2 int) Builder
	Toffoli(c1, c2, tgt int) Builder
	Fredkin(ctrl, t1, t2 int) Builder

	Barrier(qubits ...int) Builder
	Measure(q int) Builder

	Build() (Circuit, error)
}

// Option configures a new Builder.
type Option func(*config)

type config struct{ qubits int }

// Q sets the number of qubits the circuit operates over (default 1).
func Q(n int) Option { return func(c *config) { c.qubits = n } }

// New returns a fresh Builder.
func New(opts ...Option) Builder {
	cfg := config{qubits: 1}
	for _, o := range opts {
		o(&cfg)
	}
	return &b{numQubits: cfg.qubits}
}

type b struct {
	numQubits int
	apps      []layer.Application
	err       error
	built     bool
}

func (bb *b) bail(err error) Builder {
	if bb.err == nil {
		bb.err = err
	}
	return bb
}

func (bb *b) checkState() bool { return bb.built || bb.err != nil }

func (bb *b) validate(qubits ...int) error {
	for _, q := range qubits {
		if q < 0 || q >= bb.numQubits {
			return fmt.Errorf("circuitbuilder: qubit %d out of range [0,%d)", q, bb.numQubits)
		}
	}
	return nil
}

func (bb *b) add(o op.Op, qubits ...int) Builder {
	if bb.checkState() {
		return bb
	}
	if err := bb.validate(qubits...); err != nil {
		return bb.bail(err)
	}
	bb.apps = append(bb.apps, layer.Application{Op: o, Qubits: append([]int(nil), qubits...)})
	return bb
}

func (bb *b) H(q int) Builder    { return bb.add(op.H(), q) }
func (bb *b) X(q int) Builder    { return bb.add(op.X(), q) }
func (bb *b) Y(q int) Builder    { return bb.add(op.Y(), q) }
func (bb *b) Z(q int) Builder    { return bb.add(op.Z(), q) }
func (bb *b) I(q int) Builder    { return bb.add(op.I(), q) }
func (bb *b) S(q int) Builder    { return bb.add(op.S(), q) }
func (bb *b) Sdg(q int) Builder  { return bb.add(op.Sdg(), q) }
func (bb *b) T(q int) Builder    { return bb.add(op.T(), q) }
func (bb *b) Tdg(q int) Builder  { return bb.add(op.Tdg(), q) }
func (bb *b) SX(q int) Builder   { return bb.add(op.SX(), q) }
func (bb *b) SXdg(q int) Builder { return bb.add(op.SXdg(), q) }
func (bb *b) V(q int) Builder    { return bb.add(op.V(), q) }

func (bb *b) RX(theta float64, q int) Builder { return bb.add(op.RX(theta), q) }
func (bb *b) RY(theta float64, q int) Builder { return bb.add(op.RY(theta), q) }
func (bb *b) RZ(theta float64, q int) Builder { return bb.add(op.RZ(theta), q) }

func (bb *b) CNOT(c, t int) Builder { return bb.add(op.CNOT(), c, t) }
func (bb *b) CZ(c, t int) Builder   { return bb.add(op.CZ(), c, t) }
func (bb *b) SWAP(a, c int) Builder { return bb.add(op.Swap(), a, c) }
func (bb *b) RZZ(theta float64, q1, q2 int) Builder {
	return bb.add(op.RZZ(theta), q1, q2)
}
func (bb *b) Toffoli(c1, c2, t int) Builder    { return bb.add(op.Toffoli(), c1, c2, t) }
func (bb *b) Fredkin(c, t1, t2 int) Builder    { return bb.add(op.Fredkin(), c, t1, t2) }
func (bb *b) Barrier(qubits ...int) Builder    { return bb.add(op.Barrier(), qubits...) }
func (bb *b) Measure(q int) Builder            { return bb.add(op.Measure(), q) }

// Build finalizes the application list. The Builder becomes invalid
// after this call.
func (bb *b) Build() (Circuit, error) {
	if bb.built {
		return Circuit{}, fmt.Errorf("circuitbuilder: %w", ErrBuild)
	}
	if bb.err != nil {
		return Circuit{}, bb.err
	}
	bb.built = true
	return Circuit{NumQubits: bb.numQubits, Applications: bb.apps}, nil
}
