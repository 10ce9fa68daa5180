// Package op defines the operation (gate) kinds the compiler core reasons
// about: standard fixed gates, compound gates built from a child list, and
// non-unitary operations (measurement, barrier). The contract is kept
// deliberately small so the layer extractor, placer and code assembler can
// depend on it without pulling in any particular gate-set implementation.
package op

import (
	"fmt"
	"math"
	"strings"
)

// Kind tags which branch of the operation sum a Op value belongs to.
type Kind int

const (
	StandardOp Kind = iota
	CompoundOp
	NonUnitaryOp
)

func (k Kind) String() string {
	switch k {
	case StandardOp:
		return "standard"
	case CompoundOp:
		return "compound"
	case NonUnitaryOp:
		return "non-unitary"
	default:
		return "unknown"
	}
}

// Op is the minimal contract every operation must fulfil. It mirrors
// qc/gate.Gate's Name/QubitSpan/Targets/Controls shape, adding the
// capabilities the neutral-atom pipeline needs: parameters (for rotation
// gates), a Kind tag, and IsGlobalOver for code-assembler gate rewriting.
type Op interface {
	Name() string
	Kind() Kind
	QubitSpan() int
	Targets() []int  // indices, relative to the span, acting as targets
	Controls() []int // indices, relative to the span, acting as controls
	Parameters() []float64
	// IsGlobalOver reports whether this op, applied identically to all n
	// qubits, is realizable as a single global pulse (e.g. a layer-wide Y
	// rotation). n is the total qubit count in scope.
	IsGlobalOver(n int) bool
	// IsDiagonal reports whether the op's matrix is diagonal in the
	// computational basis (Z/S/T/P/RZ/RZZ/Barrier/Identity family); used
	// by the commutation rule in the layer extractor.
	IsDiagonal() bool
}

// Children exposes a compound operation's immutable sub-operation list.
type Children interface {
	Children() []Op
}

// std is a standard fixed (non-parametric) gate, mirroring qc/gate's
// u1/u2/u3 value objects but carrying the extra capability bits the
// placement core needs.
type std struct {
	name               string
	span               int
	targets, controls  []int
	diagonal           bool
	globalWhenUniform  bool
	selfInverse        bool
	daggerOf           string
}

func (g std) Name() string          { return g.name }
func (g std) Kind() Kind            { return StandardOp }
func (g std) QubitSpan() int        { return g.span }
func (g std) Targets() []int        { return g.targets }
func (g std) Controls() []int       { return g.controls }
func (g std) Parameters() []float64 { return nil }
func (g std) IsDiagonal() bool      { return g.diagonal }
func (g std) IsGlobalOver(n int) bool {
	return g.globalWhenUniform && n > 0
}

// rot is a parametric rotation gate (RX/RY/RZ/RZZ/P style).
type rot struct {
	name              string
	span              int
	targets, controls []int
	params            []float64
	diagonal          bool
	globalWhenUniform bool
}

func (g rot) Name() string          { return g.name }
func (g rot) Kind() Kind            { return StandardOp }
func (g rot) QubitSpan() int        { return g.span }
func (g rot) Targets() []int        { return g.targets }
func (g rot) Controls() []int       { return g.controls }
func (g rot) Parameters() []float64 { return g.params }
func (g rot) IsDiagonal() bool      { return g.diagonal }
func (g rot) IsGlobalOver(n int) bool {
	return g.globalWhenUniform && n > 0
}

// nonUnitary models the Measure and Barrier operations.
type nonUnitary struct {
	name     string
	span     int
	targets  []int
	diagonal bool
}

func (g nonUnitary) Name() string          { return g.name }
func (g nonUnitary) Kind() Kind            { return NonUnitaryOp }
func (g nonUnitary) QubitSpan() int        { return g.span }
func (g nonUnitary) Targets() []int        { return g.targets }
func (g nonUnitary) Controls() []int       { return nil }
func (g nonUnitary) Parameters() []float64 { return nil }
func (g nonUnitary) IsDiagonal() bool      { return g.diagonal }
func (g nonUnitary) IsGlobalOver(int) bool { return false }

// compound is an operation defined as an ordered list of child operations
// (e.g. a Toffoli decomposed for rewriting). The child list is exposed
// read-only through Children().
type compound struct {
	name              string
	span              int
	targets, controls []int
	children          []Op
}

func (g compound) Name() string          { return g.name }
func (g compound) Kind() Kind            { return CompoundOp }
func (g compound) QubitSpan() int        { return g.span }
func (g compound) Targets() []int        { return g.targets }
func (g compound) Controls() []int       { return g.controls }
func (g compound) Parameters() []float64 { return nil }
func (g compound) IsDiagonal() bool      { return false }
func (g compound) IsGlobalOver(int) bool { return false }
func (g compound) Children() []Op        { return append([]Op(nil), g.children...) }

// ---------- singleton constructors (mirrors qc/gate/builtin.go) --------

var (
	hGate    = std{name: "H", span: 1, targets: []int{0}, selfInverse: true}
	xGate    = std{name: "X", span: 1, targets: []int{0}, selfInverse: true}
	yGate    = std{name: "Y", span: 1, targets: []int{0}, selfInverse: true, globalWhenUniform: true}
	zGate    = std{name: "Z", span: 1, targets: []int{0}, diagonal: true, selfInverse: true}
	iGate    = std{name: "I", span: 1, targets: []int{0}, diagonal: true, selfInverse: true}
	sGate    = std{name: "S", span: 1, targets: []int{0}, diagonal: true, daggerOf: "Sdg"}
	sdgGate  = std{name: "Sdg", span: 1, targets: []int{0}, diagonal: true, daggerOf: "S"}
	tGate    = std{name: "T", span: 1, targets: []int{0}, diagonal: true, daggerOf: "Tdg"}
	tdgGate  = std{name: "Tdg", span: 1, targets: []int{0}, diagonal: true, daggerOf: "T"}
	sxGate   = std{name: "SX", span: 1, targets: []int{0}, daggerOf: "SXdg"}
	sxdgGate = std{name: "SXdg", span: 1, targets: []int{0}, daggerOf: "SX"}
	vGate    = std{name: "V", span: 1, targets: []int{0}}
	swapG    = std{name: "SWAP", span: 2, targets: []int{0, 1}}
	cnotG    = std{name: "CNOT", span: 2, targets: []int{1}, controls: []int{0}}
	czGate   = std{name: "CZ", span: 2, targets: []int{1}, controls: []int{0}, diagonal: true}
	toffG    = std{name: "TOFFOLI", span: 3, targets: []int{2}, controls: []int{0, 1}}
	fredG    = std{name: "FREDKIN", span: 3, targets: []int{1, 2}, controls: []int{0}}

	barrierG  = nonUnitary{name: "Barrier", span: 0, diagonal: true}
	measureG  = nonUnitary{name: "MEASURE", span: 1, targets: []int{0}}
)

func H() Op       { return hGate }
func X() Op       { return xGate }
func Y() Op       { return yGate }
func Z() Op       { return zGate }
func I() Op       { return iGate }
func S() Op       { return sGate }
func Sdg() Op     { return sdgGate }
func T() Op       { return tGate }
func Tdg() Op     { return tdgGate }
func SX() Op      { return sxGate }
func SXdg() Op    { return sxdgGate }
func V() Op       { return vGate }
func Swap() Op    { return swapG }
func CNOT() Op    { return cnotG }
func CZ() Op      { return czGate }
func Toffoli() Op { return toffG }
func Fredkin() Op { return fredG }
func Barrier() Op { return barrierG }
func Measure() Op { return measureG }

// RZ returns a single-qubit Z-axis rotation with the given angle, diagonal
// and commutes like the Z/S/T family.
func RZ(theta float64) Op {
	return rot{name: "RZ", span: 1, targets: []int{0}, params: []float64{theta}, diagonal: true}
}

// RY returns a single-qubit Y-axis rotation; uniform RY over a whole layer
// is realizable as one global pulse (see Code Assembler §4.7).
func RY(theta float64) Op {
	return rot{name: "RY", span: 1, targets: []int{0}, params: []float64{theta}, globalWhenUniform: true}
}

// RX returns a single-qubit X-axis rotation.
func RX(theta float64) Op {
	return rot{name: "RX", span: 1, targets: []int{0}, params: []float64{theta}}
}

// RZZ returns a two-qubit ZZ-interaction rotation; diagonal in the
// computational basis.
func RZZ(theta float64) Op {
	return rot{name: "RZZ", span: 2, targets: []int{0, 1}, params: []float64{theta}, diagonal: true}
}

// U returns the single-qubit U(theta, phi, lambda) decomposition gate used
// by the code assembler's fallback rewrite.
func U(theta, phi, lambda float64) Op {
	return rot{name: "U", span: 1, targets: []int{0}, params: []float64{theta, phi, lambda}}
}

// NewCompound builds a named compound operation from an ordered child list.
func NewCompound(name string, span int, targets, controls []int, children []Op) Op {
	return compound{name: name, span: span, targets: targets, controls: controls, children: append([]Op(nil), children...)}
}

// ---------- factory / lookup (mirrors qc/gate.Factory) -----------------

// ErrUnknownOp is returned by Factory when the label isn't recognised.
type ErrUnknownOp struct{ Name string }

func (e ErrUnknownOp) Error() string { return "op: unknown operation " + e.Name }

// Factory returns an immutable standard op by common alias.
func Factory(name string) (Op, error) {
	switch norm(name) {
	case "h":
		return H(), nil
	case "x":
		return X(), nil
	case "y":
		return Y(), nil
	case "z":
		return Z(), nil
	case "i", "id", "identity":
		return I(), nil
	case "s":
		return S(), nil
	case "sdg":
		return Sdg(), nil
	case "t":
		return T(), nil
	case "tdg":
		return Tdg(), nil
	case "sx":
		return SX(), nil
	case "sxdg":
		return SXdg(), nil
	case "v":
		return V(), nil
	case "swap":
		return Swap(), nil
	case "cx", "cnot":
		return CNOT(), nil
	case "cz":
		return CZ(), nil
	case "ccx", "toffoli":
		return Toffoli(), nil
	case "cswap", "fredkin":
		return Fredkin(), nil
	case "barrier":
		return Barrier(), nil
	case "m", "measure", "meas":
		return Measure(), nil
	}
	return nil, ErrUnknownOp{name}
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ---------- commutation & inverse rules (spec.md §4.1) ------------------

const angleTolerance = 1e-9

// selfInverseNames is the X/Y/Z/H/I self-inverse family.
var selfInverseNames = map[string]bool{
	"X": true, "Y": true, "Z": true, "H": true, "I": true,
}

// daggerPairs maps a gate name to its Dagger partner's name.
var daggerPairs = map[string]string{
	"S": "Sdg", "Sdg": "S",
	"SX": "SXdg", "SXdg": "SX",
	"T": "Tdg", "Tdg": "T",
}

// IsInverseOf reports whether b undoes a on the same qubit support, per
// spec.md §4.1's inverse rule: both self-inverse of the same type, a
// Dagger pair, or matching rotation type with parameters summing to zero.
func IsInverseOf(a, b Op) bool {
	if a.Name() == b.Name() && selfInverseNames[a.Name()] {
		return true
	}
	if daggerPairs[a.Name()] == b.Name() {
		return true
	}
	if isRotationFamily(a.Name()) && a.Name() == b.Name() {
		pa, pb := a.Parameters(), b.Parameters()
		if len(pa) == len(pb) && len(pa) > 0 {
			for i := range pa {
				if math.Abs(pa[i]+pb[i]) > angleTolerance {
					return false
				}
			}
			return true
		}
	}
	return false
}

func isRotationFamily(name string) bool {
	switch name {
	case "RX", "RY", "RZ", "RZZ":
		return true
	}
	return false
}

// diagonalFamily is the set of op names treated as diagonal for the
// commutation rule (independent of the IsDiagonal() capability, so
// callers operating on bare names — e.g. serialized layers — can reuse
// the rule too).
var diagonalFamily = map[string]bool{
	"Z": true, "S": true, "Sdg": true, "T": true, "Tdg": true,
	"RZ": true, "RZZ": true, "P": true, "Barrier": true, "I": true,
}

// IsDiagonalByName reports whether the named op is in the diagonal family.
func IsDiagonalByName(name string) bool { return diagonalFamily[name] }

// Commutes reports whether a and b commute on qubit q, where aIsControl/
// bIsControl say whether q is a's/b's control (vs. target) role. The rule
// is made symmetric per spec.md §9 Open Questions (teacher's source was
// asymmetric for global-vs-control commutation; this implementation
// applies the same diagonal test regardless of operand order).
func Commutes(a Op, aIsControl bool, b Op, bIsControl bool) bool {
	switch {
	case aIsControl && bIsControl:
		return true
	case aIsControl != bIsControl:
		// one control, one target: commute iff the target-side op is diagonal
		if aIsControl {
			return b.IsDiagonal()
		}
		return a.IsDiagonal()
	default: // both targets
		return a.IsDiagonal() && b.IsDiagonal() || a.Name() == b.Name()
	}
}

// String renders a human-readable operation summary, handy for logging.
func String(o Op) string {
	if len(o.Parameters()) == 0 {
		return o.Name()
	}
	ps := make([]string, len(o.Parameters()))
	for i, p := range o.Parameters() {
		ps[i] = fmt.Sprintf("%.5f", p)
	}
	return fmt.Sprintf("%s(%s)", o.Name(), strings.Join(ps, ","))
}
