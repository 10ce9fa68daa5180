// Package codegen assembles the final placement sequence and routing into
// the target instruction stream of spec.md §4.7/§6: per-layer load/move/
// store triples, a global entangling pulse, and single-qubit gate
// rewrites into the target RY/RZ/U instruction set. Grounded on
// kegliz/qplay's cmd/cli/main.go `pretty()` text-emission style,
// generalized to the fixed-precision decimal formatting §6 requires.
package codegen

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/op"
	"github.com/kegliz/naqc/na/placement"
	"github.com/kegliz/naqc/na/routing"
)

// ErrUnsupportedGate is returned (or, depending on Config, only warned
// about) when a single-qubit op has no target-set equivalent.
type ErrUnsupportedGate struct{ Name string }

func (e ErrUnsupportedGate) Error() string {
	return "codegen: unsupported gate " + e.Name
}

// Config carries the code-generator keys of spec.md §6's Configuration
// JSON.
type Config struct {
	ParkingOffset        int
	WarnUnsupportedGates bool
}

// QubitOp is one single-qubit operation to rewrite and emit, scheduled
// within a layer. IsLayerGlobal must be set by the caller when this op is
// applied identically to every qubit in the layer (the only case in which
// a Y/RY rewrite is realizable as one global pulse rather than a local
// one) — op.Op's IsGlobalOver reports the gate's capability, not whether
// a particular application happens to be uniform.
type QubitOp struct {
	Qubit         int
	Op            op.Op
	IsLayerGlobal bool
}

// Layer is everything the assembler needs to emit one circuit layer: the
// routing step that realizes the transition into this layer's execution
// placement, the entanglement zone the global pulse fires over, and the
// single-qubit gates rewritten alongside it.
type Layer struct {
	Index          int
	Routing        routing.Step
	ZoneName       string
	SingleQubitOps []QubitOp
}

// Assembler emits the target instruction stream for a compiled circuit.
type Assembler struct {
	arch  *arch.Architecture
	cfg   Config
	names func(qubit int) string

	Warnings []string
}

// New returns an Assembler over a given architecture, configuration, and
// atom-naming function (callers typically name atoms "q0", "q1", ...).
func New(a *arch.Architecture, cfg Config, names func(int) string) *Assembler {
	return &Assembler{arch: a, cfg: cfg, names: names}
}

// Emit walks seq's steps and the routing step following each one (transitions[i]
// is the routing.Step realizing the transition from seq.Steps()[i] to
// seq.Steps()[i+1]), interleaving each layer's gate rewrites, and returns
// the full instruction stream.
func (a *Assembler) Emit(seq *placement.Sequence, transitions []routing.Step, layers []Layer) ([]string, error) {
	steps := seq.Steps()
	if len(steps) == 0 {
		return nil, fmt.Errorf("codegen: empty placement sequence")
	}
	if len(transitions) != len(steps)-1 {
		return nil, fmt.Errorf("codegen: expected %d transitions for %d placements, got %d", len(steps)-1, len(steps), len(transitions))
	}

	var lines []string
	lines = append(lines, a.emitInitial(steps[0].Placement)...)

	layerByIndex := make(map[int]Layer, len(layers))
	for _, l := range layers {
		layerByIndex[l.Index] = l
	}

	for i := 1; i < len(steps); i++ {
		lines = append(lines, a.emitTransition(transitions[i-1])...)
		step := steps[i]
		if step.Kind == placement.Execution {
			if l, ok := layerByIndex[step.Layer]; ok {
				gateLines, err := a.emitLayer(l)
				if err != nil {
					return nil, err
				}
				lines = append(lines, gateLines...)
			}
		}
	}
	return lines, nil
}

func (a *Assembler) emitInitial(p placement.Placement) []string {
	lines := make([]string, 0, len(p))
	for q, site := range p {
		x, y, err := a.arch.Coords(site)
		if err != nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("atom (%s, %s) %s", formatCoord(x), formatCoord(y), a.names(q)))
	}
	return lines
}

// emitTransition emits the load/move/store triples realizing one routing
// step, applying a parking offset to already-loaded atoms ahead of a
// subsequent group that shares a column or row (spec.md §4.7 "multi-row
// pickup"). Group-to-group ordering within a step follows the step's own
// Groups slice order (the router's own group-extraction order).
func (a *Assembler) emitTransition(step routing.Step) []string {
	var lines []string
	var loadedCols, loadedRows = map[int]bool{}, map[int]bool{}
	var parked []int // qubits currently offset for parking, in this step

	for gi, g := range step.Groups {
		qubits := append([]int(nil), g.Qubits...)
		sort.Ints(qubits)

		if gi > 0 && a.cfg.ParkingOffset != 0 {
			if parkLine, ok := a.parkAlreadyLoaded(g, loadedCols, loadedRows, parked); ok {
				lines = append(lines, parkLine)
			}
		}

		names := make([]string, len(qubits))
		for i, q := range qubits {
			names[i] = a.names(q)
		}
		lines = append(lines, fmt.Sprintf("@+ load [%s]", joinNames(names)))

		moveEntries := make([]string, len(qubits))
		for i, q := range qubits {
			x, y, err := a.arch.Coords(g.End[q])
			if err != nil {
				continue
			}
			moveEntries[i] = fmt.Sprintf("(%s,%s) %s", formatCoord(x), formatCoord(y), a.names(q))
		}
		lines = append(lines, fmt.Sprintf("@+ move [%s]", joinStrings(moveEntries)))
		lines = append(lines, fmt.Sprintf("@+ store [%s]", joinNames(names)))

		for _, q := range qubits {
			loadedCols[g.End[q].Col] = true
			loadedRows[g.End[q].Row] = true
			parked = append(parked, q)
		}
	}
	return lines
}

// parkAlreadyLoaded offsets previously-loaded atoms before a group that
// would otherwise collide with them at a phantom site, per spec.md
// §4.7's "parking offset" rule; it returns the synthetic move line, or
// false if this group does not collide with any already-loaded row/column.
func (a *Assembler) parkAlreadyLoaded(g routing.Group, loadedCols, loadedRows map[int]bool, parked []int) (string, bool) {
	sameCol, sameRow := false, false
	for _, q := range g.Qubits {
		if loadedCols[g.End[q].Col] {
			sameCol = true
		}
		if loadedRows[g.End[q].Row] {
			sameRow = true
		}
	}
	if !sameCol && !sameRow {
		return "", false
	}
	entries := make([]string, 0, len(parked))
	for _, q := range parked {
		site := g.End[q]
		x, y, err := a.arch.Coords(site)
		if err != nil {
			continue
		}
		if sameCol && !sameRow {
			y += float64(a.cfg.ParkingOffset)
		} else {
			x += float64(a.cfg.ParkingOffset)
			y += float64(a.cfg.ParkingOffset)
		}
		entries = append(entries, fmt.Sprintf("(%s,%s) %s", formatCoord(x), formatCoord(y), a.names(q)))
	}
	if len(entries) == 0 {
		return "", false
	}
	return fmt.Sprintf("@+ move [%s]", joinStrings(entries)), true
}

func (a *Assembler) emitLayer(l Layer) ([]string, error) {
	var lines []string
	if l.ZoneName != "" {
		lines = append(lines, fmt.Sprintf("@+ cz %s", l.ZoneName))
	}
	for _, qo := range l.SingleQubitOps {
		rendered, err := a.rewriteSingleQubit(qo)
		if err != nil {
			if a.cfg.WarnUnsupportedGates {
				a.Warnings = append(a.Warnings, err.Error())
				continue
			}
			return nil, err
		}
		lines = append(lines, rendered)
	}
	return lines, nil
}

// fixedUDecomposition gives the constant U(theta, phi, lambda) rewrite for
// named single-qubit gates with no free parameter, per spec.md §4.7.
var fixedUDecomposition = map[string][3]float64{
	"H":    {math.Pi / 2, 0, math.Pi},
	"X":    {math.Pi, 0, math.Pi},
	"V":    {-math.Pi / 2, -math.Pi / 2, math.Pi / 2},
	"SX":   {math.Pi / 2, -math.Pi / 2, math.Pi / 2},
	"SXdg": {-math.Pi / 2, -math.Pi / 2, math.Pi / 2},
}

// fixedRZAngle gives the constant RZ angle for named diagonal gates with
// no free parameter.
var fixedRZAngle = map[string]float64{
	"Z": math.Pi, "S": math.Pi / 2, "Sdg": -math.Pi / 2,
	"T": math.Pi / 4, "Tdg": -math.Pi / 4, "I": 0,
}

func (a *Assembler) rewriteSingleQubit(qo QubitOp) (string, error) {
	o := qo.Op
	name := a.names(qo.Qubit)

	if qo.IsLayerGlobal && o.IsGlobalOver(1) {
		switch o.Name() {
		case "RY":
			return fmt.Sprintf("@+ ry %s global", formatAngle(o.Parameters()[0])), nil
		case "Y":
			return fmt.Sprintf("@+ ry %s global", formatAngle(math.Pi)), nil
		}
	}
	if o.Name() == "RZ" {
		return fmt.Sprintf("@+ rz %s %s", formatAngle(o.Parameters()[0]), name), nil
	}
	if angle, ok := fixedRZAngle[o.Name()]; ok {
		return fmt.Sprintf("@+ rz %s %s", formatAngle(angle), name), nil
	}
	if abc, ok := fixedUDecomposition[o.Name()]; ok {
		return fmt.Sprintf("@+ u %s %s %s %s", formatAngle(abc[0]), formatAngle(abc[1]), formatAngle(abc[2]), name), nil
	}
	if o.Name() == "U" {
		p := o.Parameters()
		return fmt.Sprintf("@+ u %s %s %s %s", formatAngle(p[0]), formatAngle(p[1]), formatAngle(p[2]), name), nil
	}
	if o.Name() == "RX" {
		theta := o.Parameters()[0]
		return fmt.Sprintf("@+ u %s %s %s %s", formatAngle(theta), formatAngle(-math.Pi/2), formatAngle(math.Pi/2), name), nil
	}
	return "", ErrUnsupportedGate{Name: o.Name()}
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
func formatAngle(v float64) string { return strconv.FormatFloat(v, 'f', 5, 64) }

func joinNames(names []string) string { return joinStrings(names) }

func joinStrings(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
