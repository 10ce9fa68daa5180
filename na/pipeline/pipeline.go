// Package pipeline is the compile-time glue spec.md §2's data-flow line
// names but leaves to the composing program: "Circuit → Layer extractor →
// Interaction graph → (A* placer ⊕ SMT solver) → Routing → Code
// assembler". Each of those components (na/layer, na/graphx, na/astar,
// na/router, na/codegen) is independently built and tested against
// spec.md's component sections; this package is the one place that drives
// them together, round by round, into the placement.Sequence and
// routing/codegen inputs spec.md §3's "Lifecycle" describes.
//
// The per-round matching/assignment strategy below is a deliberate
// simplification of na/graphx's full ComputeSequence layout proposal
// (which produces a multi-color-step, whole-circuit layout rather than a
// round-by-round one): each round takes a greedy, qubit-disjoint subset of
// the currently pending two-qubit edges, assigns each pair the nearest
// free entanglement-site pair directly via na/arch's own
// NearestEntanglementSite query, and returns moved atoms to storage via
// na/astar. This keeps every round's placement decisions local and
// directly explainable, at the cost of not exploiting ComputeSequence's
// global color-step layout; na/graphx's layout algorithms remain fully
// implemented and independently tested for callers that want that
// stronger global strategy.
package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/astar"
	"github.com/kegliz/naqc/na/codegen"
	"github.com/kegliz/naqc/na/graphx"
	"github.com/kegliz/naqc/na/layer"
	"github.com/kegliz/naqc/na/placement"
	"github.com/kegliz/naqc/na/router"
	"github.com/kegliz/naqc/na/routing"
)

// ErrUnsupportedOperation is returned when the executable set contains an
// operation this pipeline cannot place: a multi-qubit op with span >= 3,
// or a two-qubit op under a name other than TwoQubitGate.
var ErrUnsupportedOperation = errors.New("pipeline: unsupported operation for placement")

// ErrNotEnoughSites is returned when the architecture has fewer storage
// sites than the circuit has qubits.
var ErrNotEnoughSites = errors.New("pipeline: architecture has too few storage sites for this circuit")

// Result is everything Compile produces: the placement sequence, the
// routing step realizing each transition between consecutive placements,
// and the per-layer gate-rewrite input for na/codegen.
type Result struct {
	Sequence    *placement.Sequence
	Transitions []routing.Step
	Layers      []codegen.Layer
}

// Compile drives na/layer's executable-set DAG, na/arch's entanglement
// queries, and na/astar's storage-return search into a full Result for
// the named two-qubit gate kind (the only two-qubit gate family this
// compile run routes through the entanglement zone — spec.md §4.1's
// InteractionGraph is itself scoped to one gate name per call).
func Compile(a *arch.Architecture, params astar.Params, numQubits int, apps []layer.Application, twoQubitGateName string) (Result, error) {
	storageSites := a.AllStorageSites()
	if len(storageSites) < numQubits {
		return Result{}, ErrNotEnoughSites
	}

	dag := layer.Build(numQubits, apps)

	cur := make(placement.Placement, numQubits)
	copy(cur, storageSites[:numQubits])

	var seq placement.Sequence
	if err := seq.Append(placement.Step{Kind: placement.Initial, Placement: cur.Clone()}); err != nil {
		return Result{}, err
	}

	var transitions []routing.Step
	var layers []codegen.Layer

	for layerIdx := 0; ; layerIdx++ {
		executables := dag.ExecutableSet()
		if len(executables) == 0 {
			break
		}

		ig, err := dag.InteractionGraph(twoQubitGateName, 1)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: layer %d: %w", layerIdx, err)
		}
		edges := greedyDisjointEdges(ig.Edges())

		if len(edges) == 0 {
			// No two-qubit gate is ready this round; fire whatever
			// single-qubit gates are and loop back — firing them may
			// unblock a two-qubit gate for the next round.
			if err := fireRemainingSingleQubitOps(dag, executables); err != nil {
				return Result{}, fmt.Errorf("pipeline: %w", err)
			}
			continue
		}

		execPlacement := cur.Clone()
		entOccupied := make(map[arch.Site]bool, len(edges)*2)
		var zoneName string
		for _, e := range edges {
			s0, s1, err := a.NearestEntanglementSite(cur[e.A], cur[e.B], entOccupied)
			if err != nil {
				return Result{}, fmt.Errorf("pipeline: layer %d: no free entanglement site pair: %w", layerIdx, err)
			}
			entOccupied[s0], entOccupied[s1] = true, true
			execPlacement[e.A], execPlacement[e.B] = s0, s1
			if zoneName == "" {
				zoneName = entanglementZoneName(a, s0)
			}
		}

		singleOps, err := fireLayerVertices(dag, executables, edges)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: layer %d: %w", layerIdx, err)
		}

		execTransition := router.Route(movedQubits(cur, execPlacement), siteMap(cur, movedQubits(cur, execPlacement)), siteMap(execPlacement, movedQubits(cur, execPlacement)))
		if err := seq.Append(placement.Step{Kind: placement.Execution, Layer: layerIdx, Placement: execPlacement.Clone()}); err != nil {
			return Result{}, err
		}
		transitions = append(transitions, execTransition)
		layers = append(layers, codegen.Layer{Index: layerIdx, Routing: execTransition, ZoneName: zoneName, SingleQubitOps: singleOps})

		storagePlacement, err := returnToStorage(a, params, execPlacement, storageSites)
		if err != nil {
			return Result{}, fmt.Errorf("pipeline: layer %d: storage return: %w", layerIdx, err)
		}
		storageTransition := router.Route(allQubitIndices(numQubits), siteMap(execPlacement, allQubitIndices(numQubits)), siteMap(storagePlacement, allQubitIndices(numQubits)))
		if err := seq.Append(placement.Step{Kind: placement.Storage, Layer: layerIdx, Placement: storagePlacement.Clone()}); err != nil {
			return Result{}, err
		}
		transitions = append(transitions, storageTransition)

		cur = storagePlacement
	}

	return Result{Sequence: &seq, Transitions: transitions, Layers: layers}, nil
}

// greedyDisjointEdges selects a qubit-disjoint subset of edges, processed
// in a deterministic (A,B)-ascending order so Compile's output does not
// depend on map iteration order.
func greedyDisjointEdges(edges []graphx.Edge) []graphx.Edge {
	sorted := append([]graphx.Edge(nil), edges...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].A != sorted[j].A {
			return sorted[i].A < sorted[j].A
		}
		return sorted[i].B < sorted[j].B
	})
	used := make(map[int]bool, len(sorted)*2)
	var out []graphx.Edge
	for _, e := range sorted {
		if used[e.A] || used[e.B] {
			continue
		}
		used[e.A], used[e.B] = true, true
		out = append(out, e)
	}
	return out
}

// fireLayerVertices fires the two-qubit vertices matching the chosen
// pairs and every executable single-qubit vertex, returning the
// single-qubit gates to rewrite in this layer. It errors on any
// executable vertex with span >= 3, or a two-qubit vertex not among the
// chosen pairs (left for a later round).
func fireLayerVertices(dag *layer.DAG, executables []*layer.Vertex, pairs []graphx.Edge) ([]codegen.QubitOp, error) {
	chosen := make(map[[2]int]bool, len(pairs))
	for _, e := range pairs {
		chosen[[2]int{e.A, e.B}] = true
	}

	var singleOps []codegen.QubitOp
	for _, v := range executables {
		switch v.Op.QubitSpan() {
		case 1:
			singleOps = append(singleOps, codegen.QubitOp{Qubit: v.Qubits[0], Op: v.Op})
			if err := dag.Execute(v); err != nil {
				return nil, err
			}
		case 2:
			if len(v.Qubits) != 2 {
				return nil, ErrUnsupportedOperation
			}
			if !chosen[canon2(v.Qubits[0], v.Qubits[1])] {
				continue // left pending for a later round
			}
			if err := dag.Execute(v); err != nil {
				return nil, err
			}
		default:
			return nil, ErrUnsupportedOperation
		}
	}
	return singleOps, nil
}

func fireRemainingSingleQubitOps(dag *layer.DAG, executables []*layer.Vertex) error {
	for _, v := range executables {
		if v.Op.QubitSpan() != 1 {
			return ErrUnsupportedOperation
		}
		if err := dag.Execute(v); err != nil {
			return err
		}
	}
	return nil
}

func canon2(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func entanglementZoneName(a *arch.Architecture, s arch.Site) string {
	for _, slm := range a.EntanglementSLMs {
		if slm.ID == s.SLMID {
			return fmt.Sprintf("zone%d", slm.ZoneID)
		}
	}
	return "zone0"
}

func movedQubits(from, to placement.Placement) []int {
	var out []int
	for q := range from {
		if from[q] != to[q] {
			out = append(out, q)
		}
	}
	sort.Ints(out)
	return out
}

func allQubitIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func siteMap(p placement.Placement, qubits []int) map[int]arch.Site {
	m := make(map[int]arch.Site, len(qubits))
	for _, q := range qubits {
		m[q] = p[q]
	}
	return m
}

// returnToStorage places every qubit in execPlacement back onto a free
// storage site, minimizing total discretized distance via na/astar.
//
// astar.Option only carries a discretized (Row, Col), not the owning
// SLMID, so multiple storage SLMs can share the same local (row, col).
// optionSites keeps each job's candidate arch.Site parallel to its sorted
// Options slice so the chosen option index maps back to the right site
// unambiguously rather than by re-searching storageSites for a (row, col)
// match.
func returnToStorage(a *arch.Architecture, params astar.Params, execPlacement placement.Placement, storageSites []arch.Site) (placement.Placement, error) {
	jobs := make([]astar.Job, len(execPlacement))
	optionSites := make([][]arch.Site, len(execPlacement))
	for q, site := range execPlacement {
		type candidate struct {
			site arch.Site
			opt  astar.Option
		}
		candidates := make([]candidate, len(storageSites))
		for i, cand := range storageSites {
			d2, err := a.Distance(site, cand)
			if err != nil {
				return nil, fmt.Errorf("pipeline: distance %+v -> %+v: %w", site, cand, err)
			}
			candidates[i] = candidate{site: cand, opt: astar.Option{Row: cand.Row, Col: cand.Col, Dist2: d2}}
		}
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].opt.Dist2 < candidates[j].opt.Dist2 })

		options := make([]astar.Option, len(candidates))
		sites := make([]arch.Site, len(candidates))
		for i, c := range candidates {
			options[i] = c.opt
			sites[i] = c.site
		}
		jobs[q] = astar.Job{ID: q, SrcRow: site.Row, SrcCol: site.Col, Options: options}
		optionSites[q] = sites
	}

	choices, err := astar.PlaceWithParams(jobs, params)
	if err != nil {
		return nil, err
	}

	out := make(placement.Placement, len(execPlacement))
	for q, choiceIdx := range choices {
		out[q] = optionSites[q][choiceIdx]
	}
	if !out.Disjoint() {
		return nil, fmt.Errorf("pipeline: astar storage assignment produced colliding sites")
	}
	return out, nil
}
