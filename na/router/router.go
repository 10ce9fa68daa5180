// Package router implements the independent-set router of spec.md §4.4:
// given start/end sites for a set of atoms to move, it partitions them
// into sequential move groups that each individually satisfy the AOD
// ordering constraint (na/routing.Group.Legal), built by repeatedly
// extracting a maximum independent set from the pairwise incompatibility
// graph.
//
// Grounded on na/graphx's MaxIndependentSet (spec.md §4.2) reused here over
// an incompatibility graph of atoms rather than a qubit interaction graph —
// the same greedy degree-descending selection rule applies to either.
package router

import (
	"sort"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/graphx"
	"github.com/kegliz/naqc/na/routing"
)

// Route partitions atoms into sequential routing.Group move groups. Each
// group is internally AOD-legal (na/routing.Group.Legal); atoms in
// different groups move in separate, sequential AOD activations.
func Route(atoms []int, start, end map[int]arch.Site) routing.Step {
	remaining := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		remaining[a] = true
	}

	var step routing.Step
	for len(remaining) > 0 {
		var rem []int
		for a := range remaining {
			rem = append(rem, a)
		}
		sort.Ints(rem)

		g := graphx.New()
		for _, a := range rem {
			g.AddVertex(a)
		}
		for i := 0; i < len(rem); i++ {
			for j := i + 1; j < len(rem); j++ {
				a, b := rem[i], rem[j]
				if !incompatible(a, b, start, end) {
					continue
				}
				_ = g.AddEdge(a, b)
			}
		}

		mis := graphx.MaxIndependentSet(g)
		sort.Ints(mis)

		grp := routing.Group{
			Qubits: mis,
			Start:  make(map[int]arch.Site, len(mis)),
			End:    make(map[int]arch.Site, len(mis)),
		}
		for _, a := range mis {
			grp.Start[a] = start[a]
			grp.End[a] = end[a]
			delete(remaining, a)
		}
		step.Groups = append(step.Groups, grp)
	}
	return step
}

// incompatible reports whether a and b cannot share an AOD move group: the
// pairwise Legal check of na/routing.Group applied to just these two.
func incompatible(a, b int, start, end map[int]arch.Site) bool {
	pair := routing.Group{
		Qubits: []int{a, b},
		Start:  map[int]arch.Site{a: start[a], b: start[b]},
		End:    map[int]arch.Site{a: end[a], b: end[b]},
	}
	return !pair.Legal()
}
