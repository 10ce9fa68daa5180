// Package routing defines the move-group / routing-step types produced by
// the independent-set router (spec.md §3 "Routing step").
package routing

import "github.com/kegliz/naqc/na/arch"

// Group is one AOD activation: a set of qubits that move together, each
// from a start Site to an end Site.
type Group struct {
	Qubits []int
	Start  map[int]arch.Site
	End    map[int]arch.Site
}

// Step is the ordered list of move groups realizing one transition between
// two consecutive placements; groups execute sequentially.
type Step struct {
	Groups []Group
}

// Legal checks the AOD grid constraint of spec.md §3/§4.4: within a group,
// the relative row order and column order of start sites must equal that
// of end sites, and equal-row/-column at start implies equal at end.
func (g Group) Legal() bool {
	return legalOnAxis(g, rowOf) && legalOnAxis(g, colOf)
}

func rowOf(s arch.Site) int { return s.Row }
func colOf(s arch.Site) int { return s.Col }

func legalOnAxis(g Group, axis func(arch.Site) int) bool {
	n := len(g.Qubits)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			qi, qj := g.Qubits[i], g.Qubits[j]
			sa, sb := axis(g.Start[qi]), axis(g.Start[qj])
			ea, eb := axis(g.End[qi]), axis(g.End[qj])
			switch {
			case sa < sb && !(ea < eb):
				return false
			case sa > sb && !(ea > eb):
				return false
			case sa == sb && ea != eb:
				return false
			}
		}
	}
	return true
}
