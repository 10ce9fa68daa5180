package graphx

import "sort"

// Coloring maps an edge to its assigned non-negative color.
type Coloring map[Edge]int

// ColorEdges assigns colors to edges starting with those adjacent to the
// first vertex in nodesQueue (spec.md §4.2 "Edge coloring with partial
// order"). It returns the coloring together with the partial order induced
// over the edges' fixed endpoints (the vertices not present in nodesQueue),
// used downstream by RestingPositions.
//
// Two invariants are maintained, matching spec.md §8's "Coloring" property:
//  1. adjacent edges (sharing an endpoint) never receive the same color;
//  2. if two queue vertices v, v' share two fixed neighbors w, w', the
//     relative color order between (v,w)/(v,w') matches that between
//     (v',w)/(v',w'), enforced by recording w→w' (or the reverse) in the
//     partial order whenever a new color relation is discovered.
func ColorEdges(g *InteractionGraph, edges []Edge, nodesQueue []int) (Coloring, *partialOrder, error) {
	inQueue := make(map[int]bool, len(nodesQueue))
	for _, v := range nodesQueue {
		inQueue[v] = true
	}
	var fixedVertices []int
	for _, v := range g.Vertices() {
		if !inQueue[v] {
			fixedVertices = append(fixedVertices, v)
		}
	}
	po := newPartialOrder(fixedVertices)

	coloring := make(Coloring, len(edges))
	maxColor := -1

	for _, v := range nodesQueue {
		var adjacent []Edge
		for _, e := range edges {
			if _, done := coloring[e]; !done && e.Touches(v) {
				adjacent = append(adjacent, e)
			}
		}
		sort.SliceStable(adjacent, func(i, j int) bool {
			return nAdjacentColors(edges, adjacent[i], coloring) > nAdjacentColors(edges, adjacent[j], coloring)
		})

		for _, e := range adjacent {
			u := e.Other(v)
			c, err := leastAdmissibleColor(g, coloring, maxColor, e, v, po)
			if err != nil {
				return nil, nil, err
			}
			coloring[e] = c
			if c > maxColor {
				maxColor = c
			}
			for f, k := range coloring {
				if f == e || !f.Touches(v) {
					continue
				}
				w := f.Other(v)
				switch {
				case k < c:
					if err := po.AddEdge(w, u); err != nil {
						return nil, nil, err
					}
				case k > c:
					if err := po.AddEdge(u, w); err != nil {
						return nil, nil, err
					}
				}
			}
		}
	}
	return coloring, po, nil
}

func nAdjacentColors(edges []Edge, e Edge, coloring Coloring) int {
	seen := make(map[int]bool)
	for _, f := range edges {
		if f == e {
			continue
		}
		if !e.Touches(f.A) && !e.Touches(f.B) {
			continue
		}
		if c, ok := coloring[f]; ok {
			seen[c] = true
		}
	}
	return len(seen)
}

func leastAdmissibleColor(g *InteractionGraph, coloring Coloring, maxColor int, e Edge, v int, po *partialOrder) (int, error) {
	minAdmissible := 0
	for f, k := range coloring {
		if g.EdgesAdjacent(e, f) && !f.Touches(v) {
			if k+1 > minAdmissible {
				minAdmissible = k + 1
			}
		}
	}
	u := e.Other(v)
	for c := minAdmissible; c <= maxColor+len(coloring)+2; c++ {
		if !colorFree(c, e, coloring, g) {
			continue
		}
		if colorOrderAdmissible(c, e, v, u, coloring, po) {
			return c, nil
		}
	}
	return 0, ErrInfeasibleColoring
}

func colorFree(c int, e Edge, coloring Coloring, g *InteractionGraph) bool {
	for f, k := range coloring {
		if k == c && g.EdgesAdjacent(e, f) {
			return false
		}
	}
	return true
}

// colorOrderAdmissible checks that assigning c to e does not violate the
// partial order on fixed vertices that the coloring is building up.
func colorOrderAdmissible(c int, e Edge, v, u int, coloring Coloring, po *partialOrder) bool {
	for f, k := range coloring {
		if f == e {
			continue
		}
		if !f.Touches(v) {
			continue
		}
		w := f.Other(v)
		switch {
		case k > c:
			if po.Reachable(w, u) {
				return false
			}
		case k < c:
			if po.Reachable(u, w) {
				return false
			}
		}
	}
	return true
}
