package graphx

import "sort"

// ComputeSequence runs the full interaction-graph layout pass of spec.md
// §4.2 "Compute sequence": it selects a maximum independent set as the
// moveable atoms, colors the edges covered by that set, derives the fixed
// atoms' relative x-positions from the resulting partial order (interleaved
// with obligatory resting slots), and then fills in the moveable atoms'
// relative x-position at every color step.
func ComputeSequence(g *InteractionGraph) (moveablePositions []map[int]int, fixedPositions map[int]int, err error) {
	mis := MaxIndependentSet(g)
	ungrouped := append([]int(nil), mis...)
	sort.SliceStable(ungrouped, func(i, j int) bool {
		return g.Degree(ungrouped[i]) > g.Degree(ungrouped[j])
	})
	sequence := GroupByComponent(g, ungrouped)

	edges := CoveredEdges(g, mis)
	coloring, po, err := ColorEdges(g, edges, sequence)
	if err != nil {
		return nil, nil, err
	}
	fixed := po.TopologicallyOrdered()
	resting := RestingPositions(sequence, fixed, coloring)

	fixedPositions = make(map[int]int, len(fixed))
	ri := 0
	for x, f := range fixed {
		fixedPositions[f] = x + ri
		for ri < len(resting) && x == resting[ri] {
			ri++
		}
	}

	maxColor := -1
	for _, c := range coloring {
		if c > maxColor {
			maxColor = c
		}
	}

	maxFixedX := 0
	for _, x := range fixedPositions {
		if x > maxFixedX {
			maxFixedX = x
		}
	}

	moveablePositions = make([]map[int]int, maxColor+1)
	for t := 0; t <= maxColor; t++ {
		posT := make(map[int]int, len(sequence))
		for _, v := range sequence {
			for e, c := range coloring {
				if c == t && e.Touches(v) {
					posT[v] = fixedPositions[e.Other(v)]
					break
				}
			}
		}
		for i, v := range sequence {
			if _, ok := posT[v]; ok {
				continue
			}
			if i > 0 {
				rightX, ok := 0, false
				for j := i - 1; j >= 0; j-- {
					if x, ok2 := posT[sequence[j]]; ok2 {
						rightX, ok = x, true
						break
					}
				}
				if !ok {
					posT[v] = 0
					continue
				}
				minX := rightX - 1
				if minX > -1 {
					minX = -1
				}
				var freeX []int
				for x := minX; x <= rightX; x++ {
					if !isFixedX(fixedPositions, x) {
						freeX = append(freeX, x)
					}
				}
				if len(freeX) == 0 {
					freeX = []int{minX}
				}
				posT[v] = maxOfInts(freeX)
			} else {
				leftVal, leftQubit, found := 0, -1, false
				for q, x := range posT {
					if !found || x > leftVal {
						leftVal, leftQubit, found = x, q, true
					}
				}
				if !found {
					posT[v] = 0
					continue
				}
				k := indexIn(sequence, leftQubit) + 1
				var freeX []int
				for x := leftVal + 1; x <= maxFixedX; x++ {
					if !isFixedX(fixedPositions, x) {
						freeX = append(freeX, x)
					}
				}
				if k >= 1 && k <= len(freeX) {
					posT[v] = freeX[k-1]
				} else {
					posT[v] = maxFixedX + k - len(freeX)
				}
			}
		}
		moveablePositions[t] = posT
	}
	return moveablePositions, fixedPositions, nil
}

func isFixedX(fixedPositions map[int]int, x int) bool {
	for _, fx := range fixedPositions {
		if fx == x {
			return true
		}
	}
	return false
}

func maxOfInts(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func indexIn(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}
