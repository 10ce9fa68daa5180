package graphx

import "sort"

type interval struct {
	lo, hi int
	count  int
}

// RestingPositions computes the obligatory resting slots between fixed
// x-coordinates, per spec.md §4.2: for each color step, a moveable atom not
// paired with any fixed vertex at that time, that does have both a left and
// a right paired neighbor in the moveable sequence, needs a resting slot
// between those neighbors' fixed x-coordinates. Slot sets are merged across
// colors, preferring the tightest enclosing interval whenever two overlap.
func RestingPositions(moveable, fixed []int, coloring Coloring) []int {
	maxColor := -1
	for _, c := range coloring {
		if c > maxColor {
			maxColor = c
		}
	}
	fixedIndex := make(map[int]int, len(fixed))
	for i, f := range fixed {
		fixedIndex[f] = i
	}

	var resting []interval
	for t := 0; t <= maxColor; t++ {
		moveableX := make(map[int]int, len(moveable))
		for _, v := range moveable {
			for e, c := range coloring {
				if c != t || !e.Touches(v) {
					continue
				}
				u := e.Other(v)
				if idx, ok := fixedIndex[u]; ok {
					moveableX[v] = idx
				}
				break
			}
		}

		var step []interval
		for i, v := range moveable {
			if _, ok := moveableX[v]; ok {
				continue
			}
			before, hasBefore := -1, false
			for j := i - 1; j >= 0; j-- {
				if x, ok := moveableX[moveable[j]]; ok {
					before, hasBefore = x, true
					break
				}
			}
			after, hasAfter := -1, false
			for j := i + 1; j < len(moveable); j++ {
				if x, ok := moveableX[moveable[j]]; ok {
					after, hasAfter = x, true
					break
				}
			}
			if hasBefore && hasAfter {
				lo, hi := before, after
				if lo > hi {
					lo, hi = hi, lo
				}
				step = append(step, interval{lo: lo, hi: hi, count: 1})
			}
		}
		resting = mergeResting(resting, step)
	}

	var out []int
	for _, iv := range resting {
		for i := 0; i < iv.count; i++ {
			out = append(out, iv.lo)
		}
	}
	sort.Ints(out)
	return out
}

// mergeResting folds newly-discovered intervals into the running set,
// preferring the tightest (smallest-span) interval whenever two overlap.
func mergeResting(existing, fresh []interval) []interval {
	out := append([]interval(nil), existing...)
	for _, nw := range fresh {
		merged := false
		for i := range out {
			if overlaps(out[i], nw) {
				if span(nw) < span(out[i]) {
					lo, hi := maxInt(out[i].lo, nw.lo), minInt(out[i].hi, nw.hi)
					out[i] = interval{lo: lo, hi: hi, count: out[i].count + nw.count}
				} else {
					out[i].count += nw.count
				}
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, nw)
		}
	}
	return out
}

func overlaps(a, b interval) bool { return a.lo < b.hi && b.lo < a.hi }
func span(a interval) int         { return a.hi - a.lo }
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
