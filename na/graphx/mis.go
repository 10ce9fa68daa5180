package graphx

import "sort"

// MaxIndependentSet computes a greedy, degree-descending maximal independent
// set (spec.md §4.2): sort vertices by degree descending, repeatedly take
// the head, add it to the result, then remove it and all its neighbors from
// the candidate queue.
func MaxIndependentSet(g *InteractionGraph) []int {
	queue := g.Vertices()
	sort.SliceStable(queue, func(i, j int) bool {
		return g.Degree(queue[i]) > g.Degree(queue[j])
	})

	var result []int
	for len(queue) > 0 {
		v := queue[0]
		result = append(result, v)
		var rest []int
		for _, u := range queue {
			if u == v || g.Adjacent(u, v) {
				continue
			}
			rest = append(rest, u)
		}
		queue = rest
	}
	return result
}

// CoveredEdges returns every edge incident to at least one vertex in vs.
func CoveredEdges(g *InteractionGraph, vs []int) []Edge {
	seen := make(map[Edge]bool)
	var out []Edge
	for _, v := range vs {
		for _, e := range g.AdjacentEdges(v) {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// GroupByComponent reorders sequence so that vertices belonging to the same
// connected component of g appear contiguously, preserving the relative
// order of sequence within each component (spec.md §4.2 "Group by connected
// component").
func GroupByComponent(g *InteractionGraph, sequence []int) []int {
	parent := make(map[int]int)
	var find func(int) int
	find = func(x int) int {
		if _, ok := parent[x]; !ok {
			parent[x] = x
		}
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	vs := g.Vertices()
	for _, v := range vs {
		find(v)
	}
	for _, e := range g.Edges() {
		union(e.A, e.B)
	}

	var roots []int
	seenRoot := make(map[int]bool)
	for _, v := range sequence {
		r := find(v)
		if !seenRoot[r] {
			seenRoot[r] = true
			roots = append(roots, r)
		}
	}

	var out []int
	for _, r := range roots {
		for _, u := range sequence {
			if find(u) == r {
				out = append(out, u)
			}
		}
	}
	return out
}
