package smt

import (
	"context"
	"errors"
	"sort"

	"github.com/kegliz/naqc/na/smt/model"
)

// ErrTimeout is returned by Solve when ctx is cancelled before a verdict is
// reached (spec.md §7 "Timeout").
var ErrTimeout = errors.New("smt: solve timed out")

// Solve discharges m with a bounded backtracking search: depth-first
// assignment of variables in declaration order, pruning as soon as a
// constraint's full variable set is bound, with chronological
// backtracking on failure. This stands in for a bit-vector SMT
// backend (see DESIGN.md for why no such dependency exists in the
// reference corpus) — correct for the small, bounded-domain instances
// spec.md §8's scenarios exercise, not a general-purpose solver.
func Solve(ctx context.Context, m *model.Model) (model.Assignment, bool, error) {
	vars := m.Vars()
	constraints := m.Constraints()

	// Index constraints by the last variable (in declaration order) they
	// depend on, so we can check each constraint exactly once, right
	// after its final variable is bound.
	pos := make(map[model.VarID]int, len(vars))
	for i, v := range vars {
		pos[v.ID] = i
	}
	byReadyAt := make([][]model.Constraint, len(vars))
	for _, c := range constraints {
		last := -1
		for _, vid := range c.Vars() {
			if p, ok := pos[vid]; ok && p > last {
				last = p
			}
		}
		if last >= 0 {
			byReadyAt[last] = append(byReadyAt[last], c)
		}
	}

	assignment := make(model.Assignment, len(vars))
	checkCounter := 0

	var backtrack func(idx int) (bool, error)
	backtrack = func(idx int) (bool, error) {
		checkCounter++
		if checkCounter%4096 == 0 {
			select {
			case <-ctx.Done():
				return false, ErrTimeout
			default:
			}
		}
		if idx == len(vars) {
			return true, nil
		}
		v := vars[idx]
		for val := v.Domain.Lo; val <= v.Domain.Hi; val++ {
			assignment[v.ID] = val
			ok := true
			for _, c := range byReadyAt[idx] {
				if !c.Satisfied(assignment) {
					ok = false
					break
				}
			}
			if ok {
				sat, err := backtrack(idx + 1)
				if err != nil {
					return false, err
				}
				if sat {
					return true, nil
				}
			}
		}
		delete(assignment, v.ID)
		return false, nil
	}

	sat, err := backtrack(0)
	if err != nil {
		return nil, false, err
	}
	if !sat {
		return nil, false, nil
	}
	return assignment, true, nil
}

// sortedVarIDs returns a copy of ids in ascending order; nothing in the
// package calls it.
func sortedVarIDs(ids []model.VarID) []model.VarID {
	out := append([]model.VarID(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
