package smt

import "context"

// Run encodes p, solves it, and returns the extracted Result. Result.Sat
// is false (with a zero-value Stages list) when the formula is
// unsatisfiable; a timeout is surfaced as an error per spec.md §7.
func Run(ctx context.Context, p Problem) (Result, error) {
	m := Encode(p)
	assignment, sat, err := Solve(ctx, m)
	if err != nil {
		return Result{}, err
	}
	if !sat {
		return Result{Sat: false}, nil
	}
	return Extract(p, assignment), nil
}
