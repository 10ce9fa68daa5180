// Package patch implements the patch-replication transform of spec.md's
// glossary entry for "Patch": a small logical block of physical atoms
// standing in for one logical qubit, used for error-corrected circuits.
// Grounded on original_source/src/na/nalac/NAMapper.cpp's
// `makeLogicalArrays` (patch-row/patch-col replication of every logical
// position into a grid of physical offsets within the same zone).
package patch

import (
	"fmt"

	"github.com/kegliz/naqc/na/arch"
	"github.com/kegliz/naqc/na/dsu"
	"github.com/kegliz/naqc/na/placement"
)

// Config names the patch grid's shape: Rows*Cols physical atoms realize
// one logical qubit.
type Config struct {
	Rows, Cols int
}

// Mapping is the result of expanding one logical Placement into its
// physical, patch-replicated form: Physical is the expanded Placement,
// and LogicalOf maps a physical atom index back to the logical qubit it
// belongs to. Expand fills LogicalOf directly from the logical index; the
// dsu.DSU forest it also builds over the replicas is not part of the
// Mapping.
type Mapping struct {
	Physical  placement.Placement
	LogicalOf []int
}

// Expand replicates a single-atom-per-qubit Placement into a
// Config.Rows*Config.Cols-atom-per-qubit Placement, offsetting each
// logical qubit's replicas by (r, c) within its occupied SLM. a is used
// to validate that every replicated site stays within its SLM's bounds.
func Expand(a *arch.Architecture, p placement.Placement, cfg Config) (Mapping, error) {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return Mapping{}, fmt.Errorf("patch: invalid config %+v", cfg)
	}

	physical := make(placement.Placement, 0, len(p)*cfg.Rows*cfg.Cols)
	logicalOf := make([]int, 0, len(p)*cfg.Rows*cfg.Cols)
	d := dsu.New(len(p) * cfg.Rows * cfg.Cols)

	for q, site := range p {
		first := len(physical)
		for r := 0; r < cfg.Rows; r++ {
			for c := 0; c < cfg.Cols; c++ {
				replica := arch.Site{SLMID: site.SLMID, Row: site.Row + r, Col: site.Col + c}
				if _, _, err := a.Coords(replica); err != nil {
					return Mapping{}, fmt.Errorf("patch: qubit %d replica (r=%d,c=%d): %w", q, r, c, err)
				}
				physical = append(physical, replica)
				logicalOf = append(logicalOf, q)
			}
		}
		for i := first + 1; i < len(physical); i++ {
			d.Union(first, i)
		}
	}

	if !physical.Disjoint() {
		return Mapping{}, fmt.Errorf("patch: expanded placement has colliding replicas (patch grid overlaps an adjacent qubit's patch)")
	}

	return Mapping{Physical: physical, LogicalOf: logicalOf}, nil
}

// ExpandSequence applies Expand to every step of seq, preserving step
// kind/layer tags, so a patch-replicated circuit keeps the same ordering
// guarantees as its logical counterpart (spec.md §5).
func ExpandSequence(a *arch.Architecture, seq *placement.Sequence, cfg Config) ([]Mapping, error) {
	steps := seq.Steps()
	out := make([]Mapping, len(steps))
	for i, step := range steps {
		m, err := Expand(a, step.Placement, cfg)
		if err != nil {
			return nil, fmt.Errorf("patch: step %d (%s, layer %d): %w", i, step.Kind, step.Layer, err)
		}
		out[i] = m
	}
	return out, nil
}
