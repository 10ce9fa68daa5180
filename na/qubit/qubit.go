// Package qubit defines the per-qubit runtime state tracked across the
// placement pipeline (spec.md §3 "Qubit").
package qubit

import "github.com/kegliz/naqc/na/arch"

// Holder tells whether an atom is currently parked in the SLM or held
// (moveable) by the AOD.
type Holder int

const (
	HeldBySLM Holder = iota
	HeldByAOD
)

// State is one qubit's physical state at a given stage.
type State struct {
	Site   arch.Site
	Holder Holder
}

// Moveable reports whether the qubit can participate in an AOD shuttle
// this stage.
func (s State) Moveable() bool { return s.Holder == HeldByAOD }
