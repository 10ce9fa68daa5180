// Package store owns the afero.Fs the compiler's boundary reads
// architecture descriptions through and writes results through, the way
// na/archio already accepts an afero.Fs parameter rather than touching
// os directly. This package is the single place that chooses which Fs
// implementation backs a given run (the real OS filesystem in
// production, an in-memory one in tests).
package store

import (
	"encoding/json"
	"fmt"

	"github.com/kegliz/naqc/na/codegen"
	"github.com/kegliz/naqc/na/smt"
	"github.com/spf13/afero"
)

// Store is a thin, injectable filesystem boundary for reading
// architecture/configuration input and writing compiled output.
type Store struct {
	Fs afero.Fs
}

// NewOS returns a Store backed by the real OS filesystem.
func NewOS() *Store { return &Store{Fs: afero.NewOsFs()} }

// NewMemory returns a Store backed by an in-memory filesystem, for tests
// and for callers that never touch disk.
func NewMemory() *Store { return &Store{Fs: afero.NewMemMapFs()} }

// WriteInstructions writes the code assembler's emitted instruction
// stream (spec.md §6 "Result emission"), one instruction per line.
func (s *Store) WriteInstructions(path string, lines []string) error {
	f, err := s.Fs.Create(path)
	if err != nil {
		return fmt.Errorf("store: create %s: %w", path, err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("store: write %s: %w", path, err)
		}
	}
	return nil
}

// WriteSMTResult writes an na/smt.Result's JSON serialization (spec.md §6
// "SMT result serialization") to path.
func (s *Store) WriteSMTResult(path string, result smt.Result) error {
	data, err := result.Marshal()
	if err != nil {
		return fmt.Errorf("store: marshal smt result: %w", err)
	}
	return afero.WriteFile(s.Fs, path, data, 0o644)
}

// ReadSMTResult reads back an na/smt.Result previously written by
// WriteSMTResult.
func (s *Store) ReadSMTResult(path string) (smt.Result, error) {
	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return smt.Result{}, fmt.Errorf("store: read %s: %w", path, err)
	}
	return smt.Unmarshal(data)
}

// WarningsOf renders codegen.Assembler.Warnings as a JSON document, for
// callers that want machine-readable unsupported-gate diagnostics
// alongside the instruction stream.
func WarningsOf(warnings []string) ([]byte, error) {
	return json.MarshalIndent(map[string][]string{"warnings": warnings}, "", "  ")
}

// WriteWarnings writes an assembler's accumulated warnings to path as
// JSON.
func (s *Store) WriteWarnings(path string, a *codegen.Assembler) error {
	data, err := WarningsOf(a.Warnings)
	if err != nil {
		return fmt.Errorf("store: marshal warnings: %w", err)
	}
	return afero.WriteFile(s.Fs, path, data, 0o644)
}
