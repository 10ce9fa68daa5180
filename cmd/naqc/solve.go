package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kegliz/naqc/internal/store"
	"github.com/kegliz/naqc/na/smt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	solveProblemPath string
	solveOutPath     string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Discharge an SMT placement-and-routing problem directly (spec §4.5)",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveProblemPath, "problem", "", "na/smt.Problem JSON file (required)")
	solveCmd.Flags().StringVar(&solveOutPath, "out", "", "optional output path for the result (spec §6 SMT result serialization); prints to stdout if empty")
	_ = solveCmd.MarkFlagRequired("problem")
}

func runSolve(cmd *cobra.Command, _ []string) error {
	s := store.NewOS()
	data, err := afero.ReadFile(s.Fs, solveProblemPath)
	if err != nil {
		return fmt.Errorf("naqc solve: reading problem: %w", err)
	}
	var problem smt.Problem
	if err := json.Unmarshal(data, &problem); err != nil {
		return fmt.Errorf("naqc solve: decoding problem: %w", err)
	}

	result, err := smt.Run(context.Background(), problem)
	if err != nil {
		return fmt.Errorf("naqc solve: %w", err)
	}

	if solveOutPath == "" {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("naqc solve: encoding result: %w", err)
		}
		cmd.Println(string(encoded))
		return nil
	}
	if err := s.WriteSMTResult(solveOutPath, result); err != nil {
		return fmt.Errorf("naqc solve: %w", err)
	}
	cmd.Printf("wrote SMT result to %s\n", solveOutPath)
	return nil
}
