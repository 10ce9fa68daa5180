package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/kegliz/naqc/internal/logger"
	"github.com/kegliz/naqc/internal/server"
	"github.com/kegliz/naqc/internal/store"
	"github.com/kegliz/naqc/na/archio"
	"github.com/kegliz/naqc/na/codegen"
	"github.com/kegliz/naqc/na/patch"
	"github.com/kegliz/naqc/na/pipeline"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	compileArchPath    string
	compileCircuitPath string
	compileGateName    string
	compileOutPath     string
	compileWarnPath    string
	compilePatchGrid   string
	compileDebug       bool
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a circuit against an architecture into a physical instruction stream",
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVar(&compileArchPath, "architecture", "", "architecture JSON file (required)")
	compileCmd.Flags().StringVar(&compileCircuitPath, "circuit", "", "circuit JSON file (required)")
	compileCmd.Flags().StringVar(&compileGateName, "gate", "CNOT", "two-qubit gate name routed through the entanglement zone")
	compileCmd.Flags().StringVar(&compileOutPath, "out", "instructions.txt", "output path for the emitted instruction stream")
	compileCmd.Flags().StringVar(&compileWarnPath, "warnings-out", "", "optional output path for unsupported-gate warnings (JSON)")
	compileCmd.Flags().StringVar(&compilePatchGrid, "patch", "", "optional RxC patch-replication grid applied to the placement sequence")
	compileCmd.Flags().BoolVar(&compileDebug, "debug", false, "debug-level logging")
	_ = compileCmd.MarkFlagRequired("architecture")
	_ = compileCmd.MarkFlagRequired("circuit")
}

func runCompile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s := store.NewOS()
	a, err := archio.LoadJSON(s.Fs, compileArchPath)
	if err != nil {
		return fmt.Errorf("naqc compile: loading architecture: %w", err)
	}

	circuitData, err := afero.ReadFile(s.Fs, compileCircuitPath)
	if err != nil {
		return fmt.Errorf("naqc compile: loading circuit: %w", err)
	}
	numQubits, apps, err := decodeCircuit(circuitData)
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{Debug: compileDebug})
	runID := uuid.Must(uuid.NewRandom()).String()
	registry := server.NewRegistry()
	registry.Update(runID, server.StageLayer)
	runLog := log.SpawnForRun(runID, 0)
	runLog.Info().Int("numQubits", numQubits).Str("gate", compileGateName).Msg("starting compile")

	registry.Update(runID, server.StagePlacement)
	result, err := pipeline.Compile(a, cfg.Placer.ToAstarParams(), numQubits, apps, compileGateName)
	if err != nil {
		registry.Fail(runID, err)
		return fmt.Errorf("naqc compile: %w", err)
	}

	if compilePatchGrid != "" {
		rows, cols, perr := parsePatchGrid(compilePatchGrid)
		if perr != nil {
			return fmt.Errorf("naqc compile: --patch: %w", perr)
		}
		if _, perr := patch.ExpandSequence(a, result.Sequence, patch.Config{Rows: rows, Cols: cols}); perr != nil {
			registry.Fail(runID, perr)
			return fmt.Errorf("naqc compile: patch replication: %w", perr)
		}
		runLog.Info().Str("patch", compilePatchGrid).Msg("patch replication validated")
	}

	registry.Update(runID, server.StageCodegen)
	assembler := codegen.New(a, cfg.Codegen.ToCodegenConfig(), func(q int) string { return fmt.Sprintf("q%d", q) })
	lines, err := assembler.Emit(result.Sequence, result.Transitions, result.Layers)
	if err != nil {
		registry.Fail(runID, err)
		return fmt.Errorf("naqc compile: assembling instructions: %w", err)
	}

	if err := s.WriteInstructions(compileOutPath, lines); err != nil {
		return fmt.Errorf("naqc compile: %w", err)
	}
	if compileWarnPath != "" {
		if err := s.WriteWarnings(compileWarnPath, assembler); err != nil {
			return fmt.Errorf("naqc compile: writing warnings: %w", err)
		}
	}

	registry.Update(runID, server.StageDone)
	runLog.Info().Int("instructions", len(lines)).Int("layers", len(result.Layers)).Msg("compile complete")
	cmd.Printf("wrote %d instructions to %s\n", len(lines), compileOutPath)
	return nil
}

func parsePatchGrid(s string) (int, int, error) {
	var rows, cols int
	if _, err := fmt.Sscanf(s, "%dx%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("expected RxC (e.g. 2x2), got %q", s)
	}
	return rows, cols, nil
}
