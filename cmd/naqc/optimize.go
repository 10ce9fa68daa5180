package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kegliz/naqc/internal/store"
	"github.com/kegliz/naqc/na/optimizer"
	"github.com/kegliz/naqc/na/smt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const minStagesWorker = "min-stages"

// init registers the min-stages worker: the smallest NumStages for which
// an otherwise-fixed na/smt.Problem template is satisfiable. Registration
// must happen unconditionally at package init, since the optimizer
// re-execs this same binary as the worker subprocess (spec.md §4.6/§9).
func init() {
	optimizer.Register(minStagesWorker, minStagesWorkerFunc)
}

// minStagesWorkerFunc decodes params once per candidate k as the problem
// template with NumStages overridden to k, and discharges it with
// na/smt.Run.
func minStagesWorkerFunc(k int, params json.RawMessage) (bool, json.RawMessage, error) {
	var template smt.Problem
	if err := json.Unmarshal(params, &template); err != nil {
		return false, nil, fmt.Errorf("min-stages worker: decoding problem template: %w", err)
	}
	template.NumStages = k

	result, err := smt.Run(context.Background(), template)
	if err != nil {
		return false, nil, err
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return false, nil, err
	}
	return result.Sat, encoded, nil
}

var (
	optimizeProblemPath string
	optimizeInitialK    int
	optimizeMaxWorkers  int
	optimizeTimeout     time.Duration
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the minimum satisfying stage count for a problem template (spec §4.6)",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeProblemPath, "problem", "", "na/smt.Problem JSON template (NumStages is overridden per candidate k)")
	optimizeCmd.Flags().IntVar(&optimizeInitialK, "initial-k", 1, "starting candidate stage count")
	optimizeCmd.Flags().IntVar(&optimizeMaxWorkers, "max-workers", 4, "maximum concurrent candidate-k subprocesses")
	optimizeCmd.Flags().DurationVar(&optimizeTimeout, "initial-timeout", 2*time.Second, "initial per-worker timeout, grown ×10 each unsuccessful pass")
	_ = optimizeCmd.MarkFlagRequired("problem")
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	data, err := readProblemTemplate(optimizeProblemPath)
	if err != nil {
		return err
	}

	outcome, err := optimizer.Run(context.Background(), optimizer.Spec{
		WorkerName:     minStagesWorker,
		Params:         data,
		InitialK:       optimizeInitialK,
		MaxNSubProcs:   optimizeMaxWorkers,
		InitialTimeout: optimizeTimeout,
	})
	if err != nil {
		return fmt.Errorf("naqc optimize: %w", err)
	}

	cmd.Printf("minimum k = %d, sat = %v\n", outcome.K, outcome.Sat)
	if len(outcome.Result) > 0 {
		cmd.Println(string(outcome.Result))
	}
	return nil
}

func readProblemTemplate(path string) ([]byte, error) {
	data, err := afero.ReadFile(store.NewOS().Fs, path)
	if err != nil {
		return nil, fmt.Errorf("naqc optimize: reading problem template: %w", err)
	}
	return data, nil
}
