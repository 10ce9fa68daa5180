package main

import (
	"fmt"
	"os"

	"github.com/kegliz/naqc/internal/config"
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "naqc",
	Short: "Neutral-atom quantum circuit placement-and-routing compiler",
	Long: `naqc compiles a logical quantum circuit against a neutral-atom
hardware architecture description into a concrete sequence of physical
operations: single-qubit rotations, global entangling pulses, and atom
load/move/store shuttles.`,
}

// Execute adds all child commands to rootCmd and runs it. Called once
// from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "configuration JSON file (spec §6); defaults silently applied for any key it omits")
	rootCmd.AddCommand(compileCmd, solveCmd, optimizeCmd, architectureCmd)
}

// loadConfig wraps internal/config.Load, printing any unknown-key
// warnings to stderr rather than aborting (spec §6's "unknown keys warn,
// missing keys default silently" rule).
func loadConfig() (config.Config, error) {
	return config.Load(cfgFile, func(key string) {
		fmt.Fprintf(os.Stderr, "naqc: warning: unknown configuration key %q\n", key)
	})
}
