package main

import (
	"github.com/kegliz/naqc/internal/store"
	"github.com/kegliz/naqc/na/archio"
	"github.com/spf13/cobra"
)

var architectureCmd = &cobra.Command{
	Use:   "architecture",
	Short: "Inspect and validate architecture descriptions",
}

var validatePath string

var architectureValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate an architecture JSON file (spec §3/§7)",
	RunE:  runArchitectureValidate,
}

func init() {
	architectureValidateCmd.Flags().StringVar(&validatePath, "file", "", "architecture JSON file (required)")
	_ = architectureValidateCmd.MarkFlagRequired("file")
	architectureCmd.AddCommand(architectureValidateCmd)
}

func runArchitectureValidate(cmd *cobra.Command, _ []string) error {
	s := store.NewOS()
	a, err := archio.LoadJSON(s.Fs, validatePath)
	if err != nil {
		return err
	}
	cmd.Printf("architecture %q valid: %d storage sites, %d entanglement sites\n",
		a.Name, len(a.AllStorageSites()), len(a.AllEntanglementSites()))
	return nil
}
