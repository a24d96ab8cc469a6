package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/onepager/internal/observability"
	"github.com/jonathan/onepager/internal/pipeline"
	"github.com/jonathan/onepager/internal/types"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Estimate the ATS score of a résumé JSON file",
	Long:  "Normalizes the résumé and prints its ATS heuristic score and lint issues. No model or browser is used.",
	RunE:  runScore,
}

var (
	scoreInput string
	scoreJSON  bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to résumé or request JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the result as JSON")

	if err := scoreCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(scoreInput)
	if err != nil {
		return err
	}

	svc := pipeline.New(pipeline.Deps{})
	result, err := svc.Score(types.ScoreRequest{Data: req.Data})
	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}

	w := cmd.OutOrStdout()
	if scoreJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	observability.NewPrinter(w).PrintATSReport(result.ATS, result.Issues)
	return nil
}
