package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/onepager/internal/observability"
	"github.com/jonathan/onepager/internal/resume"
	"github.com/jonathan/onepager/internal/types"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a résumé JSON file to a one-page PDF",
	Long:  "Runs the full fitting pipeline locally: normalizes the résumé, generates achievements, walks the strategy ladder in headless Chrome and writes the PDF.",
	RunE:  runRender,
}

var (
	renderInput    string
	renderOutput   string
	renderTemplate string
	renderLanguage string
	renderVerbose  bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "in", "i", "", "Path to résumé or request JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "one-pager-resume.pdf", "Path to output PDF file")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template name (overrides the file)")
	renderCmd.Flags().StringVar(&renderLanguage, "language", "", "Language code (overrides the file)")
	renderCmd.Flags().BoolVarP(&renderVerbose, "verbose", "v", false, "Print the normalized résumé and fit attempts")

	if err := renderCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	req, err := readRequest(renderInput)
	if err != nil {
		return err
	}
	if renderTemplate != "" {
		req.Template = renderTemplate
	}
	if renderLanguage != "" {
		req.Language = renderLanguage
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cfg, logger, false)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.Generate(cmd.Context(), req, uuid.NewString())
	if err != nil {
		return fmt.Errorf("failed to generate one-pager: %w", err)
	}

	if err := os.WriteFile(renderOutput, out.PDF, 0644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	w := cmd.OutOrStdout()
	if renderVerbose {
		printer := observability.NewPrinter(w)
		printer.PrintRecord(resume.Normalize(*req.Data))
		if score, err := a.service.Score(types.ScoreRequest{Data: req.Data}); err == nil {
			printer.PrintATSReport(score.ATS, score.Issues)
		}
		printer.PrintFitResult(out.Result)
	}

	_, _ = fmt.Fprintf(w, "Wrote %s (strategy=%s, ats=%d, %s)\n", renderOutput, out.Strategy, out.ATSScore, out.Duration.Round(time.Millisecond))
	return nil
}
