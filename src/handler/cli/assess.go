package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"migration-advisor/src/controller"
	"migration-advisor/src/util"
)

func (h *Handler) assessCmd() *cobra.Command {
	var (
		outputDir string
		format    string
		save      bool
		failOver  float64
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "assess [path]",
		Short: "Assess a codebase for service decomposition readiness",
		Long:  "Extracts the source model, builds the dependency graphs, and reports coupling metrics, hotspots and the migration complexity score",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootPath := "."
			if len(args) > 0 {
				rootPath = args[0]
			}

			util.Info("Assessing codebase: %s (timeout: %v)", rootPath, timeout)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			// Run assessment
			assessCtrl := controller.NewAssessmentController(h.cfg)
			report, err := assessCtrl.Assess(ctx, controller.AssessRequest{
				RootPath: rootPath,
				Save:     save,
			})
			if err != nil {
				util.Error("Assessment failed: %v", err)
				return fmt.Errorf("assessment failed: %w", err)
			}

			// Output results
			reportCtrl := controller.NewReportController(h.cfg)
			if outputDir != "" {
				// Set output directory from flag
				h.cfg.Output.OutputDir = outputDir
				if format != "" {
					h.cfg.Output.Formats = []string{format}
				}

				paths, err := reportCtrl.GenerateReports(report)
				if err != nil {
					return fmt.Errorf("generating reports: %w", err)
				}
				for _, path := range paths {
					fmt.Printf("Report written to %s\n", path)
				}
			} else {
				// Output to stdout
				outputFormat := format
				if outputFormat == "" {
					outputFormat = "json"
				}

				output, err := reportCtrl.GenerateToString(report, outputFormat)
				if err != nil {
					// Fallback to raw JSON
					data, _ := json.MarshalIndent(report, "", "  ")
					fmt.Println(string(data))
				} else {
					fmt.Println(output)
				}
			}

			// Print summary to stderr
			fmt.Fprintf(os.Stderr, "\nAssessment complete:\n")
			fmt.Fprintf(os.Stderr, "  Types: %d across %d packages\n", report.Source.TypeCount, report.Source.PackageCount)
			fmt.Fprintf(os.Stderr, "  Cycles: %d\n", report.Coupling.CycleCount)
			fmt.Fprintf(os.Stderr, "  Hotspots: %d\n", len(report.Hotspots))
			fmt.Fprintf(os.Stderr, "  Complexity score: %.1f/100\n", report.ComplexityScore)

			if failOver > 0 && report.ComplexityScore > failOver {
				return fmt.Errorf("complexity score %.1f exceeds threshold %.1f", report.ComplexityScore, failOver)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (json, markdown, mermaid)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the history store")
	cmd.Flags().Float64Var(&failOver, "fail-over", 0, "Exit with an error when the complexity score exceeds this value (0 disables)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Minute, "Assessment timeout")

	return cmd
}
