package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"migration-advisor/src/controller"
)

func (h *Handler) runsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [path]",
		Short: "List stored assessment runs for a codebase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootPath := "."
			if len(args) > 0 {
				rootPath = args[0]
			}

			assessCtrl := controller.NewAssessmentController(h.cfg)
			runs, err := assessCtrl.ListRuns(rootPath, limit)
			if err != nil {
				return fmt.Errorf("listing runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("No stored runs. Use 'assess --save' to persist one.")
				return nil
			}

			for _, run := range runs {
				fmt.Printf("%s  %-16s  score %5.1f  %4d types  %3d hotspots  %d cycles\n",
					run.ID, humanize.Time(run.GeneratedAt), run.ComplexityScore,
					run.TypeCount, run.HotspotCount, run.CycleCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum runs to list (0 = all)")

	return cmd
}
