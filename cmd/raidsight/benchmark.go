package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/raidsight/raidsight/internal/pipeline"
)

func newBenchmarkCmd() *cobra.Command {
	var encounterID int
	var computeOnly bool

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Run the benchmark pipeline: discover, ingest, compute",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := buildService(cmd.Context())
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			opts := pipeline.Options{
				EncounterID: encounterID,
				ComputeOnly: computeOnly,
				Progress: func(done, total int) {
					if bar == nil {
						bar = progressbar.Default(int64(total), "ingesting reports")
					}
					_ = bar.Set(done)
				},
			}

			result, err := svc.RunBenchmarkPipeline(cmd.Context(), opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: discovered %d, ingested %d, failed %d, computed %d\n",
				result.RunID, result.Discovered, result.Ingested, result.Failed, result.Computed)
			for _, msg := range result.Errors {
				fmt.Fprintf(out, "  error: %s\n", msg)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&encounterID, "encounter", 0, "limit the run to one encounter id")
	cmd.Flags().BoolVar(&computeOnly, "compute-only", false, "skip discovery and ingestion, recompute documents from the existing corpus")
	return cmd
}
