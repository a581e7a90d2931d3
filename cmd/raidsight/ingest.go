package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <report-code> <fight-id>",
		Short: "Compute and persist all metrics for one fight",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fightID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("fight-id must be an integer: %w", err)
			}
			svc, _, err := buildService(cmd.Context())
			if err != nil {
				return err
			}
			result, err := svc.IngestFight(cmd.Context(), args[0], fightID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ingested fight %d of %s: %d events, %d players\n",
				result.Fight.FightID, result.Fight.ReportCode, result.Events, result.Players)
			return nil
		},
	}
}
