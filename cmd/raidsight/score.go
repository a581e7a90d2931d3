package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raidsight/raidsight/internal/domain/rotation"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <report-code> <fight-id> <player>",
		Short: "Score one player's rotation in one fight",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fightID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("fight-id must be an integer: %w", err)
			}
			svc, _, err := buildService(cmd.Context())
			if err != nil {
				return err
			}
			report, err := svc.ScoreRotation(cmd.Context(), args[0], fightID, args[2])
			if err != nil {
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
}

func printReport(cmd *cobra.Command, report rotation.Report) {
	out := cmd.OutOrStdout()
	switch report.Status {
	case rotation.StatusNoData, rotation.StatusUnsupported:
		fmt.Fprintf(out, "%s (%s %s): %s\n", report.Player, report.Spec, report.Class, report.Message)
		return
	default:
	}

	fmt.Fprintf(out, "%s (%s %s): grade %s, score %.1f (%d/%d rules passed, %s thresholds)\n",
		report.Player, report.Spec, report.Class,
		report.Grade, report.Score, report.Passed, report.Checked, report.Source)
	for _, rule := range report.Rules {
		mark := "FAIL"
		if rule.Passed {
			mark = "ok"
		}
		if rule.Target > 0 {
			fmt.Fprintf(out, "  [%-4s] %-32s target %.1f actual %.1f", mark, rule.Name, rule.Target, rule.Actual)
		} else {
			fmt.Fprintf(out, "  [%-4s] %-32s", mark, rule.Name)
		}
		if rule.Detail != "" {
			fmt.Fprintf(out, " (%s)", rule.Detail)
		}
		fmt.Fprintln(out)
	}
}
