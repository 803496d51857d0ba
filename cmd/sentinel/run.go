package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"IssuanceSentinel/internal/report"
	"IssuanceSentinel/internal/runner"
)

func newRunCommand(a *app) *cobra.Command {
	var from, to uint64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a fixed height range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("from") {
				a.cfg.Run.From = from
			}
			if cmd.Flags().Changed("to") {
				a.cfg.Run.To = to
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rec := a.openRecorder()
			defer rec.Close()

			r, err := runner.New(a.runnerOptions(rec))
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.FormatManifest(a.cfg.RewardSchedule(), a.cfg.PolicyParameters(), a.cfg.Run.Unit))
			sum, err := r.RunRange(ctx, a.cfg.Run.From, a.cfg.Run.To)
			if sum != nil {
				fmt.Fprint(cmd.OutOrStdout(), report.FormatRunSummary(sum, a.cfg.Run.Unit))
			}
			return err
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 0, "first height to report (defaults to run.from)")
	cmd.Flags().Uint64Var(&to, "to", 0, "last height to evaluate (defaults to run.to)")
	return cmd
}
