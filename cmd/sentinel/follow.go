package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"IssuanceSentinel/internal/report"
	"IssuanceSentinel/internal/runner"
	"IssuanceSentinel/internal/scheduler"
)

func newFollowCommand(a *app) *cobra.Command {
	var summaryCron string
	var runOnStart bool

	cmd := &cobra.Command{
		Use:   "follow",
		Short: "Advance one block per cron tick until interrupted",
		Long: "Evaluates the heights before run.from silently, then advances one block per\n" +
			"follow.cron tick. run.to does not apply; the command runs until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rec := a.openRecorder()
			defer rec.Close()

			r, err := runner.New(a.runnerOptions(rec))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatManifest(a.cfg.RewardSchedule(), a.cfg.PolicyParameters(), a.cfg.Run.Unit))

			if err := r.CatchUp(ctx, a.cfg.Run.From); err != nil {
				return fmt.Errorf("catch up to %d: %w", a.cfg.Run.From, err)
			}

			sched := scheduler.NewScheduler(ctx, r, a.cfg.Run.Unit)
			if err := sched.Register(a.cfg.Follow.Cron, summaryCron); err != nil {
				return err
			}

			if runOnStart {
				a.log.Infof("evaluating block %d now", r.NextHeight())
				sched.StepNow()
			}

			sched.Start()
			a.log.Infof("following from height %d on %q. Press Ctrl+C to stop.", r.NextHeight(), a.cfg.Follow.Cron)

			<-ctx.Done()

			a.log.Info("shutdown signal received, stopping...")
			sched.Stop()
			fmt.Fprint(cmd.OutOrStdout(), report.FormatRunSummary(r.Finish(), a.cfg.Run.Unit))
			return nil
		},
	}

	cmd.Flags().StringVar(&summaryCron, "summary-cron", "0 0 * * * *", "cron spec for progress summaries (empty disables)")
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "evaluate the first block without waiting for a tick")
	return cmd
}
