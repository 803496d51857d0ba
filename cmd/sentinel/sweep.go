package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"IssuanceSentinel/internal/model"
	"IssuanceSentinel/internal/report"
	"IssuanceSentinel/internal/runner"
)

func newSweepCommand(a *app) *cobra.Command {
	var withBase bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate the configured policy variants in parallel over run.from..run.to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var variants []runner.Variant
			if withBase {
				variants = append(variants, runner.Variant{Label: "base", Policy: a.cfg.PolicyParameters()})
			}
			for _, v := range a.cfg.Sweep {
				variants = append(variants, runner.Variant{Label: v.Label, Policy: a.cfg.VariantPolicy(v)})
			}
			if len(variants) == 0 {
				return errors.New("no sweep variants configured")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rec := a.openRecorder()
			defer rec.Close()

			sums, err := runner.Sweep(ctx, a.runnerOptions(rec), variants, a.cfg.Run.From, a.cfg.Run.To)
			var done []*model.RunSummary
			for _, s := range sums {
				if s != nil {
					done = append(done, s)
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), report.FormatSweep(done, a.cfg.Run.Unit))
			return err
		},
	}

	cmd.Flags().BoolVar(&withBase, "with-base", true, "include the unmodified base policy as a variant")
	return cmd
}
