package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"IssuanceSentinel/internal/collector"
	"IssuanceSentinel/internal/config"
	"IssuanceSentinel/internal/logging"
	"IssuanceSentinel/internal/recorder"
	"IssuanceSentinel/internal/runner"
)

// app carries state shared by all subcommands once the config is loaded.
type app struct {
	configPath string
	verbose    bool
	cfg        *config.Config
	log        *logrus.Entry
}

func newRootCommand() *cobra.Command {
	a := &app{log: logging.For("main")}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}

	cmd := &cobra.Command{
		Use:           "sentinel",
		Short:         "IssuanceSentinel - per-block issuance verifier",
		Long:          "Computes the issuance a halving, capped, spend-throttled policy allows at each block height.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultPath, "path to YAML config")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every evaluated block")

	cmd.AddCommand(newRunCommand(a))
	cmd.AddCommand(newFollowCommand(a))
	cmd.AddCommand(newSweepCommand(a))

	return cmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if a.verbose {
		cfg.Run.Verbose = true
	}
	if err := logging.Configure(logging.Options{Level: cfg.Log.Level, Path: cfg.Log.Path}); err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// openRecorder falls back to the no-op recorder when SQLite is not configured
// or cannot be opened.
func (a *app) openRecorder() recorder.Recorder {
	if a.cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(a.cfg.Database.SQLitePath)
	if err != nil {
		a.log.Warnf("init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

func (a *app) runnerOptions(rec recorder.Recorder) runner.Options {
	src := collector.NewFixedSource(a.cfg.Spend.PerBlock)
	a.log.Infof("spend source: %s (%d per block)", src.Name(), src.PerBlock)
	return runner.Options{
		Schedule:  a.cfg.RewardSchedule(),
		Policy:    a.cfg.PolicyParameters(),
		Collector: collector.NewCollector(src, nil),
		Recorder:  rec,
		Unit:      a.cfg.Run.Unit,
		Verbose:   a.cfg.Run.Verbose,
	}
}
