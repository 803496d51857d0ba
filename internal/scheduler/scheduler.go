package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"IssuanceSentinel/internal/logging"
	"IssuanceSentinel/internal/report"
	"IssuanceSentinel/internal/runner"
)

// Scheduler advances a Runner on a cron cadence, one block per tick.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *runner.Runner
	Unit   string
	Ctx    context.Context
	log    *logrus.Entry
}

// NewScheduler creates a new Scheduler. Ticks never overlap: a tick that fires
// while the previous one is still running is skipped.
func NewScheduler(ctx context.Context, r *runner.Runner, unit string) *Scheduler {
	log := logging.For("scheduler")
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log))),
		),
		Runner: r,
		Unit:   unit,
		Ctx:    ctx,
		log:    log,
	}
}

// Register adds the block tick and, when summarySpec is non-empty, a periodic
// progress summary.
func (s *Scheduler) Register(blockSpec, summarySpec string) error {
	if _, err := s.Cron.AddFunc(blockSpec, s.blockTask); err != nil {
		return fmt.Errorf("register block task: %w", err)
	}
	if summarySpec == "" {
		return nil
	}
	if _, err := s.Cron.AddFunc(summarySpec, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running tick to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// StepNow evaluates the next block immediately.
func (s *Scheduler) StepNow() {
	s.blockTask()
}

func (s *Scheduler) blockTask() {
	rep, err := s.Runner.Step(s.Ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.log.Errorf("block step: %v", err)
		return
	}
	s.log.Debugf("advanced to height %d", rep.Height)
}

func (s *Scheduler) summaryTask() {
	sum := s.Runner.Summary()
	s.log.Info("progress\n" + report.FormatRunSummary(&sum, s.Unit))
}
