// Package runner drives the issuance engine over consecutive heights and
// forwards each result to the report sinks.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"IssuanceSentinel/internal/collector"
	"IssuanceSentinel/internal/engine"
	"IssuanceSentinel/internal/logging"
	"IssuanceSentinel/internal/model"
	"IssuanceSentinel/internal/recorder"
	"IssuanceSentinel/internal/report"
)

var (
	ErrHeightBeforeActivation = errors.New("height precedes activation")
	ErrHeightOutOfOrder       = errors.New("height out of order")
)

// Options configures a Runner.
type Options struct {
	Label     string
	Schedule  model.RewardSchedule
	Policy    model.PolicyParameters
	Collector *collector.Collector
	Recorder  recorder.Recorder // nil means no recording
	Unit      string
	Verbose   bool // log every block at info instead of debug
}

// Runner owns the engine state for one run and feeds it heights in order,
// starting at the activation height. It is safe for concurrent use.
type Runner struct {
	mu        sync.Mutex
	label     string
	schedule  model.RewardSchedule
	policy    model.PolicyParameters
	state     *engine.State
	next      uint64
	collector *collector.Collector
	recorder  recorder.Recorder
	unit      string
	verbose   bool
	summary   model.RunSummary
	log       *logrus.Entry
}

// New validates the schedule and policy and returns a Runner positioned at
// the activation height.
func New(opts Options) (*Runner, error) {
	if err := engine.ValidateSchedule(opts.Schedule); err != nil {
		return nil, err
	}
	if err := engine.ValidatePolicy(opts.Policy); err != nil {
		return nil, err
	}
	if opts.Collector == nil {
		return nil, errors.New("runner: collector is required")
	}
	rec := opts.Recorder
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	label := opts.Label
	if label == "" {
		label = "default"
	}
	return &Runner{
		label:     label,
		schedule:  opts.Schedule,
		policy:    opts.Policy,
		state:     engine.NewState(),
		next:      opts.Schedule.ActivationHeight,
		collector: opts.Collector,
		recorder:  rec,
		unit:      opts.Unit,
		verbose:   opts.Verbose,
		summary:   model.RunSummary{Label: label},
		log:       logging.For("runner").WithField("run", label),
	}, nil
}

// NextHeight returns the height the next Step will evaluate.
func (r *Runner) NextHeight() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.next
}

// TotalMinted returns cumulative issuance so far.
func (r *Runner) TotalMinted() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.TotalMinted()
}

// Summary returns a copy of the run summary so far.
func (r *Runner) Summary() model.RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// Evaluate evaluates height, which must be exactly the next height in order.
func (r *Runner) Evaluate(ctx context.Context, height uint64) (*model.BlockReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evaluateLocked(height, true)
}

// Step evaluates the next height.
func (r *Runner) Step(ctx context.Context) (*model.BlockReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.evaluateLocked(r.next, true)
}

// RunRange evaluates every height up to and including to. Heights before from
// are evaluated silently so the rolling state is correct when reporting
// starts. The finished summary is recorded before it is returned.
func (r *Runner) RunRange(ctx context.Context, from, to uint64) (*model.RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if to < r.next {
		return nil, fmt.Errorf("%w: range ends at %d, next height is %d", ErrHeightOutOfOrder, to, r.next)
	}
	if from < r.next {
		from = r.next
	}
	if from > r.next {
		r.log.Debugf("catching up %d blocks before %d", from-r.next, from)
	}

	for r.next <= to {
		if err := ctx.Err(); err != nil {
			r.log.Warnf("run cancelled at height %d", r.next)
			return r.finishLocked(), err
		}
		if _, err := r.evaluateLocked(r.next, r.next >= from); err != nil {
			return r.finishLocked(), err
		}
		if r.next == 0 { // wrapped past MaxUint64
			break
		}
	}
	return r.finishLocked(), nil
}

// CatchUp evaluates every height before height without reporting it, leaving
// the runner positioned at height. It is a no-op when the runner is already
// at or past height.
func (r *Runner) CatchUp(ctx context.Context, height uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if height > r.next {
		r.log.Infof("catching up %d blocks before %d", height-r.next, height)
	}
	for r.next < height {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := r.evaluateLocked(r.next, false); err != nil {
			return err
		}
	}
	return nil
}

// Finish records and returns the summary so far.
func (r *Runner) Finish() *model.RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finishLocked()
}

func (r *Runner) finishLocked() *model.RunSummary {
	sum := r.summary
	if err := r.recorder.RecordRun(&sum); err != nil {
		r.log.Errorf("record run: %v", err)
	}
	r.log.Infof("run finished: %d blocks, total minted %s %s", sum.Blocks, report.Amount(sum.TotalMinted), r.unit)
	return &sum
}

func (r *Runner) evaluateLocked(height uint64, reported bool) (*model.BlockReport, error) {
	if height < r.schedule.ActivationHeight {
		return nil, fmt.Errorf("%w: %d < %d", ErrHeightBeforeActivation, height, r.schedule.ActivationHeight)
	}
	if height != r.next {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrHeightOutOfOrder, height, r.next)
	}

	in, err := r.collector.Collect(height)
	if err != nil {
		return nil, err
	}

	rep := engine.Evaluate(height, r.schedule, r.policy, r.state, in.Spend)
	r.next++

	if in.HasObserved {
		if err := engine.Verify(rep, in.Observed); err != nil {
			r.log.Warn(err)
			r.summary.Mismatches++
			mm := engine.MismatchOf(rep, in.Observed)
			if err := r.recorder.RecordMismatch(r.label, &mm); err != nil {
				r.log.Errorf("record mismatch: %v", err)
			}
		}
	}

	r.summary.TotalMinted = rep.TotalMinted
	if !reported {
		return &rep, nil
	}

	now := time.Now()
	if r.summary.Blocks == 0 {
		r.summary.FromHeight = height
		r.summary.StartedAt = now
	}
	r.summary.ToHeight = height
	r.summary.FinishedAt = now
	r.summary.Blocks++
	r.summary.Issued += rep.Issuance
	if rep.Capped {
		r.summary.CappedBlocks++
	}

	line := report.FormatBlockLine(&rep, r.unit)
	if r.verbose {
		r.log.Info(line)
	} else {
		r.log.Debug(line)
	}
	if err := r.recorder.RecordBlock(r.label, &rep); err != nil {
		r.log.Errorf("record block %d: %v", height, err)
	}
	return &rep, nil
}
