package engine

import (
	"errors"
	"fmt"

	"IssuanceSentinel/internal/model"
)

// MaxWindowBlocks bounds the spend window; the ring buffer is allocated up front.
const MaxWindowBlocks = 1 << 20

var (
	ErrInvalidSchedule = errors.New("invalid reward schedule")
	ErrInvalidPolicy   = errors.New("invalid policy")
)

// ValidateSchedule checks the schedule invariants Evaluate relies on.
func ValidateSchedule(s model.RewardSchedule) error {
	if s.HalvingInterval == 0 {
		return fmt.Errorf("%w: halving interval must be positive", ErrInvalidSchedule)
	}
	return nil
}

// ValidatePolicy checks the policy invariants Evaluate relies on.
func ValidatePolicy(p model.PolicyParameters) error {
	th := p.Throttle
	switch {
	case th.WindowBlocks == 0:
		return fmt.Errorf("%w: throttle window must be positive", ErrInvalidPolicy)
	case th.WindowBlocks > MaxWindowBlocks:
		return fmt.Errorf("%w: throttle window %d exceeds %d", ErrInvalidPolicy, th.WindowBlocks, MaxWindowBlocks)
	case th.Target == 0:
		return fmt.Errorf("%w: throttle target must be positive", ErrInvalidPolicy)
	case !(th.MinMultiplier >= 0 && th.MinMultiplier <= 1):
		return fmt.Errorf("%w: min multiplier %v outside [0,1]", ErrInvalidPolicy, th.MinMultiplier)
	}
	return nil
}
