// Package engine computes per-block issuance under a halving schedule, a hard
// supply cap and a spend-responsive throttle.
package engine

import (
	"IssuanceSentinel/internal/calculator"
	"IssuanceSentinel/internal/model"
)

// Evaluate computes the issuance for height and advances st by one block,
// recording spend as that block's spend figure.
//
// Preconditions, not checked here: height >= schedule.ActivationHeight,
// schedule.HalvingInterval > 0, policy.Throttle.Target > 0,
// policy.Throttle.WindowBlocks > 0, and heights for a
// given st arrive one per call in strictly increasing order. The window
// semantics assume consecutive heights; gaps are undefined.
//
// The spend window is bounded by policy.Throttle.WindowBlocks. If the window
// length changes between calls st keeps only the newest figures.
//
// Once the supply cap is reached issuance is 0. The spend window and EMA keep
// advancing unless policy.FreezeAtCap is set, in which case a capped call
// leaves st untouched.
func Evaluate(height uint64, schedule model.RewardSchedule, policy model.PolicyParameters, st *State, spend uint64) model.BlockReport {
	st.fitWindow(policy.Throttle.WindowBlocks)

	epoch := schedule.EpochAt(height)
	rep := model.BlockReport{
		Height:      height,
		Epoch:       epoch,
		Base:        calculator.HalvingBase(schedule.InitialPerBlock, epoch),
		WindowSpend: st.windowSum,
		Capped:      st.totalMinted >= policy.SupplyCap,
	}

	if rep.Capped && policy.FreezeAtCap {
		rep.SmoothedSpend = st.smoothedSpend
		rep.TotalMinted = st.totalMinted
		return rep
	}

	st.smoothedSpend = calculator.SmoothSpend(st.smoothedSpend, st.windowSum)
	rep.SmoothedSpend = st.smoothedSpend
	rep.Multiplier = calculator.ThrottleMultiplier(
		st.smoothedSpend,
		policy.Throttle.Beta,
		policy.Throttle.Target,
		policy.Throttle.MinMultiplier,
	)

	if !rep.Capped {
		raw := calculator.ApplyMultiplier(rep.Base, rep.Multiplier)
		rep.Issuance = calculator.ClampToCap(st.totalMinted, raw, policy.SupplyCap)
		st.totalMinted += rep.Issuance
	}
	rep.TotalMinted = st.totalMinted

	st.pushSpend(spend)
	return rep
}
