package model

// RewardSchedule fixes the halving curve for a run.
type RewardSchedule struct {
	ActivationHeight uint64
	InitialPerBlock  uint64
	HalvingInterval  uint64
}

// EpochAt returns the number of full halving epochs elapsed at height.
// height must not precede ActivationHeight.
func (s RewardSchedule) EpochAt(height uint64) uint64 {
	return (height - s.ActivationHeight) / s.HalvingInterval
}
