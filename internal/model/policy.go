package model

// BurnRequirement is part of the policy manifest. The engine does not read it;
// it is carried so reports show the full manifest a run was evaluated under.
type BurnRequirement struct {
	Rate    float64
	Address string
}

// Throttle configures the spend-responsive issuance multiplier.
type Throttle struct {
	WindowBlocks  uint64
	Target        uint64
	Beta          float64
	MinMultiplier float64
	Burn          BurnRequirement
}

// PolicyParameters bounds issuance for a run.
type PolicyParameters struct {
	SupplyCap uint64
	Throttle  Throttle

	// FreezeAtCap stops spend window and EMA bookkeeping once the supply cap
	// is reached. Off by default: bookkeeping follows elapsed blocks.
	FreezeAtCap bool
}
