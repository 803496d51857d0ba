package model

import "time"

// BlockReport is the per-height output of the issuance engine.
type BlockReport struct {
	Height        uint64
	Epoch         uint64
	Base          uint64
	WindowSpend   uint64
	SmoothedSpend float64
	Multiplier    float64
	Issuance      uint64
	TotalMinted   uint64
	Capped        bool // supply cap was already reached before this height
}

// Mismatch records a height where observed issuance differs from the policy.
type Mismatch struct {
	Height   uint64
	Expected uint64
	Observed uint64
}

// RunSummary aggregates a finished (or cancelled) run.
type RunSummary struct {
	Label        string
	FromHeight   uint64
	ToHeight     uint64
	Blocks       uint64
	Issued       uint64
	TotalMinted  uint64
	CappedBlocks uint64
	Mismatches   uint64
	StartedAt    time.Time
	FinishedAt   time.Time
}

// BlockInputs holds the externally sourced figures for one height.
type BlockInputs struct {
	Height      uint64
	Spend       uint64
	Observed    uint64
	HasObserved bool
}
