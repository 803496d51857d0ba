package collector

// SpendSource supplies the spend figure recorded for each block.
type SpendSource interface {
	SpendAt(height uint64) (uint64, error)
	Name() string
}

// IssuanceObserver supplies issuance actually seen on chain. ok is false when
// the height has no observation to check against.
type IssuanceObserver interface {
	ObservedAt(height uint64) (amount uint64, ok bool, err error)
}
