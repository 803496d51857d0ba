package collector

// DefaultSpendPerBlock is the placeholder spend used until burn data is sourced
// from real transactions.
const DefaultSpendPerBlock uint64 = 50_000_000

// FixedSource reports the same spend for every block.
type FixedSource struct {
	PerBlock uint64
}

func NewFixedSource(perBlock uint64) *FixedSource {
	return &FixedSource{PerBlock: perBlock}
}

func (f *FixedSource) Name() string { return "fixed" }

func (f *FixedSource) SpendAt(_ uint64) (uint64, error) {
	return f.PerBlock, nil
}
