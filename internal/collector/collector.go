package collector

import (
	"fmt"

	"IssuanceSentinel/internal/model"
)

// MockSource returns controllable per-height data for development and testing.
// Heights missing from Spends fall back to PerBlock.
type MockSource struct {
	PerBlock uint64
	Spends   map[uint64]uint64
	Observed map[uint64]uint64
	Err      error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) SpendAt(height uint64) (uint64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	if v, ok := m.Spends[height]; ok {
		return v, nil
	}
	return m.PerBlock, nil
}

func (m *MockSource) ObservedAt(height uint64) (uint64, bool, error) {
	if m.Err != nil {
		return 0, false, m.Err
	}
	v, ok := m.Observed[height]
	return v, ok, nil
}

// Collector gathers the external per-block inputs the engine needs.
type Collector struct {
	Spend    SpendSource
	Observer IssuanceObserver // optional
}

// NewCollector creates a new Collector. observer may be nil.
func NewCollector(spend SpendSource, observer IssuanceObserver) *Collector {
	return &Collector{Spend: spend, Observer: observer}
}

// Collect fetches the spend figure and, when an observer is set, the observed
// issuance for height.
func (c *Collector) Collect(height uint64) (*model.BlockInputs, error) {
	spend, err := c.Spend.SpendAt(height)
	if err != nil {
		return nil, fmt.Errorf("fetch spend at %d: %w", height, err)
	}
	in := &model.BlockInputs{Height: height, Spend: spend}

	if c.Observer != nil {
		observed, ok, err := c.Observer.ObservedAt(height)
		if err != nil {
			return nil, fmt.Errorf("fetch observed issuance at %d: %w", height, err)
		}
		in.Observed, in.HasObserved = observed, ok
	}
	return in, nil
}
