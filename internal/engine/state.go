package engine

import "github.com/emirpasic/gods/queues/circularbuffer"

// State is the rolling bookkeeping for one run. It is mutated only by
// Evaluate; callers read it through the accessors. A State is not safe for
// concurrent use.
//
// The spend window is sized from the policy passed to Evaluate, so a State
// carries no window length of its own.
type State struct {
	totalMinted   uint64
	smoothedSpend float64

	window    *circularbuffer.Queue
	windowCap uint64
	windowSum uint64
}

// NewState returns an empty state.
func NewState() *State {
	return &State{}
}

// TotalMinted returns cumulative issuance so far.
func (s *State) TotalMinted() uint64 { return s.totalMinted }

// SmoothedSpend returns the current EMA of windowed spend. 0 means unseeded.
func (s *State) SmoothedSpend() float64 { return s.smoothedSpend }

// WindowSum returns the sum of the spend figures currently in the window.
func (s *State) WindowSum() uint64 { return s.windowSum }

// WindowLen returns how many spend figures the window holds.
func (s *State) WindowLen() int {
	if s.window == nil {
		return 0
	}
	return s.window.Size()
}

// RecentSpend returns the windowed spend figures, oldest first.
func (s *State) RecentSpend() []uint64 {
	if s.window == nil {
		return []uint64{}
	}
	values := s.window.Values()
	out := make([]uint64, len(values))
	for i, v := range values {
		out[i] = v.(uint64)
	}
	return out
}

// fitWindow makes the window hold at most n figures. On first use it allocates
// the buffer; if n differs from the current capacity the newest figures are
// kept and the running sum is recomputed.
func (s *State) fitWindow(n uint64) {
	if s.window != nil && s.windowCap == n {
		return
	}
	kept := s.RecentSpend()
	if uint64(len(kept)) > n {
		kept = kept[uint64(len(kept))-n:]
	}
	s.window = circularbuffer.New(int(n))
	s.windowCap = n
	s.windowSum = 0
	for _, v := range kept {
		s.window.Enqueue(v)
		s.windowSum += v
	}
}

// pushSpend appends v, evicting the oldest figure when the window is full.
func (s *State) pushSpend(v uint64) {
	if s.window.Full() {
		if old, ok := s.window.Dequeue(); ok {
			s.windowSum -= old.(uint64)
		}
	}
	s.window.Enqueue(v)
	s.windowSum += v
}
