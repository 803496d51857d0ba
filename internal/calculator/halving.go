package calculator

// HalvingBase returns initial halved once per elapsed epoch.
// The result saturates to 0 once epochs reaches the bit width of uint64.
func HalvingBase(initial, epochs uint64) uint64 {
	if epochs >= 64 {
		return 0
	}
	return initial >> epochs
}
