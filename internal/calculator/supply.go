package calculator

import "lukechampine.com/uint128"

// ClampToCap returns the part of amount that can be minted on top of minted
// without crossing supplyCap. minted must not exceed supplyCap.
func ClampToCap(minted, amount, supplyCap uint64) uint64 {
	next := uint128.From64(minted).Add64(amount)
	if next.Cmp64(supplyCap) > 0 {
		return supplyCap - minted
	}
	return amount
}
