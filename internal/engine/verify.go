package engine

import (
	"errors"
	"fmt"

	"IssuanceSentinel/internal/model"
)

// ErrIssuanceMismatch is returned when observed issuance differs from the
// amount the policy allows.
var ErrIssuanceMismatch = errors.New("issuance mismatch")

// Verify compares observed on-chain issuance against an evaluated block.
func Verify(rep model.BlockReport, observed uint64) error {
	if rep.Issuance == observed {
		return nil
	}
	return fmt.Errorf("%w at height %d: expected %d, observed %d",
		ErrIssuanceMismatch, rep.Height, rep.Issuance, observed)
}

// MismatchOf converts a Verify failure into a record for the report sinks.
func MismatchOf(rep model.BlockReport, observed uint64) model.Mismatch {
	return model.Mismatch{Height: rep.Height, Expected: rep.Issuance, Observed: observed}
}
