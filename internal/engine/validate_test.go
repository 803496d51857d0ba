package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"IssuanceSentinel/internal/model"
)

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule(mainnetSchedule()))

	bad := mainnetSchedule()
	bad.HalvingInterval = 0
	require.ErrorIs(t, ValidateSchedule(bad), ErrInvalidSchedule)
}

func TestValidatePolicy(t *testing.T) {
	assert.NoError(t, ValidatePolicy(mainnetPolicy()))
	assert.NoError(t, ValidatePolicy(noThrottle()))

	tests := []struct {
		name   string
		mutate func(p *model.PolicyParameters)
	}{
		{"zero window", func(p *model.PolicyParameters) { p.Throttle.WindowBlocks = 0 }},
		{"huge window", func(p *model.PolicyParameters) { p.Throttle.WindowBlocks = MaxWindowBlocks + 1 }},
		{"zero target", func(p *model.PolicyParameters) { p.Throttle.Target = 0 }},
		{"negative floor", func(p *model.PolicyParameters) { p.Throttle.MinMultiplier = -0.1 }},
		{"floor above one", func(p *model.PolicyParameters) { p.Throttle.MinMultiplier = 1.5 }},
		{"NaN floor", func(p *model.PolicyParameters) { p.Throttle.MinMultiplier = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mainnetPolicy()
			tt.mutate(&p)
			require.ErrorIs(t, ValidatePolicy(p), ErrInvalidPolicy)
		})
	}
}
