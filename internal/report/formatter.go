// Package report renders issuance results as text.
package report

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"

	"IssuanceSentinel/internal/model"
)

// FormatBlockLine formats one evaluated height.
func FormatBlockLine(rep *model.BlockReport, unit string) string {
	line := fmt.Sprintf("Block %d | Issuance: %s %s | Total: %s | m=%.4f",
		rep.Height, Amount(rep.Issuance), unit, Amount(rep.TotalMinted), rep.Multiplier)
	if rep.Capped {
		line += " | capped"
	}
	return line
}

// FormatManifest formats the schedule and policy a run is evaluated under.
func FormatManifest(sched model.RewardSchedule, pol model.PolicyParameters, unit string) string {
	var b strings.Builder
	th := pol.Throttle

	b.WriteString(fmt.Sprintf("Verifying from block %d\n", sched.ActivationHeight))
	b.WriteString(fmt.Sprintf("  Initial per block: %s %s\n", Amount(sched.InitialPerBlock), unit))
	b.WriteString(fmt.Sprintf("  Halving interval: %s blocks\n", Amount(sched.HalvingInterval)))
	b.WriteString(fmt.Sprintf("  Supply cap: %s %s\n", Amount(pol.SupplyCap), unit))
	b.WriteString(fmt.Sprintf("  Throttle: window=%d target=%s beta=%.2f floor=%.2f\n",
		th.WindowBlocks, Amount(th.Target), th.Beta, th.MinMultiplier))
	if th.Burn.Address != "" {
		b.WriteString(fmt.Sprintf("  Burn: rate=%.3f%% addr=%s\n", th.Burn.Rate*100, th.Burn.Address))
	}
	if pol.FreezeAtCap {
		b.WriteString("  Bookkeeping frozen at cap\n")
	}
	return b.String()
}

// FormatRunSummary formats a finished run.
func FormatRunSummary(sum *model.RunSummary, unit string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Run %s | blocks %d..%d\n", sum.Label, sum.FromHeight, sum.ToHeight))
	b.WriteString(fmt.Sprintf("  Blocks evaluated: %d\n", sum.Blocks))
	b.WriteString(fmt.Sprintf("  Issued: %s %s\n", Amount(sum.Issued), unit))
	b.WriteString(fmt.Sprintf("  Total minted: %s %s\n", Amount(sum.TotalMinted), unit))
	b.WriteString(fmt.Sprintf("  Capped blocks: %d\n", sum.CappedBlocks))
	b.WriteString(fmt.Sprintf("  Mismatches: %d\n", sum.Mismatches))
	b.WriteString(fmt.Sprintf("  Elapsed: %s\n", sum.FinishedAt.Sub(sum.StartedAt)))
	return b.String()
}

// FormatSweep formats sweep summaries as an aligned table, one row per variant.
func FormatSweep(sums []*model.RunSummary, unit string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-16s %8s %24s %8s\n", "variant", "blocks", "total minted ("+unit+")", "capped"))
	for _, s := range sums {
		b.WriteString(fmt.Sprintf("%-16s %8d %24s %8d\n", s.Label, s.Blocks, Amount(s.TotalMinted), s.CappedBlocks))
	}
	return b.String()
}

// Amount renders v with thousands separators.
func Amount(v uint64) string {
	if v > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(v))
	}
	return humanize.Comma(int64(v))
}
