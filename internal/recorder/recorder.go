package recorder

import "IssuanceSentinel/internal/model"

// Recorder persists evaluated blocks and run outcomes for later analysis.
// Every method takes the run label so parallel sweep variants can share one
// sink.
type Recorder interface {
	RecordBlock(label string, rep *model.BlockReport) error
	RecordMismatch(label string, mm *model.Mismatch) error
	RecordRun(sum *model.RunSummary) error
	Close() error
}
