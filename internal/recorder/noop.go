package recorder

import "IssuanceSentinel/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordBlock(_ string, _ *model.BlockReport) error { return nil }
func (n *NoopRecorder) RecordMismatch(_ string, _ *model.Mismatch) error { return nil }
func (n *NoopRecorder) RecordRun(_ *model.RunSummary) error              { return nil }
func (n *NoopRecorder) Close() error                                     { return nil }
