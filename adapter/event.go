package adapter

import "github.com/justapithecus/faultline/types"

// FromCaptureMeta builds the published event from an archived capture
// record. storagePath names where the bundle was archived, if anywhere.
func FromCaptureMeta(meta *types.CaptureMeta, storagePath string) *CrashReportedEvent {
	return &CrashReportedEvent{
		ContractVersion: types.Version,
		EventType:       EventTypeCrashReported,
		BundleID:        meta.BundleID,
		Binary:          meta.Binary,
		PID:             meta.PID,
		SignalNumber:    meta.Signal.Number,
		SignalName:      meta.Signal.Name,
		Message:         meta.Message,
		Outcome:         string(meta.Outcome),
		SkipReason:      meta.SkipReason,
		FrameCount:      len(meta.Frames),
		StoragePath:     storagePath,
		Timestamp:       meta.Timestamp,
	}
}
