package reader

import (
	"errors"
	"fmt"

	"github.com/justapithecus/faultline/types"
)

// SummarizeMeta converts a sidecar record into a listing row.
func SummarizeMeta(meta *types.CaptureMeta) (ListCrashItem, error) {
	if meta == nil {
		return ListCrashItem{}, errors.New("nil meta record")
	}
	if meta.BundleID == "" {
		return ListCrashItem{}, errors.New("meta record missing required field: bundle_id")
	}

	return ListCrashItem{
		BundleID:  meta.BundleID,
		Binary:    meta.Binary,
		Signal:    meta.Signal.Name,
		Outcome:   string(meta.Outcome),
		Timestamp: meta.Timestamp,
	}, nil
}

// InspectFromMeta converts a sidecar record into the full inspect view.
// reportPath is the on-disk path of the crash report, empty when the report
// file was never written.
func InspectFromMeta(meta *types.CaptureMeta, reportPath string) (*InspectCrashResponse, error) {
	if meta == nil {
		return nil, errors.New("nil meta record")
	}
	if meta.BundleID == "" {
		return nil, errors.New("meta record missing required field: bundle_id")
	}

	return &InspectCrashResponse{
		BundleID:        meta.BundleID,
		Binary:          meta.Binary,
		PID:             meta.PID,
		Timestamp:       meta.Timestamp,
		SignalName:      meta.Signal.Name,
		SignalNumber:    meta.Signal.Number,
		Message:         meta.Message,
		Outcome:         string(meta.Outcome),
		SkipReason:      meta.SkipReason,
		FrameCount:      len(meta.Frames),
		TruncatedReport: meta.TruncatedReport,
		Frames:          frameViews(meta.Frames),
		Artifacts:       artifactViews(&meta.Artifacts),
		ReportPath:      reportPath,
	}, nil
}

// frameViews renders walked frames for display, innermost first.
func frameViews(frames []types.Frame) []FrameView {
	if len(frames) == 0 {
		return nil
	}
	out := make([]FrameView, len(frames))
	for i := range frames {
		f := &frames[i]
		view := FrameView{
			Index: i,
			PC:    fmt.Sprintf("0x%x", uint64(f.PC)),
		}
		if f.Symbol != nil {
			view.Symbol = f.Symbol.DisplayName()
			view.Offset = f.Offset()
			view.Module = f.Symbol.Module
		}
		out[i] = view
	}
	return out
}

// artifactViews flattens the artifact set in its fixed order.
func artifactViews(set *types.ArtifactSet) []ArtifactView {
	records := set.All()
	out := make([]ArtifactView, len(records))
	for i, rec := range records {
		out[i] = ArtifactView{
			Kind:      string(rec.Kind),
			Attempted: rec.Attempted,
			OK:        rec.OK,
			Path:      rec.Path,
		}
	}
	return out
}
