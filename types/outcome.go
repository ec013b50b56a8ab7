package types

// OutcomeStatus classifies how a capture ended.
type OutcomeStatus string

const (
	// OutcomeCaptured indicates a full report with all artifacts written.
	OutcomeCaptured OutcomeStatus = "captured"
	// OutcomePartial indicates a report was produced but at least one
	// artifact failed. Never fatal to the handler flow.
	OutcomePartial OutcomeStatus = "partial"
	// OutcomeSkipped indicates the emergency guard elected to skip full
	// reporting in favor of a minimal notice.
	OutcomeSkipped OutcomeStatus = "skipped"
)

// DetermineOutcome reduces a capture to its outcome status.
// Skip decisions take precedence; otherwise the artifact set decides
// between full and partial.
func DetermineOutcome(skipped bool, artifacts *ArtifactSet) OutcomeStatus {
	if skipped {
		return OutcomeSkipped
	}
	if artifacts != nil && artifacts.OK() {
		return OutcomeCaptured
	}
	return OutcomePartial
}
