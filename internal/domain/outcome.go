package domain

// PassStatus classifies what happened during one pass over a record.
// Distinguishing "no pattern matched" from "matched but the calculation
// failed" lets callers audit coverage of the pattern catalog.
type PassStatus int

const (
	// PassNoMatch means no catalog pattern matched the description
	PassNoMatch PassStatus = iota

	// PassApplied means a strategy matched and its outcome was merged
	PassApplied

	// PassFailed means a strategy matched but its calculation errored;
	// the record is left unchanged for that pass
	PassFailed
)

// String returns a human-readable name for the pass status
func (s PassStatus) String() string {
	switch s {
	case PassApplied:
		return "applied"
	case PassFailed:
		return "failed"
	default:
		return "no_match"
	}
}

// PassOutcome describes the result of one pass (deal or coupon).
type PassOutcome struct {
	Status   PassStatus
	Strategy string // strategy name when Status != PassNoMatch
	Err      error  // set when Status == PassFailed
}

// ProcessResult is the full result of processing one record: the derived
// annotated record plus the typed outcome of each pass.
type ProcessResult struct {
	Record ProductRecord
	Deal   PassOutcome
	Coupon PassOutcome
}
