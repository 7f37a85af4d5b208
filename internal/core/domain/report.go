package domain

import "time"

// FailureReason classifies why a locality ended a run without data.
// The two classes have different remediation: NoEntity points at the
// matching rules, NoStatistics at the statistics source.
type FailureReason string

// Failure reason classes.
const (
	// ReasonNoEntity means no strategy produced an acceptable match.
	ReasonNoEntity FailureReason = "no entity found"

	// ReasonNoStatistics means resolution succeeded but neither
	// statistic fetch yielded anything usable.
	ReasonNoStatistics FailureReason = "entity found, no statistics"
)

// Unresolved is one locality that ended the run without data.
type Unresolved struct {
	Region string
	Name   string
	Reason FailureReason
}

// RunReport summarises one batch run.
type RunReport struct {
	// RunID uniquely identifies the run in the checkpoint store.
	RunID string

	// Total is the catalog size.
	Total int

	// Attempted is the number of localities selected as retry targets.
	Attempted int

	// Found is the number of attempted localities that ended with data.
	Found int

	// Unresolved lists the attempted localities that ended without
	// data, with their failure reason class.
	Unresolved []Unresolved

	StartedAt  time.Time
	FinishedAt time.Time
}

// StillMissing returns the number of localities left without data.
func (r *RunReport) StillMissing() int {
	return len(r.Unresolved)
}
