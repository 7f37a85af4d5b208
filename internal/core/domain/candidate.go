package domain

// CandidateEntity is a single hit returned by the entity registry for a
// free-text query. Candidates are transient: created per resolution
// attempt and discarded once a winner is picked.
type CandidateEntity struct {
	// DisplayName is the registered entity name, e.g.
	// "COMUNA VALEA LUNGĂ" or "ȘCOALA GIMNAZIALĂ NR. 1".
	DisplayName string

	// TaxID is the fiscal identifier of the entity.
	TaxID string

	// Region is the county the entity is registered in.
	Region string

	// LocalityName is the sub-locality the entity is registered at.
	LocalityName string

	// SubCode is the fine-grained territorial code keying the housing
	// statistic. Empty when the registry has none for this entity.
	SubCode string
}

// ResolvedMatch is the single winning candidate for a LocalityRef.
type ResolvedMatch struct {
	TaxID        string
	SubCode      string
	DisplayName  string
	Region       string
	LocalityName string
}

// Classification labels a candidate as an administrative office, an
// excluded institution, or neither.
type Classification struct {
	// IsOffice is true when the display name carries an administrative
	// office marker. Office status overrides exclusion.
	IsOffice bool

	// IsExcluded is true when the display name matches the institution
	// blacklist and no office marker is present.
	IsExcluded bool
}

// Unclassified reports whether the candidate is neither an office nor
// excluded. Unclassified candidates are eligible as last-resort matches.
func (c Classification) Unclassified() bool {
	return !c.IsOffice && !c.IsExcluded
}
