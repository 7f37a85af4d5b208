package domain

// StatRecord is the persisted result for one locality.
// A record with zero tax and zero houses is "unresolved" and stays a
// retry target on incremental runs; it is never a terminal success.
type StatRecord struct {
	// Tax is the revenue figure for the fixed category, rounded to two
	// decimal places. Zero when no year yielded a positive amount.
	Tax float64 `json:"tax"`

	// TaxYear is the year Tax was taken from, nil when Tax is zero.
	TaxYear *int `json:"taxYear"`

	// Houses is the housing-unit count, zero when unavailable.
	Houses int `json:"houses"`

	// HousesYear is the observation year for Houses, nil when unknown.
	HousesYear *int `json:"housesYear"`
}

// HasData reports whether the record counts as resolved.
func (r StatRecord) HasData() bool {
	return r.Tax > 0 || r.Houses > 0
}

// RevenueRow is one line of a tax-statistics response.
type RevenueRow struct {
	// Code is the revenue category classification code.
	Code string

	// Amount is the reported figure for that category.
	Amount float64
}

// HousingObservation is one line of a housing-statistics response.
type HousingObservation struct {
	// Year the observation was taken.
	Year int

	// Value is the housing-unit count, zero when unparseable.
	Value int

	// Territory is the reported territory name, informational only.
	Territory string
}

// ResultSet maps region -> locality name -> StatRecord. It grows
// monotonically across runs: merge only fills gaps, never regresses a
// record that already has data.
type ResultSet map[string]map[string]StatRecord

// Get returns the stored record for a locality, if any.
func (s ResultSet) Get(region, name string) (StatRecord, bool) {
	localities, ok := s[region]
	if !ok {
		return StatRecord{}, false
	}
	rec, ok := localities[name]
	return rec, ok
}

// Merge writes rec for (region, name) unless an existing record has data
// and rec does not. A zero rec is still written when nothing existed
// before, so the locality shows up as "still unresolved" in the store.
// Returns true when the record was written.
func (s ResultSet) Merge(region, name string, rec StatRecord) bool {
	existing, exists := s.Get(region, name)
	if exists && existing.HasData() && !rec.HasData() {
		return false
	}
	if s[region] == nil {
		s[region] = make(map[string]StatRecord)
	}
	s[region][name] = rec
	return true
}

// Len returns the total number of stored records.
func (s ResultSet) Len() int {
	n := 0
	for _, localities := range s {
		n += len(localities)
	}
	return n
}

// LenWithData returns the number of stored records that count as resolved.
func (s ResultSet) LenWithData() int {
	n := 0
	for _, localities := range s {
		for _, rec := range localities {
			if rec.HasData() {
				n++
			}
		}
	}
	return n
}
