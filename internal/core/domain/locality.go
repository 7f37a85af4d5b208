package domain

import "sort"

// LocalityKind classifies a catalog entry by its administrative type.
type LocalityKind string

// Locality kinds as stored in the catalog file.
const (
	KindMunicipality LocalityKind = "municipality"
	KindTown         LocalityKind = "town"
	KindCommune      LocalityKind = "commune"
)

// GenericOfficeWord is the bare mayoralty term usable without a region
// qualifier when the typed office word finds nothing.
const GenericOfficeWord = "PRIMARIA"

// OfficeWord returns the administrative office term used as the strongest
// search signal for this kind of locality.
func (k LocalityKind) OfficeWord() string {
	switch k {
	case KindMunicipality:
		return "MUNICIPIUL"
	case KindTown:
		return "ORAȘUL"
	case KindCommune:
		return "COMUNA"
	default:
		return GenericOfficeWord
	}
}

// Valid reports whether k is one of the known kinds.
func (k LocalityKind) Valid() bool {
	switch k {
	case KindMunicipality, KindTown, KindCommune:
		return true
	}
	return false
}

// LocalityRef identifies one entry in the authoritative locality catalog.
type LocalityRef struct {
	// Region is the top-level administrative division (county).
	Region string

	// Name is the locality name as spelled in the catalog.
	Name string

	// Kind is the administrative type of the locality.
	Kind LocalityKind
}

// Catalog is the read-only region -> locality name -> kind mapping
// loaded once per run.
type Catalog map[string]map[string]LocalityKind

// Len returns the total number of localities in the catalog.
func (c Catalog) Len() int {
	n := 0
	for _, localities := range c {
		n += len(localities)
	}
	return n
}

// Refs returns every catalog entry sorted by region then name, so batch
// runs process localities in a stable, reproducible order.
func (c Catalog) Refs() []LocalityRef {
	refs := make([]LocalityRef, 0, c.Len())
	for region, localities := range c {
		for name, kind := range localities {
			refs = append(refs, LocalityRef{Region: region, Name: name, Kind: kind})
		}
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Region != refs[j].Region {
			return refs[i].Region < refs[j].Region
		}
		return refs[i].Name < refs[j].Name
	})
	return refs
}
