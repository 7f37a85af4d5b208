package services

import (
	"strings"
	"unicode"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/normalise"
)

// officeMarkers are the administrative-office terms. A candidate whose
// display name carries one of these as a whole word is an office and is
// never excluded, whatever else its name contains. Whole-word matching
// keeps "GOSPODĂRIRE COMUNALĂ" from reading as a commune office.
var officeMarkers = []string{
	"MUNICIPIUL",
	"MUNICIPIULUI",
	"ORASUL",
	"ORASULUI",
	"COMUNA",
	"COMUNEI",
	"PRIMARIA",
}

// ExclusionCategory groups blacklist keywords for diagnostics.
type ExclusionCategory string

// Blacklist categories.
const (
	CategoryEducation ExclusionCategory = "education"
	CategoryHealth    ExclusionCategory = "health"
	CategoryJustice   ExclusionCategory = "justice"
	CategoryReligious ExclusionCategory = "religious"
	CategoryCulture   ExclusionCategory = "culture"
	CategoryAgency    ExclusionCategory = "agency"
	CategoryOrder     ExclusionCategory = "police-military"
	CategoryCounty    ExclusionCategory = "county"
	CategoryCompany   ExclusionCategory = "company"
	CategoryCivil     ExclusionCategory = "civil-society"
)

// ExclusionKeyword is one blacklist entry. The list is the single source
// of truth for exclusion: completeness is a correctness property, since
// a missing keyword lets a school or court win a locality's match.
type ExclusionKeyword struct {
	Term     string
	Category ExclusionCategory
}

// exclusionKeywords is the institution blacklist, matched as a substring
// of the folded display name. Only consulted when no office marker hit.
var exclusionKeywords = []ExclusionKeyword{
	{"SCOALA", CategoryEducation},
	{"LICEUL", CategoryEducation},
	{"COLEGIUL", CategoryEducation},
	{"GRADINITA", CategoryEducation},
	{"GIMNAZIUL", CategoryEducation},
	{"UNIVERSITATEA", CategoryEducation},
	{"SEMINARUL", CategoryEducation},
	{"CAMINUL", CategoryEducation},
	{"SPITALUL", CategoryHealth},
	{"SANATORIUL", CategoryHealth},
	{"DISPENSARUL", CategoryHealth},
	{"CENTRUL DE SANATATE", CategoryHealth},
	{"JUDECATORIA", CategoryJustice},
	{"TRIBUNALUL", CategoryJustice},
	{"CURTEA DE APEL", CategoryJustice},
	{"PARCHETUL", CategoryJustice},
	{"NOTARIATUL", CategoryJustice},
	{"PAROHIA", CategoryReligious},
	{"BISERICA", CategoryReligious},
	{"MANASTIREA", CategoryReligious},
	{"PROTOPOPIATUL", CategoryReligious},
	{"EPISCOPIA", CategoryReligious},
	{"ARHIEPISCOPIA", CategoryReligious},
	{"MITROPOLIA", CategoryReligious},
	{"MUZEUL", CategoryCulture},
	{"BIBLIOTECA", CategoryCulture},
	{"TEATRUL", CategoryCulture},
	{"FILARMONICA", CategoryCulture},
	{"CASA DE CULTURA", CategoryCulture},
	{"CAMINUL CULTURAL", CategoryCulture},
	{"CLUBUL", CategoryCulture},
	{"DIRECTIA", CategoryAgency},
	{"INSPECTORATUL", CategoryAgency},
	{"AGENTIA", CategoryAgency},
	{"ADMINISTRATIA", CategoryAgency},
	{"AUTORITATEA", CategoryAgency},
	{"OFICIUL", CategoryAgency},
	{"SERVICIUL", CategoryAgency},
	{"INSTITUTUL", CategoryAgency},
	{"CENTRUL", CategoryAgency},
	{"POLITIA", CategoryOrder},
	{"JANDARMERIA", CategoryOrder},
	{"UNITATEA MILITARA", CategoryOrder},
	{"PENITENCIARUL", CategoryOrder},
	{"CONSILIUL JUDETEAN", CategoryCounty},
	{"CASA JUDETEANA", CategoryCounty},
	{"PREFECTURA", CategoryCounty},
	{"OCOLUL SILVIC", CategoryCompany},
	{"REGIA", CategoryCompany},
	{"SOCIETATEA", CategoryCompany},
	{"COOPERATIVA", CategoryCompany},
	{"ASOCIATIA", CategoryCivil},
	{"FUNDATIA", CategoryCivil},
	{"SINDICATUL", CategoryCivil},
	{"FEDERATIA", CategoryCivil},
	{"COMPOSESORATUL", CategoryCivil},
	{"CAMERA DE COMERT", CategoryCivil},
}

// Classify labels a candidate entity. Office status takes priority: the
// blacklist is only consulted when no office marker matched.
func Classify(candidate domain.CandidateEntity) domain.Classification {
	folded := normalise.Fold(candidate.DisplayName)

	for _, marker := range officeMarkers {
		if containsWord(folded, marker) {
			return domain.Classification{IsOffice: true}
		}
	}

	for _, kw := range exclusionKeywords {
		if strings.Contains(folded, kw.Term) {
			return domain.Classification{IsExcluded: true}
		}
	}

	return domain.Classification{}
}

// ExclusionReason returns the blacklist category a non-office candidate
// was excluded under. Diagnostic only.
func ExclusionReason(candidate domain.CandidateEntity) (ExclusionCategory, bool) {
	folded := normalise.Fold(candidate.DisplayName)
	for _, kw := range exclusionKeywords {
		if strings.Contains(folded, kw.Term) {
			return kw.Category, true
		}
	}
	return "", false
}

// containsWord reports whether s contains word as a whole token,
// delimited by non-letter runes or the string boundaries.
func containsWord(s, word string) bool {
	for i := 0; i+len(word) <= len(s); {
		j := strings.Index(s[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		if boundary(s, start-1) && boundary(s, end) {
			return true
		}
		i = start + 1
	}
	return false
}

// boundary reports whether position i in s is outside the string or a
// non-letter rune.
func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	return !unicode.IsLetter(rune(s[i]))
}
