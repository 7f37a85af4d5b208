package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
)

func candidate(displayName string) domain.CandidateEntity {
	return domain.CandidateEntity{DisplayName: displayName}
}

func TestClassify_Offices(t *testing.T) {
	names := []string{
		"COMUNA VALEA LUNGĂ",
		"MUNICIPIUL CLUJ-NAPOCA",
		"ORAȘUL BORSEC",
		"ORASUL HUEDIN",
		"PRIMĂRIA COMUNEI GÎRBOVA",
		"Municipiul Arad",
	}

	for _, name := range names {
		cls := Classify(candidate(name))
		assert.True(t, cls.IsOffice, "%q should classify as office", name)
		assert.False(t, cls.IsExcluded)
	}
}

func TestClassify_ExcludedInstitutions(t *testing.T) {
	names := []string{
		"ȘCOALA GIMNAZIALĂ NR. 1 AIUD",
		"LICEUL TEORETIC AVRAM IANCU",
		"SPITALUL ORĂȘENESC ABRUD",
		"JUDECĂTORIA BLAJ",
		"PAROHIA ORTODOXĂ ROMÂNĂ",
		"DIRECTIA GENERALA DE ASISTENTA SOCIALA",
		"INSPECTORATUL SCOLAR JUDETEAN ALBA",
		"CONSILIUL JUDETEAN ALBA",
		"OCOLUL SILVIC VALEA ARIEȘULUI",
		"ASOCIATIA CRESCATORILOR DE ANIMALE",
	}

	for _, name := range names {
		cls := Classify(candidate(name))
		assert.True(t, cls.IsExcluded, "%q should be excluded", name)
		assert.False(t, cls.IsOffice)
	}
}

// Office markers take priority: an office whose name also matches a
// blacklist keyword is never excluded.
func TestClassify_OfficeOverridesExclusion(t *testing.T) {
	names := []string{
		"COMUNA BISERICA ALBĂ",
		"PRIMARIA ORASULUI SPITALUL NOU", // contrived, still an office
		"MUNICIPIUL POLIȚIA DE JOS",
	}

	for _, name := range names {
		cls := Classify(candidate(name))
		assert.True(t, cls.IsOffice, "%q should classify as office", name)
		assert.False(t, cls.IsExcluded, "%q must not be excluded", name)
	}
}

func TestClassify_Unclassified(t *testing.T) {
	// Whole-word office matching: COMUNALĂ must not read as COMUNA.
	names := []string{
		"GOSPODĂRIRE COMUNALĂ SRL",
		"SALUBRIZARE URBANA",
	}

	for _, name := range names {
		cls := Classify(candidate(name))
		assert.True(t, cls.Unclassified(), "%q should be unclassified", name)
	}
}

func TestExclusionReason(t *testing.T) {
	category, ok := ExclusionReason(candidate("ȘCOALA GIMNAZIALĂ NR. 1"))
	assert.True(t, ok)
	assert.Equal(t, CategoryEducation, category)

	_, ok = ExclusionReason(candidate("COMPLET NECUNOSCUT"))
	assert.False(t, ok)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("COMUNA VALEA LUNGA", "COMUNA"))
	assert.True(t, containsWord("PRIMARIA COMUNEI X", "COMUNEI"))
	assert.False(t, containsWord("GOSPODARIRE COMUNALA", "COMUNA"))
	assert.True(t, containsWord("X-COMUNA", "COMUNA"))
	assert.False(t, containsWord("", "COMUNA"))
}
