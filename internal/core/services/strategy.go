package services

import (
	"strings"

	"github.com/civita-labs/fiscara-cli/internal/core/domain"
	"github.com/civita-labs/fiscara-cli/internal/normalise"
)

// StrategyCap bounds the number of queries tried per locality, so the
// worst-case query cost of one resolution stays fixed.
const StrategyCap = 10

// QueryStrategies produces the ordered, de-duplicated search queries for
// one locality, most specific first:
//
//  1. typed office word + name + region
//  2. (1) with the name diacritic-stripped
//  3. name + region
//  4. (3) with the name diacritic-stripped
//  5. generic office word + name, no region
//  6. (1)-(3) with hyphens and spaces swapped, when the name has either
//  7. leading token of a multi-word name + region
//  8. trailing token of a multi-word name + region
//
// The resolver tries these strictly in order and stops at the first one
// that yields an acceptable match.
func QueryStrategies(ref domain.LocalityRef) []string {
	office := ref.Kind.OfficeWord()
	stripped := normalise.StripDiacritics(ref.Name)

	queries := make([]string, 0, StrategyCap)
	queries = append(queries,
		office+" "+ref.Name+" "+ref.Region,
		office+" "+stripped+" "+ref.Region,
		ref.Name+" "+ref.Region,
		stripped+" "+ref.Region,
		domain.GenericOfficeWord+" "+ref.Name,
	)

	// The registry is inconsistent about hyphenation, so hyphenated
	// names are retried spaced and spaced names retried hyphenated.
	variant := ""
	switch {
	case strings.Contains(ref.Name, "-"):
		variant = normalise.HyphensToSpaces(ref.Name)
	case strings.Contains(ref.Name, " "):
		variant = normalise.SpacesToHyphens(ref.Name)
	}
	if variant != "" {
		queries = append(queries,
			office+" "+variant+" "+ref.Region,
			office+" "+normalise.StripDiacritics(variant)+" "+ref.Region,
			variant+" "+ref.Region,
		)
	}

	if word := normalise.LeadingTypeWord(ref.Name); word != "" {
		queries = append(queries, word+" "+ref.Region)
	}
	if word := normalise.TrailingWord(ref.Name); word != "" {
		queries = append(queries, word+" "+ref.Region)
	}

	return dedupe(queries, StrategyCap)
}

// dedupe removes exact duplicates preserving first occurrence, then
// truncates to limit.
func dedupe(queries []string, limit int) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
