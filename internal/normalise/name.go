// Package normalise provides pure string transforms for locality names.
// Catalog names arrive inconsistently romanised: with or without diacritics,
// hyphenated or spaced, mixed case. These helpers generate and compare
// variants without any I/O.
package normalise

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minWordLen is the minimum rune length for a token to be usable
// as a standalone query word.
const minWordLen = 4

var stripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// StripDiacritics returns s with all combining marks removed
// (e.g. "Năsăud" -> "Nasaud"). Malformed input is returned unchanged.
func StripDiacritics(s string) string {
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}

// Fold upper-cases s and strips diacritics. All candidate comparisons
// are done on folded strings.
func Fold(s string) string {
	return strings.ToUpper(StripDiacritics(s))
}

// HyphensToSpaces replaces every hyphen with a single space.
func HyphensToSpaces(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}

// SpacesToHyphens replaces every run of spaces with a single hyphen.
func SpacesToHyphens(s string) string {
	return strings.Join(strings.Fields(s), "-")
}

// HyphenSpaceEqual reports whether a and b are the same name up to
// hyphen/space spelling and case. "Târgu-Mureș" equals "Targu Mures".
func HyphenSpaceEqual(a, b string) bool {
	return Fold(HyphensToSpaces(a)) == Fold(HyphensToSpaces(b))
}

// LeadingTypeWord returns the first whitespace- or hyphen-delimited token
// of name if it is longer than three runes and shorter than the whole name.
// Multi-word names are sometimes indexed under their first word only.
func LeadingTypeWord(name string) string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || unicode.IsSpace(r)
	})
	if len(fields) < 2 {
		return ""
	}
	first := fields[0]
	if len([]rune(first)) < minWordLen {
		return ""
	}
	return first
}

// TrailingWord returns the last whitespace-delimited token of name if it
// is longer than three runes and shorter than the whole name. Handles
// names with a generic leading qualifier ("Valea Lungă" -> "Lungă").
func TrailingWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	last := fields[len(fields)-1]
	if len([]rune(last)) < minWordLen {
		return ""
	}
	return last
}
