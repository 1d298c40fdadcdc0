package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folder     = cases.Fold()
)

// Fold strips diacritics, case-folds, and collapses whitespace.
func Fold(value string) string {
	stripped, _, err := transform.String(stripMarks, value)
	if err != nil {
		stripped = value
	}
	return CollapseSpaces(folder.String(stripped))
}

// CollapseSpaces trims value and replaces internal whitespace runs with a
// single space.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// TrimPunct removes leading and trailing punctuation and symbols, keeping
// internal characters such as the hyphen in "all-purpose".
func TrimPunct(value string) string {
	return strings.TrimFunc(value, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

// HasLetter reports whether value contains at least one letter.
func HasLetter(value string) bool {
	return strings.IndexFunc(value, unicode.IsLetter) >= 0
}
