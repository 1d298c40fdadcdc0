package normalize

import (
	"strings"

	"larder/internal/textutil"
)

// Key identifies ingredient lines that refer to the same purchasable item in
// a compatible unit family. It is a merge key only.
type Key struct {
	Name   string
	Family string
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.Name + "|" + k.Family
}

// Normalize computes the merge key for an ingredient name and nullable unit.
// A name that folds to nothing (punctuation only) falls back to its
// lower-cased text so it still has a key of its own.
func Normalize(name string, unit *string) Key {
	normalized := NormalizeName(name)
	if normalized == "" {
		normalized = strings.ToLower(textutil.CollapseSpaces(name))
	}
	return Key{
		Name:   normalized,
		Family: ResolveUnit(unit).Family,
	}
}

// NormalizeName folds the name and singularizes its last word.
func NormalizeName(name string) string {
	folded := textutil.Fold(textutil.TrimPunct(name))
	if folded == "" {
		return ""
	}
	words := strings.Split(folded, " ")
	last := len(words) - 1
	words[last] = Singularize(words[last])
	return strings.Join(words, " ")
}

// irregularPlurals are matched before any suffix rule.
var irregularPlurals = map[string]string{
	"leaves":   "leaf",
	"loaves":   "loaf",
	"halves":   "half",
	"knives":   "knife",
	"geese":    "goose",
	"mice":     "mouse",
	"children": "child",
	"cookies":  "cookie",
	"brownies": "brownie",
	"veggies":  "veggie",
	"calories": "calorie",
}

// invariantWords end in "s" but are not plurals.
var invariantWords = map[string]struct{}{
	"molasses":  {},
	"hummus":    {},
	"couscous":  {},
	"asparagus": {},
	"citrus":    {},
	"swiss":     {},
	"grits":     {},
	"series":    {},
	"species":   {},
}

type suffixRule struct {
	suffix      string
	replacement string
}

// suffixRules are tried in order; the first match wins.
var suffixRules = []suffixRule{
	{"ies", "y"},
	{"oes", "o"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"xes", "x"},
	{"sses", "ss"},
}

// Singularize strips common English plural endings from word using the fixed
// rules above. Words of three letters or fewer are returned unchanged.
func Singularize(word string) string {
	if len(word) <= 3 {
		return word
	}
	if singular, ok := irregularPlurals[word]; ok {
		return singular
	}
	if _, ok := invariantWords[word]; ok {
		return word
	}
	for _, rule := range suffixRules {
		if strings.HasSuffix(word, rule.suffix) && len(word) > len(rule.suffix)+1 {
			return strings.TrimSuffix(word, rule.suffix) + rule.replacement
		}
	}
	if strings.HasSuffix(word, "s") {
		prev := word[len(word)-2]
		if prev != 's' && prev != 'u' && prev != 'i' {
			return word[:len(word)-1]
		}
	}
	return word
}
