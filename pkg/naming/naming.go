// Package naming provides the bibliographic string normalization used by the
// Calibre import pipeline: title cleaning, sort-title derivation, and author
// name canonicalization.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TitleArticles are leading articles rotated to the end of sort titles,
// checked in this order with the first match winning.
// Example: "The Hobbit" -> "Hobbit, The".
var TitleArticles = []string{
	"The",
	"A",
	"An",
}

// Person is a normalized author name: the human-presentable display form and
// the "Last, First" sort key. Derivation is deterministic; the same raw input
// always yields the same pair.
type Person struct {
	Name     string
	SortName string
}

// CleanTitle recapitalizes a raw title: every whitespace-delimited token is
// lowercased and then title-cased on its first character, and tokens are
// rejoined with single spaces. Small words, acronyms, and non-ASCII scripts
// get no special handling.
// Example: "the GREAT gatsby" -> "The Great Gatsby".
func CleanTitle(raw string) string {
	tokens := strings.Fields(raw)
	for i, token := range tokens {
		tokens[i] = capitalize(strings.ToLower(token))
	}
	return strings.Join(tokens, " ")
}

// SortTitle rotates a leading article to the end of the title.
// Examples:
//   - "The Hobbit" -> "Hobbit, The"
//   - "A Tale of Two Cities" -> "Tale of Two Cities, A"
//   - "Dune" -> "Dune" (no article, unchanged)
func SortTitle(title string) string {
	for _, article := range TitleArticles {
		prefix := article + " "
		if len(title) > len(prefix) && strings.EqualFold(title[:len(prefix)], prefix) {
			return title[len(prefix):] + ", " + article
		}
	}
	return title
}

// CleanAuthorName canonicalizes a raw author name string into a display name
// and a sort key. It handles "Last, First", "First Last", and single-token
// names; blank input falls back to "Unknown".
//
// The space-separated branch preserves the raw display string and only
// capitalizes the surname in the sort key; the comma branch capitalizes both
// parts. The asymmetry is intentional and pinned by tests.
func CleanAuthorName(raw string) Person {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Person{Name: "Unknown", SortName: "Unknown"}
	}

	hasComma := strings.Contains(name, ",")
	hasSpace := strings.Contains(name, " ")

	// Mononyms and pen names keep the trailing ", " artifact on the sort key.
	if !hasComma && !hasSpace {
		capitalized := capitalize(name)
		return Person{Name: capitalized, SortName: capitalized + ", "}
	}

	if hasComma {
		parts := strings.SplitN(name, ",", 2)
		last := capitalize(strings.TrimSpace(parts[0]))
		first := capitalize(strings.TrimSpace(parts[1]))
		return Person{Name: first + " " + last, SortName: last + ", " + first}
	}

	tokens := strings.Fields(name)
	last := tokens[len(tokens)-1]
	first := strings.Join(tokens[:len(tokens)-1], " ")
	return Person{Name: name, SortName: capitalize(last) + ", " + first}
}

// capitalize uppercases the first character if it is lowercase and leaves the
// rest of the string unchanged.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
