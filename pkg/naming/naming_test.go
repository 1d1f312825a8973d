package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase and uppercase mix",
			input:    "the GREAT gatsby",
			expected: "The Great Gatsby",
		},
		{
			name:     "already clean",
			input:    "The Hobbit",
			expected: "The Hobbit",
		},
		{
			name:     "collapses whitespace",
			input:    "  a   tale  of two   cities ",
			expected: "A Tale Of Two Cities",
		},
		{
			name:     "single word",
			input:    "DUNE",
			expected: "Dune",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanTitle(tt.input))
		})
	}
}

func TestSortTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "The at beginning",
			input:    "The Hobbit",
			expected: "Hobbit, The",
		},
		{
			name:     "A at beginning",
			input:    "A Tale of Two Cities",
			expected: "Tale of Two Cities, A",
		},
		{
			name:     "An at beginning",
			input:    "An American Tragedy",
			expected: "American Tragedy, An",
		},
		{
			name:     "no article",
			input:    "Dune",
			expected: "Dune",
		},
		{
			name:     "article in middle only",
			input:    "Return of the King",
			expected: "Return of the King",
		},
		{
			name:     "case-insensitive article check",
			input:    "the hobbit",
			expected: "hobbit, The",
		},
		{
			name:     "just The",
			input:    "The",
			expected: "The",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SortTitle(tt.input))
		})
	}
}

func TestCleanAuthorName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Person
	}{
		{
			name:     "comma form capitalizes both parts",
			input:    "doe, john",
			expected: Person{Name: "John Doe", SortName: "Doe, John"},
		},
		{
			name:     "comma form already capitalized",
			input:    "Tolkien, J.R.R.",
			expected: Person{Name: "J.R.R. Tolkien", SortName: "Tolkien, J.R.R."},
		},
		// The space form preserves the raw display string and only
		// capitalizes the surname in the sort key. Asymmetric with the comma
		// branch on purpose.
		{
			name:     "space form preserves display casing",
			input:    "john doe",
			expected: Person{Name: "john doe", SortName: "Doe, john"},
		},
		{
			name:     "space form with middle names",
			input:    "george r.r. martin",
			expected: Person{Name: "george r.r. martin", SortName: "Martin, george r.r."},
		},
		{
			name:     "single token keeps trailing comma-space artifact",
			input:    "Prince",
			expected: Person{Name: "Prince", SortName: "Prince, "},
		},
		{
			name:     "single lowercase token",
			input:    "madonna",
			expected: Person{Name: "Madonna", SortName: "Madonna, "},
		},
		{
			name:     "blank input falls back to Unknown",
			input:    "",
			expected: Person{Name: "Unknown", SortName: "Unknown"},
		},
		{
			name:     "whitespace-only input falls back to Unknown",
			input:    "   ",
			expected: Person{Name: "Unknown", SortName: "Unknown"},
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  doe, john  ",
			expected: Person{Name: "John Doe", SortName: "Doe, John"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAuthorName(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"prince", "Prince"},
		{"Prince", "Prince"},
		{"pRINCE", "PRINCE"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, capitalize(tt.input))
		})
	}
}
