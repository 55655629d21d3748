package names_test

import (
	"testing"

	"github.com/ironreach/steelbridge/internal/names"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "keeps alphanumerics and whitespace",
			input:    "Shadow of the 3rd Sea",
			expected: "Shadow of the 3rd Sea",
		},
		{
			name:     "keeps allow-listed punctuation",
			input:    "Wait, what?! (really)",
			expected: "Wait, what?! (really)",
		},
		{
			name:     "drops apostrophes and brackets",
			input:    "Trickster's [Gambit]",
			expected: "Tricksters Gambit",
		},
		{
			name:     "folds smart quotes before dropping them",
			input:    "Trickster’s Gambit",
			expected: "Tricksters Gambit",
		},
		{
			name:     "folds accents and ligatures",
			input:    "Faërie æther",
			expected: "Faerie aether",
		},
		{
			name:     "folds em dash to hyphen",
			input:    "War—Domain",
			expected: "War-Domain",
		},
		{
			name:     "trims edges",
			input:    "  Stealth  ",
			expected: "Stealth",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, names.Sanitize(tt.input))
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Elf, High", names.Translate("Elf (high)"))
	assert.Equal(t, "Performance", names.Translate("perform"))
	assert.Equal(t, "Animal Handling", names.Translate("HANDLE ANIMALS"))

	// Unmapped names come back unchanged
	assert.Equal(t, "Stealth", names.Translate("Stealth"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		a     string
		b     string
		match bool
	}{
		{"identical", "Stealth", "Stealth", true},
		{"case folded", "stealth", "STEALTH", true},
		{"synonym applied", "elf (high)", "ELF, HIGH", true},
		{"verb form skill", "Perform", "Performance", true},
		{"punctuation drift", "Trickster's Gambit", "Tricksters Gambit", true},
		{"smart quote drift", "Trickster’s Gambit", "Trickster's Gambit", true},
		{"different names", "Stealth", "Sneak", false},
		{"both empty", "", "", true},
		{"one empty", "Stealth", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, names.Match(tt.a, tt.b))

			// Match is symmetric for every input pair
			assert.Equal(t, names.Match(tt.a, tt.b), names.Match(tt.b, tt.a))
		})
	}
}

func TestMatchReflexive(t *testing.T) {
	for _, s := range []string{"", "Stealth", "Elf (high)", "Damage Modifier", "  odd  spacing "} {
		assert.True(t, names.Match(s, s), "Match(%q, %q) should be true", s, s)
	}
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, names.HasPrefix("War Domain Skills", "War Domain"))
	assert.True(t, names.HasPrefix("war domain skills", "WAR DOMAIN"))
	assert.False(t, names.HasPrefix("Storm Domain Skills", "War Domain"))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "war-domain", names.Slug("War Domain"))
	assert.Equal(t, "tricksters-gambit", names.Slug("Trickster's Gambit"))
	assert.Equal(t, "", names.Slug(""))
}
