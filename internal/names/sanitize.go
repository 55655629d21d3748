package names

import (
	"strings"
	"unicode"
)

// allowedPunctuation is the fixed set of punctuation kept by Sanitize.
// Everything else outside letters, digits, and whitespace is dropped.
const allowedPunctuation = ";:!@#$%^&*()-+=?,"

// asciiFolds maps accented, ligature, and smart-punctuation code points to
// ASCII replacements. Builder exports routinely contain typographic quotes
// and accented vendor names that the catalog stores in plain ASCII.
var asciiFolds = map[rune]string{
	'‘': "'",   // left single quote
	'’': "'",   // right single quote
	'“': `"`,   // left double quote
	'”': `"`,   // right double quote
	'–': "-",   // en dash
	'—': "-",   // em dash
	'…': "...", // ellipsis
	' ': " ",   // non-breaking space

	'à': "a",
	'á': "a",
	'â': "a",
	'ä': "a",
	'ã': "a",
	'è': "e",
	'é': "e",
	'ê': "e",
	'ë': "e",
	'ì': "i",
	'í': "i",
	'î': "i",
	'ï': "i",
	'ò': "o",
	'ó': "o",
	'ô': "o",
	'ö': "o",
	'õ': "o",
	'ù': "u",
	'ú': "u",
	'û': "u",
	'ü': "u",
	'ñ': "n",
	'ç': "c",
	'æ': "ae",
	'œ': "oe",
	'ß': "ss",
}

// Sanitize strips a name down to the characters both schemas agree on:
// alphanumerics, whitespace, and a fixed punctuation allow-list. Accented
// and typographic code points are folded to ASCII first, and the result is
// edge-trimmed. A nil-ish (empty) input comes back empty.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if folded, ok := asciiFolds[r]; ok {
			for _, fr := range folded {
				writeAllowed(&b, fr)
			}
			continue
		}
		writeAllowed(&b, r)
	}

	return strings.TrimSpace(b.String())
}

func writeAllowed(b *strings.Builder, r rune) {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
		b.WriteRune(r)
		return
	}
	if strings.ContainsRune(allowedPunctuation, r) {
		b.WriteRune(r)
	}
}
