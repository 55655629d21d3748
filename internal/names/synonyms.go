package names

import "strings"

// synonyms maps builder-export vocabulary to catalog vocabulary. These are
// intentional renames between the two systems, not typos: the builder tends
// toward verb forms and parenthesized variants where the catalog uses noun
// forms and comma-separated variants. Keys are lower-cased; Translate folds
// case before the lookup.
var synonyms = map[string]string{
	// Ancestry variants
	"elf (high)":    "Elf, High",
	"elf (wode)":    "Elf, Wode",
	"dwarf (stone)": "Dwarf, Stone",
	"human (urban)": "Human, Urban",

	// Skills the builder names as verbs
	"perform":    "Performance",
	"endure":     "Endurance",
	"navigate":   "Navigation",
	"persuade":   "Persuasion",
	"intimidate": "Intimidation",

	// Renamed catalog entries
	"handle animals":   "Animal Handling",
	"read person":      "Read Person",
	"magic (lore)":     "Magic",
	"rituals (lore)":   "Rituals",
	"alertness (perk)": "Alertness",
	"the arts":         "Art",
}

// Translate maps a builder-export name to its catalog equivalent, or
// returns the input unchanged when no rename is on record. The lookup is
// case-insensitive; the returned value is the catalog's own casing.
func Translate(s string) string {
	if mapped, ok := synonyms[strings.ToLower(s)]; ok {
		return mapped
	}
	return s
}
