package source

import "strings"

// Kind classifies a feature node in a builder export. The export tags
// nodes with free-form, case-insensitive type strings ("Skill Choice",
// "skill choice", "SkillChoice"); ParseKind folds them to this closed set.
type Kind string

const (
	KindUnknown          Kind = "unknown"
	KindChoice           Kind = "choice"
	KindLanguageChoice   Kind = "language_choice"
	KindPerkChoice       Kind = "perk_choice"
	KindSkillChoice      Kind = "skill_choice"
	KindClassAbility     Kind = "class_ability"
	KindDomain           Kind = "domain"
	KindDomainFeature    Kind = "domain_feature"
	KindMultipleFeatures Kind = "multiple_features"
	KindSubclass         Kind = "subclass"
	KindDeity            Kind = "deity"
)

// ParseKind normalizes a raw export type tag to a Kind. Unrecognized tags
// map to KindUnknown, which the resolution engine skips with a warning.
func ParseKind(raw string) Kind {
	folded := strings.ToLower(raw)
	folded = strings.ReplaceAll(folded, " ", "")
	folded = strings.ReplaceAll(folded, "_", "")
	folded = strings.ReplaceAll(folded, "-", "")

	switch folded {
	case "choice":
		return KindChoice
	case "languagechoice":
		return KindLanguageChoice
	case "perkchoice":
		return KindPerkChoice
	case "skillchoice":
		return KindSkillChoice
	case "classability", "ability":
		return KindClassAbility
	case "domain":
		return KindDomain
	case "domainfeature":
		return KindDomainFeature
	case "multiplefeatures", "multiple":
		return KindMultipleFeatures
	case "subclass":
		return KindSubclass
	case "deity":
		return KindDeity
	default:
		return KindUnknown
	}
}
