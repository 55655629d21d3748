// Package catalog models the native system's side of an import: catalog
// records, feature-choice nodes, and the leveled trees the catalog expands
// for classes, subclasses, and domains. Everything here is read-only during
// matching; trees are produced fresh per expansion.
package catalog

// FeatureType tags a feature node with the kind of choice slot it is.
type FeatureType string

const (
	FeatureTypeChoice            FeatureType = "CharacterFeatureChoice"
	FeatureTypeLanguageChoice    FeatureType = "CharacterLanguageChoice"
	FeatureTypeFeatChoice        FeatureType = "CharacterFeatChoice"
	FeatureTypeSkillChoice       FeatureType = "CharacterSkillChoice"
	FeatureTypeDeityChoice       FeatureType = "CharacterDeityChoice"
	FeatureTypeSubclassChoice    FeatureType = "CharacterSubclassChoice"
	FeatureTypeDeityDomainChoice FeatureType = "CharacterDeityDomainChoice"
)

// Option is one selectable entry on a feature-choice node.
type Option struct {
	GUID string `json:"guid"`
	Name string `json:"name"`
}

// FeatureNode is one choice slot in the catalog's expanded feature tree.
// Children are nested slots that only become reachable once an enclosing
// filter or category matches.
type FeatureNode struct {
	Type        FeatureType    `json:"type"`
	GUID        string         `json:"guid"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Categories  CategorySet    `json:"categories,omitempty"`
	Options     []Option       `json:"options,omitempty"`
	Children    []*FeatureNode `json:"children,omitempty"`
}
