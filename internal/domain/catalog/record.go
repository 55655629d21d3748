package catalog

// Table names for the catalog's row storage.
const (
	TableSkills     = "skills"
	TableLanguages  = "languages"
	TablePerks      = "perks"
	TableAncestries = "ancestries"
	TableCultures   = "cultures"
	TableCareers    = "careers"
	TableClasses    = "classes"
	TableSubclasses = "subclasses"
	TableDomains    = "domains"
	TableDeities    = "deities"
	TableKits       = "kits"
)

// Record is one row in a catalog table.
type Record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`

	// Hidden rows are internal catalog entries never offered as choices;
	// the fallback name scan skips them.
	Hidden bool `json:"hidden,omitempty"`
}

// LevelBucket groups the feature nodes the catalog grants at one level.
type LevelBucket struct {
	Level    int            `json:"level"`
	Features []*FeatureNode `json:"features"`
}

// LeveledFeatures is a catalog entity's expanded feature tree: an ordered
// sequence of level buckets. Level values are not assumed sorted or
// contiguous; consumers visit every bucket.
type LeveledFeatures []LevelBucket

// AllFeatures returns the top-level feature nodes of every bucket in
// declaration order. Declaration order is load-bearing: slot matching is
// first-match-wins, tie-broken by the catalog's own ordering.
func (lf LeveledFeatures) AllFeatures() []*FeatureNode {
	var out []*FeatureNode
	for _, bucket := range lf {
		out = append(out, bucket.Features...)
	}
	return out
}
