package testutils

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/names"
)

// SampleExportJSON is a small but complete builder export: every section
// present, one selection of each interesting kind. It matches the catalog
// seeded by SeedTestCatalog.
const SampleExportJSON = `{
  "name": "Kelme",
  "ancestry": {
    "name": "Hakaan",
    "features": [
      {"id": "hakaan-trait", "type": "Choice", "name": "Ancestry Trait", "selectedValues": ["Forceful"]}
    ]
  },
  "culture": {
    "name": "Wanderer",
    "features": [
      {"id": "wanderer-language", "type": "Language Choice", "name": "Language", "selectedValues": ["Hyrallic"]}
    ]
  },
  "career": {
    "name": "Sage",
    "features": [
      {"id": "sage-skill", "type": "Skill Choice", "name": "Skill", "listOptions": ["lore"], "selectedValues": ["History"]}
    ]
  },
  "class": {
    "name": "Conduit",
    "level": 1,
    "featuresets": [
      {
        "level": 1,
        "features": [
          {"id": "conduit-kit", "type": "Choice", "name": "Kit", "selectedValues": ["Panther"]},
          {"id": "conduit-deity", "type": "Deity", "name": "Deity", "selectedValues": ["Vaslorian"]},
          {"id": "conduit-domain", "type": "Domain", "name": "Domain", "selectedValues": [{"name": "War"}]},
          {"id": "war-domain-feature", "type": "Domain Feature", "selectedValues": [{"name": "Prayer of Steel"}]}
        ]
      }
    ],
    "abilities": []
  }
}`

// TestCatalogRecords returns the catalog rows the sample export resolves
// against, keyed by table.
func TestCatalogRecords() map[string][]*catalog.Record {
	return map[string][]*catalog.Record{
		catalog.TableSkills: {
			{ID: "skill-history", Name: "History", Category: "lore"},
		},
		catalog.TableLanguages: {
			{ID: "lang-hyrallic", Name: "Hyrallic"},
		},
		catalog.TableKits: {
			{ID: "kit-panther", Name: "Panther"},
		},
		catalog.TableDeities: {
			{ID: "deity-vaslorian", Name: "Vaslorian"},
			{ID: "deity-all", Name: "All Domains"},
		},
		catalog.TableDomains: {
			{ID: "domain-war", Name: "War"},
		},
		catalog.TableAncestries: {
			{ID: "anc-hakaan", Name: "Hakaan"},
		},
		catalog.TableCultures: {
			{ID: "cul-wanderer", Name: "Wanderer"},
		},
		catalog.TableCareers: {
			{ID: "car-sage", Name: "Sage"},
		},
		catalog.TableClasses: {
			{ID: "cls-conduit", Name: "Conduit"},
		},
	}
}

// TestFeatureTrees returns the expanded feature trees for the seeded catalog
// entities, keyed by table then entity id.
func TestFeatureTrees() map[string]map[string]catalog.LeveledFeatures {
	return map[string]map[string]catalog.LeveledFeatures{
		catalog.TableAncestries: {
			"anc-hakaan": {
				{Level: 1, Features: []*catalog.FeatureNode{
					{
						Type:    catalog.FeatureTypeChoice,
						GUID:    "g-anc-trait",
						Name:    "Ancestry Trait",
						Options: []catalog.Option{{GUID: "opt-forceful", Name: "Forceful"}},
					},
				}},
			},
		},
		catalog.TableCultures: {
			"cul-wanderer": {
				{Level: 1, Features: []*catalog.FeatureNode{
					{Type: catalog.FeatureTypeLanguageChoice, GUID: "g-cul-lang"},
				}},
			},
		},
		catalog.TableCareers: {
			"car-sage": {
				{Level: 1, Features: []*catalog.FeatureNode{
					{
						Type:       catalog.FeatureTypeSkillChoice,
						GUID:       "g-car-skill",
						Categories: catalog.NewCategorySet("lore"),
					},
				}},
			},
		},
		catalog.TableClasses: {
			"cls-conduit": {
				{Level: 1, Features: []*catalog.FeatureNode{
					{Type: catalog.FeatureTypeDeityChoice, GUID: "g-cls-deity"},
					{
						Type: catalog.FeatureTypeDeityDomainChoice,
						GUID: "g-war-wrap",
						Name: "War Domain",
						Children: []*catalog.FeatureNode{
							{
								Type:    catalog.FeatureTypeChoice,
								GUID:    "g-war-prayer",
								Options: []catalog.Option{{GUID: "opt-war-prayer", Name: "Prayer of Steel"}},
							},
						},
					},
				}},
			},
		},
	}
}

// SeedTestCatalog writes the test catalog into Redis using the codex key
// layout: record lists, exact-name indexes, and feature trees.
func SeedTestCatalog(t *testing.T, client redis.UniversalClient) {
	t.Helper()
	ctx := context.Background()

	for table, records := range TestCatalogRecords() {
		for _, rec := range records {
			data, err := json.Marshal(rec)
			require.NoError(t, err)
			require.NoError(t, client.RPush(ctx, codex.TableKey(table), data).Err())
			require.NoError(t, client.HSet(ctx, codex.IndexKey(table), names.Canonical(rec.Name), data).Err())
		}
	}

	for table, trees := range TestFeatureTrees() {
		for id, tree := range trees {
			data, err := json.Marshal(tree)
			require.NoError(t, err)
			require.NoError(t, client.Set(ctx, codex.FeaturesKey(table, id), data, 0).Err())
		}
	}
}
