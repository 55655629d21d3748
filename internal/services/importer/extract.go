package importer

import (
	"strings"

	"github.com/ironreach/steelbridge/internal/domain/source"
	"github.com/ironreach/steelbridge/internal/names"
)

// ExtractKits pulls the names of every kit the export has equipped. Kits
// arrive as plain choice nodes whose name starts with "Kit" ("Kit",
// "Kit (2nd)", ...), scattered across the class's level buckets.
func ExtractKits(features source.LeveledFeatures) []string {
	var kits []string

	for _, bucket := range features {
		for _, node := range bucket.Features {
			if isKitNode(node) {
				kits = append(kits, node.SelectedNames()...)
			}
		}
	}

	return kits
}

func isKitNode(node *source.FeatureNode) bool {
	return node.Kind == source.KindChoice &&
		strings.HasPrefix(strings.ToLower(node.Name), "kit")
}

// ExtractDomains finds the export's domain picks and groups each domain's
// own sub-features, keyed by domain name. A domain's sub-features are the
// domain-feature nodes whose id starts with the slug of the domain's name
// ("war-domain-..." for "War"), grouped by the source level they sit at.
func ExtractDomains(features source.LeveledFeatures) map[string]source.LeveledFeatures {
	domains := make(map[string]source.LeveledFeatures)

	for _, bucket := range features {
		for _, node := range bucket.Features {
			if node.Kind != source.KindDomain {
				continue
			}
			for _, sel := range node.Selected {
				if sel.Name == "" {
					continue
				}
				if _, seen := domains[sel.Name]; !seen {
					domains[sel.Name] = collectDomainFeatures(features, sel.Name)
				}
			}
		}
	}

	return domains
}

func collectDomainFeatures(features source.LeveledFeatures, domainName string) source.LeveledFeatures {
	slug := names.Slug(domainName + " Domain")

	var grouped source.LeveledFeatures
	for _, bucket := range features {
		var matched []*source.FeatureNode
		for _, node := range bucket.Features {
			if node.Kind != source.KindDomainFeature {
				continue
			}
			if strings.HasPrefix(node.ID, slug) {
				matched = append(matched, node)
			}
		}
		if len(matched) > 0 {
			grouped = append(grouped, source.LevelBucket{Level: bucket.Level, Features: matched})
		}
	}

	return grouped
}
