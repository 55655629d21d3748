// Package engine reconciles builder-export selections against the catalog's
// leveled feature trees. It is a best-effort matcher: a selection that
// cannot be placed is discarded and reported, never fabricated, and no
// failure here aborts the surrounding import.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/domain/source"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/names"
)

// maxSearchDepth bounds the nested slot search. Real trees nest five levels
// at most; malformed catalog data fails closed instead of blowing the stack.
const maxSearchDepth = 32

// damageModifierLabel is the generic label the builder gives distinct
// immunity picks. The real discriminator lives in the description.
const damageModifierLabel = "damage modifier"

// Engine matches source selection nodes against catalog feature trees.
type Engine struct {
	resolver *codex.Resolver
	now      func() time.Time
}

// Config holds configuration for the engine.
type Config struct {
	// Resolver is required.
	Resolver *codex.Resolver

	// Now is the clock used for synthetic fallback keys. Defaults to
	// time.Now; tests pin it.
	Now func() time.Time
}

// New creates a resolution engine.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil || cfg.Resolver == nil {
		return nil, sberr.InvalidArgument("resolver is required")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		resolver: cfg.Resolver,
		now:      now,
	}, nil
}

// ResolveOne matches one source node (and its nested children) against a
// catalog tree. Failed selections end up in the result's Unresolved list;
// the returned error is reserved for catalog transport failures.
func (e *Engine) ResolveOne(ctx context.Context, node *source.FeatureNode, targets catalog.LeveledFeatures, filter Filter) (*Result, error) {
	result := NewResult()
	if err := e.resolveNode(ctx, logContext{}, node, targets.AllFeatures(), filter, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ResolveLeveled matches every source node in every bucket against the
// entire catalog tree. Buckets are visited in declaration order; level
// numbers are not matched against each other because the two systems level
// features differently.
func (e *Engine) ResolveLeveled(ctx context.Context, src source.LeveledFeatures, targets catalog.LeveledFeatures, filter Filter) (*Result, error) {
	result := NewResult()
	flat := targets.AllFeatures()

	for _, bucket := range src {
		for _, node := range bucket.Features {
			if err := e.resolveNode(ctx, logContext{}, node, flat, filter, result); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func (e *Engine) resolveNode(ctx context.Context, lc logContext, node *source.FeatureNode, targets []*catalog.FeatureNode, filter Filter, result *Result) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case source.KindChoice, source.KindClassAbility:
		return e.resolveOptionChoice(lc, node, targets, filter, result)

	case source.KindDomainFeature:
		// Domain features carry their own picks and may nest further choices.
		if err := e.resolveOptionChoice(lc, node, targets, filter, result); err != nil {
			return err
		}
		return e.resolveChildren(ctx, lc, node, targets, filter, result)

	case source.KindLanguageChoice:
		return e.resolveTableChoice(ctx, lc, node, targets, filter, result, catalog.TableLanguages, catalog.FeatureTypeLanguageChoice, nil)

	case source.KindSkillChoice:
		return e.resolveTableChoice(ctx, lc, node, targets, filter, result, catalog.TableSkills, catalog.FeatureTypeSkillChoice, node.ListOptions)

	case source.KindPerkChoice:
		return e.resolveTableChoice(ctx, lc, node, targets, filter, result, catalog.TablePerks, catalog.FeatureTypeFeatChoice, nil)

	case source.KindDeity:
		return e.resolveTableChoice(ctx, lc, node, targets, filter, result, catalog.TableDeities, catalog.FeatureTypeDeityChoice, nil)

	case source.KindSubclass:
		return e.resolveTableChoice(ctx, lc, node, targets, filter, result, catalog.TableSubclasses, catalog.FeatureTypeSubclassChoice, nil)

	case source.KindDomain:
		return e.resolveDomains(ctx, lc, node, targets, filter, result)

	case source.KindMultipleFeatures:
		return e.resolveChildren(ctx, lc, node, targets, filter, result)

	default:
		lc.printf("skipping unrecognized feature kind %q (name=%q)", node.Kind, node.Name)
		return nil
	}
}

func (e *Engine) resolveChildren(ctx context.Context, lc logContext, node *source.FeatureNode, targets []*catalog.FeatureNode, filter Filter, result *Result) error {
	for _, child := range node.Children {
		if err := e.resolveNode(ctx, lc.deeper(), child, targets, filter, result); err != nil {
			return err
		}
	}
	return nil
}

// resolveOptionChoice places each selected value into a feature-choice slot
// whose options contain a matching name.
func (e *Engine) resolveOptionChoice(lc logContext, node *source.FeatureNode, targets []*catalog.FeatureNode, filter Filter, result *Result) error {
	for _, sel := range node.Selected {
		name := sel.Name
		if name == "" {
			lc.printf("warning: selected value on %q has no name, discarding", node.Name)
			result.Discard(node.Kind, node.Name, "selected value has no name")
			continue
		}

		if strings.EqualFold(name, damageModifierLabel) {
			name = damageModifierDiscriminator(sel.Description)
			if name == "" {
				lc.printf("warning: damage modifier %q has no immunity discriminator, discarding", sel.Description)
				result.Discard(node.Kind, sel.Name, "damage modifier description carries no immunity")
				continue
			}
		}

		slot, opt := findOption(lc, targets, name, searchState{filter: filter})
		if slot == nil {
			lc.printf("warning: no feature choice offers option %q, discarding", name)
			result.Discard(node.Kind, sel.Name, fmt.Sprintf("no feature choice offers option %q", name))
			continue
		}

		result.Record(slot.GUID, opt.GUID)
		result.RecordFeature(slot.GUID, slot)
	}

	return nil
}

// resolveTableChoice resolves each selected name against a catalog table,
// then places the resolved id into the first slot of the wanted type (and
// category, when the source declares one).
func (e *Engine) resolveTableChoice(ctx context.Context, lc logContext, node *source.FeatureNode, targets []*catalog.FeatureNode, filter Filter, result *Result, table string, typ catalog.FeatureType, categories []string) error {
	for _, sel := range node.Selected {
		if sel.Name == "" {
			lc.printf("warning: selected value on %q has no name, discarding", node.Name)
			result.Discard(node.Kind, node.Name, "selected value has no name")
			continue
		}

		rec, err := e.resolver.Resolve(ctx, table, sel.Name)
		if err != nil {
			if sberr.IsUnresolvedName(err) {
				lc.printf("warning: %q not found in table %q, discarding", sel.Name, table)
				result.Discard(node.Kind, sel.Name, fmt.Sprintf("no record named %q in table %q", sel.Name, table))
				continue
			}
			return err
		}

		slot := findFeature(lc, targets, typ, categories, searchState{filter: filter})
		if slot == nil {
			lc.printf("warning: no %s slot for %q (categories %v), discarding", typ, sel.Name, categories)
			result.Discard(node.Kind, sel.Name, fmt.Sprintf("no %s slot available", typ))
			continue
		}

		result.Record(slot.GUID, rec.ID)
		result.RecordFeature(slot.GUID, slot)
	}

	return nil
}

// resolveDomains handles the compound domain case. A domain pick is not a
// 1:1 slot match: the chosen domains are recorded under a key derived from
// the deity-choice slot, and a multi-domain pick additionally selects the
// catalog's umbrella deity.
func (e *Engine) resolveDomains(ctx context.Context, lc logContext, node *source.FeatureNode, targets []*catalog.FeatureNode, filter Filter, result *Result) error {
	domains := make([]string, 0, len(node.Selected))
	for _, name := range node.SelectedNames() {
		if name == "" {
			lc.printf("warning: selected value on %q has no name, discarding", node.Name)
			result.Discard(node.Kind, node.Name, "selected value has no name")
			continue
		}
		domains = append(domains, name)
	}
	if len(domains) == 0 {
		return nil
	}

	deitySlot := findFeature(lc, targets, catalog.FeatureTypeDeityChoice, nil, searchState{filter: filter})

	// A multi-domain pick means the source chose "all domains" rather than
	// a single deity; mirror that with the catalog's umbrella deity.
	if len(domains) > 1 && deitySlot != nil {
		rec, err := e.resolver.Resolve(ctx, catalog.TableDeities, "All Domains")
		switch {
		case err == nil:
			result.Record(deitySlot.GUID, rec.ID)
			result.RecordFeature(deitySlot.GUID, deitySlot)
		case sberr.IsUnresolvedName(err):
			lc.printf("warning: catalog has no umbrella deity for a multi-domain pick")
		default:
			return err
		}
	}

	key := e.domainsKey(lc, node, deitySlot, result)

	for _, domainName := range domains {
		rec, err := e.resolver.Resolve(ctx, catalog.TableDomains, domainName)
		if err != nil {
			if sberr.IsUnresolvedName(err) {
				lc.printf("warning: domain %q not found in catalog, discarding", domainName)
				result.Discard(node.Kind, domainName, "no such domain in catalog")
				continue
			}
			return err
		}
		result.Record(key, rec.ID)
	}

	return nil
}

// domainsKey derives the key the chosen domains are recorded under. Without
// a deity-choice slot it falls back to a synthetic time-based key. That key
// cannot collide with a real catalog guid, which also means downstream
// consumers likely cannot resolve it; the fallback is kept (rather than
// hard-failing) to preserve the best-effort contract, and surfaced as an
// ambiguous-fallback warning.
func (e *Engine) domainsKey(lc logContext, node *source.FeatureNode, deitySlot *catalog.FeatureNode, result *Result) string {
	if deitySlot != nil {
		return deitySlot.GUID + "-domains"
	}

	key := fmt.Sprintf("%d-domains", e.now().UnixNano())
	lc.printf("warning: no deity-choice slot found, recording domains under synthetic key %q", key)
	result.Discard(node.Kind, node.Name, fmt.Sprintf("deity-choice slot not found; recorded under synthetic key %q", key))
	return key
}

// damageModifierDiscriminator extracts the real option name from a damage
// modifier description: the text up to and including "Immunity".
func damageModifierDiscriminator(description string) string {
	idx := strings.Index(description, "Immunity")
	if idx < 0 {
		return ""
	}
	return description[:idx+len("Immunity")]
}

// searchState tracks filter pass-through and depth during slot search.
type searchState struct {
	filter Filter
	passed bool
	depth  int
}

// findFeature locates the first catalog node of the wanted type (and, when
// requested, category) in declaration order, recursing into children before
// giving up. First match wins; there is no scoring.
func findFeature(lc logContext, nodes []*catalog.FeatureNode, typ catalog.FeatureType, categories []string, st searchState) *catalog.FeatureNode {
	if st.depth >= maxSearchDepth {
		lc.printf("warning: slot search exceeded depth %d, giving up", maxSearchDepth)
		return nil
	}

	for _, node := range nodes {
		passed := st.passed || st.filter.Matches(node)

		if passed && node.Type == typ && node.Categories.ContainsAny(categories) {
			return node
		}

		if len(node.Children) > 0 {
			child := findFeature(lc, node.Children, typ, categories, searchState{
				filter: st.filter,
				passed: passed,
				depth:  st.depth + 1,
			})
			if child != nil {
				return child
			}
		}
	}

	return nil
}

// findOption locates the first feature-choice node offering an option whose
// name matches, with the same traversal rules as findFeature.
func findOption(lc logContext, nodes []*catalog.FeatureNode, name string, st searchState) (*catalog.FeatureNode, *catalog.Option) {
	if st.depth >= maxSearchDepth {
		lc.printf("warning: option search exceeded depth %d, giving up", maxSearchDepth)
		return nil, nil
	}

	for _, node := range nodes {
		passed := st.passed || st.filter.Matches(node)

		if passed && node.Type == catalog.FeatureTypeChoice {
			for i := range node.Options {
				if names.Match(node.Options[i].Name, name) {
					return node, &node.Options[i]
				}
			}
		}

		if len(node.Children) > 0 {
			childNode, childOpt := findOption(lc, node.Children, name, searchState{
				filter: st.filter,
				passed: passed,
				depth:  st.depth + 1,
			})
			if childNode != nil {
				return childNode, childOpt
			}
		}
	}

	return nil, nil
}

// CollectByCategory exhaustively walks a leveled tree and groups the guid of
// every node of the given type by its category key. Unlike slot search this
// never short-circuits; callers use it for multi-occurrence bookkeeping such
// as indexing every skill-choice slot a class offers.
func CollectByCategory(tree catalog.LeveledFeatures, typ catalog.FeatureType) map[string][]string {
	index := make(map[string][]string)
	collectByCategory(tree.AllFeatures(), typ, index, 0)
	return index
}

func collectByCategory(nodes []*catalog.FeatureNode, typ catalog.FeatureType, index map[string][]string, depth int) {
	if depth >= maxSearchDepth {
		return
	}

	for _, node := range nodes {
		if node.Type == typ {
			key := node.Categories.Key()
			index[key] = append(index[key], node.GUID)
		}
		collectByCategory(node.Children, typ, index, depth+1)
	}
}
