// Package importer drives a whole character import: it walks every section
// of a builder export, reconciles each against the catalog through the
// resolution engine, and persists the accumulated choice table.
package importer

//go:generate mockgen -destination=mock/mock_service.go -package=mockimporter -source=service.go

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/domain/source"
	"github.com/ironreach/steelbridge/internal/engine"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/repositories/choices"
)

// Service handles character imports.
type Service interface {
	// ImportCharacter runs a full import of one parsed export document and
	// persists the result. Selections that cannot be reconciled are reported
	// in the output, never fabricated; only transport failures return errors.
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)
}

// ImportCharacterInput holds everything needed to import one character.
type ImportCharacterInput struct {
	OwnerID  string
	RealmID  string
	Document *source.Document
}

// SectionSummary reports one section's reconciliation outcome.
type SectionSummary struct {
	Section string
	Name    string
	Matched int
	Skipped int

	// SkillSlots indexes the target tree's skill-choice slot guids by
	// category key, so callers can report which slots went unfilled.
	// Set only on the class section.
	SkillSlots map[string][]string
}

// ImportCharacterOutput is the result of a completed import.
type ImportCharacterOutput struct {
	CharacterID string
	Name        string
	Choices     map[string]any
	Kits        []string
	Sections    []SectionSummary
	Unresolved  []engine.Unresolved
}

// ServiceConfig holds configuration for the import service.
type ServiceConfig struct {
	// Client is required.
	Client codex.Client

	// Repository is required.
	Repository choices.Repository

	// LevelCap bounds class feature expansion. Defaults to 10.
	LevelCap int

	// Now is the clock used by the engine's fallback keys. Defaults to
	// time.Now; tests pin it.
	Now func() time.Time
}

type service struct {
	client   codex.Client
	resolver *codex.Resolver
	engine   *engine.Engine
	repo     choices.Repository
	levelCap int
}

// NewService creates a new import service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil || cfg.Client == nil {
		return nil, sberr.InvalidArgument("catalog client is required")
	}
	if cfg.Repository == nil {
		return nil, sberr.InvalidArgument("repository is required")
	}

	levelCap := cfg.LevelCap
	if levelCap <= 0 {
		levelCap = 10
	}

	resolver := codex.NewResolver(cfg.Client)
	eng, err := engine.New(&engine.Config{
		Resolver: resolver,
		Now:      cfg.Now,
	})
	if err != nil {
		return nil, err
	}

	return &service{
		client:   cfg.Client,
		resolver: resolver,
		engine:   eng,
		repo:     cfg.Repository,
		levelCap: levelCap,
	}, nil
}

func (s *service) ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error) {
	if input == nil || input.Document == nil {
		return nil, sberr.InvalidArgument("document is required")
	}
	if input.OwnerID == "" {
		return nil, sberr.InvalidArgument("owner ID is required")
	}

	doc := input.Document
	log.Printf("importing character %q for owner %s", doc.Name, input.OwnerID)

	total := engine.NewResult()
	var sections []SectionSummary

	flatSections := []struct {
		label   string
		table   string
		section *source.Section
	}{
		{"ancestry", catalog.TableAncestries, doc.Ancestry},
		{"culture", catalog.TableCultures, doc.Culture},
		{"career", catalog.TableCareers, doc.Career},
	}

	for _, fs := range flatSections {
		result, summary, err := s.importSection(ctx, fs.label, fs.table, fs.section)
		if err != nil {
			return nil, err
		}
		if summary != nil {
			sections = append(sections, *summary)
		}
		total.Merge(result)
	}

	var kits []string
	if doc.Class != nil && doc.Class.Name != "" {
		result, classKits, summary, err := s.importClass(ctx, doc.Class)
		if err != nil {
			return nil, err
		}
		kits = classKits
		sections = append(sections, *summary)
		total.Merge(result)
	} else {
		log.Printf("export has no class section, skipping")
	}

	imported := &choices.ImportedCharacter{
		OwnerID: input.OwnerID,
		RealmID: input.RealmID,
		Name:    doc.Name,
		Choices: total.Choices,
		Kits:    kits,
	}
	if err := s.repo.Create(ctx, imported); err != nil {
		return nil, err
	}

	log.Printf("imported character %q as %s: %d choices, %d unresolved",
		doc.Name, imported.ID, len(total.Choices), len(total.Unresolved))

	return &ImportCharacterOutput{
		CharacterID: imported.ID,
		Name:        doc.Name,
		Choices:     total.Choices,
		Kits:        kits,
		Sections:    sections,
		Unresolved:  total.Unresolved,
	}, nil
}

// importSection reconciles one flat section (ancestry, culture, career)
// against the catalog entity of the same name.
func (s *service) importSection(ctx context.Context, label, table string, section *source.Section) (*engine.Result, *SectionSummary, error) {
	if section == nil || section.Name == "" {
		log.Printf("export has no %s section, skipping", label)
		return nil, nil, nil
	}

	log.Printf("processing %s %q", label, section.Name)

	result := engine.NewResult()
	summary := &SectionSummary{Section: label, Name: section.Name}

	rec, err := s.resolver.Resolve(ctx, table, section.Name)
	if err != nil {
		if sberr.IsUnresolvedName(err) {
			log.Printf("warning: %s %q not found in catalog, skipping section", label, section.Name)
			result.Discard(source.KindUnknown, section.Name, "no matching "+label+" in catalog")
			summary.Skipped = len(section.Features)
			return result, summary, nil
		}
		return nil, nil, err
	}

	targets, err := s.client.ExpandLeveledFeatures(ctx, table, rec.ID, s.levelCap)
	if err != nil {
		return nil, nil, err
	}

	src := source.LeveledFeatures{{Level: 1, Features: section.Features}}
	orch := engine.NewOrchestrator(s.engine, targets)
	sectionResult, err := orch.ProcessLeveled(ctx, src)
	if err != nil {
		return nil, nil, err
	}
	result.Merge(sectionResult)

	summary.Matched = len(result.Choices)
	summary.Skipped = len(result.Unresolved)
	return result, summary, nil
}

// importClass drives the class section: the main class pass, the subclass
// tree when one is chosen, kit extraction, and one filtered pass per chosen
// domain scoped to that domain's subtree of the catalog tree.
func (s *service) importClass(ctx context.Context, cls *source.ClassSection) (*engine.Result, []string, *SectionSummary, error) {
	log.Printf("processing class %q (level %d)", cls.Name, cls.Level)

	result := engine.NewResult()
	summary := &SectionSummary{Section: "class", Name: cls.Name}

	rec, err := s.resolver.Resolve(ctx, catalog.TableClasses, cls.Name)
	if err != nil {
		if sberr.IsUnresolvedName(err) {
			log.Printf("warning: class %q not found in catalog, skipping section", cls.Name)
			result.Discard(source.KindUnknown, cls.Name, "no matching class in catalog")
			return result, nil, summary, nil
		}
		return nil, nil, nil, err
	}

	levelCap := cls.Level
	if levelCap <= 0 || levelCap > s.levelCap {
		levelCap = s.levelCap
	}

	targets, err := s.client.ExpandLeveledFeatures(ctx, catalog.TableClasses, rec.ID, levelCap)
	if err != nil {
		return nil, nil, nil, err
	}

	// The subclass tree is part of the same target space: a source feature
	// may land in a slot either tree introduces.
	if cls.Subclass != "" {
		subTargets, err := s.expandSubclass(ctx, cls.Subclass, levelCap, result)
		if err != nil {
			return nil, nil, nil, err
		}
		targets = append(targets, subTargets...)
	}

	summary.SkillSlots = engine.CollectByCategory(targets, catalog.FeatureTypeSkillChoice)
	for key, guids := range summary.SkillSlots {
		log.Printf("class offers %d skill slot(s) in categories [%s]", len(guids), key)
	}

	featuresets := resolveAbilityRefs(cls)
	domains := ExtractDomains(featuresets)
	orch := engine.NewOrchestrator(s.engine, targets)

	// Domain sub-features are withheld from the main pass; matched against
	// the whole tree they could land in another domain's identical slot.
	// Kit nodes are withheld too, the kit table resolves them directly.
	classResult, err := orch.ProcessLeveled(ctx, mainPassFeatures(featuresets, domains))
	if err != nil {
		return nil, nil, nil, err
	}
	result.Merge(classResult)

	// Each domain's own sub-features only make sense inside that domain's
	// subtree, so every domain gets its own filtered pass.
	for _, domainName := range sortedKeys(domains) {
		log.Printf("processing domain %q", domainName)
		orch.SetFilter(engine.Filter{engine.FilterFieldName: domainName + " Domain"})
		domainResult, err := orch.ProcessLeveled(ctx, domains[domainName])
		if err != nil {
			return nil, nil, nil, err
		}
		result.Merge(domainResult)
	}
	orch.ClearFilter()

	kits, err := s.resolveKits(ctx, featuresets, result)
	if err != nil {
		return nil, nil, nil, err
	}

	summary.Matched = len(result.Choices)
	summary.Skipped = len(result.Unresolved)
	return result, kits, summary, nil
}

// expandSubclass resolves the chosen subclass and returns its feature tree.
// A subclass the catalog does not know is skipped, not fatal.
func (s *service) expandSubclass(ctx context.Context, name string, levelCap int, result *engine.Result) (catalog.LeveledFeatures, error) {
	rec, err := s.resolver.Resolve(ctx, catalog.TableSubclasses, name)
	if err != nil {
		if sberr.IsUnresolvedName(err) {
			log.Printf("warning: subclass %q not found in catalog, skipping its tree", name)
			result.Discard(source.KindSubclass, name, "no matching subclass in catalog")
			return nil, nil
		}
		return nil, err
	}
	return s.client.ExpandLeveledFeatures(ctx, catalog.TableSubclasses, rec.ID, levelCap)
}

// resolveKits resolves extracted kit names to catalog ids.
func (s *service) resolveKits(ctx context.Context, featuresets source.LeveledFeatures, result *engine.Result) ([]string, error) {
	var ids []string
	for _, name := range ExtractKits(featuresets) {
		rec, err := s.resolver.Resolve(ctx, catalog.TableKits, name)
		if err != nil {
			if sberr.IsUnresolvedName(err) {
				log.Printf("warning: kit %q not found in catalog, discarding", name)
				result.Discard(source.KindChoice, name, "no such kit in catalog")
				continue
			}
			return nil, err
		}
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

// resolveAbilityRefs returns the class featuresets with every class-ability
// node's id references resolved to named selections via the document's
// abilities list. Nodes are copied, never mutated; unknown ids are dropped
// so the engine sees only placeable names.
func resolveAbilityRefs(cls *source.ClassSection) source.LeveledFeatures {
	out := make(source.LeveledFeatures, 0, len(cls.Featuresets))
	for _, bucket := range cls.Featuresets {
		resolved := source.LevelBucket{Level: bucket.Level}
		for _, node := range bucket.Features {
			resolved.Features = append(resolved.Features, resolveAbilityNode(node, cls))
		}
		out = append(out, resolved)
	}
	return out
}

func resolveAbilityNode(node *source.FeatureNode, cls *source.ClassSection) *source.FeatureNode {
	if node == nil {
		return nil
	}

	copied := *node

	if node.Kind == source.KindClassAbility && len(node.SelectedIDs) > 0 {
		selected := make([]source.Selection, 0, len(node.Selected)+len(node.SelectedIDs))
		selected = append(selected, node.Selected...)
		for _, id := range node.SelectedIDs {
			ref, ok := cls.AbilityByID(id)
			if !ok {
				log.Printf("warning: ability id %q has no entry in the abilities list, dropping", id)
				continue
			}
			selected = append(selected, source.Selection{
				Name:        ref.Name,
				Description: ref.Description,
				ID:          ref.ID,
			})
		}
		copied.Selected = selected
	}

	if len(node.Children) > 0 {
		children := make([]*source.FeatureNode, 0, len(node.Children))
		for _, child := range node.Children {
			children = append(children, resolveAbilityNode(child, cls))
		}
		copied.Children = children
	}

	return &copied
}

// mainPassFeatures returns the featuresets minus the nodes the importer
// handles outside the main pass: kit nodes and every node claimed by an
// extracted domain group.
func mainPassFeatures(featuresets source.LeveledFeatures, domains map[string]source.LeveledFeatures) source.LeveledFeatures {
	claimed := make(map[*source.FeatureNode]struct{})
	for _, group := range domains {
		for _, node := range group.AllFeatures() {
			claimed[node] = struct{}{}
		}
	}

	out := make(source.LeveledFeatures, 0, len(featuresets))
	for _, bucket := range featuresets {
		kept := source.LevelBucket{Level: bucket.Level}
		for _, node := range bucket.Features {
			if _, ok := claimed[node]; ok {
				continue
			}
			if isKitNode(node) {
				continue
			}
			kept.Features = append(kept.Features, node)
		}
		out = append(out, kept)
	}
	return out
}

func sortedKeys(m map[string]source.LeveledFeatures) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
