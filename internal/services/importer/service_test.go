package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/ironreach/steelbridge/internal/clients/codex"
	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/ironreach/steelbridge/internal/domain/source"
	sberr "github.com/ironreach/steelbridge/internal/errors"
	"github.com/ironreach/steelbridge/internal/repositories/choices"
	"github.com/ironreach/steelbridge/internal/services/importer"
)

type ImporterTestSuite struct {
	suite.Suite
	client  *codex.InMemoryClient
	repo    choices.Repository
	service importer.Service
	ctx     context.Context
}

func (s *ImporterTestSuite) SetupTest() {
	s.client = codex.NewInMemoryClient()
	s.repo = choices.NewInMemoryRepository()
	s.ctx = context.Background()

	s.client.AddRecord(catalog.TableSkills, &catalog.Record{ID: "skill-history", Name: "History", Category: "lore"})
	s.client.AddRecord(catalog.TableKits, &catalog.Record{ID: "kit-panther", Name: "Panther"})
	s.client.AddRecord(catalog.TableDeities, &catalog.Record{ID: "deity-vaslorian", Name: "Vaslorian"})
	s.client.AddRecord(catalog.TableDomains, &catalog.Record{ID: "domain-war", Name: "War"})
	s.client.AddRecord(catalog.TableAncestries, &catalog.Record{ID: "anc-hakaan", Name: "Hakaan"})
	s.client.AddRecord(catalog.TableClasses, &catalog.Record{ID: "cls-conduit", Name: "Conduit"})
	s.client.AddRecord(catalog.TableSubclasses, &catalog.Record{ID: "sub-harlequin", Name: "Harlequin Mask"})

	s.client.SetLeveledFeatures(catalog.TableAncestries, "anc-hakaan", catalog.LeveledFeatures{
		{Level: 1, Features: []*catalog.FeatureNode{
			{
				Type:    catalog.FeatureTypeChoice,
				GUID:    "g-anc-trait",
				Options: []catalog.Option{{GUID: "opt-forceful", Name: "Forceful"}},
			},
		}},
	})

	// The storm subtree is declared before war's so an unscoped option
	// search would land the war pick in the wrong domain.
	s.client.SetLeveledFeatures(catalog.TableClasses, "cls-conduit", catalog.LeveledFeatures{
		{Level: 1, Features: []*catalog.FeatureNode{
			{
				Type:       catalog.FeatureTypeSkillChoice,
				GUID:       "g-cls-skill",
				Categories: catalog.NewCategorySet("lore"),
			},
			{
				Type: catalog.FeatureTypeDeityChoice,
				GUID: "g-cls-deity",
			},
			{
				Type:    catalog.FeatureTypeChoice,
				GUID:    "g-cls-ability",
				Options: []catalog.Option{{GUID: "opt-inferno", Name: "Inferno"}},
			},
			{
				Type: catalog.FeatureTypeDeityDomainChoice,
				GUID: "g-storm-wrap",
				Name: "Storm Domain",
				Children: []*catalog.FeatureNode{
					{
						Type:    catalog.FeatureTypeChoice,
						GUID:    "g-storm-prayer",
						Options: []catalog.Option{{GUID: "opt-storm-prayer", Name: "Prayer of Steel"}},
					},
				},
			},
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
	})

	s.client.SetLeveledFeatures(catalog.TableSubclasses, "sub-harlequin", catalog.LeveledFeatures{
		{Level: 1, Features: []*catalog.FeatureNode{
			{
				Type:    catalog.FeatureTypeChoice,
				GUID:    "g-sub-trick",
				Options: []catalog.Option{{GUID: "opt-trick", Name: "Harlequin Trick"}},
			},
		}},
	})

	svc, err := importer.NewService(&importer.ServiceConfig{
		Client:     s.client,
		Repository: s.repo,
		LevelCap:   10,
		Now:        func() time.Time { return time.Unix(0, 1700000000000000000) },
	})
	s.Require().NoError(err)
	s.service = svc
}

func TestImporterSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

func (s *ImporterTestSuite) document() *source.Document {
	return &source.Document{
		Name: "Kelme",
		Ancestry: &source.Section{
			Name: "Hakaan",
			Features: []*source.FeatureNode{
				{
					Kind:     source.KindChoice,
					Name:     "Ancestry Trait",
					Selected: []source.Selection{{Name: "Forceful"}},
				},
			},
		},
		Career: &source.Section{
			Name: "Farmhand",
			Features: []*source.FeatureNode{
				{
					Kind:     source.KindSkillChoice,
					Selected: []source.Selection{{Name: "History"}},
				},
			},
		},
		Class: &source.ClassSection{
			Name:     "Conduit",
			Level:    2,
			Subclass: "Harlequin Mask",
			Featuresets: source.LeveledFeatures{
				{Level: 1, Features: []*source.FeatureNode{
					{
						Kind:        source.KindSkillChoice,
						ListOptions: []string{"lore"},
						Selected:    []source.Selection{{Name: "History"}},
					},
					{
						Kind:     source.KindChoice,
						Name:     "Kit",
						Selected: []source.Selection{{Name: "Panther"}},
					},
					{
						Kind:     source.KindDeity,
						Selected: []source.Selection{{Name: "Vaslorian"}},
					},
					{
						Kind:     source.KindDomain,
						Name:     "Domain",
						Selected: []source.Selection{{Name: "War"}},
					},
					{
						ID:       "war-domain-1st-level-feature",
						Kind:     source.KindDomainFeature,
						Selected: []source.Selection{{Name: "Prayer of Steel"}},
					},
					{
						Kind:        source.KindClassAbility,
						SelectedIDs: []string{"ab-1"},
					},
				}},
				{Level: 2, Features: []*source.FeatureNode{
					{
						Kind:     source.KindChoice,
						Name:     "Trick",
						Selected: []source.Selection{{Name: "Harlequin Trick"}},
					},
				}},
			},
			Abilities: []source.AbilityRef{
				{ID: "ab-1", Name: "Inferno", Description: "A blast of flame."},
			},
		},
	}
}

func (s *ImporterTestSuite) TestImportCharacter() {
	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		RealmID:  "realm-1",
		Document: s.document(),
	})
	s.Require().NoError(err)
	s.NotEmpty(output.CharacterID)
	s.Equal("Kelme", output.Name)

	s.Equal("opt-forceful", output.Choices["g-anc-trait"])
	s.Equal("skill-history", output.Choices["g-cls-skill"])
	s.Equal("deity-vaslorian", output.Choices["g-cls-deity"])
	s.Equal("domain-war", output.Choices["g-cls-deity-domains"])
	s.Equal("opt-inferno", output.Choices["g-cls-ability"])
	s.Equal("opt-trick", output.Choices["g-sub-trick"])

	// The filtered domain pass must land in war's subtree, not storm's.
	s.Equal("opt-war-prayer", output.Choices["g-war-prayer"])
	s.NotContains(output.Choices, "g-storm-prayer")

	s.Equal([]string{"kit-panther"}, output.Kits)

	// The unknown career is the only discard.
	s.Require().Len(output.Unresolved, 1)
	s.Equal("Farmhand", output.Unresolved[0].Name)
}

func (s *ImporterTestSuite) TestImportPersists() {
	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		Document: s.document(),
	})
	s.Require().NoError(err)

	stored, err := s.repo.Get(s.ctx, output.CharacterID)
	s.Require().NoError(err)
	s.Equal("owner-1", stored.OwnerID)
	s.Equal("Kelme", stored.Name)
	s.Equal(output.Choices, stored.Choices)
	s.Equal([]string{"kit-panther"}, stored.Kits)
	s.False(stored.ImportedAt.IsZero())
}

func (s *ImporterTestSuite) TestSectionSummaries() {
	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		Document: s.document(),
	})
	s.Require().NoError(err)

	// Culture is absent from the export, so no summary for it.
	s.Require().Len(output.Sections, 3)
	s.Equal("ancestry", output.Sections[0].Section)
	s.Equal(1, output.Sections[0].Matched)
	s.Equal("career", output.Sections[1].Section)
	s.Equal(1, output.Sections[1].Skipped)
	s.Equal("class", output.Sections[2].Section)
	s.Equal(6, output.Sections[2].Matched)
	s.Zero(output.Sections[2].Skipped)

	// The class summary carries the skill-slot index; flat sections do not.
	s.Equal([]string{"g-cls-skill"}, output.Sections[2].SkillSlots["lore"])
	s.Nil(output.Sections[0].SkillSlots)
}

func (s *ImporterTestSuite) TestEmptySelectionDoesNotAbortImport() {
	doc := s.document()
	doc.Ancestry.Features = append(doc.Ancestry.Features, &source.FeatureNode{
		Kind:     source.KindSkillChoice,
		Name:     "Bonus Skill",
		Selected: []source.Selection{{Name: ""}},
	})

	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		Document: doc,
	})
	s.Require().NoError(err)

	// The rest of the import is unaffected
	s.Equal("opt-forceful", output.Choices["g-anc-trait"])
	s.Equal("opt-war-prayer", output.Choices["g-war-prayer"])
	s.Equal([]string{"kit-panther"}, output.Kits)

	var reasons []string
	for _, u := range output.Unresolved {
		reasons = append(reasons, u.Reason)
	}
	s.Contains(reasons, "selected value has no name")
}

func (s *ImporterTestSuite) TestMissingSectionsTolerated() {
	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		Document: &source.Document{Name: "Empty"},
	})
	s.Require().NoError(err)
	s.Empty(output.Choices)
	s.Empty(output.Sections)
	s.Empty(output.Unresolved)
}

func (s *ImporterTestSuite) TestUnknownClassSkipsSection() {
	doc := s.document()
	doc.Class.Name = "Troubadour"

	output, err := s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		OwnerID:  "owner-1",
		Document: doc,
	})
	s.Require().NoError(err)
	s.NotContains(output.Choices, "g-cls-skill")
	s.Empty(output.Kits)

	var names []string
	for _, u := range output.Unresolved {
		names = append(names, u.Name)
	}
	s.Contains(names, "Troubadour")
}

func (s *ImporterTestSuite) TestValidation() {
	_, err := s.service.ImportCharacter(s.ctx, nil)
	s.True(sberr.IsInvalidArgument(err))

	_, err = s.service.ImportCharacter(s.ctx, &importer.ImportCharacterInput{
		Document: s.document(),
	})
	s.True(sberr.IsInvalidArgument(err))

	_, err = importer.NewService(&importer.ServiceConfig{Repository: s.repo})
	s.True(sberr.IsInvalidArgument(err))

	_, err = importer.NewService(&importer.ServiceConfig{Client: s.client})
	s.True(sberr.IsInvalidArgument(err))
}
