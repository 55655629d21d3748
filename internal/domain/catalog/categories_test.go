package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/ironreach/steelbridge/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorySetUnmarshal_ListShape(t *testing.T) {
	var set catalog.CategorySet
	require.NoError(t, json.Unmarshal([]byte(`["Lore", "exploration"]`), &set))

	assert.True(t, set.Has("lore"))
	assert.True(t, set.Has("Exploration"))
	assert.False(t, set.Has("interpersonal"))
}

func TestCategorySetUnmarshal_MapShape(t *testing.T) {
	var set catalog.CategorySet
	require.NoError(t, json.Unmarshal([]byte(`{"Lore": true, "crafting": false}`), &set))

	assert.True(t, set.Has("lore"))

	// false entries are not members
	assert.False(t, set.Has("crafting"))
}

func TestCategorySetContainsAny(t *testing.T) {
	set := catalog.NewCategorySet("lore", "exploration")

	assert.True(t, set.ContainsAny([]string{"exploration"}))
	assert.True(t, set.ContainsAny([]string{"crafting", "LORE"}))
	assert.False(t, set.ContainsAny([]string{"crafting"}))

	// An empty request matches unconditionally
	assert.True(t, set.ContainsAny(nil))
	assert.True(t, catalog.CategorySet{}.ContainsAny(nil))
}

func TestCategoryKeys(t *testing.T) {
	set := catalog.NewCategorySet("Exploration", "lore")
	assert.Equal(t, "exploration,lore", set.Key())

	// The list form normalizes to the same key regardless of order
	assert.Equal(t, set.Key(), catalog.CategoryKey([]string{"lore", "Exploration"}))
}

func TestFeatureNodeUnmarshal(t *testing.T) {
	data := `{
		"type": "CharacterSkillChoice",
		"guid": "g-skill-1",
		"name": "Lore Skill",
		"categories": ["lore"],
		"children": [
			{"type": "CharacterLanguageChoice", "guid": "g-lang-1", "categories": {"dead": true}}
		]
	}`

	var node catalog.FeatureNode
	require.NoError(t, json.Unmarshal([]byte(data), &node))

	assert.Equal(t, catalog.FeatureTypeSkillChoice, node.Type)
	assert.True(t, node.Categories.Has("lore"))
	require.Len(t, node.Children, 1)
	assert.True(t, node.Children[0].Categories.Has("dead"))
}
