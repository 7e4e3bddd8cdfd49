package suggest

import (
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/smartfood/internal/matcher"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recipe(id string, ingredients ...string) model.Recipe {
	r := model.Recipe{ID: id, Name: "Recipe " + id}
	for _, n := range ingredients {
		r.Ingredients = append(r.Ingredients, model.IngredientRequirement{Name: n})
	}
	return r
}

func inventory(names ...string) []model.InventoryItem {
	items := make([]model.InventoryItem, 0, len(names))
	for _, n := range names {
		items = append(items, model.InventoryItem{Name: n, Quantity: 1})
	}
	return items
}

func TestAggregate_ScenarioA(t *testing.T) {
	catalog := []model.Recipe{recipe("tuong-ot", "Tỏi tươi", "Ớt tươi")}
	snap := matcher.NewSnapshot([]model.InventoryItem{{Name: "Tỏi tươi", Quantity: 2, Unit: "kg"}}, 1)

	got := Aggregate(catalog, snap)

	m, ok := got.Lookup("tuong-ot")
	require.True(t, ok)
	assert.Equal(t, []string{"Tỏi tươi"}, m.Available)
	assert.Equal(t, []string{"Ớt tươi"}, m.Missing)
	assert.Equal(t, []string{"tuong-ot"}, got.SmartSuggested)
	assert.Empty(t, got.CanMake)
	assert.Equal(t, model.SuggestionSummary{CanMake: 0, SmartSuggested: 1, Total: 1}, got.Summary)
}

func TestAggregate_Buckets(t *testing.T) {
	catalog := []model.Recipe{
		recipe("all-present", "Trứng gà", "Hành lá"),
		recipe("one-missing", "Trứng gà", "Cà chua"),
		recipe("two-missing", "Trứng gà", "Thịt bò", "Hành tây"),
		recipe("three-missing", "Cá hồi", "Chanh", "Muối"),
		recipe("no-ingredients"),
	}
	snap := matcher.NewSnapshot(inventory("Trứng gà", "Hành lá"), 9)

	got := Aggregate(catalog, snap)

	assert.Equal(t, []string{"all-present", "no-ingredients"}, got.CanMake)
	assert.Equal(t, []string{"all-present", "one-missing", "two-missing", "no-ingredients"}, got.SmartSuggested)
	assert.Equal(t, uint64(9), got.InventoryVersion)
	assert.Len(t, got.Matches, len(catalog))
	for i, m := range got.Matches {
		assert.Equal(t, catalog[i].ID, m.RecipeID, "matches keep catalog order")
	}
}

func TestAggregate_CanMakeSubsetOfSmart(t *testing.T) {
	pantries := [][]model.InventoryItem{
		nil,
		inventory("A"),
		inventory("A", "B", "C"),
		inventory("A", "B", "C", "D", "E", "F"),
	}

	var catalog []model.Recipe
	names := []string{"A", "B", "C", "D", "E", "F"}
	for i := 0; i <= len(names); i++ {
		catalog = append(catalog, recipe(fmt.Sprintf("r%d", i), names[:i]...))
	}

	for _, pantry := range pantries {
		got := Aggregate(catalog, matcher.NewSnapshot(pantry, 1))

		smart := make(map[string]bool, len(got.SmartSuggested))
		for _, id := range got.SmartSuggested {
			smart[id] = true
		}
		for _, id := range got.CanMake {
			assert.True(t, smart[id], "%s can be made but is not suggested", id)
		}

		assert.GreaterOrEqual(t, got.Summary.CanMake, 0)
		assert.LessOrEqual(t, got.Summary.CanMake, got.Summary.SmartSuggested)
		assert.LessOrEqual(t, got.Summary.SmartSuggested, len(catalog))
	}
}

func TestAggregate_EmptyInputs(t *testing.T) {
	got := Aggregate(nil, nil)
	assert.Empty(t, got.Matches)
	assert.Empty(t, got.CanMake)
	assert.Empty(t, got.SmartSuggested)
	assert.Equal(t, model.SuggestionSummary{}, got.Summary)
	assert.False(t, got.Disabled)
}

func TestAggregate_Deterministic(t *testing.T) {
	catalog := []model.Recipe{
		recipe("a", "Thịt heo", "Nước mắm"),
		recipe("b", "Cá basa", "Cà chua", "Thì là"),
	}
	snap := matcher.NewSnapshot(inventory("Nước mắm", "Cà chua"), 2)

	assert.Equal(t, Aggregate(catalog, snap), Aggregate(catalog, snap))
}

func TestLocalSource(t *testing.T) {
	catalog := []model.Recipe{recipe("x", "Tỏi tươi", "Ớt tươi")}

	results, err := NewLocalSource().ComputeSuggestions(context.Background(), catalog, inventory("tỏi tươi"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, []string{"Tỏi tươi"}, results[0].Available)
}

func TestDisabledResult(t *testing.T) {
	got := DisabledResult()
	assert.True(t, got.Disabled)
	_, ok := got.Lookup("anything")
	assert.False(t, ok)
	assert.Equal(t, 0, got.Summary.SmartSuggested)
}

func TestSummarize_CopiesResults(t *testing.T) {
	results := []model.MatchResult{
		{RecipeID: "a", RecipeName: "Recipe a"},
		{RecipeID: "b", RecipeName: "Recipe b", Missing: []string{"Tôm"}},
	}
	out := Summarize(results)

	// The source reuses its buffer for the next computation.
	results[0] = model.MatchResult{RecipeID: "z", Missing: []string{"Mực", "Nấm", "Cua"}}

	require.Len(t, out.Matches, 2)
	assert.Equal(t, "a", out.Matches[0].RecipeID)
	assert.True(t, out.Matches[0].CanMake())
	assert.Equal(t, []string{"a"}, out.CanMake)
}
