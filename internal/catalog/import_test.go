package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/testutil"
)

func TestImport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	f, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	var seen []string
	result, err := Import(ctx, db.Storage, f, func(r model.Recipe) { seen = append(seen, r.Name) })
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 2}, result)
	assert.Equal(t, []string{"Trứng chiên hành", "Canh chua"}, seen)

	// Importing again updates the recipe with an id and adds the one without.
	f.Recipes[0].Rating = 5
	result, err = Import(ctx, db.Storage, f, nil)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Created: 1, Updated: 1}, result)

	stored, err := db.Storage.GetRecipe(ctx, "trung-chien")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, stored.Rating, 0.001)

	all, err := db.Storage.ListRecipes(ctx, service.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestImport_StopsOnError(t *testing.T) {
	store := testutil.NewFakeRecipeStore()
	store.FailNext(testutil.MethodCreateRecipe, nil)
	store.FailNext(testutil.MethodCreateRecipe, errors.New("disk full"))

	f := &File{Recipes: []model.Recipe{
		testutil.Recipe("a", "A", "Tỏi tươi"),
		testutil.Recipe("b", "B", "Ớt tươi"),
		testutil.Recipe("c", "C", "Hành lá"),
	}}

	result, err := Import(context.Background(), store, f, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to import recipe "B"`)
	assert.Equal(t, ImportResult{Created: 1}, result)
	assert.Equal(t, 2, store.CallCount(testutil.MethodCreateRecipe))
}

func TestImport_Cancelled(t *testing.T) {
	store := testutil.NewFakeRecipeStore()
	f := &File{Recipes: []model.Recipe{testutil.Recipe("a", "A", "Tỏi tươi")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Import(ctx, store, f, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Created)
	assert.Zero(t, store.CallCount(testutil.MethodCreateRecipe))
}

func TestExport(t *testing.T) {
	store := testutil.NewFakeRecipeStore(
		testutil.Recipe("a", "A", "Tỏi tươi"),
		testutil.Recipe("b", "B", "Ớt tươi"),
	)

	f, err := Export(context.Background(), store)
	require.NoError(t, err)
	assert.Equal(t, "1", f.Version)
	require.Len(t, f.Recipes, 2)
	assert.Equal(t, "a", f.Recipes[0].ID)

	data, err := Marshal(f)
	require.NoError(t, err)
	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f.Recipes[1].Ingredients, parsed.Recipes[1].Ingredients)
}
