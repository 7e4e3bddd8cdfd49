package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smartfood/internal/model"
)

const sampleCatalog = `
recipes:
  - id: trung-chien
    name: "  Trứng chiên hành  "
    cook_time: 10 phút
    ingredients:
      - name: Trứng gà
        quantity: 3
        unit: quả
      - name: Hành lá
      - name: "   "
  - name: Canh chua
    difficulty: Trung bình
    servings: 4
    rating: 4.5
    ingredients:
      - name: Cà chua
        quantity: 0.5
        unit: kg
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, f.Recipes, 2)
	assert.Equal(t, "1", f.Version)

	first := f.Recipes[0]
	assert.Equal(t, "trung-chien", first.ID)
	assert.Equal(t, "Trứng chiên hành", first.Name)
	assert.Equal(t, model.DifficultyEasy, first.Difficulty)
	assert.Equal(t, 1, first.Servings)
	require.Len(t, first.Ingredients, 2)
	assert.Equal(t, model.IngredientRequirement{Name: "Trứng gà", Quantity: 3, Unit: "quả"}, first.Ingredients[0])
	assert.Equal(t, 1.0, first.Ingredients[1].Quantity)

	second := f.Recipes[1]
	assert.Empty(t, second.ID)
	assert.Equal(t, model.DifficultyMedium, second.Difficulty)
	assert.Equal(t, 4, second.Servings)
	assert.InDelta(t, 4.5, second.Rating, 0.001)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			input:   "recipes: [",
			wantErr: "failed to parse catalog YAML",
		},
		{
			name:    "missing name",
			input:   "recipes:\n  - id: x\n",
			wantErr: "recipe 1: name is required",
		},
		{
			name:    "duplicate id",
			input:   "recipes:\n  - {id: a, name: A}\n  - {id: a, name: B}\n",
			wantErr: `recipe 2: duplicate id "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	original, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, original))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original.Recipes, loaded.Recipes)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestHints(t *testing.T) {
	all := Hints()
	require.NotEmpty(t, all)
	for _, h := range all {
		assert.NotEmpty(t, h.Name)
		assert.NotEmpty(t, h.Unit, h.Name)
		assert.NotEmpty(t, h.Category, h.Name)
	}

	all[0].Name = "changed"
	assert.NotEqual(t, "changed", Hints()[0].Name)
}

func TestSearchHints(t *testing.T) {
	assert.Len(t, SearchHints(""), len(Hints()))
	assert.Len(t, SearchHints("   "), len(Hints()))

	var names []string
	for _, h := range SearchHints("CÀ ") {
		names = append(names, h.Name)
	}
	assert.Contains(t, names, "Cà chua")
	assert.Contains(t, names, "Cà rốt")

	assert.Empty(t, SearchHints("không có món này"))
}

func TestLookupHint(t *testing.T) {
	h, ok := LookupHint(" trứng GÀ ")
	require.True(t, ok)
	assert.Equal(t, Hint{Name: "Trứng gà", Unit: "quả", Category: "Sữa & trứng"}, h)

	_, ok = LookupHint("Trứng")
	assert.False(t, ok)

	_, ok = LookupHint("")
	assert.False(t, ok)
}
