package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smartfood/internal/common"
	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/suggest"
)

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    model.IngredientRequirement
		wantErr bool
	}{
		{
			name: "name only",
			spec: "Hành lá",
			want: model.IngredientRequirement{Name: "Hành lá", Quantity: 1},
		},
		{
			name: "name and quantity",
			spec: "Cà chua:0.5",
			want: model.IngredientRequirement{Name: "Cà chua", Quantity: 0.5},
		},
		{
			name: "name quantity and unit",
			spec: " Trứng gà : 3 : quả ",
			want: model.IngredientRequirement{Name: "Trứng gà", Quantity: 3, Unit: "quả"},
		},
		{
			name: "empty quantity keeps default",
			spec: "Muối::thìa",
			want: model.IngredientRequirement{Name: "Muối", Quantity: 1, Unit: "thìa"},
		},
		{name: "missing name", spec: ":2:kg", wantErr: true},
		{name: "bad quantity", spec: "Tỏi:nhiều", wantErr: true},
		{name: "negative quantity", spec: "Tỏi:-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIngredient(tt.spec)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		allowAll bool
		want     model.Difficulty
		wantErr  bool
	}{
		{name: "all as filter", value: "all", allowAll: true, want: ""},
		{name: "empty as filter", value: "", allowAll: true, want: ""},
		{name: "exact", value: "Khó", want: model.DifficultyHard},
		{name: "case folded", value: "trung BÌNH", want: model.DifficultyMedium},
		{name: "all not allowed", value: "all", wantErr: true},
		{name: "unknown", value: "siêu khó", allowAll: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDifficulty(tt.value, tt.allowAll)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExpiry(t *testing.T) {
	got, err := parseExpiry(" 2026-10-20 ")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local), got)

	_, err = parseExpiry("20/10/2026")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("1234567890abcdef"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestRenderSuggestions(t *testing.T) {
	result := suggest.Summarize([]model.MatchResult{
		{RecipeID: "a", RecipeName: "Trứng chiên", Available: []string{"Trứng gà"}},
		{RecipeID: "b", RecipeName: "Canh chua", Available: []string{"Cà chua"}, Missing: []string{"Rau muống"}},
		{RecipeID: "c", RecipeName: "Lẩu", Missing: []string{"Tôm", "Mực", "Nấm"}},
	})

	out := renderSuggestions(result, false)
	assert.Contains(t, out, "Ready to cook")
	assert.Contains(t, out, "Trứng chiên")
	assert.Contains(t, out, "Canh chua")
	assert.Contains(t, out, "thiếu: Rau muống")
	assert.NotContains(t, out, "Lẩu")

	out = renderSuggestions(result, true)
	assert.Contains(t, out, "Lẩu")
	assert.Contains(t, out, "thiếu 3")

	empty := renderSuggestions(suggest.Summarize(nil), false)
	assert.Contains(t, empty, "Nothing to cook yet")
}
