package model

import "time"

// Difficulty is the coarse effort rating attached to a recipe.
type Difficulty string

const (
	// DifficultyEasy marks simple everyday dishes.
	DifficultyEasy Difficulty = "Dễ"
	// DifficultyMedium marks dishes with some preparation work.
	DifficultyMedium Difficulty = "Trung bình"
	// DifficultyHard marks dishes that need skill or time.
	DifficultyHard Difficulty = "Khó"
)

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// IngredientRequirement is a named ingredient a recipe needs.
// Quantity and Unit are informational; matching only looks at the name.
type IngredientRequirement struct {
	Name     string  `yaml:"name"`
	Unit     string  `yaml:"unit"`
	Quantity float64 `yaml:"quantity"`
}

// Recipe is an entry of the recipe catalog.
type Recipe struct {
	CreatedAt   time.Time               `yaml:"-"`
	UpdatedAt   time.Time               `yaml:"-"`
	ID          string                  `yaml:"id,omitempty"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	Category    string                  `yaml:"category"`
	Image       string                  `yaml:"image"`
	CookTime    string                  `yaml:"cook_time"`
	Difficulty  Difficulty              `yaml:"difficulty"`
	Ingredients []IngredientRequirement `yaml:"ingredients"`
	Servings    int                     `yaml:"servings"`
	Rating      float64                 `yaml:"rating"`
}
