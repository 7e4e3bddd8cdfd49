// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/smartfood/internal/model"
)

// RecipeFilter defines filtering options for recipe queries.
type RecipeFilter struct {
	Search     string           // Case-insensitive substring of the recipe name
	Difficulty model.Difficulty // Empty for every difficulty
}

// IsZero reports whether the filter selects the whole catalog.
func (f RecipeFilter) IsZero() bool {
	return f.Search == "" && f.Difficulty == ""
}

// InventoryStore is the contract of the backing store for inventory items.
// Every method may fail with a transport or validation error.
type InventoryStore interface {
	ListItems(ctx context.Context) ([]model.InventoryItem, error)
	CreateItem(ctx context.Context, item model.InventoryItem) (*model.InventoryItem, error)
	UpdateQuantity(ctx context.Context, id string, quantity float64) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
}

// RecipeStore is the contract of the backing store for the recipe catalog.
type RecipeStore interface {
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]model.Recipe, error)
	CreateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipe model.Recipe) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	InventoryStore
	RecipeStore

	GetItem(ctx context.Context, id string) (*model.InventoryItem, error)
	GetRecipe(ctx context.Context, id string) (*model.Recipe, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// SuggestionSource computes per-recipe match results for a catalog against an
// inventory. Implementations may compute locally or fetch precomputed results.
type SuggestionSource interface {
	ComputeSuggestions(ctx context.Context, catalog []model.Recipe, inventory []model.InventoryItem) ([]model.MatchResult, error)
}

// Clock supplies the current date so that expiry logic is deterministic.
type Clock interface {
	Today() time.Time
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() time.Time

// Today calls f.
func (f ClockFunc) Today() time.Time {
	return f()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
