// Package testutil provides shared test helpers: a migrated in-memory
// database and in-memory fakes of the stores that record every call.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/smartfood/internal/model"
	"github.com/Veraticus/smartfood/internal/service"
	"github.com/Veraticus/smartfood/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database.
// It automatically handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Items          []model.InventoryItem
	Recipes        []model.Recipe
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for _, item := range opts.Items {
		if _, err := store.CreateItem(ctx, item); err != nil {
			t.Fatalf("failed to seed item %q: %v", item.Name, err)
		}
	}
	for _, recipe := range opts.Recipes {
		if _, err := store.CreateRecipe(ctx, recipe); err != nil {
			t.Fatalf("failed to seed recipe %q: %v", recipe.Name, err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// MustListItems returns the stored inventory or fails the test.
func (db *TestDB) MustListItems() []model.InventoryItem {
	db.t.Helper()
	items, err := db.Storage.ListItems(context.Background())
	if err != nil {
		db.t.Fatalf("failed to list items: %v", err)
	}
	return items
}

// Recipe builds a recipe whose ingredients are the given names.
func Recipe(id, name string, ingredients ...string) model.Recipe {
	r := model.Recipe{ID: id, Name: name, Difficulty: model.DifficultyEasy}
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, model.IngredientRequirement{Name: ing, Quantity: 1})
	}
	return r
}
